package internal

import "strings"

// CreateTestStdioJSON returns a raw I/O line record.
func CreateTestStdioJSON() string {
	return `{"label":"STDIO","time":"12:00:01","endpoint":"stdin","request":"ping"}`
}

// CreateTestLabeledJSON returns a generic labeled event record.
func CreateTestLabeledJSON() string {
	return `{"label":"API","endpoint":"/v1/status","time":"12:00:03","duration":0.2,"response":{"ok":true}}`
}

// CreateTestExchangeJSON returns a full model conversation exchange:
// system instruction, one declared tool, one user turn, and a text
// response.
func CreateTestExchangeJSON() string {
	return `{"label":"CLOUD","endpoint":"v1internal:streamGenerateContent","time":"12:00:02","duration":1.5,` +
		`"request":{"request":{` +
		`"systemInstruction":{"parts":[{"text":"be helpful"}]},` +
		`"tools":[{"functionDeclarations":[{"name":"read_file","description":"Reads a file","parameters":{"properties":{"path":{"type":"string"}}}}]}],` +
		`"contents":[{"role":"user","parts":[{"text":"hi"}]}]}},` +
		`"response":[{"response":{"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}}]}`
}

// CreateTestTitleExchangeJSON returns the exchange the editor runs to
// name a conversation; the loader derives the capture title from it.
func CreateTestTitleExchangeJSON(title string) string {
	return `{"label":"CLOUD","endpoint":"v1internal:streamGenerateContent","time":"12:00:04",` +
		`"request":{"request":{"contents":[{"role":"user","parts":[{"text":"Generate a short conversation title for this chat"}]}]}},` +
		`"response":[{"response":{"candidates":[{"content":{"parts":[{"text":"` + title + `"}]}}]}}]}`
}

// CreateTestCaptureHTML builds a host HTML document with the given
// records entity-escaped into the trailing comment block, the way the
// capture shim writes them.
func CreateTestCaptureHTML(records ...string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head></head>\n<body></body>\n</html>\n<!--\n")
	for _, r := range records {
		b.WriteString(Escape(r))
		b.WriteByte('\n')
	}
	return b.String()
}
