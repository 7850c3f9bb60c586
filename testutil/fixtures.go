package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SampleRecords returns a small mixed-category record stream: one raw
// stdio line, one generic API event, and one model exchange.
func SampleRecords() []string {
	return []string{
		`{"label":"STDIO","time":"12:00:01","endpoint":"stdin","request":"ping"}`,
		`{"label":"API","endpoint":"/v1/status","time":"12:00:03","response":{"ok":true}}`,
		`{"label":"CLOUD","endpoint":"v1internal:streamGenerateContent","time":"12:00:02",` +
			`"request":{"request":{"contents":[{"role":"user","parts":[{"text":"hi"}]}]}},` +
			`"response":[{"response":{"candidates":[{"content":{"parts":[{"text":"hello"}]}}]}}]}`,
	}
}

// WriteCaptureJSONL writes records as a plain JSONL capture file and
// returns its path.
func WriteCaptureJSONL(t *testing.T, dir string, records []string) string {
	t.Helper()
	path := filepath.Join(dir, "capture.jsonl")
	if err := os.WriteFile(path, []byte(strings.Join(records, "\n")+"\n"), 0644); err != nil {
		t.Fatalf("Failed to write capture fixture: %v", err)
	}
	return path
}

// WriteCaptureHTML writes records entity-escaped into a host HTML
// document, the way the capture shim does, and returns its path.
func WriteCaptureHTML(t *testing.T, dir string, records []string) string {
	t.Helper()
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head></head>\n<body></body>\n</html>\n<!--\n")
	escaper := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	for _, r := range records {
		b.WriteString(escaper.Replace(r))
		b.WriteByte('\n')
	}
	path := filepath.Join(dir, "capture.html")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("Failed to write capture fixture: %v", err)
	}
	return path
}
