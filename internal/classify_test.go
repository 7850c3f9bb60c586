package internal

import (
	"strings"
	"testing"
)

// bodyNodes extracts the pre-built child nodes of a list body.
func bodyNodes(t *testing.T, n *Node) []*Node {
	t.Helper()
	if n.Body.Kind != BodyList {
		t.Fatalf("body kind = %v, want list", n.Body.Kind)
	}
	var out []*Node
	for _, item := range n.Body.Items {
		if child, ok := item.(*Node); ok {
			out = append(out, child)
		}
	}
	return out
}

func findChild(nodes []*Node, title string) *Node {
	for _, n := range nodes {
		if n.Title == title {
			return n
		}
	}
	return nil
}

func TestClassifyPassthrough(t *testing.T) {
	n := Classify(mustDecode(t, `{"foo":1}`), "json:")
	again := Classify(n, "other label")
	if again != n {
		t.Errorf("classifying a classified node did not return it unchanged")
	}
}

func TestClassifyRawLine(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantTitle  string
		wantInline string
	}{
		{
			name:       "request payload",
			input:      `{"label":"STDIO","time":"12:00:01","endpoint":"stdin","request":"ping"}`,
			wantTitle:  "[12:00:01] ",
			wantInline: "stdin ping",
		},
		{
			name:       "response payload when request absent",
			input:      `{"label":"STDIO","time":"12:00:02","endpoint":"stderr","response":"boom"}`,
			wantTitle:  "[12:00:02] ",
			wantInline: "stderr boom",
		},
		{
			name:       "no payload at all",
			input:      `{"label":"STDIO","time":"12:00:03","endpoint":"stdout"}`,
			wantTitle:  "[12:00:03] ",
			wantInline: "stdout",
		},
		{
			name:       "structured payload stringified",
			input:      `{"label":"STDIO","time":"12:00:04","endpoint":"stdin","request":{"jsonrpc":"2.0"}}`,
			wantTitle:  "[12:00:04] ",
			wantInline: `stdin {"jsonrpc":"2.0"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Classify(mustDecode(t, tt.input), "json:")
			if n.Kind != KindRawLine {
				t.Fatalf("Kind = %v, want KindRawLine", n.Kind)
			}
			if n.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", n.Title, tt.wantTitle)
			}
			if n.Inline != tt.wantInline {
				t.Errorf("Inline = %q, want %q", n.Inline, tt.wantInline)
			}
			if n.Open {
				t.Errorf("raw line should start collapsed")
			}
		})
	}
}

func TestClassifyEscapesEventText(t *testing.T) {
	n := Classify(mustDecode(t, `{"label":"STDIO","time":"t","endpoint":"stdin","request":"<script>&\nx"}`), "json:")
	for _, s := range []string{n.Title, n.Inline} {
		if strings.ContainsAny(strings.ReplaceAll(s, "<br>", ""), "<>\n") {
			t.Errorf("unescaped specials reached node text: %q", s)
		}
	}
	if !strings.Contains(n.Inline, "&lt;script&gt;") {
		t.Errorf("Inline = %q, want entity-escaped payload", n.Inline)
	}
	if !strings.Contains(n.Inline, "<br>") {
		t.Errorf("Inline = %q, want newline converted to line break", n.Inline)
	}
}

func TestClassifyToolDecl(t *testing.T) {
	n := Classify(mustDecode(t,
		`{"functionDeclarations":[{"name":"read_file","description":"Reads a file","parameters":{"properties":{"path":{"type":"string"},"limit":{"type":"number"}}}}]}`,
	), "json:")
	if n.Kind != KindToolDecl {
		t.Fatalf("Kind = %v, want KindToolDecl", n.Kind)
	}
	if n.Title != "read_file" {
		t.Errorf("Title = %q, want function name", n.Title)
	}
	if n.Body.Kind != BodyMap {
		t.Fatalf("body kind = %v, want map", n.Body.Kind)
	}
	if n.Body.Fields[0].Key != "<description>" || n.Body.Fields[0].Value != "Reads a file" {
		t.Errorf("first field = %+v, want description entry", n.Body.Fields[0])
	}
	var keys []string
	for _, f := range n.Body.Fields[1:] {
		keys = append(keys, f.Key)
	}
	if len(keys) != 2 || keys[0] != "path" || keys[1] != "limit" {
		t.Errorf("parameter fields = %v, want [path limit]", keys)
	}
}

func TestClassifyToolDeclNeedsExactlyOne(t *testing.T) {
	n := Classify(mustDecode(t,
		`{"functionDeclarations":[{"name":"a"},{"name":"b"}]}`,
	), "json:")
	if n.Kind != KindFallback {
		t.Errorf("two declarations should fall through to the fallback, got Kind %v", n.Kind)
	}
}

func TestClassifyLabeled(t *testing.T) {
	n := Classify(mustDecode(t, CreateTestLabeledJSON()), "json:")
	if n.Kind != KindLabeled {
		t.Fatalf("Kind = %v, want KindLabeled", n.Kind)
	}
	if n.Title != "[12:00:03] API /v1/status (0.2s)" {
		t.Errorf("Title = %q", n.Title)
	}
	if n.Open {
		t.Errorf("labeled event should start collapsed")
	}
	if n.Body.Kind != BodyMap {
		t.Errorf("body kind = %v, want the full raw event as mapping", n.Body.Kind)
	}
}

func TestClassifyFallbackObject(t *testing.T) {
	n := Classify(mustDecode(t, `{"foo":1,"bar":2}`), "json:")
	if n.Kind != KindFallback {
		t.Fatalf("Kind = %v, want KindFallback", n.Kind)
	}
	if n.Title != "json:" {
		t.Errorf("Title = %q, want fallback label", n.Title)
	}
	if n.Inline != `{"foo":,"bar":}` {
		t.Errorf("Inline = %q, want %q", n.Inline, `{"foo":,"bar":}`)
	}
	if n.Numbered {
		t.Errorf("mapping fallback must not be numbered")
	}
}

func TestClassifyFallbackList(t *testing.T) {
	n := Classify(mustDecode(t, `[10,20,30]`), "json:")
	if n.Inline != "[...3 items]" {
		t.Errorf("Inline = %q, want item count", n.Inline)
	}
	if !n.Numbered {
		t.Errorf("list fallback must be numbered")
	}
	if n.Body.Kind != BodyList || len(n.Body.Items) != 3 {
		t.Errorf("body = %+v, want 3-item list", n.Body)
	}
}

func TestClassifyScalarLeaf(t *testing.T) {
	tests := []struct {
		name  string
		input string
		label string
		want  string
	}{
		{"string", `"hello"`, "msg: ", "msg: hello"},
		{"number", `42`, "n: ", "n: 42"},
		{"bool", `true`, "", "true"},
		{"null", `null`, "v: ", "v: null"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Classify(mustDecode(t, tt.input), tt.label)
			if n.Kind != KindScalar || !n.Leaf {
				t.Fatalf("scalar should be a leaf, got Kind %v Leaf %v", n.Kind, n.Leaf)
			}
			if n.Title != tt.want {
				t.Errorf("Title = %q, want %q", n.Title, tt.want)
			}
			if n.Body.Kind != BodyNone {
				t.Errorf("leaf must not carry a body")
			}
		})
	}
}

func TestClassifyExchange(t *testing.T) {
	n := Classify(mustDecode(t, CreateTestExchangeJSON()), "json:")
	if n.Kind != KindExchange {
		t.Fatalf("Kind = %v, want KindExchange", n.Kind)
	}
	if !n.Open {
		t.Errorf("exchange must start expanded")
	}
	if n.Title != "[12:00:02] CLOUD v1internal:streamGenerateContent (1.5s)" {
		t.Errorf("Title = %q", n.Title)
	}

	children := bodyNodes(t, n)

	if si := findChild(children, "systemInstruction"); si == nil {
		t.Errorf("missing systemInstruction child")
	}

	tools := findChild(children, "tools")
	if tools == nil {
		t.Fatalf("missing tools child")
	}
	if tools.Inline != "[...1 tools]" {
		t.Errorf("tools inline = %q, want exact item count", tools.Inline)
	}

	turn := findChild(children, "user: ")
	if turn == nil {
		t.Fatalf("missing user turn child; children: %v", childTitles(children))
	}
	if turn.Inline != "hi" {
		t.Errorf("turn inline = %q, want %q", turn.Inline, "hi")
	}

	resp := findChild(children, "response: ")
	if resp == nil {
		t.Fatalf("missing response child")
	}
	if resp.Inline != "hello" {
		t.Errorf("response inline = %q, want %q", resp.Inline, "hello")
	}

	last := children[len(children)-1]
	if last.Title != "[raw]" {
		t.Errorf("last child = %q, want the [raw] escape hatch", last.Title)
	}
	if last.Body.Kind != BodyMap {
		t.Errorf("[raw] body kind = %v, want the whole event", last.Body.Kind)
	}
}

func TestExchangeSentinelTools(t *testing.T) {
	n := Classify(mustDecode(t,
		`{"label":"CLOUD","endpoint":"x:streamGenerateContent","time":"t",`+
			`"request":{"request":{"tools":["..."],"contents":[{"role":"user","parts":[{"text":"hi"}]}]}}}`,
	), "json:")
	tools := findChild(bodyNodes(t, n), "tools")
	if tools == nil {
		t.Fatalf("missing tools child")
	}
	if tools.Inline != "(unchanged, not re-sent)" {
		t.Errorf("sentinel tools inline = %q", tools.Inline)
	}
	if tools.Body.Kind != BodyNone {
		t.Errorf("sentinel tools must never enumerate items")
	}
}

func TestExchangeStarredFieldNames(t *testing.T) {
	n := Classify(mustDecode(t,
		`{"label":"CLOUD","endpoint":"x:streamGenerateContent","time":"t",`+
			`"request":{"*request":{"*systemInstruction":{"parts":[{"text":"sys"}]},`+
			`"*contents":[{"role":"user","parts":[{"text":"hi"}]}]}}}`,
	), "json:")
	children := bodyNodes(t, n)
	if findChild(children, "systemInstruction") == nil {
		t.Errorf("starred systemInstruction not resolved; children: %v", childTitles(children))
	}
	if findChild(children, "user: ") == nil {
		t.Errorf("starred contents not resolved; children: %v", childTitles(children))
	}
}

func TestExchangeContentVariants(t *testing.T) {
	n := Classify(mustDecode(t,
		`{"label":"CLOUD","endpoint":"x:streamGenerateContent","time":"t",`+
			`"request":{"request":{`+
			`"contents-":[{"role":"user","parts":[{"text":"old"}]}],`+
			`"contents+":[{"role":"user","parts":[{"text":"new"}]}]}}}`,
	), "json:")
	children := bodyNodes(t, n)
	if findChild(children, "-user: ") == nil {
		t.Errorf("missing removed-variant turn; children: %v", childTitles(children))
	}
	if findChild(children, "+user: ") == nil {
		t.Errorf("missing added-variant turn; children: %v", childTitles(children))
	}
}

func TestExchangeSentinelContentsSkipped(t *testing.T) {
	n := Classify(mustDecode(t,
		`{"label":"CLOUD","endpoint":"x:streamGenerateContent","time":"t",`+
			`"request":{"request":{"contents":["..."]}}}`,
	), "json:")
	for _, c := range bodyNodes(t, n) {
		if strings.Contains(c.Title, ": ") && c.Title != "response: " {
			t.Errorf("sentinel contents produced a turn child: %q", c.Title)
		}
	}
}

func TestExchangeFunctionParts(t *testing.T) {
	longResult := strings.Repeat("r", 200)
	n := Classify(mustDecode(t,
		`{"label":"CLOUD","endpoint":"x:streamGenerateContent","time":"t",`+
			`"request":{"request":{"contents":[`+
			`{"role":"model","parts":[{"functionCall":{"name":"shell","args":{"cmd":"ls"}}}]},`+
			`{"role":"user","parts":[{"functionResponse":{"name":"shell","response":{"result":"`+longResult+`"}}}]}`+
			`]}}}`,
	), "json:")
	children := bodyNodes(t, n)

	call := findChild(children, "model: shell(...)")
	if call == nil {
		t.Fatalf("missing function-call turn; children: %v", childTitles(children))
	}
	if len(call.Body.Items) != 1 {
		t.Errorf("call turn body = %d item(s), want the call arguments", len(call.Body.Items))
	}

	result := findChild(children, "user: shell():result. ")
	if result == nil {
		t.Fatalf("missing function-response turn; children: %v", childTitles(children))
	}
	if want := strings.Repeat("r", 80); result.Inline != want {
		t.Errorf("result inline = %d chars %q..., want first 80 of the result", len(result.Inline), result.Inline[:10])
	}
}

func TestExchangeResponseFunctionCalls(t *testing.T) {
	n := Classify(mustDecode(t,
		`{"label":"CLOUD","endpoint":"x:streamGenerateContent","time":"t",`+
			`"request":{"request":{"contents":[{"role":"user","parts":[{"text":"go"}]}]}},`+
			`"response":{"response":{"candidates":[{"content":{"parts":[`+
			`{"functionCall":{"name":"edit","args":{"path":"a.go"}}},{"text":"done"}]}}]}}}`,
	), "json:")
	resp := findChild(bodyNodes(t, n), "response: ")
	if resp == nil {
		t.Fatalf("missing response child")
	}
	if resp.Inline != "edit(...) done" {
		t.Errorf("response inline = %q", resp.Inline)
	}
	// one call node plus the concatenated text
	if len(resp.Body.Items) != 2 {
		t.Errorf("response body = %d item(s), want call node plus text", len(resp.Body.Items))
	}
}

func TestExchangeResponseTruncation(t *testing.T) {
	long := strings.Repeat("x", 200)
	n := Classify(mustDecode(t,
		`{"label":"CLOUD","endpoint":"x:streamGenerateContent","time":"t",`+
			`"request":{"request":{"contents":[{"role":"user","parts":[{"text":"go"}]}]}},`+
			`"response":{"response":{"candidates":[{"content":{"parts":[{"text":"`+long+`"}]}}]}}}`,
	), "json:")
	resp := findChild(bodyNodes(t, n), "response: ")
	if resp == nil {
		t.Fatalf("missing response child")
	}
	if want := strings.Repeat("x", 80); resp.Inline != want {
		t.Errorf("response inline = %d chars, want first 80", len(resp.Inline))
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"exchange remaps to LLM", CreateTestExchangeJSON(), CategoryExchange},
		{"stdio keeps its label", CreateTestStdioJSON(), "STDIO"},
		{"cloud without marker keeps label", `{"label":"CLOUD","endpoint":"v1/other","time":"t"}`, "CLOUD"},
		{"unlabeled is empty", `{"foo":1}`, ""},
		{"scalar is empty", `"hello"`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Category(mustDecode(t, tt.input)); got != tt.want {
				t.Errorf("Category() = %q, want %q", got, tt.want)
			}
		})
	}
}

func childTitles(nodes []*Node) []string {
	var out []string
	for _, n := range nodes {
		out = append(out, n.Title)
	}
	return out
}
