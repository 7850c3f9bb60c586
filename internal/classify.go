package internal

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

const (
	// labelRawChannel tags raw stdio lines captured by the shim.
	labelRawChannel = "STDIO"
	// labelCloudRPC tags calls against the cloud code endpoint.
	labelCloudRPC = "CLOUD"
	// streamMarker appears in the endpoint of model generation calls.
	streamMarker = "streamGenerateContent"

	inlineLimit = 80
)

// rules is the dispatch table, evaluated in priority order; first
// match wins. Anything unmatched falls through to the fallback and
// scalar renderers, so classification is total.
var rules []classifyRule

type classifyRule struct {
	match  func(v any) bool
	render func(v any, fallback string) *Node
}

// Assigned in init rather than at declaration: renderExchange calls
// Classify, which reads rules, so a declaration-time literal would be
// an initialization cycle.
func init() {
	rules = []classifyRule{
		{matchRawLine, renderRawLine},
		{matchToolDecl, renderToolDecl},
		{matchExchange, renderExchange},
		{matchLabeled, renderLabeled},
	}
}

// Classify turns a decoded record (or any piece of one) into a Node.
// An already-built *Node passes through unchanged, so children that
// were pre-rendered by a parent rule re-enter here safely.
func Classify(v any, fallback string) *Node {
	if n, ok := v.(*Node); ok {
		return n
	}
	for _, r := range rules {
		if r.match(v) {
			return r.render(v, fallback)
		}
	}
	switch v.(type) {
	case *Object, []any:
		return renderFallback(v, fallback)
	}
	return renderScalar(v, fallback)
}

// Category returns the filter category for a decoded record: the
// record's label, remapped to the distinguished exchange category when
// the record is a recognized model exchange. Unlabeled records return
// "" and are never filtered.
func Category(v any) string {
	if matchExchange(v) {
		return CategoryExchange
	}
	return getString(v, "label")
}

// ── shape probing helpers ──

func asObject(v any) (*Object, bool) {
	o, ok := v.(*Object)
	return o, ok
}

func asList(v any) ([]any, bool) {
	l, ok := v.([]any)
	return l, ok
}

func objGet(v any, key string) (any, bool) {
	obj, ok := v.(*Object)
	if !ok {
		return nil, false
	}
	return obj.Get(key)
}

// get is the nil-tolerant lookup used while walking payloads of
// unknown shape: missing keys and non-objects both yield nil.
func get(v any, key string) any {
	x, _ := objGet(v, key)
	return x
}

func getString(v any, key string) string {
	s, _ := get(v, key).(string)
	return s
}

// alt looks a key up under its current name, then under the starred
// name the producer's delta notation uses for changed values.
func alt(v any, key string) (any, bool) {
	if x, ok := objGet(v, key); ok {
		return x, true
	}
	return objGet(v, "*"+key)
}

// isSentinel reports the single-element ["..."] list the producer
// emits for "identical to previous, not retransmitted".
func isSentinel(v any) bool {
	l, ok := v.([]any)
	return ok && len(l) == 1 && l[0] == "..."
}

// eventTitle builds the "[time] LABEL endpoint" heading, with the
// display-only duration appended when the record carries one.
func eventTitle(v any) string {
	title := fmt.Sprintf("[%s] %s %s", getString(v, "time"), getString(v, "label"), getString(v, "endpoint"))
	if d, ok := objGet(v, "duration"); ok {
		if n, ok := d.(json.Number); ok {
			title += " (" + n.String() + "s)"
		}
	}
	return title
}

// ── rule 2: raw I/O line ──

func matchRawLine(v any) bool {
	return getString(v, "label") == labelRawChannel && get(v, "endpoint") != nil
}

func renderRawLine(v any, _ string) *Node {
	payload := ""
	if p, ok := objGet(v, "request"); ok && p != nil {
		payload = stringify(p)
	} else if p, ok := objGet(v, "response"); ok && p != nil {
		payload = stringify(p)
	}
	inline := getString(v, "endpoint")
	if payload != "" {
		inline += " " + payload
	}
	return &Node{
		Kind:   KindRawLine,
		Title:  Escape("[" + getString(v, "time") + "] "),
		Inline: Escape(inline),
	}
}

// ── rule 3: tool/function declaration ──

func matchToolDecl(v any) bool {
	decls, ok := alt(v, "functionDeclarations")
	if !ok {
		return false
	}
	list, ok := asList(decls)
	if !ok || len(list) != 1 {
		return false
	}
	_, ok = asObject(list[0])
	return ok
}

func renderToolDecl(v any, _ string) *Node {
	decls, _ := alt(v, "functionDeclarations")
	list, _ := asList(decls)
	decl, _ := asObject(list[0])

	fields := []Field{{Key: "<description>", Value: get(decl, "description")}}
	if props, ok := asObject(get(get(decl, "parameters"), "properties")); ok {
		for _, k := range props.Keys() {
			val, _ := props.Get(k)
			fields = append(fields, Field{Key: k, Value: val})
		}
	}
	return &Node{
		Kind:  KindToolDecl,
		Title: Escape(getString(decl, "name")),
		Body:  mapBody(fields),
	}
}

// ── rule 4: model conversation exchange ──

func matchExchange(v any) bool {
	return getString(v, "label") == labelCloudRPC &&
		strings.Contains(getString(v, "endpoint"), streamMarker)
}

func renderExchange(v any, _ string) *Node {
	children := make([]any, 0, 8)

	req, _ := alt(v, "request")
	body, _ := alt(req, "request") // model request body inside the transport envelope

	if si, ok := alt(body, "systemInstruction"); ok {
		children = append(children, Classify(si, "systemInstruction"))
	}

	if tl, ok := alt(body, "tools"); ok {
		if isSentinel(tl) {
			children = append(children, &Node{
				Title:  Escape("tools"),
				Inline: Escape("(unchanged, not re-sent)"),
			})
		} else if list, ok := asList(tl); ok && len(list) > 0 {
			children = append(children, &Node{
				Title:  Escape("tools"),
				Inline: Escape(fmt.Sprintf("[...%d tools]", len(list))),
				Body:   listBody(list),
			})
		}
	}

	for _, variant := range []struct{ field, prefix string }{
		{"contents", ""},
		{"contents-", "-"},
		{"contents+", "+"},
	} {
		tv, ok := alt(body, variant.field)
		if !ok || isSentinel(tv) {
			continue
		}
		turns, ok := asList(tv)
		if !ok || len(turns) == 0 {
			continue
		}
		for _, t := range turns {
			children = append(children, renderTurn(t, variant.prefix))
		}
	}

	children = append(children, renderResponse(v))
	children = append(children, &Node{Title: Escape("[raw]"), Body: valueBody(v)})

	return &Node{
		Kind:  KindExchange,
		Title: Escape(eventTitle(v)),
		Open:  true,
		Body:  listBody(children),
	}
}

// renderTurn renders one role-tagged message of a content variant.
// prefix is "" for the current turn list, "-" for removed, "+" for
// added.
func renderTurn(v any, prefix string) *Node {
	obj, ok := asObject(v)
	if !ok {
		return Classify(v, prefix)
	}
	role := getString(obj, "role")
	parts, _ := asList(get(obj, "parts"))

	var titles, inlines []string
	var bodies []any
	for _, p := range parts {
		title, inline, body := renderPart(p)
		if title != "" {
			titles = append(titles, title)
		}
		if inline != "" {
			inlines = append(inlines, inline)
		}
		if body != nil {
			bodies = append(bodies, body)
		}
	}
	return &Node{
		Title:  Escape(prefix + role + ": " + strings.Join(titles, ", ")),
		Inline: Escape(truncate(strings.Join(inlines, ", "), inlineLimit)),
		Body:   listBody(bodies),
	}
}

// renderPart classifies one part of a turn. Text parts are title-less;
// function responses and calls surface their name; anything else gets
// a raw-part marker.
func renderPart(v any) (title, inline string, body any) {
	obj, ok := asObject(v)
	if !ok {
		return "[part]", "", v
	}
	if t, ok := obj.Get("text"); ok {
		if s, ok := t.(string); ok {
			return "", s, nil
		}
	}
	if fr, ok := obj.Get("functionResponse"); ok {
		name := getString(fr, "name")
		resp, _ := objGet(fr, "response")
		return name + "():result. ", truncate(resultText(resp), inlineLimit), resp
	}
	if fc, ok := obj.Get("functionCall"); ok {
		name := getString(fc, "name")
		args, _ := objGet(fc, "args")
		return name + "(...)", "", args
	}
	return "[part]", "", v
}

// resultText extracts the human-readable portion of a function
// response payload.
func resultText(v any) string {
	if s, ok := get(v, "result").(string); ok {
		return s
	}
	if s, ok := get(v, "output").(string); ok {
		return s
	}
	return stringify(v)
}

// responseParts aggregates everything found across a record's response
// entries: all text parts concatenated, all function calls collected.
type responseParts struct {
	text       string
	callTitles []string
	callNodes  []any
}

// collectResponse tolerates the response field being a single entry or
// a list of them, each wrapping candidates with content parts.
func collectResponse(v any) responseParts {
	var out responseParts
	var text strings.Builder

	resp, _ := alt(v, "response")
	entries, ok := asList(resp)
	if !ok && resp != nil {
		entries = []any{resp}
	}
	for _, e := range entries {
		inner, _ := alt(e, "response")
		cands, _ := asList(get(inner, "candidates"))
		for _, c := range cands {
			parts, _ := asList(get(get(c, "content"), "parts"))
			for _, p := range parts {
				if t, ok := objGet(p, "text"); ok {
					if s, ok := t.(string); ok {
						text.WriteString(s)
						continue
					}
				}
				if fc, ok := objGet(p, "functionCall"); ok {
					name := getString(fc, "name")
					args, _ := objGet(fc, "args")
					out.callTitles = append(out.callTitles, name+"(...)")
					out.callNodes = append(out.callNodes, &Node{
						Title: Escape(name + "(...)"),
						Body:  valueBody(args),
					})
				}
			}
		}
	}
	out.text = text.String()
	return out
}

func renderResponse(v any) *Node {
	resp := collectResponse(v)

	inline := strings.Join(resp.callTitles, ", ")
	if resp.text != "" {
		if inline != "" {
			inline += " "
		}
		inline += truncate(resp.text, inlineLimit)
	}
	items := resp.callNodes
	if resp.text != "" {
		items = append(items, resp.text)
	}
	return &Node{
		Title:  Escape("response: "),
		Inline: Escape(inline),
		Body:   listBody(items),
	}
}

// requestTexts returns every text part of the request's current turn
// list, in order.
func requestTexts(v any) []string {
	req, _ := alt(v, "request")
	body, _ := alt(req, "request")
	contents, _ := alt(body, "contents")
	turns, _ := asList(contents)

	var out []string
	for _, t := range turns {
		parts, _ := asList(get(t, "parts"))
		for _, p := range parts {
			if s, ok := get(p, "text").(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// ── rule 5: generic labeled event ──

func matchLabeled(v any) bool {
	return get(v, "label") != nil && get(v, "endpoint") != nil && get(v, "time") != nil
}

func renderLabeled(v any, _ string) *Node {
	return &Node{
		Kind:  KindLabeled,
		Title: Escape(eventTitle(v)),
		Body:  valueBody(v),
	}
}

// ── rule 6: fallback for any other mapping or list ──

func renderFallback(v any, fallback string) *Node {
	n := &Node{Kind: KindFallback, Title: Escape(fallback), Body: valueBody(v)}
	switch t := v.(type) {
	case []any:
		n.Inline = Escape(fmt.Sprintf("[...%d items]", len(t)))
		n.Numbered = true
	case *Object:
		var b strings.Builder
		b.WriteByte('{')
		for i, k := range t.Keys() {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Quote(k))
			b.WriteByte(':')
		}
		b.WriteByte('}')
		n.Inline = Escape(b.String())
	}
	return n
}

// ── rule 7: scalar leaf ──

func renderScalar(v any, fallback string) *Node {
	return &Node{
		Kind:  KindScalar,
		Leaf:  true,
		Title: Escape(fallback + stringify(v)),
	}
}
