package internal

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind identifies which dispatch rule produced a Node.
type Kind int

const (
	KindFallback Kind = iota // any other mapping or list
	KindRawLine              // raw I/O channel line
	KindToolDecl             // single function declaration
	KindExchange             // model conversation exchange
	KindLabeled              // generic labeled event
	KindScalar               // flat text leaf
)

// BodyKind distinguishes the child-content shapes a Node can carry.
type BodyKind int

const (
	BodyNone BodyKind = iota
	BodyList
	BodyMap
	BodyScalar
)

// Field is one entry of a mapping body, in declaration order.
type Field struct {
	Key   string
	Value any
}

// Body describes a Node's child content. Its contents are raw values
// (or pre-built *Node children) that have NOT been escaped; they pass
// through classification again when materialized.
type Body struct {
	Kind   BodyKind
	Items  []any
	Fields []Field
	Value  any
}

func listBody(items []any) Body {
	return Body{Kind: BodyList, Items: items}
}

func mapBody(fields []Field) Body {
	return Body{Kind: BodyMap, Fields: fields}
}

func scalarBody(v any) Body {
	return Body{Kind: BodyScalar, Value: v}
}

// valueBody wraps an arbitrary decoded value as a Node body: objects
// become mappings (one child per key), lists become list bodies,
// anything else a scalar body.
func valueBody(v any) Body {
	switch t := v.(type) {
	case nil:
		return Body{}
	case *Object:
		fields := make([]Field, 0, t.Len())
		for _, k := range t.Keys() {
			val, _ := t.Get(k)
			fields = append(fields, Field{Key: k, Value: val})
		}
		return mapBody(fields)
	case []any:
		return listBody(t)
	default:
		return scalarBody(v)
	}
}

// Node is the output of classification: what a record (or a piece of
// one) looks like before any children exist. Title and Inline have
// already passed through Escape; Body contents have not.
type Node struct {
	Title    string
	Inline   string
	Kind     Kind
	Open     bool // start expanded
	Numbered bool // list children get "1: ", "2: ", ... labels
	Leaf     bool // flat text line, no expandable affordance
	Body     Body
}

// stringify renders a scalar in its canonical display form: strings
// bare, numbers as written, everything else compact JSON.
func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// truncate limits s to n runes. Inline previews cap at 80.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
