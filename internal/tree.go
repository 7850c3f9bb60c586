package internal

import (
	"fmt"
	"strconv"
)

// VisualNode is a materializable, user-facing element wrapping a Node.
// Children are not built until the first expand/collapse interaction,
// and are built at most once; collapsing hides but never discards
// them. Deep trees for large payloads are only paid for where a user
// actually looks.
type VisualNode struct {
	Node     *Node
	Category string // set by the loader on top-level nodes

	open     bool
	built    bool
	children []*VisualNode
}

// Materialize wraps a Node in its unmaterialized visual form. The
// summary (title + inline) is available immediately; Children and
// Toggle trigger the one-shot child build.
func Materialize(n *Node) *VisualNode {
	return &VisualNode{Node: n, open: n.Open}
}

// Children returns the node's direct children, building them on the
// first call and returning the cached slice ever after.
func (v *VisualNode) Children() []*VisualNode {
	v.ensure()
	return v.children
}

// Toggle flips the open state. Either direction of the first toggle
// materializes the children.
func (v *VisualNode) Toggle() {
	v.ensure()
	v.open = !v.open
}

// Open reports whether the node is currently expanded.
func (v *VisualNode) Open() bool {
	return v.open
}

// Materialized reports whether the one-shot child build has run.
func (v *VisualNode) Materialized() bool {
	return v.built
}

// Expandable reports whether the node has any child content to show.
func (v *VisualNode) Expandable() bool {
	return !v.Node.Leaf && v.Node.Body.Kind != BodyNone
}

func (v *VisualNode) ensure() {
	if v.built {
		return
	}
	v.built = true

	switch b := v.Node.Body; b.Kind {
	case BodyList:
		for i, item := range b.Items {
			label := ""
			if v.Node.Numbered {
				label = fmt.Sprintf("%d: ", i+1)
			}
			v.children = append(v.children, Materialize(Classify(item, label)))
		}
	case BodyMap:
		for _, f := range b.Fields {
			v.children = append(v.children, Materialize(Classify(f.Value, strconv.Quote(f.Key)+": ")))
		}
	case BodyScalar:
		v.children = append(v.children, Materialize(Classify(b.Value, "")))
	}
}
