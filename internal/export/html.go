package export

import (
	"html/template"
	"io"
	"strings"

	"github.com/iksnae/trace-view/internal"
)

// HTMLExporter emits a single static, self-contained HTML document:
// one <details> tree per record, category checkboxes for every
// category present in the stream, nothing server-side.
type HTMLExporter struct{}

type htmlCategory struct {
	Name    string // CSS-safe category name
	Label   string
	Visible bool
}

type htmlNode struct {
	// Title and Inline carry pre-escaped node text; marking them
	// template.HTML keeps html/template from escaping the entities a
	// second time.
	Title    template.HTML
	Inline   template.HTML
	Class    string
	Open     bool
	Leaf     bool
	Children []*htmlNode
}

type htmlDocument struct {
	Title      string
	BodyClass  string
	Categories []htmlCategory
	Nodes      []*htmlNode
}

var htmlTmpl = template.Must(template.New("doc").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
{{if .Title}}<title>{{.Title}}</title>
{{end}}<style>
body {font-family: system-ui, -apple-system, sans-serif; margin: 0;}
body>details, body>div.leaf {margin-top: 1ex; padding-top: 1ex; border-top: 1px solid lightgray;}
{{range .Categories}}body:not(.show-{{.Name}}) .label-{{.Name}} {display: none;}
{{end}}details {position: relative; padding-left: 1.25em;}
summary {list-style: none; cursor: pointer;}
summary::-webkit-details-marker {display: none;}
summary::before {content: '▷'; position: absolute; left: 0; color: #666;}
details[open]>summary::before {content: '▽';}
details>div {margin-left: 1.25em;}
details[open]>summary output {display: none;}
#controls label {margin-right: 1em;}
</style>
</head>
<body class="{{.BodyClass}}">
<div id="controls">
{{range .Categories}}<label><input type="checkbox"{{if .Visible}} checked{{end}} onchange="document.body.classList.toggle('show-{{.Name}}', this.checked)">{{.Label}}</label>
{{end}}</div>
{{range .Nodes}}{{template "node" .}}
{{end}}</body>
</html>
{{define "node"}}{{if .Leaf}}<div class="leaf{{with .Class}} {{.}}{{end}}">{{.Title}}</div>{{else}}<details{{with .Class}} class="{{.}}"{{end}}{{if .Open}} open{{end}}><summary>{{.Title}} <output>{{.Inline}}</output></summary><div>{{range .Children}}{{template "node" .}}{{end}}</div></details>{{end}}{{end}}`))

// Export exports the document as standalone HTML
func (e *HTMLExporter) Export(doc *internal.Document, w io.Writer) error {
	data := htmlDocument{Title: doc.Title}

	var shown []string
	for _, cat := range doc.Categories {
		name := cssName(cat)
		visible := doc.Visible(cat)
		data.Categories = append(data.Categories, htmlCategory{
			Name:    name,
			Label:   cat,
			Visible: visible,
		})
		if visible {
			shown = append(shown, "show-"+name)
		}
	}
	data.BodyClass = strings.Join(shown, " ")

	for _, vn := range doc.Nodes {
		data.Nodes = append(data.Nodes, buildHTMLNode(vn, true))
	}
	return htmlTmpl.Execute(w, data)
}

func buildHTMLNode(vn *internal.VisualNode, topLevel bool) *htmlNode {
	n := &htmlNode{
		Title:  template.HTML(vn.Node.Title),
		Inline: template.HTML(vn.Node.Inline),
		Open:   vn.Node.Open,
		Leaf:   vn.Node.Leaf,
	}
	if topLevel && vn.Category != "" {
		n.Class = "label-" + cssName(vn.Category)
	}
	for _, c := range vn.Children() {
		n.Children = append(n.Children, buildHTMLNode(c, false))
	}
	return n
}

// cssName maps a category to a CSS-class-safe token. Categories are
// open-ended strings; anything outside [A-Za-z0-9_-] becomes "_".
func cssName(category string) string {
	var b strings.Builder
	for _, r := range category {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Extension returns the file extension for this format
func (e *HTMLExporter) Extension() string {
	return "html"
}
