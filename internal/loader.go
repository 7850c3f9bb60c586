package internal

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// titleProbe marks the exchange the editor runs to name a
// conversation; its response names the whole capture.
const titleProbe = "Generate a short conversation title"

// Document is a fully loaded capture: one visual node per record in
// arrival order, plus the categories seen in first-appearance order.
type Document struct {
	Title      string
	Nodes      []*VisualNode
	Categories []string
	Failures   int

	seen map[string]bool
	vis  *Visibility
}

// Visible reports whether nodes of the given category should show,
// per stored preference and default policy.
func (d *Document) Visible(category string) bool {
	if d.vis == nil {
		return true
	}
	return d.vis.IsVisible(category)
}

// Seen reports whether at least one record of the category was loaded.
// Filter controls exist only for seen categories.
func (d *Document) Seen(category string) bool {
	return d.seen[category]
}

// LoadFile loads a capture file. store may be nil (no persistence).
func LoadFile(path string, store Store) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f, store)
}

// Load reads every record of a capture stream in order, classifies
// and materializes each, and tags it with its category. A record that
// fails to parse becomes a visible error leaf naming its index;
// loading continues with the next record.
func Load(r io.Reader, store Store) (*Document, error) {
	records, err := extractRecords(r)
	if err != nil {
		return nil, err
	}

	doc := &Document{seen: make(map[string]bool)}
	for i, record := range records {
		v, err := DecodeValue([]byte(Unescape(record)))
		if err != nil {
			perr := &ParseError{Index: i, Err: err}
			LogWarn("%v", perr)
			doc.Failures++
			doc.add(Materialize(&Node{Kind: KindScalar, Leaf: true, Title: Escape(perr.Error())}), "")
			continue
		}
		doc.add(Materialize(Classify(v, "json:")), Category(v))
		if doc.Title == "" {
			doc.Title = deriveTitle(v)
		}
	}
	doc.vis = NewVisibility(store, doc.Categories)
	LogDebug("loaded %d record(s), %d categor(ies), %d failure(s)",
		len(doc.Nodes), len(doc.Categories), doc.Failures)
	return doc, nil
}

func (d *Document) add(vn *VisualNode, category string) {
	vn.Category = category
	d.Nodes = append(d.Nodes, vn)
	if category != "" && !d.seen[category] {
		d.seen[category] = true
		d.Categories = append(d.Categories, category)
	}
}

// extractRecords returns the record lines of a capture. A capture is
// either a host HTML document whose records trail a "<!--" line, or a
// plain JSONL stream.
func extractRecords(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	// Single records can carry whole model exchanges.
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var records []string
	var started, htmlMode, inTrailer bool
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !started {
			started = true
			htmlMode = strings.HasPrefix(line, "<!DOCTYPE") || strings.HasPrefix(line, "<html")
		}
		if htmlMode {
			if !inTrailer {
				inTrailer = line == "<!--"
				continue
			}
			if line == "-->" {
				continue
			}
		}
		records = append(records, line)
	}
	return records, scanner.Err()
}

// deriveTitle recognizes the conversation-title exchange and returns
// the first line of its response text.
func deriveTitle(v any) string {
	if !matchExchange(v) {
		return ""
	}
	for _, t := range requestTexts(v) {
		if !strings.HasPrefix(t, titleProbe) {
			continue
		}
		text := strings.TrimSpace(collectResponse(v).text)
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[:i]
		}
		return text
	}
	return ""
}
