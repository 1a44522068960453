package export

import (
	"bytes"
	"encoding/json"
)

// Document is the exported array of node records. It has no envelope.
type Document []Node

// Assemble appends the navigation record after the converted nodes.
func Assemble(nodes []Node, navNode Node) Document {
	doc := make(Document, 0, len(nodes)+1)
	doc = append(doc, nodes...)
	return append(doc, navNode)
}

// Encode serializes the document. Pretty output is indented with two
// spaces; compact output is a single line.
func (d Document) Encode(pretty bool) ([]byte, error) {
	if d == nil {
		d = Document{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
