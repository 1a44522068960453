// Package manifest reads and writes MonoGame content pipeline manifests
// (.mgcb files) and registers exported documents in them.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// FileName is the manifest written next to exported documents.
const FileName = "Content.mgcb"

// DefaultPlatform is used when no target platform is given.
const DefaultPlatform = "Windows"

const (
	headerGlobal     = "#----------------------------- Global Properties ----------------------------#"
	headerReferences = "#-------------------------------- References --------------------------------#"
	headerContent    = "#---------------------------------- Content ---------------------------------#"
)

// Property is a global "/key:value" line.
type Property struct {
	Key   string
	Value string
}

// Entry is one content item: a "#begin" line followed by its directives.
type Entry struct {
	Path       string
	Directives []string
}

// Manifest is a parsed .mgcb file. Order of properties, references and
// entries is kept when rendering.
type Manifest struct {
	Properties []Property
	References []string
	Entries    []Entry
}

// New returns an empty manifest for platform with the properties the
// MonoGame tools generate.
func New(platform string) *Manifest {
	if platform == "" {
		platform = DefaultPlatform
	}
	return &Manifest{
		Properties: []Property{
			{"outputDir", "bin/$(Platform)"},
			{"intermediateDir", "obj/$(Platform)"},
			{"platform", platform},
			{"config", ""},
			{"profile", "Reach"},
			{"compress", "False"},
		},
	}
}

// Parse reads a manifest. Lines it does not understand before the first
// entry are dropped; inside an entry every non-comment line is kept as a
// directive.
func Parse(r io.Reader) (*Manifest, error) {
	m := &Manifest{}
	var cur *Entry

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#begin "):
			m.Entries = append(m.Entries, Entry{Path: strings.TrimSpace(strings.TrimPrefix(line, "#begin "))})
			cur = &m.Entries[len(m.Entries)-1]
		case strings.HasPrefix(line, "#"):
			continue
		case cur != nil:
			cur.Directives = append(cur.Directives, line)
		case strings.HasPrefix(line, "/"):
			key, value, _ := strings.Cut(line[1:], ":")
			if key == "reference" {
				m.References = append(m.References, value)
			} else {
				m.Properties = append(m.Properties, Property{Key: key, Value: value})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	return m, nil
}

// Get returns the value of a global property.
func (m *Manifest) Get(key string) (string, bool) {
	for _, p := range m.Properties {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Set replaces a global property or appends it.
func (m *Manifest) Set(key, value string) {
	for i := range m.Properties {
		if m.Properties[i].Key == key {
			m.Properties[i].Value = value
			return
		}
	}
	m.Properties = append(m.Properties, Property{Key: key, Value: value})
}

// Entry returns the entry for path.
func (m *Manifest) Entry(path string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

// AddCopy registers path as a file copied to the output unprocessed. An
// existing entry for the same path is replaced in place.
func (m *Manifest) AddCopy(path string) {
	e := Entry{Path: path, Directives: []string{"/copy:" + path}}
	for i := range m.Entries {
		if m.Entries[i].Path == path {
			m.Entries[i] = e
			return
		}
	}
	m.Entries = append(m.Entries, e)
}

// Render returns the manifest text.
func (m *Manifest) Render() string {
	var b strings.Builder

	b.WriteString("\n" + headerGlobal + "\n\n")
	for _, p := range m.Properties {
		fmt.Fprintf(&b, "/%s:%s\n", p.Key, p.Value)
	}

	b.WriteString("\n" + headerReferences + "\n\n")
	for _, r := range m.References {
		fmt.Fprintf(&b, "/reference:%s\n", r)
	}

	b.WriteString("\n" + headerContent + "\n")
	for _, e := range m.Entries {
		fmt.Fprintf(&b, "\n#begin %s\n", e.Path)
		for _, d := range e.Directives {
			b.WriteString(d + "\n")
		}
	}
	return b.String()
}
