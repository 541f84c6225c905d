package dotenv

import "strings"

// Document is the ordered list of lines of one file.
type Document struct {
	Lines []Line
}

// Parse splits text on '\n' and parses every line. Rendering the result
// reproduces text exactly, including a trailing newline.
func Parse(text string) *Document {
	raws := strings.Split(text, "\n")
	doc := &Document{Lines: make([]Line, len(raws))}
	for i, raw := range raws {
		doc.Lines[i] = ParseLine(raw)
	}
	return doc
}

// Render joins the rendered lines with '\n'.
func (d *Document) Render() string {
	var b strings.Builder
	for i, line := range d.Lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.Render())
	}
	return b.String()
}

// Clone returns a copy whose lines can be replaced independently.
func (d *Document) Clone() *Document {
	lines := make([]Line, len(d.Lines))
	copy(lines, d.Lines)
	return &Document{Lines: lines}
}

// Assignments returns the indexes of assignment lines in order.
func (d *Document) Assignments() []int {
	var idx []int
	for i, line := range d.Lines {
		if line.Kind == KindAssignment {
			idx = append(idx, i)
		}
	}
	return idx
}

// Lookup returns the last assignment of key.
func (d *Document) Lookup(key string) (Line, bool) {
	for i := len(d.Lines) - 1; i >= 0; i-- {
		if d.Lines[i].Kind == KindAssignment && d.Lines[i].Key == key {
			return d.Lines[i], true
		}
	}
	return Line{}, false
}

// Keys returns assignment keys in file order, without duplicates.
func (d *Document) Keys() []string {
	seen := make(map[string]bool)
	var keys []string
	for _, line := range d.Lines {
		if line.Kind != KindAssignment || seen[line.Key] {
			continue
		}
		seen[line.Key] = true
		keys = append(keys, line.Key)
	}
	return keys
}
