package document

import (
	"bytes"
	"slices"
)

// Document is an ordered sequence of lines plus a document-wide charset.
//
// Documents are owned by the single check, fix or infer call that built them
// and are mutated in place by fixes. Line numbers always run from 1 without gaps.
type Document struct {
	lines   []*Line
	charset Charset
}

// New creates a document from lines, renumbering them from 1.
func New(charset Charset, lines ...*Line) *Document {
	doc := &Document{
		lines:   lines,
		charset: charset,
	}
	doc.renumber()
	return doc
}

// Lines returns the lines of the document. The slice must not be modified.
func (d *Document) Lines() []*Line {
	return d.lines
}

// Len returns the number of lines.
func (d *Document) Len() int {
	return len(d.lines)
}

// Line returns the 1-based line, or nil when out of range.
func (d *Document) Line(number int) *Line {
	if number < 1 || number > len(d.lines) {
		return nil
	}
	return d.lines[number-1]
}

// Last returns the last line, or nil for a document without lines.
func (d *Document) Last() *Line {
	if len(d.lines) == 0 {
		return nil
	}
	return d.lines[len(d.lines)-1]
}

// IsEmpty reports whether the document holds no content at all.
func (d *Document) IsEmpty() bool {
	for _, line := range d.lines {
		if line.HasText() || line.Ending() != None {
			return false
		}
	}
	return true
}

// Push appends a line.
func (d *Document) Push(line *Line) {
	d.lines = append(d.lines, line)
	d.renumber()
}

// Pop removes and returns the last line, or nil when there is none.
func (d *Document) Pop() *Line {
	if len(d.lines) == 0 {
		return nil
	}
	last := d.lines[len(d.lines)-1]
	d.lines = d.lines[:len(d.lines)-1]
	d.renumber()
	return last
}

// Insert places line before the 0-based index. Out-of-range indexes append.
func (d *Document) Insert(index int, line *Line) {
	if index < 0 || index >= len(d.lines) {
		d.Push(line)
		return
	}
	d.lines = slices.Insert(d.lines, index, line)
	d.renumber()
}

// Remove deletes the 1-based line and returns it, or nil when out of range.
func (d *Document) Remove(number int) *Line {
	line := d.Line(number)
	if line == nil {
		return nil
	}
	d.lines = slices.Delete(d.lines, number-1, number)
	d.renumber()
	return line
}

// Charset returns the document charset.
func (d *Document) Charset() Charset {
	return d.charset
}

// SetCharset changes the document charset. Serialization then writes the
// byte-order mark of the new charset in place of the old one.
func (d *Document) SetCharset(charset Charset) {
	d.charset = charset
	if len(d.lines) > 0 {
		d.lines[0].setCharset(charset)
	}
}

// Bytes serializes the document. Without mutations it reproduces the bytes
// the document was built from.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	for _, line := range d.lines {
		buf.Write(line.Raw())
	}
	return buf.Bytes()
}

// String returns the serialized document as a string.
func (d *Document) String() string {
	return string(d.Bytes())
}

// renumber restores contiguous numbering. A line that moves into first
// position takes over the document byte-order mark.
func (d *Document) renumber() {
	for idx, line := range d.lines {
		if line.number == idx+1 {
			continue
		}
		line.setNumber(idx + 1)
		if idx == 0 {
			line.setCharset(d.charset)
		}
	}
}
