package document

import (
	"fmt"
	"strings"
)

// Line is one line of a document.
//
// A line built from a bare terminator has no text at all, which is distinct
// from a line whose text was set to the empty string.
type Line struct {
	number  int
	bom     []byte
	charset Charset
	text    string
	hasText bool
	ending  Newline
}

// NewLine creates a line. A non-empty bom must be a known signature and is only
// valid on line 1.
func NewLine(number int, bom []byte, text string, ending Newline) (*Line, error) {
	line := &Line{
		number:  number,
		text:    text,
		hasText: text != "",
		ending:  ending,
	}

	if len(bom) > 0 {
		if number != 1 {
			return nil, fmt.Errorf("%w: line %d cannot carry a byte order mark", ErrInvalidBOM, number)
		}
		charset, err := CharsetForBOM(bom)
		if err != nil {
			return nil, fmt.Errorf("%w: % X", err, bom)
		}
		line.bom = append([]byte(nil), bom...)
		line.charset = charset
	}

	return line, nil
}

// Number returns the 1-based line number.
func (l *Line) Number() int {
	return l.number
}

// BOM returns the byte-order mark carried by the line (line 1 only).
func (l *Line) BOM() []byte {
	return l.bom
}

// Charset returns the charset detected from the byte-order mark, or forced at build time.
func (l *Line) Charset() Charset {
	return l.charset
}

// Text returns the line content without BOM or terminator.
func (l *Line) Text() string {
	return l.text
}

// HasText reports whether the line has text, as opposed to being a bare terminator.
func (l *Line) HasText() bool {
	return l.hasText
}

// SetText replaces the line content.
func (l *Line) SetText(text string) {
	l.text = text
	l.hasText = true
}

// ClearText marks the line as having no text.
func (l *Line) ClearText() {
	l.text = ""
	l.hasText = false
}

// IsBlank reports whether the line has no text or only spaces and tabs.
func (l *Line) IsBlank() bool {
	return strings.Trim(l.text, " \t") == ""
}

// Ending returns the line terminator.
func (l *Line) Ending() Newline {
	return l.ending
}

// SetEnding replaces the line terminator.
func (l *Line) SetEnding(ending Newline) {
	l.ending = ending
}

// Raw returns the exact bytes of the line: BOM, text and terminator.
func (l *Line) Raw() []byte {
	raw := make([]byte, 0, len(l.bom)+len(l.text)+len(l.ending.Literal()))
	raw = append(raw, l.bom...)
	raw = append(raw, l.text...)
	raw = append(raw, l.ending.Literal()...)
	return raw
}

// String returns the raw line as a string.
func (l *Line) String() string {
	return string(l.Raw())
}

func (l *Line) setCharset(charset Charset) {
	l.charset = charset
	l.bom = charset.BOM()
}

func (l *Line) setNumber(number int) {
	l.number = number
	if number != 1 {
		l.bom = nil
		l.charset = ""
	}
}
