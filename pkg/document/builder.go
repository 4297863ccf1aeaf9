package document

import (
	"bytes"
	"fmt"
)

// Build parses content into a Document. It never fails: content without a
// known byte-order mark is treated as having none.
//
// Build satisfies bytes.Equal(Build(content).Bytes(), content).
func Build(content []byte) *Document {
	charset, bom := SniffBOM(content)
	return build(content[len(bom):], bom, charset)
}

// BuildAs parses content as the given charset. A leading byte-order mark
// matching the charset is stripped; line 1 reports the forced charset.
func BuildAs(content []byte, charset Charset) (*Document, error) {
	parsed, ok := ParseCharset(string(charset))
	if !ok {
		return nil, fmt.Errorf("%w: unknown charset %q", ErrInvalidBOM, charset)
	}
	charset = parsed

	bom := charset.BOM()
	if len(bom) > 0 && bytes.HasPrefix(content, bom) {
		content = content[len(bom):]
	} else {
		bom = nil
	}

	doc := build(content, bom, charset)
	doc.lines[0].charset = charset
	doc.charset = charset
	return doc, nil
}

func build(body, bom []byte, charset Charset) *Document {
	doc := &Document{charset: charset}

	start := 0
	for idx := 0; idx < len(body); {
		ending, width := DetectNewline(body, idx)
		if ending == None {
			idx++
			continue
		}
		doc.lines = append(doc.lines, newBuiltLine(len(doc.lines)+1, body[start:idx], ending))
		idx += width
		start = idx
	}

	// Trailing text without a terminator, or an empty body, forms the last line.
	if start < len(body) || len(doc.lines) == 0 {
		doc.lines = append(doc.lines, newBuiltLine(len(doc.lines)+1, body[start:], None))
	}

	if len(bom) > 0 {
		doc.lines[0].bom = bytes.Clone(bom)
		doc.lines[0].charset = charset
	}

	return doc
}

func newBuiltLine(number int, text []byte, ending Newline) *Line {
	return &Line{
		number:  number,
		text:    string(text),
		hasText: len(text) > 0,
		ending:  ending,
	}
}
