package document

import (
	"bytes"
	"errors"
	"strings"
)

// ErrInvalidBOM is returned when a byte-order mark is not one of the known signatures,
// or is attached to a line other than the first.
var ErrInvalidBOM = errors.New("invalid byte order mark")

// Charset is a text encoding recognized by editorconfig.
// The zero value means no charset was detected.
type Charset string

// Known charsets.
const (
	Latin1  Charset = "latin1"
	UTF8    Charset = "utf-8"
	UTF8BOM Charset = "utf-8-bom"
	UTF16BE Charset = "utf-16be"
	UTF16LE Charset = "utf-16le"
	UTF32BE Charset = "utf-32be"
	UTF32LE Charset = "utf-32le"
)

type bomSignature struct {
	charset Charset
	bom     []byte
}

// bomTable is ordered by decreasing signature length: FF FE 00 00 (utf-32le)
// must be tried before its prefix FF FE (utf-16le).
//
//nolint:gochecknoglobals // Read-only lookup table.
var bomTable = []bomSignature{
	{UTF32LE, []byte{0xFF, 0xFE, 0x00, 0x00}},
	{UTF32BE, []byte{0x00, 0x00, 0xFE, 0xFF}},
	{UTF8BOM, []byte{0xEF, 0xBB, 0xBF}},
	{UTF16BE, []byte{0xFE, 0xFF}},
	{UTF16LE, []byte{0xFF, 0xFE}},
}

// Charsets returns every known charset.
func Charsets() []Charset {
	return []Charset{Latin1, UTF8, UTF8BOM, UTF16BE, UTF16LE, UTF32BE, UTF32LE}
}

// ParseCharset accepts editorconfig spellings ("utf-8-bom") and underscore
// spellings ("utf_8_bom"), case-insensitively.
func ParseCharset(name string) (Charset, bool) {
	normalized := Charset(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-"))
	for _, cs := range Charsets() {
		if cs == normalized {
			return cs, true
		}
	}
	return "", false
}

// BOM returns the byte-order mark written for the charset, or nil when the
// charset has none.
func (c Charset) BOM() []byte {
	for _, sig := range bomTable {
		if sig.charset == c {
			return bytes.Clone(sig.bom)
		}
	}
	return nil
}

// HasBOM reports whether the charset is written with a byte-order mark.
func (c Charset) HasBOM() bool {
	return c.BOM() != nil
}

// String returns the editorconfig name of the charset.
func (c Charset) String() string {
	return string(c)
}

// SniffBOM finds the longest known byte-order mark at the start of content.
// It never fails: content without a known signature returns ("", nil).
func SniffBOM(content []byte) (Charset, []byte) {
	for _, sig := range bomTable {
		if bytes.HasPrefix(content, sig.bom) {
			return sig.charset, content[:len(sig.bom)]
		}
	}
	return "", nil
}

// CharsetForBOM returns the charset identified by an exact byte-order mark.
func CharsetForBOM(bom []byte) (Charset, error) {
	for _, sig := range bomTable {
		if bytes.Equal(sig.bom, bom) {
			return sig.charset, nil
		}
	}
	return "", ErrInvalidBOM
}
