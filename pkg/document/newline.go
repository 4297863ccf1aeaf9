// Package document models a text file as a byte-order mark and an ordered
// sequence of lines, each carrying its own terminator.
package document

// Newline is a line terminator variant.
type Newline int

const (
	// None marks a line without a terminator (typically the last line of a file).
	None Newline = iota
	// LF is "\n".
	LF
	// CRLF is "\r\n".
	CRLF
	// CR is "\r".
	CR
)

// Literal returns the character sequence of the terminator.
func (n Newline) Literal() string {
	switch n {
	case LF:
		return "\n"
	case CRLF:
		return "\r\n"
	case CR:
		return "\r"
	default:
		return ""
	}
}

// String returns the editorconfig name of the terminator.
func (n Newline) String() string {
	switch n {
	case LF:
		return "lf"
	case CRLF:
		return "crlf"
	case CR:
		return "cr"
	default:
		return "none"
	}
}

// ParseNewline maps an end_of_line value to a Newline.
func ParseNewline(name string) (Newline, bool) {
	switch name {
	case "lf":
		return LF, true
	case "crlf":
		return CRLF, true
	case "cr":
		return CR, true
	default:
		return None, false
	}
}

// DetectNewline reports the terminator starting at offset and its length in bytes.
// It returns (None, 0) when no terminator starts there.
func DetectNewline(buf []byte, offset int) (Newline, int) {
	if offset < 0 || offset >= len(buf) {
		return None, 0
	}

	switch buf[offset] {
	case '\n':
		return LF, 1
	case '\r':
		if offset+1 < len(buf) && buf[offset+1] == '\n' {
			return CRLF, 2
		}
		return CR, 1
	default:
		return None, 0
	}
}
