// Package filetype classifies files before they are checked. It uses go-enry
// to spot binary content, vendored directories, generated files and the
// language a file is written in.
package filetype

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/goeclint/pkg/document"
)

// Info describes a file.
type Info struct {
	// Binary reports content that is not text. Binary files are skipped.
	Binary bool

	// Generated reports machine-generated content, such as minified files or lock files.
	Generated bool

	// Language is the detected language name, empty when unknown.
	Language string
}

// Classify inspects the path and content of a file.
func Classify(path string, content []byte) Info {
	return Info{
		Binary:    IsBinary(content),
		Generated: enry.IsGenerated(path, content),
		Language:  Language(path, content),
	}
}

// IsBinary reports whether content looks binary. Content opening with a
// UTF-16 or UTF-32 byte order mark is text even though it holds NUL bytes.
func IsBinary(content []byte) bool {
	if charset, bom := document.SniffBOM(content); len(bom) > 0 && charset != document.UTF8BOM {
		return false
	}
	return enry.IsBinary(content)
}

// IsVendored reports whether path lies in a vendored or third-party location
// such as vendor/ or node_modules/.
func IsVendored(path string) bool {
	slashed := filepath.ToSlash(path)
	slashed = strings.TrimPrefix(slashed, "./")
	return enry.IsVendor(slashed)
}

// Language returns the lower-cased language of the file, or "" when enry
// cannot tell.
func Language(path string, content []byte) string {
	lang := enry.GetLanguage(filepath.Base(path), content)
	return strings.ToLower(lang)
}
