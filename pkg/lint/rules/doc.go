// Package rules provides the built-in editorconfig rules for goeclint.
//
// Each rule enforces one editorconfig setting and is either a line rule,
// evaluated once per line, or a document rule, evaluated once per document:
//
//   - charset (document): byte-order mark and latin1 range
//   - indent_style (line): tabs or spaces in leading whitespace
//   - indent_size (line): width of space indentation
//   - tab_width (line): tab stop width used by the indent rules
//   - trim_trailing_whitespace (line): no spaces or tabs before the terminator
//   - end_of_line (line): line terminator
//   - insert_final_newline (document): terminator on the last line
//   - max_line_length (line): characters per line
//
// NewTable returns them in the fixed evaluation order above.
package rules
