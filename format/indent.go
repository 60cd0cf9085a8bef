package format

import (
	"bytes"
)

// DefaultIndent is used for sources without indented lines.
const DefaultIndent = "    "

// DetectIndent guesses the indentation unit of src: a tab when indented
// lines start with tabs, otherwise the smallest run of leading spaces.
// Javadoc continuation lines (" * ...") are ignored.
func DetectIndent(src []byte) string {
	smallest := 0
	for _, line := range bytes.Split(src, []byte("\n")) {
		trimmed := bytes.TrimLeft(line, " \t")
		if len(trimmed) == 0 || len(trimmed) == len(line) {
			continue
		}
		if trimmed[0] == '*' {
			continue
		}
		if line[0] == '\t' {
			return "\t"
		}
		n := len(line) - len(bytes.TrimLeft(line, " "))
		if n > 0 && (smallest == 0 || n < smallest) {
			smallest = n
		}
	}
	if smallest == 0 {
		return DefaultIndent
	}
	return string(bytes.Repeat([]byte(" "), smallest))
}

// LineIndent returns the leading whitespace of the line containing offset.
func LineIndent(src []byte, offset int) string {
	if offset > len(src) {
		offset = len(src)
	}
	start := bytes.LastIndexByte(src[:offset], '\n') + 1
	end := start
	for end < len(src) && (src[end] == ' ' || src[end] == '\t') {
		end++
	}
	return string(src[start:end])
}

// Depth returns how many units make up indent, rounding down.
func Depth(indent, unit string) int {
	if unit == "" {
		return 0
	}
	if unit == "\t" {
		return bytes.Count([]byte(indent), []byte("\t"))
	}
	width := 0
	for _, r := range indent {
		if r == '\t' {
			width += len(unit)
		} else {
			width++
		}
	}
	return width / len(unit)
}
