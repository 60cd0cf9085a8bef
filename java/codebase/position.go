package codebase

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/dhamidi/avhelper/java/edit"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Offset converts an LSP position, whose character counts UTF-16 code
// units, into a byte offset into content. Positions past the end of a line
// clamp to its end.
func Offset(content []byte, pos protocol.Position) int {
	offset := 0
	for line := protocol.UInteger(0); line < pos.Line; offset++ {
		if offset >= len(content) {
			return len(content)
		}
		if content[offset] == '\n' {
			line++
		}
	}

	units := protocol.UInteger(0)
	for offset < len(content) && content[offset] != '\n' && units < pos.Character {
		r, size := utf8.DecodeRune(content[offset:])
		units += protocol.UInteger(utf16.RuneLen(r))
		if units > pos.Character {
			break
		}
		offset += size
	}
	return offset
}

// Position converts a byte offset into an LSP position.
func Position(content []byte, offset int) protocol.Position {
	if offset > len(content) {
		offset = len(content)
	}
	var pos protocol.Position
	lineStart := 0
	for i := 0; i < offset; i++ {
		if content[i] == '\n' {
			pos.Line++
			lineStart = i + 1
		}
	}
	for i := lineStart; i < offset; {
		r, size := utf8.DecodeRune(content[i:])
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		pos.Character += protocol.UInteger(n)
		i += size
	}
	return pos
}

// TextEdits converts byte range edits against content into LSP text edits.
func TextEdits(content []byte, edits []edit.Edit) []protocol.TextEdit {
	result := make([]protocol.TextEdit, 0, len(edits))
	for _, e := range edits {
		result = append(result, protocol.TextEdit{
			Range: protocol.Range{
				Start: Position(content, e.Start),
				End:   Position(content, e.End),
			},
			NewText: e.Text,
		})
	}
	return result
}
