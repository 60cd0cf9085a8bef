// Package edit records text edits against a parsed Java file and applies
// them together. Offsets always refer to the source the transaction was
// started on; nothing is applied until Commit.
package edit

import (
	"bytes"
	"sort"
	"strings"

	"github.com/dhamidi/avhelper/format"
	"github.com/dhamidi/avhelper/java"
	"github.com/dhamidi/avhelper/java/parser"
	"github.com/pkg/errors"
)

var (
	// ErrOverlap is returned by Commit when two edits touch the same text.
	ErrOverlap = errors.New("overlapping edits")
	// ErrOutOfRange is returned for spans outside the source.
	ErrOutOfRange = errors.New("span outside the document")
	// ErrClosed is returned when a committed or rolled back transaction is
	// used again.
	ErrClosed = errors.New("transaction already closed")
)

// Edit replaces Source[Start:End] with Text.
type Edit struct {
	Start int
	End   int
	Text  string
}

// Result is the outcome of a committed transaction.
type Result struct {
	// Edits are sorted by Start and refer to the original source.
	Edits []Edit
	// Source is the original source with all edits applied.
	Source []byte
}

// Changed reports whether the transaction modified the source.
func (r *Result) Changed() bool {
	return len(r.Edits) > 0
}

// Tx collects edits for one file.
type Tx struct {
	file    *java.File
	unit    string
	edits   []Edit
	members map[*java.Class][]string
	order   []*java.Class
	imports map[string]string
	added   []string
	closed  bool
}

// Begin starts a transaction on f.
func Begin(f *java.File) *Tx {
	return &Tx{
		file:    f,
		unit:    format.DetectIndent(f.Source),
		members: map[*java.Class][]string{},
		imports: map[string]string{},
	}
}

func (tx *Tx) File() *java.File {
	return tx.file
}

// IndentUnit is the indentation unit used by the file.
func (tx *Tx) IndentUnit() string {
	return tx.unit
}

// MemberDepth returns the indentation depth, in units, of members of c.
func (tx *Tx) MemberDepth(c *java.Class) int {
	indent := format.LineIndent(tx.file.Source, c.Node.Span.Start.Offset)
	return format.Depth(indent, tx.unit) + 1
}

// Render renders m as a member of c.
func (tx *Tx) Render(m format.Member, c *java.Class) string {
	return format.Render(m, tx.unit, tx.MemberDepth(c))
}

func (tx *Tx) check(start, end int) error {
	if tx.closed {
		return ErrClosed
	}
	if start < 0 || end < start || end > len(tx.file.Source) {
		return errors.Wrapf(ErrOutOfRange, "%s: [%d, %d)", tx.file.Path, start, end)
	}
	return nil
}

// Replace replaces the text between start and end. Replacing text with
// itself records nothing.
func (tx *Tx) Replace(start, end int, text string) error {
	if err := tx.check(start, end); err != nil {
		return err
	}
	if string(tx.file.Source[start:end]) == text {
		return nil
	}
	tx.edits = append(tx.edits, Edit{Start: start, End: end, Text: text})
	return nil
}

func (tx *Tx) Insert(offset int, text string) error {
	return tx.Replace(offset, offset, text)
}

func (tx *Tx) Delete(start, end int) error {
	return tx.Replace(start, end, "")
}

// ReplaceNode replaces the declaration n with text rendered at the
// declaration's depth. The indentation of the first line is dropped since
// the declaration already starts after it.
func (tx *Tx) ReplaceNode(n *parser.Node, text string) error {
	return tx.Replace(n.Span.Start.Offset, n.Span.End.Offset, strings.TrimLeft(text, " \t"))
}

// InsertMember appends text, a member rendered with Render, to the end of the
// body of c. Members added to the same class are separated by blank lines
// and keep their order.
func (tx *Tx) InsertMember(c *java.Class, text string) error {
	if tx.closed {
		return ErrClosed
	}
	if c.Body == nil {
		return errors.Errorf("%s: class %s has no body", tx.file.Path, c.Name)
	}
	if _, ok := tx.members[c]; !ok {
		tx.order = append(tx.order, c)
	}
	tx.members[c] = append(tx.members[c], text)
	return nil
}

// DeleteMethod removes m together with its Javadoc comment, the lines it
// occupies and one adjacent blank line.
func (tx *Tx) DeleteMethod(m *java.Method) error {
	start, end := m.Node.Span.Start.Offset, m.Node.Span.End.Offset
	if doc := tx.javadoc(start); doc != nil {
		start = doc.Span.Start.Offset
	}
	start, end = tx.expandToLines(start, end)
	return tx.Delete(start, end)
}

// javadoc returns the doc comment directly preceding offset.
func (tx *Tx) javadoc(offset int) *parser.Token {
	src := tx.file.Source
	for i := len(tx.file.Comments) - 1; i >= 0; i-- {
		c := &tx.file.Comments[i]
		if c.Span.End.Offset > offset {
			continue
		}
		if len(bytes.TrimSpace(src[c.Span.End.Offset:offset])) != 0 {
			return nil
		}
		if c.IsJavadoc() {
			return c
		}
		return nil
	}
	return nil
}

// expandToLines grows [start, end) to whole lines when the span is alone on
// its lines, then takes one blank line before it, or after it when there is
// none before.
func (tx *Tx) expandToLines(start, end int) (int, int) {
	src := tx.file.Source
	lineStart := start
	for lineStart > 0 && isBlank(src[lineStart-1]) {
		lineStart--
	}
	if lineStart > 0 && src[lineStart-1] != '\n' {
		return start, end
	}
	lineEnd := end
	for lineEnd < len(src) && isBlank(src[lineEnd]) {
		lineEnd++
	}
	if lineEnd < len(src) && src[lineEnd] != '\n' {
		return start, end
	}
	if lineEnd < len(src) {
		lineEnd++
	}

	if prev := blankLineBefore(src, lineStart); prev >= 0 {
		return prev, lineEnd
	}
	if next := blankLineAfter(src, lineEnd); next >= 0 {
		return lineStart, next
	}
	return lineStart, lineEnd
}

// blankLineBefore returns the start of the line before offset when that line
// is blank, or -1.
func blankLineBefore(src []byte, offset int) int {
	if offset == 0 {
		return -1
	}
	i := offset - 1
	for i > 0 && isBlank(src[i-1]) {
		i--
	}
	if i == 0 || src[i-1] == '\n' {
		return i
	}
	return -1
}

// blankLineAfter returns the end of the blank line starting at offset, or -1.
func blankLineAfter(src []byte, offset int) int {
	i := offset
	for i < len(src) && isBlank(src[i]) {
		i++
	}
	if i < len(src) && src[i] == '\n' {
		return i + 1
	}
	return -1
}

func isBlank(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r'
}

// Rollback discards every recorded edit.
func (tx *Tx) Rollback() {
	tx.edits = nil
	tx.members = map[*java.Class][]string{}
	tx.order = nil
	tx.imports = map[string]string{}
	tx.added = nil
	tx.closed = true
}

// Commit validates the recorded edits and applies them. On error the
// transaction is rolled back and the source is left untouched.
func (tx *Tx) Commit() (*Result, error) {
	if tx.closed {
		return nil, ErrClosed
	}
	defer tx.Rollback()

	edits := append([]Edit(nil), tx.edits...)
	for _, c := range tx.order {
		edits = append(edits, tx.memberEdit(c, tx.members[c]))
	}
	if imp, ok := tx.importEdit(); ok {
		edits = append(edits, imp)
	}

	sort.SliceStable(edits, func(i, j int) bool {
		if edits[i].Start != edits[j].Start {
			return edits[i].Start < edits[j].Start
		}
		return edits[i].End < edits[j].End
	})
	for i := 1; i < len(edits); i++ {
		prev, cur := edits[i-1], edits[i]
		if prev.End > cur.Start {
			return nil, errors.Wrapf(ErrOverlap, "%s: [%d, %d) and [%d, %d)", tx.file.Path, prev.Start, prev.End, cur.Start, cur.End)
		}
	}

	return &Result{Edits: edits, Source: Apply(tx.file.Source, edits)}, nil
}

// Apply applies edits sorted by Start to src.
func Apply(src []byte, edits []Edit) []byte {
	var out bytes.Buffer
	last := 0
	for _, e := range edits {
		out.Write(src[last:e.Start])
		out.WriteString(e.Text)
		last = e.End
	}
	out.Write(src[last:])
	return out.Bytes()
}

// memberEdit places members before the closing brace of c. A brace on its
// own line keeps its line; a brace sharing its line with other text is
// moved to a new line.
func (tx *Tx) memberEdit(c *java.Class, members []string) Edit {
	src := tx.file.Source
	closing := c.Body.Span.End.Offset - 1
	joined := strings.Join(members, "\n\n")

	lineStart := closing
	for lineStart > 0 && isBlank(src[lineStart-1]) {
		lineStart--
	}
	last := lineStart - 1
	for last >= 0 && (isBlank(src[last]) || src[last] == '\n') {
		last--
	}
	empty := last < c.Body.Span.Start.Offset+1

	if lineStart > 0 && src[lineStart-1] == '\n' {
		if !empty {
			joined = "\n" + joined
		}
		return Edit{Start: lineStart, End: lineStart, Text: joined + "\n"}
	}

	indent := format.LineIndent(src, closing)
	return Edit{Start: lineStart, End: closing, Text: "\n" + joined + "\n" + indent}
}
