package java

// ClassAt returns the innermost class whose declaration contains the byte
// offset, or nil.
func (f *File) ClassAt(offset int) *Class {
	return findEnclosingClass(f.Classes, offset)
}

// StaticOrTopLevelClassAt returns the innermost class containing offset that
// is either top-level or static. Inner (non-static) classes are skipped in
// favor of their enclosing class.
func (f *File) StaticOrTopLevelClassAt(offset int) *Class {
	c := f.ClassAt(offset)
	for c != nil && !c.IsTopLevel() && !c.IsStatic() {
		c = c.Enclosing
	}
	return c
}

func findEnclosingClass(classes []*Class, offset int) *Class {
	for _, c := range classes {
		if !c.Node.Contains(offset) {
			continue
		}
		// Check nested classes first for more specific matches
		if inner := findEnclosingClass(c.Nested, offset); inner != nil {
			return inner
		}
		return c
	}
	return nil
}

// Offset converts a 1-based line and a 0-based byte column into an offset
// into the file source. Positions past the end of a line clamp to its end.
func (f *File) Offset(line, column int) int {
	offset := 0
	for l := 1; l < line && offset < len(f.Source); offset++ {
		if f.Source[offset] == '\n' {
			l++
		}
	}
	for c := 0; c < column && offset < len(f.Source) && f.Source[offset] != '\n'; c++ {
		offset++
	}
	return offset
}
