package java

import (
	"strings"
	"testing"
)

func TestStaticOrTopLevelClassAt(t *testing.T) {
	src := `package p;

public abstract class Outer {
    abstract String a();

    public abstract static class Nested {
        abstract int b();

        class Inner {
            void c() {}
        }
    }

    class InnerOfOuter {
        void d() {}
    }
}

class Second {
    void e() {}
}
`
	f, err := ParseFile("Outer.java", []byte(src))
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}

	tests := []struct {
		marker string
		want   string
	}{
		{"abstract String a", "p.Outer"},
		{"abstract int b", "p.Outer.Nested"},
		{"void c", "p.Outer.Nested"},
		{"void d", "p.Outer"},
		{"void e", "p.Second"},
		{"public abstract class", "p.Outer"},
	}

	for _, tt := range tests {
		t.Run(tt.marker, func(t *testing.T) {
			offset := strings.Index(src, tt.marker)
			if offset < 0 {
				t.Fatalf("marker %q not in source", tt.marker)
			}
			c := f.StaticOrTopLevelClassAt(offset)
			if c == nil {
				t.Fatalf("no class at offset %d", offset)
			}
			if c.Qualified != tt.want {
				t.Errorf("class at %q = %q, want %q", tt.marker, c.Qualified, tt.want)
			}
		})
	}

	if c := f.ClassAt(strings.Index(src, "void c")); c == nil || c.Name != "Inner" {
		t.Errorf("ClassAt(void c) = %v, want Inner", c)
	}
	if c := f.ClassAt(0); c != nil {
		t.Errorf("ClassAt(0) = %q, want nil", c.Name)
	}
}

func TestOffset(t *testing.T) {
	f := &File{Source: []byte("ab\ncdef\n\ng")}

	tests := []struct {
		line, column int
		want         int
	}{
		{1, 0, 0},
		{1, 1, 1},
		{2, 0, 3},
		{2, 3, 6},
		{2, 99, 7},
		{3, 0, 8},
		{4, 0, 9},
	}
	for _, tt := range tests {
		if got := f.Offset(tt.line, tt.column); got != tt.want {
			t.Errorf("Offset(%d, %d) = %d, want %d", tt.line, tt.column, got, tt.want)
		}
	}
}
