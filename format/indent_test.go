package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectIndent(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"four spaces", "class A {\n    void a();\n        // nested\n}\n", "    "},
		{"two spaces", "class A {\n  void a();\n    int b;\n}\n", "  "},
		{"tabs", "class A {\n\tvoid a();\n}\n", "\t"},
		{"javadoc ignored", "/**\n * Doc.\n */\nclass A {\n    void a();\n}\n", "    "},
		{"no indentation", "class A {}\n", DefaultIndent},
		{"blank lines ignored", "class A {\n \n   int a;\n}\n", "   "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectIndent([]byte(tt.src)))
		})
	}
}

func TestLineIndent(t *testing.T) {
	src := []byte("class A {\n    class B {\n        int x;\n    }\n}")

	assert.Equal(t, "", LineIndent(src, 0))
	assert.Equal(t, "    ", LineIndent(src, 14))
	assert.Equal(t, "        ", LineIndent(src, 30))
	assert.Equal(t, "", LineIndent(src, len(src)))
	assert.Equal(t, "", LineIndent(src, len(src)+10))
}

func TestDepth(t *testing.T) {
	assert.Equal(t, 2, Depth("        ", "    "))
	assert.Equal(t, 1, Depth("   ", "  "))
	assert.Equal(t, 2, Depth("\t\t", "\t"))
	assert.Equal(t, 0, Depth("", "    "))
}
