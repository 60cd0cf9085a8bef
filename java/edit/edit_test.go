package edit

import (
	"strings"
	"testing"

	"github.com/dhamidi/avhelper/format"
	"github.com/dhamidi/avhelper/java"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, src string) *java.File {
	t.Helper()
	f, err := java.ParseFile("Test.java", []byte(src))
	require.NoError(t, err)
	return f
}

func commit(t *testing.T, tx *Tx) string {
	t.Helper()
	res, err := tx.Commit()
	require.NoError(t, err)
	return string(res.Source)
}

func TestReplaceAndInsert(t *testing.T) {
	src := "class A { int x; }"
	tx := Begin(parse(t, src))

	require.NoError(t, tx.Replace(10, 13, "long"))
	require.NoError(t, tx.Insert(0, "final "))

	assert.Equal(t, "final class A { long x; }", commit(t, tx))
}

func TestReplaceWithSameTextIsNoop(t *testing.T) {
	src := "class A { int x; }"
	tx := Begin(parse(t, src))
	require.NoError(t, tx.Replace(10, 13, "int"))

	res, err := tx.Commit()
	require.NoError(t, err)
	assert.False(t, res.Changed())
	assert.Equal(t, src, string(res.Source))
}

func TestOverlappingEditsRollBack(t *testing.T) {
	f := parse(t, "class A { int x; }")
	tx := Begin(f)
	require.NoError(t, tx.Replace(10, 16, "long y;"))
	require.NoError(t, tx.Replace(14, 15, "z"))

	_, err := tx.Commit()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOverlap)
	assert.Equal(t, "class A { int x; }", string(f.Source))

	_, err = tx.Commit()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestOutOfRange(t *testing.T) {
	tx := Begin(parse(t, "class A {}"))
	assert.ErrorIs(t, tx.Replace(5, 50, ""), ErrOutOfRange)
	assert.ErrorIs(t, tx.Replace(5, 4, ""), ErrOutOfRange)
}

func TestRollback(t *testing.T) {
	tx := Begin(parse(t, "class A {}"))
	require.NoError(t, tx.Insert(0, "x"))
	tx.AddImport("java.util.List")
	tx.Rollback()

	_, err := tx.Commit()
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, tx.Insert(0, "y"), ErrClosed)
}

func TestInsertMember(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "brace on its own line",
			src:  "class A {\n    int x;\n}\n",
			want: "class A {\n    int x;\n\n    void a();\n\n    void b();\n}\n",
		},
		{
			name: "empty body on two lines",
			src:  "class A {\n}\n",
			want: "class A {\n    void a();\n\n    void b();\n}\n",
		},
		{
			name: "empty body on one line",
			src:  "class A {}\n",
			want: "class A {\n    void a();\n\n    void b();\n}\n",
		},
		{
			name: "nested class",
			src:  "class A {\n    static class B {\n        int y;\n    }\n}\n",
			want: "class A {\n    static class B {\n        int y;\n\n        void a();\n\n        void b();\n    }\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parse(t, tt.src)
			target := f.Classes[0]
			if len(target.Nested) > 0 {
				target = target.Nested[0]
			}
			tx := Begin(f)
			for _, name := range []string{"a", "b"} {
				text := tx.Render(format.Method{ReturnType: "void", Name: name}, target)
				require.NoError(t, tx.InsertMember(target, text))
			}
			assert.Equal(t, tt.want, commit(t, tx))
		})
	}
}

func TestReplaceNode(t *testing.T) {
	src := "class A {\n    /** Doc. */\n    abstract int x();\n}\n"
	f := parse(t, src)
	m := f.Classes[0].Methods[0]

	tx := Begin(f)
	text := tx.Render(format.Method{Annotations: []string{"Nullable"}, Modifiers: []string{"abstract"}, ReturnType: "Integer", Name: "x"}, f.Classes[0])
	require.NoError(t, tx.ReplaceNode(m.Node, text))
	assert.Equal(t, "class A {\n    /** Doc. */\n    @Nullable\n    abstract Integer x();\n}\n", commit(t, tx))

	tx = Begin(f)
	text = tx.Render(format.Method{Modifiers: []string{"abstract"}, ReturnType: "int", Name: "x"}, f.Classes[0])
	require.NoError(t, tx.ReplaceNode(m.Node, text))
	res, err := tx.Commit()
	require.NoError(t, err)
	assert.False(t, res.Changed(), "re-rendering an identical declaration must not produce edits")
}

func TestDeleteMethod(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		delete string
		want   string
	}{
		{
			name:   "middle member with javadoc",
			src:    "class A {\n    void a();\n\n    /**\n     * Stale.\n     */\n    @Deprecated\n    void stale();\n\n    void b();\n}\n",
			delete: "stale",
			want:   "class A {\n    void a();\n\n    void b();\n}\n",
		},
		{
			name:   "first member",
			src:    "class A {\n    void stale();\n\n    void b();\n}\n",
			delete: "stale",
			want:   "class A {\n    void b();\n}\n",
		},
		{
			name:   "last member",
			src:    "class A {\n    void a();\n\n    void stale() {\n        return;\n    }\n}\n",
			delete: "stale",
			want:   "class A {\n    void a();\n}\n",
		},
		{
			name:   "line comment is kept",
			src:    "class A {\n    void a();\n\n    // note\n    void stale();\n}\n",
			delete: "stale",
			want:   "class A {\n    void a();\n\n    // note\n}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := parse(t, tt.src)
			methods := f.Classes[0].MethodsNamed(tt.delete)
			require.Len(t, methods, 1)

			tx := Begin(f)
			require.NoError(t, tx.DeleteMethod(methods[0]))
			assert.Equal(t, tt.want, commit(t, tx))
		})
	}
}

func TestDeleteAdjacentMethods(t *testing.T) {
	src := "class A {\n    void a();\n\n    void s1();\n\n    void s2();\n\n    void b();\n}\n"
	f := parse(t, src)
	tx := Begin(f)
	for _, m := range f.Classes[0].Methods {
		if strings.HasPrefix(m.Name, "s") {
			require.NoError(t, tx.DeleteMethod(m))
		}
	}
	assert.Equal(t, "class A {\n    void a();\n\n    void b();\n}\n", commit(t, tx))
}

func TestDeleteAndInsertAtEnd(t *testing.T) {
	src := "class A {\n    void a();\n\n    void stale();\n}\n"
	f := parse(t, src)
	c := f.Classes[0]
	tx := Begin(f)
	require.NoError(t, tx.DeleteMethod(c.MethodsNamed("stale")[0]))
	require.NoError(t, tx.InsertMember(c, tx.Render(format.Method{ReturnType: "void", Name: "b"}, c)))
	assert.Equal(t, "class A {\n    void a();\n\n    void b();\n}\n", commit(t, tx))
}
