package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhamidi/avhelper/java"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const encoderSource = `package com.example;

import com.google.auto.value.AutoValue;

@AutoValue
public abstract class Point<T> implements Comparable<Point<T>> {
    public abstract int x();

    public static Point create(int x) {
        return new AutoValue_Point(x);
    }

    interface Visitor {
        void visit(String... names);
    }
}
`

func parseClass(t *testing.T) *java.Class {
	t.Helper()
	f, err := java.ParseFile("Point.java", []byte(encoderSource))
	require.NoError(t, err)
	require.Len(t, f.Classes, 1)
	return f.Classes[0]
}

func TestLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(parseClass(t)))

	want := "class\tcom.example.Point\tpublic,abstract\n" +
		"method\tx\tint\t-\tpublic,abstract\n" +
		"method\tcreate\tPoint\tint x\tpublic,static\n" +
		"interface\tcom.example.Point.Visitor\t-\n" +
		"method\tvisit\tvoid\tString... names\tabstract\n"
	assert.Equal(t, want, buf.String())
}

func TestJavaEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJavaEncoder(&buf).Encode(parseClass(t)))

	want := "package com.example;\n\n" +
		"@AutoValue\n" +
		"public abstract class Point<T> implements Comparable<Point<T>> {\n" +
		"    public abstract int x();\n" +
		"\n" +
		"    public static Point create(int x) {\n" +
		"    }\n" +
		"\n" +
		"    interface Visitor {\n" +
		"        void visit(String... names);\n" +
		"    }\n" +
		"}\n"
	assert.Equal(t, want, buf.String())
}

func TestJSONEncoder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(parseClass(t)))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "com.example.Point", decoded["qualified"])
	assert.Equal(t, "class", decoded["kind"])
	assert.Equal(t, []interface{}{"Comparable<Point<T>>"}, decoded["interfaces"])
	assert.Len(t, decoded["methods"], 2)
	assert.Len(t, decoded["nested"], 1)
}

func TestNewEncoder(t *testing.T) {
	for _, name := range []string{"json", "line", "java"} {
		enc, err := NewEncoder(name, &bytes.Buffer{})
		require.NoError(t, err)
		assert.NotNil(t, enc)
	}
	_, err := NewEncoder("yaml", &bytes.Buffer{})
	assert.Error(t, err)
}
