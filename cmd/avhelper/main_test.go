package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const namedSource = `package com.example.api;

public interface Named {
    String label();
}
`

const fooSource = `package com.example;

import com.example.api.Named;
import com.google.auto.value.AutoValue;

@AutoValue
public abstract class Foo implements Named {
    public abstract String id();
}
`

// project lays out a small source tree and returns the path of Foo.java.
func project(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "src", "main", "java")
	files := map[string]string{
		filepath.Join(root, "com", "example", "api", "Named.java"): namedSource,
		filepath.Join(root, "com", "example", "Foo.java"):          fooSource,
	}
	for path, content := range files {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return filepath.Join(root, "com", "example", "Foo.java")
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestBuilderPrintsResult(t *testing.T) {
	path := project(t)

	stdout, _, err := run(t, "builder", path, "--class", "Foo")
	require.NoError(t, err)

	assert.Contains(t, stdout, "public abstract Builder id(String id);")
	assert.Contains(t, stdout, "public abstract Builder label(String label);", "supertypes are found below the source root")
	assert.Contains(t, stdout, "return new AutoValue_Foo.Builder();")

	unchanged, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fooSource, string(unchanged))
}

func TestCreateWritesFile(t *testing.T) {
	path := project(t)

	_, stderr, err := run(t, "create", path, "--line", "8", "--column", "5", "-w")
	require.NoError(t, err)
	assert.Contains(t, stderr, "updated")

	written, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(written), "    public static Foo create(String id, String label) {\n        return new AutoValue_Foo(id, label);\n    }\n")

	_, stderr, err = run(t, "create", path, "--class", "Foo", "-w")
	require.NoError(t, err)
	assert.Contains(t, stderr, "up to date")
}

func TestSetterPrefixFlag(t *testing.T) {
	path := project(t)

	stdout, _, err := run(t, "builder", path, "--class", "Foo", "--setter-prefix", "--nonnull", "org.example.NonNull")
	require.NoError(t, err)
	assert.Contains(t, stdout, "import org.example.NonNull;")
	assert.Contains(t, stdout, "public abstract Builder setId(String id);")
}

func TestGenerateNotApplicable(t *testing.T) {
	path := project(t)
	named := filepath.Join(filepath.Dir(path), "api", "Named.java")

	stdout, stderr, err := run(t, "builder", named, "--class", "Named", "-w")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "skipped")

	content, err := os.ReadFile(named)
	require.NoError(t, err)
	assert.Equal(t, namedSource, string(content))
}

func TestGenerateRequiresTarget(t *testing.T) {
	path := project(t)

	_, _, err := run(t, "builder", path)
	assert.Error(t, err)

	_, _, err = run(t, "builder", path, "--class", "Foo", "--line", "8")
	assert.Error(t, err)

	_, _, err = run(t, "builder", filepath.Join(t.TempDir(), "Missing.java"), "--class", "Foo")
	assert.Error(t, err)
}

func TestAccessorsCommand(t *testing.T) {
	path := project(t)

	stdout, _, err := run(t, "accessors", path, "--class", "Foo")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ACCESSOR")
	assert.Regexp(t, `id\s+id\s+id\s+String\s+-\s+com\.example\.Foo`, stdout)
	assert.Regexp(t, `label\s+label\s+label\s+String\s+-\s+com\.example\.api\.Named`, stdout)
}

func TestParseCommand(t *testing.T) {
	path := project(t)

	stdout, _, err := run(t, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "com.example.Foo")
	assert.Contains(t, stdout, "method\tid\tString\t-\tpublic,abstract\n")

	stdout, _, err = run(t, "parse", path, "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"qualified": "com.example.Foo"`)

	stdout, _, err = run(t, "parse", path, "--format", "ast")
	require.NoError(t, err)
	assert.Contains(t, stdout, "CompilationUnit")

	_, _, err = run(t, "parse", path, "--format", "yaml")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := run(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"goVersion"`)
}

func TestSourceRoot(t *testing.T) {
	tests := []struct {
		path, pkg, want string
	}{
		{"/src/com/example/Foo.java", "com.example", "/src"},
		{"/src/Foo.java", "", "/src"},
		{"/src/other/Foo.java", "com.example", "/src/other"},
		{"/example/Foo.java", "com.example", "/example"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sourceRoot(filepath.FromSlash(tt.path), tt.pkg), tt.path)
	}
}
