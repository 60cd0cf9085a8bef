package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/avhelper/autovalue"
	"github.com/dhamidi/avhelper/java"
	"github.com/dhamidi/avhelper/java/codebase"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// targetOptions selects the value class to work on and the configuration
// to generate with.
type targetOptions struct {
	line          int
	column        int
	class         string
	sourcePaths   []string
	setterPrefix  bool
	stripPrefixes bool
	nonNull       string
}

func (o *targetOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.line, "line", "l", 0, "1-based line of the caret")
	cmd.Flags().IntVarP(&o.column, "column", "c", 1, "1-based column of the caret")
	cmd.Flags().StringVar(&o.class, "class", "", "name of the value class, simple or relative to the package")
	cmd.Flags().StringArrayVar(&o.sourcePaths, "source-path", nil, "additional source root to search for supertypes (repeatable)")
	cmd.Flags().BoolVar(&o.setterPrefix, "setter-prefix", false, "name builder setters setFoo instead of foo")
	cmd.Flags().BoolVar(&o.stripPrefixes, "strip-prefixes", false, "derive property names from getFoo()/isFoo() accessors")
	cmd.Flags().StringVar(&o.nonNull, "nonnull", "", "qualified non-null annotation to emit")

	cmd.MarkFlagsOneRequired("line", "class")
	cmd.MarkFlagsMutuallyExclusive("line", "class")
}

// config layers the environment and the flags over the defaults.
func (o *targetOptions) config() *autovalue.Config {
	cfg := autovalue.DefaultConfig()
	cfg.ApplyEnv()
	if o.setterPrefix {
		cfg.SetterPrefix = true
	}
	if o.stripPrefixes {
		cfg.StripAccessorPrefixes = true
	}
	if o.nonNull != "" {
		cfg.NonNull = o.nonNull
		cfg.NonNullAnnotations = append(cfg.NonNullAnnotations, o.nonNull)
	}
	return cfg
}

// load parses path together with its source root and the extra source
// paths, and finds the value class selected by the options.
func (o *targetOptions) load(path string, cfg *autovalue.Config) (*autovalue.Target, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve %s", path)
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}
	f, err := java.ParseFile(abs, content)
	if err != nil {
		return nil, err
	}

	root := sourceRoot(abs, f.Package)
	c := codebase.New(root)
	if err := c.ScanAll(); err != nil {
		log.Warningf("%s", err)
	}
	for _, dir := range o.sourcePaths {
		if err := c.ScanDir(dir); err != nil {
			log.Warningf("%s", err)
		}
	}
	if err := c.UpdateFile(abs, content); err != nil {
		return nil, err
	}
	f = c.GetFile(abs).File
	log.Debugf("source root %s, %d classes", root, c.ClassCount())

	if o.class != "" {
		return autovalue.FindNamed(f, o.class, c, cfg)
	}
	if o.line < 1 || o.column < 1 {
		return nil, errors.Errorf("invalid position %d:%d", o.line, o.column)
	}
	return autovalue.Find(f, f.Offset(o.line, o.column-1), c, cfg)
}

// sourceRoot returns the directory the package of a file is relative to,
// or the directory of the file when its location does not match its
// package.
func sourceRoot(path, pkg string) string {
	dir := filepath.Dir(path)
	if pkg == "" {
		return dir
	}
	root := dir
	parts := strings.Split(pkg, ".")
	for i := len(parts) - 1; i >= 0; i-- {
		if filepath.Base(root) != parts[i] {
			return dir
		}
		root = filepath.Dir(root)
	}
	return root
}
