package codebase

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/avhelper/java"
	"github.com/pkg/errors"
	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("avhelper.codebase")

// Codebase holds the parsed Java files below a root directory and resolves
// type references across them.
type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*FileInfo
	classes map[string]*java.Class
}

type FileInfo struct {
	Path    string
	Content []byte
	// File is nil when the content could not be parsed.
	File     *java.File
	ParseErr error
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*FileInfo),
		classes: make(map[string]*java.Class),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

func (c *Codebase) ScanAll() error {
	return c.ScanDir(c.rootDir)
}

// ScanDir parses every .java file below dir, skipping hidden directories.
// Files that fail to parse are recorded with their error.
func (c *Codebase) ScanDir(dir string) error {
	count := 0
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != dir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) == ".java" {
			if err := c.ScanFile(path); err != nil {
				log.Warningf("%s: %s", path, err)
			}
			count++
		}
		return nil
	})
	log.Debugf("scanned %d files below %s", count, dir)
	return errors.Wrapf(err, "scan %s", dir)
}

func (c *Codebase) ScanFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	return c.UpdateFile(path, content)
}

// UpdateFile replaces the content of path. Parse errors are recorded and
// returned; the previous classes of the file are dropped either way.
func (c *Codebase) UpdateFile(path string, content []byte) error {
	f, err := java.ParseFile(path, content)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.files[path] = &FileInfo{
		Path:     path,
		Content:  content,
		File:     f,
		ParseErr: err,
	}
	c.rebuildClassesLocked()
	return err
}

func (c *Codebase) rebuildClassesLocked() {
	all := make(map[string]*java.Class)
	for _, f := range c.files {
		if f.File == nil {
			continue
		}
		for _, cls := range f.File.AllClasses() {
			all[cls.Qualified] = cls
		}
	}
	c.classes = all
}

func (c *Codebase) RemoveFile(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, path)
	c.rebuildClassesLocked()
}

func (c *Codebase) GetFile(path string) *FileInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// FindClass returns the class with the given qualified name.
func (c *Codebase) FindClass(qualified string) *java.Class {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.classes[qualified]
}

// LookupType finds the class a type reference written in from refers to.
func (c *Codebase) LookupType(ref java.Type, from *java.Class) *java.Class {
	return from.LookupType(ref, c.FindClass)
}

func (c *Codebase) ClassCount() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.classes)
}
