package codebase

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/dhamidi/javasym/java"
	"github.com/dhamidi/javasym/java/parser"
)

// Document is the extraction result for one source file. Exactly one of
// Query and Err is set. ModTime and Size describe the file as read from
// disk and are zero for content that came from an editor.
type Document struct {
	Path    string
	Query   *java.Query
	Err     error
	ModTime time.Time
	Size    int64
}

func (d *Document) Model() *java.Model {
	if d.Query == nil {
		return nil
	}
	return d.Query.Model()
}

// Codebase holds the documents of a directory tree, keyed by path. It is
// safe for concurrent use.
type Codebase struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]*Document
}

func New(rootDir string) *Codebase {
	return &Codebase{
		rootDir: rootDir,
		files:   make(map[string]*Document),
	}
}

func (c *Codebase) RootDir() string {
	return c.rootDir
}

// ScanAll scans the tree below the root directory and replaces the stored
// documents of every scanned file.
func (c *Codebase) ScanAll(ctx context.Context, opts ScanOptions) ([]Result, error) {
	results, err := Scan(ctx, c.rootDir, opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range results {
		c.files[r.Path] = r.Document()
	}
	return results, nil
}

// ScanFile reads path and stores its document. The returned error reports
// only a failure to read; extraction errors end up in Document.Err.
func (c *Codebase) ScanFile(path string) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc := newDocument(path, content)
	doc.ModTime = info.ModTime()
	doc.Size = info.Size()
	c.store(doc)
	return doc, nil
}

func (c *Codebase) UpdateFile(path string, content []byte) *Document {
	doc := newDocument(path, content)
	c.store(doc)
	return doc
}

func (c *Codebase) store(doc *Document) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.files[doc.Path] = doc
}

// Load returns the stored document for path, scanning the file when it is
// not known yet or has changed on disk since it was read. A file that no
// longer exists is dropped. Relative paths are taken relative to the root
// directory.
func (c *Codebase) Load(path string) (*Document, error) {
	if !filepath.IsAbs(path) {
		path = filepath.Join(c.rootDir, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			c.RemoveFile(path)
		}
		return nil, err
	}
	if doc := c.GetFile(path); doc != nil && doc.current(info) {
		return doc, nil
	}
	return c.ScanFile(path)
}

func (c *Codebase) RemoveFile(path string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.files[path]
	delete(c.files, path)
	return ok
}

func (c *Codebase) GetFile(path string) *Document {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.files[path]
}

// Documents returns all stored documents sorted by path.
func (c *Codebase) Documents() []*Document {
	c.mu.RLock()
	docs := make([]*Document, 0, len(c.files))
	for _, doc := range c.files {
		docs = append(docs, doc)
	}
	c.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Path < docs[j].Path
	})
	return docs
}

func (d *Document) current(info fs.FileInfo) bool {
	if d.ModTime.IsZero() {
		return false
	}
	return d.ModTime.Equal(info.ModTime()) && d.Size == info.Size()
}

func newDocument(path string, content []byte) *Document {
	model, err := java.ModelFromSource(content, parser.WithFile(path))
	if err != nil {
		return &Document{Path: path, Err: err}
	}
	return &Document{Path: path, Query: java.NewQuery(model)}
}
