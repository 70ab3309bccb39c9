package codebase

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/dhamidi/javasym/java/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pointSource = `package geo;

/** A point. */
public class Point implements Comparable<Point> {
    private int x;

    public Point(int x) { this.x = x; }

    /** Distance to the origin. */
    public double length() { return x; }

    static class Cache {}
}

interface Shape {}

class Circle extends Point implements Shape {
    Circle() { super(0); }
}
`

func writeFile(t *testing.T, dir, rel, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestUpdateFile(t *testing.T) {
	c := New(t.TempDir())

	doc := c.UpdateFile("Point.java", []byte(pointSource))
	require.NoError(t, doc.Err)
	require.NotNil(t, doc.Query)
	assert.Equal(t, "geo", doc.Model().Package())
	assert.Equal(t, 4, doc.Model().Len())
	assert.Same(t, doc, c.GetFile("Point.java"))

	broken := c.UpdateFile("Point.java", []byte("class {"))
	var syntaxErr *parser.SyntaxError
	require.ErrorAs(t, broken.Err, &syntaxErr)
	assert.Nil(t, broken.Query)
	assert.Nil(t, broken.Model())
	assert.Same(t, broken, c.GetFile("Point.java"))
}

func TestScanFileAndRemove(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "geo/Point.java", pointSource)
	c := New(dir)

	doc, err := c.ScanFile(path)
	require.NoError(t, err)
	require.NoError(t, doc.Err)
	assert.Equal(t, "file://"+filepath.ToSlash(path), doc.Model().SourceURL().String())

	_, err = c.ScanFile(filepath.Join(dir, "Missing.java"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.True(t, c.RemoveFile(path))
	assert.False(t, c.RemoveFile(path))
	assert.Nil(t, c.GetFile(path))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "geo/Point.java", pointSource)
	c := New(dir)

	doc, err := c.Load("geo/Point.java")
	require.NoError(t, err)
	assert.Equal(t, path, doc.Path)

	again, err := c.Load(path)
	require.NoError(t, err)
	assert.Same(t, doc, again)

	_, err = c.Load("nope/Missing.java")
	assert.Error(t, err)
}

func TestLoadRereadsChangedFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "A.java", "class A {}")
	c := New(dir)

	doc, err := c.Load("A.java")
	require.NoError(t, err)
	assert.Equal(t, 1, doc.Model().Len())

	writeFile(t, dir, "A.java", "class A {} class B {}")
	later := doc.ModTime.Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))

	doc, err = c.Load("A.java")
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Model().Len())
	_, ok := doc.Query.FindEntity("B")
	assert.True(t, ok)
	assert.Same(t, doc, c.GetFile(path))

	require.NoError(t, os.Remove(path))
	_, err = c.Load("A.java")
	assert.ErrorIs(t, err, os.ErrNotExist)
	assert.Nil(t, c.GetFile(path))
}

func TestLoadRereadsEditorContent(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "A.java", "class A {} class B {}")
	c := New(dir)

	c.UpdateFile(path, []byte("class A {}"))
	doc, err := c.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, doc.Model().Len())
}

func TestDocumentsSortedByPath(t *testing.T) {
	c := New(t.TempDir())
	c.UpdateFile("b/B.java", []byte("class B {}"))
	c.UpdateFile("a/A.java", []byte("class A {}"))
	c.UpdateFile("c/C.java", []byte("class C {}"))

	var paths []string
	for _, doc := range c.Documents() {
		paths = append(paths, doc.Path)
	}
	assert.Equal(t, []string{"a/A.java", "b/B.java", "c/C.java"}, paths)
}
