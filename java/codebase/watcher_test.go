package codebase

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, dir string) (*Codebase, <-chan []Change) {
	t.Helper()

	c := New(dir)
	matcher, err := NewMatcher([]string{"**/*.java"}, nil)
	require.NoError(t, err)

	w, err := NewFileWatcher(c, matcher, 20*time.Millisecond)
	require.NoError(t, err)

	changes := make(chan []Change, 16)
	w.OnChange(func(batch []Change) {
		select {
		case changes <- batch:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		assert.NoError(t, <-done)
	})

	return c, changes
}

// waitForChange returns the first reported change of path that satisfies
// ok. Writes may be observed half done, so callers wait for the state they
// expect rather than for the first event.
func waitForChange(t *testing.T, changes <-chan []Change, path string, ok func(Change) bool) Change {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case batch := <-changes:
			for _, change := range batch {
				if change.Path == path && ok(change) {
					return change
				}
			}
		case <-deadline:
			t.Fatalf("no matching change reported for %s", path)
			return Change{}
		}
	}
}

func entityCount(n int) func(Change) bool {
	return func(change Change) bool {
		return change.Document != nil && change.Document.Model() != nil && change.Document.Model().Len() == n
	}
}

func TestFileWatcherExtractsChangedFiles(t *testing.T) {
	dir := t.TempDir()
	c, changes := startWatcher(t, dir)

	path := writeFile(t, dir, "Point.java", "class Point {}")
	change := waitForChange(t, changes, path, entityCount(1))
	assert.False(t, change.Removed)
	assert.NotNil(t, c.GetFile(path))

	writeFile(t, dir, "Point.java", "class Point {} interface Shape {}")
	waitForChange(t, changes, path, entityCount(2))

	require.NoError(t, os.Remove(path))
	change = waitForChange(t, changes, path, func(change Change) bool { return change.Removed })
	assert.Nil(t, change.Document)
	assert.Nil(t, c.GetFile(path))
}

func TestFileWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	c, changes := startWatcher(t, dir)

	notes := writeFile(t, dir, "notes.txt", "hello")
	path := writeFile(t, dir, "A.java", "class A {}")

	waitForChange(t, changes, path, entityCount(1))
	assert.Nil(t, c.GetFile(notes))
}

func TestFileWatcherReportsErrors(t *testing.T) {
	dir := t.TempDir()
	_, changes := startWatcher(t, dir)

	path := writeFile(t, dir, "Broken.java", "class Broken {")
	change := waitForChange(t, changes, path, func(change Change) bool {
		return change.Document != nil && change.Document.Err != nil
	})
	assert.Nil(t, change.Document.Query)
}

func TestFileWatcherWatchesNewDirectories(t *testing.T) {
	dir := t.TempDir()
	_, changes := startWatcher(t, dir)

	require.NoError(t, os.Mkdir(filepath.Join(dir, "pkg"), 0o755))
	// Give the watcher a moment to pick up the new directory.
	time.Sleep(100 * time.Millisecond)

	path := writeFile(t, dir, "pkg/B.java", "class B {}")
	waitForChange(t, changes, path, entityCount(1))
}
