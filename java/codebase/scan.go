package codebase

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dhamidi/javasym/java"
	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var scanLog = commonlog.GetLogger("javasym.scan")

// Result is the outcome of scanning one file. Err holds the read,
// *parser.LexError or *parser.SyntaxError failure of that file alone.
type Result struct {
	Path  string
	Model *java.Model
	Err   error
}

func (r Result) Document() *Document {
	if r.Err != nil {
		return &Document{Path: r.Path, Err: r.Err}
	}
	return &Document{Path: r.Path, Query: java.NewQuery(r.Model)}
}

// Reporter observes a scan. Calls are serialized.
type Reporter interface {
	OnDiscovered(total int)
	OnScanned(result Result)
}

type ScanOptions struct {
	Include  []string
	Exclude  []string
	Workers  int
	Reporter Reporter
}

// Scan extracts every file below root selected by the include and exclude
// patterns, using up to Workers files in parallel. Results are ordered by
// path. A failing file does not stop the scan; the returned error is set
// only for invalid patterns, an unreadable root or a cancelled context.
func Scan(ctx context.Context, root string, opts ScanOptions) ([]Result, error) {
	matcher, err := NewMatcher(opts.Include, opts.Exclude)
	if err != nil {
		return nil, err
	}

	files, err := discover(root, matcher)
	if err != nil {
		return nil, err
	}
	scanLog.Infof("discovered %d files in %s", len(files), root)

	var mu sync.Mutex
	if opts.Reporter != nil {
		opts.Reporter.OnDiscovered(len(files))
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = 1
	}

	results := make([]Result, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			model, err := java.ModelFromFile(path)
			if err != nil {
				scanLog.Debugf("%s: %s", path, err)
			}
			results[i] = Result{Path: path, Model: model, Err: err}

			if opts.Reporter != nil {
				mu.Lock()
				opts.Reporter.OnScanned(results[i])
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// discover walks root in lexical order. Hidden directories are skipped.
func discover(root string, matcher *Matcher) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			scanLog.Warningf("skipping %s: %s", path, err)
			return nil
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if matcher.Match(rel) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
