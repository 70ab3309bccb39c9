package codebase

import (
	"fmt"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Matcher selects source files by slash-separated paths relative to a
// scan root. A path matches when some include pattern matches and no
// exclude pattern does. Patterns starting with "**/" also match files
// directly in the root.
type Matcher struct {
	include []glob.Glob
	exclude []glob.Glob
}

func NewMatcher(include, exclude []string) (*Matcher, error) {
	m := &Matcher{}
	var err error
	if m.include, err = compileAll(include); err != nil {
		return nil, err
	}
	if m.exclude, err = compileAll(exclude); err != nil {
		return nil, err
	}
	return m, nil
}

func compileAll(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func (m *Matcher) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	return matchAny(m.include, rel) && !matchAny(m.exclude, rel)
}

func matchAny(globs []glob.Glob, rel string) bool {
	for _, g := range globs {
		if g.Match(rel) || g.Match("/"+rel) {
			return true
		}
	}
	return false
}
