package codebase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatcher(t *testing.T) {
	m, err := NewMatcher([]string{"**/*.java"}, []string{"**/build/**", "**/target/**"})
	require.NoError(t, err)

	tests := []struct {
		path string
		want bool
	}{
		{"Main.java", true},
		{"src/main/java/com/example/Point.java", true},
		{"README.md", false},
		{"src/Main.java.orig", false},
		{"build/Generated.java", false},
		{"module/target/classes/Gen.java", false},
		{"src/builder/Builder.java", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Match(tt.path))
		})
	}
}

func TestMatcherRootedPattern(t *testing.T) {
	m, err := NewMatcher([]string{"src/**/*.java"}, nil)
	require.NoError(t, err)

	assert.True(t, m.Match("src/a/B.java"))
	assert.False(t, m.Match("test/a/B.java"))
	assert.False(t, m.Match("B.java"))
}

func TestMatcherInvalidPattern(t *testing.T) {
	_, err := NewMatcher([]string{"[unclosed"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"[unclosed"`)
}
