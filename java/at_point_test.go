package java

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javasym/java/parser"
)

func TestSymbolAt(t *testing.T) {
	q := NewQuery(loadFixture(t))

	tests := []struct {
		name   string
		line   int
		column int
		entity string
		member string
		found  bool
	}{
		{"class header", 7, 1, "Point", "", true},
		{"field", 8, 20, "Point", "x", true},
		{"inside method body", 19, 9, "Point", "getX", true},
		{"constructor", 13, 5, "Point", "Point", true},
		{"between declarations", 28, 1, "", "", false},
		{"interface method", 30, 10, "Drawable", "draw", true},
		{"package line", 2, 1, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym, ok := q.SymbolAt(parser.Position{Line: tt.line, Column: tt.column})
			require.Equal(t, tt.found, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.entity, sym.Entity.Name)
			if tt.member == "" {
				assert.Nil(t, sym.Member)
				return
			}
			require.NotNil(t, sym.Member)
			assert.Equal(t, tt.member, sym.Member.Name)
		})
	}
}

func TestSymbolAtNested(t *testing.T) {
	q := NewQuery(mustModel(t, `class Outer {
    int a;
    class Inner {
        void f() {}
    }
}`))

	sym, ok := q.SymbolAt(parser.Position{Line: 4, Column: 14})
	require.True(t, ok)
	assert.Equal(t, "Outer.Inner", sym.Entity.Name)
	require.NotNil(t, sym.Member)
	assert.Equal(t, "f", sym.Member.Name)

	sym, ok = q.SymbolAt(parser.Position{Line: 2, Column: 5})
	require.True(t, ok)
	assert.Equal(t, "Outer", sym.Entity.Name)
	require.NotNil(t, sym.Member)
	assert.Equal(t, "a", sym.Member.Name)
}
