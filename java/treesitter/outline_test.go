package treesitter

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/javasym/java"
)

func TestOutlineFixture(t *testing.T) {
	src, err := os.ReadFile("../testdata/simple.java")
	require.NoError(t, err)

	decls, err := Outline(src)
	require.NoError(t, err)

	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Point", "Drawable", "Shape", "Status", "Main"}, names)
	assert.Equal(t, "interface", decls[1].Kind)
	assert.Equal(t, "enum", decls[3].Kind)
	assert.Equal(t, 7, decls[0].Line)

	model, err := java.ModelFromSource(src)
	require.NoError(t, err)
	assert.True(t, Compare(model, decls).Empty())
}

func TestOutlineNested(t *testing.T) {
	src := []byte(`class Outer {
    void f() { class Local {} }
    static class Inner { interface Deep {} }
    enum Mode { ON; class InEnum {} }
}`)

	decls, err := Outline(src)
	require.NoError(t, err)

	var names []string
	for _, d := range decls {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Outer", "Outer.Inner", "Outer.Inner.Deep", "Outer.Mode", "Outer.Mode.InEnum"}, names)
}

func TestCompareReportsDifferences(t *testing.T) {
	model, err := java.ModelFromSource([]byte("class A {} class B {}"))
	require.NoError(t, err)

	diff := Compare(model, []Decl{{Name: "A"}, {Name: "C"}})
	assert.False(t, diff.Empty())
	assert.Equal(t, []string{"B"}, diff.OnlyModel)
	assert.Equal(t, []string{"C"}, diff.OnlyTreeSitter)
}

func TestOutlineSyntaxError(t *testing.T) {
	_, err := Outline([]byte("class A { int x }\nclass B {}"))
	assert.ErrorIs(t, err, ErrSyntax)
}
