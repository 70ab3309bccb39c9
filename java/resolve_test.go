package java

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripTypeArguments(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"Point", "Point"},
		{"List<String>", "List"},
		{"Map<String, List<Integer>>", "Map"},
		{"Outer<A>.Inner<Map<K, V>>", "Outer.Inner"},
		{" Comparable<T> ", "Comparable"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, stripTypeArguments(tt.ref), tt.ref)
	}
}

func TestResolveReference(t *testing.T) {
	model := mustModel(t, `package com.example;
class Top {
    interface Listener {}
    static class Middle {
        class Leaf {}
    }
}
interface Listener {}
class Other {}
`)

	tests := []struct {
		name     string
		referrer string
		ref      string
		want     string
		ok       bool
	}{
		{"member type shadows top-level", "Top", "Listener", "Top.Listener", true},
		{"shadowing from a nested referrer", "Top.Middle.Leaf", "Listener", "Top.Listener", true},
		{"top-level outside the scope", "Other", "Listener", "Listener", true},
		{"exact nested", "Listener", "Top.Middle.Leaf", "Top.Middle.Leaf", true},
		{"member of referrer", "Top.Middle", "Leaf", "Top.Middle.Leaf", true},
		{"member of enclosing scope", "Top.Middle.Leaf", "Middle", "Top.Middle", true},
		{"type arguments dropped", "Top", "Middle<String>", "Top.Middle", true},
		{"package prefix", "Top", "com.example.Top", "Top", true},
		{"outside the unit", "Top", "java.util.List", "", false},
		{"other package", "Top", "org.example.Top", "", false},
		{"empty", "Top", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveReference(model, tt.referrer, tt.ref)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnclosingScope(t *testing.T) {
	assert.Equal(t, "Outer.Inner", enclosingScope("Outer.Inner.Deep"))
	assert.Equal(t, "Outer", enclosingScope("Outer.Inner"))
	assert.Equal(t, "", enclosingScope("Outer"))
}
