// Package treesitter cross-checks the entity outline of a compilation unit
// against tree-sitter-java.
package treesitter

import (
	"errors"
	"fmt"
	"slices"

	sitter "github.com/tree-sitter/go-tree-sitter"
	tsjava "github.com/tree-sitter/tree-sitter-java/bindings/go"

	"github.com/dhamidi/javasym/java"
)

var ErrSyntax = errors.New("tree-sitter reported syntax errors")

// Decl is a type declaration as seen by tree-sitter.
type Decl struct {
	Name string
	Kind string
	Line int
}

var declKinds = map[string]string{
	"class_declaration":           "class",
	"interface_declaration":       "interface",
	"enum_declaration":            "enum",
	"record_declaration":          "record",
	"annotation_type_declaration": "annotation",
}

// bodyKinds are the node kinds whose children can declare member types.
// Method bodies are not descended into, so local classes are skipped.
var bodyKinds = map[string]bool{
	"class_body":             true,
	"interface_body":         true,
	"enum_body":              true,
	"enum_body_declarations": true,
	"annotation_type_body":   true,
}

// Outline parses src with tree-sitter-java and returns its type
// declarations in pre-order, nested ones named Outer.Inner. If the tree
// contains error nodes the declarations found so far are returned along
// with ErrSyntax.
func Outline(src []byte) ([]Decl, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(sitter.NewLanguage(tsjava.Language())); err != nil {
		return nil, fmt.Errorf("load java grammar: %w", err)
	}

	tree := parser.Parse(src, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	var decls []Decl
	collect(root, src, "", &decls)

	if root.HasError() {
		return decls, ErrSyntax
	}
	return decls, nil
}

func collect(node *sitter.Node, src []byte, outer string, decls *[]Decl) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(uint(i))
		if child == nil {
			continue
		}
		kind, ok := declKinds[child.Kind()]
		if !ok {
			if bodyKinds[child.Kind()] {
				collect(child, src, outer, decls)
			}
			continue
		}
		nameNode := child.ChildByFieldName("name")
		if nameNode == nil {
			continue
		}
		name := string(src[nameNode.StartByte():nameNode.EndByte()])
		if outer != "" {
			name = outer + "." + name
		}
		*decls = append(*decls, Decl{
			Name: name,
			Kind: kind,
			Line: int(child.StartPosition().Row) + 1,
		})
		if body := child.ChildByFieldName("body"); body != nil {
			collect(body, src, name, decls)
		}
	}
}

// Diff lists entity names found by only one of the two parsers.
type Diff struct {
	OnlyModel      []string
	OnlyTreeSitter []string
}

func (d Diff) Empty() bool {
	return len(d.OnlyModel) == 0 && len(d.OnlyTreeSitter) == 0
}

// Compare matches the entities of m against decls by qualified name.
func Compare(m *java.Model, decls []Decl) Diff {
	var modelNames []string
	for _, e := range m.Entities() {
		modelNames = append(modelNames, e.Name)
	}
	var tsNames []string
	for _, d := range decls {
		tsNames = append(tsNames, d.Name)
	}

	var diff Diff
	for _, name := range modelNames {
		if !slices.Contains(tsNames, name) {
			diff.OnlyModel = append(diff.OnlyModel, name)
		}
	}
	for _, name := range tsNames {
		if !slices.Contains(modelNames, name) {
			diff.OnlyTreeSitter = append(diff.OnlyTreeSitter, name)
		}
	}
	return diff
}
