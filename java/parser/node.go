package parser

import "strings"

type NodeKind int

const (
	KindCompilationUnit NodeKind = iota
	KindPackageDecl
	KindImportDecl

	// Type declarations
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl

	// Members
	KindFieldDecl
	KindVariableDeclarator
	KindMethodDecl
	KindConstructorDecl
	KindInitializer
	KindEnumConstant

	// Clauses and modifiers
	KindModifiers
	KindModifier
	KindAnnotation
	KindTypeParameters
	KindTypeParameter
	KindExtendsClause
	KindImplementsClause
	KindThrowsList
	KindClassBody

	// Types
	KindType
	KindArrayType
	KindTypeArguments
	KindWildcard

	// Method components
	KindParameters
	KindParameter
	KindVarargs

	// Opaque token runs: method bodies, initializers, arguments
	KindBlock
	KindSkipped

	KindIdentifier
	KindQualifiedName
)

var nodeKindNames = map[NodeKind]string{
	KindCompilationUnit:    "CompilationUnit",
	KindPackageDecl:        "PackageDecl",
	KindImportDecl:         "ImportDecl",
	KindClassDecl:          "ClassDecl",
	KindInterfaceDecl:      "InterfaceDecl",
	KindEnumDecl:           "EnumDecl",
	KindFieldDecl:          "FieldDecl",
	KindVariableDeclarator: "VariableDeclarator",
	KindMethodDecl:         "MethodDecl",
	KindConstructorDecl:    "ConstructorDecl",
	KindInitializer:        "Initializer",
	KindEnumConstant:       "EnumConstant",
	KindModifiers:          "Modifiers",
	KindModifier:           "Modifier",
	KindAnnotation:         "Annotation",
	KindTypeParameters:     "TypeParameters",
	KindTypeParameter:      "TypeParameter",
	KindExtendsClause:      "ExtendsClause",
	KindImplementsClause:   "ImplementsClause",
	KindThrowsList:         "ThrowsList",
	KindClassBody:          "ClassBody",
	KindType:               "Type",
	KindArrayType:          "ArrayType",
	KindTypeArguments:      "TypeArguments",
	KindWildcard:           "Wildcard",
	KindParameters:         "Parameters",
	KindParameter:          "Parameter",
	KindVarargs:            "Varargs",
	KindBlock:              "Block",
	KindSkipped:            "Skipped",
	KindIdentifier:         "Identifier",
	KindQualifiedName:      "QualifiedName",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTypeDecl reports whether nodes of this kind declare an entity.
func (k NodeKind) IsTypeDecl() bool {
	switch k {
	case KindClassDecl, KindInterfaceDecl, KindEnumDecl:
		return true
	}
	return false
}

type Node struct {
	Kind     NodeKind
	Span     Span
	Children []*Node
	Token    *Token
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

func (n *Node) TokenLiteral() string {
	if n.Token != nil {
		return n.Token.Literal
	}
	return ""
}

// Name returns the literal of the first Identifier child, which is the
// declared name for declarations, parameters and declarators.
func (n *Node) Name() string {
	if id := n.FirstChildOfKind(KindIdentifier); id != nil {
		return id.TokenLiteral()
	}
	return ""
}

func (n *Node) String() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, false)
	return sb.String()
}

func (n *Node) StringWithPositions() string {
	var sb strings.Builder
	n.writeIndent(&sb, 0, true)
	return sb.String()
}

func (n *Node) writeIndent(sb *strings.Builder, indent int, showPositions bool) {
	sb.WriteString(strings.Repeat("  ", indent))
	sb.WriteString(n.Kind.String())
	if showPositions {
		sb.WriteString(" [" + n.Span.Start.String() + "-" + n.Span.End.String() + "]")
	}
	if n.Token != nil {
		sb.WriteString(" " + n.Token.Literal)
	}
	sb.WriteString("\n")

	for _, child := range n.Children {
		child.writeIndent(sb, indent+1, showPositions)
	}
}

func leaf(kind NodeKind, tok Token) *Node {
	return &Node{Kind: kind, Token: &tok, Span: tok.Span}
}
