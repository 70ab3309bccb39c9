package java

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/dhamidi/javasym/java/parser"
)

// javadocFinder hands out /** comments to the declarations they document.
type javadocFinder struct {
	comments []parser.Token // only block comments starting with /**, by start offset
	used     map[int]bool   // tracks which comments (by index) have been used
}

func newJavadocFinder(comments []parser.Token) *javadocFinder {
	var javadocs []parser.Token
	for _, c := range comments {
		if c.Kind == parser.TokenComment && strings.HasPrefix(c.Literal, "/**") && c.Literal != "/**/" {
			javadocs = append(javadocs, c)
		}
	}
	sort.SliceStable(javadocs, func(i, j int) bool {
		return javadocs[i].Span.Start.Offset < javadocs[j].Span.Start.Offset
	})
	return &javadocFinder{comments: javadocs, used: make(map[int]bool)}
}

// Find returns the closest unused Javadoc that starts at or after offset
// after and ends before node starts. after is the end of the previous
// sibling declaration, so comments inside bodies and comments documenting
// an earlier declaration are never picked up. Each Javadoc is matched once.
func (jf *javadocFinder) Find(node *parser.Node, after int) string {
	best := -1
	for i, c := range jf.comments {
		if c.Span.End.Offset > node.Span.Start.Offset {
			break
		}
		if c.Span.Start.Offset < after || jf.used[i] {
			continue
		}
		best = i
	}
	if best < 0 {
		return ""
	}
	jf.used[best] = true
	return jf.comments[best].Literal
}

func ModelFromFile(path string) (*Model, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ModelFromSource(data, parser.WithFile(path))
}

// ModelFromSource lexes, parses and extracts one compilation unit. The
// returned error is a *parser.LexError or a *parser.SyntaxError.
func ModelFromSource(source []byte, opts ...parser.Option) (*Model, error) {
	opts = append(opts, parser.WithComments())
	p := parser.ParseCompilationUnit(bytes.NewReader(source), opts...)
	cu, err := p.Finish()
	if err != nil {
		return nil, err
	}
	model, err := Extract(cu, p.Comments())
	if err != nil {
		return nil, err
	}
	if sourcePath := p.SourcePath(); sourcePath != "" {
		model.sourceURL = FileURL(sourcePath)
	}
	return model, nil
}

type extractor struct {
	model *Model
	docs  *javadocFinder
}

// Extract builds the symbol model of a compilation unit. Nested types are
// flattened into the entity list right after their enclosing type, named
// Outer.Inner. comments may be nil, in which case no Doc is attached. A
// type name declared twice is reported as a *parser.SyntaxError at the
// second declaration.
func Extract(cu *parser.Node, comments []parser.Token) (*Model, error) {
	x := &extractor{
		model: &Model{index: make(map[string]int)},
		docs:  newJavadocFinder(comments),
	}

	after := 0
	for _, child := range cu.Children {
		switch child.Kind {
		case parser.KindPackageDecl:
			x.model.pkg = qualifiedNameToString(child.FirstChildOfKind(parser.KindQualifiedName))
		case parser.KindImportDecl:
			x.model.imports = append(x.model.imports, importFromNode(child))
		default:
			if child.Kind.IsTypeDecl() {
				if err := x.typeDecl(child, "", after); err != nil {
					return nil, err
				}
			}
		}
		after = child.Span.End.Offset
	}

	return x.model, nil
}

func qualifiedNameToString(qn *parser.Node) string {
	if qn == nil {
		return ""
	}
	var parts []string
	for _, child := range qn.Children {
		if child.Kind == parser.KindIdentifier && child.Token != nil {
			parts = append(parts, child.Token.Literal)
		}
	}
	return strings.Join(parts, ".")
}

func importFromNode(node *parser.Node) Import {
	imp := Import{
		Name:   qualifiedNameToString(node.FirstChildOfKind(parser.KindQualifiedName)),
		Static: node.FirstChildOfKind(parser.KindModifier) != nil,
	}
	if id := node.FirstChildOfKind(parser.KindIdentifier); id != nil && id.TokenLiteral() == "*" {
		imp.OnDemand = true
	}
	return imp
}

func entityKind(kind parser.NodeKind) EntityKind {
	switch kind {
	case parser.KindInterfaceDecl:
		return EntityInterface
	case parser.KindEnumDecl:
		return EntityEnum
	}
	return EntityClass
}

type pendingDecl struct {
	node  *parser.Node
	after int
}

func (x *extractor) typeDecl(node *parser.Node, outer string, after int) error {
	id := node.FirstChildOfKind(parser.KindIdentifier)
	name := id.TokenLiteral()
	if outer != "" {
		name = outer + "." + name
	}
	if _, dup := x.model.index[name]; dup {
		return &parser.SyntaxError{
			Pos:      id.Span.Start,
			Expected: "unique type name",
			Found:    fmt.Sprintf("duplicate declaration of %s", name),
		}
	}

	entity := Entity{
		Name:       name,
		SimpleName: id.TokenLiteral(),
		Kind:       entityKind(node.Kind),
		Outer:      outer,
		Doc:        x.docs.Find(node, after),
		Pos:        id.Span.Start,
		Span:       node.Span,
	}

	var body *parser.Node
	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindModifiers:
			entity.Modifiers = modifiersFromNode(child)
		case parser.KindTypeParameters:
			entity.TypeParameters = typeParametersFromNode(child)
		case parser.KindExtendsClause:
			if node.Kind == parser.KindClassDecl {
				entity.SuperClass = erasure(child.Children[0])
				continue
			}
			for _, t := range child.Children {
				entity.Interfaces = append(entity.Interfaces, erasure(t))
			}
		case parser.KindImplementsClause:
			for _, t := range child.Children {
				entity.Interfaces = append(entity.Interfaces, erasure(t))
			}
		case parser.KindClassBody:
			body = child
		}
	}

	var nested []pendingDecl
	if body != nil {
		after := body.Span.Start.Offset
		for _, child := range body.Children {
			switch child.Kind {
			case parser.KindEnumConstant:
				entity.EnumConstants = append(entity.EnumConstants, child.Name())
			case parser.KindFieldDecl:
				entity.Members = append(entity.Members, x.fields(child, after)...)
			case parser.KindMethodDecl, parser.KindConstructorDecl:
				entity.Members = append(entity.Members, x.callable(child, after))
			default:
				if child.Kind.IsTypeDecl() {
					nested = append(nested, pendingDecl{node: child, after: after})
				}
			}
			after = child.Span.End.Offset
		}
	}

	x.model.index[name] = len(x.model.entities)
	x.model.entities = append(x.model.entities, entity)

	for _, decl := range nested {
		if err := x.typeDecl(decl.node, name, decl.after); err != nil {
			return err
		}
	}
	return nil
}

func (x *extractor) fields(node *parser.Node, after int) []Member {
	modifiers := modifiersFromNode(node.FirstChildOfKind(parser.KindModifiers))
	typ := typeString(typeChild(node))
	doc := x.docs.Find(node, after)

	var members []Member
	for _, decl := range node.ChildrenOfKind(parser.KindVariableDeclarator) {
		id := decl.FirstChildOfKind(parser.KindIdentifier)
		members = append(members, Member{
			Name:      id.TokenLiteral(),
			Kind:      MemberField,
			Modifiers: slices.Clone(modifiers),
			// int x, y[]; declares y as int[]
			Type:     typ + strings.Repeat("[]", len(decl.ChildrenOfKind(parser.KindArrayType))),
			IsStatic: modifiers.Has("static"),
			Doc:      doc,
			Pos:      id.Span.Start,
			Span:     node.Span,
		})
	}
	return members
}

func (x *extractor) callable(node *parser.Node, after int) Member {
	id := node.FirstChildOfKind(parser.KindIdentifier)
	member := Member{
		Name: id.TokenLiteral(),
		Kind: MemberMethod,
		Doc:  x.docs.Find(node, after),
		Pos:  id.Span.Start,
		Span: node.Span,
	}
	if node.Kind == parser.KindConstructorDecl {
		member.Kind = MemberConstructor
	} else {
		member.Type = typeString(typeChild(node))
	}

	for _, child := range node.Children {
		switch child.Kind {
		case parser.KindModifiers:
			member.Modifiers = modifiersFromNode(child)
			member.IsStatic = member.Modifiers.Has("static")
		case parser.KindTypeParameters:
			member.TypeParameters = typeParametersFromNode(child)
		case parser.KindParameters:
			member.Parameters = parametersFromNode(child)
		case parser.KindThrowsList:
			for _, t := range child.Children {
				member.Throws = append(member.Throws, typeString(t))
			}
		}
	}
	return member
}

func modifiersFromNode(node *parser.Node) Modifiers {
	if node == nil {
		return nil
	}
	var mods Modifiers
	for _, child := range node.ChildrenOfKind(parser.KindModifier) {
		mods = append(mods, child.TokenLiteral())
	}
	return mods
}

func parametersFromNode(node *parser.Node) []Parameter {
	var params []Parameter
	for _, child := range node.ChildrenOfKind(parser.KindParameter) {
		params = append(params, Parameter{
			Name: child.Name(),
			Type: typeString(typeChild(child)),
		})
	}
	return params
}

func typeParametersFromNode(node *parser.Node) []string {
	var params []string
	for _, tp := range node.ChildrenOfKind(parser.KindTypeParameter) {
		var bounds []string
		for _, child := range tp.Children {
			if isTypeNode(child) {
				bounds = append(bounds, typeString(child))
			}
		}
		param := tp.Name()
		if len(bounds) > 0 {
			param += " extends " + strings.Join(bounds, " & ")
		}
		params = append(params, param)
	}
	return params
}

func isTypeNode(node *parser.Node) bool {
	switch node.Kind {
	case parser.KindType, parser.KindArrayType, parser.KindVarargs:
		return true
	}
	return false
}

// typeChild returns the declared type of a field, method or parameter
// node: the first direct child that is a type.
func typeChild(node *parser.Node) *parser.Node {
	for _, child := range node.Children {
		if isTypeNode(child) {
			return child
		}
	}
	return nil
}

// typeString renders a type node as written, normalizing whitespace:
// Map<String, List<Integer>>, int[], T..., Outer.Inner<? extends T>.
func typeString(node *parser.Node) string {
	var sb strings.Builder
	writeType(&sb, node, true)
	return sb.String()
}

// erasure renders a type node without any type arguments.
func erasure(node *parser.Node) string {
	var sb strings.Builder
	writeType(&sb, node, false)
	return sb.String()
}

func writeType(sb *strings.Builder, node *parser.Node, withArgs bool) {
	if node == nil {
		return
	}
	switch node.Kind {
	case parser.KindArrayType:
		writeType(sb, node.Children[0], withArgs)
		sb.WriteString("[]")
	case parser.KindVarargs:
		writeType(sb, node.Children[0], withArgs)
		sb.WriteString("...")
	case parser.KindWildcard:
		sb.WriteString("?")
		if len(node.Children) == 2 {
			sb.WriteString(" " + node.Children[0].TokenLiteral() + " ")
			writeType(sb, node.Children[1], withArgs)
		}
	case parser.KindType:
		segments := 0
		for _, child := range node.Children {
			switch child.Kind {
			case parser.KindIdentifier:
				sb.WriteString(child.TokenLiteral())
			case parser.KindQualifiedName:
				if segments > 0 {
					sb.WriteString(".")
				}
				sb.WriteString(qualifiedNameToString(child))
				segments++
			case parser.KindTypeArguments:
				if !withArgs {
					continue
				}
				sb.WriteString("<")
				for i, arg := range child.Children {
					if i > 0 {
						sb.WriteString(", ")
					}
					writeType(sb, arg, withArgs)
				}
				sb.WriteString(">")
			}
		}
	}
}
