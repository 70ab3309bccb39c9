package parser

import (
	"io"
	"iter"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithStartLine(line int) Option {
	return func(p *Parser) {
		p.startLine = line
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

type Parser struct {
	file            string
	startLine       int
	includeComments bool
	reader          io.Reader
	input           []byte
	tokens          []Token
	comments        []Token
	pos             int
}

func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		startLine: 1,
		reader:    r,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Build constructs the CST of a compilation unit from an already lexed
// token sequence. Comment tokens in the sequence are set aside.
func Build(tokens iter.Seq2[Token, error]) (*Node, error) {
	p := &Parser{startLine: 1}
	if err := p.collect(tokens); err != nil {
		return nil, err
	}
	return p.run()
}

func (p *Parser) Comments() []Token {
	return p.comments
}

func (p *Parser) SourcePath() string {
	return p.file
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// Finish reads the whole input and builds its CST. The first lexical or
// syntax error aborts the parse and is returned as a *LexError or
// *SyntaxError.
func (p *Parser) Finish() (*Node, error) {
	if err := p.readAll(); err != nil {
		return nil, err
	}
	opts := []Option{WithFile(p.file), WithStartLine(p.startLine)}
	if p.includeComments {
		opts = append(opts, WithComments())
	}
	if err := p.collect(Tokenize(p.input, opts...)); err != nil {
		return nil, err
	}
	return p.run()
}

func (p *Parser) collect(tokens iter.Seq2[Token, error]) error {
	p.tokens = nil
	p.comments = nil
	p.pos = 0
	for tok, err := range tokens {
		if err != nil {
			return err
		}
		if tok.Kind == TokenComment || tok.Kind == TokenLineComment {
			p.comments = append(p.comments, tok)
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
	if n := len(p.tokens); n == 0 || p.tokens[n-1].Kind != TokenEOF {
		var end Position
		if n > 0 {
			end = p.tokens[n-1].Span.End
		}
		p.tokens = append(p.tokens, Token{Kind: TokenEOF, Span: Span{Start: end, End: end}})
	}
	return nil
}

// bailout carries a *SyntaxError from deep in the descent back to run.
type bailout struct{ err *SyntaxError }

func (p *Parser) run() (node *Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			node, err = nil, b.err
		}
	}()
	return p.parseCompilationUnit(), nil
}

func (p *Parser) fail(expected string) {
	tok := p.peek()
	panic(bailout{&SyntaxError{
		Pos:      tok.Span.Start,
		Expected: expected,
		Found:    tok.String(),
	}})
}

func (p *Parser) peek() Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return tok
}

func (p *Parser) check(lit string) bool {
	return p.peek().Is(lit)
}

func (p *Parser) checkEOF() bool {
	return p.peek().Kind == TokenEOF
}

func (p *Parser) match(lits ...string) bool {
	for _, lit := range lits {
		if p.check(lit) {
			return true
		}
	}
	return false
}

func (p *Parser) expect(lit string) Token {
	if !p.check(lit) {
		p.fail("'" + lit + "'")
	}
	return p.advance()
}

func (p *Parser) isIdentifier() bool {
	return p.peek().Kind == TokenIdent
}

func (p *Parser) isContextual(word string) bool {
	tok := p.peek()
	return tok.Kind == TokenIdent && tok.Literal == word
}

func (p *Parser) expectIdentifier() Token {
	if !p.isIdentifier() {
		p.fail("identifier")
	}
	return p.advance()
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 {
		n.Span.End = p.tokens[p.pos-1].Span.End
	} else {
		n.Span.End = n.Span.Start
	}
	return n
}

func (p *Parser) parseCompilationUnit() *Node {
	node := p.startNode(KindCompilationUnit)

	if p.isAnnotatedPackage() || p.check("package") {
		node.AddChild(p.parsePackageDecl())
	}

	for p.check("import") {
		node.AddChild(p.parseImportDecl())
	}

	for !p.checkEOF() {
		// Stray semicolons are empty declarations.
		if p.check(";") {
			p.advance()
			continue
		}
		node.AddChild(p.parseTypeDecl())
	}

	return p.finishNode(node)
}

func (p *Parser) isAnnotatedPackage() bool {
	if !p.check("@") {
		return false
	}
	save := p.pos
	defer func() { p.pos = save }()
	for p.check("@") && !p.peekN(1).Is("interface") {
		p.parseAnnotation()
	}
	return p.check("package")
}

func (p *Parser) parsePackageDecl() *Node {
	node := p.startNode(KindPackageDecl)

	for p.check("@") {
		node.AddChild(p.parseAnnotation())
	}

	p.expect("package")
	node.AddChild(p.parseQualifiedName())
	p.expect(";")

	return p.finishNode(node)
}

func (p *Parser) parseImportDecl() *Node {
	node := p.startNode(KindImportDecl)
	p.expect("import")

	if p.check("static") {
		node.AddChild(leaf(KindModifier, p.advance()))
	}

	node.AddChild(p.parseQualifiedName())

	if p.check(".") && p.peekN(1).Is("*") {
		p.advance()
		node.AddChild(leaf(KindIdentifier, p.advance()))
	}

	p.expect(";")
	return p.finishNode(node)
}

func (p *Parser) parseQualifiedName() *Node {
	node := p.startNode(KindQualifiedName)
	node.AddChild(leaf(KindIdentifier, p.expectIdentifier()))

	for p.check(".") && p.peekN(1).Kind == TokenIdent {
		p.advance()
		node.AddChild(leaf(KindIdentifier, p.advance()))
	}

	return p.finishNode(node)
}

func (p *Parser) parseTypeDecl() *Node {
	modifiers := p.parseModifiers()
	if decl := p.parseTypeDeclAfterModifiers(modifiers); decl != nil {
		return decl
	}
	p.fail("class, interface or enum declaration")
	return nil
}

// parseTypeDeclAfterModifiers returns nil when the next token does not
// start a class, interface or enum declaration.
func (p *Parser) parseTypeDeclAfterModifiers(modifiers *Node) *Node {
	switch {
	case p.check("class"):
		return p.parseClassDecl(modifiers)
	case p.check("interface"):
		return p.parseInterfaceDecl(modifiers)
	case p.check("enum"):
		return p.parseEnumDecl(modifiers)
	}
	return nil
}

var modifierKeywords = []string{
	"public", "protected", "private",
	"abstract", "static", "final",
	"strictfp", "native", "synchronized",
	"transient", "volatile", "default",
}

func (p *Parser) parseModifiers() *Node {
	node := p.startNode(KindModifiers)

	for {
		switch {
		case p.check("@"):
			if p.peekN(1).Is("interface") {
				return p.finishNode(node)
			}
			node.AddChild(p.parseAnnotation())
		case p.match(modifierKeywords...):
			// "default:" only occurs inside switch statements, which are
			// never parsed here, so "default" is always a modifier.
			node.AddChild(leaf(KindModifier, p.advance()))
		case p.isContextual("sealed"), p.isContextual("non-sealed"):
			// sealed class X, non-sealed interface Y, sealed abstract class Z
			if p.peekN(1).Kind != TokenKeyword {
				return p.finishNode(node)
			}
			node.AddChild(leaf(KindModifier, p.advance()))
		default:
			return p.finishNode(node)
		}
	}
}

func (p *Parser) parseAnnotation() *Node {
	node := p.startNode(KindAnnotation)
	p.expect("@")
	node.AddChild(p.parseQualifiedName())

	if p.check("(") {
		node.AddChild(p.skipBalanced(KindSkipped, "("))
	}

	return p.finishNode(node)
}

func (p *Parser) parseClassDecl(modifiers *Node) *Node {
	node := p.startNode(KindClassDecl)
	node.Span.Start = modifiers.Span.Start
	node.AddChild(modifiers)

	p.expect("class")
	node.AddChild(leaf(KindIdentifier, p.expectIdentifier()))

	if p.check("<") {
		node.AddChild(p.parseTypeParameters())
	}

	if p.check("extends") {
		clause := p.startNode(KindExtendsClause)
		p.advance()
		clause.AddChild(p.parseType())
		node.AddChild(p.finishNode(clause))
	}

	if p.check("implements") {
		node.AddChild(p.parseTypeList(KindImplementsClause))
	}

	p.skipPermits()

	node.AddChild(p.parseClassBody())
	return p.finishNode(node)
}

func (p *Parser) parseInterfaceDecl(modifiers *Node) *Node {
	node := p.startNode(KindInterfaceDecl)
	node.Span.Start = modifiers.Span.Start
	node.AddChild(modifiers)

	p.expect("interface")
	node.AddChild(leaf(KindIdentifier, p.expectIdentifier()))

	if p.check("<") {
		node.AddChild(p.parseTypeParameters())
	}

	if p.check("extends") {
		node.AddChild(p.parseTypeList(KindExtendsClause))
	}

	p.skipPermits()

	node.AddChild(p.parseClassBody())
	return p.finishNode(node)
}

func (p *Parser) parseEnumDecl(modifiers *Node) *Node {
	node := p.startNode(KindEnumDecl)
	node.Span.Start = modifiers.Span.Start
	node.AddChild(modifiers)

	p.expect("enum")
	node.AddChild(leaf(KindIdentifier, p.expectIdentifier()))

	if p.check("implements") {
		node.AddChild(p.parseTypeList(KindImplementsClause))
	}

	node.AddChild(p.parseEnumBody())
	return p.finishNode(node)
}

// parseTypeList parses "keyword Type {, Type}" into a clause node.
func (p *Parser) parseTypeList(kind NodeKind) *Node {
	clause := p.startNode(kind)
	p.advance()
	for {
		clause.AddChild(p.parseType())
		if !p.check(",") {
			break
		}
		p.advance()
	}
	return p.finishNode(clause)
}

// skipPermits drops a sealed type's permits clause; permitted subtypes
// are not part of the structural model.
func (p *Parser) skipPermits() {
	if !p.isContextual("permits") {
		return
	}
	p.advance()
	for {
		p.parseType()
		if !p.check(",") {
			return
		}
		p.advance()
	}
}

func (p *Parser) parseEnumBody() *Node {
	node := p.startNode(KindClassBody)
	p.expect("{")

	for p.isIdentifier() || p.check("@") {
		node.AddChild(p.parseEnumConstant())
		if !p.check(",") {
			break
		}
		p.advance()
	}

	switch {
	case p.check(";"):
		p.advance()
		for !p.check("}") {
			if p.checkEOF() {
				p.fail("'}'")
			}
			node.AddChild(p.parseClassMember())
		}
	case !p.check("}"):
		p.fail("',', ';' or '}'")
	}

	p.expect("}")
	return p.finishNode(node)
}

func (p *Parser) parseEnumConstant() *Node {
	node := p.startNode(KindEnumConstant)

	for p.check("@") {
		node.AddChild(p.parseAnnotation())
	}

	node.AddChild(leaf(KindIdentifier, p.expectIdentifier()))

	if p.check("(") {
		node.AddChild(p.skipBalanced(KindSkipped, "("))
	}

	if p.check("{") {
		node.AddChild(p.skipBalanced(KindBlock, "{"))
	}

	return p.finishNode(node)
}

func (p *Parser) parseTypeParameters() *Node {
	node := p.startNode(KindTypeParameters)
	p.expect("<")

	for {
		node.AddChild(p.parseTypeParameter())
		if !p.check(",") {
			break
		}
		p.advance()
	}

	if !p.expectGT() {
		p.fail("'>'")
	}
	return p.finishNode(node)
}

func (p *Parser) parseTypeParameter() *Node {
	node := p.startNode(KindTypeParameter)

	for p.check("@") {
		p.parseAnnotation()
	}

	node.AddChild(leaf(KindIdentifier, p.expectIdentifier()))

	if p.check("extends") {
		p.advance()
		for {
			node.AddChild(p.parseType())
			if !p.check("&") {
				break
			}
			p.advance()
		}
	}

	return p.finishNode(node)
}

func (p *Parser) parseType() *Node {
	node := p.startNode(KindType)

	for p.check("@") {
		p.parseAnnotation()
	}

	tok := p.peek()
	switch {
	case tok.Kind == TokenKeyword && IsPrimitiveType(tok.Literal):
		node.AddChild(leaf(KindIdentifier, p.advance()))
	case tok.Kind == TokenIdent:
		node.AddChild(p.parseQualifiedName())
		if p.check("<") {
			node.AddChild(p.parseTypeArguments())
		}
		// Outer<T>.Inner and Outer<T>.Inner<U>
		for p.check(".") && p.peekN(1).Kind == TokenIdent {
			p.advance()
			node.AddChild(p.parseQualifiedName())
			if p.check("<") {
				node.AddChild(p.parseTypeArguments())
			}
		}
	default:
		p.fail("type")
	}
	node = p.finishNode(node)

	return p.parseDims(node)
}

// parseDims wraps typ in one ArrayType per trailing "[]" pair.
func (p *Parser) parseDims(typ *Node) *Node {
	for p.check("[") || (p.check("@") && p.isAnnotatedDim()) {
		for p.check("@") {
			p.parseAnnotation()
		}
		wrapper := &Node{Kind: KindArrayType, Span: Span{Start: typ.Span.Start}}
		p.expect("[")
		p.expect("]")
		wrapper.AddChild(typ)
		typ = p.finishNode(wrapper)
	}
	return typ
}

func (p *Parser) isAnnotatedDim() bool {
	save := p.pos
	defer func() { p.pos = save }()
	for p.check("@") {
		p.parseAnnotation()
	}
	return p.check("[")
}

func (p *Parser) parseTypeArguments() *Node {
	node := p.startNode(KindTypeArguments)
	p.expect("<")

	for {
		if p.check("?") {
			node.AddChild(p.parseWildcard())
		} else {
			node.AddChild(p.parseType())
		}
		if !p.check(",") {
			break
		}
		p.advance()
	}

	if !p.expectGT() {
		p.fail("'>'")
	}
	return p.finishNode(node)
}

func (p *Parser) parseWildcard() *Node {
	node := p.startNode(KindWildcard)
	p.expect("?")

	if p.check("extends") || p.check("super") {
		node.AddChild(leaf(KindModifier, p.advance()))
		node.AddChild(p.parseType())
	}

	return p.finishNode(node)
}

// expectGT consumes one '>' closing a type argument list. Shift and
// compare tokens that start with '>' are split so nested lists such as
// List<List<String>> close correctly.
func (p *Parser) expectGT() bool {
	tok := p.peek()
	if tok.Kind != TokenPunct || len(tok.Literal) == 0 || tok.Literal[0] != '>' {
		return false
	}
	if tok.Literal == ">" {
		p.advance()
		return true
	}
	start := tok.Span.Start
	start.Offset++
	start.Column++
	p.tokens[p.pos] = Token{
		Kind:    TokenPunct,
		Literal: tok.Literal[1:],
		Span:    Span{Start: start, End: tok.Span.End},
	}
	return true
}

func (p *Parser) parseClassBody() *Node {
	node := p.startNode(KindClassBody)
	p.expect("{")

	for !p.check("}") {
		if p.checkEOF() {
			p.fail("'}'")
		}
		node.AddChild(p.parseClassMember())
	}

	p.expect("}")
	return p.finishNode(node)
}

func (p *Parser) parseClassMember() *Node {
	if p.check(";") {
		p.advance()
		return nil
	}

	if p.check("{") {
		node := p.startNode(KindInitializer)
		node.AddChild(p.skipBalanced(KindBlock, "{"))
		return p.finishNode(node)
	}

	if p.check("static") && p.peekN(1).Is("{") {
		node := p.startNode(KindInitializer)
		node.AddChild(leaf(KindModifier, p.advance()))
		node.AddChild(p.skipBalanced(KindBlock, "{"))
		return p.finishNode(node)
	}

	modifiers := p.parseModifiers()

	if decl := p.parseTypeDeclAfterModifiers(modifiers); decl != nil {
		return decl
	}

	var typeParams *Node
	if p.check("<") {
		typeParams = p.parseTypeParameters()
	}

	if p.isIdentifier() && p.peekN(1).Is("(") {
		return p.parseConstructor(modifiers, typeParams)
	}

	if p.isContextual("record") && p.peekN(1).Kind == TokenIdent && (p.peekN(2).Is("(") || p.peekN(2).Is("<")) {
		p.fail("class, interface or enum declaration")
	}

	if !p.isIdentifier() && !(p.peek().Kind == TokenKeyword && IsPrimitiveType(p.peek().Literal)) {
		p.fail("member declaration")
	}

	typ := p.parseType()
	name := p.expectIdentifier()

	if p.check("(") {
		return p.parseMethod(modifiers, typeParams, typ, name)
	}
	if typeParams != nil {
		p.fail("'('")
	}
	if p.match("=", ";", ",", "[") {
		return p.parseField(modifiers, typ, name)
	}
	p.fail("'(', '=' or ';'")
	return nil
}

func (p *Parser) parseConstructor(modifiers *Node, typeParams *Node) *Node {
	node := p.startNode(KindConstructorDecl)
	node.Span.Start = modifiers.Span.Start
	node.AddChild(modifiers)
	node.AddChild(typeParams)

	node.AddChild(leaf(KindIdentifier, p.expectIdentifier()))
	node.AddChild(p.parseParameters())

	if p.check("throws") {
		node.AddChild(p.parseThrowsList())
	}

	if !p.check("{") {
		p.fail("constructor body")
	}
	node.AddChild(p.skipBalanced(KindBlock, "{"))
	return p.finishNode(node)
}

func (p *Parser) parseMethod(modifiers, typeParams, returnType *Node, name Token) *Node {
	node := p.startNode(KindMethodDecl)
	node.Span.Start = modifiers.Span.Start
	node.AddChild(modifiers)
	node.AddChild(typeParams)

	params := p.parseParameters()

	// Legacy array syntax: int foo()[]
	returnType = p.parseDims(returnType)

	node.AddChild(returnType)
	node.AddChild(leaf(KindIdentifier, name))
	node.AddChild(params)

	if p.check("throws") {
		node.AddChild(p.parseThrowsList())
	}

	switch {
	case p.check("{"):
		node.AddChild(p.skipBalanced(KindBlock, "{"))
	case p.check("default"):
		p.advance()
		node.AddChild(p.skipUntilSemicolon())
		p.expect(";")
	case p.check(";"):
		p.advance()
	default:
		p.fail("method body or ';'")
	}

	return p.finishNode(node)
}

func (p *Parser) parseField(modifiers, typ *Node, name Token) *Node {
	node := p.startNode(KindFieldDecl)
	node.Span.Start = modifiers.Span.Start
	node.AddChild(modifiers)
	node.AddChild(typ)

	for {
		node.AddChild(p.parseVariableDeclarator(name))
		if !p.check(",") {
			break
		}
		p.advance()
		name = p.expectIdentifier()
	}

	p.expect(";")
	return p.finishNode(node)
}

func (p *Parser) parseVariableDeclarator(name Token) *Node {
	node := &Node{Kind: KindVariableDeclarator, Span: Span{Start: name.Span.Start}}
	node.AddChild(leaf(KindIdentifier, name))

	for p.check("[") {
		node.AddChild(leaf(KindArrayType, p.advance()))
		p.expect("]")
	}

	if p.check("=") {
		p.advance()
		node.AddChild(p.skipInitializer())
	}

	return p.finishNode(node)
}

func (p *Parser) parseParameters() *Node {
	node := p.startNode(KindParameters)
	p.expect("(")

	if !p.check(")") {
		for {
			node.AddChild(p.parseParameter())
			if !p.check(",") {
				break
			}
			p.advance()
		}
	}

	p.expect(")")
	return p.finishNode(node)
}

func (p *Parser) parseParameter() *Node {
	node := p.startNode(KindParameter)
	node.AddChild(p.parseModifiers())

	typ := p.parseType()

	varargs := false
	if p.check("...") {
		p.advance()
		varargs = true
	}

	var name Token
	switch {
	case p.check("this"):
		// Receiver parameter: Outer this
		name = p.advance()
	case p.isIdentifier() && p.peekN(1).Is(".") && p.peekN(2).Is("this"):
		p.advance()
		p.advance()
		name = p.advance()
	default:
		name = p.expectIdentifier()
	}

	typ = p.parseDims(typ)
	if varargs {
		wrapper := &Node{Kind: KindVarargs, Span: typ.Span}
		wrapper.AddChild(typ)
		typ = wrapper
	}

	node.AddChild(typ)
	node.AddChild(leaf(KindIdentifier, name))
	return p.finishNode(node)
}

func (p *Parser) parseThrowsList() *Node {
	return p.parseTypeList(KindThrowsList)
}

var closers = map[string]string{"(": ")", "{": "}", "[": "]"}

// skipBalanced consumes a bracketed token run starting at open, including
// nested pairs of the same brackets and of the other bracket kinds, and
// returns a node spanning it. The contents are not interpreted.
func (p *Parser) skipBalanced(kind NodeKind, open string) *Node {
	node := p.startNode(kind)
	close := closers[open]
	p.expect(open)
	var stack []string
	for {
		if p.checkEOF() {
			if len(stack) > 0 {
				p.fail("'" + stack[len(stack)-1] + "'")
			}
			p.fail("'" + close + "'")
		}
		tok := p.peek()
		if tok.Kind == TokenPunct {
			if c, ok := closers[tok.Literal]; ok {
				stack = append(stack, c)
			} else if tok.Literal == ")" || tok.Literal == "}" || tok.Literal == "]" {
				if len(stack) == 0 {
					if tok.Literal != close {
						p.fail("'" + close + "'")
					}
					p.advance()
					return p.finishNode(node)
				}
				if stack[len(stack)-1] != tok.Literal {
					p.fail("'" + stack[len(stack)-1] + "'")
				}
				stack = stack[:len(stack)-1]
			}
		}
		p.advance()
	}
}

// skipInitializer consumes a field initializer up to the ';' ending the
// declaration or the ',' starting the next declarator. A comma inside
// unbracketed type arguments (new HashMap<K, V>()) is told apart from a
// declarator separator by what follows it.
func (p *Parser) skipInitializer() *Node {
	node := p.startNode(KindSkipped)
	for {
		switch {
		case p.checkEOF():
			p.fail("';'")
		case p.check(";"):
			return p.finishNode(node)
		case p.check(",") && p.startsDeclarator(1):
			return p.finishNode(node)
		case p.match("(", "{", "["):
			p.skipBalanced(KindSkipped, p.peek().Literal)
		case p.match(")", "}", "]"):
			p.fail("';'")
		default:
			p.advance()
		}
	}
}

// startsDeclarator reports whether the tokens at offset read as a
// declarator: a name, any number of [] pairs, then '=', ',' or ';'. An
// array type argument (Map<K, V[]>) is followed by '>' instead.
func (p *Parser) startsDeclarator(offset int) bool {
	if p.peekN(offset).Kind != TokenIdent {
		return false
	}
	i := offset + 1
	for p.peekN(i).Is("[") && p.peekN(i+1).Is("]") {
		i += 2
	}
	next := p.peekN(i)
	return next.Is("=") || next.Is(",") || next.Is(";")
}

func (p *Parser) skipUntilSemicolon() *Node {
	node := p.startNode(KindSkipped)
	for !p.check(";") {
		switch {
		case p.checkEOF():
			p.fail("';'")
		case p.match("(", "{", "["):
			p.skipBalanced(KindSkipped, p.peek().Literal)
		default:
			p.advance()
		}
	}
	return p.finishNode(node)
}
