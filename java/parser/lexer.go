package parser

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

func NewLexer(input []byte, file string) *Lexer {
	return &Lexer{
		input:  input,
		file:   file,
		pos:    0,
		line:   1,
		column: 1,
	}
}

// Tokenize returns the tokens of src in order, ending with a TokenEOF
// token. Whitespace is dropped; comments are dropped unless WithComments
// is given. Each iteration starts from the beginning of src, so the
// sequence can be ranged over any number of times. Iteration stops after
// the first LexError.
func Tokenize(src []byte, opts ...Option) iter.Seq2[Token, error] {
	cfg := &Parser{startLine: 1}
	for _, opt := range opts {
		opt(cfg)
	}
	return func(yield func(Token, error) bool) {
		l := NewLexer(src, cfg.file)
		l.line = cfg.startLine
		for {
			tok, err := l.NextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}
			if tok.Kind == TokenComment || tok.Kind == TokenLineComment {
				if !cfg.includeComments {
					continue
				}
			}
			if !yield(tok, nil) {
				return
			}
			if tok.Kind == TokenEOF {
				return
			}
		}
	}
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) skipWhitespace() {
	for {
		switch l.peek() {
		case ' ', '\t', '\r', '\n', '\f':
			l.advance()
		default:
			return
		}
	}
}

// NextToken returns the next non-whitespace token. At the end of input it
// keeps returning a TokenEOF token.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()
	startPos := l.Position()

	if l.atEOF() {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}, nil
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(startPos), nil
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}

	if isJavaLetter(ch) {
		return l.scanIdentOrKeyword(startPos), nil
	}

	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber(startPos), nil
	}

	if ch == '\'' {
		return l.scanCharLiteral(startPos)
	}

	if ch == '"' {
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanTextBlock(startPos)
		}
		return l.scanStringLiteral(startPos)
	}

	return l.scanPunct(startPos)
}

func (l *Lexer) scanLineComment(start Position) Token {
	l.advanceN(2)
	for !l.atEOF() && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start Position) (Token, error) {
	l.advanceN(2)
	for {
		if l.atEOF() {
			return Token{}, &LexError{Pos: start, Message: "unterminated block comment"}
		}
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	return l.token(TokenComment, start), nil
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for !l.atEOF() && isJavaLetterOrDigit(l.peek()) {
		l.advance()
	}
	end := l.Position()
	literal := string(l.input[start.Offset:end.Offset])

	// non-sealed is the only hyphenated modifier.
	if literal == "non" && strings.HasPrefix(string(l.input[l.pos:]), "-sealed") {
		rest := l.input[l.pos+len("-sealed"):]
		if len(rest) == 0 || !isJavaLetterOrDigit(rest[0]) {
			l.advanceN(len("-sealed"))
			return l.token(TokenIdent, start)
		}
	}

	return Token{
		Kind:    LookupKeyword(literal),
		Span:    Span{Start: start, End: end},
		Literal: literal,
	}
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		return l.scanHexNumber(start)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		for l.peek() == '0' || l.peek() == '1' || l.peek() == '_' {
			l.advance()
		}
		if l.peek() == 'l' || l.peek() == 'L' {
			l.advance()
		}
		return l.token(TokenIntLiteral, start)
	}

	isFloat := false
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekN(1)) {
		isFloat = true
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	switch l.peek() {
	case 'f', 'F', 'd', 'D':
		isFloat = true
		l.advance()
	case 'l', 'L':
		l.advance()
	}

	if isFloat {
		return l.token(TokenFloatLiteral, start)
	}
	return l.token(TokenIntLiteral, start)
}

func (l *Lexer) scanHexNumber(start Position) Token {
	l.advanceN(2)
	for isHexDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}
	isFloat := false
	if l.peek() == '.' {
		isFloat = true
		l.advance()
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if l.peek() == 'p' || l.peek() == 'P' {
		isFloat = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}
	if isFloat {
		switch l.peek() {
		case 'f', 'F', 'd', 'D':
			l.advance()
		}
		return l.token(TokenFloatLiteral, start)
	}
	if l.peek() == 'l' || l.peek() == 'L' {
		l.advance()
	}
	return l.token(TokenIntLiteral, start)
}

func (l *Lexer) scanCharLiteral(start Position) (Token, error) {
	l.advance()
	for l.peek() != '\'' {
		if l.atEOF() || l.peek() == '\n' {
			return Token{}, &LexError{Pos: start, Message: "unterminated character literal"}
		}
		if l.peek() == '\\' {
			l.advance()
			if l.atEOF() || l.peek() == '\n' {
				return Token{}, &LexError{Pos: start, Message: "unterminated character literal"}
			}
		}
		l.advance()
	}
	l.advance()
	return l.token(TokenCharLiteral, start), nil
}

func (l *Lexer) scanStringLiteral(start Position) (Token, error) {
	l.advance()
	for l.peek() != '"' {
		if l.atEOF() || l.peek() == '\n' {
			return Token{}, &LexError{Pos: start, Message: "unterminated string literal"}
		}
		if l.peek() == '\\' {
			l.advance()
			if l.atEOF() || l.peek() == '\n' {
				return Token{}, &LexError{Pos: start, Message: "unterminated string literal"}
			}
		}
		l.advance()
	}
	l.advance()
	return l.token(TokenStringLiteral, start), nil
}

func (l *Lexer) scanTextBlock(start Position) (Token, error) {
	l.advanceN(3)
	for {
		if l.atEOF() {
			return Token{}, &LexError{Pos: start, Message: "unterminated text block"}
		}
		if l.peek() == '"' && l.peekN(1) == '"' && l.peekN(2) == '"' {
			l.advanceN(3)
			break
		}
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	return l.token(TokenTextBlock, start), nil
}

func (l *Lexer) scanPunct(start Position) (Token, error) {
	rest := l.input[l.pos:]
	for _, p := range punctuators {
		if len(rest) >= len(p) && string(rest[:len(p)]) == p {
			l.advanceN(len(p))
			return l.token(TokenPunct, start), nil
		}
	}
	r, _ := utf8.DecodeRune(rest)
	return Token{}, &LexError{Pos: start, Message: "unexpected character " + quoteRune(r)}
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func quoteRune(r rune) string {
	if r == utf8.RuneError {
		return "(invalid UTF-8)"
	}
	return "'" + string(r) + "'"
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// Bytes >= 128 are accepted as identifier parts so UTF-8 identifiers lex
// as a single token.
func isJavaLetter(ch byte) bool {
	if ch >= utf8.RuneSelf {
		return true
	}
	return unicode.IsLetter(rune(ch)) || ch == '_' || ch == '$'
}

func isJavaLetterOrDigit(ch byte) bool {
	return isJavaLetter(ch) || isDigit(ch)
}
