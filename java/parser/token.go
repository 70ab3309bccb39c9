package parser

import "fmt"

type Position struct {
	File   string
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File != "" {
		return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Span struct {
	Start Position
	End   Position
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenKeyword
	TokenIntLiteral
	TokenFloatLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTextBlock
	TokenPunct
	TokenComment
	TokenLineComment
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:           "EOF",
	TokenIdent:         "Identifier",
	TokenKeyword:       "Keyword",
	TokenIntLiteral:    "IntLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTextBlock:     "TextBlock",
	TokenPunct:         "Punctuation",
	TokenComment:       "Comment",
	TokenLineComment:   "LineComment",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Category groups token kinds into the coarse classes callers usually
// care about: identifier, keyword, literal, punctuation, comment or eof.
func (k TokenKind) Category() string {
	switch k {
	case TokenIdent:
		return "identifier"
	case TokenKeyword:
		return "keyword"
	case TokenIntLiteral, TokenFloatLiteral, TokenCharLiteral, TokenStringLiteral, TokenTextBlock:
		return "literal"
	case TokenPunct:
		return "punctuation"
	case TokenComment, TokenLineComment:
		return "comment"
	case TokenEOF:
		return "eof"
	}
	return "unknown"
}

type Token struct {
	Kind    TokenKind
	Span    Span
	Literal string
}

// Is reports whether the token is the keyword or punctuation spelled lit.
func (t Token) Is(lit string) bool {
	return (t.Kind == TokenKeyword || t.Kind == TokenPunct) && t.Literal == lit
}

func (t Token) String() string {
	switch t.Kind {
	case TokenEOF:
		return "end of input"
	case TokenKeyword, TokenPunct:
		return "'" + t.Literal + "'"
	}
	return fmt.Sprintf("%s %q", t.Kind.Category(), t.Literal)
}

var keywords = map[string]bool{
	"abstract":     true,
	"assert":       true,
	"boolean":      true,
	"break":        true,
	"byte":         true,
	"case":         true,
	"catch":        true,
	"char":         true,
	"class":        true,
	"const":        true,
	"continue":     true,
	"default":      true,
	"do":           true,
	"double":       true,
	"else":         true,
	"enum":         true,
	"extends":      true,
	"final":        true,
	"finally":      true,
	"float":        true,
	"for":          true,
	"goto":         true,
	"if":           true,
	"implements":   true,
	"import":       true,
	"instanceof":   true,
	"int":          true,
	"interface":    true,
	"long":         true,
	"native":       true,
	"new":          true,
	"package":      true,
	"private":      true,
	"protected":    true,
	"public":       true,
	"return":       true,
	"short":        true,
	"static":       true,
	"strictfp":     true,
	"super":        true,
	"switch":       true,
	"synchronized": true,
	"this":         true,
	"throw":        true,
	"throws":       true,
	"transient":    true,
	"try":          true,
	"void":         true,
	"volatile":     true,
	"while":        true,
	"true":         true,
	"false":        true,
	"null":         true,
}

// Contextual keywords such as "sealed" or "record" lex as identifiers and
// are recognized by the parser where they matter.
func LookupKeyword(ident string) TokenKind {
	if keywords[ident] {
		return TokenKeyword
	}
	return TokenIdent
}

var primitiveTypes = map[string]bool{
	"boolean": true,
	"byte":    true,
	"char":    true,
	"short":   true,
	"int":     true,
	"long":    true,
	"float":   true,
	"double":  true,
	"void":    true,
}

func IsPrimitiveType(name string) bool {
	return primitiveTypes[name]
}

// punctuators ordered longest first for maximal munch.
var punctuators = []string{
	">>>=", "<<=", ">>=", ">>>", "...", "->", "::", "++", "--", "&&", "||",
	"==", "!=", "<=", ">=", "+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
	"<<", ">>",
	"(", ")", "{", "}", "[", "]", ";", ",", ".", "@", "=", ">", "<", "!",
	"~", "?", ":", "+", "-", "*", "/", "&", "|", "^", "%",
}
