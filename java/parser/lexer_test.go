package parser

import (
	"errors"
	"testing"
)

func TestLexerNewLexer(t *testing.T) {
	lexer := NewLexer([]byte("class Foo {}"), "Test.java")
	pos := lexer.Position()

	if pos.File != "Test.java" {
		t.Errorf("File = %q, want %q", pos.File, "Test.java")
	}
	if pos.Line != 1 {
		t.Errorf("Line = %d, want %d", pos.Line, 1)
	}
	if pos.Column != 1 {
		t.Errorf("Column = %d, want %d", pos.Column, 1)
	}
}

func collectKinds(t *testing.T, input string, opts ...Option) []TokenKind {
	t.Helper()
	var got []TokenKind
	for tok, err := range Tokenize([]byte(input), opts...) {
		if err != nil {
			t.Fatalf("Tokenize(%q) error = %v", input, err)
		}
		got = append(got, tok.Kind)
	}
	return got
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"class", []TokenKind{TokenKeyword, TokenEOF}},
		{"public class Main {}", []TokenKind{TokenKeyword, TokenKeyword, TokenIdent, TokenPunct, TokenPunct, TokenEOF}},
		{"123", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"3.14", []TokenKind{TokenFloatLiteral, TokenEOF}},
		{`"hello"`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{"'a'", []TokenKind{TokenCharLiteral, TokenEOF}},
		{`'\''`, []TokenKind{TokenCharLiteral, TokenEOF}},
		{"\"\"\"\nblock\n\"\"\"", []TokenKind{TokenTextBlock, TokenEOF}},
		{"// comment\nclass", []TokenKind{TokenKeyword, TokenEOF}},
		{"/* block */ class", []TokenKind{TokenKeyword, TokenEOF}},
		{"a->b", []TokenKind{TokenIdent, TokenPunct, TokenIdent, TokenEOF}},
		{"record sealed var", []TokenKind{TokenIdent, TokenIdent, TokenIdent, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := collectKinds(t, tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestTokenizeWithComments(t *testing.T) {
	got := collectKinds(t, "/** doc */ class // tail", WithComments())
	want := []TokenKind{TokenComment, TokenKeyword, TokenLineComment, TokenEOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTokenizeIsRestartable(t *testing.T) {
	seq := Tokenize([]byte("class A { int x; }"))
	var first, second []Token
	for tok, err := range seq {
		if err != nil {
			t.Fatal(err)
		}
		first = append(first, tok)
	}
	for tok, err := range seq {
		if err != nil {
			t.Fatal(err)
		}
		second = append(second, tok)
	}
	if len(first) != len(second) {
		t.Fatalf("second pass yielded %d tokens, first %d", len(second), len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("token %d differs: %v vs %v", i, first[i], second[i])
		}
	}
}

func TestTokenizeStopsEarly(t *testing.T) {
	n := 0
	for range Tokenize([]byte("a b c d e")) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
}

func TestLexerPositions(t *testing.T) {
	src := "package a;\n\n  class Foo {\n\tint x;\n}"
	var toks []Token
	for tok, err := range Tokenize([]byte(src)) {
		if err != nil {
			t.Fatal(err)
		}
		toks = append(toks, tok)
	}

	tests := []struct {
		index  int
		lit    string
		line   int
		column int
	}{
		{0, "package", 1, 1},
		{1, "a", 1, 9},
		{3, "class", 3, 3},
		{4, "Foo", 3, 9},
		{6, "int", 4, 2},
		{9, "}", 5, 1},
	}
	for _, tt := range tests {
		tok := toks[tt.index]
		if tok.Literal != tt.lit {
			t.Errorf("token %d = %q, want %q", tt.index, tok.Literal, tt.lit)
			continue
		}
		if tok.Span.Start.Line != tt.line || tok.Span.Start.Column != tt.column {
			t.Errorf("%q at %d:%d, want %d:%d", tt.lit, tok.Span.Start.Line, tok.Span.Start.Column, tt.line, tt.column)
		}
	}
}

func TestLexerPunctuationMaximalMunch(t *testing.T) {
	tests := []string{
		"(", ")", "{", "}", "[", "]", ";", ",", ".", "...", "@", "::", ":",
		"=", "==", "!=", "<", "<=", ">", ">=", "&&", "||", "!", "&", "|",
		"^", "~", "<<", ">>", ">>>", "+", "-", "*", "/", "%", "++", "--",
		"?", "->", "+=", "-=", "<<=", ">>=", ">>>=",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			tok, err := NewLexer([]byte(input), "test.java").NextToken()
			if err != nil {
				t.Fatalf("NextToken() error = %v", err)
			}
			if tok.Kind != TokenPunct {
				t.Errorf("Kind = %v, want %v", tok.Kind, TokenPunct)
			}
			if tok.Literal != input {
				t.Errorf("Literal = %q, want %q", tok.Literal, input)
			}
		})
	}
}

func TestLexerNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  TokenKind
	}{
		{"0", TokenIntLiteral},
		{"1_000_000", TokenIntLiteral},
		{"123L", TokenIntLiteral},
		{"0x1F", TokenIntLiteral},
		{"0b1010", TokenIntLiteral},
		{"3.14f", TokenFloatLiteral},
		{".5", TokenFloatLiteral},
		{"1e10", TokenFloatLiteral},
		{"1.5E+10", TokenFloatLiteral},
		{"0x1.8p1", TokenFloatLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tok, err := NewLexer([]byte(tt.input), "test.java").NextToken()
			if err != nil {
				t.Fatalf("NextToken() error = %v", err)
			}
			if tok.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", tok.Kind, tt.kind)
			}
			if tok.Literal != tt.input {
				t.Errorf("Literal = %q, want %q", tok.Literal, tt.input)
			}
		})
	}
}

func TestLexerNonSealed(t *testing.T) {
	tok, err := NewLexer([]byte("non-sealed class"), "").NextToken()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Kind != TokenIdent || tok.Literal != "non-sealed" {
		t.Errorf("got %v %q, want Identifier \"non-sealed\"", tok.Kind, tok.Literal)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		line   int
		column int
	}{
		{"unterminated string", "class A {\n  String s = \"abc;\n}", 2, 14},
		{"string at eof", `"abc`, 1, 1},
		{"unterminated char", "char c = 'a;", 1, 10},
		{"escaped newline in string", "class A { String s = \"abc\\\n\"; }", 1, 22},
		{"backslash at eof in string", `"abc\`, 1, 1},
		{"escaped newline in char", "char c = '\\\n';", 1, 10},
		{"unterminated block comment", "class A {}\n/* never closed", 2, 1},
		{"unterminated text block", "String s = \"\"\"\nabc", 1, 12},
		{"illegal character", "class A { # }", 1, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var err error
			for _, e := range Tokenize([]byte(tt.input)) {
				if e != nil {
					err = e
				}
			}
			var lexErr *LexError
			if !errors.As(err, &lexErr) {
				t.Fatalf("error = %v, want *LexError", err)
			}
			if lexErr.Pos.Line != tt.line || lexErr.Pos.Column != tt.column {
				t.Errorf("error at %d:%d, want %d:%d (%v)", lexErr.Pos.Line, lexErr.Pos.Column, tt.line, tt.column, lexErr)
			}
		})
	}
}

func TestTokenCategory(t *testing.T) {
	tests := []struct {
		kind TokenKind
		want string
	}{
		{TokenIdent, "identifier"},
		{TokenKeyword, "keyword"},
		{TokenIntLiteral, "literal"},
		{TokenTextBlock, "literal"},
		{TokenPunct, "punctuation"},
		{TokenComment, "comment"},
		{TokenLineComment, "comment"},
		{TokenEOF, "eof"},
		{TokenKind(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.kind.Category(); got != tt.want {
			t.Errorf("%v.Category() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
