// Package parser provides a lexer and a fail-fast structural parser for a
// single Java compilation unit.
//
// # Overview
//
// Parsing runs in two stages:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Input     │────▶│   Lexer     │────▶│   Parser    │
//	│  (bytes)    │     │  (tokens)   │     │   (CST)     │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// The lexer turns bytes into a lazy token sequence. The parser consumes that
// sequence and builds a concrete syntax tree covering declarations only:
// package, imports, classes, interfaces, enums and their members. Method
// bodies, initializers and annotation arguments are kept as opaque
// balanced token runs (KindBlock and KindSkipped nodes).
//
// # Tokens
//
// Tokenize returns an iter.Seq2 that can be ranged over more than once:
//
//	for tok, err := range parser.Tokenize(src) {
//	    if err != nil {
//	        return err // *LexError
//	    }
//	    fmt.Println(tok.Kind.Category(), tok.Literal)
//	}
//
// Whitespace never produces tokens. Comments are dropped unless
// WithComments is given. The last token is always TokenEOF.
//
// Contextual words (record, sealed, permits, var, yield) are lexed as
// identifiers; the parser gives them meaning where the grammar allows.
//
// # Syntax Trees
//
//	p := parser.ParseCompilationUnit(r, parser.WithFile("Point.java"))
//	cu, err := p.Finish()
//
// Build does the same from a token sequence produced elsewhere:
//
//	cu, err := parser.Build(parser.Tokenize(src))
//
// Every node carries a Span whose Start is the position of its first
// token, modifiers and annotations included.
//
// # Errors
//
// Parsing stops at the first problem. Lexical problems are reported as
// *LexError, grammar problems as *SyntaxError with the position of the
// offending token, a description of what was expected and the token that
// was found:
//
//	Point.java:3:17: expected '(', '=' or ';', found '}'
//
// Records and annotation type declarations are rejected with a
// SyntaxError.
package parser
