package java

import (
	"github.com/dhamidi/javasym/java/parser"
)

// Symbol is a declaration found at a source position: an entity, and the
// member when the position falls inside one.
type Symbol struct {
	Entity Entity
	Member *Member
}

// SymbolAt returns the innermost declaration whose span contains pos.
// Only Line and Column of pos are used.
func (q *Query) SymbolAt(pos parser.Position) (Symbol, bool) {
	var best *Entity
	for i := range q.model.entities {
		e := &q.model.entities[i]
		if !positionInSpan(pos, e.Span) {
			continue
		}
		// Nested entities come after their enclosing entity and have
		// smaller spans, so the last match is the innermost.
		best = e
	}
	if best == nil {
		return Symbol{}, false
	}

	sym := Symbol{Entity: best.clone()}
	for _, mem := range best.Members {
		if positionInSpan(pos, mem.Span) {
			m := mem.clone()
			sym.Member = &m
			break
		}
	}
	return sym, true
}

func positionInSpan(pos parser.Position, span parser.Span) bool {
	if positionBefore(pos, span.Start) {
		return false
	}
	return positionBefore(pos, span.End)
}

func positionBefore(a, b parser.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Column < b.Column
}
