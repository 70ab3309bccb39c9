package java

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dominikbraun/graph"
)

var ErrUnknownEntity = errors.New("unknown entity")

// Subtype is the outcome of a subtype query. A chain of references that
// leaves the unit cannot be followed, so the answer may be unknown.
type Subtype int

const (
	SubtypeFalse Subtype = iota
	SubtypeTrue
	SubtypeUnresolved
)

func (s Subtype) String() string {
	switch s {
	case SubtypeTrue:
		return "true"
	case SubtypeFalse:
		return "false"
	}
	return "unresolved"
}

// Query answers read-only questions about a Model. The supertype graph is
// built once by NewQuery; a Query is safe for concurrent use.
type Query struct {
	model *Model

	// hierarchy has an edge from every entity to each of its supertypes
	// declared in the unit.
	hierarchy graph.Graph[string, string]

	// external holds, per entity, the supertype references that do not
	// name an entity of the unit.
	external map[string][]string
}

func NewQuery(m *Model) *Query {
	q := &Query{
		model:     m,
		hierarchy: graph.New(graph.StringHash, graph.Directed()),
		external:  make(map[string][]string),
	}

	for _, e := range m.entities {
		_ = q.hierarchy.AddVertex(e.Name)
	}

	for _, e := range m.entities {
		for _, ref := range e.Supertypes() {
			target, ok := resolveReference(m, e.Name, ref)
			if !ok {
				q.external[e.Name] = append(q.external[e.Name], ref)
				continue
			}
			if target == e.Name {
				continue
			}
			if err := q.hierarchy.AddEdge(e.Name, target); err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				q.external[e.Name] = append(q.external[e.Name], ref)
			}
		}
	}

	return q
}

func (q *Query) Model() *Model {
	return q.model
}

// FindEntity looks an entity up by its name within the unit (Outer.Inner)
// or by its package-qualified name.
func (q *Query) FindEntity(name string) (Entity, bool) {
	resolved, ok := resolveEntityName(q.model, name)
	if !ok {
		return Entity{}, false
	}
	return q.model.Entity(resolved)
}

// MembersOf returns the members of an entity in declaration order. When
// kinds are given only members of those kinds are returned.
func (q *Query) MembersOf(name string, kinds ...MemberKind) ([]Member, error) {
	resolved, ok := resolveEntityName(q.model, name)
	if !ok {
		return nil, fmt.Errorf("members of %s: %w", name, ErrUnknownEntity)
	}

	var members []Member
	for _, mem := range q.model.entity(resolved).Members {
		if len(kinds) > 0 && !containsKind(kinds, mem.Kind) {
			continue
		}
		members = append(members, mem.clone())
	}
	return members, nil
}

func containsKind(kinds []MemberKind, kind MemberKind) bool {
	for _, k := range kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// IsSubtypeOf reports whether a chain of extends and implements
// references leads from entity to candidate. Every entity is a subtype of
// itself. The answer is SubtypeUnresolved when either name is not an
// entity of the unit, or when the candidate was not reached and some
// entity on the way names a supertype outside the unit.
func (q *Query) IsSubtypeOf(entity, candidate string) Subtype {
	from, ok := resolveEntityName(q.model, entity)
	if !ok {
		return SubtypeUnresolved
	}
	to, ok := resolveEntityName(q.model, candidate)
	if !ok {
		return SubtypeUnresolved
	}

	found := false
	leavesUnit := false
	err := graph.BFS(q.hierarchy, from, func(name string) bool {
		if name == to {
			found = true
			return true
		}
		if len(q.external[name]) > 0 {
			leavesUnit = true
		}
		return false
	})
	switch {
	case err != nil:
		return SubtypeUnresolved
	case found:
		return SubtypeTrue
	case leavesUnit:
		return SubtypeUnresolved
	}
	return SubtypeFalse
}

// Supertypes returns the entities of the unit that name directly extends
// or implements, sorted.
func (q *Query) Supertypes(name string) []string {
	resolved, ok := resolveEntityName(q.model, name)
	if !ok {
		return nil
	}
	adjacency, err := q.hierarchy.AdjacencyMap()
	if err != nil {
		return nil
	}
	return sortedKeys(adjacency[resolved])
}

// Subtypes returns the entities of the unit that directly extend or
// implement name, sorted.
func (q *Query) Subtypes(name string) []string {
	resolved, ok := resolveEntityName(q.model, name)
	if !ok {
		return nil
	}
	predecessors, err := q.hierarchy.PredecessorMap()
	if err != nil {
		return nil
	}
	return sortedKeys(predecessors[resolved])
}

// ExternalSupertypes returns the supertype references of name that do not
// resolve within the unit, in declaration order.
func (q *Query) ExternalSupertypes(name string) []string {
	resolved, ok := resolveEntityName(q.model, name)
	if !ok {
		return nil
	}
	return append([]string(nil), q.external[resolved]...)
}

func sortedKeys(edges map[string]graph.Edge[string]) []string {
	if len(edges) == 0 {
		return nil
	}
	keys := make([]string, 0, len(edges))
	for k := range edges {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
