package java

import (
	"slices"
	"strings"

	"github.com/dhamidi/javasym/java/parser"
)

type EntityKind string

const (
	EntityClass     EntityKind = "class"
	EntityInterface EntityKind = "interface"
	EntityEnum      EntityKind = "enum"
)

type MemberKind string

const (
	MemberField       MemberKind = "field"
	MemberMethod      MemberKind = "method"
	MemberConstructor MemberKind = "constructor"
)

// Modifiers lists modifier keywords in declaration order. Annotations are
// not modifiers.
type Modifiers []string

func (m Modifiers) Has(modifier string) bool {
	return slices.Contains(m, modifier)
}

type Import struct {
	Name     string
	Static   bool
	OnDemand bool
}

type Parameter struct {
	Name string
	Type string
}

type Member struct {
	Name       string
	Kind       MemberKind
	Modifiers  Modifiers
	Type       string
	Parameters []Parameter
	// IsStatic is set only by an explicit static modifier.
	IsStatic       bool
	Throws         []string
	TypeParameters []string
	Doc            string
	Pos            parser.Position
	Span           parser.Span
}

type Entity struct {
	// Name is qualified within the compilation unit, e.g. Outer.Inner.
	Name           string
	SimpleName     string
	Kind           EntityKind
	Modifiers      Modifiers
	SuperClass     string
	Interfaces     []string
	TypeParameters []string
	Members        []Member
	EnumConstants  []string
	Outer          string
	Doc            string
	Pos            parser.Position
	Span           parser.Span
}

// Model is the symbol model of one compilation unit. It is never modified
// after extraction; accessors hand out copies.
type Model struct {
	pkg       string
	imports   []Import
	entities  []Entity
	sourceURL URLString
	index     map[string]int
}

func (m *Model) Package() string {
	return m.pkg
}

func (m *Model) Imports() []Import {
	return slices.Clone(m.imports)
}

func (m *Model) SourceURL() URLString {
	return m.sourceURL
}

// Entities returns every entity in source order, nested types directly
// after their enclosing type.
func (m *Model) Entities() []Entity {
	out := make([]Entity, len(m.entities))
	for i, e := range m.entities {
		out[i] = e.clone()
	}
	return out
}

func (m *Model) Entity(name string) (Entity, bool) {
	i, ok := m.index[name]
	if !ok {
		return Entity{}, false
	}
	return m.entities[i].clone(), true
}

func (m *Model) Len() int {
	return len(m.entities)
}

func (m *Model) entity(name string) *Entity {
	i, ok := m.index[name]
	if !ok {
		return nil
	}
	return &m.entities[i]
}

func (e Entity) clone() Entity {
	e.Modifiers = slices.Clone(e.Modifiers)
	e.Interfaces = slices.Clone(e.Interfaces)
	e.TypeParameters = slices.Clone(e.TypeParameters)
	e.EnumConstants = slices.Clone(e.EnumConstants)
	if e.Members != nil {
		members := make([]Member, len(e.Members))
		for i, mem := range e.Members {
			members[i] = mem.clone()
		}
		e.Members = members
	}
	return e
}

func (m Member) clone() Member {
	m.Modifiers = slices.Clone(m.Modifiers)
	m.Parameters = slices.Clone(m.Parameters)
	m.Throws = slices.Clone(m.Throws)
	m.TypeParameters = slices.Clone(m.TypeParameters)
	return m
}

// Supertypes returns the superclass followed by the interfaces, as
// written in the source with type arguments removed.
func (e Entity) Supertypes() []string {
	var refs []string
	if e.SuperClass != "" {
		refs = append(refs, e.SuperClass)
	}
	return append(refs, e.Interfaces...)
}

// Signature renders a member the way it is declared, without modifiers:
// "double distance(Point other)" or "Point(double x, double y)".
func (m Member) Signature() string {
	if m.Kind == MemberField {
		return m.Type + " " + m.Name
	}
	var sb strings.Builder
	if m.Type != "" {
		sb.WriteString(m.Type + " ")
	}
	sb.WriteString(m.Name + "(")
	for i, p := range m.Parameters {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Type + " " + p.Name)
	}
	sb.WriteString(")")
	return sb.String()
}
