package format

import (
	"github.com/dhamidi/javasym/java"
)

// document is the serialized shape of a model shared by the JSON and YAML
// encoders.
type document struct {
	Source   string       `json:"source,omitempty" yaml:"source,omitempty"`
	Package  string       `json:"package,omitempty" yaml:"package,omitempty"`
	Imports  []importData `json:"imports,omitempty" yaml:"imports,omitempty"`
	Entities []entityData `json:"entities" yaml:"entities"`
}

type importData struct {
	Name     string `json:"name" yaml:"name"`
	Static   bool   `json:"static,omitempty" yaml:"static,omitempty"`
	OnDemand bool   `json:"onDemand,omitempty" yaml:"onDemand,omitempty"`
}

type entityData struct {
	Name           string       `json:"name" yaml:"name"`
	SimpleName     string       `json:"simpleName" yaml:"simpleName"`
	Kind           string       `json:"kind" yaml:"kind"`
	Modifiers      []string     `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	SuperClass     string       `json:"superClass,omitempty" yaml:"superClass,omitempty"`
	Interfaces     []string     `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
	TypeParameters []string     `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
	Outer          string       `json:"outer,omitempty" yaml:"outer,omitempty"`
	EnumConstants  []string     `json:"enumConstants,omitempty" yaml:"enumConstants,omitempty"`
	Members        []memberData `json:"members,omitempty" yaml:"members,omitempty"`
	Doc            string       `json:"doc,omitempty" yaml:"doc,omitempty"`
	Line           int          `json:"line" yaml:"line"`
	Column         int          `json:"column" yaml:"column"`
}

type memberData struct {
	Name           string          `json:"name" yaml:"name"`
	Kind           string          `json:"kind" yaml:"kind"`
	Modifiers      []string        `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Type           string          `json:"type,omitempty" yaml:"type,omitempty"`
	Parameters     []parameterData `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Static         bool            `json:"static,omitempty" yaml:"static,omitempty"`
	Throws         []string        `json:"throws,omitempty" yaml:"throws,omitempty"`
	TypeParameters []string        `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
	Doc            string          `json:"doc,omitempty" yaml:"doc,omitempty"`
	Line           int             `json:"line" yaml:"line"`
	Column         int             `json:"column" yaml:"column"`
}

type parameterData struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

func buildDocument(m *java.Model, opts options) document {
	doc := document{
		Source:   m.SourceURL().String(),
		Package:  m.Package(),
		Entities: []entityData{},
	}

	for _, imp := range m.Imports() {
		doc.Imports = append(doc.Imports, importData{
			Name:     imp.Name,
			Static:   imp.Static,
			OnDemand: imp.OnDemand,
		})
	}

	for _, e := range m.Entities() {
		data := entityData{
			Name:           e.Name,
			SimpleName:     e.SimpleName,
			Kind:           string(e.Kind),
			Modifiers:      e.Modifiers,
			SuperClass:     e.SuperClass,
			Interfaces:     e.Interfaces,
			TypeParameters: e.TypeParameters,
			Outer:          e.Outer,
			EnumConstants:  e.EnumConstants,
			Line:           e.Pos.Line,
			Column:         e.Pos.Column,
		}
		if opts.docs {
			data.Doc = e.Doc
		}
		for _, mem := range e.Members {
			data.Members = append(data.Members, buildMember(mem, opts))
		}
		doc.Entities = append(doc.Entities, data)
	}

	return doc
}

func buildMember(m java.Member, opts options) memberData {
	data := memberData{
		Name:           m.Name,
		Kind:           string(m.Kind),
		Modifiers:      m.Modifiers,
		Type:           m.Type,
		Static:         m.IsStatic,
		Throws:         m.Throws,
		TypeParameters: m.TypeParameters,
		Line:           m.Pos.Line,
		Column:         m.Pos.Column,
	}
	if opts.docs {
		data.Doc = m.Doc
	}
	for _, p := range m.Parameters {
		data.Parameters = append(data.Parameters, parameterData{Name: p.Name, Type: p.Type})
	}
	return data
}
