package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/javasym/java"
	"github.com/dhamidi/javasym/java/javadoc"
)

// TextEncoder writes a human readable outline of a model: one header line
// per entity followed by its members, indented.
type TextEncoder struct {
	w     io.Writer
	opts  options
	model *java.Model
}

func NewTextEncoder(w io.Writer, opts ...Option) *TextEncoder {
	return &TextEncoder{w: w, opts: newOptions(opts)}
}

func (e *TextEncoder) Encode(model *java.Model) error {
	e.model = model
	return encode(e.w, e)
}

func (e *TextEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	m := e.model

	if pkg := m.Package(); pkg != "" {
		fmt.Fprintf(&sb, "package %s\n\n", pkg)
	}

	if imports := m.Imports(); len(imports) > 0 {
		for _, imp := range imports {
			sb.WriteString("import ")
			if imp.Static {
				sb.WriteString("static ")
			}
			sb.WriteString(imp.Name)
			if imp.OnDemand {
				sb.WriteString(".*")
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	for i, entity := range m.Entities() {
		if i > 0 {
			sb.WriteString("\n")
		}
		e.writeEntity(&sb, entity)
	}

	return []byte(sb.String()), nil
}

func (e *TextEncoder) writeEntity(sb *strings.Builder, entity java.Entity) {
	e.writeDoc(sb, entity.Doc, "")
	sb.WriteString(EntityHeader(entity))
	sb.WriteString("\n")

	if len(entity.EnumConstants) > 0 {
		sb.WriteString("  " + strings.Join(entity.EnumConstants, ", ") + "\n")
	}

	for _, member := range entity.Members {
		e.writeDoc(sb, member.Doc, "  ")
		sb.WriteString("  " + MemberLine(member) + "\n")
	}
}

func (e *TextEncoder) writeDoc(sb *strings.Builder, doc, indent string) {
	if !e.opts.docs {
		return
	}
	if summary := DocSummary(doc); summary != "" {
		sb.WriteString(indent + "// " + summary + "\n")
	}
}

// EntityHeader renders an entity declaration head:
// "public class Shape<T> extends Base implements Drawable".
func EntityHeader(entity java.Entity) string {
	var sb strings.Builder
	for _, mod := range entity.Modifiers {
		sb.WriteString(mod + " ")
	}
	sb.WriteString(string(entity.Kind) + " " + entity.Name)
	if len(entity.TypeParameters) > 0 {
		sb.WriteString("<" + strings.Join(entity.TypeParameters, ", ") + ">")
	}
	if entity.SuperClass != "" {
		sb.WriteString(" extends " + entity.SuperClass)
	}
	if len(entity.Interfaces) > 0 {
		keyword := " implements "
		if entity.Kind == java.EntityInterface {
			keyword = " extends "
		}
		sb.WriteString(keyword + strings.Join(entity.Interfaces, ", "))
	}
	return sb.String()
}

// MemberLine renders a member with its modifiers, type parameters and
// throws clause: "public static <T> T pick(T... items) throws Exception".
func MemberLine(member java.Member) string {
	var sb strings.Builder
	for _, mod := range member.Modifiers {
		sb.WriteString(mod + " ")
	}
	if len(member.TypeParameters) > 0 {
		sb.WriteString("<" + strings.Join(member.TypeParameters, ", ") + "> ")
	}
	sb.WriteString(member.Signature())
	if len(member.Throws) > 0 {
		sb.WriteString(" throws " + strings.Join(member.Throws, ", "))
	}
	return sb.String()
}

// DocSummary returns the first sentence of a Javadoc comment as plain
// text.
func DocSummary(doc string) string {
	return javadoc.Parse(doc).Summary()
}
