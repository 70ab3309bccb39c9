package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/javasym/java"
)

// LineEncoder writes one tab separated record per entity and member, for
// consumption by grep, cut and awk. Empty columns are written as "-".
//
//	class	Point	public	-	-
//	field	Point	x	double	private
//	method	Point	distance	double	public	Point
type LineEncoder struct {
	w     io.Writer
	model *java.Model
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(model *java.Model) error {
	e.model = model
	return encode(e.w, e)
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder

	for _, entity := range e.model.Entities() {
		fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%s\n",
			entity.Kind,
			entity.Name,
			column(entity.Modifiers),
			orDash(entity.SuperClass),
			column(entity.Interfaces),
		)

		for _, constant := range entity.EnumConstants {
			fmt.Fprintf(&sb, "constant\t%s\t%s\n", entity.Name, constant)
		}

		for _, m := range entity.Members {
			switch m.Kind {
			case java.MemberField:
				fmt.Fprintf(&sb, "field\t%s\t%s\t%s\t%s\n",
					entity.Name,
					m.Name,
					m.Type,
					column(m.Modifiers),
				)
			default:
				fmt.Fprintf(&sb, "%s\t%s\t%s\t%s\t%s\t%s\n",
					m.Kind,
					entity.Name,
					m.Name,
					orDash(m.Type),
					column(m.Modifiers),
					parametersStr(m.Parameters),
				)
			}
		}
	}

	return []byte(sb.String()), nil
}

func column(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ",")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func parametersStr(params []java.Parameter) string {
	if len(params) == 0 {
		return "-"
	}
	var parts []string
	for _, p := range params {
		parts = append(parts, p.Type)
	}
	return strings.Join(parts, ",")
}
