package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/javasym/java"
)

type JSONEncoder struct {
	w     io.Writer
	opts  options
	model *java.Model
}

func NewJSONEncoder(w io.Writer, opts ...Option) *JSONEncoder {
	return &JSONEncoder{w: w, opts: newOptions(opts)}
}

func (e *JSONEncoder) Encode(model *java.Model) error {
	e.model = model
	return encode(e.w, e)
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := json.MarshalIndent(buildDocument(e.model, e.opts), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
