package format

import (
	"bytes"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dhamidi/javasym/java"
)

type YAMLEncoder struct {
	w     io.Writer
	opts  options
	model *java.Model
}

func NewYAMLEncoder(w io.Writer, opts ...Option) *YAMLEncoder {
	return &YAMLEncoder{w: w, opts: newOptions(opts)}
}

func (e *YAMLEncoder) Encode(model *java.Model) error {
	e.model = model
	return encode(e.w, e)
}

func (e *YAMLEncoder) MarshalText() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(buildDocument(e.model, e.opts)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
