package format

import (
	"encoding"
	"fmt"
	"io"
	"sort"

	"github.com/dhamidi/javasym/java"
)

type Encoder interface {
	encoding.TextMarshaler
	Encode(model *java.Model) error
}

type options struct {
	docs bool
}

type Option func(*options)

// WithDocs controls whether Javadoc comments are part of the output.
// They are included by default.
func WithDocs(include bool) Option {
	return func(o *options) {
		o.docs = include
	}
}

func newOptions(opts []Option) options {
	o := options{docs: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

var encoders = map[string]func(io.Writer, ...Option) Encoder{
	"json":  func(w io.Writer, opts ...Option) Encoder { return NewJSONEncoder(w, opts...) },
	"yaml":  func(w io.Writer, opts ...Option) Encoder { return NewYAMLEncoder(w, opts...) },
	"text":  func(w io.Writer, opts ...Option) Encoder { return NewTextEncoder(w, opts...) },
	"lines": func(w io.Writer, opts ...Option) Encoder { return NewLineEncoder(w) },
}

// New returns the encoder registered under name.
func New(name string, w io.Writer, opts ...Option) (Encoder, error) {
	newEncoder, ok := encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q", name)
	}
	return newEncoder(w, opts...), nil
}

// Names returns the registered format names, sorted.
func Names() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// encode is the Encode half shared by all encoders: marshal, then write.
func encode(w io.Writer, m encoding.TextMarshaler) error {
	text, err := m.MarshalText()
	if err != nil {
		return err
	}
	_, err = w.Write(text)
	return err
}
