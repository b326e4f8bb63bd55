package jsonkit

import (
	"fmt"
	"io"
	"reflect"
	"slices"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"go.llib.dev/jsonstream/port/codec"
)

// Serializer is an immutable serializer configuration.
// It is built once per encode invocation and shared read-only across every item of that invocation.
type Serializer interface {
	codec.MarshalWriter
}

// hintApplier is implemented by the Serializer engines of this package,
// to adapt the default configuration to the invocation hints.
type hintApplier interface {
	applyHints(hints Hints, framing Framing) Serializer
}

// JSON is the default Serializer, backed by github.com/go-json-experiment/json.
// The zero value is ready to use.
type JSON struct {
	options    []json.Options
	marshalers []*json.Marshalers
	joined     json.Options
}

func (s JSON) MarshalWrite(w io.Writer, v any) error {
	if s.joined == nil {
		return json.MarshalWrite(w, v)
	}
	return json.MarshalWrite(w, v, s.joined)
}

func (s JSON) Marshal(v any) ([]byte, error) {
	if s.joined == nil {
		return json.Marshal(v)
	}
	return json.Marshal(v, s.joined)
}

// With returns a copy of the configuration extended with the given options.
// Latter options override previously set properties.
func (s JSON) With(opts ...json.Options) JSON {
	return JSON{
		options:    append(slices.Clip(s.options), opts...),
		marshalers: slices.Clip(s.marshalers),
	}.join()
}

// WithMarshalers returns a copy of the configuration where the given marshal functions
// override the marshal behaviour of their types.
// Marshalers registered later take precedence over the earlier ones.
func (s JSON) WithMarshalers(ms ...*json.Marshalers) JSON {
	marshalers := make([]*json.Marshalers, 0, len(ms)+len(s.marshalers))
	marshalers = append(marshalers, ms...)
	marshalers = append(marshalers, s.marshalers...)
	return JSON{
		options:    slices.Clip(s.options),
		marshalers: marshalers,
	}.join()
}

func (s JSON) join() JSON {
	opts := slices.Clone(s.options)
	if 0 < len(s.marshalers) {
		opts = append(opts, json.WithMarshalers(json.JoinMarshalers(s.marshalers...)))
	}
	if 0 < len(opts) {
		s.joined = json.JoinOptions(opts...)
	}
	return s
}

func (s JSON) applyHints(hints Hints, framing Framing) Serializer {
	var opts []json.Options
	if framing == Buffered && hints.Bool(HintPretty) {
		opts = append(opts, jsontext.WithIndent("  "))
	}
	if escape, ok := hints.Lookup(HintEscapeHTML); ok {
		if escape, ok := escape.(bool); ok {
			opts = append(opts, jsontext.EscapeForHTML(escape))
		}
	}
	if len(opts) == 0 {
		return s
	}
	return s.With(opts...)
}

// StringerMarshalers makes T serialize as the JSON string of its String method,
// instead of its default representation.
//
// This is the usual way to render enumeration values by their human readable name:
//
//	ser := jsonkit.JSON{}.WithMarshalers(jsonkit.StringerMarshalers[MyEnum]())
func StringerMarshalers[T fmt.Stringer]() *json.Marshalers {
	return json.MarshalFunc(func(v T) ([]byte, error) {
		return json.Marshal(v.String())
	})
}

// DefaultSerializer returns the base configuration for an element type.
// Map based element types are serialized with deterministic key ordering.
func DefaultSerializer(elemType reflect.Type) Serializer {
	if elemType != nil && elemType.Kind() == reflect.Map {
		return JSON{}.With(json.Deterministic(true))
	}
	return JSON{}
}
