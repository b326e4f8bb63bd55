package jsonkit

import (
	"fmt"
	"io"
	"reflect"
	"slices"
	"unsafe"

	jsoniter "github.com/json-iterator/go"
	"github.com/modern-go/reflect2"
)

// Jsoniter is a Serializer backed by github.com/json-iterator/go.
// The zero value sorts map keys and leaves HTML characters unescaped,
// the same way as the other engines of this package.
type Jsoniter struct {
	config     *jsoniter.Config
	extensions []jsoniter.Extension
	api        jsoniter.API
}

// NewJsoniter freezes the given configuration with its extensions.
func NewJsoniter(config jsoniter.Config, extensions ...jsoniter.Extension) Jsoniter {
	return Jsoniter{config: &config, extensions: slices.Clip(extensions)}.froze()
}

func (s Jsoniter) froze() Jsoniter {
	api := s.getConfig().Froze()
	for _, ext := range s.extensions {
		api.RegisterExtension(ext)
	}
	s.api = api
	return s
}

func (s Jsoniter) getConfig() jsoniter.Config {
	if s.config != nil {
		return *s.config
	}
	return defaultJsoniterConfig
}

var (
	defaultJsoniterConfig = jsoniter.Config{
		SortMapKeys:            true,
		ValidateJsonRawMessage: true,
	}
	defaultJsoniterAPI = defaultJsoniterConfig.Froze()
)

func (s Jsoniter) getAPI() jsoniter.API {
	if s.api != nil {
		return s.api
	}
	return defaultJsoniterAPI
}

func (s Jsoniter) MarshalWrite(w io.Writer, v any) error {
	api := s.getAPI()
	stream := api.BorrowStream(w)
	defer api.ReturnStream(stream)
	stream.WriteVal(v)
	if stream.Error != nil {
		return stream.Error
	}
	return stream.Flush()
}

// WithConfig returns a copy that uses the given jsoniter.Config.
func (s Jsoniter) WithConfig(config jsoniter.Config) Jsoniter {
	return Jsoniter{config: &config, extensions: slices.Clip(s.extensions)}.froze()
}

// WithExtensions returns a copy that has the given extensions registered as well.
func (s Jsoniter) WithExtensions(extensions ...jsoniter.Extension) Jsoniter {
	return Jsoniter{
		config:     s.config,
		extensions: append(slices.Clip(s.extensions), extensions...),
	}.froze()
}

func (s Jsoniter) applyHints(hints Hints, framing Framing) Serializer {
	config := s.getConfig()
	var changed bool
	if framing == Buffered && hints.Bool(HintPretty) {
		config.IndentionStep = 2
		changed = true
	}
	if v, ok := hints.Lookup(HintEscapeHTML); ok {
		if escape, ok := v.(bool); ok {
			config.EscapeHTML = escape
			changed = true
		}
	}
	if !changed {
		return s
	}
	return s.WithConfig(config)
}

// JsoniterStringerExtension makes T serialize as the JSON string of its String method.
func JsoniterStringerExtension[T fmt.Stringer]() jsoniter.Extension {
	return &stringerExtension[T]{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

type stringerExtension[T fmt.Stringer] struct {
	jsoniter.DummyExtension
	typ reflect.Type
}

func (ext *stringerExtension[T]) CreateEncoder(typ reflect2.Type) jsoniter.ValEncoder {
	if typ.Type1() != ext.typ {
		return nil
	}
	return stringerEncoder[T]{}
}

type stringerEncoder[T fmt.Stringer] struct{}

func (stringerEncoder[T]) IsEmpty(ptr unsafe.Pointer) bool { return false }

func (stringerEncoder[T]) Encode(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	stream.WriteString((*(*T)(ptr)).String())
}
