package jsonkit

import (
	"context"
	"reflect"

	"go.llib.dev/jsonstream/pkg/httpkit/mediatype"
)

// Customizer is the extension point to alter the default serializer configuration per encode invocation,
// such as rendering enumerations by name, changing date formats or selecting a view.
//
// Exactly one of the methods is called per invocation, the one that matches the active Framing.
// Returning a nil Serializer keeps the default configuration.
//
// Embed NopCustomizer to override only one of the variants.
type Customizer interface {
	// CustomizeStreaming is called once when the output is newline delimited JSON.
	// It may suspend on the context, for example to resolve request scoped settings,
	// and it is expected to return early when the context is cancelled.
	CustomizeStreaming(ctx context.Context, def Serializer, mediaType mediatype.MediaType, elemType reflect.Type, hints Hints) (Serializer, error)
	// CustomizeBuffered is called once when the output is a single JSON array.
	CustomizeBuffered(def Serializer, mediaType mediatype.MediaType, elemType reflect.Type, hints Hints) (Serializer, error)
}

// NopCustomizer passes through the default configuration in both framing modes.
type NopCustomizer struct{}

func (NopCustomizer) CustomizeStreaming(_ context.Context, def Serializer, _ mediatype.MediaType, _ reflect.Type, _ Hints) (Serializer, error) {
	return def, nil
}

func (NopCustomizer) CustomizeBuffered(def Serializer, _ mediatype.MediaType, _ reflect.Type, _ Hints) (Serializer, error) {
	return def, nil
}

// CustomizerFuncs is a Customizer made of functions.
// A nil function means the default configuration passes through unchanged.
type CustomizerFuncs struct {
	Streaming func(ctx context.Context, def Serializer, mediaType mediatype.MediaType, elemType reflect.Type, hints Hints) (Serializer, error)
	Buffered  func(def Serializer, mediaType mediatype.MediaType, elemType reflect.Type, hints Hints) (Serializer, error)
}

func (c CustomizerFuncs) CustomizeStreaming(ctx context.Context, def Serializer, mediaType mediatype.MediaType, elemType reflect.Type, hints Hints) (Serializer, error) {
	if c.Streaming == nil {
		return def, nil
	}
	return c.Streaming(ctx, def, mediaType, elemType, hints)
}

func (c CustomizerFuncs) CustomizeBuffered(def Serializer, mediaType mediatype.MediaType, elemType reflect.Type, hints Hints) (Serializer, error) {
	if c.Buffered == nil {
		return def, nil
	}
	return c.Buffered(def, mediaType, elemType, hints)
}

// SameCustomization uses the same function for both framing modes.
func SameCustomization(fn func(def Serializer, mediaType mediatype.MediaType, elemType reflect.Type, hints Hints) (Serializer, error)) Customizer {
	return CustomizerFuncs{
		Streaming: func(_ context.Context, def Serializer, mediaType mediatype.MediaType, elemType reflect.Type, hints Hints) (Serializer, error) {
			return fn(def, mediaType, elemType, hints)
		},
		Buffered: fn,
	}
}
