package jsonkit

import (
	"context"
	"reflect"

	"go.llib.dev/jsonstream/pkg/errorkit"
	"go.llib.dev/jsonstream/pkg/httpkit/mediatype"
)

// SerializerBuilder produces the serializer configuration of an encode invocation.
type SerializerBuilder struct {
	// Default returns the base configuration for an element type.
	//
	// Default: DefaultSerializer
	Default func(elemType reflect.Type) Serializer
	// Customizer may alter the default configuration.
	//
	// Default: NopCustomizer
	Customizer Customizer
}

// Build starts from the default configuration of the element type, applies the hints,
// then calls the Customizer variant that belongs to the framing.
func (b SerializerBuilder) Build(ctx context.Context, elemType reflect.Type, mediaType mediatype.MediaType, hints Hints, framing Framing) (Serializer, error) {
	def := b.defaultFor(elemType)
	if ha, ok := def.(hintApplier); ok {
		def = ha.applyHints(hints, framing)
	}
	ser, err := b.customize(ctx, def, elemType, mediaType, hints, framing)
	if err != nil {
		return nil, &ConfigurationBuildError{
			Framing:   framing,
			MediaType: mediaType,
			Err:       err,
		}
	}
	if ser == nil {
		return def, nil
	}
	return ser, nil
}

func (b SerializerBuilder) customize(ctx context.Context, def Serializer, elemType reflect.Type, mediaType mediatype.MediaType, hints Hints, framing Framing) (_ Serializer, rErr error) {
	defer errorkit.Recover(&rErr)
	c := b.getCustomizer()
	switch framing {
	case Streaming:
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return c.CustomizeStreaming(ctx, def, mediaType, elemType, hints)
	default:
		return c.CustomizeBuffered(def, mediaType, elemType, hints)
	}
}

func (b SerializerBuilder) defaultFor(elemType reflect.Type) Serializer {
	if b.Default != nil {
		if ser := b.Default(elemType); ser != nil {
			return ser
		}
	}
	return DefaultSerializer(elemType)
}

func (b SerializerBuilder) getCustomizer() Customizer {
	if b.Customizer != nil {
		return b.Customizer
	}
	return NopCustomizer{}
}
