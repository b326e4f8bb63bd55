package jsonkit_test

import (
	"context"
	"fmt"
	"iter"
	"reflect"
	"sync/atomic"

	"go.llib.dev/jsonstream/pkg/httpkit/mediatype"
	"go.llib.dev/jsonstream/pkg/iterkit"
	"go.llib.dev/jsonstream/pkg/jsonkit"
)

// TestEnum is marshaled by its constant name by default,
// while its String method returns a human readable name.
type TestEnum int

const (
	VAL1 TestEnum = iota + 1
	VAL2
)

func (e TestEnum) MarshalText() ([]byte, error) {
	switch e {
	case VAL1:
		return []byte("VAL1"), nil
	case VAL2:
		return []byte("VAL2"), nil
	default:
		return nil, fmt.Errorf("unknown TestEnum value: %d", int(e))
	}
}

func (e TestEnum) String() string {
	switch e {
	case VAL1:
		return "Value1"
	case VAL2:
		return "Value2"
	default:
		return "Unknown"
	}
}

type EnumHolder struct {
	Property TestEnum `json:"property"`
}

// countingCustomizer records how many times each hook variant was invoked.
type countingCustomizer struct {
	jsonkit.NopCustomizer
	Streaming atomic.Int64
	Buffered  atomic.Int64
	Hints     []jsonkit.Hints
}

func (c *countingCustomizer) CustomizeStreaming(ctx context.Context, def jsonkit.Serializer, mt mediatype.MediaType, typ reflect.Type, hints jsonkit.Hints) (jsonkit.Serializer, error) {
	c.Streaming.Add(1)
	c.Hints = append(c.Hints, hints)
	return c.NopCustomizer.CustomizeStreaming(ctx, def, mt, typ, hints)
}

func (c *countingCustomizer) CustomizeBuffered(def jsonkit.Serializer, mt mediatype.MediaType, typ reflect.Type, hints jsonkit.Hints) (jsonkit.Serializer, error) {
	c.Buffered.Add(1)
	c.Hints = append(c.Hints, hints)
	return c.NopCustomizer.CustomizeBuffered(def, mt, typ, hints)
}

// enumAsString renders TestEnum values through their String method.
var enumAsString = jsonkit.SameCustomization(func(def jsonkit.Serializer, _ mediatype.MediaType, _ reflect.Type, _ jsonkit.Hints) (jsonkit.Serializer, error) {
	return def.(jsonkit.JSON).WithMarshalers(jsonkit.StringerMarshalers[TestEnum]()), nil
})

// countingSeq yields the values, and counts how many of them were pulled.
func countingSeq[T any](counter *atomic.Int64, vs ...T) iterkit.ErrSeq[T] {
	return func(yield func(T, error) bool) {
		for _, v := range vs {
			counter.Add(1)
			if !yield(v, nil) {
				return
			}
		}
	}
}

func collect(chunks iter.Seq2[*jsonkit.Chunk, error]) (string, []error) {
	var (
		out  []byte
		errs []error
	)
	for chunk, err := range chunks {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, chunk.Bytes()...)
		chunk.Release()
	}
	return string(out), errs
}
