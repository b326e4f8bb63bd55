// Package jsonkit encodes lazy sequences of values into lazy sequences of JSON byte chunks.
//
// Two framing modes are supported:
//
//	Streaming (application/x-ndjson): {"v":1}\n{"v":2}\n
//	Buffered  (everything else):      [{"v":1},{"v":2}]
//
// The serializer configuration is built exactly once per invocation,
// and it can be altered through a Customizer.
package jsonkit

import (
	"context"
	"reflect"
	"slices"
	"sync"

	"go.llib.dev/jsonstream/pkg/errorkit"
	"go.llib.dev/jsonstream/pkg/httpkit/mediatype"
	"go.llib.dev/jsonstream/pkg/iterkit"
	"go.llib.dev/jsonstream/pkg/logging"
)

// DefaultStreamingMediaTypes are the media types that select Streaming framing by default.
var DefaultStreamingMediaTypes = []mediatype.MediaType{mediatype.NDJSON}

// Encoder turns typed item sequences into framed byte chunk sequences.
// The zero value is ready to use. An Encoder is safe for concurrent use,
// since every invocation has its own state.
type Encoder struct {
	// Builder produces the serializer configuration of an invocation.
	Builder SerializerBuilder
	// StreamingMediaTypes are the media types that select Streaming framing.
	// Any other media type selects Buffered framing.
	//
	// Default: DefaultStreamingMediaTypes
	StreamingMediaTypes []mediatype.MediaType
	// Pool is where the chunk buffers are taken from.
	//
	// Default: DefaultBufferPool
	Pool *BufferPool
	// Logger is optional.
	Logger *logging.Logger
	// Metrics is optional.
	Metrics *Metrics
}

// Framing tells which framing mode is used for the given media type.
// The media type parameters and letter case are ignored,
// both in the argument and in StreamingMediaTypes.
func (e *Encoder) Framing(mediaType mediatype.MediaType) Framing {
	base := mediatype.Base(mediaType)
	if base == "" {
		return Buffered
	}
	isStreaming := slices.ContainsFunc(e.streamingMediaTypes(), func(mt mediatype.MediaType) bool {
		return mediatype.Base(mt) == base
	})
	if isStreaming {
		return Streaming
	}
	return Buffered
}

// EncodeSeq is the typed version of Encoder.Encode, where the element type comes from T.
func EncodeSeq[T any](ctx context.Context, e *Encoder, items iterkit.ErrSeq[T], mediaType mediatype.MediaType, hints Hints) iterkit.ErrSeq[*Chunk] {
	return e.Encode(ctx, iterkit.AsAny(items), reflect.TypeOf((*T)(nil)).Elem(), mediaType, hints)
}

// Encode lazily converts the items into framed chunks.
//
// The serializer configuration is built on the first iteration of the returned sequence,
// and it is reused for every later iteration of it.
// Items are pulled from the upstream one by one, as the consumer asks for the next chunk.
// Breaking out of the iteration stops the upstream as well.
//
// Every yielded chunk belongs to the consumer, who must Release it.
// The first error ends the sequence: no chunk follows it,
// and with Buffered framing the closing bracket is never emitted.
// A nil items sequence is encoded as an empty one.
func (e *Encoder) Encode(ctx context.Context, items iterkit.ErrSeq[any], elemType reflect.Type, mediaType mediatype.MediaType, hints Hints) iterkit.ErrSeq[*Chunk] {
	if ctx == nil {
		ctx = context.Background()
	}
	if items == nil {
		items = iterkit.Empty[any]()
	}
	framing := e.Framing(mediaType)
	build := sync.OnceValues(func() (Serializer, error) {
		e.Metrics.observeBuild(framing)
		return e.Builder.Build(ctx, elemType, mediaType, hints, framing)
	})
	return func(yield func(*Chunk, error) bool) {
		inv := &invocation{
			Encoder:   e,
			Context:   ctx,
			Framing:   framing,
			MediaType: mediaType,
			ElemType:  elemType,
		}
		inv.run(items, build, yield)
	}
}

func (e *Encoder) streamingMediaTypes() []mediatype.MediaType {
	if e.StreamingMediaTypes != nil {
		return e.StreamingMediaTypes
	}
	return DefaultStreamingMediaTypes
}

func (e *Encoder) pool() *BufferPool {
	if e.Pool != nil {
		return e.Pool
	}
	return DefaultBufferPool
}

type invocation struct {
	Encoder   *Encoder
	Context   context.Context
	Framing   Framing
	MediaType mediatype.MediaType
	ElemType  reflect.Type

	state  State
	items  int
	chunks int
	size   int
	cause  error
}

func (inv *invocation) run(items iterkit.ErrSeq[any], build func() (Serializer, error), yield func(*Chunk, error) bool) {
	defer inv.finish()

	if err := inv.Context.Err(); err != nil {
		inv.fail(StateCancelled, err)
		yield(nil, err)
		return
	}

	inv.transition(StateBuildingConfiguration)
	ser, err := build()
	if err != nil {
		inv.fail(StateFailed, err)
		yield(nil, err)
		return
	}
	inv.Encoder.Logger.Debug(inv.Context, "serializer configuration is ready", inv.details())

	inv.transition(StateStreaming)
	var pool = inv.Encoder.pool()
	for item, err := range items {
		if err != nil {
			inv.fail(StateFailed, err)
			yield(nil, err)
			return
		}
		if err := inv.Context.Err(); err != nil {
			inv.fail(StateCancelled, err)
			yield(nil, err)
			return
		}
		chunk, err := encodeItem(pool, ser, inv.Framing, inv.items, item)
		if err != nil {
			inv.fail(StateFailed, err)
			yield(nil, err)
			return
		}
		if err := inv.Context.Err(); err != nil {
			chunk.Release()
			inv.fail(StateCancelled, err)
			yield(nil, err)
			return
		}
		inv.items++
		if !inv.deliver(chunk, yield) {
			inv.transition(StateCancelled)
			return
		}
	}

	if trailer := inv.Framing.trailer(inv.items); 0 < len(trailer) {
		chunk := pool.newChunk()
		chunk.buf.Write(trailer)
		// the whole output is handed over at this point,
		// so it doesn't matter if the consumer stops here.
		inv.deliver(chunk, yield)
	}
	inv.transition(StateCompleted)
}

// deliver hands the chunk over to the consumer.
// It reports false when the consumer no longer wants more chunks.
func (inv *invocation) deliver(chunk *Chunk, yield func(*Chunk, error) bool) bool {
	size := chunk.Len()
	inv.Encoder.Metrics.observeChunk(inv.Framing, size)
	inv.chunks++
	inv.size += size
	return yield(chunk, nil)
}

func (inv *invocation) transition(next State) {
	if !inv.state.canTransitionTo(next) {
		return
	}
	inv.state = next
}

func (inv *invocation) fail(state State, err error) {
	inv.cause = errorkit.Merge(inv.cause, err)
	inv.transition(state)
}

func (inv *invocation) finish() {
	if !inv.state.IsTerminal() {
		// a panic unwinds the iteration
		inv.transition(StateFailed)
	}
	inv.Encoder.Metrics.observeFinish(inv.Framing, inv.state)
	ds := []logging.Detail{
		inv.details(),
		logging.Field("state", inv.state.String()),
		logging.Field("items", inv.items),
		logging.Field("chunks", inv.chunks),
		logging.Field("bytes", inv.size),
	}
	if inv.state == StateFailed {
		inv.Encoder.Logger.Warn(inv.Context, "json stream failed", append(ds, logging.ErrField(inv.cause))...)
		return
	}
	inv.Encoder.Logger.Debug(inv.Context, "json stream finished", ds...)
}

func (inv *invocation) details() logging.Detail {
	return logging.Fields{
		"media_type":   inv.MediaType,
		"framing":      inv.Framing.String(),
		"element_type": typeName(inv.ElemType),
	}
}
