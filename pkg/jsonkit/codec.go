package jsonkit

import (
	"io"

	"go.llib.dev/jsonstream/port/codec"
)

// Codec encodes values as JSON, and streams as a single JSON array.
type Codec struct {
	// Serializer is the serializer configuration.
	//
	// Default: JSON{}
	Serializer Serializer
}

func (c Codec) Marshal(v any) ([]byte, error) {
	return marshal(c.Serializer, v)
}

func (c Codec) NewStreamEncoder(w io.Writer) codec.StreamEncoder {
	return &StreamEncoder[any]{W: w, Framing: Buffered, Serializer: c.Serializer}
}

// LinesCodec encodes values as JSON, and streams as newline delimited JSON.
type LinesCodec struct {
	// Serializer is the serializer configuration.
	//
	// Default: JSON{}
	Serializer Serializer
}

func (c LinesCodec) Marshal(v any) ([]byte, error) {
	return marshal(c.Serializer, v)
}

func (c LinesCodec) NewStreamEncoder(w io.Writer) codec.StreamEncoder {
	return &StreamEncoder[any]{W: w, Framing: Streaming, Serializer: c.Serializer}
}

func marshal(ser Serializer, v any) ([]byte, error) {
	chunk, err := encodeItem(DefaultBufferPool, getSerializer(ser), Streaming, 0, v)
	if err != nil {
		return nil, err
	}
	defer chunk.Release()
	data := chunk.Bytes()
	return append([]byte(nil), data[:len(data)-len(newline)]...), nil
}

func getSerializer(ser Serializer) Serializer {
	if ser != nil {
		return ser
	}
	return JSON{}
}

//////////////

func NewArrayStreamEncoder[T any](w io.Writer) *StreamEncoder[T] {
	return &StreamEncoder[T]{W: w, Framing: Buffered}
}

func NewLinesStreamEncoder[T any](w io.Writer) *StreamEncoder[T] {
	return &StreamEncoder[T]{W: w, Framing: Streaming}
}

// StreamEncoder writes the framed values into W, one by one.
//
// With Buffered framing, Close writes the closing bracket,
// unless a previous Encode failed, in which case the array is left unterminated.
type StreamEncoder[T any] struct {
	W          io.Writer
	Framing    Framing
	Serializer Serializer
	// Pool is where the temporary buffers are taken from.
	//
	// Default: DefaultBufferPool
	Pool *BufferPool

	index int
	err   error
	done  bool
}

func (e *StreamEncoder[T]) Encode(v T) error {
	if e.done {
		return ErrStreamClosed
	}
	if e.err != nil {
		return e.err
	}
	chunk, err := encodeItem(e.pool(), getSerializer(e.Serializer), e.Framing, e.index, v)
	if err != nil {
		e.err = err
		return err
	}
	defer chunk.Release()
	if _, err := chunk.WriteTo(e.W); err != nil {
		e.err = err
		return err
	}
	e.index++
	return nil
}

func (e *StreamEncoder[T]) Close() error {
	if e.done {
		return nil
	}
	e.done = true
	if e.err != nil {
		return nil
	}
	trailer := e.Framing.trailer(e.index)
	if len(trailer) == 0 {
		return nil
	}
	_, err := e.W.Write(trailer)
	return err
}

func (e *StreamEncoder[T]) pool() *BufferPool {
	if e.Pool != nil {
		return e.Pool
	}
	return DefaultBufferPool
}
