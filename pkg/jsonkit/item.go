package jsonkit

import (
	"reflect"

	"go.llib.dev/jsonstream/pkg/errorkit"
)

// encodeItem serializes a single item into a new chunk, wrapped into the framing bytes of its position.
// On failure, the chunk buffer is released and a *SerializationError is returned.
func encodeItem(pool *BufferPool, ser Serializer, framing Framing, index int, item any) (_ *Chunk, rErr error) {
	chunk := pool.newChunk()
	defer func() {
		if rErr != nil {
			chunk.Release()
		}
	}()
	chunk.buf.Write(framing.prefix(index))
	if err := marshalWrite(ser, chunk, item); err != nil {
		return nil, &SerializationError{
			Index: index,
			Type:  reflect.TypeOf(item),
			Err:   err,
		}
	}
	chunk.buf.Write(framing.suffix())
	return chunk, nil
}

func marshalWrite(ser Serializer, chunk *Chunk, item any) (rErr error) {
	defer errorkit.Recover(&rErr)
	return ser.MarshalWrite(chunk.buf, item)
}
