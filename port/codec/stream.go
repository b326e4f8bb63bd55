package codec

import "io"

type StreamProducer interface {
	NewStreamEncoder(w io.Writer) StreamEncoder
}

// StreamEncoder encodes a sequence of values into an output stream,
// with the ability to finalize the encoding on Close().
//
// Unlike basic Marshalers which produce a single byte slice, StreamEncoder
// is stateful: it may wrap values in a container (e.g., JSON array),
// or terminate every value with a delimiter (e.g., JSON lines).
// The Close() method must be called to emit any trailing structure (e.g., closing brackets).
//
// Typical usage:
//
//	enc := producer.NewStreamEncoder(w)
//	defer enc.Close()
//
//	for _, item := range items {
//		if err := enc.Encode(item); err != nil {
//			return err
//		}
//	}
//
// Close() must be safe to call multiple times.
// After a failed Encode, Close must not emit the trailing structure,
// so the consumer can tell apart a truncated output from a complete one.
type StreamEncoder interface {
	Encoder
	io.Closer
}
