// Package codec is a port collection about encoding related interactions.
//
// Quick Reference:
// ┌──────────────┬──────────────────────────────┬─────────────────────────┐
// │ Operation    │ Input/Output                 │ Best For                │
// ├──────────────┼──────────────────────────────┼─────────────────────────┤
// │ Marshal      │ Value     → []byte (memory)  │ Complete serialization  │
// │ MarshalWrite │ Value     → io.Writer        │ Pooled buffer output    │
// │ Encode       │ Value...  → io.Writer        │ Streaming output        │
// └──────────────┴──────────────────────────────┴─────────────────────────┘
package codec

import "io"

type Marshaler interface {
	Marshal(v any) ([]byte, error)
}

// MarshalWriter serializes a single value straight into a writer.
type MarshalWriter interface {
	MarshalWrite(w io.Writer, v any) error
}

type Encoder interface {
	Encode(v any) error
}
