package codec

import "io"

type MarshalerFunc func(v any) ([]byte, error)

func (fn MarshalerFunc) Marshal(v any) ([]byte, error) { return fn(v) }

type MarshalWriterFunc func(w io.Writer, v any) error

func (fn MarshalWriterFunc) MarshalWrite(w io.Writer, v any) error { return fn(w, v) }

type EncoderFunc func(v any) error

func (fn EncoderFunc) Encode(v any) error { return fn(v) }
