package jsonkit_test

import (
	"bytes"
	"errors"
	"testing"

	"go.llib.dev/jsonstream/pkg/jsonkit"
	"go.llib.dev/jsonstream/port/codec"
	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"
	"go.llib.dev/testcase/let"
)

var (
	_ codec.StreamProducer = jsonkit.Codec{}
	_ codec.StreamProducer = jsonkit.LinesCodec{}
	_ codec.Marshaler      = jsonkit.Codec{}
	_ codec.StreamEncoder  = &jsonkit.StreamEncoder[any]{}
)

func TestCodec_Marshal(t *testing.T) {
	data, err := jsonkit.Codec{}.Marshal(EnumHolder{Property: VAL1})
	assert.NoError(t, err)
	assert.Equal(t, `{"property":"VAL1"}`, string(data))

	ser := jsonkit.JSON{}.WithMarshalers(jsonkit.StringerMarshalers[TestEnum]())
	data, err = jsonkit.LinesCodec{Serializer: ser}.Marshal(EnumHolder{Property: VAL1})
	assert.NoError(t, err)
	assert.Equal(t, `{"property":"Value1"}`, string(data))

	_, err = jsonkit.Codec{}.Marshal(make(chan int))
	assert.ErrorIs(t, jsonkit.ErrSerialization, err)
}

func TestStreamEncoder(t *testing.T) {
	s := testcase.NewSpec(t)

	buf := let.Var(s, func(t *testcase.T) *bytes.Buffer {
		return &bytes.Buffer{}
	})
	producer := let.Var[codec.StreamProducer](s, nil)
	subject := let.Var(s, func(t *testcase.T) codec.StreamEncoder {
		return producer.Get(t).NewStreamEncoder(buf.Get(t))
	})

	encodeAll := func(t *testcase.T, vs ...any) {
		for _, v := range vs {
			assert.NoError(t, subject.Get(t).Encode(v))
		}
		assert.NoError(t, subject.Get(t).Close())
	}

	s.Context("array", func(s *testcase.Spec) {
		producer.Let(s, func(t *testcase.T) codec.StreamProducer {
			return jsonkit.Codec{}
		})

		s.Test("values are written as a JSON array", func(t *testcase.T) {
			encodeAll(t, 1, "two", EnumHolder{Property: VAL2})
			assert.Equal(t, `[1,"two",{"property":"VAL2"}]`, buf.Get(t).String())
		})

		s.Test("no value means an empty array", func(t *testcase.T) {
			encodeAll(t)
			assert.Equal(t, `[]`, buf.Get(t).String())
		})

		s.Test("a failed encoding leaves the array unterminated", func(t *testcase.T) {
			assert.NoError(t, subject.Get(t).Encode(1))
			err := subject.Get(t).Encode(make(chan int))
			assert.ErrorIs(t, jsonkit.ErrSerialization, err)
			assert.ErrorIs(t, jsonkit.ErrSerialization, subject.Get(t).Encode(2), "the error is sticky")
			assert.NoError(t, subject.Get(t).Close())
			assert.Equal(t, `[1`, buf.Get(t).String())
		})

		s.Test("encoding after close is an error", func(t *testcase.T) {
			encodeAll(t, 1)
			assert.ErrorIs(t, jsonkit.ErrStreamClosed, subject.Get(t).Encode(2))
			assert.NoError(t, subject.Get(t).Close())
			assert.Equal(t, `[1]`, buf.Get(t).String())
		})
	})

	s.Context("lines", func(s *testcase.Spec) {
		producer.Let(s, func(t *testcase.T) codec.StreamProducer {
			return jsonkit.LinesCodec{}
		})

		s.Test("values are written line by line", func(t *testcase.T) {
			encodeAll(t, 1, "two", EnumHolder{Property: VAL2})
			assert.Equal(t, "1\n\"two\"\n{\"property\":\"VAL2\"}\n", buf.Get(t).String())
		})

		s.Test("no value means no output", func(t *testcase.T) {
			encodeAll(t)
			assert.Equal(t, "", buf.Get(t).String())
		})
	})
}

func TestNewLinesStreamEncoder_writerError(t *testing.T) {
	expErr := errors.New("boom")
	enc := jsonkit.NewLinesStreamEncoder[int](failingWriter{Err: expErr})
	assert.ErrorIs(t, expErr, enc.Encode(42))
	assert.ErrorIs(t, expErr, enc.Encode(24))
	assert.NoError(t, enc.Close())
}

func TestNewArrayStreamEncoder(t *testing.T) {
	var buf bytes.Buffer
	enc := jsonkit.NewArrayStreamEncoder[EnumHolder](&buf)
	enc.Serializer = jsonkit.JSON{}.WithMarshalers(jsonkit.StringerMarshalers[TestEnum]())
	assert.NoError(t, enc.Encode(EnumHolder{Property: VAL1}))
	assert.NoError(t, enc.Encode(EnumHolder{Property: VAL2}))
	assert.NoError(t, enc.Close())
	assert.Equal(t, `[{"property":"Value1"},{"property":"Value2"}]`, buf.String())
}

type failingWriter struct{ Err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.Err }
