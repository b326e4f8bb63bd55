package jsonkit

import (
	"fmt"
	"reflect"

	"go.llib.dev/jsonstream/pkg/errorkit"
	"go.llib.dev/jsonstream/pkg/httpkit/mediatype"
)

const (
	ErrSerialization      errorkit.Error = "jsonkit: serialization error"
	ErrConfigurationBuild errorkit.Error = "jsonkit: serializer configuration build error"
	ErrChunkReleased      errorkit.Error = "jsonkit: chunk is already released"
	ErrStreamClosed       errorkit.Error = "jsonkit: stream encoder is closed"
	ErrUnknownEngine      errorkit.Error = "jsonkit: unknown serializer engine"
)

// SerializationError is returned when a single item can't be converted to bytes.
// Chunks that were produced for the previous items are not retracted.
type SerializationError struct {
	// Index is the zero based position of the item in the input sequence.
	Index int
	// Type is the runtime type of the item.
	Type reflect.Type
	Err  error
}

func (err *SerializationError) Error() string {
	return fmt.Sprintf("[%s] item #%d (%s): %s", ErrSerialization, err.Index, typeName(err.Type), err.Err)
}

func (err *SerializationError) Is(target error) bool { return target == ErrSerialization }

func (err *SerializationError) Unwrap() error { return err.Err }

// ConfigurationBuildError is returned when the customization hook fails.
// No chunk is emitted for an invocation that failed with it.
type ConfigurationBuildError struct {
	Framing   Framing
	MediaType mediatype.MediaType
	Err       error
}

func (err *ConfigurationBuildError) Error() string {
	return fmt.Sprintf("[%s] %s framing for %q: %s", ErrConfigurationBuild, err.Framing, err.MediaType, err.Err)
}

func (err *ConfigurationBuildError) Is(target error) bool { return target == ErrConfigurationBuild }

func (err *ConfigurationBuildError) Unwrap() error { return err.Err }

func typeName(typ reflect.Type) string {
	if typ == nil {
		return "nil"
	}
	return typ.String()
}
