package jsonkit

import (
	"io"
	"reflect"

	"github.com/c2h5oh/datasize"
	"github.com/prometheus/client_golang/prometheus"
	"go.llib.dev/jsonstream/pkg/env"
	"go.llib.dev/jsonstream/pkg/errorkit"
	"go.llib.dev/jsonstream/pkg/httpkit/mediatype"
	"go.llib.dev/jsonstream/pkg/logging"
)

const (
	EngineJSONv2   = "jsonv2"
	EngineJsoniter = "jsoniter"
	EngineGoJSON   = "gojson"
)

// Config is the environment based configuration of an Encoder.
type Config struct {
	// StreamingMediaTypes are the media types that select the newline delimited framing.
	StreamingMediaTypes []mediatype.MediaType `env:"JSONSTREAM_STREAMING_MEDIA_TYPES" default:"application/x-ndjson"`
	// Engine is the JSON library behind the default serializer configuration.
	Engine string `env:"JSONSTREAM_ENGINE" default:"jsonv2"`
	// MaxPooledBufferSize is the largest chunk buffer kept for reuse.
	MaxPooledBufferSize datasize.ByteSize `env:"JSONSTREAM_MAX_POOLED_BUFFER_SIZE" default:"64KB"`
	// LogLevel is the level of the encoder Logger.
	LogLevel logging.Level `env:"JSONSTREAM_LOG_LEVEL" default:"info"`
}

// LoadConfig reads the Config from the environment.
func LoadConfig() (Config, error) {
	var c Config
	if err := env.Load(&c); err != nil {
		return Config{}, err
	}
	return c, c.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if _, err := DefaultSerializerFor(c.Engine); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseLevel(string(c.LogLevel)); err != nil {
		errs = append(errs, err)
	}
	return errorkit.Merge(errs...)
}

// DefaultSerializerFor returns the default configuration function of the named engine.
// An empty name means the jsonv2 engine.
func DefaultSerializerFor(engine string) (func(reflect.Type) Serializer, error) {
	switch engine {
	case EngineJSONv2, "":
		return DefaultSerializer, nil
	case EngineJsoniter:
		return func(elemType reflect.Type) Serializer {
			return Jsoniter{}
		}, nil
	case EngineGoJSON:
		return func(elemType reflect.Type) Serializer {
			return GoJSON{}
		}, nil
	default:
		return nil, ErrUnknownEngine.F("%q", engine)
	}
}

// NewEncoder creates an Encoder from the configuration.
// The log output and the metrics registerer are optional.
func NewEncoder(c Config, customizer Customizer, logOut io.Writer, reg prometheus.Registerer) (*Encoder, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	def, err := DefaultSerializerFor(c.Engine)
	if err != nil {
		return nil, err
	}
	enc := &Encoder{
		Builder: SerializerBuilder{
			Default:    def,
			Customizer: customizer,
		},
		StreamingMediaTypes: c.StreamingMediaTypes,
		Pool:                &BufferPool{MaxSize: c.MaxPooledBufferSize},
	}
	if logOut != nil {
		enc.Logger = &logging.Logger{Out: logOut, Level: c.LogLevel}
	}
	if reg != nil {
		enc.Metrics = NewMetrics(reg)
	}
	return enc, nil
}
