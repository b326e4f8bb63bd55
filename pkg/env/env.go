// Package env loads configuration structures from environment variables.
//
//	type Config struct {
//		Engine string `env:"JSONSTREAM_ENGINE" default:"jsonv2"`
//	}
package env

import (
	"encoding"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"go.llib.dev/jsonstream/pkg/errorkit"
)

const ErrLoadInvalidData errorkit.Error = "ErrLoadInvalidData"

func Lookup[T any](key string, opts ...LookupOption) (T, bool, error) {
	var conf lookupEnvOptions
	for _, opt := range opts {
		opt.configure(&conf)
	}
	typ := reflect.TypeOf((*T)(nil)).Elem()
	val, ok, err := lookupEnv(typ, key, conf)
	if err != nil || !ok {
		return *new(T), ok, err
	}
	return val.Interface().(T), true, nil
}

type LookupOption interface{ configure(*lookupEnvOptions) }

type funcLookupOption func(*lookupEnvOptions)

func (fn funcLookupOption) configure(options *lookupEnvOptions) { fn(options) }

func ListSeparator[SEP rune | string](sep SEP) LookupOption {
	return funcLookupOption(func(options *lookupEnvOptions) {
		s := string(sep)
		options.Separator = &s
	})
}

func DefaultValue(val string) LookupOption {
	return funcLookupOption(func(options *lookupEnvOptions) {
		options.DefaultValue = &val
	})
}

func Required() LookupOption {
	return funcLookupOption(func(options *lookupEnvOptions) {
		options.IsRequired = true
	})
}

func Load[T any](ptr *T) error {
	if ptr == nil {
		return fmt.Errorf("%w: nil value received", ErrLoadInvalidData)
	}
	rv := reflect.ValueOf(ptr).Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: non-struct type received", ErrLoadInvalidData)
	}
	return loadVisitStruct(rv)
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

func loadVisitStruct(rStruct reflect.Value) error {
	for i, numField := 0, rStruct.NumField(); i < numField; i++ {
		rStructField := rStruct.Type().Field(i)
		if !rStructField.IsExported() {
			continue
		}

		field := rStruct.Field(i)

		if field.Kind() == reflect.Struct && !reflect.PointerTo(field.Type()).Implements(textUnmarshalerType) {
			if err := loadVisitStruct(field); err != nil {
				return err
			}
			continue
		}

		osEnvKey, ok := rStructField.Tag.Lookup(envTagKey)
		if !ok {
			continue
		}

		opts, err := getLookupEnvOptions(rStructField.Tag)
		if err != nil {
			return err
		}

		val, ok, err := lookupEnv(field.Type(), osEnvKey, opts)
		if err != nil {
			return errParsingEnvValue(rStructField, err)
		}
		if !ok {
			continue
		}
		field.Set(val)
	}
	return nil
}

const envTagKey = "env"

var (
	tagsForDefaultValue = []string{"env-default", "default"}
	tagsForRequired     = []string{"env-required", "required"}
	tagsForSeparator    = []string{"env-separator", "separator"}
)

func getLookupEnvOptions(tag reflect.StructTag) (lookupEnvOptions, error) {
	var opts lookupEnvOptions
	for _, key := range tagsForDefaultValue {
		value, ok := tag.Lookup(key)
		if ok {
			opts.DefaultValue = &value
			break
		}
	}
	for _, key := range tagsForRequired {
		value, ok := tag.Lookup(key)
		if !ok {
			continue
		}
		isRequired, err := strconv.ParseBool(value)
		if err != nil {
			return opts, err
		}
		opts.IsRequired = isRequired
		break
	}
	for _, key := range tagsForSeparator {
		value, ok := tag.Lookup(key)
		if ok {
			opts.Separator = &value
			break
		}
	}
	return opts, nil
}

type lookupEnvOptions struct {
	DefaultValue *string
	Separator    *string
	IsRequired   bool
}

func lookupEnv(typ reflect.Type, key string, opts lookupEnvOptions) (reflect.Value, bool, error) {
	val, ok := os.LookupEnv(key)
	if !ok && opts.DefaultValue != nil {
		ok = true
		val = *opts.DefaultValue
	}
	if !ok {
		var err error
		if opts.IsRequired {
			err = errMissingEnvironmentVariable(key)
		}
		return reflect.Value{}, false, err
	}
	sep := ","
	if opts.Separator != nil {
		sep = *opts.Separator
	}
	rv, err := parse(typ, val, sep)
	if err != nil {
		return reflect.Value{}, false, err
	}
	return rv, true, nil
}

var durationType = reflect.TypeOf(time.Duration(0))

func parse(typ reflect.Type, raw string, sep string) (reflect.Value, error) {
	if reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		ptr := reflect.New(typ)
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(raw)); err != nil {
			return reflect.Value{}, err
		}
		return ptr.Elem(), nil
	}
	if typ == durationType {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		return reflect.ValueOf(d), nil
	}
	out := reflect.New(typ).Elem()
	switch typ.Kind() {
	case reflect.String:
		out.SetString(raw)
	case reflect.Bool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(raw, 10, typ.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(raw, 10, typ.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(raw, typ.Bits())
		if err != nil {
			return reflect.Value{}, err
		}
		out.SetFloat(v)
	case reflect.Slice:
		var parts []string
		if raw != "" {
			parts = strings.Split(raw, sep)
		}
		list := reflect.MakeSlice(typ, 0, len(parts))
		for _, part := range parts {
			elem, err := parse(typ.Elem(), strings.TrimSpace(part), sep)
			if err != nil {
				return reflect.Value{}, err
			}
			list = reflect.Append(list, elem)
		}
		out.Set(list)
	default:
		return reflect.Value{}, fmt.Errorf("%w: unsupported type %s", ErrLoadInvalidData, typ.String())
	}
	return out, nil
}

func errMissingEnvironmentVariable(key string) error {
	return fmt.Errorf("missing environment variable: %s", key)
}

func errParsingEnvValue(structField reflect.StructField, err error) error {
	return fmt.Errorf("error parsing the value for %s: %w", structField.Name, err)
}
