package jsonkit

import (
	"io"
	"slices"

	gojson "github.com/goccy/go-json"
)

// GoJSON is a Serializer backed by github.com/goccy/go-json.
// The zero value is ready to use.
type GoJSON struct {
	// Options are passed to every marshal call.
	Options []gojson.EncodeOptionFunc
	// Indent turns on indented output when it is not empty.
	Indent string
	// EscapeHTML escapes <, > and & in JSON strings.
	EscapeHTML bool
}

func (s GoJSON) MarshalWrite(w io.Writer, v any) error {
	var (
		data []byte
		err  error
		opts = s.Options
	)
	if !s.EscapeHTML {
		opts = append(slices.Clip(opts), gojson.DisableHTMLEscape())
	}
	if s.Indent != "" {
		data, err = gojson.MarshalIndentWithOption(v, "", s.Indent, opts...)
	} else {
		data, err = gojson.MarshalWithOption(v, opts...)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// With returns a copy of the configuration extended with the given options.
func (s GoJSON) With(opts ...gojson.EncodeOptionFunc) GoJSON {
	return GoJSON{
		Options:    append(slices.Clip(s.Options), opts...),
		Indent:     s.Indent,
		EscapeHTML: s.EscapeHTML,
	}
}

func (s GoJSON) applyHints(hints Hints, framing Framing) Serializer {
	if framing == Buffered && hints.Bool(HintPretty) {
		s.Indent = "  "
	}
	if v, ok := hints.Lookup(HintEscapeHTML); ok {
		if escape, ok := v.(bool); ok {
			s.EscapeHTML = escape
		}
	}
	return s
}
