package jsonkit

// Hints is an open bag of out-of-band directives for a single encode invocation.
// The encoder never mutates it, and passes it unmodified to the Customizer.
type Hints map[string]any

const (
	// HintPretty asks for indented output.
	// It is only honoured with Buffered framing, since Streaming framing requires single line items.
	HintPretty = "jsonkit.pretty"
	// HintEscapeHTML asks for escaping <, > and & in JSON strings.
	HintEscapeHTML = "jsonkit.escape-html"
)

func (h Hints) Lookup(key string) (any, bool) {
	if h == nil {
		return nil, false
	}
	v, ok := h[key]
	return v, ok
}

// Bool reports the value of a boolean hint.
// Missing keys and non boolean values are reported as false.
func (h Hints) Bool(key string) bool {
	v, ok := h.Lookup(key)
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}
