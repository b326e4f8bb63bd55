package jsonkit

// Framing is the policy governing how multiple serialized items are delimited in one output stream.
type Framing int

const (
	// Buffered framing wraps the items into a single JSON array: [item1,item2].
	Buffered Framing = iota
	// Streaming framing terminates every item with a new line (NDJSON).
	Streaming
)

func (f Framing) String() string {
	switch f {
	case Buffered:
		return "buffered"
	case Streaming:
		return "streaming"
	default:
		return "unknown"
	}
}

var (
	newline    = []byte("\n")
	arrayOpen  = []byte("[")
	arrayClose = []byte("]")
	arrayEmpty = []byte("[]")
	arrayComma = []byte(",")
)

// prefix returns the bytes that go before the item at the given position.
func (f Framing) prefix(index int) []byte {
	if f != Buffered {
		return nil
	}
	if index == 0 {
		return arrayOpen
	}
	return arrayComma
}

// suffix returns the bytes that go after every item.
func (f Framing) suffix() []byte {
	if f == Streaming {
		return newline
	}
	return nil
}

// trailer returns the bytes that close a successfully finished sequence of n items.
func (f Framing) trailer(n int) []byte {
	if f != Buffered {
		return nil
	}
	if n == 0 {
		return arrayEmpty
	}
	return arrayClose
}
