// Package httpkit writes encoded JSON streams into HTTP responses.
package httpkit

import (
	"cmp"
	"context"
	"iter"
	"mime"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"go.llib.dev/jsonstream/pkg/httpkit/mediatype"
	"go.llib.dev/jsonstream/pkg/iterkit"
	"go.llib.dev/jsonstream/pkg/jsonkit"
	"go.llib.dev/jsonstream/pkg/logging"
)

const (
	headerKeyAccept      = "Accept"
	headerKeyContentType = "Content-Type"
)

// NegotiateMediaType picks the response media type from the Accept header of the request.
// Accepted media types are ranked by their quality value, and the ones with q=0 are refused.
// Among equally ranked ones, the first accepted media type that is in the supported list wins.
// Wildcards and a missing Accept header select the first supported media type.
func NegotiateMediaType(r *http.Request, supported ...mediatype.MediaType) (mediatype.MediaType, bool) {
	if len(supported) == 0 {
		supported = []mediatype.MediaType{mediatype.JSON}
	}
	accept := r.Header.Get(headerKeyAccept)
	if strings.TrimSpace(accept) == "" {
		return supported[0], true
	}
	for _, ar := range parseAccept(accept) {
		if ar.MediaType == "*/*" || ar.MediaType == "application/*" {
			return supported[0], true
		}
		for _, s := range supported {
			if mediatype.Base(s) == ar.MediaType {
				return s, true
			}
		}
	}
	return "", false
}

type acceptRange struct {
	MediaType mediatype.MediaType
	Quality   float64
}

// parseAccept returns the acceptable media ranges ordered by quality.
// Ranges with zero quality are left out.
func parseAccept(accept string) []acceptRange {
	var ranges []acceptRange
	for _, part := range strings.Split(accept, ",") {
		mt, params, err := mime.ParseMediaType(part)
		if err != nil {
			mt = mediatype.Base(part)
		}
		if mt == "" {
			continue
		}
		ar := acceptRange{MediaType: mt, Quality: 1}
		if raw, ok := params["q"]; ok {
			q, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				continue
			}
			ar.Quality = q
		}
		if ar.Quality <= 0 {
			continue
		}
		ranges = append(ranges, ar)
	}
	slices.SortStableFunc(ranges, func(a, b acceptRange) int {
		return cmp.Compare(b.Quality, a.Quality)
	})
	return ranges
}

// StreamWriter writes JSON streams to HTTP responses.
type StreamWriter struct {
	Encoder *jsonkit.Encoder
	// Logger is optional.
	Logger *logging.Logger
}

// SupportedMediaTypes are JSON plus every media type that selects streaming framing.
func (sw StreamWriter) SupportedMediaTypes() []mediatype.MediaType {
	out := []mediatype.MediaType{mediatype.JSON}
	if sw.encoder().StreamingMediaTypes == nil {
		return append(out, jsonkit.DefaultStreamingMediaTypes...)
	}
	return append(out, sw.encoder().StreamingMediaTypes...)
}

func (sw StreamWriter) encoder() *jsonkit.Encoder {
	if sw.Encoder != nil {
		return sw.Encoder
	}
	return &jsonkit.Encoder{}
}

// WriteStream negotiates the media type, encodes the items, and writes them into the response.
//
// Errors that occur before the first chunk is ready result in an error response.
// Once the first chunk is written, the status code is already sent,
// so later errors truncate the response and are returned for the caller.
// With streaming framing, the response is flushed after every chunk.
func WriteStream[T any](sw StreamWriter, w http.ResponseWriter, r *http.Request, items iterkit.ErrSeq[T], hints jsonkit.Hints) error {
	ctx := logging.ContextWith(r.Context(),
		logging.Field("method", r.Method),
		logging.Field("path", r.URL.Path))
	mt, ok := NegotiateMediaType(r, sw.SupportedMediaTypes()...)
	if !ok {
		sw.writeError(ctx, w, http.StatusNotAcceptable, "not acceptable")
		return nil
	}

	enc := sw.encoder()
	chunks := jsonkit.EncodeSeq(ctx, enc, items, mt, hints)

	next, stop := iter.Pull2(chunks)
	defer stop()

	first, err, ok := next()
	if err != nil {
		sw.Logger.Error(ctx, "json stream failed before the response is written", logging.ErrField(err))
		sw.writeError(ctx, w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return err
	}

	w.Header().Set(headerKeyContentType, mt)
	w.WriteHeader(http.StatusOK)
	if !ok {
		return nil
	}

	var flush func()
	if f, ok := w.(http.Flusher); ok && enc.Framing(mt) == jsonkit.Streaming {
		flush = f.Flush
	}

	rest := func(yield func(*jsonkit.Chunk, error) bool) {
		if !yield(first, nil) {
			return
		}
		for {
			chunk, err, ok := next()
			if !ok {
				return
			}
			if !yield(chunk, err) {
				return
			}
		}
	}
	if _, err := jsonkit.Copy(w, rest, flush); err != nil {
		sw.Logger.Error(ctx, "json stream response is truncated", logging.ErrField(err),
			logging.Field("media_type", mt))
		return err
	}
	return nil
}

func (sw StreamWriter) writeError(ctx context.Context, w http.ResponseWriter, code int, title string) {
	w.Header().Set(headerKeyContentType, mediatype.ProblemJSON)
	w.WriteHeader(code)
	data, err := jsonkit.Codec{}.Marshal(problem{Title: title, Status: code})
	if err != nil {
		sw.Logger.Error(ctx, "failed to encode the error response", logging.ErrField(err))
		return
	}
	_, _ = w.Write(data)
}

// problem is an RFC 7807 problem details body.
type problem struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
}
