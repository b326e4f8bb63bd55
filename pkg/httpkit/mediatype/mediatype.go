package mediatype

import (
	"mime"
	"strings"
)

const (
	PlainText   MediaType = "text/plain; charset=utf-8"
	JSON        MediaType = "application/json"
	ProblemJSON MediaType = "application/problem+json"
	NDJSON      MediaType = "application/x-ndjson"
	StreamJSON  MediaType = "application/stream+json"
	JSONStream  MediaType = "application/json-stream"
)

type MediaType = string

// Base strips the parameters from a media type value,
// and returns the lowercased type/subtype pair.
//
//	Base("application/x-ndjson; charset=utf-8") == "application/x-ndjson"
func Base(mediaType MediaType) MediaType {
	if mediaType == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(mediaType)
	if err != nil || mt == "" {
		mt, _, _ = strings.Cut(mediaType, ";")
		return strings.ToLower(strings.TrimSpace(mt))
	}
	return mt
}
