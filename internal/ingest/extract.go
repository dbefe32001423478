// Package ingest turns raw /store-llm payloads into validated record
// candidates. The pipeline is Extract (resolve one JSON value out of the
// submitted body) → Normalize (coerce it into an ordered candidate batch) →
// per-candidate Validate. Extraction failures reject the whole request;
// everything after extraction reports per-item outcomes only.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"unicode"
)

// ErrInvalidJSON is returned when neither a fenced block nor the submitted
// string itself parses as JSON. It maps to a 400 at the transport layer.
var ErrInvalidJSON = errors.New("invalid JSON format")

// fenceMarker delimits embedded code blocks in free-form generator output.
const fenceMarker = "```"

// Extract resolves the raw request body into a single JSON value.
//
// Behavior:
//   - A body that is already a structured JSON document (object, array, or
//     any non-string scalar) is returned unchanged; scalars flow through so
//     that normalization can surface them as per-item validation failures
//     rather than rejecting the request.
//   - A body that is a JSON string, or that is not valid JSON at all (e.g. a
//     text/plain payload), is treated as generator output: the first fenced
//     block is located and its payload parsed as JSON; when no fence is
//     present the whole string is parsed instead.
//   - Anything that fails both paths yields ErrInvalidJSON.
func Extract(raw []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, ErrInvalidJSON
	}

	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		// Not a JSON document at all: treat the body as the submitted string.
		return extractFromString(string(trimmed))
	}
	if s, ok := v.(string); ok {
		return extractFromString(s)
	}
	return json.RawMessage(trimmed), nil
}

// extractFromString applies the two-stage grammar: fenced block first, bare
// JSON second. When a fence is found its payload must parse; there is no
// fallback from a malformed fenced payload to the surrounding string.
func extractFromString(s string) (json.RawMessage, error) {
	if payload, found := fencedPayload(s); found {
		if !json.Valid([]byte(payload)) {
			return nil, ErrInvalidJSON
		}
		return json.RawMessage(payload), nil
	}
	bare := strings.TrimSpace(s)
	if !json.Valid([]byte(bare)) {
		return nil, ErrInvalidJSON
	}
	return json.RawMessage(bare), nil
}

// fencedPayload scans for the first triple-backtick fence and returns the
// trimmed text up to the nearest closing fence. An optional language tag on
// the opening line ("json", "yaml", …) is skipped. An opening fence without
// a closing one is not a fence. First match wins; later fences are ignored.
func fencedPayload(s string) (string, bool) {
	open := strings.Index(s, fenceMarker)
	if open < 0 {
		return "", false
	}
	body := s[open+len(fenceMarker):]
	end := strings.Index(body, fenceMarker)
	if end < 0 {
		return "", false
	}
	body = body[:end]

	// Drop the language tag line, if the opening line is one.
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		if isLanguageTag(strings.TrimSpace(body[:nl])) {
			body = body[nl+1:]
		}
	}
	return strings.TrimSpace(body), true
}

// isLanguageTag reports whether s looks like a fence language tag: empty, or
// a single token of letters, digits, and the separators used by common tag
// names (c++, objective-c, f_sharp).
func isLanguageTag(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' && r != '-' && r != '+' {
			return false
		}
	}
	return true
}
