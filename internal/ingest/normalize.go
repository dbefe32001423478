package ingest

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Candidate is a transient, pre-validation record candidate. Index is the
// candidate's 0-based position in the submitted batch and is the correlation
// key for per-item errors. Field presence is not guaranteed until Validate
// has accepted the candidate.
type Candidate struct {
	Index     int
	Heading   string
	Summary   string
	Keypoints []string
	Tags      []string
}

// Normalize coerces an extracted JSON value into an ordered candidate batch.
// A single object becomes a one-element batch; an array passes through in
// order. Items that are not objects (scalars, nested arrays) produce empty
// candidates so that validation reports them at their original index instead
// of the batch being rejected. Normalize never fails.
func Normalize(doc json.RawMessage) []Candidate {
	var v any
	if err := json.Unmarshal(doc, &v); err != nil {
		v = nil
	}

	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}

	batch := make([]Candidate, 0, len(items))
	for i, item := range items {
		c := Candidate{Index: i, Keypoints: []string{}, Tags: []string{}}
		if obj, ok := item.(map[string]any); ok {
			c.Heading = asText(obj["heading"])
			c.Summary = asText(obj["summary"])
			c.Keypoints = toStringList(obj["keypoints"])
			c.Tags = toStringList(obj["tags"])
		}
		batch = append(batch, c)
	}
	return batch
}

// asText coerces a decoded JSON value to text. Strings pass through; numbers
// and booleans are formatted; null and absent values become "". Composite
// values are re-serialized so that nothing is silently dropped.
func asText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// toStringList normalizes a list-valued field to its canonical in-memory
// form, one policy per source shape:
//   - JSON array: element-wise asText.
//   - string holding a JSON array: decoded, then element-wise asText.
//   - any other string: split on newlines and commas, entries trimmed,
//     empties dropped.
//   - anything else (null, absent, scalar, object): empty list.
//
// The result is never nil, so downstream code never branches on shape again.
func toStringList(v any) []string {
	switch x := v.(type) {
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			out = append(out, asText(e))
		}
		return out
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return []string{}
		}
		var arr []any
		if err := json.Unmarshal([]byte(s), &arr); err == nil {
			out := make([]string, 0, len(arr))
			for _, e := range arr {
				out = append(out, asText(e))
			}
			return out
		}
		return splitDelimited(s)
	default:
		return []string{}
	}
}

// splitDelimited breaks comma- or newline-delimited text into trimmed,
// non-empty entries.
func splitDelimited(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if t := strings.TrimSpace(f); t != "" {
			out = append(out, t)
		}
	}
	return out
}
