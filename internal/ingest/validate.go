package ingest

import (
	"errors"
	"strings"
)

// ErrMissingFields is the per-item validation failure for candidates that
// lack a usable heading or summary. Its text is the error string reported at
// the candidate's index in the batch response.
var ErrMissingFields = errors.New("missing required fields: heading or summary")

// Validate checks the two mandatory fields. It is pure: no store access, no
// mutation. A candidate passes iff heading and summary are both non-blank
// after coercion to text.
func (c Candidate) Validate() error {
	if strings.TrimSpace(c.Heading) == "" || strings.TrimSpace(c.Summary) == "" {
		return ErrMissingFields
	}
	return nil
}
