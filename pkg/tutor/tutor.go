// Package tutor wraps the external generative model behind a single
// question-plus-pages call.
package tutor

import (
	"context"
	"fmt"

	"lecturelama-be/pkg/pages"
)

// Generator produces a tutoring answer for a question about the given pages.
// Implementations issue exactly one model request per call: no retries, no
// streaming, no chunking of multi-page input.
type Generator interface {
	Generate(ctx context.Context, question string, pageImages []pages.PageImage) (string, error)
}

// GenerationError is the single opaque failure surfaced for any problem with
// the external call (network, quota, auth, malformed response).
type GenerationError struct {
	Message string
	Err     error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *GenerationError) Unwrap() error { return e.Err }
