package course

import (
	"errors"
	"fmt"

	"github.com/abhisek/trainy/internal/llm"
)

// Reason classifies why a course could not be produced.
type Reason string

const (
	ReasonNotConfigured    Reason = "not_configured"
	ReasonGenerationFailed Reason = "generation_failed"
	ReasonEmptyResponse    Reason = "empty_response"
	ReasonParseFailed      Reason = "parse_failed"
	ReasonValidationFailed Reason = "validation_failed"
)

// Message is the user-facing text for a failure reason.
func (r Reason) Message() string {
	switch r {
	case ReasonNotConfigured:
		return "The course generator is not configured. Set an API key and restart."
	case ReasonGenerationFailed:
		return "Sorry, there was an error generating structured course content."
	case ReasonEmptyResponse:
		return "No content was generated."
	case ReasonParseFailed:
		return "The generated course could not be read. Please try again."
	case ReasonValidationFailed:
		return "The generated course was incomplete or malformed. Please try again."
	default:
		return "Something went wrong."
	}
}

// ErrBlankRequest is returned when the request is empty after trimming.
var ErrBlankRequest = errors.New("course request is blank")

// GenerationError is the single failure type returned by Generate.
type GenerationError struct {
	Reason Reason
	Err    error
}

func (e *GenerationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Reason, e.Err)
	}
	return string(e.Reason)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ReasonOf extracts the failure reason from err, or "" when err is nil or
// not a GenerationError.
func ReasonOf(err error) Reason {
	var ge *GenerationError
	if errors.As(err, &ge) {
		return ge.Reason
	}
	return ""
}

// classify maps provider and validation errors onto reasons.
func classify(err error) Reason {
	var (
		empty     *llm.ErrEmptyResponse
		malformed *llm.ErrMalformedResponse
		invalid   *llm.ErrInvalidResponse
		truncated *llm.ErrMaxTokensExceeded
	)
	switch {
	case errors.As(err, &empty):
		return ReasonEmptyResponse
	case errors.As(err, &malformed), errors.As(err, &truncated):
		return ReasonParseFailed
	case errors.As(err, &invalid):
		return ReasonValidationFailed
	default:
		return ReasonGenerationFailed
	}
}
