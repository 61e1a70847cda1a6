package rossum

import (
	"errors"
	"fmt"
)

// ErrMissingAPIKey is returned when no API key was supplied and the
// ROSSUM_API_KEY environment variable is unset.
var ErrMissingAPIKey = errors.New(
	"missing API key: provide it via the ROSSUM_API_KEY environment variable or WithAPIKey; " +
		"you can sign up for free at https://rossum.ai/developers/#sign-in")

// ErrInvalidFilter is returned for filter values other than "best" or "all".
var ErrInvalidFilter = errors.New(`filter must be one of "best" or "all"`)

// ErrPollTimeout is returned when the job stayed in the processing state for
// the whole poll budget. Re-invoking Extract creates a brand-new job; the old
// one cannot be resumed.
var ErrPollTimeout = errors.New("job did not reach a terminal state within the poll budget")

// ErrEmptyDocument is returned when a document source yields no bytes.
var ErrEmptyDocument = errors.New("document is empty")

// ErrMissingJobID is returned when the submit response carries neither a job
// id nor an error message.
var ErrMissingJobID = errors.New("submit response contains no job id")

// SubmissionError reports that the service rejected the upload. The job was
// never created, so the failure is terminal for this call and is not retried.
type SubmissionError struct {
	Reason string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("document submission rejected: %s", e.Reason)
}

// ExtractionError reports a job that reached the error terminal state. The
// message is passed through verbatim from the service.
type ExtractionError struct {
	Message string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extraction failed: %s", e.Message)
}
