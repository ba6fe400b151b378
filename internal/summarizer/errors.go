package summarizer

import "errors"

// ErrEmptyInput is returned when there is nothing to summarize.
var ErrEmptyInput = &EmptyInputError{}

// EmptyInputError reports blank input text.
type EmptyInputError struct{}

func (*EmptyInputError) Error() string { return "input text is empty" }

// SummarizationError wraps a model fault or an empty model output.
type SummarizationError struct {
	Err error
}

func (e *SummarizationError) Error() string {
	if e == nil {
		return ""
	}
	return "Summarization failed: " + e.Err.Error()
}

func (e *SummarizationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

var errEmptySummary = errors.New("model returned an empty summary")
