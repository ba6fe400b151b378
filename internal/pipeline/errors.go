package pipeline

import (
	"errors"
	"fmt"

	"github.com/samvad-hq/samvad-summarizer/internal/extractor"
	"github.com/samvad-hq/samvad-summarizer/internal/summarizer"
	"github.com/samvad-hq/samvad-summarizer/internal/translator"
	"github.com/samvad-hq/samvad-summarizer/pkg/inference"
)

// Failure categories reported to callers and counted in metrics.
const (
	CategoryExtractionFailed      = "extraction_failed"
	CategoryLanguageUnsupported   = "language_unsupported"
	CategoryTranslationFailed     = "translation_failed"
	CategoryDependencyUnavailable = "dependency_unavailable"
	CategorySummarizationFailed   = "summarization_failed"
	CategoryInternal              = "internal_error"
)

// Severity tells the response layer how to surface a failure.
type Severity int

const (
	SeverityInternal Severity = iota
	SeverityBadRequest
	SeverityUnprocessable
)

func (s Severity) String() string {
	switch s {
	case SeverityBadRequest:
		return "bad_request"
	case SeverityUnprocessable:
		return "unprocessable"
	default:
		return "internal"
	}
}

// Error is the single failure type returned by Run.
type Error struct {
	Stage    Stage
	Category string
	Severity Severity
	Message  string
	// Language is the display name, set for language_unsupported.
	Language string
	Err      error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func unsupportedLanguage(name string) *Error {
	return &Error{
		Stage:    StageTranslating,
		Category: CategoryLanguageUnsupported,
		Severity: SeverityUnprocessable,
		Message:  fmt.Sprintf("Language '%s' is not yet supported. We are continuously expanding regional language coverage.", name),
		Language: name,
	}
}

// classify maps a stage error onto an *Error. Unknown error types become an
// internal fault of the stage they came from.
func classify(stage Stage, err error) *Error {
	var (
		pErr   *Error
		exErr  *extractor.ExtractionError
		trErr  *translator.TranslationError
		depErr *inference.DependencyUnavailableError
		empty  *summarizer.EmptyInputError
		sumErr *summarizer.SummarizationError
	)

	switch {
	case errors.As(err, &pErr):
		return pErr
	case errors.As(err, &depErr):
		return &Error{Stage: stage, Category: CategoryDependencyUnavailable, Severity: SeverityInternal,
			Message: fmt.Sprintf("The %s model is currently unavailable. Please try again later.", depErr.Task), Err: err}
	case errors.As(err, &exErr):
		return &Error{Stage: stage, Category: CategoryExtractionFailed, Severity: SeverityUnprocessable,
			Message: exErr.Error(), Err: err}
	case errors.As(err, &trErr):
		return &Error{Stage: stage, Category: CategoryTranslationFailed, Severity: SeverityInternal,
			Message: "Translation failed: " + causeText(trErr.Err), Err: err}
	case errors.As(err, &empty):
		return &Error{Stage: stage, Category: CategorySummarizationFailed, Severity: SeverityUnprocessable,
			Message: "Summarization failed: " + empty.Error(), Err: err}
	case errors.As(err, &sumErr):
		return &Error{Stage: stage, Category: CategorySummarizationFailed, Severity: SeverityInternal,
			Message: sumErr.Error(), Err: err}
	default:
		return &Error{Stage: stage, Category: CategoryInternal, Severity: SeverityInternal,
			Message: fmt.Sprintf("Internal error while %s.", stage), Err: err}
	}
}

func causeText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}
