package translator

import (
	"errors"
	"fmt"
)

var errEmptyOutput = errors.New("model returned empty output")

// TranslationError wraps a failure of the translation model itself.
type TranslationError struct {
	LangCode string
	Err      error
}

func (e *TranslationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("translation from %s failed: %v", e.LangCode, e.Err)
}

func (e *TranslationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
