package inference

import "fmt"

// DependencyUnavailableError reports that the backend for a task could not be
// constructed. Nothing is cached on failure, so the next call retries.
type DependencyUnavailableError struct {
	Task string
	Err  error
}

func (e *DependencyUnavailableError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s model unavailable: %v", e.Task, e.Err)
}

func (e *DependencyUnavailableError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
