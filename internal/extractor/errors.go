package extractor

// ExtractionError reports that a URL could not be turned into readable article text.
// Error returns a message suitable for showing to the caller.
type ExtractionError struct {
	URL    string
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e == nil {
		return ""
	}
	return e.Reason
}

func (e *ExtractionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

const noTextReason = "No article text could be extracted. The page may require JavaScript or block scrapers."

func fetchFailed(rawURL string, err error) *ExtractionError {
	return &ExtractionError{
		URL:    rawURL,
		Reason: "Failed to fetch article: " + err.Error(),
		Err:    err,
	}
}
