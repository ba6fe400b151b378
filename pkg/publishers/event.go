package publishers

import (
	"time"

	"github.com/samvad-hq/samvad-summarizer/internal/domain"
)

// Event is the summary announcement published downstream.
type Event struct {
	URL               string    `json:"url"`
	Title             string    `json:"title"`
	DetectedLanguage  string    `json:"detected_language"`
	OriginalWordCount int       `json:"original_word_count"`
	SummaryWordCount  int       `json:"summary_word_count"`
	Summary           string    `json:"summary"`
	SummarizedAt      time.Time `json:"summarized_at"`
}

// NewEvent builds an Event for a finished pipeline run.
func NewEvent(url string, res domain.PipelineResult) Event {
	return Event{
		URL:               url,
		Title:             res.Title,
		DetectedLanguage:  res.DetectedLanguage,
		OriginalWordCount: res.OriginalWordCount,
		SummaryWordCount:  res.SummaryWordCount,
		Summary:           res.Summary,
		SummarizedAt:      time.Now().UTC(),
	}
}

// attributes are attached to queue and topic messages for subscriber filtering.
func (e Event) attributes() map[string]string {
	return map[string]string{
		"detected_language": e.DetectedLanguage,
	}
}
