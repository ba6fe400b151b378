// Package summarizer condenses English article text into a short abstract.
package summarizer

import (
	"context"
	"strings"

	"github.com/samvad-hq/samvad-summarizer/internal/domain"
	"github.com/samvad-hq/samvad-summarizer/internal/logger"
	"github.com/samvad-hq/samvad-summarizer/internal/textutil"
	"github.com/samvad-hq/samvad-summarizer/pkg/inference"
)

const (
	// DefaultMaxChars is the input cut applied before the model call.
	DefaultMaxChars = 3000

	maxLengthFloor   = 60
	maxLengthCeiling = 200
	minLengthFloor   = 30
	minLengthGap     = 20
)

// ComputeBounds derives summary length limits from the input word count.
func ComputeBounds(wordCount int) domain.Bounds {
	maxLen := wordCount / 3
	if maxLen < maxLengthFloor {
		maxLen = maxLengthFloor
	}
	if maxLen > maxLengthCeiling {
		maxLen = maxLengthCeiling
	}
	minLen := maxLen - minLengthGap
	if minLen < minLengthFloor {
		minLen = minLengthFloor
	}
	return domain.Bounds{MaxLength: maxLen, MinLength: minLen}
}

// Options tunes the Summarizer.
type Options struct {
	MaxChars int
}

// Summarizer calls the configured summarization backend.
type Summarizer struct {
	model    *inference.Lazy[inference.SummarizationModel]
	maxChars int
	log      logger.Logger
}

// New builds a Summarizer; load constructs the backend on first use.
func New(load func(ctx context.Context) (inference.SummarizationModel, error), opts Options, log logger.Logger) *Summarizer {
	if opts.MaxChars <= 0 {
		opts.MaxChars = DefaultMaxChars
	}
	return &Summarizer{
		model:    inference.NewLazy(load),
		maxChars: opts.MaxChars,
		log:      logger.Ensure(log),
	}
}

// Summarize returns an English summary of text.
// Inputs shorter than the minimum summary length come back unchanged.
func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	input := strings.TrimSpace(textutil.Truncate(text, s.maxChars))
	if input == "" {
		return "", ErrEmptyInput
	}
	wc := textutil.WordCount(input)
	if wc < minLengthFloor {
		s.log.DebugObj("input shorter than minimum summary, returning as is", "summarizer_passthrough", map[string]any{
			"word_count": wc,
		})
		return input, nil
	}

	model, err := s.model.Get(ctx)
	if err != nil {
		s.log.ErrorObj("summarization model unavailable", "summarizer_model_error", map[string]any{
			"error": err.Error(),
		})
		return "", &inference.DependencyUnavailableError{Task: inference.TaskSummarization, Err: err}
	}

	bounds := ComputeBounds(wc)
	summary, err := model.Summarize(ctx, inference.SummaryRequest{Text: input, Bounds: bounds})
	if err != nil {
		return "", &SummarizationError{Err: err}
	}
	summary = strings.TrimSpace(summary)
	if summary == "" {
		return "", &SummarizationError{Err: errEmptySummary}
	}

	s.log.DebugObj("summarized article text", "summarizer_done", map[string]any{
		"model":      model.ID(),
		"word_count": wc,
		"max_length": bounds.MaxLength,
		"min_length": bounds.MinLength,
	})
	return summary, nil
}
