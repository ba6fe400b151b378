package inference

import (
	"context"

	"github.com/samvad-hq/samvad-summarizer/internal/domain"
)

// Supported backend tasks.
const (
	TaskTranslation   = "translation"
	TaskSummarization = "summarization"
)

// Model is a constructed handle onto an inference backend.
type Model interface {
	ID() string
	Type() string
}

// TranslationRequest carries the text plus both the model-specific language
// tags and their display names.
type TranslationRequest struct {
	Text       string
	SourceTag  string
	TargetTag  string
	SourceName string
	TargetName string
}

// TranslationModel translates text between the languages named in the request.
type TranslationModel interface {
	Model
	Translate(ctx context.Context, req TranslationRequest) (string, error)
}

// SummaryRequest asks for a summary within the given length bounds. Decoding
// is deterministic: identical requests yield identical output.
type SummaryRequest struct {
	Text   string
	Bounds domain.Bounds
}

// SummarizationModel produces an abstractive summary.
type SummarizationModel interface {
	Model
	Summarize(ctx context.Context, req SummaryRequest) (string, error)
}
