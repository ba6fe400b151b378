// Package domain contains the records that flow through the summarization pipeline.
package domain

// UntitledArticle is used when the source page carries no usable title.
const UntitledArticle = "Untitled"

// Article is the readable content extracted from a single URL.
type Article struct {
	URL   string
	Title string
	Text  string
}

// TranslationResult describes the language outcome for an article body.
// EnglishText is set only when Supported is true.
type TranslationResult struct {
	LangCode    string `json:"lang_code"`
	LangName    string `json:"lang_name"`
	EnglishText string `json:"english_text,omitempty"`
	Supported   bool   `json:"supported"`
}

// Bounds are the summary length limits derived from an input's word count.
type Bounds struct {
	MaxLength int `json:"max_length"`
	MinLength int `json:"min_length"`
}

// PipelineResult is the final record handed to the response layer.
type PipelineResult struct {
	Title             string `json:"title"`
	DetectedLanguage  string `json:"detected_language"`
	OriginalWordCount int    `json:"original_word_count"`
	SummaryWordCount  int    `json:"summary_word_count"`
	Summary           string `json:"summary"`
}
