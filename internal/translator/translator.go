// Package translator turns article text in a supported Indian language into
// English. Anything outside the supported set is reported, not translated.
package translator

import (
	"context"

	"github.com/samvad-hq/samvad-summarizer/internal/domain"
	"github.com/samvad-hq/samvad-summarizer/internal/langid"
	"github.com/samvad-hq/samvad-summarizer/internal/logger"
	"github.com/samvad-hq/samvad-summarizer/internal/textutil"
	"github.com/samvad-hq/samvad-summarizer/pkg/inference"
)

// DefaultMaxChars is the input cut applied before the model call.
const DefaultMaxChars = 3000

// Detector classifies the language of a text.
type Detector interface {
	Detect(text string) langid.Detection
}

// Options tunes the Translator.
type Options struct {
	MaxChars int
}

// Translator detects the source language and translates supported ones.
type Translator struct {
	detector Detector
	model    *inference.Lazy[inference.TranslationModel]
	maxChars int
	log      logger.Logger
}

// New builds a Translator. load is called on first use of the model and
// again after every failed construction.
func New(detector Detector, load func(ctx context.Context) (inference.TranslationModel, error), opts Options, log logger.Logger) *Translator {
	if opts.MaxChars <= 0 {
		opts.MaxChars = DefaultMaxChars
	}
	return &Translator{
		detector: detector,
		model:    inference.NewLazy(load),
		maxChars: opts.MaxChars,
		log:      logger.Ensure(log),
	}
}

// Translate detects the language of text and, when supported, returns its
// English translation. Unsupported languages yield Supported=false and a nil
// error without touching the model.
func (t *Translator) Translate(ctx context.Context, text string) (domain.TranslationResult, error) {
	det := t.detector.Detect(text)
	lang, ok := Lookup(det.Code)
	if !det.Known || !ok {
		t.log.InfoObj("language not in supported set", "translator_unsupported", map[string]any{
			"lang_code": det.Code,
		})
		return domain.TranslationResult{
			LangCode:  det.Code,
			LangName:  UnsupportedName(det.Code),
			Supported: false,
		}, nil
	}

	model, err := t.model.Get(ctx)
	if err != nil {
		t.log.ErrorObj("translation model unavailable", "translator_model_error", map[string]any{
			"error": err.Error(),
		})
		return domain.TranslationResult{}, &inference.DependencyUnavailableError{Task: inference.TaskTranslation, Err: err}
	}

	input := textutil.Truncate(text, t.maxChars)
	english, err := model.Translate(ctx, inference.TranslationRequest{
		Text:       input,
		SourceTag:  lang.Tag,
		TargetTag:  TargetTag,
		SourceName: lang.Name,
		TargetName: "English",
	})
	if err != nil {
		return domain.TranslationResult{}, &TranslationError{LangCode: lang.Code, Err: err}
	}
	if english == "" {
		return domain.TranslationResult{}, &TranslationError{LangCode: lang.Code, Err: errEmptyOutput}
	}

	t.log.DebugObj("translated article text", "translator_done", map[string]any{
		"lang_code":   lang.Code,
		"model":       model.ID(),
		"input_chars": len([]rune(input)),
	})
	return domain.TranslationResult{
		LangCode:    lang.Code,
		LangName:    lang.Name,
		EnglishText: english,
		Supported:   true,
	}, nil
}
