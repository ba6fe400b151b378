// Package pipeline runs one article URL through extraction, language
// handling and summarization, and classifies every failure.
package pipeline

import (
	"context"
	"time"

	"github.com/samvad-hq/samvad-summarizer/internal/domain"
	"github.com/samvad-hq/samvad-summarizer/internal/langid"
	"github.com/samvad-hq/samvad-summarizer/internal/logger"
	"github.com/samvad-hq/samvad-summarizer/internal/metrics"
	"github.com/samvad-hq/samvad-summarizer/internal/textutil"
)

// EnglishName is reported as detected_language for English articles.
const EnglishName = "English"

// Extractor fetches readable article text.
type Extractor interface {
	Extract(ctx context.Context, url string) (domain.Article, error)
}

// Translator detects the language and translates supported text to English.
type Translator interface {
	Translate(ctx context.Context, text string) (domain.TranslationResult, error)
}

// Summarizer condenses English text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Notifier announces successful results. It must not block the caller.
type Notifier interface {
	NotifyAsync(ctx context.Context, url string, res domain.PipelineResult)
}

// Pipeline wires the three stages together.
type Pipeline struct {
	extractor  Extractor
	translator Translator
	summarizer Summarizer
	notifier   Notifier
	metrics    *metrics.Metrics
	log        logger.Logger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithNotifier announces successful results through n.
func WithNotifier(n Notifier) Option {
	return func(p *Pipeline) { p.notifier = n }
}

// WithMetrics records outcomes in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		if m != nil {
			p.metrics = m
		}
	}
}

// New builds a Pipeline.
func New(ex Extractor, tr Translator, sum Summarizer, log logger.Logger, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor:  ex,
		translator: tr,
		summarizer: sum,
		metrics:    metrics.New(),
		log:        logger.Ensure(log),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Metrics returns the counters the pipeline records into.
func (p *Pipeline) Metrics() *metrics.Metrics {
	return p.metrics
}

// Run processes url. On failure it returns a nil-valued result and an *Error;
// partial results are never returned.
func (p *Pipeline) Run(ctx context.Context, url string) (domain.PipelineResult, error) {
	start := time.Now()
	p.metrics.IncrementRequests()
	defer func() { p.metrics.RecordProcessingTime(time.Since(start)) }()

	res, pErr := p.run(ctx, url)
	if pErr != nil {
		p.metrics.RecordFailure(pErr.Category, pErr.Message)
		p.log.WarnObj("pipeline failed", "pipeline_failed", map[string]any{
			"url":      url,
			"stage":    pErr.Stage.String(),
			"category": pErr.Category,
			"severity": pErr.Severity.String(),
			"message":  pErr.Message,
			"cause":    causeText(pErr.Err),
		})
		return domain.PipelineResult{}, pErr
	}

	p.metrics.IncrementSuccesses()
	p.log.InfoObj("pipeline done", "pipeline_done", map[string]any{
		"url":                 url,
		"detected_language":   res.DetectedLanguage,
		"original_word_count": res.OriginalWordCount,
		"summary_word_count":  res.SummaryWordCount,
		"elapsed_ms":          time.Since(start).Milliseconds(),
	})
	if p.notifier != nil {
		p.notifier.NotifyAsync(ctx, url, res)
	}
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, url string) (domain.PipelineResult, *Error) {
	p.enter(StageExtracting, url)
	article, err := p.extractor.Extract(ctx, url)
	if err != nil {
		return domain.PipelineResult{}, classify(StageExtracting, err)
	}
	originalWords := textutil.WordCount(article.Text)

	p.enter(StageTranslating, url)
	tr, err := p.translator.Translate(ctx, article.Text)
	if err != nil {
		return domain.PipelineResult{}, classify(StageTranslating, err)
	}

	englishText, language := tr.EnglishText, tr.LangName
	switch {
	case tr.Supported:
		p.metrics.IncrementTranslated()
	case tr.LangCode == langid.EnglishCode:
		englishText, language = article.Text, EnglishName
		p.metrics.IncrementEnglishBypassed()
		p.log.DebugObj("english article, translation skipped", "pipeline_bypass", map[string]any{"url": url})
	default:
		return domain.PipelineResult{}, unsupportedLanguage(tr.LangName)
	}

	p.enter(StageSummarizing, url)
	summary, err := p.summarizer.Summarize(ctx, englishText)
	if err != nil {
		return domain.PipelineResult{}, classify(StageSummarizing, err)
	}

	return domain.PipelineResult{
		Title:             article.Title,
		DetectedLanguage:  language,
		OriginalWordCount: originalWords,
		SummaryWordCount:  textutil.WordCount(summary),
		Summary:           summary,
	}, nil
}

func (p *Pipeline) enter(stage Stage, url string) {
	p.log.DebugObj("pipeline stage", "pipeline_stage", map[string]any{
		"url":   url,
		"stage": stage.String(),
	})
}
