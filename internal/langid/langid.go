// Package langid identifies the language of article text. Detection never
// fails: anything that cannot be classified comes back as Unknown.
package langid

import (
	"strings"
	"sync"
	"unicode"

	"github.com/pemistahl/lingua-go"

	"github.com/samvad-hq/samvad-summarizer/internal/logger"
)

const (
	// UnknownCode is reported when the text could not be classified.
	UnknownCode = "unknown"
	// EnglishCode is the ISO 639-1 code for English.
	EnglishCode = "en"
	// MalayalamCode is recognized from its script since lingua ships no Malayalam model.
	MalayalamCode = "ml"
)

// Detection is the outcome of classifying a piece of text.
type Detection struct {
	Code  string
	Known bool
}

// Detected returns a known detection for code.
func Detected(code string) Detection {
	return Detection{Code: code, Known: true}
}

// Unknown is the detection used for unclassifiable text.
var Unknown = Detection{Code: UnknownCode}

// Classifier is the statistical language model behind the Identifier.
// It returns a lowercase ISO 639-1 code, or false when undecided.
type Classifier interface {
	Classify(text string) (string, bool)
}

// Identifier wraps a Classifier that is built on first use.
type Identifier struct {
	once       sync.Once
	build      func() Classifier
	classifier Classifier
	log        logger.Logger
}

// New returns an Identifier backed by lingua with every language it knows.
func New(log logger.Logger) *Identifier {
	return &Identifier{build: newLinguaClassifier, log: logger.Ensure(log)}
}

// NewWithClassifier returns an Identifier around an existing classifier.
func NewWithClassifier(c Classifier, log logger.Logger) *Identifier {
	return &Identifier{build: func() Classifier { return c }, log: logger.Ensure(log)}
}

// Detect classifies text. It does not return errors and does not panic.
func (i *Identifier) Detect(text string) (d Detection) {
	defer func() {
		if r := recover(); r != nil {
			i.log.WarnObj("language detection panicked", "langid_error", map[string]any{
				"panic": r,
			})
			d = Unknown
		}
	}()

	if strings.TrimSpace(text) == "" {
		return Unknown
	}
	if dominantScript(text, unicode.Malayalam) {
		return Detected(MalayalamCode)
	}

	i.once.Do(func() {
		i.classifier = i.build()
	})
	if i.classifier == nil {
		return Unknown
	}

	code, ok := i.classifier.Classify(text)
	code = strings.ToLower(strings.TrimSpace(code))
	if !ok || code == "" {
		return Unknown
	}
	return Detected(code)
}

// dominantScript reports whether more than half of the letters in text belong to table.
func dominantScript(text string, table *unicode.RangeTable) bool {
	var letters, inScript int
	for _, r := range text {
		if !unicode.IsLetter(r) && !unicode.IsMark(r) {
			continue
		}
		letters++
		if unicode.Is(table, r) {
			inScript++
		}
	}
	return letters > 0 && inScript*2 > letters
}

type linguaClassifier struct {
	detector lingua.LanguageDetector
}

func newLinguaClassifier() Classifier {
	detector := lingua.NewLanguageDetectorBuilder().
		FromAllLanguages().
		WithLowAccuracyMode().
		Build()
	return linguaClassifier{detector: detector}
}

func (l linguaClassifier) Classify(text string) (string, bool) {
	lang, ok := l.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
