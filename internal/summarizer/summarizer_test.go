package summarizer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/samvad-hq/samvad-summarizer/internal/domain"
	"github.com/samvad-hq/samvad-summarizer/pkg/inference"
)

type fakeModel struct {
	out  string
	err  error
	reqs []inference.SummaryRequest
}

func (f *fakeModel) ID() string   { return "fake" }
func (f *fakeModel) Type() string { return "fake" }
func (f *fakeModel) Summarize(_ context.Context, req inference.SummaryRequest) (string, error) {
	f.reqs = append(f.reqs, req)
	return f.out, f.err
}

func loader(m inference.SummarizationModel) func(context.Context) (inference.SummarizationModel, error) {
	return func(context.Context) (inference.SummarizationModel, error) { return m, nil }
}

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("word ", n))
}

func TestComputeBounds(t *testing.T) {
	cases := []struct {
		wc   int
		want domain.Bounds
	}{
		{wc: 300, want: domain.Bounds{MaxLength: 100, MinLength: 80}},
		{wc: 30, want: domain.Bounds{MaxLength: 60, MinLength: 40}},
		{wc: 500, want: domain.Bounds{MaxLength: 166, MinLength: 146}},
		{wc: 0, want: domain.Bounds{MaxLength: 60, MinLength: 40}},
		{wc: 5000, want: domain.Bounds{MaxLength: 200, MinLength: 180}},
	}
	for _, tc := range cases {
		if got := ComputeBounds(tc.wc); got != tc.want {
			t.Fatalf("ComputeBounds(%d) = %#v, want %#v", tc.wc, got, tc.want)
		}
	}
	for wc := 0; wc < 2000; wc += 7 {
		b := ComputeBounds(wc)
		if b.MinLength < 30 || b.MinLength >= b.MaxLength || b.MaxLength < 60 || b.MaxLength > 200 {
			t.Fatalf("bounds out of range for %d: %#v", wc, b)
		}
	}
}

func TestSummarizeEmptyInput(t *testing.T) {
	s := New(loader(&fakeModel{out: "x"}), Options{}, nil)
	for _, in := range []string{"", "   \n\t"} {
		_, err := s.Summarize(context.Background(), in)
		var empty *EmptyInputError
		if !errors.As(err, &empty) {
			t.Fatalf("expected EmptyInputError for %q, got %v", in, err)
		}
	}
}

func TestSummarizeWhitespaceBeforeCutIsEmptyInput(t *testing.T) {
	model := &fakeModel{out: "should not be used"}
	s := New(loader(model), Options{}, nil)

	in := strings.Repeat(" ", DefaultMaxChars) + words(300)
	got, err := s.Summarize(context.Background(), in)
	if !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %q, %v", got, err)
	}
	if len(model.reqs) != 0 {
		t.Fatalf("model must not be called when nothing survives the cut")
	}
}

func TestSummarizeShortInputReturnedVerbatim(t *testing.T) {
	model := &fakeModel{out: "should not be used"}
	s := New(loader(model), Options{}, nil)

	got, err := s.Summarize(context.Background(), "  Hello world  ")
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "Hello world" {
		t.Fatalf("expected input back, got %q", got)
	}
	if len(model.reqs) != 0 {
		t.Fatalf("model must not be called for short input")
	}
}

func TestSummarizePassesBoundsAndTruncatedText(t *testing.T) {
	model := &fakeModel{out: " A tidy summary. "}
	s := New(loader(model), Options{}, nil)

	got, err := s.Summarize(context.Background(), words(300))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got != "A tidy summary." {
		t.Fatalf("unexpected summary %q", got)
	}
	if model.reqs[0].Bounds != (domain.Bounds{MaxLength: 100, MinLength: 80}) {
		t.Fatalf("unexpected bounds %#v", model.reqs[0].Bounds)
	}

	// 1000 words of "word " is 5000 chars; the cut keeps 600 words.
	if _, err := s.Summarize(context.Background(), words(1000)); err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if got := len([]rune(model.reqs[1].Text)); got > DefaultMaxChars {
		t.Fatalf("model received %d chars", got)
	}
	if model.reqs[1].Bounds != (domain.Bounds{MaxLength: 200, MinLength: 180}) {
		t.Fatalf("unexpected bounds for truncated input %#v", model.reqs[1].Bounds)
	}
}

func TestSummarizeDeterministicUnderDeterministicModel(t *testing.T) {
	s := New(loader(&fakeModel{out: "same"}), Options{}, nil)
	a, errA := s.Summarize(context.Background(), words(100))
	b, errB := s.Summarize(context.Background(), words(100))
	if errA != nil || errB != nil || a != b {
		t.Fatalf("expected identical summaries, got %q %q (%v %v)", a, b, errA, errB)
	}
}

func TestSummarizeModelFailures(t *testing.T) {
	cause := errors.New("oom")
	s := New(loader(&fakeModel{err: cause}), Options{}, nil)
	_, err := s.Summarize(context.Background(), words(100))
	var sErr *SummarizationError
	if !errors.As(err, &sErr) || !errors.Is(err, cause) {
		t.Fatalf("expected SummarizationError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "Summarization failed: ") {
		t.Fatalf("unexpected message %q", err.Error())
	}

	s = New(loader(&fakeModel{out: "   "}), Options{}, nil)
	if _, err := s.Summarize(context.Background(), words(100)); !errors.As(err, &sErr) {
		t.Fatalf("expected SummarizationError for blank output, got %v", err)
	}
}

func TestSummarizeDependencyUnavailable(t *testing.T) {
	s := New(func(context.Context) (inference.SummarizationModel, error) {
		return nil, errors.New("no weights")
	}, Options{}, nil)

	_, err := s.Summarize(context.Background(), words(100))
	var dep *inference.DependencyUnavailableError
	if !errors.As(err, &dep) || dep.Task != inference.TaskSummarization {
		t.Fatalf("expected DependencyUnavailableError, got %v", err)
	}
}
