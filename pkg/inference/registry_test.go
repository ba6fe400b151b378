package inference

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubModel struct{ id string }

func (s stubModel) ID() string   { return s.id }
func (s stubModel) Type() string { return "stub" }

type stubTranslator struct{ stubModel }

func (stubTranslator) Translate(context.Context, TranslationRequest) (string, error) {
	return "translated", nil
}

func mustConfigRegistry(t *testing.T, cfgs ...BackendConfig) *ConfigRegistry {
	t.Helper()
	reg, err := NewConfigRegistry(cfgs)
	if err != nil {
		t.Fatalf("NewConfigRegistry: %v", err)
	}
	return reg
}

func TestRegistryBuildUnknownType(t *testing.T) {
	reg := NewRegistry(nil)
	if _, err := reg.Build(context.Background(), BackendConfig{ID: "x", Type: "nope"}); err == nil {
		t.Fatalf("expected error for unregistered type")
	}
}

func TestTranslationLoaderBuildsConfiguredBackend(t *testing.T) {
	reg := NewRegistry(map[string]Builder{
		"stub": func(_ context.Context, cfg BackendConfig) (Model, error) {
			return stubTranslator{stubModel{id: cfg.ID}}, nil
		},
	})
	cfgs := mustConfigRegistry(t, BackendConfig{ID: "tr", Task: TaskTranslation, Type: "stub", Model: "m"})

	model, err := TranslationLoader(reg, cfgs)(context.Background())
	if err != nil {
		t.Fatalf("TranslationLoader: %v", err)
	}
	if model.ID() != "tr" {
		t.Fatalf("unexpected model id %q", model.ID())
	}
}

func TestSummarizationLoaderRejectsIncapableBackend(t *testing.T) {
	reg := NewRegistry(map[string]Builder{
		"stub": func(_ context.Context, cfg BackendConfig) (Model, error) {
			return stubTranslator{stubModel{id: cfg.ID}}, nil
		},
	})
	cfgs := mustConfigRegistry(t, BackendConfig{ID: "sum", Task: TaskSummarization, Type: "stub", Model: "m"})

	_, err := SummarizationLoader(reg, cfgs)(context.Background())
	if err == nil || !strings.Contains(err.Error(), "cannot summarize") {
		t.Fatalf("expected capability error, got %v", err)
	}
}

func TestLoaderMissingTaskAndBuilderFailure(t *testing.T) {
	buildErr := errors.New("no key")
	reg := NewRegistry(map[string]Builder{
		"stub": func(context.Context, BackendConfig) (Model, error) { return nil, buildErr },
	})
	cfgs := mustConfigRegistry(t, BackendConfig{ID: "tr", Task: TaskTranslation, Type: "stub", Model: "m"})

	if _, err := SummarizationLoader(reg, cfgs)(context.Background()); err == nil {
		t.Fatalf("expected error for unconfigured task")
	}
	if _, err := TranslationLoader(reg, cfgs)(context.Background()); !errors.Is(err, buildErr) {
		t.Fatalf("expected wrapped builder error, got %v", err)
	}
}

func TestDefaultRegistryOpenAIRequiresKey(t *testing.T) {
	t.Setenv("SAMVAD_OPENAI_KEY", "")
	_, err := DefaultRegistry().Build(context.Background(), BackendConfig{
		ID: "o", Task: TaskSummarization, Type: TypeOpenAI, Model: "gpt-4o-mini", APIKeyEnv: "SAMVAD_OPENAI_KEY",
	})
	if err == nil {
		t.Fatalf("expected error when api key env is unset")
	}

	_, err = DefaultRegistry().Build(context.Background(), BackendConfig{
		ID: "o", Task: TaskSummarization, Type: TypeOpenAI, Model: "gpt-4o-mini",
	})
	if err == nil {
		t.Fatalf("expected error when api_key_env is not configured")
	}
}

func TestDefaultRegistryGeminiRequiresKey(t *testing.T) {
	_, err := DefaultRegistry().Build(context.Background(), BackendConfig{
		ID: "g", Task: TaskSummarization, Type: TypeGemini, Model: "gemini-1.5-flash",
	})
	if err == nil {
		t.Fatalf("expected error when api_key_env is not configured")
	}
}

func TestPromptsCarryBoundsAndLanguages(t *testing.T) {
	p := translatePrompt(TranslationRequest{Text: "नमस्ते", SourceTag: "hin_Deva", SourceName: "Hindi", TargetTag: "eng_Latn"})
	if !strings.Contains(p, "Hindi text to English") {
		t.Fatalf("unexpected translate prompt %q", p)
	}
	s := summarizePrompt(SummaryRequest{Text: "body"})
	if !strings.Contains(s, "0 to 0 words") {
		t.Fatalf("unexpected summarize prompt %q", s)
	}
}
