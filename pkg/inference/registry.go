package inference

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Builder constructs a Model from a config entry. A Builder fails when the
// backend is not provisioned (missing key, bad endpoint, failed health probe).
type Builder func(ctx context.Context, cfg BackendConfig) (Model, error)

// Registry maps backend types to builders.
type Registry interface {
	Register(typ string, builder Builder)
	Build(ctx context.Context, cfg BackendConfig) (Model, error)
}

type registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry returns a registry with optional pre-registered builders.
func NewRegistry(builders map[string]Builder) Registry {
	r := &registry{
		builders: make(map[string]Builder),
	}
	for typ, b := range builders {
		r.Register(typ, b)
	}
	return r
}

// Register associates a builder with a backend type.
func (r *registry) Register(typ string, builder Builder) {
	if typ = strings.TrimSpace(strings.ToLower(typ)); typ == "" || builder == nil {
		return
	}

	r.mu.Lock()
	r.builders[typ] = builder
	r.mu.Unlock()
}

// Build constructs the model described by cfg.
func (r *registry) Build(ctx context.Context, cfg BackendConfig) (Model, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("model %q has no type configured", cfg.ID)
	}

	r.mu.RLock()
	builder := r.builders[strings.ToLower(cfg.Type)]
	r.mu.RUnlock()

	if builder == nil {
		return nil, fmt.Errorf("no backend registered for type %q", cfg.Type)
	}
	return builder(ctx, cfg)
}

// DefaultRegistry wires up known backends.
func DefaultRegistry() Registry {
	return NewRegistry(map[string]Builder{
		TypeHuggingFace: newHuggingFace,
		TypeOpenAI:      newOpenAI,
		TypeGemini:      newGemini,
	})
}

// TranslationLoader returns a constructor for the configured translation backend.
func TranslationLoader(reg Registry, cfgs *ConfigRegistry) func(ctx context.Context) (TranslationModel, error) {
	return func(ctx context.Context) (TranslationModel, error) {
		m, err := buildForTask(ctx, reg, cfgs, TaskTranslation)
		if err != nil {
			return nil, err
		}
		tm, ok := m.(TranslationModel)
		if !ok {
			return nil, fmt.Errorf("backend %q (%s) cannot translate", m.ID(), m.Type())
		}
		return tm, nil
	}
}

// SummarizationLoader returns a constructor for the configured summarization backend.
func SummarizationLoader(reg Registry, cfgs *ConfigRegistry) func(ctx context.Context) (SummarizationModel, error) {
	return func(ctx context.Context) (SummarizationModel, error) {
		m, err := buildForTask(ctx, reg, cfgs, TaskSummarization)
		if err != nil {
			return nil, err
		}
		sm, ok := m.(SummarizationModel)
		if !ok {
			return nil, fmt.Errorf("backend %q (%s) cannot summarize", m.ID(), m.Type())
		}
		return sm, nil
	}
}

func buildForTask(ctx context.Context, reg Registry, cfgs *ConfigRegistry, task string) (Model, error) {
	if reg == nil {
		return nil, fmt.Errorf("backend registry is nil")
	}
	cfg, ok := cfgs.ForTask(task)
	if !ok {
		return nil, fmt.Errorf("no backend configured for task %q", task)
	}
	m, err := reg.Build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("build %s backend %q: %w", task, cfg.ID, err)
	}
	return m, nil
}
