package inference

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported backend types.
const (
	TypeHuggingFace = "huggingface"
	TypeOpenAI      = "openai"
	TypeGemini      = "gemini"
)

// configFile represents the structure of the models configuration file.
type configFile struct {
	Models []BackendConfig `json:"models" yaml:"models"`
}

// BackendConfig declares the backend serving one task.
type BackendConfig struct {
	ID             string         `json:"id" yaml:"id"`
	Task           string         `json:"task" yaml:"task"`
	Type           string         `json:"type" yaml:"type"`
	Model          string         `json:"model" yaml:"model"`
	Endpoint       string         `json:"endpoint" yaml:"endpoint"`
	APIKeyEnv      string         `json:"api_key_env" yaml:"api_key_env"`
	TimeoutSeconds int            `json:"timeout_seconds" yaml:"timeout_seconds"`
	HealthPath     string         `json:"health_path" yaml:"health_path"`
	Config         map[string]any `json:"config" yaml:"config"`
}

// ConfigRegistry materializes backend definitions loaded from config files.
type ConfigRegistry struct {
	mu     sync.RWMutex
	models []BackendConfig
	byTask map[string]BackendConfig
}

// LoadRegistry loads the backend registry from a YAML/JSON file.
func LoadRegistry(path string) (*ConfigRegistry, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("models file path is empty")
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open models file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read models file: %w", err)
	}

	fileReg, err := parseRegistry(raw, filepath.Ext(path))
	if err != nil {
		return nil, err
	}
	return NewConfigRegistry(fileReg.Models)
}

// NewConfigRegistry validates cfgs and indexes them by task.
func NewConfigRegistry(cfgs []BackendConfig) (*ConfigRegistry, error) {
	if len(cfgs) == 0 {
		return nil, errors.New("models file contains no models entries")
	}

	reg := &ConfigRegistry{
		models: make([]BackendConfig, len(cfgs)),
		byTask: make(map[string]BackendConfig, len(cfgs)),
	}
	ids := make(map[string]struct{}, len(cfgs))

	for i := range cfgs {
		cfg := sanitizeBackendConfig(cfgs[i])
		if err := validateBackendConfig(cfg); err != nil {
			return nil, fmt.Errorf("models[%d]: %w", i, err)
		}
		if _, exists := ids[cfg.ID]; exists {
			return nil, fmt.Errorf("duplicate model id %q", cfg.ID)
		}
		if prev, exists := reg.byTask[cfg.Task]; exists {
			return nil, fmt.Errorf("task %q declared by both %q and %q", cfg.Task, prev.ID, cfg.ID)
		}
		ids[cfg.ID] = struct{}{}
		reg.models[i] = cfg
		reg.byTask[cfg.Task] = cfg
	}

	return reg, nil
}

func parseRegistry(data []byte, ext string) (configFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))

	decoders := []struct {
		name string
		ext  string
		fn   func([]byte, any) error
	}{
		{name: "yaml", ext: ".yaml", fn: yaml.Unmarshal},
		{name: "yaml", ext: ".yml", fn: yaml.Unmarshal},
		{name: "json", ext: ".json", fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && ext != d.ext {
			continue
		}
		var reg configFile
		if err := d.fn(data, &reg); err == nil {
			return reg, nil
		}
	}

	return configFile{}, errors.New("models file format not recognized (expected YAML or JSON)")
}

func sanitizeBackendConfig(cfg BackendConfig) BackendConfig {
	cfg.ID = strings.TrimSpace(cfg.ID)
	cfg.Task = strings.ToLower(strings.TrimSpace(cfg.Task))
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	cfg.APIKeyEnv = strings.TrimSpace(cfg.APIKeyEnv)
	cfg.HealthPath = strings.TrimSpace(cfg.HealthPath)
	if cfg.TimeoutSeconds < 0 {
		cfg.TimeoutSeconds = 0
	}
	if cfg.Config == nil {
		cfg.Config = map[string]any{}
	}
	return cfg
}

func validateBackendConfig(cfg BackendConfig) error {
	if cfg.ID == "" {
		return errors.New("id is required")
	}
	switch cfg.Task {
	case TaskTranslation, TaskSummarization:
	case "":
		return fmt.Errorf("task is required for model %q", cfg.ID)
	default:
		return fmt.Errorf("unknown task %q for model %q", cfg.Task, cfg.ID)
	}
	if cfg.Type == "" {
		return fmt.Errorf("type is required for model %q", cfg.ID)
	}
	if cfg.Model == "" {
		return fmt.Errorf("model is required for model %q", cfg.ID)
	}
	return nil
}

// ForTask returns the backend config serving task.
func (r *ConfigRegistry) ForTask(task string) (BackendConfig, bool) {
	if r == nil {
		return BackendConfig{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.byTask[strings.ToLower(strings.TrimSpace(task))]
	return cfg, ok
}

// All returns all configured backends.
func (r *ConfigRegistry) All() []BackendConfig {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]BackendConfig, len(r.models))
	copy(out, r.models)
	return out
}

// Timeout returns the per-call timeout; zero means unbounded.
func (cfg BackendConfig) Timeout() time.Duration {
	return time.Duration(cfg.TimeoutSeconds) * time.Second
}

// APIKey resolves the key named by api_key_env. An empty api_key_env yields
// an empty key; a named but unset variable is an error.
func (cfg BackendConfig) APIKey() (string, error) {
	if cfg.APIKeyEnv == "" {
		return "", nil
	}
	key := strings.TrimSpace(os.Getenv(cfg.APIKeyEnv))
	if key == "" {
		return "", fmt.Errorf("environment variable %s is not set", cfg.APIKeyEnv)
	}
	return key, nil
}

// ConfigString returns the trimmed string value for key from cfg.Config or a fallback.
func (cfg BackendConfig) ConfigString(key, fallback string) string {
	if raw, ok := cfg.Config[key]; ok {
		if val, ok := raw.(string); ok {
			if trimmed := strings.TrimSpace(val); trimmed != "" {
				return trimmed
			}
		}
	}
	return fallback
}
