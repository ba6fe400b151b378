package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiModel implements both tasks on Gemini with temperature 0.
type geminiModel struct {
	id              string
	client          *genai.Client
	model           *genai.GenerativeModel
	translateSystem string
	summarizeSystem string
}

var (
	_ TranslationModel   = (*geminiModel)(nil)
	_ SummarizationModel = (*geminiModel)(nil)
)

func newGemini(ctx context.Context, cfg BackendConfig) (Model, error) {
	if cfg.APIKeyEnv == "" {
		return nil, errors.New("gemini backend requires api_key_env")
	}
	key, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}

	opts := []option.ClientOption{option.WithAPIKey(key)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(0)
	model.SetCandidateCount(1)

	return &geminiModel{
		id:              cfg.ID,
		client:          client,
		model:           model,
		translateSystem: cfg.ConfigString(configSystemPrompt, translateSystemPrompt),
		summarizeSystem: cfg.ConfigString(configSystemPrompt, summarizeSystemPrompt),
	}, nil
}

func (g *geminiModel) ID() string   { return g.id }
func (g *geminiModel) Type() string { return TypeGemini }

func (g *geminiModel) Translate(ctx context.Context, req TranslationRequest) (string, error) {
	return g.generate(ctx, g.translateSystem+"\n\n"+translatePrompt(req))
}

func (g *geminiModel) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	return g.generate(ctx, g.summarizeSystem+"\n\n"+summarizePrompt(req))
}

func (g *geminiModel) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}
