package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openAIChat implements both tasks on the chat completions API with
// temperature 0 so repeated inputs give repeated outputs.
type openAIChat struct {
	id              string
	model           string
	translateSystem string
	summarizeSystem string
	client          openai.Client
}

var (
	_ TranslationModel   = (*openAIChat)(nil)
	_ SummarizationModel = (*openAIChat)(nil)
)

func newOpenAI(_ context.Context, cfg BackendConfig) (Model, error) {
	if cfg.APIKeyEnv == "" {
		return nil, errors.New("openai backend requires api_key_env")
	}
	key, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}

	opts := []option.RequestOption{option.WithAPIKey(key)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}
	if t := cfg.Timeout(); t > 0 {
		opts = append(opts, option.WithRequestTimeout(t))
	}

	return &openAIChat{
		id:              cfg.ID,
		model:           cfg.Model,
		translateSystem: cfg.ConfigString(configSystemPrompt, translateSystemPrompt),
		summarizeSystem: cfg.ConfigString(configSystemPrompt, summarizeSystemPrompt),
		client:          openai.NewClient(opts...),
	}, nil
}

func (o *openAIChat) ID() string   { return o.id }
func (o *openAIChat) Type() string { return TypeOpenAI }

func (o *openAIChat) Translate(ctx context.Context, req TranslationRequest) (string, error) {
	return o.complete(ctx, o.translateSystem, translatePrompt(req))
}

func (o *openAIChat) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	return o.complete(ctx, o.summarizeSystem, summarizePrompt(req))
}

func (o *openAIChat) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := o.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(0),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("openai: empty choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
