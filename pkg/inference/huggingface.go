package inference

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/samvad-hq/samvad-summarizer/pkg/httpclient"
)

const defaultHuggingFaceEndpoint = "https://api-inference.huggingface.co"

// huggingFace talks to a Hugging Face Inference API compatible endpoint.
// The same handle serves both translation and summarization pipelines.
type huggingFace struct {
	id       string
	modelURL string
	headers  map[string]string
	extra    map[string]any
	client   httpclient.Client
}

var (
	_ TranslationModel   = (*huggingFace)(nil)
	_ SummarizationModel = (*huggingFace)(nil)
)

type hfRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Options    map[string]any `json:"options,omitempty"`
}

type hfOutput struct {
	TranslationText string `json:"translation_text"`
	SummaryText     string `json:"summary_text"`
}

type hfError struct {
	Error string `json:"error"`
}

func newHuggingFace(ctx context.Context, cfg BackendConfig) (Model, error) {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultHuggingFaceEndpoint
	}
	if _, err := url.ParseRequestURI(endpoint); err != nil {
		return nil, fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}

	key, err := cfg.APIKey()
	if err != nil {
		return nil, err
	}
	headers := map[string]string{"Accept": "application/json"}
	if key != "" {
		headers["Authorization"] = "Bearer " + key
	}

	hf := &huggingFace{
		id:       cfg.ID,
		modelURL: endpoint + "/models/" + cfg.Model,
		headers:  headers,
		extra:    cfg.Config,
		client:   httpclient.NewRestyClient(cfg.Timeout()),
	}

	if cfg.HealthPath != "" {
		if err := hf.probe(ctx, endpoint+"/"+strings.TrimLeft(cfg.HealthPath, "/")); err != nil {
			return nil, err
		}
	}
	return hf, nil
}

func (h *huggingFace) ID() string   { return h.id }
func (h *huggingFace) Type() string { return TypeHuggingFace }

func (h *huggingFace) probe(ctx context.Context, healthURL string) error {
	resp, err := h.client.Get(ctx, healthURL, h.headers)
	if err != nil {
		return fmt.Errorf("health probe: %w", err)
	}
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return fmt.Errorf("health probe returned status %d", resp.StatusCode())
	}
	return nil
}

// Translate runs the translation pipeline with NLLB style language tags.
func (h *huggingFace) Translate(ctx context.Context, req TranslationRequest) (string, error) {
	out, err := h.call(ctx, hfRequest{
		Inputs: req.Text,
		Parameters: h.parameters(map[string]any{
			"src_lang": req.SourceTag,
			"tgt_lang": req.TargetTag,
		}),
		Options: map[string]any{"wait_for_model": true},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out.TranslationText), nil
}

// Summarize runs the summarization pipeline with greedy decoding.
func (h *huggingFace) Summarize(ctx context.Context, req SummaryRequest) (string, error) {
	out, err := h.call(ctx, hfRequest{
		Inputs: req.Text,
		Parameters: h.parameters(map[string]any{
			"max_length": req.Bounds.MaxLength,
			"min_length": req.Bounds.MinLength,
			"do_sample":  false,
		}),
		Options: map[string]any{"wait_for_model": true},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out.SummaryText), nil
}

// parameters layers the request's own parameters over the extra ones from
// the backend config entry.
func (h *huggingFace) parameters(fixed map[string]any) map[string]any {
	out := make(map[string]any, len(h.extra)+len(fixed))
	for k, v := range h.extra {
		out[k] = v
	}
	for k, v := range fixed {
		out[k] = v
	}
	return out
}

func (h *huggingFace) call(ctx context.Context, payload hfRequest) (hfOutput, error) {
	resp, err := h.client.Post(ctx, h.modelURL, h.headers, payload)
	if err != nil {
		return hfOutput{}, fmt.Errorf("inference request: %w", err)
	}

	body := resp.Body()
	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		var apiErr hfError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return hfOutput{}, fmt.Errorf("inference status %d: %s", resp.StatusCode(), apiErr.Error)
		}
		return hfOutput{}, fmt.Errorf("inference status %d: %s", resp.StatusCode(), responseSnippet(body))
	}

	var outputs []hfOutput
	if err := json.Unmarshal(body, &outputs); err != nil {
		return hfOutput{}, fmt.Errorf("decode inference response: %w", err)
	}
	if len(outputs) == 0 {
		return hfOutput{}, fmt.Errorf("inference response contained no outputs")
	}
	return outputs[0], nil
}

func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
