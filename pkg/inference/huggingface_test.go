package inference

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/samvad-hq/samvad-summarizer/internal/domain"
)

func newHFServer(t *testing.T, handler func(t *testing.T, req hfRequest) (int, string)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		if r.URL.Path != "/models/facebook/test-model" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer hf-token" {
			t.Errorf("unexpected auth header %q", got)
		}
		var req hfRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		status, body := handler(t, req)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func buildHF(t *testing.T, srv *httptest.Server, healthPath string) *huggingFace {
	t.Helper()
	t.Setenv("SAMVAD_HF_TOKEN", "hf-token")
	m, err := newHuggingFace(context.Background(), BackendConfig{
		ID:         "hf",
		Type:       TypeHuggingFace,
		Model:      "facebook/test-model",
		Endpoint:   srv.URL,
		APIKeyEnv:  "SAMVAD_HF_TOKEN",
		HealthPath: healthPath,
	})
	if err != nil {
		t.Fatalf("newHuggingFace: %v", err)
	}
	return m.(*huggingFace)
}

func TestHuggingFaceTranslateSendsLanguageTags(t *testing.T) {
	srv := newHFServer(t, func(t *testing.T, req hfRequest) (int, string) {
		if req.Parameters["src_lang"] != "hin_Deva" || req.Parameters["tgt_lang"] != "eng_Latn" {
			t.Errorf("unexpected parameters %#v", req.Parameters)
		}
		return http.StatusOK, `[{"translation_text":" The monsoon arrived. "}]`
	})
	defer srv.Close()

	hf := buildHF(t, srv, "/health")
	out, err := hf.Translate(context.Background(), TranslationRequest{Text: "मानसून आया", SourceTag: "hin_Deva", TargetTag: "eng_Latn"})
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out != "The monsoon arrived." {
		t.Fatalf("unexpected translation %q", out)
	}
}

func TestHuggingFaceSummarizeSendsBoundsAndGreedyDecoding(t *testing.T) {
	srv := newHFServer(t, func(t *testing.T, req hfRequest) (int, string) {
		if req.Parameters["max_length"] != float64(100) || req.Parameters["min_length"] != float64(80) {
			t.Errorf("unexpected bounds %#v", req.Parameters)
		}
		if req.Parameters["do_sample"] != false {
			t.Errorf("expected do_sample=false, got %#v", req.Parameters["do_sample"])
		}
		return http.StatusOK, `[{"summary_text":"Short summary."}]`
	})
	defer srv.Close()

	hf := buildHF(t, srv, "")
	out, err := hf.Summarize(context.Background(), SummaryRequest{Text: "long text", Bounds: domain.Bounds{MaxLength: 100, MinLength: 80}})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if out != "Short summary." {
		t.Fatalf("unexpected summary %q", out)
	}
}

func TestHuggingFaceSurfacesAPIErrors(t *testing.T) {
	srv := newHFServer(t, func(*testing.T, hfRequest) (int, string) {
		return http.StatusServiceUnavailable, `{"error":"Model is currently loading"}`
	})
	defer srv.Close()

	hf := buildHF(t, srv, "")
	_, err := hf.Summarize(context.Background(), SummaryRequest{Text: "x"})
	if err == nil || !strings.Contains(err.Error(), "Model is currently loading") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestHuggingFaceRejectsEmptyOutput(t *testing.T) {
	srv := newHFServer(t, func(*testing.T, hfRequest) (int, string) {
		return http.StatusOK, `[]`
	})
	defer srv.Close()

	hf := buildHF(t, srv, "")
	if _, err := hf.Translate(context.Background(), TranslationRequest{Text: "x"}); err == nil {
		t.Fatalf("expected error for empty output list")
	}
}

func TestHuggingFaceHealthProbeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := newHuggingFace(context.Background(), BackendConfig{
		ID: "hf", Type: TypeHuggingFace, Model: "m", Endpoint: srv.URL, HealthPath: "health",
	})
	if err == nil {
		t.Fatalf("expected health probe error")
	}
}

func TestHuggingFaceRequiresConfiguredToken(t *testing.T) {
	t.Setenv("SAMVAD_MISSING_TOKEN", "")
	_, err := newHuggingFace(context.Background(), BackendConfig{
		ID: "hf", Type: TypeHuggingFace, Model: "m", APIKeyEnv: "SAMVAD_MISSING_TOKEN",
	})
	if err == nil {
		t.Fatalf("expected error when token env is unset")
	}
}

func TestHuggingFaceMergesConfigParameters(t *testing.T) {
	srv := newHFServer(t, func(t *testing.T, req hfRequest) (int, string) {
		if req.Parameters["num_beams"] != float64(4) {
			t.Errorf("expected num_beams from config, got %#v", req.Parameters)
		}
		if req.Parameters["do_sample"] != false || req.Parameters["max_length"] != float64(60) {
			t.Errorf("config must not override request parameters, got %#v", req.Parameters)
		}
		return http.StatusOK, `[{"summary_text":"Beam summary."}]`
	})
	defer srv.Close()

	t.Setenv("SAMVAD_HF_TOKEN", "hf-token")
	m, err := newHuggingFace(context.Background(), BackendConfig{
		ID:        "hf",
		Type:      TypeHuggingFace,
		Model:     "facebook/test-model",
		Endpoint:  srv.URL,
		APIKeyEnv: "SAMVAD_HF_TOKEN",
		Config:    map[string]any{"num_beams": 4, "do_sample": true, "max_length": 999},
	})
	if err != nil {
		t.Fatalf("newHuggingFace: %v", err)
	}

	out, err := m.(*huggingFace).Summarize(context.Background(), SummaryRequest{
		Text:   "long text",
		Bounds: domain.Bounds{MaxLength: 60, MinLength: 40},
	})
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	if out != "Beam summary." {
		t.Fatalf("unexpected summary %q", out)
	}
}
