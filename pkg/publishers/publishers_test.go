package publishers

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "publishers.yaml")
	raw := `
publishers:
  - id: http1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: http2
    type: http
    enabled: true
    http:
      url: https://example.com/2
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "http2" {
		t.Fatalf("expected only http2 enabled, got %#v", enabled)
	}
}

func TestValidatePublisherConfigRejectsMissingHTTP(t *testing.T) {
	err := validatePublisherConfig(PublisherConfig{
		ID:   "h1",
		Type: TypeHTTP,
	})
	if err == nil {
		t.Fatalf("expected validation error for missing http block")
	}
}

func TestValidatePublisherConfigCloudSinks(t *testing.T) {
	cases := map[string]PublisherConfig{
		"sns missing block":    {ID: "s", Type: TypeSNS},
		"sns missing arn":      {ID: "s", Type: TypeSNS, SNS: &SNSPublisherConfig{Region: "ap-south-1"}},
		"pubsub missing topic": {ID: "p", Type: TypePubSub, PubSub: &PubSubPublisherConfig{ProjectID: "proj"}},
		"half credentials": {ID: "q", Type: TypeSQS, SQS: &SQSPublisherConfig{
			QueueURL: "https://q", Region: "ap-south-1", Credentials: AWSCredentials{AccessKeyEnv: "K"},
		}},
	}
	for name, cfg := range cases {
		if err := validatePublisherConfig(cfg); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}

	ok := PublisherConfig{ID: "p", Type: TypePubSub, PubSub: &PubSubPublisherConfig{ProjectID: "proj", Topic: "t"}}
	if err := validatePublisherConfig(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestLoadRegistryParsesAllSinkTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publishers.yml")
	raw := `
publishers:
  - id: hook
    type: HTTP
    http:
      url: " https://example.com/hook "
  - id: queue
    type: sqs
    sqs:
      uri: https://sqs.ap-south-1.amazonaws.com/1/summaries
      region: ap-south-1
  - id: topic
    type: sns
    sns:
      topic_arn: arn:aws:sns:ap-south-1:1:summaries
      region: ap-south-1
  - id: ps
    type: pubsub
    pubsub:
      project_id: samvad
      topic: summaries
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	hook, ok := reg.ByID("hook")
	if !ok || hook.Type != TypeHTTP || hook.HTTP.URL != "https://example.com/hook" || hook.HTTP.Method != "POST" {
		t.Fatalf("http entry not sanitized: %#v", hook)
	}
	if len(reg.Enabled()) != 4 {
		t.Fatalf("expected all four publishers enabled")
	}
}
