package publishers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/samvad-hq/samvad-summarizer/internal/logger"
)

type fakeSQSClient struct {
	input *sqs.SendMessageInput
	err   error
}

func (f *fakeSQSClient) SendMessage(_ context.Context, params *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-123")}, nil
}

func TestSQSPublisherSendSuccess(t *testing.T) {
	client := &fakeSQSClient{}
	pub := &sqsPublisher{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   client,
		log:      logger.NopLogger{},
	}

	err := pub.Publish(context.Background(), Event{
		URL:              "https://example.com/a",
		DetectedLanguage: "Tamil",
		Summary:          "summary",
	})
	if err != nil {
		t.Fatalf("Publish returned error: %v", err)
	}
	if client.input == nil {
		t.Fatalf("client was not called")
	}
	if got := aws.ToString(client.input.QueueUrl); got != "https://example.com/queue" {
		t.Fatalf("QueueUrl = %s", got)
	}
	attr, ok := client.input.MessageAttributes["detected_language"]
	if !ok || aws.ToString(attr.StringValue) != "Tamil" || aws.ToString(attr.DataType) != "String" {
		t.Fatalf("detected_language attribute missing or wrong: %#v", attr)
	}
	if !strings.Contains(aws.ToString(client.input.MessageBody), `"url":"https://example.com/a"`) {
		t.Fatalf("MessageBody missing url: %s", aws.ToString(client.input.MessageBody))
	}
}

func TestSQSPublisherSendError(t *testing.T) {
	pub := &sqsPublisher{
		id:       "queue",
		queueURL: "https://example.com/queue",
		client:   &fakeSQSClient{err: errors.New("boom")},
		log:      logger.NopLogger{},
	}

	if err := pub.Publish(context.Background(), Event{URL: "u"}); err == nil {
		t.Fatalf("expected error from Publish")
	}
}

func TestLoadAWSConfigStaticCredentials(t *testing.T) {
	t.Setenv("SAMVAD_TEST_AWS_KEY", "AKIDEXAMPLE")
	t.Setenv("SAMVAD_TEST_AWS_SECRET", "secret")

	cfg, err := loadAWSConfig(context.Background(), "ap-south-1", AWSCredentials{
		AccessKeyEnv: "SAMVAD_TEST_AWS_KEY",
		SecretKeyEnv: "SAMVAD_TEST_AWS_SECRET",
	})
	if err != nil {
		t.Fatalf("loadAWSConfig: %v", err)
	}
	creds, err := cfg.Credentials.Retrieve(context.Background())
	if err != nil {
		t.Fatalf("retrieve credentials: %v", err)
	}
	if creds.AccessKeyID != "AKIDEXAMPLE" || cfg.Region != "ap-south-1" {
		t.Fatalf("unexpected config: %s %s", creds.AccessKeyID, cfg.Region)
	}

	t.Setenv("SAMVAD_TEST_AWS_SECRET", "")
	if _, err := loadAWSConfig(context.Background(), "ap-south-1", AWSCredentials{
		AccessKeyEnv: "SAMVAD_TEST_AWS_KEY",
		SecretKeyEnv: "SAMVAD_TEST_AWS_SECRET",
	}); err == nil {
		t.Fatalf("expected error when secret env is empty")
	}
}
