package publishers

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, raw string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	return path
}

func TestLoadFileEnabledAndDefaults(t *testing.T) {
	path := writeFile(t, "publishers.yaml", `
publishers:
  - id: audit
    type: http
    enabled: false
    http:
      url: https://example.com/audit
  - id: " hook "
    type: HTTP
    http:
      url: https://example.com/hook
      headers:
        X-Source: cli
        " ": dropped
`)

	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	enabled := f.Enabled()
	if len(enabled) != 1 || enabled[0].ID != "hook" {
		t.Fatalf("expected only hook enabled, got %#v", enabled)
	}

	cfg := enabled[0]
	if cfg.Type != TypeHTTP || cfg.HTTP.Method != httpDefaultMethod || cfg.HTTP.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("defaults not applied: %#v", cfg.HTTP)
	}
	if len(cfg.HTTP.Headers) != 1 || cfg.HTTP.Headers["X-Source"] != "cli" {
		t.Fatalf("headers = %#v", cfg.HTTP.Headers)
	}
}

func TestLoadFileJSONRejectsDuplicates(t *testing.T) {
	path := writeFile(t, "publishers.json", `{"publishers":[
		{"id":"a","type":"sns","sns":{"topic_arn":"arn","region":"ap-east-1"}},
		{"id":"a","type":"sns","sns":{"topic_arn":"arn","region":"ap-east-1"}}
	]}`)
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestLoadFileUnknownExtension(t *testing.T) {
	path := writeFile(t, "publishers.conf", `{"publishers":[{"id":"h","type":"http","http":{"url":"https://example.com"}}]}`)
	f, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(f.Publishers) != 1 || f.Publishers[0].ID != "h" {
		t.Fatalf("entry not loaded: %#v", f.Publishers)
	}
}

func TestValidateReportsMissingFields(t *testing.T) {
	cases := []struct {
		cfg  PublisherConfig
		want string
	}{
		{PublisherConfig{ID: "h1", Type: TypeHTTP}, "http block"},
		{PublisherConfig{ID: "q1", Type: TypeSQS, SQS: &SQSPublisherConfig{QueueURL: "u"}}, "sqs.region"},
		{PublisherConfig{ID: "s1", Type: TypeSNS, SNS: &SNSPublisherConfig{}}, "sns.topic_arn, sns.region"},
		{PublisherConfig{ID: "p1", Type: TypePubSub, PubSub: &PubSubPublisherConfig{ProjectID: "p"}}, "pubsub.topic"},
		{PublisherConfig{Type: TypeHTTP}, "id is required"},
		{PublisherConfig{ID: "t"}, "no type"},
		{PublisherConfig{ID: "k", Type: "kafka"}, "unknown type"},
	}
	for _, tc := range cases {
		err := tc.cfg.validate()
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("validate(%#v) = %v, want %q", tc.cfg, err, tc.want)
		}
	}
}

func TestFromFileEmptyPath(t *testing.T) {
	fanout, err := FromFile(context.Background(), "  ", nil)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if fanout.Size() != 0 {
		t.Fatalf("expected empty fanout, got %d", fanout.Size())
	}
}

func TestFromFileBuildsEnabled(t *testing.T) {
	path := writeFile(t, "publishers.yml", `
publishers:
  - id: hook
    type: http
    http:
      url: https://example.com/hook
`)
	fanout, err := FromFile(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if fanout.Size() != 1 {
		t.Fatalf("Size = %d", fanout.Size())
	}
}
