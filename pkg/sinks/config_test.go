package sinks

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadRegistryEnabledFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sinks.yaml")
	raw := `
sinks:
  - id: hook1
    type: http
    enabled: false
    http:
      url: https://example.com
  - id: hook2
    type: HTTP
    http:
      url: " https://example.com/2 "
      headers:
        X-Empty: ""
  - id: queue
    type: sqs
    sqs:
      uri: https://sqs.example.com/queue
      region: us-east-1
      credentials:
        access_key_id: AKID
`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	reg, err := LoadRegistry(path)
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	enabled := reg.Enabled()
	if len(enabled) != 2 || enabled[0].ID != "hook2" {
		t.Fatalf("unexpected enabled sinks %#v", enabled)
	}

	hook, ok := reg.ByID("hook2")
	if !ok {
		t.Fatalf("expected hook2 in registry")
	}
	if hook.Type != TypeHTTP || hook.HTTP.URL != "https://example.com/2" {
		t.Fatalf("expected sanitized http config, got %#v", hook.HTTP)
	}
	if hook.HTTP.Method != "POST" || hook.HTTP.TimeoutSeconds != 5 || hook.HTTP.Headers != nil {
		t.Fatalf("expected http defaults, got %#v", hook.HTTP)
	}

	queue, _ := reg.ByID("queue")
	if queue.SQS.Credentials != nil {
		t.Fatalf("expected incomplete credentials to be dropped")
	}
}

func TestLoadRegistryMissingFile(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("LoadRegistry: %v", err)
	}
	if len(reg.All()) != 0 {
		t.Fatalf("expected empty registry")
	}

	fanout, err := LoadFanout(context.Background(), "", nil)
	if err != nil || fanout.Size() != 0 {
		t.Fatalf("LoadFanout = %v, %v", fanout, err)
	}
}

func TestLoadRegistryRejectsDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sinks.json")
	raw := `{"sinks": [
		{"id": "a", "type": "http", "http": {"url": "https://a"}},
		{"id": "a", "type": "http", "http": {"url": "https://b"}}
	]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if _, err := LoadRegistry(path); err == nil {
		t.Fatalf("expected duplicate id error")
	}
}

func TestValidateConfig(t *testing.T) {
	cases := []Config{
		{Type: TypeHTTP},
		{ID: "h1", Type: TypeHTTP},
		{ID: "q1", Type: TypeSQS, SQS: &SQSSinkConfig{QueueURL: "https://q"}},
		{ID: "t1", Type: TypeSNS, SNS: &SNSSinkConfig{Region: "us-east-1"}},
		{ID: "p1", Type: TypePubSub, PubSub: &PubSubSinkConfig{ProjectID: "proj"}},
	}
	for _, cfg := range cases {
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("expected validation error for %#v", cfg)
		}
	}
}
