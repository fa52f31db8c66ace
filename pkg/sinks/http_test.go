package sinks

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gappu824/aura-ai-hackathon/internal/domain"
)

func TestHTTPSinkSuccess(t *testing.T) {
	var got Event
	var gotHeader http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if h := r.Header.Get("X-Test"); h != "1" {
			t.Errorf("missing header, got %s", h)
		}
		gotHeader = r.Header.Clone()
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sink, err := newHTTPSink(context.Background(), Config{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPSinkConfig{
			URL:            srv.URL,
			Method:         http.MethodPut,
			Headers:        map[string]string{"X-Test": "1"},
			TimeoutSeconds: 2,
		},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPSink: %v", err)
	}

	evt := AuthenticityEvent("input_authenticity", domain.AuthenticityResult{Score: 0.87, Reasoning: "specific"})
	if err := sink.Publish(context.Background(), evt); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if got.Slot != "input_authenticity" || got.Outcome != OutcomeSuccess || got.Authenticity == nil || got.Authenticity.Score != 0.87 {
		t.Fatalf("server received %#v", got)
	}
	if gotHeader.Get(HeaderEventID) != evt.ID || gotHeader.Get(HeaderSlot) != "input_authenticity" || gotHeader.Get(HeaderOutcome) != OutcomeSuccess {
		t.Fatalf("missing event headers: %v", gotHeader)
	}
}

func TestHTTPSinkDefaultsUnsetTimeout(t *testing.T) {
	sink, err := newHTTPSink(context.Background(), Config{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPSinkConfig{URL: "http://127.0.0.1:1"},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPSink: %v", err)
	}
	w := sink.(*webhookSink)
	if w.target.Method != httpDefaultMethod || w.target.TimeoutSeconds != httpDefaultTimeoutSeconds {
		t.Fatalf("unexpected target %#v", w.target)
	}
	if w.client.GetClient().Timeout <= 0 {
		t.Fatalf("webhook client must have a timeout")
	}
}

func TestHTTPSinkErrorOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusBadRequest)
	}))
	defer srv.Close()

	sink, err := newHTTPSink(context.Background(), Config{
		ID:   "hook",
		Type: TypeHTTP,
		HTTP: &HTTPSinkConfig{URL: srv.URL, Method: http.MethodPost, TimeoutSeconds: 1},
	}, nil)
	if err != nil {
		t.Fatalf("newHTTPSink: %v", err)
	}
	if err := sink.Publish(context.Background(), Event{}); err == nil {
		t.Fatalf("expected error on non-2xx response")
	}
}
