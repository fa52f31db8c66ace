package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gappu824/aura-ai-hackathon/internal/domain"
	"github.com/Gappu824/aura-ai-hackathon/pkg/httpclient"
)

// countingHTTPClient fails the test if any request is attempted.
type countingHTTPClient struct {
	calls int
}

func (c *countingHTTPClient) Get(context.Context, string, map[string]string) (httpclient.Response, error) {
	c.calls++
	return nil, errors.New("unexpected call")
}

func (c *countingHTTPClient) PostJSON(context.Context, string, any, map[string]string) (httpclient.Response, error) {
	c.calls++
	return nil, errors.New("unexpected call")
}

// erroringHTTPClient returns a fixed transport error.
type erroringHTTPClient struct {
	err error
}

func (e erroringHTTPClient) Get(context.Context, string, map[string]string) (httpclient.Response, error) {
	return nil, e.err
}

func (e erroringHTTPClient) PostJSON(context.Context, string, any, map[string]string) (httpclient.Response, error) {
	return nil, e.err
}

type emptyErr struct{}

func (emptyErr) Error() string { return "" }

func newBackend(t *testing.T, path string, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != path {
			t.Errorf("expected path %s, got %s", path, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func requireOpError(t *testing.T, err error, kind domain.ErrorKind, msg string) *domain.OperationError {
	t.Helper()
	var opErr *domain.OperationError
	if !errors.As(err, &opErr) {
		t.Fatalf("expected OperationError, got %T %v", err, err)
	}
	if opErr.Kind != kind {
		t.Fatalf("kind = %s want %s (msg %q)", opErr.Kind, kind, opErr.Message)
	}
	if msg != "" && opErr.Message != msg {
		t.Fatalf("message = %q want %q", opErr.Message, msg)
	}
	return opErr
}

func TestRequestClarityAlertSuccess(t *testing.T) {
	var received clarityRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/generate_clarity_alert" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = io.WriteString(w, `{"clarity_alert": "Multiple reviewers report sizing runs small."}`)
	}))
	defer srv.Close()

	batch := domain.ReviewBatch{"too small", "runs small", "perfect fit"}
	res, err := New(srv.URL).RequestClarityAlert(context.Background(), batch)
	if err != nil {
		t.Fatalf("RequestClarityAlert: %v", err)
	}
	alert, ok := res.Alert()
	if !ok || alert != "Multiple reviewers report sizing runs small." {
		t.Fatalf("unexpected alert %q ok=%v", alert, ok)
	}
	if len(received.Reviews) != 3 || received.Reviews[2] != "perfect fit" {
		t.Fatalf("unexpected request body %#v", received)
	}
}

func TestRequestClarityAlertNoAlertVariants(t *testing.T) {
	for _, body := range []string{`{"clarity_alert": null}`, `{}`, `{"clarity_alert": "  "}`, `{"clarity_alert": "NO_ALERT"}`} {
		srv := newBackend(t, "/api/v1/generate_clarity_alert", http.StatusOK, body)
		res, err := New(srv.URL).RequestClarityAlert(context.Background(), domain.ReviewBatch{"fine"})
		if err != nil {
			t.Fatalf("body %s: unexpected error %v", body, err)
		}
		if res.HasAlert() {
			t.Fatalf("body %s: expected no-alert variant", body)
		}
	}
}

func TestEmbeddedErrorOn200IsFailure(t *testing.T) {
	srv := newBackend(t, "/api/v1/generate_clarity_alert", http.StatusOK, `{"error": "E", "clarity_alert": "ignored"}`)
	_, err := New(srv.URL).RequestClarityAlert(context.Background(), domain.ReviewBatch{"x"})
	requireOpError(t, err, domain.KindApplication, "E")

	srv = newBackend(t, "/api/v1/analyze_review_authenticity", http.StatusOK,
		`{"error": "Model returned malformed JSON.", "raw_output": "???"}`)
	_, err = New(srv.URL).RequestAuthenticityAnalysis(context.Background(), "a review")
	requireOpError(t, err, domain.KindApplication, "Model returned malformed JSON.")
}

func TestWhitespaceEmbeddedErrorOn200IsFailure(t *testing.T) {
	srv := newBackend(t, "/api/v1/analyze_review_authenticity", http.StatusOK,
		`{"error": "  ", "authenticity_score": 0.5, "reasoning": "r"}`)
	res, err := New(srv.URL).RequestAuthenticityAnalysis(context.Background(), "a review")
	requireOpError(t, err, domain.KindApplication, "  ")
	if res != (domain.AuthenticityResult{}) {
		t.Fatalf("failure must not carry a result, got %#v", res)
	}
}

func TestClarityAlertIsReturnedAsSent(t *testing.T) {
	srv := newBackend(t, "/api/v1/generate_clarity_alert", http.StatusOK, `{"clarity_alert": "Runs small.\n"}`)
	res, err := New(srv.URL).RequestClarityAlert(context.Background(), domain.ReviewBatch{"x"})
	if err != nil {
		t.Fatalf("RequestClarityAlert: %v", err)
	}
	if alert, ok := res.Alert(); !ok || alert != "Runs small.\n" {
		t.Fatalf("alert = %q ok=%v", alert, ok)
	}

	srv = newBackend(t, "/api/v1/generate_clarity_alert", http.StatusOK, `{"clarity_alert": " NO_ALERT\n"}`)
	res, err = New(srv.URL).RequestClarityAlert(context.Background(), domain.ReviewBatch{"x"})
	if err != nil || res.HasAlert() {
		t.Fatalf("padded sentinel should mean no alert, got %#v err=%v", res, err)
	}
}

func TestNon2xxWithUnparsableBodyUsesStatus(t *testing.T) {
	srv := newBackend(t, "/api/v1/analyze_review_authenticity", http.StatusBadGateway, `<html>Bad Gateway</html>`)
	_, err := New(srv.URL).RequestAuthenticityAnalysis(context.Background(), "a review")
	opErr := requireOpError(t, err, domain.KindApplication, "HTTP status 502")
	if opErr.Status != http.StatusBadGateway {
		t.Fatalf("status = %d", opErr.Status)
	}
}

func TestNon2xxErrorFieldPriority(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"error": "E", "detail": "D", "message": "M"}`, "E"},
		{`{"detail": "D", "message": "M"}`, "D"},
		{`{"message": "M"}`, "M"},
		{`{"error": "", "detail": null, "message": "M"}`, "M"},
		{`{"error": "  ", "detail": "D"}`, "  "},
		{`{"detail": [{"loc": ["body", "reviews"], "msg": "field required"}]}`, `[{"loc":["body","reviews"],"msg":"field required"}]`},
		{`{"unrelated": true}`, "HTTP status 500"},
	}
	for _, tc := range cases {
		srv := newBackend(t, "/api/v1/generate_clarity_alert", http.StatusInternalServerError, tc.body)
		_, err := New(srv.URL).RequestClarityAlert(context.Background(), domain.ReviewBatch{"x"})
		requireOpError(t, err, domain.KindApplication, tc.want)
	}
}

func TestRequestAuthenticityAnalysisReturnsVerbatim(t *testing.T) {
	srv := newBackend(t, "/api/v1/analyze_review_authenticity", http.StatusOK,
		`{"authenticity_score": 1.7, "reasoning": "Specific details."}`)
	res, err := New(srv.URL).RequestAuthenticityAnalysis(context.Background(), "I used it for two weeks.")
	if err != nil {
		t.Fatalf("RequestAuthenticityAnalysis: %v", err)
	}
	if res.Score != 1.7 || res.Reasoning != "Specific details." {
		t.Fatalf("unexpected result %#v", res)
	}
}

func TestMalformedSuccessBodyIsTransport(t *testing.T) {
	srv := newBackend(t, "/api/v1/analyze_review_authenticity", http.StatusOK, `not json`)
	_, err := New(srv.URL).RequestAuthenticityAnalysis(context.Background(), "x")
	opErr := requireOpError(t, err, domain.KindTransport, "")
	if !strings.HasPrefix(opErr.Message, "malformed response") {
		t.Fatalf("unexpected message %q", opErr.Message)
	}
}

func TestEmptyInputNeverReachesNetwork(t *testing.T) {
	hc := &countingHTTPClient{}
	c := New("https://api.example.com", WithHTTPClient(hc))

	if _, err := c.RequestAuthenticityAnalysis(context.Background(), "   "); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := c.RequestClarityAlert(context.Background(), domain.ReviewBatch{" \t"}); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := c.RequestClarityAlert(context.Background(), nil); !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if hc.calls != 0 {
		t.Fatalf("expected no network calls, got %d", hc.calls)
	}
}

func TestMissingBaseURLIsConfigurationError(t *testing.T) {
	for _, base := range []string{"", "   ", "not a url", "/relative/only"} {
		hc := &countingHTTPClient{}
		c := New(base, WithHTTPClient(hc))

		_, err := c.RequestClarityAlert(context.Background(), domain.ReviewBatch{"x"})
		requireOpError(t, err, domain.KindConfiguration, "")
		_, err = c.RequestAuthenticityAnalysis(context.Background(), "x")
		requireOpError(t, err, domain.KindConfiguration, "")

		if hc.calls != 0 {
			t.Fatalf("base %q: expected no I/O, got %d calls", base, hc.calls)
		}
	}
}

func TestTransportFailures(t *testing.T) {
	c := New("https://api.example.com", WithHTTPClient(erroringHTTPClient{err: errors.New("dial tcp: connection refused")}))
	_, err := c.RequestClarityAlert(context.Background(), domain.ReviewBatch{"x"})
	opErr := requireOpError(t, err, domain.KindTransport, "dial tcp: connection refused")
	if opErr.Unwrap() == nil {
		t.Fatalf("expected underlying error to be kept")
	}

	c = New("https://api.example.com", WithHTTPClient(erroringHTTPClient{err: emptyErr{}}))
	_, err = c.RequestAuthenticityAnalysis(context.Background(), "x")
	requireOpError(t, err, domain.KindTransport, "network error")
}

func TestBasePathPrefixIsKept(t *testing.T) {
	srv := newBackend(t, "/prod/api/v1/analyze_review_authenticity", http.StatusOK,
		`{"authenticity_score": 0.4, "reasoning": "ok"}`)
	if _, err := New(srv.URL+"/prod/").RequestAuthenticityAnalysis(context.Background(), "x"); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestStaticHeadersAreSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Api-Key"); got != "k" {
			t.Errorf("missing header, got %q", got)
		}
		_, _ = io.WriteString(w, `{"clarity_alert": null}`)
	}))
	defer srv.Close()

	c := New(srv.URL, WithHeaders(map[string]string{"X-Api-Key": "k"}))
	if _, err := c.RequestClarityAlert(context.Background(), domain.ReviewBatch{"x"}); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}
