package analysis

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Gappu824/aura-ai-hackathon/internal/domain"
	"github.com/Gappu824/aura-ai-hackathon/internal/logger"
	"github.com/Gappu824/aura-ai-hackathon/pkg/httpclient"
)

// Package analysis is the HTTP client for the review analysis backend.

const (
	// ClarityPath is the clarity alert endpoint, relative to the base address.
	ClarityPath = "api/v1/generate_clarity_alert"
	// AuthenticityPath is the authenticity endpoint, relative to the base address.
	AuthenticityPath = "api/v1/analyze_review_authenticity"

	// noAlertSentinel is what the clarity model emits when there is no dominant theme.
	noAlertSentinel = "NO_ALERT"
	networkErrorMsg = "network error"
)

// Client performs the two analysis operations against one backend.
type Client struct {
	baseURL string
	http    httpclient.Client
	headers map[string]string
	log     logger.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the transport, mainly for tests.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for per-call outcomes.
func WithLogger(log logger.Logger) Option {
	return func(c *Client) { c.log = logger.Ensure(log) }
}

// WithHeaders adds static headers to every request.
func WithHeaders(headers map[string]string) Option {
	return func(c *Client) {
		if len(headers) == 0 {
			return
		}
		c.headers = make(map[string]string, len(headers))
		for k, v := range headers {
			c.headers[k] = v
		}
	}
}

// WithTimeout builds the default transport with a client-side timeout. Zero
// keeps the transport defaults.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.http = httpclient.NewRestyClient(timeout) }
}

// New returns a client for the backend at baseURL. An empty baseURL is allowed;
// every call then fails with a configuration error before any I/O.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSpace(baseURL),
		log:     logger.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(0)
	}
	return c
}

// BaseURL returns the configured backend address.
func (c *Client) BaseURL() string { return c.baseURL }

type clarityRequest struct {
	Reviews []string `json:"reviews"`
}

type authenticityRequest struct {
	ReviewText string `json:"review_text"`
}

type clarityReply struct {
	ClarityAlert *string `json:"clarity_alert"`
}

// RequestClarityAlert asks the backend to summarize a batch of reviews.
func (c *Client) RequestClarityAlert(ctx context.Context, batch domain.ReviewBatch) (domain.ClarityResult, error) {
	if err := batch.Validate(); err != nil {
		return domain.NoClarityAlert(), err
	}

	body, err := c.post(ctx, ClarityPath, clarityRequest{Reviews: []string(batch)})
	if err != nil {
		return domain.NoClarityAlert(), err
	}

	rep, err := decodeReply[clarityReply](body)
	if err != nil {
		return domain.NoClarityAlert(), c.fail(ClarityPath, err)
	}
	wire, err := rep.result()
	if err != nil {
		return domain.NoClarityAlert(), c.fail(ClarityPath, err)
	}

	result := clarityFromWire(wire)
	c.log.DebugObj("clarity alert received", "analysis_call", map[string]any{
		"endpoint":  ClarityPath,
		"reviews":   len(batch),
		"has_alert": result.HasAlert(),
	})
	return result, nil
}

// RequestAuthenticityAnalysis asks the backend to score one review. Score and
// reasoning are returned exactly as sent; the range is not checked here.
func (c *Client) RequestAuthenticityAnalysis(ctx context.Context, review domain.SingleReview) (domain.AuthenticityResult, error) {
	if err := review.Validate(); err != nil {
		return domain.AuthenticityResult{}, err
	}

	body, err := c.post(ctx, AuthenticityPath, authenticityRequest{ReviewText: string(review)})
	if err != nil {
		return domain.AuthenticityResult{}, err
	}

	rep, err := decodeReply[domain.AuthenticityResult](body)
	if err != nil {
		return domain.AuthenticityResult{}, c.fail(AuthenticityPath, err)
	}
	result, err := rep.result()
	if err != nil {
		return domain.AuthenticityResult{}, c.fail(AuthenticityPath, err)
	}

	c.log.DebugObj("authenticity analysis received", "analysis_call", map[string]any{
		"endpoint": AuthenticityPath,
		"score":    result.Score,
	})
	return result, nil
}

// post sends payload to path and returns the body of a 2xx response. Every
// failure comes back as a *domain.OperationError.
func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	endpoint, err := c.endpoint(path)
	if err != nil {
		return nil, c.fail(path, err)
	}

	resp, err := c.http.PostJSON(ctx, endpoint, payload, c.headers)
	if err != nil {
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			msg = networkErrorMsg
		}
		return nil, c.fail(path, domain.TransportError(msg, err))
	}
	if resp == nil {
		return nil, c.fail(path, domain.TransportError(networkErrorMsg, nil))
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		return nil, c.fail(path, domain.ApplicationError(status, errorMessage(resp.Body(), status)))
	}
	return resp.Body(), nil
}

func (c *Client) endpoint(path string) (string, error) {
	if c.baseURL == "" {
		return "", domain.ConfigurationError("backend API URL is not configured", nil)
	}
	base, err := url.Parse(c.baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return "", domain.ConfigurationError(fmt.Sprintf("backend API URL %q is not an absolute URL", c.baseURL), err)
	}
	return base.JoinPath(path).String(), nil
}

func (c *Client) fail(path string, err error) error {
	kind, _ := domain.KindOf(err)
	c.log.WarnObj("analysis request failed", "analysis_error", map[string]any{
		"endpoint": path,
		"kind":     kind.String(),
		"error":    err.Error(),
	})
	return err
}

func clarityFromWire(wire clarityReply) domain.ClarityResult {
	if wire.ClarityAlert == nil {
		return domain.NoClarityAlert()
	}
	if trimmed := strings.TrimSpace(*wire.ClarityAlert); trimmed == "" || trimmed == noAlertSentinel {
		return domain.NoClarityAlert()
	}
	return domain.NewClarityAlert(*wire.ClarityAlert)
}
