package sinks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Gappu824/aura-ai-hackathon/internal/logger"
	"github.com/Gappu824/aura-ai-hackathon/pkg/httpclient"
	"github.com/go-resty/resty/v2"
)

// Headers set on every webhook delivery, mirroring Event.Attributes.
const (
	HeaderEventID   = "X-Aura-Event-Id"
	HeaderSlot      = "X-Aura-Slot"
	HeaderOperation = "X-Aura-Operation"
	HeaderOutcome   = "X-Aura-Outcome"
)

const maxErrorBody = 512

// webhookSink POSTs (or PUTs) each event as JSON to a fixed URL.
type webhookSink struct {
	id     string
	target HTTPSinkConfig
	client *resty.Client
	log    logger.Logger
}

func newHTTPSink(_ context.Context, cfg Config, log logger.Logger) (Sink, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("sink %q missing http configuration", cfg.ID)
	}
	target := *cfg.HTTP
	if target.Method == "" {
		target.Method = httpDefaultMethod
	}
	if target.TimeoutSeconds <= 0 {
		target.TimeoutSeconds = httpDefaultTimeoutSeconds
	}

	return &webhookSink{
		id:     cfg.ID,
		target: target,
		client: httpclient.NewRestyHTTPClient(time.Duration(target.TimeoutSeconds) * time.Second),
		log:    logger.Ensure(log),
	}, nil
}

func (w *webhookSink) ID() string   { return w.id }
func (w *webhookSink) Type() string { return TypeHTTP }

func (w *webhookSink) Publish(ctx context.Context, evt Event) error {
	resp, err := w.request(ctx, evt).Execute(w.target.Method, w.target.URL)
	if err != nil {
		return fmt.Errorf("deliver event %s to %s: %w", evt.ID, w.id, err)
	}
	if resp.IsError() {
		return fmt.Errorf("webhook %s answered %d: %s", w.id, resp.StatusCode(), errorBody(resp.Body()))
	}

	w.log.DebugObj("webhook delivered event", "sink_http_delivery", map[string]any{
		"sink_id":  w.id,
		"event_id": evt.ID,
		"slot":     evt.Slot,
		"status":   resp.StatusCode(),
	})
	return nil
}

// request builds the delivery; configured headers may not override the event headers.
func (w *webhookSink) request(ctx context.Context, evt Event) *resty.Request {
	req := w.client.R().SetContext(ctx)
	if len(w.target.Headers) > 0 {
		req.SetHeaders(w.target.Headers)
	}
	return req.
		SetHeader("Content-Type", "application/json").
		SetHeader(HeaderEventID, evt.ID).
		SetHeader(HeaderSlot, evt.Slot).
		SetHeader(HeaderOperation, evt.Operation).
		SetHeader(HeaderOutcome, evt.Outcome).
		SetBody(evt)
}

func errorBody(body []byte) string {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	return strings.TrimSpace(string(body))
}
