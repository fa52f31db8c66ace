package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Gappu824/aura-ai-hackathon/internal/domain"
)

// errorFields is the part of any backend body that can describe a failure.
type errorFields struct {
	Error   json.RawMessage `json:"error"`
	Detail  json.RawMessage `json:"detail"`
	Message json.RawMessage `json:"message"`
}

// reply is a decoded 2xx body: either a value or the backend's embedded error.
type reply[T any] struct {
	value   T
	failure string
}

func (r reply[T]) result() (T, error) {
	if r.failure != "" {
		var zero T
		return zero, domain.ApplicationError(200, r.failure)
	}
	return r.value, nil
}

// decodeReply classifies a 2xx body. A non-empty "error" field wins over any
// payload; a body that is not JSON is a transport failure.
func decodeReply[T any](body []byte) (reply[T], error) {
	var fields errorFields
	if err := json.Unmarshal(body, &fields); err != nil {
		return reply[T]{}, domain.TransportError(fmt.Sprintf("malformed response: %v", err), err)
	}
	if msg := fieldText(fields.Error); msg != "" {
		return reply[T]{failure: msg}, nil
	}

	var value T
	if err := json.Unmarshal(body, &value); err != nil {
		return reply[T]{}, domain.TransportError(fmt.Sprintf("malformed response: %v", err), err)
	}
	return reply[T]{value: value}, nil
}

// errorMessage extracts the failure description of a non-2xx body, in priority
// order error, detail, message, then a synthesized status string.
func errorMessage(body []byte, status int) string {
	var fields errorFields
	if err := json.Unmarshal(body, &fields); err != nil {
		return statusMessage(status)
	}
	for _, raw := range []json.RawMessage{fields.Error, fields.Detail, fields.Message} {
		if msg := fieldText(raw); msg != "" {
			return msg
		}
	}
	return statusMessage(status)
}

func statusMessage(status int) string {
	return fmt.Sprintf("HTTP status %d", status)
}

// fieldText renders one error field. Any non-empty string counts as present and
// is returned as sent; null, false and "" count as absent; anything else
// (FastAPI validation arrays) becomes compact JSON.
func fieldText(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	switch string(trimmed) {
	case "null", "false", `""`:
		return ""
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, trimmed); err != nil {
		return string(trimmed)
	}
	return buf.String()
}
