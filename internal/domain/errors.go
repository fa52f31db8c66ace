package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why an analysis operation failed.
type ErrorKind string

const (
	// KindConfiguration means the backend address is missing or unusable.
	KindConfiguration ErrorKind = "configuration"
	// KindTransport covers network failures and responses that could not be decoded.
	KindTransport ErrorKind = "transport"
	// KindApplication means the backend answered with a non-2xx status or an explicit error field.
	KindApplication ErrorKind = "application"
)

func (k ErrorKind) String() string { return string(k) }

// OperationError is the single normalized failure surfaced to front ends.
type OperationError struct {
	Kind    ErrorKind
	Message string
	// Status is the HTTP status for application failures, 0 otherwise.
	Status int
	Err    error
}

func (e *OperationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func (e *OperationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ConfigurationError builds a configuration failure.
func ConfigurationError(msg string, err error) *OperationError {
	return &OperationError{Kind: KindConfiguration, Message: msg, Err: err}
}

// TransportError builds a transport failure.
func TransportError(msg string, err error) *OperationError {
	return &OperationError{Kind: KindTransport, Message: msg, Err: err}
}

// ApplicationError builds an application failure reported by the backend.
func ApplicationError(status int, msg string) *OperationError {
	return &OperationError{Kind: KindApplication, Message: msg, Status: status}
}

// KindOf returns the kind of an OperationError anywhere in err's chain.
func KindOf(err error) (ErrorKind, bool) {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return opErr.Kind, true
	}
	return "", false
}

// ValidationError is a local rejection of input; it never reaches the network.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
