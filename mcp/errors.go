package mcp

import (
	"errors"
	"fmt"
)

// ConfigError reports a static misconfiguration (typically a missing gateway
// token). It is surfaced immediately and never retried: no amount of
// reconnecting fixes an unset env var.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("gateway not configured: %s", e.Reason)
}

// ProtocolError is a well-formed response carrying an explicit error object.
// It is always fatal for the call that triggered it and never silently
// swallowed.
type ProtocolError struct {
	Code    int
	Message string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("gateway error %d: %s", e.Code, e.Message)
}

// ErrNoMatchingResponse means an event-stream body was exhausted without any
// envelope matching the request id. Fatal for operation calls, since a call
// must not be assumed successful without evidence. The handshake tolerates
// it because some servers omit the initialize result on success.
var ErrNoMatchingResponse = errors.New("no envelope matched the request id")
