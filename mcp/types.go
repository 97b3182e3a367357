package mcp

import (
	"encoding/json"
	"fmt"
)

// jsonrpcVersion is the only protocol version the gateway dialect speaks.
const jsonrpcVersion = "2.0"

// request is the JSON-RPC 2.0 envelope Seer sends. Ids are always numeric
// and assigned by the client from a monotonic counter; responses are
// correlated by id, never by arrival order.
type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int64  `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// RPCError is the error object of a JSON-RPC response.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Envelope is one decoded JSON-RPC response. Decoding validates the version
// string and that exactly one of Result/Error is present, so downstream code
// never reads a field that was never validated.
type Envelope struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      *int64          `json:"id,omitempty"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

func (e *Envelope) UnmarshalJSON(data []byte) error {
	type raw Envelope
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if r.JSONRPC != jsonrpcVersion {
		return fmt.Errorf("invalid JSON-RPC version: expected %q, got %q", jsonrpcVersion, r.JSONRPC)
	}
	hasResult := len(r.Result) > 0
	if hasResult && r.Error != nil {
		return fmt.Errorf("response cannot carry both result and error")
	}
	if !hasResult && r.Error == nil {
		return fmt.Errorf("response carries neither result nor error")
	}
	*e = Envelope(r)
	return nil
}

// Matches reports whether the envelope answers the request with the given id.
func (e *Envelope) Matches(id int64) bool {
	return e.ID != nil && *e.ID == id
}
