package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	protocolVersion = "2025-03-26"
	clientName      = "seer"
	clientVersion   = "0.1.0"

	// sessionHeader carries the server-assigned session id. The server hands
	// it out on the handshake response; the client echoes it on every
	// subsequent request. Some deployments omit it entirely.
	sessionHeader = "Mcp-Session-Id"

	requestTimeout = 30 * time.Second
)

// Client owns one logical session to the marketplace data gateway: it
// performs the handshake, correlates JSON-RPC responses by id, and decodes
// single-document as well as event-stream reply bodies.
//
// A Client is safe for use from multiple goroutines, but holds at most one
// session at a time. It performs no retries of its own, retry policy
// belongs to callers.
type Client struct {
	endpoint string
	token    string
	hc       *http.Client
	log      *slog.Logger

	mu        sync.Mutex
	sessionID string
	connected bool
	nextID    int64
}

// NewClient creates a client for the given gateway endpoint. The token may
// be empty; connecting then fails with *ConfigError so that callers with a
// safe fallback (operation listing) can degrade instead of crash.
func NewClient(endpoint, token string, log *slog.Logger) *Client {
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		endpoint: endpoint,
		token:    token,
		hc:       &http.Client{Timeout: requestTimeout},
		log:      log.With("gateway_client", uuid.NewString()[:8]),
	}
}

// Connect performs the handshake if no session is established yet.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connectLocked(ctx)
}

func (c *Client) connectLocked(ctx context.Context) error {
	if c.connected {
		return nil
	}
	if c.token == "" {
		return &ConfigError{Reason: "no gateway access token is set"}
	}

	c.nextID++
	id := c.nextID
	params := map[string]any{
		"protocolVersion": protocolVersion,
		"capabilities":    map[string]any{},
		"clientInfo": map[string]string{
			"name":    clientName,
			"version": clientVersion,
		},
	}
	// The session does not exist yet, so the handshake goes out without the
	// session header.
	resp, err := c.post(ctx, id, "initialize", params, false)
	if err != nil {
		c.failLocked()
		return fmt.Errorf("gateway handshake: %w", err)
	}
	defer resp.Body.Close()

	if sid := resp.Header.Get(sessionHeader); sid != "" {
		c.sessionID = sid
	} else {
		c.log.Debug("handshake response carried no session id header")
	}

	if _, err := decodeBody(resp.Body, resp.Header.Get("Content-Type"), id, true, c.log); err != nil {
		c.failLocked()
		return fmt.Errorf("gateway handshake: %w", err)
	}

	c.connected = true
	c.log.Debug("gateway session established", "has_session_id", c.sessionID != "")
	return nil
}

// Invoke sends one JSON-RPC call and returns the raw result, connecting
// first if needed. The response must contain an envelope matching the
// request id; an event stream without one is ErrNoMatchingResponse.
func (c *Client) Invoke(ctx context.Context, method string, params any) (json.RawMessage, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.connectLocked(ctx); err != nil {
		return nil, err
	}

	c.nextID++
	id := c.nextID
	resp, err := c.post(ctx, id, method, params, true)
	if err != nil {
		// A transport failure invalidates the session; the next call will
		// reconnect. A protocol-level error below does not: the server
		// demonstrably received and answered this call.
		c.failLocked()
		return nil, fmt.Errorf("invoking %s: %w", method, err)
	}
	defer resp.Body.Close()

	result, err := decodeBody(resp.Body, resp.Header.Get("Content-Type"), id, false, c.log)
	if err != nil {
		return nil, fmt.Errorf("invoking %s: %w", method, err)
	}
	return result, nil
}

// Disconnect drops the session state. Idempotent. The dialect has no logout
// call, so nothing is sent to the remote side.
func (c *Client) Disconnect() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.failLocked()
}

// Connected reports whether a session is currently established.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

func (c *Client) failLocked() {
	c.sessionID = ""
	c.connected = false
}

func (c *Client) post(ctx context.Context, id int64, method string, params any, withSession bool) (*http.Response, error) {
	body, err := json.Marshal(request{
		JSONRPC: jsonrpcVersion,
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json, text/event-stream")
	req.Header.Set("Authorization", "Bearer "+c.token)
	if withSession && c.sessionID != "" {
		req.Header.Set(sessionHeader, c.sessionID)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("gateway returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}
	return resp, nil
}
