package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
)

// Operation is one remotely callable operation of the gateway catalog.
type Operation struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Invoker exposes the gateway's operation catalog on top of Client.
//
// Listing absorbs every failure into the static catalog because callers
// always need something to show; calling propagates errors because callers
// must be able to tell success from failure.
type Invoker struct {
	client *Client
	log    *slog.Logger
}

func NewInvoker(client *Client, log *slog.Logger) *Invoker {
	if log == nil {
		log = slog.Default()
	}
	return &Invoker{client: client, log: log}
}

// ListOperations returns the remote catalog, or the static known-operations
// catalog when the gateway cannot be reached. It never returns an error.
func (inv *Invoker) ListOperations(ctx context.Context) []Operation {
	raw, err := inv.client.Invoke(ctx, "operations/list", struct{}{})
	if err != nil {
		inv.log.Warn("operation listing unavailable, serving static catalog", "err", err)
		return KnownOperations()
	}
	var listing struct {
		Operations []Operation `json:"operations"`
	}
	if err := json.Unmarshal(raw, &listing); err != nil {
		inv.log.Warn("operation listing undecodable, serving static catalog", "err", err)
		return KnownOperations()
	}
	if len(listing.Operations) == 0 {
		inv.log.Warn("operation listing empty, serving static catalog")
		return KnownOperations()
	}
	return listing.Operations
}

// CallOperation invokes one named operation with the given arguments and
// returns the raw result payload.
func (inv *Invoker) CallOperation(ctx context.Context, name string, args map[string]any) (json.RawMessage, error) {
	if args == nil {
		args = map[string]any{}
	}
	raw, err := inv.client.Invoke(ctx, "operations/call", map[string]any{
		"name":      name,
		"arguments": args,
	})
	if err != nil {
		return nil, fmt.Errorf("operation %q: %w", name, err)
	}
	return raw, nil
}
