package mcp

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestListOperationsFallsBackToStaticCatalog(t *testing.T) {
	srv := httptest.NewServer(nil)
	srv.Close() // unreachable endpoint

	inv := NewInvoker(NewClient(srv.URL, "tok", testLogger()), testLogger())
	ops := inv.ListOperations(context.Background())
	if len(ops) == 0 {
		t.Fatalf("fallback catalog must not be empty")
	}
	if len(ops) != len(knownOperations) {
		t.Errorf("want the full static catalog, got %d entries", len(ops))
	}
}

func TestListOperationsReturnsRemoteCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeTestRequest(t, r)
		switch req.Method {
		case "initialize":
			writeJSONResult(w, req.ID, `{}`)
		case "operations/list":
			writeJSONResult(w, req.ID, `{"operations":[{"name":"remote_op","description":"from the gateway"}]}`)
		default:
			t.Errorf("unexpected method %q", req.Method)
		}
	}))
	defer srv.Close()

	inv := NewInvoker(NewClient(srv.URL, "tok", testLogger()), testLogger())
	ops := inv.ListOperations(context.Background())
	if len(ops) != 1 || ops[0].Name != "remote_op" {
		t.Fatalf("want the remote catalog, got %+v", ops)
	}
}

func TestCallOperationPropagatesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeTestRequest(t, r)
		if req.Method == "initialize" {
			writeJSONResult(w, req.ID, `{}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"jsonrpc":"2.0","id":%d,"error":{"code":-32602,"message":"unknown operation"}}`, req.ID)
	}))
	defer srv.Close()

	inv := NewInvoker(NewClient(srv.URL, "tok", testLogger()), testLogger())
	_, err := inv.CallOperation(context.Background(), "nope", nil)
	if err == nil {
		t.Fatalf("call path must propagate errors")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error should carry the operation name for context, got %q", err)
	}
}

func TestCallOperationReturnsResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := decodeTestRequest(t, r)
		if req.Method == "initialize" {
			writeJSONResult(w, req.ID, `{}`)
			return
		}
		if req.Method != "operations/call" {
			t.Errorf("want operations/call, got %q", req.Method)
		}
		writeJSONResult(w, req.ID, `{"items":[]}`)
	}))
	defer srv.Close()

	inv := NewInvoker(NewClient(srv.URL, "tok", testLogger()), testLogger())
	raw, err := inv.CallOperation(context.Background(), "search_items", map[string]any{"query": "punk"})
	if err != nil {
		t.Fatalf("call: %s", err)
	}
	if !strings.Contains(string(raw), "items") {
		t.Errorf("unexpected result payload %s", raw)
	}
}
