package ens

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
)

const vitalikAddr = "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"

// the mainnet ENS public resolver, used as the fake resolver contract
var testResolverAddr = common.HexToAddress("0x4976fb03C32e5B8cfe2b6cCB31c09Ba78EBaBa41")

// fakeEndpoint serves ABI-encoded ENS answers from in-memory maps, going
// through the same pack/unpack pipeline as the real endpoints but without
// the network.
type fakeEndpoint struct {
	name         string
	fail         error // when set, every call fails with this error
	resolverZero bool  // registry answers with the zero resolver

	names   map[common.Hash]string         // reverse node → name
	addrs   map[common.Hash]common.Address // forward node → address
	texts   map[string]string              // text record key → value
	content []byte

	mu    sync.Mutex
	calls int
}

func (f *fakeEndpoint) Name() string { return f.name }

func (f *fakeEndpoint) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeEndpoint) Call(_ context.Context, to common.Address, data []byte) ([]byte, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()

	if f.fail != nil {
		return nil, f.fail
	}
	sel, args := data[:4], data[4:]
	switch {
	case bytes.Equal(sel, registryABI.Methods["resolver"].ID):
		if to != registryAddress {
			return nil, fmt.Errorf("resolver() sent to %s, not the registry", to.Hex())
		}
		if f.resolverZero {
			return registryABI.Methods["resolver"].Outputs.Pack(common.Address{})
		}
		return registryABI.Methods["resolver"].Outputs.Pack(testResolverAddr)

	case bytes.Equal(sel, resolverABI.Methods["name"].ID):
		vals, err := resolverABI.Methods["name"].Inputs.Unpack(args)
		if err != nil {
			return nil, err
		}
		node := vals[0].([32]byte)
		return resolverABI.Methods["name"].Outputs.Pack(f.names[common.BytesToHash(node[:])])

	case bytes.Equal(sel, resolverABI.Methods["addr"].ID):
		vals, err := resolverABI.Methods["addr"].Inputs.Unpack(args)
		if err != nil {
			return nil, err
		}
		node := vals[0].([32]byte)
		return resolverABI.Methods["addr"].Outputs.Pack(f.addrs[common.BytesToHash(node[:])])

	case bytes.Equal(sel, resolverABI.Methods["text"].ID):
		vals, err := resolverABI.Methods["text"].Inputs.Unpack(args)
		if err != nil {
			return nil, err
		}
		key := vals[1].(string)
		return resolverABI.Methods["text"].Outputs.Pack(f.texts[key])

	case bytes.Equal(sel, resolverABI.Methods["contenthash"].ID):
		return resolverABI.Methods["contenthash"].Outputs.Pack(f.content)
	}
	return nil, fmt.Errorf("unexpected selector %x", sel)
}

// vitalikEndpoint returns a healthy endpoint that knows vitalik.eth.
func vitalikEndpoint(name string) *fakeEndpoint {
	return &fakeEndpoint{
		name: name,
		names: map[common.Hash]string{
			ReverseNode(vitalikAddr): "vitalik.eth",
		},
		addrs: map[common.Hash]common.Address{
			Namehash("vitalik.eth"): common.HexToAddress(vitalikAddr),
		},
		texts: map[string]string{},
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNameFallsBackAcrossEndpoints(t *testing.T) {
	broken := &fakeEndpoint{name: "broken", fail: fmt.Errorf("connection refused")}
	healthy := vitalikEndpoint("healthy")
	r := NewResolver([]Endpoint{broken, healthy}, quietLogger())

	name, err := r.Name(context.Background(), vitalikAddr)
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if name != "vitalik.eth" {
		t.Fatalf("want vitalik.eth, got %q", name)
	}
	if broken.Calls() == 0 {
		t.Errorf("the broken endpoint should have been tried first")
	}
}

func TestNameNegativeWhenNoEndpointHasABinding(t *testing.T) {
	empty := &fakeEndpoint{name: "empty", names: map[common.Hash]string{}}
	r := NewResolver([]Endpoint{empty}, quietLogger())

	name, err := r.Name(context.Background(), vitalikAddr)
	if err != nil {
		t.Fatalf("an unbound address is a negative outcome, not an error: %v", err)
	}
	if name != "" {
		t.Fatalf("want empty name, got %q", name)
	}
}

func TestNameErrorJoinsEveryFailedEndpoint(t *testing.T) {
	ep1 := &fakeEndpoint{name: "first-node", fail: fmt.Errorf("timeout")}
	ep2 := &fakeEndpoint{name: "second-node", fail: fmt.Errorf("dns failure")}
	r := NewResolver([]Endpoint{ep1, ep2}, quietLogger())

	_, err := r.Name(context.Background(), vitalikAddr)
	if err == nil {
		t.Fatalf("want an error when every endpoint fails")
	}
	for _, want := range []string{"first-node", "second-node", "timeout", "dns failure"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error should mention %q, got %q", want, err)
		}
	}
}

func TestAddressForwardResolution(t *testing.T) {
	r := NewResolver([]Endpoint{vitalikEndpoint("ep")}, quietLogger())

	addr, err := r.Address(context.Background(), "vitalik.eth")
	if err != nil {
		t.Fatalf("resolve: %s", err)
	}
	if addr != strings.ToLower(vitalikAddr) {
		t.Fatalf("want %s, got %s", strings.ToLower(vitalikAddr), addr)
	}
}

func TestProfileCollectsFieldsAndCoalescesAliases(t *testing.T) {
	ep := vitalikEndpoint("ep")
	ep.texts = map[string]string{
		"avatar":      "https://example.com/avatar.png",
		"description": "hello",
		"vnd.twitter": "legacyhandle",
		"com.github":  "vbuterin",
		"vnd.github":  "old-vbuterin",
	}
	r := NewResolver([]Endpoint{ep}, quietLogger())

	id, err := r.Profile(context.Background(), vitalikAddr)
	if err != nil {
		t.Fatalf("profile: %s", err)
	}
	if id.Name != "vitalik.eth" {
		t.Errorf("Name = %q", id.Name)
	}
	if id.Avatar != "https://example.com/avatar.png" {
		t.Errorf("Avatar = %q", id.Avatar)
	}
	if id.Twitter != "legacyhandle" {
		t.Errorf("vnd.twitter should fill in when com.twitter is unset, got %q", id.Twitter)
	}
	if id.Github != "vbuterin" {
		t.Errorf("com.github must win over vnd.github, got %q", id.Github)
	}
	if id.State != StateResolved {
		t.Errorf("State = %s", id.State)
	}
}

func TestProfileTriesNextEndpointWhenFirstHasNoFields(t *testing.T) {
	bare := vitalikEndpoint("bare") // knows the name but has no records
	rich := vitalikEndpoint("rich")
	rich.texts = map[string]string{"description": "builder"}
	r := NewResolver([]Endpoint{bare, rich}, quietLogger())

	id, err := r.Profile(context.Background(), vitalikAddr)
	if err != nil {
		t.Fatalf("profile: %s", err)
	}
	if id.Description != "builder" {
		t.Fatalf("second endpoint's fields should be used, got %+v", id)
	}
}

func TestProfileWithoutNameSkipsFieldLookups(t *testing.T) {
	empty := &fakeEndpoint{name: "empty"}
	r := NewResolver([]Endpoint{empty}, quietLogger())

	id, err := r.Profile(context.Background(), vitalikAddr)
	if err != nil {
		t.Fatalf("profile: %s", err)
	}
	if id.Name != "" || id.State != StateResolved {
		t.Fatalf("nameless profile should be an empty resolved record, got %+v", id)
	}
}
