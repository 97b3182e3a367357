package enhance

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/tranvictor/seer/ens"
)

type fakeDirectory struct {
	identities map[string]*ens.Identity
	fullCalls  int
	nameCalls  int
}

func (f *fakeDirectory) Many(_ context.Context, addrs []string, full bool) map[string]*ens.Identity {
	if full {
		f.fullCalls++
	} else {
		f.nameCalls++
	}
	out := map[string]*ens.Identity{}
	for _, addr := range addrs {
		lower := strings.ToLower(addr)
		if id, ok := f.identities[lower]; ok {
			out[lower] = id
			continue
		}
		out[lower] = &ens.Identity{Address: lower, State: ens.StateResolved}
	}
	return out
}

func vitalikDirectory() *fakeDirectory {
	return &fakeDirectory{
		identities: map[string]*ens.Identity{
			"0xd8da6bf26964af9d7eed9e03e53415d37aa96045": {
				Address: "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
				Name:    "vitalik.eth",
				State:   ens.StateResolved,
			},
		},
	}
}

func testEnhancer(dir Directory) *Enhancer {
	return NewEnhancer(dir, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEnhancePayloadWithoutAddressesIsUntouched(t *testing.T) {
	dir := vitalikDirectory()
	e := testEnhancer(dir)
	payload := map[string]interface{}{"message": "no addresses here", "n": 7.0}

	got := e.Enhance(context.Background(), payload, false)
	if !reflect.DeepEqual(got, payload) {
		t.Fatalf("payload without addresses must come back structurally equal, got %v", got)
	}
	if dir.nameCalls+dir.fullCalls != 0 {
		t.Fatalf("no addresses means no resolution calls")
	}
}

func TestEnhanceAddsResolvedAddressesAndCount(t *testing.T) {
	e := testEnhancer(vitalikDirectory())
	payload := map[string]interface{}{"owner": "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"}

	got, ok := e.Enhance(context.Background(), payload, false).(map[string]interface{})
	if !ok {
		t.Fatalf("enhanced object payload should stay an object")
	}
	if got["_addressCount"] != 1 {
		t.Errorf("_addressCount = %v", got["_addressCount"])
	}
	resolved := got["_resolvedAddresses"].(map[string]interface{})
	entry, ok := resolved["0xd8da6bf26964af9d7eed9e03e53415d37aa96045"].(map[string]interface{})
	if !ok {
		t.Fatalf("side channel must be keyed by lowercase address, got %v", resolved)
	}
	if entry["name"] != "vitalik.eth" {
		t.Errorf("name = %v", entry["name"])
	}
	if entry["avatar"] != nil {
		t.Errorf("unset avatar should be null, got %v", entry["avatar"])
	}

	// original payload stays untouched
	if _, leaked := payload["_resolvedAddresses"]; leaked {
		t.Errorf("input payload was mutated")
	}
}

func TestEnhanceCollapsesCaseVariantsToOneAddress(t *testing.T) {
	e := testEnhancer(vitalikDirectory())
	payload := []interface{}{
		"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
		"0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
	}

	got := e.Enhance(context.Background(), payload, false).(map[string]interface{})
	if got["_addressCount"] != 1 {
		t.Fatalf("_addressCount = %v", got["_addressCount"])
	}
	// a list root gets wrapped so the additive fields have a home
	if !reflect.DeepEqual(got["data"], payload) {
		t.Fatalf("wrapped root should carry the original payload, got %v", got["data"])
	}
}

func TestEnhanceFullModeEmbedsWholeRecords(t *testing.T) {
	dir := vitalikDirectory()
	dir.identities["0xd8da6bf26964af9d7eed9e03e53415d37aa96045"].Twitter = "VitalikButerin"
	e := testEnhancer(dir)
	payload := map[string]interface{}{"owner": "0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"}

	got := e.Enhance(context.Background(), payload, true).(map[string]interface{})
	resolved := got["_resolvedAddresses"].(map[string]interface{})
	id, ok := resolved["0xd8da6bf26964af9d7eed9e03e53415d37aa96045"].(*ens.Identity)
	if !ok {
		t.Fatalf("full mode should embed the identity record, got %T", resolved["0xd8da6bf26964af9d7eed9e03e53415d37aa96045"])
	}
	if id.Twitter != "VitalikButerin" {
		t.Errorf("Twitter = %q", id.Twitter)
	}
	if dir.fullCalls != 1 || dir.nameCalls != 0 {
		t.Errorf("full mode must resolve full profiles, calls: full=%d name=%d", dir.fullCalls, dir.nameCalls)
	}
}

func TestEnhanceJSONPassesThroughInvalidPayloads(t *testing.T) {
	e := testEnhancer(vitalikDirectory())
	raw := []byte("this is not json 0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045")

	if got := e.EnhanceJSON(context.Background(), raw, false); string(got) != string(raw) {
		t.Fatalf("invalid json must come back byte for byte, got %s", got)
	}
}

func TestEnhanceJSONRoundTrip(t *testing.T) {
	e := testEnhancer(vitalikDirectory())
	raw := []byte(`{"owner":"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045"}`)

	got := string(e.EnhanceJSON(context.Background(), raw, false))
	for _, want := range []string{`"_addressCount":1`, `"vitalik.eth"`, `"avatar":null`} {
		if !strings.Contains(got, want) {
			t.Errorf("enhanced json should contain %s, got %s", want, got)
		}
	}
}
