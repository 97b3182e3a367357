package cmd

import (
	"io"
	"log/slog"
	"reflect"
	"testing"

	"github.com/tranvictor/seer/ens"
	"github.com/tranvictor/seer/ui"
)

func setupRecording(t *testing.T) *ui.RecordingUI {
	t.Helper()
	rec := ui.NewRecordingUI()
	term = rec
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	t.Cleanup(func() { term = nil; logger = nil })
	return rec
}

func TestScanForNamesSkipsAddresses(t *testing.T) {
	got := scanForNames([]string{
		"vitalik.eth",
		"0xd8dA6BF26964aF9D7eEd9e03E53415D37aA96045",
		"plain",
		"sub.name.eth",
	})
	want := []string{"vitalik.eth", "sub.name.eth"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestPrintIdentityNameOnly(t *testing.T) {
	rec := setupRecording(t)
	resolveFull = false
	printIdentity(&ens.Identity{
		Address: "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
		Name:    "vitalik.eth",
		State:   ens.StateResolved,
	})
	if !rec.HasMessage("vitalik.eth") {
		t.Fatalf("name missing from output: %v", rec.Entries())
	}
}

func TestPrintIdentityProfileCardOmitsEmptyFields(t *testing.T) {
	rec := setupRecording(t)
	resolveFull = true
	defer func() { resolveFull = false }()
	printIdentity(&ens.Identity{
		Address: "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
		Name:    "vitalik.eth",
		Twitter: "VitalikButerin",
		State:   ens.StateResolved,
	})
	if !rec.HasMessage("Twitter: VitalikButerin") {
		t.Errorf("set field missing: %v", rec.Entries())
	}
	if rec.HasMessage("Avatar") {
		t.Errorf("unset field should not be rendered: %v", rec.Entries())
	}
}

func TestPrintIdentityFailureIsGentle(t *testing.T) {
	rec := setupRecording(t)
	resolveFull = false
	printIdentity(&ens.Identity{
		Address: "0xd8da6bf26964af9d7eed9e03e53415d37aa96045",
		State:   ens.StateFailed,
		Err:     "resolution unavailable",
	})
	if !rec.HasMessage("try again later") {
		t.Fatalf("failed record should render a retry hint: %v", rec.Entries())
	}
}
