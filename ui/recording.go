package ui

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// Entry records a single UI method call for test assertions.
type Entry struct {
	Method string
	Value  string // the formatted string passed to the method
}

// sharedState holds the mutable state shared across a RecordingUI and all
// child UIs created via Indent().
type sharedState struct {
	entries []Entry
	buf     *bytes.Buffer
}

// RecordingUI implements UI for tests.
//
// All output is captured in an entry log that can be inspected with
// [RecordingUI.Entries] and [RecordingUI.HasMessage]. Child UIs created via
// Indent() share the same log as their parent.
type RecordingUI struct {
	shared      *sharedState
	indentLevel int
}

func NewRecordingUI() *RecordingUI {
	return &RecordingUI{
		shared: &sharedState{buf: &bytes.Buffer{}},
	}
}

func (r *RecordingUI) record(method, value string) {
	r.shared.entries = append(r.shared.entries, Entry{
		Method: method,
		Value:  value,
	})
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Warn(format string, args ...any) {
	r.record("Warn", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string) {
	r.record("Section", title)
}

// KeyValue records each row as "label: value" so tests can assert on
// individual lines without caring about alignment.
func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", fmt.Sprintf("%s: %s", row[0], row[1]))
	}
}

// Table records the header and each row joined by " | ".
func (r *RecordingUI) Table(headers []string, rows [][]string) {
	if len(headers) > 0 {
		r.record("Table", strings.Join(headers, " | "))
	}
	for _, row := range rows {
		r.record("Table", strings.Join(row, " | "))
	}
}

// Spinner records the message and returns a no-op stop function.
func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() {}
}

func (r *RecordingUI) Indent() UI {
	return &RecordingUI{
		shared:      r.shared,
		indentLevel: r.indentLevel + 1,
	}
}

// Writer returns a buffer shared with the parent so tests can inspect raw
// writes (e.g. JSON output) with [RecordingUI.Written].
func (r *RecordingUI) Writer() io.Writer {
	return r.shared.buf
}

// Entries returns every recorded call in order.
func (r *RecordingUI) Entries() []Entry {
	return r.shared.entries
}

// Written returns everything written through Writer().
func (r *RecordingUI) Written() string {
	return r.shared.buf.String()
}

// HasMessage reports whether any recorded entry's value contains substr.
func (r *RecordingUI) HasMessage(substr string) bool {
	for _, e := range r.shared.entries {
		if strings.Contains(e.Value, substr) {
			return true
		}
	}
	return false
}
