package ui

import "io"

// UI provides all terminal output for seer commands.
//
// Production code uses TerminalUI, which writes coloured output to
// os.Stdout. Tests use RecordingUI, which captures every call in an entry
// log.
//
// Use [UI.Indent] to get a child UI at one deeper indent level, e.g. to
// print the fields of an identity card under its heading. The child shares
// the underlying writer, so output ordering is preserved across scopes.
type UI interface {
	// Info writes a neutral status line (no prefix, no color).
	Info(format string, args ...any)

	// Success writes a positive outcome in green.
	Success(format string, args ...any)

	// Warn writes a non-fatal warning in yellow.
	Warn(format string, args ...any)

	// Error writes a failure in red.
	// This does NOT exit or return an error — callers decide what to do next.
	Error(format string, args ...any)

	// Section writes a visual separator centred around a title.
	// Example: "===== vitalik.eth ====="
	Section(title string)

	// KeyValue renders an aligned 2-column block — label on the left,
	// value on the right — with all values left-aligned to the same column.
	// Use for compact metadata like Name/Avatar/Twitter on an identity card.
	KeyValue(rows [][2]string)

	// Table renders a full bordered table with a header row followed by
	// data rows. Use when the data is inherently tabular (e.g. the
	// operation catalog or search results).
	Table(headers []string, rows [][]string)

	// Spinner starts an animated spinner with the given message and returns
	// a stop function. Call the stop function (or defer it) to clear the
	// spinner once the work is done:
	//
	//   stop := u.Spinner("Resolving...")
	//   defer stop()
	//
	// In RecordingUI and non-terminal contexts the stop function is a no-op.
	Spinner(msg string) func()

	// Indent returns a child UI with indent level increased by one,
	// sharing the same underlying writer as the parent.
	Indent() UI

	// Writer returns an io.Writer that prepends the current indentation
	// to every line. Use this when handing output to functions that take
	// io.Writer directly (e.g. a JSON encoder).
	Writer() io.Writer
}
