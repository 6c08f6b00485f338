// Package output formats review results for display or machine consumption.
//
// Three formats are supported:
//   - text     — human-readable terminal output (default)
//   - json     — full structured JSON result
//   - markdown — the exact summary and inline comments that would be posted
//
// Use [GetWriter] to obtain a [Writer] for a given format string, or
// [WriteResult] to handle destination selection as well.
package output
