package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/revuehq/revue/internal/review"
)

// TextWriter outputs a human-readable text rendering of a review result.
type TextWriter struct{}

func (t *TextWriter) Write(w io.Writer, result *review.Result) error {
	ew := &errWriter{w: w}

	ew.printf("Revue Code Review — PR #%d\n", result.PRNumber)
	ew.println(strings.Repeat("─", 60))

	if result.Skipped {
		ew.printf("Skipped: %s\n", result.Reason)
		return ew.err
	}

	total := result.Counts.Critical + result.Counts.Warning +
		result.Counts.Suggestion + result.Counts.Nitpick
	ew.printf("Effort: %d/5 | Findings: %d total", result.EffortScore, total)
	if total > 0 {
		ew.printf(" (%d critical, %d warning, %d suggestion, %d nitpick)",
			result.Counts.Critical, result.Counts.Warning,
			result.Counts.Suggestion, result.Counts.Nitpick)
	}
	ew.println("")
	ew.println(strings.Repeat("─", 60))

	if total == 0 {
		ew.println("\nNo issues found. Looks good!")
		return ew.err
	}

	for _, is := range result.Issues {
		ew.printf("\n%s %s\n", severityIcon(is.Severity), is.Title)
		loc := is.File
		if is.Line > 0 {
			loc = fmt.Sprintf("%s:%d", is.File, is.Line)
			if is.EndLine > is.Line {
				loc = fmt.Sprintf("%s-%d", loc, is.EndLine)
			}
		}
		ew.printf("  %s | %s | %s\n", loc, is.Severity, is.Category)
		for _, line := range wrapText(is.Description, 70) {
			ew.printf("    %s\n", line)
		}
		if is.Suggestion != "" {
			ew.println("  Suggestion:")
			for _, line := range wrapText(is.Suggestion, 70) {
				ew.printf("    %s\n", line)
			}
		}
	}

	if len(result.Labels) > 0 {
		ew.printf("\nLabels: %s\n", strings.Join(result.Labels, ", "))
	}

	ew.printf("\n%s\n", strings.Repeat("─", 60))
	ew.printf("Completed in %dms (LLM: %dms), %d inline comments\n",
		result.Timing.TotalMs, result.Timing.LLMMs, len(result.Comments))

	return ew.err
}

// errWriter wraps an io.Writer and captures the first error.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, args...)
}

func (ew *errWriter) println(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintln(ew.w, s)
}

func severityIcon(s review.Severity) string {
	switch s {
	case review.SeverityCritical:
		return "[!!]"
	case review.SeverityWarning:
		return "[!]"
	case review.SeveritySuggestion:
		return "[-]"
	case review.SeverityNitpick:
		return "[.]"
	default:
		return "[?]"
	}
}

func wrapText(text string, width int) []string {
	if len(text) <= width {
		return []string{text}
	}
	var lines []string
	words := strings.Fields(text)
	var current strings.Builder
	for _, word := range words {
		if current.Len()+len(word)+1 > width && current.Len() > 0 {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}
	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
