package output

import (
	"io"

	"github.com/revuehq/revue/internal/review"
)

// MarkdownWriter renders exactly what would be published to the PR: the
// summary body followed by each inline comment with its resolved position.
// Useful with --dry-run to preview a review before posting it.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, result *review.Result) error {
	ew := &errWriter{w: w}

	if result.Skipped {
		ew.printf("## Revue Code Review\n\nSkipped: `%s`\n", result.Reason)
		return ew.err
	}

	ew.println(result.Summary)

	if len(result.Comments) > 0 {
		ew.println("\n---\n")
		ew.printf("## Inline comments (%d)\n", len(result.Comments))
		for _, c := range result.Comments {
			ew.printf("\n**`%s:%d` (%s)**\n\n%s\n", c.Path, c.Line, c.Side, c.Body)
		}
	}

	if len(result.Labels) > 0 {
		ew.println("\n---\n")
		ew.printf("Labels:")
		for _, l := range result.Labels {
			ew.printf(" `%s`", l)
		}
		ew.println("")
	}

	return ew.err
}
