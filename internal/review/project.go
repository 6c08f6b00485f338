package review

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/revuehq/revue/internal/config"
	"github.com/revuehq/revue/internal/diff"
	"github.com/revuehq/revue/internal/github"
)

// Projection is the publishable output of one review run: the summary body,
// the inline comments (positions already resolved), and the derived labels.
type Projection struct {
	Summary  string
	Comments []github.DraftComment
	Labels   []string
}

// Project maps gated issues onto publishable output. Inline candidates are
// the first MaxComments issues that carry a line number, in arrival order;
// each candidate's position is resolved against its file's diff index.
// Issues whose position cannot be resolved are folded into the summary body
// instead of being dropped.
func Project(resp *Response, issues []Issue, indexes map[string]*diff.Index, cfg config.Config) Projection {
	radius := cfg.ResolveRadius
	if radius <= 0 {
		radius = diff.DefaultMaxDistance
	}

	var comments []github.DraftComment
	var unplaced []Issue

	taken := 0
	for _, is := range issues {
		if is.Line <= 0 {
			continue
		}
		if taken >= cfg.MaxComments {
			break
		}
		taken++

		c, ok := placeComment(is, indexes[is.File], radius)
		if ok {
			comments = append(comments, c)
		} else {
			unplaced = append(unplaced, is)
		}
	}

	p := Projection{
		Summary:  buildSummary(resp, issues, unplaced),
		Comments: comments,
	}
	if cfg.Labels.Enabled {
		p.Labels = deriveLabels(resp, issues, cfg.Labels)
	}
	return p
}

// placeComment resolves one issue onto a commentable diff position. New-file
// lines are preferred; a line that only exists on the old side of the diff
// becomes a LEFT-side comment.
func placeComment(is Issue, idx *diff.Index, radius int) (github.DraftComment, bool) {
	if line, ok := diff.ResolveLine(is.Line, idx, radius); ok {
		body := formatInlineComment(is)
		if line != is.Line {
			// A shifted comment must name its requested line so it is
			// never silently misattributed.
			body = fmt.Sprintf("> Originally reported at line %d.\n\n%s", is.Line, body)
		}
		return github.DraftComment{Path: is.File, Line: line, Side: "RIGHT", Body: body}, true
	}
	if idx != nil && idx.ValidOld(is.Line) {
		return github.DraftComment{Path: is.File, Line: is.Line, Side: "LEFT", Body: formatInlineComment(is)}, true
	}
	return github.DraftComment{}, false
}

func formatInlineComment(is Issue) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "**%s** (%s, %s)\n\n", is.Title, is.Severity, is.Category)
	sb.WriteString(is.Description)
	if is.Suggestion != "" {
		fmt.Fprintf(&sb, "\n\n**Suggestion:** %s", is.Suggestion)
	}
	if is.Code != "" {
		fmt.Fprintf(&sb, "\n\n```suggestion\n%s\n```", is.Code)
	}
	return sb.String()
}

func severityHeading(s Severity) string {
	switch s {
	case SeverityCritical:
		return ":red_circle: Critical"
	case SeverityWarning:
		return ":orange_circle: Warning"
	case SeveritySuggestion:
		return ":yellow_circle: Suggestion"
	default:
		return ":white_circle: Nitpick"
	}
}

// buildSummary renders the review body: the model's summary, issue groups
// in fixed severity order (empty groups omitted), and a trailing section
// for findings that could not be placed inline.
func buildSummary(resp *Response, issues []Issue, unplaced []Issue) string {
	var sb strings.Builder
	sb.WriteString("## Revue Code Review\n\n")
	sb.WriteString(resp.Summary)
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "**Estimated review effort:** %d/5\n", resp.EffortScore)

	grouped := make(map[Severity][]Issue)
	for _, is := range issues {
		grouped[is.Severity] = append(grouped[is.Severity], is)
	}

	for _, sev := range severityOrder {
		group := grouped[sev]
		if len(group) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n### %s (%d)\n\n", severityHeading(sev), len(group))
		for _, is := range group {
			fmt.Fprintf(&sb, "- **%s** `%s", is.Title, is.File)
			if is.Line > 0 {
				fmt.Fprintf(&sb, ":%d", is.Line)
			}
			fmt.Fprintf(&sb, "`: %s\n", is.Description)
		}
	}

	if len(unplaced) > 0 {
		sb.WriteString("\n### Findings outside the diff\n\n")
		for _, is := range unplaced {
			fmt.Fprintf(&sb, "- `%s:%d` **%s**: %s\n", is.File, is.Line, is.Title, is.Description)
		}
	}

	return sb.String()
}

// deriveLabels computes the label set: the security label when a surviving
// security issue is critical or warning, and always one effort label.
func deriveLabels(resp *Response, issues []Issue, cfg config.LabelConfig) []string {
	var labels []string
	for _, is := range issues {
		if is.Category == "security" &&
			(is.Severity == SeverityCritical || is.Severity == SeverityWarning) {
			labels = append(labels, cfg.Security)
			break
		}
	}
	labels = append(labels, cfg.EffortPrefix+strconv.Itoa(resp.EffortScore))
	return labels
}
