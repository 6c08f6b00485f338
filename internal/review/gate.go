package review

import (
	"fmt"
	"strings"

	"github.com/revuehq/revue/internal/config"
)

// GateResult is the outcome of the gating stage. A skipped run is a normal
// completion with zero issues and a machine-readable reason, never an error.
type GateResult struct {
	Issues  []Issue
	Skipped bool
	Reason  string
}

// AuthorIgnored reports whether the PR author is on the ignore list.
// Matching is case-insensitive; this is checked once per PR before any
// model call.
func AuthorIgnored(author string, ignoreAuthors []string) bool {
	for _, ignored := range ignoreAuthors {
		if strings.EqualFold(author, ignored) {
			return true
		}
	}
	return false
}

// SkipReasonAuthor builds the reason string for an ignored author.
func SkipReasonAuthor(author string) string {
	return fmt.Sprintf("author-ignored: %s", author)
}

// SkipReasonNoFiles is the reason used when no reviewable files remain
// after context assembly.
const SkipReasonNoFiles = "no-reviewable-files"

// Gate applies the post-response policy: the effort-score skip threshold
// first, then the minimum-severity cutoff.
func Gate(resp *Response, cfg config.Config) GateResult {
	if cfg.SkipEffortBelow > 0 && resp.EffortScore < cfg.SkipEffortBelow {
		return GateResult{
			Skipped: true,
			Reason: fmt.Sprintf("effort-below-threshold: score %d < %d",
				resp.EffortScore, cfg.SkipEffortBelow),
		}
	}
	return GateResult{Issues: FilterBySeverity(resp.Issues, Severity(cfg.MinSeverity))}
}

// FilterBySeverity keeps issues at least as severe as min, preserving order.
func FilterBySeverity(issues []Issue, min Severity) []Issue {
	kept := make([]Issue, 0, len(issues))
	for _, is := range issues {
		if MeetsMinSeverity(is.Severity, min) {
			kept = append(kept, is)
		}
	}
	return kept
}
