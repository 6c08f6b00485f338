package review

// Severity represents the severity level of a review issue.
type Severity string

const (
	SeverityCritical   Severity = "critical"
	SeverityWarning    Severity = "warning"
	SeveritySuggestion Severity = "suggestion"
	SeverityNitpick    Severity = "nitpick"
)

// severityOrder fixes the total severity order, most severe first. Grouping
// and filtering both iterate this slice so the two can never disagree.
var severityOrder = []Severity{
	SeverityCritical,
	SeverityWarning,
	SeveritySuggestion,
	SeverityNitpick,
}

// SeverityRank returns the index of s in the fixed order (0 = most severe).
// Unknown severities rank below nitpick.
func SeverityRank(s Severity) int {
	for i, sev := range severityOrder {
		if sev == s {
			return i
		}
	}
	return len(severityOrder)
}

// KnownSeverity reports whether s is one of the four defined levels.
func KnownSeverity(s Severity) bool {
	return SeverityRank(s) < len(severityOrder)
}

// MeetsMinSeverity reports whether s is at least as severe as min.
// Comparison is by rank so "allow down to warning" includes critical and
// warning but excludes suggestion and nitpick.
func MeetsMinSeverity(s Severity, min Severity) bool {
	return KnownSeverity(s) && SeverityRank(s) <= SeverityRank(min)
}

// Issue is a single model-produced review finding. The pipeline filters and
// repositions issues but never rewrites their fields.
type Issue struct {
	Severity    Severity `json:"severity"`
	Category    string   `json:"category"`
	File        string   `json:"file"`
	Line        int      `json:"line,omitempty"`
	EndLine     int      `json:"endLine,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Suggestion  string   `json:"suggestion,omitempty"`
	Code        string   `json:"code,omitempty"`
}

// Response is the coerced structured model output for one review run.
type Response struct {
	Summary     string  `json:"summary"`
	EffortScore int     `json:"effortScore"`
	Issues      []Issue `json:"issues"`
}

// SeverityCounts tallies issues per level.
type SeverityCounts struct {
	Critical   int `json:"critical"`
	Warning    int `json:"warning"`
	Suggestion int `json:"suggestion"`
	Nitpick    int `json:"nitpick"`
}

// CountBySeverity tallies issues into fixed buckets.
func CountBySeverity(issues []Issue) SeverityCounts {
	var c SeverityCounts
	for _, is := range issues {
		switch is.Severity {
		case SeverityCritical:
			c.Critical++
		case SeverityWarning:
			c.Warning++
		case SeveritySuggestion:
			c.Suggestion++
		case SeverityNitpick:
			c.Nitpick++
		}
	}
	return c
}
