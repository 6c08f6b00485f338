package review

import (
	"testing"

	"github.com/revuehq/revue/internal/config"
)

func TestAuthorIgnored(t *testing.T) {
	tests := []struct {
		author string
		ignore []string
		want   bool
	}{
		{"dependabot[bot]", []string{"dependabot[bot]"}, true},
		{"Dependabot[bot]", []string{"dependabot[bot]"}, true},
		{"alice", []string{"dependabot[bot]", "renovate[bot]"}, false},
		{"alice", nil, false},
	}
	for _, tt := range tests {
		if got := AuthorIgnored(tt.author, tt.ignore); got != tt.want {
			t.Errorf("AuthorIgnored(%q, %v) = %v, want %v", tt.author, tt.ignore, got, tt.want)
		}
	}
}

func TestGate_EffortSkip(t *testing.T) {
	cfg := config.Default()
	cfg.SkipEffortBelow = 3

	resp := &Response{
		Summary:     "trivial",
		EffortScore: 2,
		Issues:      []Issue{{Severity: SeverityCritical, Category: "bug", File: "a.go", Title: "t", Description: "d"}},
	}

	got := Gate(resp, cfg)
	if !got.Skipped {
		t.Fatal("Expected skip for effort below threshold")
	}
	if got.Reason != "effort-below-threshold: score 2 < 3" {
		t.Errorf("Reason = %q", got.Reason)
	}
	if len(got.Issues) != 0 {
		t.Errorf("Skipped gate should carry no issues, got %d", len(got.Issues))
	}
}

func TestGate_EffortAtThresholdPasses(t *testing.T) {
	cfg := config.Default()
	cfg.SkipEffortBelow = 3

	got := Gate(&Response{EffortScore: 3}, cfg)
	if got.Skipped {
		t.Error("Effort equal to threshold must not skip")
	}
}

func TestGate_SeverityFilter(t *testing.T) {
	cfg := config.Default()
	cfg.MinSeverity = "warning"

	resp := &Response{
		EffortScore: 3,
		Issues: []Issue{
			{Severity: SeverityNitpick, Category: "style", File: "a.go", Title: "n", Description: "d"},
			{Severity: SeverityCritical, Category: "bug", File: "a.go", Title: "c", Description: "d"},
			{Severity: SeveritySuggestion, Category: "style", File: "a.go", Title: "s", Description: "d"},
			{Severity: SeverityWarning, Category: "bug", File: "a.go", Title: "w", Description: "d"},
		},
	}

	got := Gate(resp, cfg)
	if got.Skipped {
		t.Fatal("Unexpected skip")
	}
	if len(got.Issues) != 2 {
		t.Fatalf("len(Issues) = %d, want 2", len(got.Issues))
	}
	// Arrival order is preserved across the filter.
	if got.Issues[0].Title != "c" || got.Issues[1].Title != "w" {
		t.Errorf("Issues = %+v, want critical then warning in arrival order", got.Issues)
	}
}
