package review

import (
	"strings"
	"testing"
)

func TestParseResponse_Valid(t *testing.T) {
	content := `{
		"summary": "Adds input validation to the login handler.",
		"effortScore": 3,
		"issues": [
			{
				"severity": "warning",
				"category": "bug",
				"file": "handler.go",
				"line": 12,
				"endLine": 14,
				"title": "Missing nil check",
				"description": "req may be nil here.",
				"suggestion": "Check req before dereferencing."
			}
		]
	}`

	resp, err := ParseResponse(content)
	if err != nil {
		t.Fatalf("ParseResponse error: %v", err)
	}
	if resp.Summary != "Adds input validation to the login handler." {
		t.Errorf("Summary = %q", resp.Summary)
	}
	if resp.EffortScore != 3 {
		t.Errorf("EffortScore = %d, want 3", resp.EffortScore)
	}
	if len(resp.Issues) != 1 {
		t.Fatalf("len(Issues) = %d, want 1", len(resp.Issues))
	}
	is := resp.Issues[0]
	if is.Severity != SeverityWarning || is.File != "handler.go" || is.Line != 12 || is.EndLine != 14 {
		t.Errorf("Issue = %+v", is)
	}
}

func TestParseResponse_StripsCodeFences(t *testing.T) {
	content := "```json\n{\"summary\": \"ok\", \"effortScore\": 2, \"issues\": []}\n```"
	resp, err := ParseResponse(content)
	if err != nil {
		t.Fatalf("ParseResponse error: %v", err)
	}
	if resp.Summary != "ok" || resp.EffortScore != 2 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestParseResponse_InvalidJSON(t *testing.T) {
	_, err := ParseResponse("this is not json")
	if err == nil {
		t.Error("Expected error for non-JSON content")
	}
}

func TestParseResponse_Coercion(t *testing.T) {
	content := `{
		"summary": "",
		"effortScore": 9,
		"issues": [
			{"severity": "CRITICAL", "category": "Bug", "file": "a.go", "line": 3, "title": "t", "description": "d"},
			{"severity": "blocker", "category": "bug", "file": "a.go", "line": 3, "title": "t", "description": "d"},
			{"severity": "warning", "category": "bug", "file": "", "line": 3, "title": "t", "description": "d"},
			{"severity": "warning", "category": "bug", "file": "b.go", "line": 10, "endLine": 4, "title": "t", "description": "d"}
		]
	}`

	resp, err := ParseResponse(content)
	if err != nil {
		t.Fatalf("ParseResponse error: %v", err)
	}
	if resp.Summary != defaultSummary {
		t.Errorf("Summary = %q, want default", resp.Summary)
	}
	if resp.EffortScore != 5 {
		t.Errorf("EffortScore = %d, want clamped 5", resp.EffortScore)
	}
	// Unknown severity and missing file are dropped; the rest survive.
	if len(resp.Issues) != 2 {
		t.Fatalf("len(Issues) = %d, want 2", len(resp.Issues))
	}
	if resp.Issues[0].Severity != SeverityCritical || resp.Issues[0].Category != "bug" {
		t.Errorf("Issues[0] = %+v, want lowercased severity and category", resp.Issues[0])
	}
	if resp.Issues[1].EndLine != 10 {
		t.Errorf("EndLine = %d, want raised to line 10", resp.Issues[1].EndLine)
	}
}

func TestParseResponse_ZeroEffortClampsToOne(t *testing.T) {
	resp, err := ParseResponse(`{"summary": "s", "issues": []}`)
	if err != nil {
		t.Fatalf("ParseResponse error: %v", err)
	}
	if resp.EffortScore != 1 {
		t.Errorf("EffortScore = %d, want 1", resp.EffortScore)
	}
}

func TestSeverityRank(t *testing.T) {
	if !MeetsMinSeverity(SeverityCritical, SeverityWarning) {
		t.Error("critical should meet min severity warning")
	}
	if MeetsMinSeverity(SeveritySuggestion, SeverityWarning) {
		t.Error("suggestion should not meet min severity warning")
	}
	if MeetsMinSeverity(Severity("bogus"), SeverityNitpick) {
		t.Error("unknown severity should never pass the filter")
	}
	for i := 1; i < len(severityOrder); i++ {
		if SeverityRank(severityOrder[i-1]) >= SeverityRank(severityOrder[i]) {
			t.Errorf("severity order not strictly increasing at %d", i)
		}
	}
}

func TestSystemPrompt_Categories(t *testing.T) {
	p := SystemPrompt([]string{"security", "testing"})
	if !strings.Contains(p, "security, testing") {
		t.Error("system prompt should list the configured categories")
	}
}
