package review

import (
	"encoding/json"
	"fmt"
	"strings"
)

// rawResponse is the JSON structure returned by the model before coercion.
type rawResponse struct {
	Summary     string     `json:"summary"`
	EffortScore int        `json:"effortScore"`
	Issues      []rawIssue `json:"issues"`
}

type rawIssue struct {
	Severity    string `json:"severity"`
	Category    string `json:"category"`
	File        string `json:"file"`
	Line        int    `json:"line"`
	EndLine     int    `json:"endLine"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Suggestion  string `json:"suggestion"`
	Code        string `json:"code"`
}

const defaultSummary = "No summary provided."

// ParseResponse parses and coerces the model's structured output. Model
// output is never trusted blindly: the effort score is clamped into [1,5],
// a missing summary gets a default, and issue entries missing any required
// field (or carrying an unknown severity) are dropped. Only input that
// cannot be parsed as the expected JSON shape at all is an error.
func ParseResponse(content string) (*Response, error) {
	content = stripCodeFences(content)

	var raw rawResponse
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("invalid response JSON: %w", err)
	}

	resp := &Response{
		Summary:     strings.TrimSpace(raw.Summary),
		EffortScore: clampEffort(raw.EffortScore),
	}
	if resp.Summary == "" {
		resp.Summary = defaultSummary
	}

	resp.Issues = make([]Issue, 0, len(raw.Issues))
	for _, r := range raw.Issues {
		sev := Severity(strings.ToLower(strings.TrimSpace(r.Severity)))
		if !KnownSeverity(sev) {
			continue
		}
		if r.Category == "" || r.File == "" || r.Title == "" || r.Description == "" {
			continue
		}
		endLine := r.EndLine
		if endLine < r.Line {
			endLine = r.Line
		}
		resp.Issues = append(resp.Issues, Issue{
			Severity:    sev,
			Category:    strings.ToLower(strings.TrimSpace(r.Category)),
			File:        r.File,
			Line:        r.Line,
			EndLine:     endLine,
			Title:       r.Title,
			Description: r.Description,
			Suggestion:  r.Suggestion,
			Code:        r.Code,
		})
	}

	return resp, nil
}

// clampEffort forces the effort score into the defined 1..5 range. A zero
// (missing) score clamps to 1 so threshold comparisons stay meaningful.
func clampEffort(score int) int {
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
}

// stripCodeFences removes a surrounding markdown fence if present, since
// models often wrap JSON in ```json blocks despite instructions.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.Join(lines[1:end], "\n")
}
