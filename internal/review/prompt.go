package review

import (
	"fmt"
	"strings"

	"github.com/revuehq/revue/internal/assemble"
	"github.com/revuehq/revue/internal/github"
)

const systemPromptTemplate = `You are a strict, expert code reviewer for pull requests. Your job is to review a PR diff and produce structured findings in JSON format.

Rules:
1. Only review the changes shown in the diff. Related files are provided for context only; never report findings in them.
2. Focus on these categories: %s.
3. Be concise and actionable. Every finding must include a concrete description of what is wrong and why it matters.
4. Reference new-file line numbers from the diff hunks.
5. Rate severity as "critical", "warning", "suggestion", or "nitpick".
6. Estimate the human review effort for this PR as an integer from 1 (trivial) to 5 (very demanding).

You MUST respond with ONLY a JSON object. No markdown, no explanation, no preamble.

The object must have this exact structure:
{
  "summary": "Two or three sentences describing the change and its risk.",
  "effortScore": 1-5,
  "issues": [
    {
      "severity": "critical|warning|suggestion|nitpick",
      "category": "one of the allowed categories",
      "file": "relative/file/path",
      "line": 1,
      "endLine": 1,
      "title": "Short descriptive title",
      "description": "What is wrong and why it matters",
      "suggestion": "How to fix it",
      "code": "optional replacement code for the flagged lines"
    }
  ]
}

If there are no issues, use an empty issues array.`

// SystemPrompt returns the system prompt with the configured categories
// spliced in.
func SystemPrompt(categories []string) string {
	cats := strings.Join(categories, ", ")
	if cats == "" {
		cats = "bug, security, performance, correctness, maintainability, testing"
	}
	return fmt.Sprintf(systemPromptTemplate, cats)
}

// BuildUserPrompt constructs the user prompt from the PR metadata, the
// combined diff, and any related files.
func BuildUserPrompt(pr *github.PullRequest, diffText string, related []assemble.RelatedFile, maxComments int) string {
	var b strings.Builder

	b.WriteString("Review the following pull request.\n\n")
	fmt.Fprintf(&b, "Title: %s\n", pr.Title)
	if body := strings.TrimSpace(pr.Body); body != "" {
		fmt.Fprintf(&b, "Description:\n%s\n", body)
	}
	if maxComments > 0 {
		fmt.Fprintf(&b, "\nReturn at most %d issues, most important first.\n", maxComments)
	}

	if len(related) > 0 {
		b.WriteString("\n--- RELATED FILES (context only) ---\n")
		for _, r := range related {
			fmt.Fprintf(&b, "\n<<< %s >>>\n%s\n", r.Path, r.Content)
		}
		b.WriteString("--- END RELATED FILES ---\n")
	}

	b.WriteString("\n--- BEGIN DIFF ---\n")
	b.WriteString(diffText)
	b.WriteString("\n--- END DIFF ---\n")

	return b.String()
}
