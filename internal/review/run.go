package review

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/revuehq/revue/internal/assemble"
	"github.com/revuehq/revue/internal/config"
	"github.com/revuehq/revue/internal/diff"
	"github.com/revuehq/revue/internal/github"
	"github.com/revuehq/revue/internal/providers"
	"github.com/revuehq/revue/internal/redact"
)

// Platform is the slice of the PR session the pipeline consumes.
type Platform interface {
	assemble.Host
	ListChangedFiles(ctx context.Context) ([]github.ChangedFile, error)
}

// Timing contains run latency metrics.
type Timing struct {
	LLMMs   int64 `json:"llmMs"`
	TotalMs int64 `json:"totalMs"`
}

// Result is the complete outcome of one review run. A skipped run carries a
// reason and zeroed counts; publishing is the caller's decision.
type Result struct {
	PRNumber    int                   `json:"prNumber"`
	Skipped     bool                  `json:"skipped"`
	Reason      string                `json:"reason,omitempty"`
	Summary     string                `json:"summary,omitempty"`
	EffortScore int                   `json:"effortScore,omitempty"`
	Issues      []Issue               `json:"issues"`
	Counts      SeverityCounts        `json:"counts"`
	Comments    []github.DraftComment `json:"comments"`
	Labels      []string              `json:"labels,omitempty"`
	Timing      Timing                `json:"timing"`
}

// Run executes the review pipeline for one pull request: author gate,
// context assembly, per-file diff indexing, the single model call, response
// gating, and output projection. It never publishes anything itself.
func Run(ctx context.Context, pr *github.PullRequest, host Platform, analyzer providers.Analyzer, cfg config.Config) (*Result, error) {
	startTime := time.Now()

	if AuthorIgnored(pr.User.Login, cfg.IgnoreAuthors) {
		return skippedResult(pr, SkipReasonAuthor(pr.User.Login), startTime), nil
	}

	files, err := host.ListChangedFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing changed files: %w", err)
	}

	rctx, err := assemble.Build(ctx, host, files, cfg)
	if err != nil {
		return nil, fmt.Errorf("assembling context: %w", err)
	}
	if len(rctx.Files) == 0 || strings.TrimSpace(rctx.Diff) == "" {
		return skippedResult(pr, SkipReasonNoFiles, startTime), nil
	}

	// One index per eligible file, fetch-failed files included, built before
	// the model call so every candidate comment resolves against the same
	// immutable view of the diff.
	indexes := make(map[string]*diff.Index, len(rctx.Patches))
	for path, patch := range rctx.Patches {
		indexes[path] = diff.BuildIndex(patch)
	}

	diffText := rctx.Diff
	related := rctx.Related
	if cfg.Privacy.RedactSecrets {
		diffText = redact.Secrets(diffText)
		redactedRelated := make([]assemble.RelatedFile, len(related))
		for i, r := range related {
			redactedRelated[i] = assemble.RelatedFile{
				Path:    r.Path,
				Content: redact.Content(r.Content, r.Path, cfg.Privacy.RedactPaths),
			}
		}
		related = redactedRelated
	}

	req := providers.Request{
		SystemPrompt: SystemPrompt(cfg.Categories),
		UserPrompt:   BuildUserPrompt(pr, diffText, related, cfg.MaxComments),
		MaxTokens:    8192,
	}

	llmStart := time.Now()
	resp, err := analyzer.Analyze(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("provider analyze: %w", err)
	}

	parsed, err := ParseResponse(resp.Content)
	if err != nil {
		// One repair pass before giving up on the response shape.
		repairReq := providers.Request{
			SystemPrompt: req.SystemPrompt,
			UserPrompt: fmt.Sprintf(
				"Your previous response was not valid JSON. The error was: %s\n\nPlease fix it and respond with ONLY the valid JSON object.\n\nYour previous response was:\n%s",
				err.Error(), resp.Content),
			MaxTokens: 8192,
		}
		resp2, err2 := analyzer.Analyze(ctx, repairReq)
		if err2 != nil {
			return nil, fmt.Errorf("repair pass failed: %w (original error: %w)", err2, err)
		}
		parsed, err = ParseResponse(resp2.Content)
		if err != nil {
			return nil, fmt.Errorf("response validation failed after repair: %w", err)
		}
	}
	llmMs := time.Since(llmStart).Milliseconds()

	result := &Result{
		PRNumber:    pr.Number,
		EffortScore: parsed.EffortScore,
		Issues:      []Issue{},
		Comments:    []github.DraftComment{},
		Timing:      Timing{LLMMs: llmMs},
	}

	gated := Gate(parsed, cfg)
	if gated.Skipped {
		result.Skipped = true
		result.Reason = gated.Reason
		result.Timing.TotalMs = time.Since(startTime).Milliseconds()
		return result, nil
	}

	proj := Project(parsed, gated.Issues, indexes, cfg)

	result.Summary = proj.Summary
	result.Issues = gated.Issues
	result.Counts = CountBySeverity(gated.Issues)
	result.Comments = proj.Comments
	result.Labels = proj.Labels
	result.Timing.TotalMs = time.Since(startTime).Milliseconds()
	return result, nil
}

func skippedResult(pr *github.PullRequest, reason string, startTime time.Time) *Result {
	return &Result{
		PRNumber: pr.Number,
		Skipped:  true,
		Reason:   reason,
		Issues:   []Issue{},
		Comments: []github.DraftComment{},
		Timing:   Timing{TotalMs: time.Since(startTime).Milliseconds()},
	}
}
