package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/revuehq/revue/internal/config"
	"github.com/revuehq/revue/internal/github"
	"github.com/revuehq/revue/internal/output"
	"github.com/revuehq/revue/internal/providers"
	"github.com/revuehq/revue/internal/review"
	"github.com/spf13/cobra"
)

var (
	flagOwner           string
	flagRepo            string
	flagDryRun          bool
	flagProvider        string
	flagModel           string
	flagFormat          string
	flagOut             string
	flagMinSeverity     string
	flagMaxComments     int
	flagSkipEffortBelow int
	flagIgnoreAuthors   string
	flagIgnorePaths     string
	flagFailOn          string
	flagNoRedact        bool
	flagNoLabels        bool
)

var reviewCmd = &cobra.Command{
	Use:   "review <pr-number>",
	Short: "Review a GitHub pull request",
	Long:  "Fetch a PR, assemble its diff and context, run the model review, and post the result as a PR review with inline comments and labels.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prNumber, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid PR number %q\n", args[0])
			exitCode = ExitUsageError
			return nil
		}

		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		if flagNoRedact {
			cfg.Privacy.RedactSecrets = false
			fmt.Fprintln(os.Stderr, "WARNING: secret redaction is disabled")
		}
		if flagNoLabels {
			cfg.Labels.Enabled = false
		}

		// Detect owner/repo if not provided
		owner, repo := flagOwner, flagRepo
		if owner == "" || repo == "" {
			detectedOwner, detectedRepo, err := github.DetectRepo()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\nUse --owner and --repo flags to specify manually.\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			if owner == "" {
				owner = detectedOwner
			}
			if repo == "" {
				repo = detectedRepo
			}
		}

		ghClient, err := github.NewClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitAuthError
			return nil
		}

		ctx := context.Background()

		fmt.Fprintf(os.Stderr, "Fetching PR #%d from %s/%s...\n", prNumber, owner, repo)
		session, pr, err := github.NewPRSession(ctx, ghClient, owner, repo, prNumber)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if github.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			return nil
		}

		analyzer, err := providers.New(ctx, cfg.Provider, cfg.Model)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitAuthError
			return nil
		}

		result, err := review.Run(ctx, pr, session, analyzer, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			if providers.IsAuthError(err) || github.IsAuthError(err) {
				exitCode = ExitAuthError
			} else {
				exitCode = ExitRuntimeError
			}
			return nil
		}

		if err := output.WriteResult(result, flagFormat, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if result.Skipped {
			fmt.Fprintf(os.Stderr, "Review skipped: %s\n", result.Reason)
			return nil
		}

		if flagDryRun {
			fmt.Fprintf(os.Stderr, "Dry run: %d issues, %d inline comments, not posting to GitHub.\n",
				len(result.Issues), len(result.Comments))
		} else {
			fmt.Fprintf(os.Stderr, "Posting review (%d inline comments)...\n", len(result.Comments))
			err := session.PostReview(ctx, github.ReviewRequest{
				Body:     result.Summary,
				Event:    "COMMENT",
				Comments: result.Comments,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error posting review: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			if err := session.AddLabels(ctx, result.Labels); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not add labels: %v\n", err)
			}
			fmt.Fprintf(os.Stderr, "Review posted to PR #%d.\n", prNumber)
		}

		if flagFailOn != "" && flagFailOn != "none" {
			for _, is := range result.Issues {
				if review.MeetsMinSeverity(is.Severity, review.Severity(flagFailOn)) {
					exitCode = ExitFindings
					return nil
				}
			}
		}

		return nil
	},
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagProvider != "" {
		m["provider"] = flagProvider
	}
	if flagModel != "" {
		m["model"] = flagModel
	}
	if flagMinSeverity != "" {
		m["minSeverity"] = flagMinSeverity
	}
	if flagMaxComments > 0 {
		m["maxComments"] = strconv.Itoa(flagMaxComments)
	}
	if flagSkipEffortBelow > 0 {
		m["skipEffortBelow"] = strconv.Itoa(flagSkipEffortBelow)
	}
	if flagIgnoreAuthors != "" {
		m["ignoreAuthors"] = flagIgnoreAuthors
	}
	if flagIgnorePaths != "" {
		m["ignorePaths"] = flagIgnorePaths
	}
	return m
}

func init() {
	reviewCmd.Flags().StringVar(&flagOwner, "owner", "", "GitHub repository owner (auto-detected if omitted)")
	reviewCmd.Flags().StringVar(&flagRepo, "repo", "", "GitHub repository name (auto-detected if omitted)")
	reviewCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Run the review but don't post to GitHub")
	reviewCmd.Flags().StringVar(&flagProvider, "provider", "", "LLM provider (anthropic, openai, gemini, ollama)")
	reviewCmd.Flags().StringVar(&flagModel, "model", "", "Model name")
	reviewCmd.Flags().StringVar(&flagFormat, "format", "text", "Local output format (text, json, markdown)")
	reviewCmd.Flags().StringVar(&flagOut, "out", "", "Local output file path (default: stdout)")
	reviewCmd.Flags().StringVar(&flagMinSeverity, "min-severity", "", "Minimum severity to report (critical, warning, suggestion, nitpick)")
	reviewCmd.Flags().IntVar(&flagMaxComments, "max-comments", 0, "Maximum number of inline comments")
	reviewCmd.Flags().IntVar(&flagSkipEffortBelow, "skip-effort-below", 0, "Skip publishing when the effort score is below this value")
	reviewCmd.Flags().StringVar(&flagIgnoreAuthors, "ignore-authors", "", "PR authors to skip (comma-separated)")
	reviewCmd.Flags().StringVar(&flagIgnorePaths, "ignore-paths", "", "File path globs to exclude (comma-separated)")
	reviewCmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Exit non-zero on findings at this severity or above (none, critical, warning, suggestion, nitpick)")
	reviewCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Disable secret redaction (use with caution)")
	reviewCmd.Flags().BoolVar(&flagNoLabels, "no-labels", false, "Don't apply labels to the PR")
}
