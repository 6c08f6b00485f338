// Package review contains the core types and pipeline for LLM-based
// pull-request review.
//
// It defines the Issue, Response, and Severity types, parses and coerces
// the structured JSON the model returns (clamping effort scores, dropping
// malformed issue entries), applies the gating policy (ignored authors,
// empty file sets, effort-score thresholds, minimum severity), and projects
// surviving issues into a grouped summary, a bounded set of inline-comment
// requests at diff-valid positions, and a derived label set.
//
// Run executes the whole linear pipeline for one pull request: context
// assembly, per-file diff indexing, redaction, the single model call, and
// the gate/projection stages. Policy skips are results, not errors; only
// platform failures and unparseable model output abort a run.
package review
