// Package cli wires together the Cobra command tree for the revue binary.
//
// It defines the root command and all subcommands (review, config, models,
// version), binds flags, reads configuration, invokes the review pipeline,
// posts the result to GitHub, and returns deterministic exit codes for CI
// gating.
package cli
