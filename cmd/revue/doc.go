// Revue is a CLI for reviewing GitHub pull requests with LLM providers.
//
// It fetches a PR's changed files, assembles the diff with related-file
// context, runs a single structured model review, and posts the result back
// to the PR as a summary comment, inline comments, and labels.
//
// Usage:
//
//	revue review 42                   # review PR #42 in the current repo
//	revue review 42 --dry-run         # print the review without posting
//	revue review 42 --owner o --repo r
//	revue config show                 # print the effective configuration
//	revue models doctor               # validate provider credentials
//
// See https://github.com/revuehq/revue for full documentation.
package main
