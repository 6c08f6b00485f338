// Package github is the hosting-platform client for the review pipeline.
//
// It speaks the GitHub REST API directly: pull-request metadata, the ordered
// changed-file list (with per-file patches), file and directory content at
// the PR head, review publication with inline comments, and label updates.
// Authentication comes from the GITHUB_TOKEN environment variable;
// GITHUB_API_URL overrides the endpoint for GitHub Enterprise.
//
// [PRSession] binds a client to one pull request and is the value handed to
// the context assembler and pipeline, which only see its narrow interface.
package github
