// Package diff parses unified-diff patch text into an index of commentable
// line positions.
//
// GitHub's review API only accepts inline comments on lines that appear in
// the PR diff. BuildIndex scans a per-file patch once and records every
// new-file and old-file line number the diff contains, so "can line L carry
// a comment" becomes a set lookup instead of a re-scan per comment.
//
// ResolveLine maps a model-proposed line onto the nearest valid position
// within a bounded search radius, salvaging the off-by-a-few line numbers
// LLMs commonly produce without guessing across unrelated hunks.
package diff
