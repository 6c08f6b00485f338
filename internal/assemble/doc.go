// Package assemble builds the reviewable context for one pull request.
//
// From the platform's changed-file list it drops deleted and ignore-pattern
// files, fetches head content for the survivors, discovers a bounded set of
// sibling files for pattern context, and concatenates the per-file patches
// into one combined diff. A file whose content fetch fails is excluded
// rather than failing the run; its patch is still retained so left-side
// comment positions stay resolvable.
//
// Related-file volume is capped per file and per run, and long sibling
// content is truncated, so downstream prompt size stays predictable
// regardless of PR size.
package assemble
