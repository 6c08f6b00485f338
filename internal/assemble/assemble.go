package assemble

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/revuehq/revue/internal/config"
	"github.com/revuehq/revue/internal/github"
)

// maxSiblingLines bounds how much of a related file is shown to the model.
const maxSiblingLines = 200

// Host is the slice of the platform session the assembler needs.
type Host interface {
	GetFileContent(ctx context.Context, path string) (string, bool, error)
	ListDirectory(ctx context.Context, dir string) ([]string, error)
}

// File is a changed file that survived filtering, with its head content.
type File struct {
	github.ChangedFile
	Content string
}

// RelatedFile is an unchanged sibling file included for pattern context.
type RelatedFile struct {
	Path    string
	Content string
}

// Context is the assembled input for one review run.
type Context struct {
	Files   []File
	Related []RelatedFile
	Diff    string
	// Patches keeps the raw patch of every eligible file, including files
	// whose content fetch failed, so their diff indexes can still be built.
	Patches map[string]string
}

// Build assembles the review context. Per-file fetch failures degrade that
// file; only a nil context.Context cancellation or similar caller error
// surfaces as an error from the host.
func Build(ctx context.Context, host Host, files []github.ChangedFile, cfg config.Config) (*Context, error) {
	out := &Context{Patches: make(map[string]string)}

	// Sibling discovery must never re-include anything from the full
	// changed-file set, eligible or not.
	seen := make(map[string]bool, len(files))
	for _, f := range files {
		seen[f.Filename] = true
	}

	var eligible []github.ChangedFile
	for _, f := range files {
		if f.Status == "deleted" {
			continue
		}
		if MatchesAny(f.Filename, cfg.IgnorePaths) {
			continue
		}
		eligible = append(eligible, f)
		if f.Patch != "" {
			out.Patches[f.Filename] = f.Patch
		}
	}

	for _, f := range eligible {
		content, ok, err := host.GetFileContent(ctx, f.Filename)
		if err != nil || !ok {
			continue // degraded: file drops out of the reviewable set
		}
		out.Files = append(out.Files, File{ChangedFile: f, Content: content})
	}

	out.Related = discoverRelated(ctx, host, out.Files, seen, cfg)
	out.Diff = combineDiff(out.Files, cfg.MaxDiffBytes)

	return out, nil
}

// discoverRelated lists same-extension siblings of each reviewed file, in
// changed-file order, capped per file and per run.
func discoverRelated(ctx context.Context, host Host, files []File, seen map[string]bool, cfg config.Config) []RelatedFile {
	var related []RelatedFile

	for _, f := range files {
		if len(related) >= cfg.MaxRelatedFiles {
			break
		}
		ext := path.Ext(f.Filename)
		if ext == "" {
			continue
		}
		dir := path.Dir(f.Filename)

		siblings, err := host.ListDirectory(ctx, dir)
		if err != nil {
			continue // recoverable: this file simply contributes no siblings
		}

		added := 0
		for _, sib := range siblings {
			if len(related) >= cfg.MaxRelatedFiles || added >= cfg.MaxSiblingsPerFile {
				break
			}
			if seen[sib] || path.Ext(sib) != ext {
				continue
			}
			content, ok, err := host.GetFileContent(ctx, sib)
			if err != nil || !ok {
				continue
			}
			seen[sib] = true
			related = append(related, RelatedFile{
				Path:    sib,
				Content: truncateLines(content, maxSiblingLines),
			})
			added++
		}
	}
	return related
}

// truncateLines cuts content after max lines, appending a marker that names
// the omitted line count.
func truncateLines(content string, max int) string {
	lines := strings.Split(content, "\n")
	if len(lines) <= max {
		return content
	}
	omitted := len(lines) - max
	return strings.Join(lines[:max], "\n") +
		fmt.Sprintf("\n... (%d more lines truncated)\n", omitted)
}

// combineDiff concatenates each file's patch behind a synthetic file header,
// preserving changed-file order so output is reproducible.
func combineDiff(files []File, maxBytes int) string {
	var b strings.Builder
	for _, f := range files {
		if f.Patch == "" {
			continue
		}
		fmt.Fprintf(&b, "diff --git a/%s b/%s\n", f.Filename, f.Filename)
		b.WriteString(f.Patch)
		if !strings.HasSuffix(f.Patch, "\n") {
			b.WriteString("\n")
		}
	}

	diff := b.String()
	if maxBytes > 0 && len(diff) > maxBytes {
		diff = diff[:maxBytes] + "\n... (diff truncated at max-diff-bytes limit)\n"
	}
	return diff
}

// MatchesAny returns true if the path matches any of the given glob
// patterns. Patterns support doublestar globs, so "**/*.test.ts" matches at
// any depth.
func MatchesAny(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}
