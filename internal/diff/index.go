package diff

import (
	"regexp"
	"strconv"
	"strings"
)

// LineKind classifies a line inside a hunk.
type LineKind string

const (
	KindAdded   LineKind = "added"
	KindRemoved LineKind = "removed"
	KindContext LineKind = "context"
)

// Line is one line of a hunk. Old and New are 1-based positions in the
// pre-change and post-change file; zero means the side does not exist
// (New for removals, Old for additions).
type Line struct {
	Old  int
	New  int
	Kind LineKind
}

// Hunk is a contiguous block of diff lines with its declared start and
// line count in the new file.
type Hunk struct {
	NewStart int
	NewCount int
	Lines    []Line
}

// Index holds the commentable positions for one file's patch. It is built
// once by BuildIndex and read-only afterward, so concurrent lookups are
// safe without locking.
type Index struct {
	newLines map[int]bool
	oldLines map[int]bool
	hunks    []Hunk
}

// hunkHeaderRe matches "@@ -oldStart[,oldCount] +newStart[,newCount] @@".
var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// BuildIndex parses a per-file unified-diff patch into an Index. It never
// fails: an empty patch yields an empty index, and unrecognized lines are
// skipped without advancing the line counters.
func BuildIndex(patch string) *Index {
	idx := &Index{
		newLines: make(map[int]bool),
		oldLines: make(map[int]bool),
	}
	if strings.TrimSpace(patch) == "" {
		return idx
	}

	var cur *Hunk
	oldCounter, newCounter := 0, 0

	closeHunk := func() {
		if cur != nil {
			idx.hunks = append(idx.hunks, *cur)
			cur = nil
		}
	}

	// A trailing newline produces one empty element after Split; dropping
	// it keeps interior blank lines (context) while avoiding a phantom
	// context line one past the hunk end.
	lines := strings.Split(patch, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}

	for _, line := range lines {
		if m := hunkHeaderRe.FindStringSubmatch(line); m != nil {
			closeHunk()
			oldStart := atoiDefault(m[1], 1)
			newStart := atoiDefault(m[3], 1)
			newCount := atoiDefault(m[4], 1)
			cur = &Hunk{NewStart: newStart, NewCount: newCount}
			oldCounter, newCounter = oldStart, newStart
			continue
		}
		if cur == nil {
			continue // preamble before the first hunk header
		}

		switch {
		case strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---"):
			// Stray file-header line inside the patch body; does not
			// advance either counter.
		case strings.HasPrefix(line, "+"):
			cur.Lines = append(cur.Lines, Line{New: newCounter, Kind: KindAdded})
			idx.newLines[newCounter] = true
			newCounter++
		case strings.HasPrefix(line, "-"):
			cur.Lines = append(cur.Lines, Line{Old: oldCounter, Kind: KindRemoved})
			idx.oldLines[oldCounter] = true
			oldCounter++
		case line == "" || strings.HasPrefix(line, " "):
			cur.Lines = append(cur.Lines, Line{Old: oldCounter, New: newCounter, Kind: KindContext})
			idx.oldLines[oldCounter] = true
			idx.newLines[newCounter] = true
			oldCounter++
			newCounter++
		default:
			// "\ No newline at end of file" and friends.
		}
	}
	closeHunk()

	return idx
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// ValidNew reports whether the new-file line can carry a right-side comment.
func (x *Index) ValidNew(line int) bool { return x.newLines[line] }

// ValidOld reports whether the old-file line can carry a left-side comment.
func (x *Index) ValidOld(line int) bool { return x.oldLines[line] }

// Hunks returns the ordered hunk sequence.
func (x *Index) Hunks() []Hunk { return x.hunks }

// Empty reports whether the patch contained no commentable lines.
func (x *Index) Empty() bool { return len(x.newLines) == 0 && len(x.oldLines) == 0 }

// NewLineCount returns the number of commentable new-file lines.
func (x *Index) NewLineCount() int { return len(x.newLines) }
