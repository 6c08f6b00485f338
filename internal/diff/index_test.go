package diff

import "testing"

func TestBuildIndex_EmptyPatch(t *testing.T) {
	for _, patch := range []string{"", "   ", "\n\n"} {
		idx := BuildIndex(patch)
		if !idx.Empty() {
			t.Errorf("BuildIndex(%q) should be empty", patch)
		}
		if len(idx.Hunks()) != 0 {
			t.Errorf("BuildIndex(%q) has %d hunks, want 0", patch, len(idx.Hunks()))
		}
	}
}

func TestBuildIndex_ContextOnly(t *testing.T) {
	patch := "@@ -1,4 +1,4 @@\n line1\n line2\n line3\n line4"
	idx := BuildIndex(patch)

	for n := 1; n <= 4; n++ {
		if !idx.ValidNew(n) {
			t.Errorf("new line %d should be valid", n)
		}
		if !idx.ValidOld(n) {
			t.Errorf("old line %d should be valid", n)
		}
	}
	if idx.ValidNew(5) || idx.ValidOld(5) {
		t.Error("line 5 should not be valid")
	}
}

func TestBuildIndex_TrailingNewline(t *testing.T) {
	// GitHub patches are often newline-terminated; the final "\n" must not
	// register an extra context line past the hunk.
	patch := "@@ -1,2 +1,2 @@\n a\n b\n"
	idx := BuildIndex(patch)

	if !idx.ValidNew(1) || !idx.ValidNew(2) {
		t.Error("new lines 1 and 2 should be valid")
	}
	if idx.ValidNew(3) || idx.ValidOld(3) {
		t.Error("trailing newline must not produce a phantom line 3")
	}
	if idx.NewLineCount() != 2 {
		t.Errorf("NewLineCount = %d, want 2", idx.NewLineCount())
	}
}

func TestBuildIndex_InteriorBlankLineIsContext(t *testing.T) {
	// A genuinely blank context line (empty after the leading space is
	// stripped by some diff producers) still advances both counters.
	patch := "@@ -1,3 +1,3 @@\n a\n\n c\n"
	idx := BuildIndex(patch)

	for n := 1; n <= 3; n++ {
		if !idx.ValidNew(n) {
			t.Errorf("new line %d should be valid", n)
		}
	}
	if idx.ValidNew(4) {
		t.Error("new line 4 should not be valid")
	}
}

func TestBuildIndex_AdditionsOnly(t *testing.T) {
	patch := "@@ -0,0 +1,3 @@\n+one\n+two\n+three"
	idx := BuildIndex(patch)

	for n := 1; n <= 3; n++ {
		if !idx.ValidNew(n) {
			t.Errorf("new line %d should be valid", n)
		}
		if idx.ValidOld(n) {
			t.Errorf("old line %d should not be valid for a pure addition", n)
		}
	}
	if idx.NewLineCount() != 3 {
		t.Errorf("NewLineCount = %d, want 3", idx.NewLineCount())
	}
}

func TestBuildIndex_MixedHunk(t *testing.T) {
	// Additions interleaved with context: new side counts 1..5.
	patch := "@@ -1,3 +1,5 @@\n line1\n+added1\n+added2\n line2\n line3"
	idx := BuildIndex(patch)

	for n := 1; n <= 5; n++ {
		if !idx.ValidNew(n) {
			t.Errorf("new line %d should be valid", n)
		}
	}
	if idx.ValidNew(6) {
		t.Error("new line 6 should not be valid")
	}
	// Old side only has the three context lines.
	for n := 1; n <= 3; n++ {
		if !idx.ValidOld(n) {
			t.Errorf("old line %d should be valid", n)
		}
	}
}

func TestBuildIndex_Removals(t *testing.T) {
	patch := "@@ -10,3 +10,2 @@\n context\n-gone\n context2"
	idx := BuildIndex(patch)

	if !idx.ValidOld(11) {
		t.Error("old line 11 (removed) should be valid for left-side comments")
	}
	if idx.ValidNew(12) {
		t.Error("new line 12 should not be valid (only two new-side lines)")
	}
	if !idx.ValidNew(10) || !idx.ValidNew(11) {
		t.Error("new lines 10 and 11 (context) should be valid")
	}
}

func TestBuildIndex_MultipleHunks(t *testing.T) {
	patch := "@@ -1,2 +1,3 @@\n a\n+b\n c\n@@ -10,2 +11,3 @@\n d\n+e\n f"
	idx := BuildIndex(patch)

	hunks := idx.Hunks()
	if len(hunks) != 2 {
		t.Fatalf("got %d hunks, want 2", len(hunks))
	}
	if hunks[0].NewStart != 1 || hunks[1].NewStart != 11 {
		t.Errorf("hunk starts = %d, %d; want 1, 11", hunks[0].NewStart, hunks[1].NewStart)
	}
	if !idx.ValidNew(2) {
		t.Error("new line 2 (added in first hunk) should be valid")
	}
	if !idx.ValidNew(12) {
		t.Error("new line 12 (added in second hunk) should be valid")
	}
	if idx.ValidNew(7) {
		t.Error("new line 7 (between hunks) should not be valid")
	}
}

func TestBuildIndex_HeaderCountDefaults(t *testing.T) {
	// Missing counts default to 1.
	patch := "@@ -5 +5 @@\n changed"
	idx := BuildIndex(patch)

	if !idx.ValidNew(5) || !idx.ValidOld(5) {
		t.Error("line 5 should be valid on both sides")
	}
	hunks := idx.Hunks()
	if len(hunks) != 1 || hunks[0].NewCount != 1 {
		t.Errorf("hunk NewCount = %d, want 1", hunks[0].NewCount)
	}
}

func TestBuildIndex_IgnoresFileHeaders(t *testing.T) {
	patch := "--- a/x.go\n+++ b/x.go\n@@ -1,2 +1,2 @@\n keep\n+new"
	idx := BuildIndex(patch)

	if !idx.ValidNew(1) || !idx.ValidNew(2) {
		t.Error("new lines 1 and 2 should be valid")
	}
	if idx.ValidNew(3) {
		t.Error("+++ header must not advance the new-line counter")
	}
}

func TestBuildIndex_LineKinds(t *testing.T) {
	patch := "@@ -1,2 +1,2 @@\n ctx\n-old\n+new"
	idx := BuildIndex(patch)

	hunks := idx.Hunks()
	if len(hunks) != 1 {
		t.Fatalf("got %d hunks, want 1", len(hunks))
	}
	lines := hunks[0].Lines
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3", len(lines))
	}
	tests := []struct {
		i    int
		kind LineKind
		old  int
		new  int
	}{
		{0, KindContext, 1, 1},
		{1, KindRemoved, 2, 0},
		{2, KindAdded, 0, 2},
	}
	for _, tt := range tests {
		l := lines[tt.i]
		if l.Kind != tt.kind || l.Old != tt.old || l.New != tt.new {
			t.Errorf("line %d = {%d %d %s}, want {%d %d %s}",
				tt.i, l.Old, l.New, l.Kind, tt.old, tt.new, tt.kind)
		}
	}
}
