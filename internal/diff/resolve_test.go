package diff

import "testing"

func TestResolveLine_ExactHit(t *testing.T) {
	patch := "@@ -1,3 +1,5 @@\n line1\n+added1\n+added2\n line2\n line3"
	idx := BuildIndex(patch)

	got, ok := ResolveLine(2, idx, DefaultMaxDistance)
	if !ok || got != 2 {
		t.Errorf("ResolveLine(2) = (%d, %v), want (2, true)", got, ok)
	}

	// Idempotent: every valid line resolves to itself.
	for n := 1; n <= 5; n++ {
		got, ok := ResolveLine(n, idx, DefaultMaxDistance)
		if !ok || got != n {
			t.Errorf("ResolveLine(%d) = (%d, %v), want (%d, true)", n, got, ok, n)
		}
	}
}

func TestResolveLine_NearestWithinRadius(t *testing.T) {
	// Patch covering only new-file lines 5 and 6.
	patch := "@@ -5,2 +5,2 @@\n+five\n+six"
	idx := BuildIndex(patch)

	tests := []struct {
		target  int
		maxDist int
		want    int
		wantOK  bool
	}{
		{4, 3, 5, true},  // one below the window
		{8, 1, 0, false}, // distance 2 from line 6, radius 1
		{8, 2, 6, true},
		{2, 3, 5, true},
		{1, 3, 0, false},
		{9, 3, 6, true},
		{10, 3, 0, false},
	}
	for _, tt := range tests {
		got, ok := ResolveLine(tt.target, idx, tt.maxDist)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("ResolveLine(%d, maxDist=%d) = (%d, %v), want (%d, %v)",
				tt.target, tt.maxDist, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestResolveLine_PrefersLineAbove(t *testing.T) {
	// Lines 3 and 7 are valid; target 5 is equidistant from both.
	patch := "@@ -3,1 +3,1 @@\n+three\n@@ -7,1 +7,1 @@\n+seven"
	idx := BuildIndex(patch)

	got, ok := ResolveLine(5, idx, 3)
	if !ok || got != 3 {
		t.Errorf("ResolveLine(5) = (%d, %v), want (3, true): ties break upward", got, ok)
	}
}

func TestResolveLine_NeverExceedsRadius(t *testing.T) {
	patch := "@@ -20,1 +20,1 @@\n+twenty"
	idx := BuildIndex(patch)

	for target := 1; target <= 40; target++ {
		got, ok := ResolveLine(target, idx, 3)
		if !ok {
			continue
		}
		dist := got - target
		if dist < 0 {
			dist = -dist
		}
		if dist > 3 {
			t.Errorf("ResolveLine(%d) = %d, distance %d exceeds radius 3", target, got, dist)
		}
	}
}

func TestResolveLine_EmptyIndex(t *testing.T) {
	if _, ok := ResolveLine(1, BuildIndex(""), DefaultMaxDistance); ok {
		t.Error("resolving against an empty index should fail")
	}
	if _, ok := ResolveLine(1, nil, DefaultMaxDistance); ok {
		t.Error("resolving against a nil index should fail")
	}
}
