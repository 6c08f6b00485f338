package diff

// DefaultMaxDistance is the search radius used when the configuration does
// not override it.
const DefaultMaxDistance = 3

// ResolveLine maps target onto a valid new-file line in the index. An
// already-valid line is returned unchanged. Otherwise the search widens
// one offset at a time, checking the line above before the line below at
// equal distance, and stops at maxDistance. The second return value is
// false when no valid line exists within the radius.
func ResolveLine(target int, idx *Index, maxDistance int) (int, bool) {
	if idx == nil {
		return 0, false
	}
	if idx.ValidNew(target) {
		return target, true
	}
	for offset := 1; offset <= maxDistance; offset++ {
		if above := target - offset; above >= 1 && idx.ValidNew(above) {
			return above, true
		}
		if idx.ValidNew(target + offset) {
			return target + offset, true
		}
	}
	return 0, false
}
