package segment

// findBestSplitIndex returns the index of the whitespace unit to cut at.
//
// Positions are cumulative widths. The preferred cut is the last whitespace
// at or before the limit; it is rejected if it lies before the early split
// floor. Otherwise the first whitespace after the limit is used if it lies
// within the late split ceiling. It reports false when neither qualifies.
// The scan stops at the ceiling, so its cost does not depend on the tail.
func findBestSplitIndex(units []unit, th Thresholds) (int, bool) {
	primary, primaryPos := -1, 0
	next, nextPos := -1, 0

	pos := 0
	for i, u := range units {
		if float64(pos) > th.LateSplitCeiling {
			break
		}
		if u.kind == kindSpace {
			if pos <= th.Limit {
				primary, primaryPos = i, pos
			} else {
				next, nextPos = i, pos
				break
			}
		}
		pos += u.width
	}

	if primary >= 0 && float64(primaryPos) >= th.EarlySplitFloor {
		return primary, true
	}
	if next >= 0 && float64(nextPos) <= th.LateSplitCeiling {
		return next, true
	}
	return 0, false
}

// hardCutIndex returns the largest prefix length whose width fits within
// limit. At least one unit is always taken so the remainder shrinks.
func hardCutIndex(units []unit, limit int) int {
	pos := 0
	for i, u := range units {
		if pos+u.width > limit {
			if i == 0 {
				return 1
			}
			return i
		}
		pos += u.width
	}
	return len(units)
}
