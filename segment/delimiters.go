package segment

// A cut is an exclusive unit index just past a delimiter. Cutting a segment
// at its cuts and trimming every piece yields content+delimiter atoms; the
// whitespace between atoms is the only thing dropped.

// breakAt reports whether position i is followed by whitespace or the end.
func breakAt(units []unit, i int) bool {
	return i >= len(units) || units[i].kind == kindSpace
}

// sentenceCuts finds runs of sentence terminators followed by whitespace or
// the end of the segment.
func sentenceCuts(units []unit) []int {
	var cuts []int
	for i := 0; i < len(units); {
		if units[i].kind != kindTerminator {
			i++
			continue
		}
		j := i
		for j < len(units) && units[j].kind == kindTerminator {
			j++
		}
		if breakAt(units, j) {
			cuts = append(cuts, j)
		}
		i = j
	}
	return cuts
}

// clauseCuts finds clause punctuation, whitespace-bounded dash runs and
// ellipses, each followed by whitespace or the end of the segment. A dash
// inside a word ("semi-detached") is not a delimiter.
func clauseCuts(units []unit) []int {
	var cuts []int
	for i := 0; i < len(units); i++ {
		switch {
		case units[i].kind == kindClause:
			if breakAt(units, i+1) {
				cuts = append(cuts, i+1)
			}

		case units[i].kind == kindDash:
			j := i
			for j < len(units) && units[j].kind == kindDash {
				j++
			}
			if i > 0 && units[i-1].kind == kindSpace && breakAt(units, j) {
				cuts = append(cuts, j)
			}
			i = j - 1

		case units[i].period:
			j := i
			for j < len(units) && units[j].period {
				j++
			}
			if j-i >= 3 && breakAt(units, j) {
				cuts = append(cuts, j)
			}
			i = j - 1
		}
	}
	return cuts
}

// atoms cuts units at the given positions and returns the trimmed,
// non-empty pieces in order.
func atoms(units []unit, cuts []int) [][]unit {
	var out [][]unit
	prev := 0
	for _, c := range cuts {
		if a := trimUnits(units[prev:c]); len(a) > 0 {
			out = append(out, a)
		}
		prev = c
	}
	if a := trimUnits(units[prev:]); len(a) > 0 {
		out = append(out, a)
	}
	return out
}
