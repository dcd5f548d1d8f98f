package segment

import "strings"

// task is an entry of the segmentation work stack: either a finished line
// or a segment still to be processed.
type task struct {
	line  string
	units []unit
	width int

	// bound is the width of the segment this one was split from; a
	// pending segment must be strictly narrower. Negative for paragraphs.
	bound int

	// plain is set on tails of a whitespace or hard cut. Such a tail is a
	// suffix of a segment without usable punctuation, so it has none either.
	plain bool
}

func emit(line string) task {
	return task{line: line}
}

func (t task) pending() bool {
	return t.units != nil
}

// packAndReflow greedily packs atoms into lines joined by single spaces,
// keeping each line within the reflow limit. An atom wider than the huge
// atom limit closes the running line and is returned as a pending segment
// in its place, so it is re-segmented before any later atom is emitted.
//
// It reports false, returning nothing, when fewer than two atoms are given.
func packAndReflow(parts [][]unit, th Thresholds, bound int) ([]task, bool) {
	if len(parts) < 2 {
		return nil, false
	}

	var (
		tasks []task
		line  []string
		width int
	)
	flush := func() {
		if len(line) > 0 {
			tasks = append(tasks, emit(strings.Join(line, " ")))
			line, width = nil, 0
		}
	}

	for _, a := range parts {
		w := widthOf(a)
		switch {
		case float64(w) > th.HugeAtomLimit:
			flush()
			tasks = append(tasks, task{units: a, width: w, bound: bound})
		case len(line) == 0:
			line, width = []string{textOf(a)}, w
		case float64(width+1+w) <= th.ReflowLimit:
			line = append(line, textOf(a))
			width += 1 + w
		default:
			flush()
			line, width = []string{textOf(a)}, w
		}
	}
	flush()

	return tasks, true
}
