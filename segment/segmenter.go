package segment

import (
	"fmt"
	"log/slog"

	"github.com/randalmurphal/lyricseg/measure"
)

// MinLimit is the smallest accepted target length.
const MinLimit = 1

// Segmenter splits lyric text into display lines.
type Segmenter struct {
	counter measure.Counter
	guard   *guard
}

// New creates a segmenter that counts runes and protects the default
// abbreviations.
func New() *Segmenter {
	return &Segmenter{
		counter: measure.NewRuneCounter(),
		guard:   newGuard(DefaultAbbreviations),
	}
}

// WithCounter sets the length counter.
func (s *Segmenter) WithCounter(counter measure.Counter) *Segmenter {
	s.counter = counter
	return s
}

// WithAbbreviations protects additional abbreviations alongside
// DefaultAbbreviations. A trailing period on an entry is ignored.
func (s *Segmenter) WithAbbreviations(abbreviations ...string) *Segmenter {
	all := make([]string, 0, len(DefaultAbbreviations)+len(abbreviations))
	all = append(all, DefaultAbbreviations...)
	all = append(all, abbreviations...)
	s.guard = newGuard(all)
	return s
}

// Segment splits raw into display lines for the target length limit.
// It returns ErrInvalidLimit if limit is below MinLimit.
func (s *Segmenter) Segment(raw string, limit int) ([]string, error) {
	if limit < MinLimit {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLimit, limit)
	}
	return s.segment(raw, limit), nil
}

// Lines is like Segment but clamps limit to MinLimit instead of failing.
func (s *Segmenter) Lines(raw string, limit int) []string {
	if limit < MinLimit {
		limit = MinLimit
	}
	return s.segment(raw, limit)
}

// Lyrics splits raw into display lines using the default segmenter.
// A limit below MinLimit is clamped.
func Lyrics(raw string, limit int) []string {
	return New().Lines(raw, limit)
}

func (s *Segmenter) segment(raw string, limit int) []string {
	th := NewThresholds(limit)
	lines := []string{}
	for _, p := range splitIntoParagraphs(raw) {
		units := toUnits(s.counter.Clusters(p), s.guard.protect(p))
		lines = process(trimUnits(units), th, lines)
	}
	return lines
}

// process segments one paragraph and appends its lines to out.
//
// Pending work is kept on an explicit stack instead of the call stack. Each
// step pushes its results in reverse so they pop in reading order, and every
// pending segment is strictly narrower than the one it came from.
func process(paragraph []unit, th Thresholds, out []string) []string {
	if len(paragraph) == 0 {
		return out
	}
	return drain([]task{{units: paragraph, width: widthOf(paragraph), bound: -1}}, th, out)
}

func drain(stack []task, th Thresholds, out []string) []string {
	push := func(tasks ...task) {
		for i := len(tasks) - 1; i >= 0; i-- {
			stack = append(stack, tasks[i])
		}
	}

	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !t.pending() {
			out = append(out, t.line)
			continue
		}

		seg, w := t.units, t.width

		// Progress guard: a segment that did not shrink is hard cut.
		if t.bound >= 0 && w >= t.bound {
			push(cut(seg, hardCutIndex(seg, th.Limit), w, t.plain)...)
			continue
		}

		if th.Fits(w) {
			out = append(out, textOf(seg))
			continue
		}

		if !t.plain {
			if tasks, ok := packAndReflow(atoms(seg, sentenceCuts(seg)), th, w); ok {
				push(tasks...)
				continue
			}
			if tasks, ok := packAndReflow(atoms(seg, clauseCuts(seg)), th, w); ok {
				push(tasks...)
				continue
			}
		}

		idx, ok := findBestSplitIndex(seg, th)
		if !ok {
			idx = hardCutIndex(seg, th.Limit)
			slog.Debug("no usable whitespace, cutting at limit",
				slog.Int("limit", th.Limit),
				slog.Int("width", w))
		}
		push(cut(seg, idx, w, true)...)
	}
	return out
}

// cut splits seg, of the given width, at idx into an emitted head and a
// pending tail. The tail width is derived from the head so each cut costs
// only the head's length.
func cut(seg []unit, idx, width int, plain bool) []task {
	var tasks []task
	if head := trimUnits(seg[:idx]); len(head) > 0 {
		tasks = append(tasks, emit(textOf(head)))
	}

	rest, restWidth := seg[idx:], width-widthOf(seg[:idx])
	for len(rest) > 0 && rest[0].kind == kindSpace {
		restWidth -= rest[0].width
		rest = rest[1:]
	}
	for len(rest) > 0 && rest[len(rest)-1].kind == kindSpace {
		restWidth -= rest[len(rest)-1].width
		rest = rest[:len(rest)-1]
	}
	if len(rest) > 0 {
		tasks = append(tasks, task{units: rest, width: restWidth, bound: width, plain: plain})
	}
	return tasks
}
