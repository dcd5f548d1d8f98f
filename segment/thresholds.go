package segment

import "math"

// Tolerance multipliers applied to the target length.
const (
	// MaxLenFactor bounds a segment that is emitted without splitting.
	MaxLenFactor = 1.5

	// MaxLenSlack is the minimum absolute allowance over the target.
	MaxLenSlack = 5

	// ReflowFactor caps lines assembled from punctuation atoms.
	ReflowFactor = 1.3

	// HugeAtomFactor marks an atom that must be segmented again.
	HugeAtomFactor = 1.5

	// EarlySplitFactor is the shortest acceptable whitespace cut.
	EarlySplitFactor = 0.4

	// LateSplitFactor is the furthest acceptable whitespace cut.
	LateSplitFactor = 1.4
)

// Thresholds holds the length bounds derived from a target length.
type Thresholds struct {
	// Limit is the target line length.
	Limit int

	// MaxLen is the longest segment kept whole.
	MaxLen float64

	// ReflowLimit is the longest line built by packing atoms.
	ReflowLimit float64

	// HugeAtomLimit is the longest atom packed without re-segmenting.
	HugeAtomLimit float64

	// EarlySplitFloor rejects whitespace cuts that leave a too-short head.
	EarlySplitFloor float64

	// LateSplitCeiling rejects whitespace cuts that leave a too-long head.
	LateSplitCeiling float64
}

// NewThresholds derives the tolerance bounds for limit.
func NewThresholds(limit int) Thresholds {
	l := float64(limit)
	return Thresholds{
		Limit:            limit,
		MaxLen:           math.Max(l*MaxLenFactor, l+MaxLenSlack),
		ReflowLimit:      l * ReflowFactor,
		HugeAtomLimit:    l * HugeAtomFactor,
		EarlySplitFloor:  l * EarlySplitFactor,
		LateSplitCeiling: l * LateSplitFactor,
	}
}

// Fits returns true if a segment of the given length is kept whole.
func (t Thresholds) Fits(length int) bool {
	return float64(length) <= t.MaxLen
}
