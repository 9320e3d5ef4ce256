package pipeline

import (
	"github.com/backmassage/loudcheck/internal/classify"
)

// Record is the complete measurement result for one file. Constructed once
// inside processFile and never mutated afterwards.
type Record struct {
	Name string // Base file name.
	Path string // Absolute path.

	// Stream facts (nil when the probe failed or the container omits them).
	Duration    *float64
	SampleRate  *int
	BitDepth    *int
	Channels    *int
	Codec       *string
	BitrateKbps *int64

	// Loudness facts (nil when extraction failed).
	IntegratedLUFS  *float64
	TruePeakDBTP    *float64
	LoudnessRangeLU *float64
	SamplePeakDBFS  *float64

	// Derived.
	SuggestedGainDB *float64
	Verdict         classify.Verdict
	Issues          []string

	// Display-only embedded metadata.
	Title  string
	Artist string
}
