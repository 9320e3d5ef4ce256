// Package classify derives the per-file compliance verdict from measured
// loudness facts and configured thresholds. Pure functions; no I/O.
package classify

import "math"

// Verdict is the per-file compliance classification.
type Verdict string

const (
	VerdictReady  Verdict = "READY"  // All checks pass; no adjustment needed.
	VerdictAdjust Verdict = "ADJUST" // Measured, but at least one check fails.
	VerdictError  Verdict = "ERROR"  // One or more loudness facts missing.
)

// Issue tags, in report order.
const (
	IssueAnalysisError   = "ANALYSIS ERROR"
	IssueLUFSHigh        = "LUFS HIGH"
	IssueLUFSLow         = "LUFS LOW"
	IssueTruePeakHot     = "TRUE PEAK HOT"
	IssueSampleRateCheck = "SAMPLE RATE CHECK"
)

// Thresholds holds the configured compliance targets.
type Thresholds struct {
	TargetLUFS   float64
	ToleranceLU  float64
	TruePeakMax  float64
	AllowedRates map[int]bool
}

// Measurements holds the nullable inputs to classification. SamplePeak is
// informational and never affects the verdict.
type Measurements struct {
	IntegratedLUFS  *float64
	TruePeakDBTP    *float64
	LoudnessRangeLU *float64
	SampleRate      *int
}

// Classify maps measurements and thresholds to a verdict and the full
// ordered issue set. Every failing check contributes its tag, not just the
// first; a missing loudness fact forces ERROR but the remaining checks are
// still evaluated for tag completeness.
//
// Boundary semantics: integrated loudness exactly at target±tolerance is
// in-window, and a true peak exactly at the ceiling is compliant.
func Classify(m Measurements, t Thresholds) (Verdict, []string) {
	analysisOK := m.IntegratedLUFS != nil && m.TruePeakDBTP != nil && m.LoudnessRangeLU != nil

	var issues []string
	if !analysisOK {
		issues = append(issues, IssueAnalysisError)
	}

	lufsOK := true
	if m.IntegratedLUFS != nil {
		switch {
		case *m.IntegratedLUFS > t.TargetLUFS+t.ToleranceLU:
			issues = append(issues, IssueLUFSHigh)
			lufsOK = false
		case *m.IntegratedLUFS < t.TargetLUFS-t.ToleranceLU:
			issues = append(issues, IssueLUFSLow)
			lufsOK = false
		}
	}

	peakOK := true
	if m.TruePeakDBTP != nil && *m.TruePeakDBTP > t.TruePeakMax {
		issues = append(issues, IssueTruePeakHot)
		peakOK = false
	}

	// Absence of a sample rate is not penalized.
	rateOK := true
	if m.SampleRate != nil && !t.AllowedRates[*m.SampleRate] {
		issues = append(issues, IssueSampleRateCheck)
		rateOK = false
	}

	switch {
	case !analysisOK:
		return VerdictError, issues
	case lufsOK && peakOK && rateOK:
		return VerdictReady, issues
	default:
		return VerdictAdjust, issues
	}
}

// SuggestedGain returns the advisory gain in dB to reach the target,
// rounded to two decimals. Nil when integrated loudness is unknown.
func SuggestedGain(targetLUFS float64, integrated *float64) *float64 {
	if integrated == nil {
		return nil
	}
	gain := math.Round((targetLUFS-*integrated)*100) / 100
	return &gain
}
