package pipeline

import "github.com/backmassage/loudcheck/internal/classify"

// RunStats aggregates the batch outcome for the summary and report headers.
type RunStats struct {
	Total   int
	Current int
	Ready   int
	Adjust  int
	Errors  int

	// Sums over files whose loudness analysis succeeded, for averages.
	lufsSum  float64
	lraSum   float64
	analyzed int
}

// Count folds one finished record into the totals.
func (s *RunStats) Count(rec *Record) {
	switch rec.Verdict {
	case classify.VerdictReady:
		s.Ready++
	case classify.VerdictAdjust:
		s.Adjust++
	default:
		s.Errors++
	}
	if rec.IntegratedLUFS != nil && rec.LoudnessRangeLU != nil {
		s.lufsSum += *rec.IntegratedLUFS
		s.lraSum += *rec.LoudnessRangeLU
		s.analyzed++
	}
}

// AvgLUFS returns the mean integrated loudness over analyzed files, or
// false when no file was analyzed successfully.
func (s *RunStats) AvgLUFS() (float64, bool) {
	if s.analyzed == 0 {
		return 0, false
	}
	return s.lufsSum / float64(s.analyzed), true
}

// AvgLRA returns the mean loudness range over analyzed files.
func (s *RunStats) AvgLRA() (float64, bool) {
	if s.analyzed == 0 {
		return 0, false
	}
	return s.lraSum / float64(s.analyzed), true
}
