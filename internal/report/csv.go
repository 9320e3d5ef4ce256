// Package report renders the batch results as CSV and HTML artifacts.
// Records arrive already sorted by file name; the writers preserve order.
package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/backmassage/loudcheck/internal/display"
	"github.com/backmassage/loudcheck/internal/pipeline"
)

var csvHeader = []string{
	"File", "Duration", "SampleRate_Hz", "Bitrate_kbps", "BitDepth",
	"Channels", "Codec", "IntegratedLUFS", "SuggestedGain_dB",
	"TruePeak_dBTP", "SamplePeak_dBFS", "LRA", "Status", "Issues", "Path",
}

// WriteCSV writes one row per record to path.
func WriteCSV(path string, records []pipeline.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create CSV report: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}
	for i := range records {
		if err := w.Write(csvRow(&records[i])); err != nil {
			return fmt.Errorf("write CSV row for %s: %w", records[i].Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush CSV report: %w", err)
	}
	return f.Close()
}

func csvRow(rec *pipeline.Record) []string {
	return []string{
		rec.Name,
		display.FormatDuration(rec.Duration),
		display.IntCell(rec.SampleRate),
		display.Int64Cell(rec.BitrateKbps),
		display.IntCell(rec.BitDepth),
		display.IntCell(rec.Channels),
		display.StringCell(rec.Codec),
		display.FloatCell(rec.IntegratedLUFS),
		display.SignedFloatCell(rec.SuggestedGainDB),
		display.FloatCell(rec.TruePeakDBTP),
		display.FloatCell(rec.SamplePeakDBFS),
		display.FloatCell(rec.LoudnessRangeLU),
		string(rec.Verdict),
		joinIssues(rec.Issues),
		rec.Path,
	}
}

func joinIssues(issues []string) string {
	if len(issues) == 0 {
		return "NONE"
	}
	return strings.Join(issues, "|")
}
