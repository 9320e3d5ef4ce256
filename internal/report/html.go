package report

import (
	"fmt"
	"html/template"
	"os"
	"time"

	"github.com/backmassage/loudcheck/internal/config"
	"github.com/backmassage/loudcheck/internal/display"
	"github.com/backmassage/loudcheck/internal/pipeline"
)

// htmlRow is one pre-formatted table row. All measurement cells are
// strings so that nullable values render as "n/a".
type htmlRow struct {
	Name       string
	Title      string
	Artist     string
	Duration   string
	SampleRate string
	Bitrate    string
	BitDepth   string
	Channels   string
	Codec      string
	Integrated string
	Gain       string
	TruePeak   string
	SamplePeak string
	LRA        string
	Status     string
	Issues     string
	Path       string
}

type htmlPage struct {
	Generated string
	Target    string
	Total     int
	Ready     int
	Adjust    int
	Errors    int
	AvgLUFS   string
	AvgLRA    string
	Rows      []htmlRow
}

// WriteHTML writes the styled report table with a run summary and a
// metric legend.
func WriteHTML(path string, cfg *config.Config, stats pipeline.RunStats, records []pipeline.Record) error {
	page := htmlPage{
		Generated: time.Now().Format("2006-01-02 15:04:05"),
		Target: fmt.Sprintf("%g LUFS ±%g LU, true peak ≤ %g dBTP",
			cfg.TargetLUFS, cfg.ToleranceLU, cfg.TruePeakMax),
		Total:   stats.Total,
		Ready:   stats.Ready,
		Adjust:  stats.Adjust,
		Errors:  stats.Errors,
		AvgLUFS: display.NA,
		AvgLRA:  display.NA,
	}
	if avg, ok := stats.AvgLUFS(); ok {
		page.AvgLUFS = fmt.Sprintf("%.2f LUFS", avg)
	}
	if avg, ok := stats.AvgLRA(); ok {
		page.AvgLRA = fmt.Sprintf("%.2f LU", avg)
	}

	for i := range records {
		rec := &records[i]
		page.Rows = append(page.Rows, htmlRow{
			Name:       rec.Name,
			Title:      rec.Title,
			Artist:     rec.Artist,
			Duration:   display.FormatDuration(rec.Duration),
			SampleRate: display.IntCell(rec.SampleRate),
			Bitrate:    display.Int64Cell(rec.BitrateKbps),
			BitDepth:   display.IntCell(rec.BitDepth),
			Channels:   display.IntCell(rec.Channels),
			Codec:      display.StringCell(rec.Codec),
			Integrated: display.FloatCell(rec.IntegratedLUFS),
			Gain:       display.SignedFloatCell(rec.SuggestedGainDB),
			TruePeak:   display.FloatCell(rec.TruePeakDBTP),
			SamplePeak: display.FloatCell(rec.SamplePeakDBFS),
			LRA:        display.FloatCell(rec.LoudnessRangeLU),
			Status:     string(rec.Verdict),
			Issues:     joinIssues(rec.Issues),
			Path:       rec.Path,
		})
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create HTML report: %w", err)
	}
	defer f.Close()

	if err := htmlTmpl.Execute(f, &page); err != nil {
		return fmt.Errorf("render HTML report: %w", err)
	}
	return f.Close()
}

var htmlTmpl = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Loudness Report</title>
<style>
body { font-family: sans-serif; margin: 2em; color: #222; }
table { border-collapse: collapse; width: 100%; font-size: 0.85em; }
th, td { border: 1px solid #ccc; padding: 4px 8px; text-align: left; }
th { background: #eee; }
tr:nth-child(even) { background: #fafafa; }
td.READY { background: #c8e6c9; font-weight: bold; }
td.ADJUST { background: #fff9c4; font-weight: bold; }
td.ERROR { background: #ffcdd2; font-weight: bold; }
.summary { margin-bottom: 1.5em; }
.summary span { margin-right: 1.5em; }
.legend { margin-top: 2em; font-size: 0.8em; color: #555; }
</style>
</head>
<body>
<h1>Loudness Report</h1>
<div class="summary">
<p>Generated {{.Generated}} &mdash; target {{.Target}}</p>
<p>
<span>Files: <strong>{{.Total}}</strong></span>
<span>READY: <strong>{{.Ready}}</strong></span>
<span>ADJUST: <strong>{{.Adjust}}</strong></span>
<span>ERROR: <strong>{{.Errors}}</strong></span>
<span>Avg loudness: <strong>{{.AvgLUFS}}</strong></span>
<span>Avg LRA: <strong>{{.AvgLRA}}</strong></span>
</p>
</div>
<table>
<tr>
<th>File</th><th>Title</th><th>Artist</th><th>Duration</th>
<th>Sample Rate (Hz)</th><th>Bitrate (kbps)</th><th>Bit Depth</th>
<th>Channels</th><th>Codec</th><th>Integrated (LUFS)</th>
<th>Gain (dB)</th><th>True Peak (dBTP)</th><th>Sample Peak (dBFS)</th>
<th>LRA (LU)</th><th>Status</th><th>Issues</th><th>Path</th>
</tr>
{{range .Rows}}
<tr>
<td>{{.Name}}</td><td>{{.Title}}</td><td>{{.Artist}}</td><td>{{.Duration}}</td>
<td>{{.SampleRate}}</td><td>{{.Bitrate}}</td><td>{{.BitDepth}}</td>
<td>{{.Channels}}</td><td>{{.Codec}}</td><td>{{.Integrated}}</td>
<td>{{.Gain}}</td><td>{{.TruePeak}}</td><td>{{.SamplePeak}}</td>
<td>{{.LRA}}</td><td class="{{.Status}}">{{.Status}}</td><td>{{.Issues}}</td>
<td>{{.Path}}</td>
</tr>
{{end}}
</table>
<div class="legend">
<h2>Metric legend</h2>
<ul>
<li><strong>Integrated (LUFS)</strong>: program loudness over the whole file, per ITU-R BS.1770.</li>
<li><strong>Gain (dB)</strong>: adjustment needed to hit the target loudness.</li>
<li><strong>True Peak (dBTP)</strong>: inter-sample peak estimate; values above the ceiling risk clipping after encoding.</li>
<li><strong>Sample Peak (dBFS)</strong>: highest raw sample value.</li>
<li><strong>LRA (LU)</strong>: loudness range, the spread between soft and loud passages.</li>
<li><strong>Status</strong>: READY passes every check, ADJUST fails at least one, ERROR means analysis was incomplete.</li>
</ul>
</div>
</body>
</html>
`))
