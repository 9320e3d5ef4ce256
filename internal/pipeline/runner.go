package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/backmassage/loudcheck/internal/classify"
	"github.com/backmassage/loudcheck/internal/config"
	"github.com/backmassage/loudcheck/internal/extract"
	"github.com/backmassage/loudcheck/internal/ffmpeg"
	"github.com/backmassage/loudcheck/internal/logging"
	"github.com/backmassage/loudcheck/internal/probe"
	"github.com/backmassage/loudcheck/internal/tags"
	"github.com/backmassage/loudcheck/internal/term"
)

// Seams for testing without ffmpeg/ffprobe binaries.
var (
	probeFile = probe.Probe
	runFFmpeg = ffmpeg.Run
	readTags  = tags.Read
)

// Run is the batch entry point: discover, process each file sequentially,
// aggregate. The returned records are ordered by file name. The only
// error surface is discovery; per-file failures are absorbed into records.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, []Record, error) {
	var stats RunStats

	files, err := Discover(cfg.Paths, cfg.ExtensionSet(), cfg.Recursive)
	if err != nil {
		return stats, nil, err
	}

	stats.Total = len(files)
	if stats.Total == 0 {
		return stats, nil, nil
	}

	log.Info("Found %d audio files", stats.Total)
	log.Info("Target: %g LUFS ±%g LU, true peak ≤ %g dBTP",
		cfg.TargetLUFS, cfg.ToleranceLU, cfg.TruePeakMax)

	var bar *progressbar.ProgressBar
	if !cfg.NoProgress && !cfg.Verbose && term.IsTerminal(os.Stdout) {
		bar = progressbar.NewOptions(stats.Total,
			progressbar.OptionSetDescription("Analyzing"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetWidth(40),
		)
	}

	runStamp := time.Now()
	records := make([]Record, 0, stats.Total)

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted after %d of %d files", i, stats.Total)
			break
		}

		rec := processFile(ctx, cfg, log, path, runStamp)
		stats.Count(&rec)
		records = append(records, rec)

		if bar != nil {
			_ = bar.Add(1)
		}
	}

	if bar != nil {
		_ = bar.Finish()
		_, _ = os.Stdout.WriteString("\n")
	}
	return stats, records, nil
}

// processFile runs the full per-file sequence: probe, loudness pass, peak
// pass, tag read, classification. Every failure is absorbed into the
// record's nil fields; nothing escapes to abort the batch.
func processFile(ctx context.Context, cfg *config.Config, log *logging.Logger, path string, runStamp time.Time) Record {
	name := filepath.Base(path)
	log.Debug("[%s] probing", name)

	rec := Record{Name: name, Path: path}

	// --- Probe (per-field nullable; a failed probe nulls everything) ---
	probeCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	facts, err := probeFile(probeCtx, path)
	cancel()
	if err != nil {
		log.Debug("[%s] probe failed: %v", name, err)
	}
	rec.Duration = facts.Duration
	rec.SampleRate = facts.SampleRate
	rec.BitDepth = facts.BitDepth
	rec.Channels = facts.Channels
	rec.Codec = facts.Codec
	rec.BitrateKbps = facts.BitrateKbps

	// --- Loudness pass ---
	loud := extractLoudness(ctx, cfg, log, path, runStamp)
	if loud != nil {
		rec.IntegratedLUFS = &loud.IntegratedLUFS
		rec.TruePeakDBTP = &loud.TruePeakDBTP
		rec.LoudnessRangeLU = &loud.LoudnessRangeLU
	}

	// --- Sample-peak pass ---
	out, err := runFFmpeg(ctx, cfg.Timeout, ffmpeg.AstatsArgs(path))
	if err != nil && !errors.Is(err, ffmpeg.ErrTimeout) {
		log.Debug("[%s] astats pass exited: %v", name, err)
	}
	rec.SamplePeakDBFS = extract.MaxOverallPeak(extract.SplitLines(out))

	// --- Embedded metadata (display only) ---
	t := readTags(path)
	rec.Title = t.Title
	rec.Artist = t.Artist

	// --- Classify ---
	verdict, issues := classify.Classify(classify.Measurements{
		IntegratedLUFS:  rec.IntegratedLUFS,
		TruePeakDBTP:    rec.TruePeakDBTP,
		LoudnessRangeLU: rec.LoudnessRangeLU,
		SampleRate:      rec.SampleRate,
	}, classify.Thresholds{
		TargetLUFS:   cfg.TargetLUFS,
		ToleranceLU:  cfg.ToleranceLU,
		TruePeakMax:  cfg.TruePeakMax,
		AllowedRates: cfg.AllowedRateSet(),
	})
	rec.Verdict = verdict
	rec.Issues = issues
	rec.SuggestedGainDB = classify.SuggestedGain(cfg.TargetLUFS, rec.IntegratedLUFS)

	log.Debug("[%s] verdict %s, issues %v", name, verdict, issues)
	return rec
}

// extractLoudness runs the loudnorm pass and scrapes the embedded JSON.
// On failure the diagnostic text (and best-effort span) is dumped to the
// debug directory and nil is returned.
func extractLoudness(ctx context.Context, cfg *config.Config, log *logging.Logger, path string, runStamp time.Time) *extract.LoudnessFacts {
	name := filepath.Base(path)

	out, runErr := runFFmpeg(ctx, cfg.Timeout,
		ffmpeg.LoudnormArgs(path, cfg.TargetLUFS, cfg.TruePeakMax, cfg.LoudnessRangeLU))
	if runErr != nil {
		log.Debug("[%s] loudnorm pass exited: %v", name, runErr)
	}

	lines := extract.SplitLines(out)
	span, ok := extract.LoudnormJSON(lines)
	if !ok {
		log.Warn("[%s] loudness analysis produced no JSON block", name)
		extract.DumpFailure(cfg.DebugDir, path, runStamp, out, "")
		return nil
	}

	facts, err := extract.ParseLoudnorm(span)
	if err != nil {
		log.Warn("[%s] loudness JSON unparseable: %v", name, err)
		extract.DumpFailure(cfg.DebugDir, path, runStamp, out, span)
		return nil
	}
	return facts
}
