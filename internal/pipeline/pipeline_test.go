package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/backmassage/loudcheck/internal/classify"
	"github.com/backmassage/loudcheck/internal/config"
	"github.com/backmassage/loudcheck/internal/logging"
	"github.com/backmassage/loudcheck/internal/probe"
	"github.com/backmassage/loudcheck/internal/tags"
)

// --- Discover tests ---

func touch(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testExts() map[string]bool {
	cfg := config.DefaultConfig()
	return cfg.ExtensionSet()
}

func TestDiscover_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "track.wav")
	touch(t, dir, "song.flac")
	touch(t, dir, "cover.jpg")
	touch(t, dir, "notes.txt")
	touch(t, dir, "voice.mp3")

	files, err := Discover([]string{dir}, testExts(), true)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	want := []string{"song.flac", "track.wav", "voice.mp3"}
	if got := basenames(files); !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_SortedByBaseName(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "zz")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, dir, "b.wav")
	touch(t, sub, "a.wav")
	touch(t, dir, "c.wav")

	files, err := Discover([]string{dir}, testExts(), true)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.wav", "b.wav", "c.wav"}
	if got := basenames(files); !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_NonRecursiveStopsAtTopLevel(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, dir, "top.wav")
	touch(t, sub, "nested.wav")

	files, err := Discover([]string{dir}, testExts(), false)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"top.wav"}
	if got := basenames(files); !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_ExplicitFileAndDirMix(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.wav")
	other := t.TempDir()
	touch(t, other, "b.flac")

	files, err := Discover([]string{filepath.Join(dir, "a.wav"), other}, testExts(), true)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a.wav", "b.flac"}
	if got := basenames(files); !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_Deduplicates(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.wav")

	files, err := Discover([]string{dir, filepath.Join(dir, "a.wav"), dir}, testExts(), true)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("got %d files, want 1: %v", len(files), files)
	}
}

func TestDiscover_Errors(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "readme.txt")

	if _, err := Discover([]string{filepath.Join(dir, "missing.wav")}, testExts(), true); err == nil {
		t.Error("missing path accepted")
	}
	if _, err := Discover([]string{filepath.Join(dir, "readme.txt")}, testExts(), true); err == nil {
		t.Error("explicitly named non-audio file accepted")
	}
}

// --- Runner tests (subprocess seams stubbed) ---

const loudnormFixture = `[Parsed_loudnorm_0 @ 0x1]
{
	"input_i" : "-18.31",
	"input_tp" : "-2.12",
	"input_lra" : "6.40"
}`

const astatsFixture = `lavfi.astats.Overall.Peak_level=-6.0
lavfi.astats.Overall.Peak_level=-3.2
lavfi.astats.Overall.Peak_level=-4.1`

func stubSeams(t *testing.T, probeJSON string, loudOut, peakOut string) {
	t.Helper()
	origProbe, origRun, origTags := probeFile, runFFmpeg, readTags
	t.Cleanup(func() {
		probeFile, runFFmpeg, readTags = origProbe, origRun, origTags
	})

	probeFile = func(ctx context.Context, path string) (*probe.StreamFacts, error) {
		return probe.ParseJSON([]byte(probeJSON))
	}
	runFFmpeg = func(ctx context.Context, timeout time.Duration, args []string) (string, error) {
		joined := strings.Join(args, " ")
		if strings.Contains(joined, "loudnorm") {
			return loudOut, nil
		}
		return peakOut, nil
	}
	readTags = func(path string) tags.Facts {
		return tags.Facts{Title: "Fixture", Artist: "Tester"}
	}
}

func newTestLogger(t *testing.T) *logging.Logger {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.ColorMode = config.ColorNever
	log, err := logging.NewLogger(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { log.Close() })
	return log
}

func TestRun_FullBatch(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "quiet.wav")
	touch(t, dir, "also-quiet.flac")

	probeJSON := `{"streams":[{"codec_type":"audio","codec_name":"flac",
		"sample_rate":"48000","channels":2,"bits_per_sample":16}],
		"format":{"duration":"212.5","bit_rate":"1536000"}}`
	stubSeams(t, probeJSON, loudnormFixture, astatsFixture)

	cfg := config.DefaultConfig()
	cfg.Paths = []string{dir}
	cfg.NoProgress = true
	cfg.ColorMode = config.ColorNever

	stats, records, err := Run(context.Background(), &cfg, newTestLogger(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Total != 2 || len(records) != 2 {
		t.Fatalf("stats.Total = %d, records = %d, want 2/2", stats.Total, len(records))
	}
	if stats.Adjust != 2 {
		t.Errorf("Adjust = %d, want 2 (files are 4.31 LU below target)", stats.Adjust)
	}

	rec := records[0]
	if rec.Name != "also-quiet.flac" {
		t.Errorf("records not sorted by name: first is %s", rec.Name)
	}
	if rec.IntegratedLUFS == nil || *rec.IntegratedLUFS != -18.31 {
		t.Errorf("IntegratedLUFS = %v, want -18.31", rec.IntegratedLUFS)
	}
	if rec.SamplePeakDBFS == nil || *rec.SamplePeakDBFS != -3.2 {
		t.Errorf("SamplePeakDBFS = %v, want -3.2", rec.SamplePeakDBFS)
	}
	if rec.SuggestedGainDB == nil || *rec.SuggestedGainDB != 4.31 {
		t.Errorf("SuggestedGainDB = %v, want 4.31", rec.SuggestedGainDB)
	}
	if rec.Verdict != classify.VerdictAdjust {
		t.Errorf("Verdict = %s, want ADJUST", rec.Verdict)
	}
	if len(rec.Issues) != 1 || rec.Issues[0] != classify.IssueLUFSLow {
		t.Errorf("Issues = %v, want [LUFS LOW]", rec.Issues)
	}
	if rec.Title != "Fixture" || rec.Artist != "Tester" {
		t.Errorf("tag facts = %q/%q", rec.Title, rec.Artist)
	}

	if avg, ok := stats.AvgLUFS(); !ok || avg != -18.31 {
		t.Errorf("AvgLUFS = %v/%v, want -18.31/true", avg, ok)
	}
}

func TestRun_ExtractionFailureYieldsErrorRecordAndDump(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "broken.wav")
	debugDir := filepath.Join(t.TempDir(), "debug")

	stubSeams(t, `{"streams":[],"format":{}}`, "no json here at all", "")

	cfg := config.DefaultConfig()
	cfg.Paths = []string{dir}
	cfg.NoProgress = true
	cfg.ColorMode = config.ColorNever
	cfg.DebugDir = debugDir

	stats, records, err := Run(context.Background(), &cfg, newTestLogger(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
	rec := records[0]
	if rec.Verdict != classify.VerdictError {
		t.Errorf("Verdict = %s, want ERROR", rec.Verdict)
	}
	if rec.IntegratedLUFS != nil || rec.TruePeakDBTP != nil || rec.LoudnessRangeLU != nil {
		t.Error("loudness facts should all be nil after extraction failure")
	}
	if rec.SuggestedGainDB != nil {
		t.Error("no suggested gain without integrated loudness")
	}
	if len(rec.Issues) == 0 || rec.Issues[0] != classify.IssueAnalysisError {
		t.Errorf("Issues = %v, want ANALYSIS ERROR first", rec.Issues)
	}

	entries, err := os.ReadDir(debugDir)
	if err != nil || len(entries) == 0 {
		t.Errorf("expected a debug dump in %s (err %v)", debugDir, err)
	}
}

func TestRun_NoFiles(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Paths = []string{t.TempDir()}
	cfg.NoProgress = true
	cfg.ColorMode = config.ColorNever

	stats, records, err := Run(context.Background(), &cfg, newTestLogger(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if stats.Total != 0 || len(records) != 0 {
		t.Errorf("stats.Total = %d, records = %d, want 0/0", stats.Total, len(records))
	}
}

func TestRun_BadPathIsAnError(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Paths = []string{filepath.Join(t.TempDir(), "typo")}
	cfg.NoProgress = true
	cfg.ColorMode = config.ColorNever

	if _, _, err := Run(context.Background(), &cfg, newTestLogger(t)); err == nil {
		t.Error("nonexistent path should fail the run")
	}
}

func TestRun_CancelledContextStopsBetweenFiles(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "a.wav")
	touch(t, dir, "b.wav")

	stubSeams(t, `{"streams":[],"format":{}}`, loudnormFixture, astatsFixture)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := config.DefaultConfig()
	cfg.Paths = []string{dir}
	cfg.NoProgress = true
	cfg.ColorMode = config.ColorNever

	_, records, err := Run(ctx, &cfg, newTestLogger(t))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("processed %d records under a cancelled context, want 0", len(records))
	}
}

func TestStats_Averages(t *testing.T) {
	var s RunStats
	lufs1, lra1 := -14.0, 6.0
	lufs2, lra2 := -16.0, 10.0
	s.Count(&Record{Verdict: classify.VerdictReady, IntegratedLUFS: &lufs1, LoudnessRangeLU: &lra1})
	s.Count(&Record{Verdict: classify.VerdictAdjust, IntegratedLUFS: &lufs2, LoudnessRangeLU: &lra2})
	s.Count(&Record{Verdict: classify.VerdictError})

	if s.Ready != 1 || s.Adjust != 1 || s.Errors != 1 {
		t.Errorf("counts = %d/%d/%d, want 1/1/1", s.Ready, s.Adjust, s.Errors)
	}
	if avg, ok := s.AvgLUFS(); !ok || avg != -15.0 {
		t.Errorf("AvgLUFS = %v/%v, want -15/true", avg, ok)
	}
	if avg, ok := s.AvgLRA(); !ok || avg != 8.0 {
		t.Errorf("AvgLRA = %v/%v, want 8/true", avg, ok)
	}
}
