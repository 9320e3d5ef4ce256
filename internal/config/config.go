// Package config holds runtime configuration: defaults, validation, and
// the threshold set the classifier runs against. Values are populated by
// [DefaultConfig] and then overridden by CLI flags in cmd/loudcheck.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// Config holds all runtime settings. Passed by pointer to packages that
// need it; never mutated after flag parsing completes.
type Config struct {
	// Input paths (files or directories), set from positional args.
	// Empty means current working directory.
	Paths []string

	// Compliance thresholds.
	TargetLUFS      float64 // Default: -14.0 (streaming target).
	ToleranceLU     float64 // Default: 0.5. Closed window around target.
	TruePeakMax     float64 // Default: -1.0 dBTP ceiling.
	AllowedRates    []int   // Default: 44100, 48000 Hz.
	LoudnessRangeLU float64 // LRA target passed to the analysis filter. Fixed: 8.

	// Discovery.
	Extensions []string // Lowercase, with leading dot. Default: common audio formats.
	Recursive  bool     // Default: true. Walk subdirectories.

	// Subprocess control.
	Timeout time.Duration // Per-invocation ffmpeg/ffprobe timeout. Default: 10m.

	// Output artifacts.
	CSVPath  string // Default: "loudness_report.csv".
	HTMLPath string // Default: "loudness_report.html".
	DebugDir string // Directory for extraction-failure dumps. Empty disables.

	// Display and logging.
	Verbose    bool
	NoProgress bool      // Suppress the analysis progress bar.
	ColorMode  ColorMode // Default: "auto".
	LogFile    string    // Optional log file path.
	CheckOnly  bool      // Run --check diagnostics and exit.
}

// DefaultConfig returns a Config with the reference thresholds: -14 LUFS
// target, 0.5 LU tolerance, -1.0 dBTP ceiling, 44.1/48 kHz allow-list.
func DefaultConfig() Config {
	return Config{
		TargetLUFS:      -14.0,
		ToleranceLU:     0.5,
		TruePeakMax:     -1.0,
		AllowedRates:    []int{44100, 48000},
		LoudnessRangeLU: 8,
		Extensions:      []string{".wav", ".flac", ".mp3", ".m4a", ".aac", ".ogg", ".opus", ".aiff", ".aif", ".wma"},
		Recursive:       true,
		Timeout:         10 * time.Minute,
		CSVPath:         "loudness_report.csv",
		HTMLPath:        "loudness_report.html",
		ColorMode:       ColorAuto,
	}
}

// Validate checks threshold sanity and enum fields. The extension list is
// normalized in place (lowercased, dot-prefixed, deduplicated, sorted).
func (c *Config) Validate() error {
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}

	if c.ToleranceLU < 0 {
		return fmt.Errorf("tolerance must not be negative (got %g)", c.ToleranceLU)
	}
	if c.TargetLUFS > 0 {
		return fmt.Errorf("target loudness must be negative LUFS (got %g)", c.TargetLUFS)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive (got %s)", c.Timeout)
	}
	if len(c.AllowedRates) == 0 {
		return errors.New("allowed sample-rate list must not be empty")
	}
	for _, r := range c.AllowedRates {
		if r <= 0 {
			return fmt.Errorf("invalid sample rate %d in allow-list", r)
		}
	}

	exts, err := NormalizeExtensions(c.Extensions)
	if err != nil {
		return err
	}
	c.Extensions = exts

	if !c.CheckOnly && c.CSVPath == "" && c.HTMLPath == "" {
		return errors.New("at least one of CSV or HTML report paths is required")
	}
	return nil
}

// AllowedRateSet returns the allow-list as a membership set for the classifier.
func (c *Config) AllowedRateSet() map[int]bool {
	set := make(map[int]bool, len(c.AllowedRates))
	for _, r := range c.AllowedRates {
		set[r] = true
	}
	return set
}

// ExtensionSet returns the extension filter as a membership set for discovery.
func (c *Config) ExtensionSet() map[string]bool {
	set := make(map[string]bool, len(c.Extensions))
	for _, e := range c.Extensions {
		set[e] = true
	}
	return set
}

// NormalizeExtensions lowercases, prefixes a missing dot, deduplicates, and
// sorts an extension list. Empty entries are rejected.
func NormalizeExtensions(raw []string) ([]string, error) {
	seen := make(map[string]bool, len(raw))
	var out []string
	for _, e := range raw {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			return nil, errors.New("empty entry in extension list")
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	if len(out) == 0 {
		return nil, errors.New("extension list must not be empty")
	}
	sort.Strings(out)
	return out, nil
}

// ParseRateList parses a comma-separated sample-rate list (e.g. "44100,48000").
func ParseRateList(raw string) ([]int, error) {
	var rates []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid sample rate %q (use positive Hz values, e.g. 44100,48000)", part)
		}
		rates = append(rates, n)
	}
	if len(rates) == 0 {
		return nil, errors.New("sample-rate list must not be empty")
	}
	return rates, nil
}
