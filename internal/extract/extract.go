// Package extract scrapes measurements out of ffmpeg's diagnostic output.
//
// All scrapers are pure functions over a line sequence, independently
// testable without running any subprocess. The chunking of the original
// stream is irrelevant: callers split the captured text into lines once
// and the scrapers see a single ordered sequence.
package extract

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// LoudnessFacts holds the three loudnorm measurements.
type LoudnessFacts struct {
	IntegratedLUFS  float64 // input_i
	TruePeakDBTP    float64 // input_tp
	LoudnessRangeLU float64 // input_lra
}

// loudnormSignature marks the line the JSON block is anchored on. loudnorm
// may mention input_i in progress chatter, but only the JSON block quotes it.
const loudnormSignature = `"input_i"`

// SplitLines normalizes captured subprocess output into a line sequence.
// CR-terminated progress lines are treated as line breaks too.
func SplitLines(raw string) []string {
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	return strings.Split(raw, "\n")
}

// LoudnormJSON locates the JSON block embedded in mixed loudnorm output.
//
// Anchor on the first line quoting the integrated-loudness key, then scan
// backward for the nearest line containing an opening brace and forward for
// the nearest line containing a closing brace; the inclusive span is the
// payload. Taking the NEAREST braces keeps unrelated braces elsewhere in
// the diagnostic text from widening the span.
func LoudnormJSON(lines []string) (string, bool) {
	sig := -1
	for i, line := range lines {
		if strings.Contains(line, loudnormSignature) {
			sig = i
			break
		}
	}
	if sig < 0 {
		return "", false
	}

	open := -1
	for i := sig; i >= 0; i-- {
		if strings.Contains(lines[i], "{") {
			open = i
			break
		}
	}

	closing := -1
	for i := sig; i < len(lines); i++ {
		if strings.Contains(lines[i], "}") {
			closing = i
			break
		}
	}

	if open < 0 || closing < 0 || closing < open {
		return "", false
	}
	return strings.Join(lines[open:closing+1], "\n"), true
}

// loudnormBlock mirrors the JSON loudnorm prints; it encodes every number
// as a string.
type loudnormBlock struct {
	InputI   string `json:"input_i"`
	InputTP  string `json:"input_tp"`
	InputLRA string `json:"input_lra"`
}

// ParseLoudnorm decodes an extracted JSON span into LoudnessFacts.
func ParseLoudnorm(jsonText string) (*LoudnessFacts, error) {
	var block loudnormBlock
	if err := json.Unmarshal([]byte(jsonText), &block); err != nil {
		return nil, fmt.Errorf("parse loudnorm JSON: %w", err)
	}

	i, err := parseMeasure("input_i", block.InputI)
	if err != nil {
		return nil, err
	}
	tp, err := parseMeasure("input_tp", block.InputTP)
	if err != nil {
		return nil, err
	}
	lra, err := parseMeasure("input_lra", block.InputLRA)
	if err != nil {
		return nil, err
	}

	return &LoudnessFacts{IntegratedLUFS: i, TruePeakDBTP: tp, LoudnessRangeLU: lra}, nil
}

func parseMeasure(key, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("loudnorm %s: bad value %q", key, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("loudnorm %s: non-finite value %q", key, raw)
	}
	return v, nil
}

// Matches both layouts the astats overall peak arrives in: the per-frame
// metadata print ("lavfi.astats.Overall.Peak_level=-3.2") and the
// end-of-stream summary block ("Peak level dB: -3.2").
var rePeakLevel = regexp.MustCompile(
	`(?:lavfi\.astats\.Overall\.Peak_level=|Peak level dB:\s*)(-?\d+(?:\.\d+)?)`)

// MaxOverallPeak accumulates every overall-peak assignment in the output
// and returns the maximum, rounded to two decimals. Nil when no assignment
// matched. The filter's running peak should already be non-decreasing, but
// taking the max over all prints is robust to reset-window configuration
// variance.
func MaxOverallPeak(lines []string) *float64 {
	var max float64
	found := false
	for _, line := range lines {
		for _, m := range rePeakLevel.FindAllStringSubmatch(line, -1) {
			v, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			if !found || v > max {
				max = v
				found = true
			}
		}
	}
	if !found {
		return nil
	}
	rounded := math.Round(max*100) / 100
	return &rounded
}
