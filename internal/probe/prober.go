// Package probe queries ffprobe for container and audio-stream metadata.
//
// A single JSON call retrieves everything the report needs. Failure is
// per-field: a value ffprobe omits or mangles becomes nil in the result,
// and a failed invocation yields all-nil facts rather than an error that
// could abort the batch.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Probe runs one ffprobe JSON call against path and returns the parsed
// facts. The returned error is diagnostic only; callers treat a failed
// probe as an all-nil StreamFacts and continue.
func Probe(ctx context.Context, path string) (*StreamFacts, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format", "-show_streams",
		path,
	)

	out, err := cmd.Output()
	if err != nil {
		return &StreamFacts{}, fmt.Errorf("ffprobe %q: %w", path, err)
	}

	return ParseJSON(out)
}

// ParseJSON converts raw ffprobe JSON output into StreamFacts.
// Exported for testing without a real ffprobe binary.
func ParseJSON(data []byte) (*StreamFacts, error) {
	var raw ffprobeOutput
	if err := json.Unmarshal(data, &raw); err != nil {
		return &StreamFacts{}, fmt.Errorf("parse ffprobe JSON: %w", err)
	}
	return buildFacts(&raw), nil
}

// --- ffprobe JSON wire types ---
//
// ffprobe returns most numbers as strings; coercion happens in buildFacts
// so that a malformed value nulls only its own field.

type ffprobeOutput struct {
	Format  ffprobeFormat   `json:"format"`
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeFormat struct {
	Duration string `json:"duration"`
	BitRate  string `json:"bit_rate"`
}

type ffprobeStream struct {
	CodecType        string `json:"codec_type"`
	CodecName        string `json:"codec_name"`
	SampleRate       string `json:"sample_rate"`
	Channels         int    `json:"channels"`
	BitsPerSample    int    `json:"bits_per_sample"`
	BitsPerRawSample string `json:"bits_per_raw_sample"`
	BitRate          string `json:"bit_rate"`
}

// buildFacts extracts container facts and the first audio stream's facts.
func buildFacts(raw *ffprobeOutput) *StreamFacts {
	facts := &StreamFacts{
		Duration: parseFloatPtr(raw.Format.Duration),
	}

	var audio *ffprobeStream
	for i := range raw.Streams {
		if raw.Streams[i].CodecType == "audio" {
			audio = &raw.Streams[i]
			break
		}
	}

	// Bitrate preference: stream-level, falling back to container-level.
	if audio != nil {
		facts.BitrateKbps = toKbps(parseInt64Ptr(audio.BitRate))
	}
	if facts.BitrateKbps == nil {
		facts.BitrateKbps = toKbps(parseInt64Ptr(raw.Format.BitRate))
	}

	if audio == nil {
		return facts
	}

	facts.SampleRate = parseIntPtr(audio.SampleRate)
	if audio.Channels > 0 {
		facts.Channels = &audio.Channels
	}
	if audio.CodecName != "" {
		codec := audio.CodecName
		facts.Codec = &codec
	}

	// Bit depth: bits_per_sample wins; bits_per_raw_sample is the fallback
	// (lossless codecs often report only the raw field).
	if audio.BitsPerSample > 0 {
		facts.BitDepth = &audio.BitsPerSample
	} else {
		facts.BitDepth = parseIntPtr(audio.BitsPerRawSample)
	}

	return facts
}

// --- Numeric coercion helpers (nil on absence or parse failure) ---

func parseFloatPtr(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func parseIntPtr(s string) *int {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func parseInt64Ptr(s string) *int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return nil
	}
	return &n
}

func toKbps(bps *int64) *int64 {
	if bps == nil {
		return nil
	}
	kbps := *bps / 1000
	return &kbps
}
