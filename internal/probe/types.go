package probe

// StreamFacts holds the probed metadata for one audio file. Every field is
// nullable: a failed probe, a missing container field, or a malformed value
// leaves that field nil without touching the others.
type StreamFacts struct {
	Duration    *float64 // Container duration in seconds.
	SampleRate  *int     // First audio stream sample rate in Hz.
	BitDepth    *int     // bits_per_sample, falling back to bits_per_raw_sample.
	Channels    *int     // First audio stream channel count.
	Codec       *string  // First audio stream codec name.
	BitrateKbps *int64   // Stream bitrate, falling back to container bitrate.
}
