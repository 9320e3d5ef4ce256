package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Sentinel errors for subprocess outcomes.
var (
	// ErrTimeout reports that an invocation exceeded the configured
	// per-invocation deadline and was killed.
	ErrTimeout = errors.New("ffmpeg invocation timed out")
)

// Run executes an argument slice (args[0] is the binary) under a deadline
// and returns the combined stdout+stderr text. ffmpeg writes filter
// diagnostics to stderr, so the two streams are captured as one ordered
// sequence for the scrapers.
//
// The combined output is returned even when ffmpeg exits non-zero, since a
// partial diagnostic stream is still useful for debug dumps.
func Run(ctx context.Context, timeout time.Duration, args []string) (string, error) {
	tctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(tctx, args[0], args[1:]...)

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	if tctx.Err() == context.DeadlineExceeded {
		return buf.String(), ErrTimeout
	}
	return buf.String(), err
}
