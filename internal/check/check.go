// Package check provides system diagnostics (--check mode) and pre-run
// dependency validation (CheckDeps) for ffmpeg and ffprobe.
package check

import (
	"errors"
	"os/exec"
	"strings"
)

// Sentinel errors returned by CheckDeps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
)

// Logger is the minimal logging interface needed by RunCheck.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// RunCheck runs the interactive --check flow: prints ffmpeg/ffprobe
// availability and versions and runs tiny loudnorm and astats analyses
// against a generated tone. Informational only, does not stop on failure.
func RunCheck(log Logger) {
	log.Info("=== System Check ===")

	checkVersion(log, "ffmpeg")
	checkVersion(log, "ffprobe")
	checkLoudnorm(log)
	checkAstats(log)
}

// checkVersion verifies tool is on PATH and logs its version string.
func checkVersion(log Logger, tool string) {
	if _, err := exec.LookPath(tool); err != nil {
		log.Error("%s not found", tool)
		return
	}
	cmd := exec.Command(tool, "-version")
	out, err := cmd.Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", tool, err)
		return
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", tool, firstLine)
}

// checkLoudnorm runs a minimal loudnorm analysis on a generated tone.
func checkLoudnorm(log Logger) {
	log.Info("Testing loudnorm filter...")
	if runSilent("ffmpeg", toneTestArgs("loudnorm=I=-14:TP=-1:LRA=8:print_format=json")...) {
		log.Success("loudnorm analysis works")
	} else {
		log.Error("loudnorm test failed")
	}
}

// checkAstats runs a minimal astats pass on a generated tone.
func checkAstats(log Logger) {
	log.Info("Testing astats filter...")
	if runSilent("ffmpeg", toneTestArgs("astats=metadata=1:reset=0")...) {
		log.Success("astats analysis works")
	} else {
		log.Error("astats test failed")
	}
}

// CheckDeps is the pre-run validation: it verifies that ffmpeg and ffprobe
// are on PATH. Returns a sentinel error on failure.
func CheckDeps() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	return nil
}

// --- internal helpers ---

// toneTestArgs returns ffmpeg arguments that run filter over a 0.1 second
// generated sine tone and discard the output.
func toneTestArgs(filter string) []string {
	return []string{
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-af", filter,
		"-f", "null", "-",
	}
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
