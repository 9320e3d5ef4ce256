package ffmpeg

import (
	"fmt"
)

// LoudnormArgs builds the integrated-loudness analysis invocation. The
// loudnorm filter runs in measurement mode and prints one JSON block with
// input_i/input_tp/input_lra to stderr at the end of the stream.
func LoudnormArgs(path string, targetI, truePeak, targetLRA float64) []string {
	filter := fmt.Sprintf("loudnorm=I=%g:TP=%g:LRA=%g:print_format=json",
		targetI, truePeak, targetLRA)
	return []string{
		"ffmpeg", "-hide_banner", "-nostdin", "-nostats",
		"-i", path,
		"-vn",
		"-af", filter,
		"-f", "null", "-",
	}
}

// AstatsArgs builds the sample-peak analysis invocation. astats accumulates
// continuously (reset=0) and ametadata prints the running overall peak once
// per frame, so the true overall value is the maximum across all prints.
func AstatsArgs(path string) []string {
	return []string{
		"ffmpeg", "-hide_banner", "-nostdin", "-nostats",
		"-i", path,
		"-vn",
		"-af", "astats=metadata=1:reset=0,ametadata=mode=print:key=lavfi.astats.Overall.Peak_level",
		"-f", "null", "-",
	}
}
