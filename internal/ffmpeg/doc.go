// Package ffmpeg builds and runs the ffmpeg invocations for the two
// analysis passes. The decoded audio is always discarded (-f null -); the
// measurements of interest arrive on the diagnostic stream and are scraped
// by the extract package.
package ffmpeg
