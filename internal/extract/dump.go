package extract

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DumpFailure persists the raw diagnostic text and, when available, the
// best-effort extracted span for a file whose loudness extraction failed.
// Artifacts are named after the file's base name and the run timestamp so
// successive runs never clobber each other.
//
// Diagnostic only: errors are swallowed and nothing is ever read back.
func DumpFailure(debugDir, filePath string, runStamp time.Time, raw, span string) {
	if debugDir == "" {
		return
	}
	if err := os.MkdirAll(debugDir, 0o755); err != nil {
		return
	}

	base := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	stamp := runStamp.Format("20060102-150405")

	rawName := filepath.Join(debugDir, base+"_"+stamp+"_raw.log")
	_ = os.WriteFile(rawName, []byte(raw), 0o644)

	if span != "" {
		spanName := filepath.Join(debugDir, base+"_"+stamp+"_span.json")
		_ = os.WriteFile(spanName, []byte(span), 0o644)
	}
}
