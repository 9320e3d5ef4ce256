// Package tags reads embedded title/artist metadata for report display.
package tags

import (
	"os"

	"github.com/dhowden/tag"
)

// Facts holds display-only embedded metadata. Empty fields mean the file
// carries no tags or the format is unsupported; that is never an error.
type Facts struct {
	Title  string
	Artist string
}

// Read extracts title and artist from the file's embedded tags (ID3,
// Vorbis comments, MP4 atoms). Any failure yields empty facts; tag data
// is cosmetic and must not influence the pipeline.
func Read(path string) Facts {
	f, err := os.Open(path)
	if err != nil {
		return Facts{}
	}
	defer f.Close()

	m, err := tag.ReadFrom(f)
	if err != nil {
		return Facts{}
	}
	return Facts{Title: m.Title(), Artist: m.Artist()}
}
