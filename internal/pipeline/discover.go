package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover resolves the given paths (files or directories) into the sorted,
// deduplicated list of audio files to analyze. Files are matched against
// the extension set; directories are walked recursively or listed a single
// level deep depending on the recursive flag.
//
// A path that does not exist is an error: a typo'd argument should surface
// immediately rather than silently shrink the batch.
func Discover(paths []string, extensions map[string]bool, recursive bool) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if !seen[abs] {
			seen[abs] = true
			files = append(files, abs)
		}
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("path not found: %s", p)
		}

		if !info.IsDir() {
			// Explicitly named files bypass the extension filter only if
			// they match it; a named non-audio file is a user mistake.
			if !matchesExt(p, extensions) {
				return nil, fmt.Errorf("unsupported file type: %s", p)
			}
			add(p)
			continue
		}

		if recursive {
			err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					return nil
				}
				if matchesExt(path, extensions) {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			full := filepath.Join(p, e.Name())
			if matchesExt(full, extensions) {
				add(full)
			}
		}
	}

	// Sorted by base name for deterministic report order; path breaks ties.
	sort.Slice(files, func(i, j int) bool {
		bi, bj := filepath.Base(files[i]), filepath.Base(files[j])
		if bi != bj {
			return bi < bj
		}
		return files[i] < files[j]
	})
	return files, nil
}

func matchesExt(path string, extensions map[string]bool) bool {
	return extensions[strings.ToLower(filepath.Ext(path))]
}
