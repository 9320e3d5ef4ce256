package main

import (
	"fmt"
	"os"
	"strings"
)

const (
	listFileMarker = "@"
	pathSeparator  = ";"
)

// expandArgs turns raw positional arguments into the path list the
// pipeline scans. A single argument of the form @file is replaced by the
// newline-separated paths inside that file; any argument containing ";"
// is split into multiple paths. No arguments means the current directory.
func expandArgs(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{"."}, nil
	}

	if len(args) == 1 && strings.HasPrefix(args[0], listFileMarker) {
		return readListFile(strings.TrimPrefix(args[0], listFileMarker))
	}

	var paths []string
	for _, arg := range args {
		for _, p := range strings.Split(arg, pathSeparator) {
			p = strings.TrimSpace(p)
			if p != "" {
				paths = append(paths, p)
			}
		}
	}
	if len(paths) == 0 {
		return []string{"."}, nil
	}
	return paths, nil
}

// readListFile reads newline-separated paths, skipping blanks and
// lines starting with #.
func readListFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read path list %q: %w", path, err)
	}

	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		paths = append(paths, line)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("path list %q contains no paths", path)
	}
	return paths, nil
}
