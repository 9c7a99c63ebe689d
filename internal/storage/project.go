package storage

import (
	"os"
	"path/filepath"
)

// DefaultDirName is the project directory created by 'obra init'.
const DefaultDirName = ".obra"

// FindProjectDir walks up from start looking for a DefaultDirName directory
// and returns its path. When none exists it returns the path it would have
// in start, so 'obra init' creates it there.
func FindProjectDir(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		candidate := filepath.Join(dir, DefaultDirName)
		info, statErr := os.Stat(candidate)
		if statErr == nil && info.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return filepath.Join(abs, DefaultDirName), nil
		}
		dir = parent
	}
}
