// Package project locates the directory a pwgrade run belongs to.
package project

import (
	"os"
	"path/filepath"
)

// FindConfigDir searches for a directory containing one of names, starting
// at startPath and climbing up the directory tree. The climb stops at a
// repository boundary (a directory holding .git) or the filesystem root.
// It returns "" when no directory matches.
func FindConfigDir(startPath string, names []string) (string, error) {
	absPath, err := filepath.Abs(startPath)
	if err != nil {
		return "", err
	}

	currentDir := absPath
	for {
		if hasAny(currentDir, names) {
			return currentDir, nil
		}

		if exists(filepath.Join(currentDir, ".git")) {
			break
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			// Reached filesystem root
			break
		}
		currentDir = parent
	}

	return "", nil
}

func hasAny(dir string, names []string) bool {
	for _, name := range names {
		if exists(filepath.Join(dir, name)) {
			return true
		}
	}
	return false
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
