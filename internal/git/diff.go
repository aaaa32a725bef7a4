// Package git lists request files with uncommitted changes.
package git

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// requestPattern matches request file names reported by git.
const requestPattern = "**/*.{yaml,yml,json}"

// GetStagedFiles returns absolute paths of request files in the staging area
// below rootPath. Returns an empty slice if not in a git repository.
func GetStagedFiles(rootPath string) ([]string, error) {
	if !IsGitRepo(rootPath) {
		return []string{}, nil
	}

	output, err := run(rootPath, "diff", "--name-only", "--relative", "--staged")
	if err != nil {
		return nil, err
	}
	return filterRequestFiles(output, rootPath)
}

// GetChangedFiles returns absolute paths of request files below rootPath with
// staged or unstaged changes. In a repository without commits every tracked
// file counts as changed. Returns an empty slice if not in a git repository.
func GetChangedFiles(rootPath string) ([]string, error) {
	if !IsGitRepo(rootPath) {
		return []string{}, nil
	}

	if _, err := run(rootPath, "rev-parse", "HEAD"); err != nil {
		// No commits yet
		output, err := run(rootPath, "ls-files")
		if err != nil {
			return nil, err
		}
		return filterRequestFiles(output, rootPath)
	}

	output, err := run(rootPath, "diff", "--name-only", "--relative", "HEAD")
	if err != nil {
		return nil, err
	}
	return filterRequestFiles(output, rootPath)
}

// IsGitRepo checks if the given directory is within a git repository.
func IsGitRepo(rootPath string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = rootPath
	return cmd.Run() == nil
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s failed: %w: %s", strings.Join(args, " "), err, output)
	}
	return string(output), nil
}

// filterRequestFiles keeps existing request files from git's path listing,
// relative to rootPath, and returns them as absolute paths. Deleted files
// and dotfiles are dropped.
func filterRequestFiles(gitOutput, rootPath string) ([]string, error) {
	root, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, line := range strings.Split(strings.TrimSpace(gitOutput), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !isRequestFile(line) {
			continue
		}

		absPath := filepath.Join(root, filepath.FromSlash(line))
		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			continue
		}
		files = append(files, absPath)
	}
	return files, nil
}

// isRequestFile reports whether a slash-separated path names a request file.
func isRequestFile(relPath string) bool {
	for _, part := range strings.Split(relPath, "/") {
		if strings.HasPrefix(part, ".") {
			return false
		}
	}
	ok, _ := doublestar.Match(requestPattern, strings.ToLower(relPath))
	return ok
}
