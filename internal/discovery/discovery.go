package discovery

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// RequestPattern matches request files below a directory.
const RequestPattern = "**/*.{yaml,yml,json}"

// File represents a discovered request file
type File struct {
	Path    string
	RelPath string
	Size    int64
}

// FileDiscovery expands command line arguments into request files.
type FileDiscovery struct {
	rootPath string
	exclude  []string
}

// NewFileDiscovery creates a new FileDiscovery instance. Files whose path
// relative to the root matches one of the exclude globs are dropped from
// directory and pattern searches.
func NewFileDiscovery(rootPath string, exclude ...string) *FileDiscovery {
	return &FileDiscovery{rootPath: rootPath, exclude: exclude}
}

// Expand resolves each argument as a file, a directory or a doublestar glob,
// relative to the root when not absolute. With no arguments the root itself
// is searched. The result is deduplicated and sorted by path.
//
// Directory searches skip dotfiles so that .pwgraderc.yaml and baseline
// files are never mistaken for requests. Explicit files are always kept.
func (fd *FileDiscovery) Expand(args []string) ([]File, error) {
	if len(args) == 0 {
		args = []string{fd.rootPath}
	}

	seen := make(map[string]bool)
	var files []File

	add := func(path string) error {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("invalid path %q: %w", path, err)
		}
		if seen[abs] {
			return nil
		}
		info, err := os.Stat(abs)
		if err != nil {
			return fmt.Errorf("cannot access file: %s: %w", abs, err)
		}
		seen[abs] = true
		files = append(files, File{Path: abs, RelPath: fd.relPath(abs), Size: info.Size()})
		return nil
	}

	for _, arg := range args {
		path := fd.resolve(arg)

		if isPattern(arg) {
			matches, err := doublestar.FilepathGlob(path, doublestar.WithFilesOnly())
			if err != nil {
				return nil, fmt.Errorf("error evaluating pattern %s: %w", arg, err)
			}
			if len(matches) == 0 {
				return nil, fmt.Errorf("no files match %s", arg)
			}
			for _, m := range matches {
				if fd.excluded(m) {
					continue
				}
				if err := add(m); err != nil {
					return nil, err
				}
			}
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("file not found: %s", path)
			}
			return nil, fmt.Errorf("cannot access file: %s: %w", path, err)
		}

		if !info.IsDir() {
			if err := add(path); err != nil {
				return nil, err
			}
			continue
		}

		matches, err := findRequests(path)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if fd.excluded(m) {
				continue
			}
			if err := add(m); err != nil {
				return nil, err
			}
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// findRequests lists request files below dir, skipping dotfiles and
// dot-directories.
func findRequests(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), RequestPattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("error evaluating pattern %s in %s: %w", RequestPattern, dir, err)
	}

	var out []string
	for _, m := range matches {
		if hidden(m) {
			continue
		}
		out = append(out, filepath.Join(dir, filepath.FromSlash(m)))
	}
	return out, nil
}

// excluded reports whether path matches a configured exclude glob.
func (fd *FileDiscovery) excluded(path string) bool {
	if len(fd.exclude) == 0 {
		return false
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel := fd.relPath(abs)
	for _, pattern := range fd.exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func hidden(slashPath string) bool {
	for _, part := range strings.Split(slashPath, "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}

func isPattern(arg string) bool {
	return strings.ContainsAny(arg, "*?[{")
}

func (fd *FileDiscovery) resolve(arg string) string {
	if filepath.IsAbs(arg) || fd.rootPath == "" {
		return arg
	}
	return filepath.Join(fd.rootPath, arg)
}

func (fd *FileDiscovery) relPath(abs string) string {
	root, err := filepath.Abs(fd.rootPath)
	if err != nil {
		return abs
	}
	rel, err := filepath.Rel(root, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return abs
	}
	return filepath.ToSlash(rel)
}

// ValidateFilePath performs comprehensive validation of a request file path.
//
// This function checks all preconditions required before evaluating a file:
//   - File exists
//   - Path is a file (not directory)
//   - File is not empty
//   - File is not binary
func ValidateFilePath(path string) (absPath string, err error) {
	absPath, err = filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}

	info, err := os.Lstat(absPath) // Lstat to detect symlinks
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("file not found: %s", absPath)
		}
		if os.IsPermission(err) {
			return "", fmt.Errorf("permission denied: %s", absPath)
		}
		return "", fmt.Errorf("cannot access file: %s: %w", absPath, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		realPath, evalErr := filepath.EvalSymlinks(absPath)
		if evalErr != nil {
			return "", fmt.Errorf("cannot resolve symlink %s: %w", absPath, evalErr)
		}
		absPath = realPath
		info, err = os.Stat(absPath)
		if err != nil {
			return "", fmt.Errorf("symlink target inaccessible: %s: %w", absPath, err)
		}
	}

	if info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", absPath)
	}

	if info.Size() == 0 {
		return "", fmt.Errorf("file is empty: %s", absPath)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %s: %w", absPath, err)
	}
	defer f.Close()

	// Read first 512 bytes for binary detection
	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil {
		return "", fmt.Errorf("cannot read file: %s: %w", absPath, err)
	}

	if bytes.Contains(buf[:n], []byte{0}) {
		return "", fmt.Errorf("file appears to be binary, not text: %s", absPath)
	}

	return absPath, nil
}
