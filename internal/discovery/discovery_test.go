package discovery

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("name: x\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func relPaths(files []File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.RelPath)
	}
	return out
}

func TestExpand(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"runs/a.yaml",
		"runs/b.json",
		"runs/nested/c.yml",
		"runs/notes.txt",
		"runs/.hidden.yaml",
		".pwgraderc.yaml",
		".cache/d.yaml",
		"top.yaml",
	)

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"root by default", nil, []string{"runs/a.yaml", "runs/b.json", "runs/nested/c.yml", "top.yaml"}},
		{"directory", []string{"runs"}, []string{"runs/a.yaml", "runs/b.json", "runs/nested/c.yml"}},
		{"single file", []string{"top.yaml"}, []string{"top.yaml"}},
		{"explicit dotfile", []string{"runs/.hidden.yaml"}, []string{"runs/.hidden.yaml"}},
		{"glob", []string{"runs/*.yaml"}, []string{"runs/.hidden.yaml", "runs/a.yaml"}},
		{"doublestar glob", []string{"runs/**/*.yml"}, []string{"runs/nested/c.yml"}},
		{"duplicates collapse", []string{"top.yaml", "top.yaml", "t*.yaml"}, []string{"top.yaml"}},
		{"sorted across args", []string{"top.yaml", "runs/a.yaml"}, []string{"runs/a.yaml", "top.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := NewFileDiscovery(root).Expand(tt.args)
			if err != nil {
				t.Fatalf("Expand() error = %v", err)
			}
			got := relPaths(files)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("Expand() = %v, want %v", got, tt.want)
			}
			for _, f := range files {
				if !filepath.IsAbs(f.Path) {
					t.Errorf("Path %q is not absolute", f.Path)
				}
				if f.Size == 0 {
					t.Errorf("Size of %s is 0", f.RelPath)
				}
			}
		})
	}
}

func TestExpand_Errors(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "a.yaml")

	tests := []struct {
		name     string
		args     []string
		errMatch string
	}{
		{"missing file", []string{"missing.yaml"}, "file not found"},
		{"glob without matches", []string{"runs/*.json"}, "no files match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileDiscovery(root).Expand(tt.args)
			if err == nil {
				t.Fatal("Expand() expected error")
			}
			if !strings.Contains(err.Error(), tt.errMatch) {
				t.Errorf("Expand() error = %q, want substring %q", err.Error(), tt.errMatch)
			}
		})
	}
}

func TestExpand_EmptyDirectory(t *testing.T) {
	files, err := NewFileDiscovery(t.TempDir()).Expand(nil)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("Expand() = %v, want none", files)
	}
}

func TestExpand_AbsoluteOutsideRoot(t *testing.T) {
	other := t.TempDir()
	writeFiles(t, other, "far.yaml")
	abs := filepath.Join(other, "far.yaml")

	files, err := NewFileDiscovery(t.TempDir()).Expand([]string{abs})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(files) != 1 || files[0].RelPath != files[0].Path {
		t.Errorf("file outside root should keep its absolute path, got %+v", files)
	}
}

func TestExpand_Exclude(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "runs/a.yaml", "runs/old/b.yaml", "archive/c.yaml", "top.yaml")

	fd := NewFileDiscovery(root, "archive/**", "**/old/**")

	files, err := fd.Expand(nil)
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	got := strings.Join(relPaths(files), ",")
	if got != "runs/a.yaml,top.yaml" {
		t.Errorf("Expand() = %s, want runs/a.yaml,top.yaml", got)
	}

	files, err = fd.Expand([]string{"**/*.yaml"})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if got := strings.Join(relPaths(files), ","); got != "runs/a.yaml,top.yaml" {
		t.Errorf("glob Expand() = %s, want runs/a.yaml,top.yaml", got)
	}

	files, err = fd.Expand([]string{"archive/c.yaml"})
	if err != nil {
		t.Fatalf("Expand() error = %v", err)
	}
	if len(files) != 1 {
		t.Errorf("explicit file should bypass excludes, got %v", relPaths(files))
	}
}

func TestHidden(t *testing.T) {
	tests := map[string]bool{
		"a.yaml":         false,
		"runs/a.yaml":    false,
		".a.yaml":        true,
		".cache/a.yaml":  true,
		"runs/.x/a.yaml": true,
	}
	for path, want := range tests {
		if got := hidden(path); got != want {
			t.Errorf("hidden(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestValidateFilePath(t *testing.T) {
	tmpDir := t.TempDir()

	validFile := filepath.Join(tmpDir, "valid.yaml")
	_ = os.WriteFile(validFile, []byte("name: run"), 0644)

	emptyFile := filepath.Join(tmpDir, "empty.yaml")
	_ = os.WriteFile(emptyFile, []byte(""), 0644)

	binaryFile := filepath.Join(tmpDir, "binary.dat")
	_ = os.WriteFile(binaryFile, []byte{0x00, 0x01, 0x02, 0x03}, 0644)

	symlinkFile := filepath.Join(tmpDir, "symlink.yaml")
	_ = os.Symlink(validFile, symlinkFile)

	brokenSymlink := filepath.Join(tmpDir, "broken-symlink.yaml")
	_ = os.Symlink(filepath.Join(tmpDir, "nonexistent"), brokenSymlink)

	dirPath := filepath.Join(tmpDir, "directory")
	_ = os.Mkdir(dirPath, 0755)

	tests := []struct {
		name     string
		path     string
		wantErr  bool
		errMatch string
	}{
		{"valid file", validFile, false, ""},
		{"nonexistent file", filepath.Join(tmpDir, "missing.yaml"), true, "file not found"},
		{"directory", dirPath, true, "path is a directory"},
		{"empty file", emptyFile, true, "file is empty"},
		{"binary file", binaryFile, true, "appears to be binary"},
		{"valid symlink", symlinkFile, false, ""},
		{"broken symlink", brokenSymlink, true, "symlink"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ValidateFilePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilePath() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err != nil && tt.errMatch != "" {
				if !strings.Contains(err.Error(), tt.errMatch) {
					t.Errorf("ValidateFilePath() error = %q, want substring %q", err.Error(), tt.errMatch)
				}
			}
			if !tt.wantErr && !filepath.IsAbs(got) {
				t.Errorf("ValidateFilePath() = %q, want absolute path", got)
			}
		})
	}
}
