package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"
)

func TestIsRequestFile(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"yaml at top", "run.yaml", true},
		{"yml nested", "runs/2026/run.yml", true},
		{"json", "runs/models.json", true},
		{"upper case extension", "runs/RUN.YAML", true},
		{"config dotfile", ".pwgraderc.yaml", false},
		{"baseline dotfile", ".pwgrade-baseline.json", false},
		{"hidden directory", ".cache/run.yaml", false},
		{"go source", "main.go", false},
		{"markdown", "README.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRequestFile(tt.path); got != tt.expected {
				t.Errorf("isRequestFile(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestFilterRequestFiles(t *testing.T) {
	tmpDir := t.TempDir()

	for _, path := range []string{"runs/a.yaml", "runs/b.json", "README.md", ".pwgraderc.yaml"} {
		fullPath := filepath.Join(tmpDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(fullPath, []byte("name: x"), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", fullPath, err)
		}
	}

	gitOutput := "runs/a.yaml\nruns/b.json\nruns/deleted.yaml\nREADME.md\n.pwgraderc.yaml\n"

	filtered, err := filterRequestFiles(gitOutput, tmpDir)
	if err != nil {
		t.Fatalf("filterRequestFiles failed: %v", err)
	}

	want := []string{
		filepath.Join(tmpDir, "runs", "a.yaml"),
		filepath.Join(tmpDir, "runs", "b.json"),
	}
	if strings.Join(filtered, ",") != strings.Join(want, ",") {
		t.Errorf("filterRequestFiles() = %v, want %v", filtered, want)
	}
}

func TestNonGitRepo(t *testing.T) {
	tmpDir := t.TempDir()
	if IsGitRepo(tmpDir) {
		t.Skip("temp directory is inside a git repository")
	}

	staged, err := GetStagedFiles(tmpDir)
	if err != nil || len(staged) != 0 {
		t.Errorf("GetStagedFiles() = %v, %v; want empty", staged, err)
	}
	changed, err := GetChangedFiles(tmpDir)
	if err != nil || len(changed) != 0 {
		t.Errorf("GetChangedFiles() = %v, %v; want empty", changed, err)
	}
}

// initRepo creates a git repository in a temp directory, skipping the test
// when git is unavailable.
func initRepo(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	if err := exec.Command("git", "init", tmpDir).Run(); err != nil {
		t.Skip("git not available, skipping integration test")
	}
	gitCmd(t, tmpDir, "config", "user.email", "test@test.com")
	gitCmd(t, tmpDir, "config", "user.name", "Test User")
	return tmpDir
}

func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v failed: %v: %s", args, err, out)
	}
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func baseNames(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, filepath.Base(p))
	}
	sort.Strings(out)
	return out
}

func TestGetStagedFiles(t *testing.T) {
	repo := initRepo(t)
	writeFile(t, repo, "runs/staged.yaml", "name: a")
	writeFile(t, repo, "runs/unstaged.yaml", "name: b")
	writeFile(t, repo, "README.md", "# readme")
	gitCmd(t, repo, "add", "runs/staged.yaml", "README.md")

	staged, err := GetStagedFiles(repo)
	if err != nil {
		t.Fatalf("GetStagedFiles failed: %v", err)
	}
	if got := baseNames(staged); strings.Join(got, ",") != "staged.yaml" {
		t.Errorf("GetStagedFiles() = %v, want [staged.yaml]", got)
	}
}

func TestGetChangedFiles_NoCommits(t *testing.T) {
	repo := initRepo(t)
	writeFile(t, repo, "runs/a.yaml", "name: a")
	writeFile(t, repo, "runs/b.json", "{}")
	writeFile(t, repo, "README.md", "# readme")
	gitCmd(t, repo, "add", ".")

	files, err := GetChangedFiles(repo)
	if err != nil {
		t.Fatalf("GetChangedFiles failed: %v", err)
	}
	if got := baseNames(files); strings.Join(got, ",") != "a.yaml,b.json" {
		t.Errorf("GetChangedFiles() = %v, want [a.yaml b.json]", got)
	}
}

func TestGetChangedFiles_WithCommits(t *testing.T) {
	repo := initRepo(t)
	writeFile(t, repo, "runs/old.yaml", "name: old")
	writeFile(t, repo, "runs/same.yaml", "name: same")
	gitCmd(t, repo, "add", ".")
	gitCmd(t, repo, "commit", "-m", "initial")

	writeFile(t, repo, "runs/old.yaml", "name: changed")

	files, err := GetChangedFiles(repo)
	if err != nil {
		t.Fatalf("GetChangedFiles failed: %v", err)
	}
	if got := baseNames(files); strings.Join(got, ",") != "old.yaml" {
		t.Errorf("GetChangedFiles() = %v, want [old.yaml]", got)
	}
}

func TestGetChangedFiles_Subdirectory(t *testing.T) {
	repo := initRepo(t)
	writeFile(t, repo, "runs/a.yaml", "name: a")
	writeFile(t, repo, "other/b.yaml", "name: b")
	gitCmd(t, repo, "add", ".")
	gitCmd(t, repo, "commit", "-m", "initial")

	writeFile(t, repo, "runs/a.yaml", "name: a2")
	writeFile(t, repo, "other/b.yaml", "name: b2")

	files, err := GetChangedFiles(filepath.Join(repo, "runs"))
	if err != nil {
		t.Fatalf("GetChangedFiles failed: %v", err)
	}
	if len(files) != 1 || files[0] != filepath.Join(repo, "runs", "a.yaml") {
		t.Errorf("GetChangedFiles() = %v, want only runs/a.yaml", files)
	}
}
