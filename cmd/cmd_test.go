package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/dotcommander/pwgrade/internal/output"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// setupCmdTest isolates a command test in a temp directory with fresh
// viper state and default flag values. It returns the directory.
func setupCmdTest(t *testing.T) string {
	t.Helper()
	viper.Reset()

	dir := t.TempDir()
	oldWd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	rootPath = dir
	t.Cleanup(func() {
		_ = os.Chdir(oldWd)
		viper.Reset()
		rootPath = ""
		noSchemas = false
		listMetrics = false
		useBaseline = false
		createBaseline = false
		baselinePath = ""
		changedOnly = false
		stagedOnly = false
	})
	return dir
}

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	done := make(chan []byte)
	go func() {
		data, _ := io.ReadAll(r)
		done <- data
	}()

	runErr := fn()
	_ = w.Close()
	os.Stdout = old
	return string(<-done), runErr
}

// decodeReport parses JSON formatter output.
func decodeReport(t *testing.T, out string) output.JSONReport {
	t.Helper()
	var doc output.JSONReport
	require.NoError(t, json.Unmarshal([]byte(out), &doc), out)
	return doc
}

// testCommand returns a command carrying a context and buffered stderr.
func testCommand() (*cobra.Command, *bytes.Buffer) {
	var stderr bytes.Buffer
	c := &cobra.Command{}
	c.SetContext(context.Background())
	c.SetErr(&stderr)
	c.SetOut(&stderr)
	return c, &stderr
}

func writeRequest(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}
