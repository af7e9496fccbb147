package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var cliBinaryPath string

// buildCLIBinaryForE2E builds a fresh CLI binary for this test run.
func buildCLIBinaryForE2E() (string, func(), error) {
	tempDir, err := os.MkdirTemp("", "hexline-e2e-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp dir: %w", err)
	}

	binPath := filepath.Join(tempDir, "hexline")
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = ".."
	if out, err := cmd.CombinedOutput(); err != nil {
		_ = os.RemoveAll(tempDir)
		return "", nil, fmt.Errorf("failed to build CLI binary: %w\n%s", err, out)
	}

	cleanup := func() {
		_ = os.RemoveAll(tempDir)
	}
	return binPath, cleanup, nil
}

// writeFixture writes content to name inside a per-test temp dir and returns its path.
func writeFixture(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}
