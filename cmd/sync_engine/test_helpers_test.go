package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleSwissPath = "testdata/sample_swiss.json"

// getBinaryPath returns the path to the sync_engine binary for CLI tests
func getBinaryPath(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", "sync_engine")
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'make build'", binaryPath)
	}
	return binaryPath
}

func readSample(t *testing.T) []byte {
	t.Helper()
	content, err := os.ReadFile(sampleSwissPath)
	require.NoError(t, err)
	return content
}
