package main

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/sync-engine/internal/config"
	"github.com/jonathan/sync-engine/internal/server"
	"github.com/jonathan/sync-engine/internal/synastry"
	"github.com/jonathan/sync-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteCatalog(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCatalog(&buf, "", formatYAML))

	var catalog types.ArchetypeCatalog
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &catalog))
	assert.Equal(t, synastry.LibraryVersion, catalog.LibraryVersion)
	assert.Len(t, catalog.Themes, len(synastry.ThemeNames))

	buf.Reset()
	require.NoError(t, writeCatalog(&buf, "karmic", formatText))
	assert.Contains(t, buf.String(), "KARMIC")
	assert.NotContains(t, buf.String(), "EMOTIONAL")

	assert.ErrorContains(t, writeCatalog(&buf, "cosmic", formatJSON), "unknown theme")
}

func TestValidateFile(t *testing.T) {
	require.NoError(t, validateFile(sampleSwissPath, kindSwissData, ""))

	var buf bytes.Buffer
	require.NoError(t, writeProfile(&buf, readSample(t), formatJSON, false))
	profilePath := filepath.Join(t.TempDir(), "profile.json")
	require.NoError(t, os.WriteFile(profilePath, buf.Bytes(), 0644))
	require.NoError(t, validateFile(profilePath, kindProfile, ""))

	assert.Error(t, validateFile(sampleSwissPath, kindProfile, ""), "chart is not a profile")
	assert.ErrorContains(t, validateFile(sampleSwissPath, "other", ""), "unknown schema kind")
	assert.ErrorContains(t, validateFile("missing.json", kindSwissData, ""), "failed to read input file")

	schemaPath := filepath.Join(t.TempDir(), "schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(`{"type": "object", "required": ["blocks"]}`), 0644))
	require.NoError(t, validateFile(sampleSwissPath, "", schemaPath))
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.json")
	require.NoError(t, writeFileAtomic(path, []byte(`{"ok":true}`)))
	require.NoError(t, writeFileAtomic(path, []byte(`{"ok":false}`)))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"ok":false}`, string(content))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTokenCommand(t *testing.T) {
	for _, name := range []string{"JWT_SECRET", "SYNC_ENGINE_JWT_SECRET", "SYNC_ENGINE_JWT_EXPIRATION_HOURS", "JWT_EXPIRATION_HOURS"} {
		t.Setenv(name, "")
	}
	t.Setenv("SYNC_ENGINE_JWT_SECRET", "cli-test-secret-that-is-long-enough")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"token", "--subject", "translator", "--hours", "2"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())

	jwtService := server.NewJWTService(&config.JWTConfig{Secret: "cli-test-secret-that-is-long-enough", ExpirationHours: 2})
	claims, err := jwtService.ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "translator", claims.Subject)
}

func TestCLI_RequiredFlags(t *testing.T) {
	binaryPath := getBinaryPath(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "profile without --in", args: []string{"profile"}},
		{name: "batch without --out-dir", args: []string{"batch", "--in-dir", "."}},
		{name: "token without --subject", args: []string{"token"}},
		{name: "validate without --in", args: []string{"validate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := exec.Command(binaryPath, tt.args...).CombinedOutput()
			assert.Error(t, err)
			assert.Contains(t, string(output), "required")
		})
	}
}
