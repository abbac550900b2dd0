package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "exists.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(filepath.Join(dir, "missing.txt")))
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	assert.True(t, IsDir(dir))
	assert.False(t, IsDir(filepath.Join(dir, "nope")))
}

func TestIsExecutable(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte("data"), 0600))
	assert.False(t, IsExecutable(plain))

	exe := filepath.Join(dir, "tool")
	require.NoError(t, os.WriteFile(exe, []byte("#!/bin/sh\n"), 0755))
	assert.True(t, IsExecutable(exe))

	assert.False(t, IsExecutable(dir))
}

func TestOpenOrCreateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")

	f, err := OpenOrCreateFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("first\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	// A second open appends rather than truncating.
	f, err = OpenOrCreateFile(path)
	require.NoError(t, err)
	_, err = f.WriteString("second\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestResolvePath(t *testing.T) {
	t.Setenv("WAVERUN_TEST_DIR", "/test/dir")

	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{"empty path", "", ""},
		{"absolute path", "/usr/local/bin", "/usr/local/bin"},
		{"env expansion", "$WAVERUN_TEST_DIR/logs", "/test/dir/logs"},
		{"relative path", "outputs/run", filepath.Join(cwd, "outputs/run")},
		{"dots cleaned", "/usr/local/../bin", "/usr/bin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePath(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
