package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// IsDir returns true if path is a directory.
func IsDir(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return false
	}
	return stat.IsDir()
}

// FileExists returns true if file exists.
func FileExists(file string) bool {
	_, err := os.Stat(file)
	return !os.IsNotExist(err)
}

// IsExecutable reports whether path points at a regular file with at least
// one execute bit set.
func IsExecutable(path string) bool {
	stat, err := os.Stat(path)
	if err != nil || stat.IsDir() {
		return false
	}
	return stat.Mode()&0111 != 0
}

// OpenOrCreateFile opens file for appending or creates it if it doesn't exist.
func OpenOrCreateFile(file string) (*os.File, error) {
	if FileExists(file) {
		return os.OpenFile(file, os.O_APPEND|os.O_WRONLY, 0600) //nolint:gosec
	}
	return os.OpenFile(file, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600) //nolint:gosec
}

// ResolvePath resolves a path to an absolute path. It handles empty paths,
// tilde expansion, environment variables, and converts to an absolute path.
func ResolvePath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[1:])
	}

	path = os.ExpandEnv(path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

// MustResolvePath works like ResolvePath but falls back to the input on error.
func MustResolvePath(path string) string {
	resolvedPath, err := ResolvePath(path)
	if err != nil {
		return path
	}
	return resolvedPath
}
