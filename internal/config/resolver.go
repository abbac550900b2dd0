package config

import (
	"os"
	"path/filepath"
)

// XDGConfig holds the XDG base directories used for path resolution.
type XDGConfig struct {
	DataHome   string
	ConfigHome string
}

// PathResolver contains the resolved application directories.
type PathResolver struct {
	ConfigDir  string
	DataDir    string
	OutputsDir string
	BinDir     string
	SourcesDir string

	Warnings []string
}

// NewResolver determines the application directories. When the environment
// variable named by appHomeEnv is set, everything lives under that single
// directory (the legacy layout); otherwise the XDG layout is used.
func NewResolver(appHomeEnv, legacyPath string, xdg XDGConfig) PathResolver {
	if v := os.Getenv(appHomeEnv); v != "" {
		return newResolverWithAppHome(v)
	}
	if _, err := os.Stat(legacyPath); err == nil {
		return newResolverWithAppHome(legacyPath)
	}
	return PathResolver{
		ConfigDir:  filepath.Join(xdg.ConfigHome, "waverun"),
		DataDir:    filepath.Join(xdg.DataHome, "waverun"),
		OutputsDir: filepath.Join(xdg.DataHome, "waverun", "outputs"),
		BinDir:     filepath.Join(xdg.DataHome, "waverun", "bin"),
		SourcesDir: filepath.Join(xdg.DataHome, "waverun", "sources"),
	}
}

func newResolverWithAppHome(home string) PathResolver {
	return PathResolver{
		ConfigDir:  home,
		DataDir:    home,
		OutputsDir: filepath.Join(home, "outputs"),
		BinDir:     filepath.Join(home, "bin"),
		SourcesDir: filepath.Join(home, "sources"),
	}
}
