// Package test provides shared fixtures: an isolated application home,
// freshly loaded configuration and a logger-carrying context.
package test

import (
	"bytes"
	"context"
	"sync"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/waverun-org/waverun/internal/config"
	"github.com/waverun-org/waverun/internal/logger"
)

var setupLock sync.Mutex

// Helper bundles the fixtures of one test: an isolated home directory, the
// configuration loaded from it, and a context carrying a debug logger whose
// output is captured in LoggingOutput.
type Helper struct {
	Context       context.Context
	Config        *config.Config
	Home          string
	LoggingOutput *SyncBuffer
}

// Setup isolates the test from the host environment: the application home
// points at a temp directory and viper state is reset so tests do not leak
// configuration into each other.
func Setup(t *testing.T) Helper {
	t.Helper()
	setupLock.Lock()
	defer setupLock.Unlock()

	viper.Reset()

	home := t.TempDir()
	t.Setenv("WAVERUN_HOME", home)

	cfg, err := config.Load()
	require.NoError(t, err)

	buf := &SyncBuffer{}
	ctx := logger.WithLogger(context.Background(),
		logger.NewLogger(logger.WithDebug(), logger.WithQuiet(), logger.WithWriter(buf)))

	return Helper{
		Context:       ctx,
		Config:        cfg,
		Home:          home,
		LoggingOutput: buf,
	}
}

// SyncBuffer is a goroutine-safe bytes.Buffer for capturing log output.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SyncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
