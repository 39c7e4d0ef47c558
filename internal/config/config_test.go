package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg := Load(filepath.Join(t.TempDir(), "nope.ini"))

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.CertFile)
	assert.Empty(t, cfg.KeyFile)
	assert.Equal(t, 1.0, cfg.RateLimit)
	assert.Equal(t, 3, cfg.RateBurst)
	assert.Equal(t, 50, cfg.HistoryLimit)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.ini")
	body := `[server]
Addr = :9443
CertFile = server.crt
KeyFile = server.key

[limits]
RateLimit = 2.5
RateBurst = 10
HistoryLimit = 5
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg := Load(path)
	assert.Equal(t, ":9443", cfg.Addr)
	assert.Equal(t, "server.crt", cfg.CertFile)
	assert.Equal(t, "server.key", cfg.KeyFile)
	assert.Equal(t, 2.5, cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst)
	assert.Equal(t, 5, cfg.HistoryLimit)
}

func TestLoadPartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server.ini")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nAddr = :9000\n"), 0o644))

	cfg := Load(path)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 3, cfg.RateBurst)
	assert.Equal(t, 50, cfg.HistoryLimit)
}
