package utilities

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LOG_DEV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FILE", "")
	t.Setenv("LOG_MAX_AGE_DAYS", "")
	cfg := ConfigFromEnv()
	assert.Equal(t, "info", cfg.Level)
	assert.False(t, cfg.Dev)
	assert.Empty(t, cfg.File)
	assert.Equal(t, 7*24*time.Hour, cfg.MaxAge)

	t.Setenv("LOG_DEV", "1")
	t.Setenv("LOG_FILE", "/var/log/accounts.log")
	t.Setenv("LOG_MAX_AGE_DAYS", "30")
	cfg = ConfigFromEnv()
	assert.Equal(t, "debug", cfg.Level)
	assert.True(t, cfg.Dev)
	assert.Equal(t, "/var/log/accounts.log", cfg.File)
	assert.Equal(t, 30*24*time.Hour, cfg.MaxAge)

	t.Setenv("LOG_LEVEL", "warn")
	assert.Equal(t, "warn", ConfigFromEnv().Level)
}

func TestLevelFromString(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, levelFromString("debug"))
	assert.Equal(t, zapcore.WarnLevel, levelFromString("warning"))
	assert.Equal(t, zapcore.ErrorLevel, levelFromString("error"))
	assert.Equal(t, zapcore.InfoLevel, levelFromString("bogus"))
}

func TestInitStdout(t *testing.T) {
	lg, err := Init(Config{Level: "error"})
	require.NoError(t, err)
	assert.False(t, lg.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, lg.Core().Enabled(zapcore.ErrorLevel))

	lg, err = Init(Config{Level: "debug", Dev: true})
	require.NoError(t, err)
	assert.True(t, lg.Core().Enabled(zapcore.DebugLevel))
}

func TestInitWritesRotatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "accounts.log")

	lg, err := Init(Config{Level: "info", File: path, MaxAge: 24 * time.Hour})
	require.NoError(t, err)
	lg.Info("account created")
	_ = lg.Sync()

	matches, err := filepath.Glob(path + ".*")
	require.NoError(t, err)
	require.Len(t, matches, 1)

	b, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `"msg":"account created"`))
}
