package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.NoError(t, err)

	assert.Equal(t, "info", conf.LogLevel)
	assert.Equal(t, "text", conf.LogFormat)
	assert.Equal(t, "opponent", conf.Mode)
	assert.Equal(t, "text", conf.Dialect)
	assert.False(t, conf.NoColor)
	assert.Equal(t, uint64(0), conf.Seed)
	assert.Equal(t, "tic-tac-toe", conf.Telemetry.ServiceName)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte(`
log-level: debug
mode: manual
dialect: json
no-color: true
seed: 42
telemetry:
  service-name: ttt-test
  stdout-traces: true
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	conf, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", conf.LogLevel)
	assert.Equal(t, "manual", conf.Mode)
	assert.Equal(t, "json", conf.Dialect)
	assert.True(t, conf.NoColor)
	assert.Equal(t, uint64(42), conf.Seed)
	assert.Equal(t, "ttt-test", conf.Telemetry.ServiceName)
	assert.True(t, conf.Telemetry.StdoutTraces)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TTT_MODE", "manual")
	t.Setenv("TTT_SEED", "7")

	conf, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "manual", conf.Mode)
	assert.Equal(t, uint64(7), conf.Seed)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("TTT_MODE", "tournament")

	_, err := Load("")
	assert.ErrorContains(t, err, "invalid config")

	assert.Panics(t, func() { MustLoad("") })
}
