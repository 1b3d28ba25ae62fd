package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
sched:
  sync_ratio: 8
workload:
  requests: 100
  sync_fraction: 0.5
  seed: 1
device:
  dispatch_every: 2
metrics:
  prometheus_addr: ":9090"
  sinks:
    - type: nop
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Sched.SyncRatio)
	assert.Equal(t, 100, cfg.Workload.Requests)
	assert.Equal(t, 2, cfg.Device.DispatchEvery)
	assert.Equal(t, ":9090", cfg.Metrics.PrometheusAddr)
	require.Len(t, cfg.Metrics.Sinks, 1)
	assert.Equal(t, "nop", cfg.Metrics.Sinks[0].Type)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"sched":{"sync_ratio":2},"workload":{"requests":10}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Sched.SyncRatio)
	assert.Equal(t, 10, cfg.Workload.Requests)
}

func TestLoadDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", `{}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Sched.SyncRatio)
	assert.NotZero(t, cfg.Workload.Requests)
	assert.NotZero(t, cfg.Device.DispatchEvery)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("TEETER_SCHED__SYNC_RATIO", "16")
	path := writeFile(t, "config.yaml", `sched: {sync_ratio: 4}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 16, cfg.Sched.SyncRatio)
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeFile(t, "config.toml", `x = 1`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidRatio(t *testing.T) {
	path := writeFile(t, "config.yaml", `sched: {sync_ratio: 999}`)
	_, err := Load(path)
	assert.Error(t, err)
}
