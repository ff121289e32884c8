package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

func TestLoadDefaults(t *testing.T) {
	v := NewViper()
	// Pin the config to a missing file so a developer's real config cannot
	// leak into the test.
	v.SetConfigFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	opts, err := Load(v)
	require.NoError(t, err)

	want := Defaults()
	assert.Equal(t, want.Capacity, opts.Capacity)
	assert.Equal(t, want.SweepInterval, opts.SweepInterval)
	assert.Equal(t, want.PollInterval, opts.PollInterval)
	assert.Equal(t, want.MaxScanBytes, opts.MaxScanBytes)
	assert.Equal(t, want.ContextWindow, opts.ContextWindow)
	assert.Empty(t, opts.RulesFile)
	assert.Empty(t, opts.SnapshotFile)
	assert.Empty(t, opts.KeyFile)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clipguard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
capacity: 10
sweep_interval: 5s
poll_interval: 250ms
max_scan_size: 1MB
context_window: 80
rules_file: /etc/clipguard/rules.yml
`), 0o600))

	v := NewViper()
	v.SetConfigFile(path)

	opts, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 10, opts.Capacity)
	assert.Equal(t, 5*time.Second, opts.SweepInterval)
	assert.Equal(t, 250*time.Millisecond, opts.PollInterval)
	assert.Equal(t, 1_000_000, opts.MaxScanBytes)
	assert.Equal(t, 80, opts.ContextWindow)
	assert.Equal(t, "/etc/clipguard/rules.yml", opts.RulesFile)
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("CLIPGUARD_CAPACITY", "7")
	t.Setenv("CLIPGUARD_POLL_INTERVAL", "50ms")

	v := NewViper()
	v.SetConfigFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))

	opts, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 7, opts.Capacity)
	assert.Equal(t, 50*time.Millisecond, opts.PollInterval)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "bad sweep interval", key: "sweep_interval", value: "soonish"},
		{name: "bad poll interval", key: "poll_interval", value: "never"},
		{name: "bad scan size", key: "max_scan_size", value: "plenty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewViper()
			v.SetConfigFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
			v.Set(tt.key, tt.value)

			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}
