package cmd

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.Disabled)
}

func TestNewMonitorCmd(t *testing.T) {
	t.Run("creates monitor command", func(t *testing.T) {
		cmd := NewMonitorCmd()
		assert.NotNil(t, cmd)
		assert.Equal(t, "monitor", cmd.Use)
		assert.NotNil(t, cmd.Run)
	})

	t.Run("has flags", func(t *testing.T) {
		cmd := NewMonitorCmd()

		assert.NotNil(t, cmd.Flags().Lookup("capacity"))
		assert.NotNil(t, cmd.Flags().Lookup("poll-interval"))
		assert.NotNil(t, cmd.Flags().Lookup("sweep-interval"))
		assert.NotNil(t, cmd.Flags().Lookup("max-scan-size"))
		assert.NotNil(t, cmd.Flags().Lookup("rules"))
		assert.NotNil(t, cmd.Flags().Lookup("snapshot"))
		assert.NotNil(t, cmd.Flags().Lookup("key-file"))

		verboseFlag := cmd.PersistentFlags().Lookup("verbose")
		assert.NotNil(t, verboseFlag)
		assert.Equal(t, "false", verboseFlag.DefValue)
	})
}

func TestNewScanCmd(t *testing.T) {
	t.Run("creates scan command", func(t *testing.T) {
		cmd := NewScanCmd()
		assert.NotNil(t, cmd)
		assert.Equal(t, "scan [text]", cmd.Use)
		assert.NotNil(t, cmd.Run)
	})

	t.Run("has flags", func(t *testing.T) {
		cmd := NewScanCmd()

		deepFlag := cmd.Flags().Lookup("deep")
		assert.NotNil(t, deepFlag)
		assert.Equal(t, "false", deepFlag.DefValue)

		verboseFlag := cmd.PersistentFlags().Lookup("verbose")
		assert.NotNil(t, verboseFlag)
	})
}

func TestRootCommandWiring(t *testing.T) {
	names := []string{}
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "monitor")
	assert.Contains(t, names, "scan")
}
