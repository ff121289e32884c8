// Package config resolves runtime options from defaults, an optional YAML
// config file and CLIPGUARD_* environment variables, flags last.
package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/clipguard/clipguard/pkg/format"
)

// Options carries every tunable of the pipeline.
type Options struct {
	Capacity      int
	SweepInterval time.Duration
	PollInterval  time.Duration
	MaxScanBytes  int
	ContextWindow int
	RulesFile     string
	SnapshotFile  string
	KeyFile       string
}

func Defaults() Options {
	return Options{
		Capacity:      50,
		SweepInterval: time.Second,
		PollInterval:  100 * time.Millisecond,
		MaxScanBytes:  100_000,
		ContextWindow: 40,
	}
}

// NewViper builds a viper instance with defaults, env binding and the
// optional config file registered.
func NewViper() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault("capacity", d.Capacity)
	v.SetDefault("sweep_interval", d.SweepInterval.String())
	v.SetDefault("poll_interval", d.PollInterval.String())
	v.SetDefault("max_scan_size", "100KB")
	v.SetDefault("context_window", d.ContextWindow)
	v.SetDefault("rules_file", "")
	v.SetDefault("snapshot_file", "")
	v.SetDefault("key_file", "")

	v.SetEnvPrefix("clipguard")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("clipguard")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.config/clipguard")
	v.AddConfigPath(".")
	return v
}

// Load reads the config file if present and materializes Options.
func Load(v *viper.Viper) (Options, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Options{}, err
		}
	} else {
		log.Debug().Str("file", v.ConfigFileUsed()).Msg("Loaded config file")
	}

	opts := Options{
		Capacity:      v.GetInt("capacity"),
		ContextWindow: v.GetInt("context_window"),
		RulesFile:     v.GetString("rules_file"),
		SnapshotFile:  v.GetString("snapshot_file"),
		KeyFile:       v.GetString("key_file"),
	}

	var err error
	if opts.SweepInterval, err = time.ParseDuration(v.GetString("sweep_interval")); err != nil {
		return Options{}, err
	}
	if opts.PollInterval, err = time.ParseDuration(v.GetString("poll_interval")); err != nil {
		return Options{}, err
	}

	size, err := format.ParseHumanSize(v.GetString("max_scan_size"))
	if err != nil {
		return Options{}, err
	}
	opts.MaxScanBytes = int(size)

	return opts, nil
}
