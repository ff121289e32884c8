package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/clipguard/clipguard/helper"
	"github.com/clipguard/clipguard/pkg/classify"
	"github.com/clipguard/clipguard/pkg/config"
	"github.com/clipguard/clipguard/pkg/keychain"
	"github.com/clipguard/clipguard/pkg/monitor"
	"github.com/clipguard/clipguard/pkg/pattern"
	"github.com/clipguard/clipguard/pkg/store"
)

var monitorVerbose bool

func NewMonitorCmd() *cobra.Command {
	monitorCmd := &cobra.Command{
		Use:   "monitor",
		Short: "Watch the clipboard and keep an encrypted, auto-expiring history",
		Run:   Monitor,
	}

	v := config.NewViper()
	monitorCmd.Flags().Int("capacity", 0, "Maximum number of history records")
	monitorCmd.Flags().Duration("poll-interval", 0, "Clipboard polling interval")
	monitorCmd.Flags().Duration("sweep-interval", 0, "Expiry sweep interval")
	monitorCmd.Flags().String("max-scan-size", "", "Scan bound per snippet, human readable (e.g. 100KB)")
	monitorCmd.Flags().String("rules", "", "Additional pattern rules YAML file")
	monitorCmd.Flags().String("snapshot", "", "Encrypted history snapshot file")
	monitorCmd.Flags().String("key-file", "", "Encryption key file path")
	_ = v.BindPFlag("capacity", monitorCmd.Flags().Lookup("capacity"))
	_ = v.BindPFlag("poll_interval", monitorCmd.Flags().Lookup("poll-interval"))
	_ = v.BindPFlag("sweep_interval", monitorCmd.Flags().Lookup("sweep-interval"))
	_ = v.BindPFlag("max_scan_size", monitorCmd.Flags().Lookup("max-scan-size"))
	_ = v.BindPFlag("rules_file", monitorCmd.Flags().Lookup("rules"))
	_ = v.BindPFlag("snapshot_file", monitorCmd.Flags().Lookup("snapshot"))
	_ = v.BindPFlag("key_file", monitorCmd.Flags().Lookup("key-file"))
	monitorViper = v

	monitorCmd.PersistentFlags().BoolVarP(&monitorVerbose, "verbose", "v", false, "Verbose Logging")

	return monitorCmd
}

var monitorViper *viper.Viper

func Monitor(cmd *cobra.Command, args []string) {
	helper.SetLogLevel(monitorVerbose)

	opts, err := config.Load(monitorViper)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed loading configuration")
	}

	classifierOpts := []classify.Option{
		classify.WithMaxScanBytes(opts.MaxScanBytes),
		classify.WithContextWindow(opts.ContextWindow),
	}
	if opts.RulesFile != "" {
		extra, err := pattern.LoadCustomSpecs(opts.RulesFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", opts.RulesFile).Msg("Failed loading custom rules")
		}
		classifierOpts = append(classifierOpts, classify.WithExtraSpecs(extra))
	}
	cls := classify.New(classifierOpts...)

	keyPath := opts.KeyFile
	if keyPath == "" {
		keyPath, err = keychain.DefaultKeyPath()
		if err != nil {
			log.Warn().Err(err).Msg("No key path available, history will be disabled")
		}
	}

	st := store.New(&keychain.File{Path: keyPath}, store.Options{
		Capacity:   opts.Capacity,
		Classifier: cls,
	})
	if opts.SnapshotFile != "" {
		if err := st.LoadSnapshot(opts.SnapshotFile); err != nil {
			log.Warn().Err(err).Msg("Could not restore history snapshot")
		}
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	st.StartSweeper(ctx, opts.SweepInterval)

	mon := monitor.New(st, monitor.SystemClipboard(), monitor.Options{
		PollInterval: opts.PollInterval,
		Classifier:   cls,
	})

	helper.RegisterGracefulShutdownHandler(func() {
		cancel()
		if opts.SnapshotFile != "" {
			if err := st.SaveSnapshot(opts.SnapshotFile); err != nil {
				log.Warn().Err(err).Msg("Could not save history snapshot")
			}
		}
		st.Close()
	})

	go func() {
		if err := mon.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error().Err(err).Msg("Clipboard monitor stopped unexpectedly")
		}
	}()

	log.Info().Msg("Press s for status, t/d/i/w/e to change the log level, ctrl-c to quit")
	helper.ShortcutListeners(mon.StatusEvent)

	cancel()
	if opts.SnapshotFile != "" {
		if err := st.SaveSnapshot(opts.SnapshotFile); err != nil {
			log.Warn().Err(err).Msg("Could not save history snapshot")
		}
	}
	st.Close()
}
