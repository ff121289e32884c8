package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	rootCmd = &cobra.Command{
		Use:   "clipguard",
		Short: "🔒 Guard the clipboard against leaking wallet keys and secrets 🔒",
		Long:  "Clipguard watches the shared clipboard, classifies snippets for cryptographic material and secrets, and enforces risk-based retention before anything is kept. 🔒",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(NewMonitorCmd())
	rootCmd.AddCommand(NewScanCmd())

	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}
