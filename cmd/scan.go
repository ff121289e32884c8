package cmd

import (
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/clipguard/clipguard/helper"
	"github.com/clipguard/clipguard/pkg/classify"
	"github.com/clipguard/clipguard/pkg/format"
	"github.com/clipguard/clipguard/pkg/policy"
)

var (
	scanDeep    bool
	scanVerbose bool
)

func NewScanCmd() *cobra.Command {
	scanCmd := &cobra.Command{
		Use:   "scan [text]",
		Short: "Classify a single snippet from the argument or stdin",
		Run:   Scan,
	}

	scanCmd.Flags().BoolVar(&scanDeep, "deep", false, "Additionally run the trufflehog detector set (slower)")
	scanCmd.PersistentFlags().BoolVarP(&scanVerbose, "verbose", "v", false, "Verbose Logging")

	return scanCmd
}

func Scan(cmd *cobra.Command, args []string) {
	helper.SetLogLevel(scanVerbose)

	var text string
	if len(args) > 0 {
		text = args[0]
	} else {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed reading stdin")
		}
		text = string(raw)
	}

	findings := classify.Classify(text)
	if scanDeep {
		findings = append(findings, classify.DeepScan(cmd.Context(), text)...)
	}

	if len(findings) == 0 {
		log.Info().Msg("No sensitive content found")
		return
	}

	for _, f := range findings {
		pol := policy.For(f.Kind)
		log.Info().
			Str("kind", string(f.Kind)).
			Str("protocol", string(f.Protocol)).
			Str("confidence", f.Confidence.String()).
			Str("risk", pol.Risk.String()).
			Dur("ttl", pol.TTL).
			Str("display", format.SafeText(f.Kind, pol.Display, f.MatchedText)).
			Msg("Finding")
	}

	dominant, pol, _ := classify.Dominant(findings)
	log.Info().
		Str("kind", string(dominant.Kind)).
		Str("risk", pol.Risk.String()).
		Str("displayPolicy", pol.Display.String()).
		Msg("Dominant finding")
}
