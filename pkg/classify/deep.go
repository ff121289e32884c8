package classify

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/trufflesecurity/trufflehog/v3/pkg/engine/defaults"

	"github.com/clipguard/clipguard/pkg/pattern"
)

// DeepScan runs the trufflehog default detector set over the snippet and
// maps hits to generic findings. Detection stays fully offline: remote
// verification is never enabled, so verified status is not available and
// every hit carries low confidence. Intended for the one-shot scan command,
// not the clipboard hot path.
func DeepScan(ctx context.Context, text string) []Finding {
	var findings []Finding
	data := []byte(text)

	for _, detector := range defaults.DefaultDetectors() {
		results, err := detector.FromData(ctx, false, data)
		if err != nil {
			log.Trace().Err(err).Msg("Detector failed")
			continue
		}
		for _, result := range results {
			secret := result.Raw
			if len(result.RawV2) > 0 {
				secret = result.RawV2
			}
			matched := string(secret)
			start := strings.Index(text, matched)
			end := start + len(matched)
			if start < 0 {
				start, end = 0, 0
			}
			findings = append(findings, Finding{
				Kind:        pattern.Kind("detector_" + strings.ToLower(result.DetectorType.String())),
				Protocol:    pattern.ProtocolGeneric,
				Start:       start,
				End:         end,
				Confidence:  ConfidenceLow,
				MatchedText: strings.Clone(matched),
			})
		}
	}
	return findings
}
