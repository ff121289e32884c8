// Package format renders classified content safely for display.
package format

import (
	"net/url"
	"regexp"
	"strings"

	gounits "github.com/docker/go-units"

	"github.com/clipguard/clipguard/pkg/pattern"
	"github.com/clipguard/clipguard/pkg/policy"
)

// HiddenLabel replaces content that must never be shown.
const HiddenLabel = "••• hidden •••"

// BlurGlyph is the masked rendering of blurred content before reveal.
const BlurGlyph = "••••••••"

// The prefix may carry digits after the first letter (lightning invoices
// encode the amount there); the payload charset has no digit one, so the
// separator is the last one in the token.
var bech32Token = regexp.MustCompile(`^([a-z][a-z0-9]{1,9})1([qpzry9x8gf2tvdw0s3jn54khce6mua7l]+)$`)

// Abbreviate renders text in the fixed truncation format: any bech32
// human-readable prefix is kept as a display prefix and stripped from the
// payload, then the first 8 payload characters, a literal ellipsis, and the
// last 4 (npub1abcdefgh...qrst). Short payloads pass through unchanged.
func Abbreviate(text string) string {
	if m := bech32Token.FindStringSubmatch(strings.ToLower(text)); m != nil {
		payload := m[2]
		if len(payload) <= 12 {
			return text
		}
		return m[1] + "1" + payload[:8] + "..." + payload[len(payload)-4:]
	}
	if len(text) <= 12 {
		return text
	}
	return text[:8] + "..." + text[len(text)-4:]
}

// RelayDisplay strips a relay URL down to scheme and host.
func RelayDisplay(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return Abbreviate(raw)
	}
	return u.Scheme + "://" + u.Host
}

// SafeText renders matched text under its display policy. Revealed content
// bypasses this path; SafeText is what lists, logs and notifications use.
func SafeText(kind pattern.Kind, display policy.DisplayPolicy, text string) string {
	switch display {
	case policy.Hidden:
		return HiddenLabel
	case policy.Blurred:
		return BlurGlyph
	case policy.Abbreviated:
		if kind == pattern.KindRelayURL {
			return RelayDisplay(text)
		}
		return Abbreviate(text)
	default:
		if kind == pattern.KindRelayURL {
			return RelayDisplay(text)
		}
		return text
	}
}

// ParseHumanSize parses a human-readable size string (e.g. "100KB") into bytes.
func ParseHumanSize(size string) (int64, error) {
	return gounits.FromHumanSize(size)
}
