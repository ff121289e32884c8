package format

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clipguard/clipguard/pkg/pattern"
	"github.com/clipguard/clipguard/pkg/policy"
)

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "npub keeps prefix",
			in:   "npub10elfcs4fr0l0r8af98jlmgdh9c8tcxjvz9qkw038js35mp4dma8qzvjptg",
			out:  "npub10elfcs4f...jptg",
		},
		{
			name: "segwit address keeps prefix",
			in:   "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq",
			out:  "bc1qar0srrr...5mdq",
		},
		{
			name: "lightning invoice keeps amount prefix",
			in:   "lnbc2500u1pvjluezqqqsyqcyq5rqwzqfqypq",
			out:  "lnbc2500u1pvjluezq...qypq",
		},
		{
			name: "plain long token",
			in:   strings.Repeat("a", 40),
			out:  "aaaaaaaa...aaaa",
		},
		{
			name: "short token passes through",
			in:   "short",
			out:  "short",
		},
		{
			name: "twelve characters pass through",
			in:   "123456789012",
			out:  "123456789012",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, Abbreviate(tt.in))
		})
	}
}

func TestRelayDisplay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		out  string
	}{
		{
			name: "bare relay",
			in:   "wss://relay.damus.io",
			out:  "wss://relay.damus.io",
		},
		{
			name: "path and query stripped",
			in:   "wss://relay.damus.io/v1?auth=tok_abcdef",
			out:  "wss://relay.damus.io",
		},
		{
			name: "port preserved",
			in:   "ws://localhost:7777/sub",
			out:  "ws://localhost:7777",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.out, RelayDisplay(tt.in))
		})
	}
}

func TestSafeText(t *testing.T) {
	nsec := "nsec1vl029mgpspedva04g90vltkh6fvh240zqtv9k0t9af8935ke9laqsnlfe5"

	tests := []struct {
		name    string
		kind    pattern.Kind
		display policy.DisplayPolicy
		in      string
		out     string
	}{
		{
			name:    "hidden never leaks",
			kind:    pattern.KindNostrPrivateKey,
			display: policy.Hidden,
			in:      nsec,
			out:     HiddenLabel,
		},
		{
			name:    "blurred masks",
			kind:    pattern.KindBitcoinSegwitAddr,
			display: policy.Blurred,
			in:      "bc1qar0srrr7xfkvy5l643lydnw9re59gtzzwf5mdq",
			out:     BlurGlyph,
		},
		{
			name:    "abbreviated truncates",
			kind:    pattern.KindNostrPublicKey,
			display: policy.Abbreviated,
			in:      "npub10elfcs4fr0l0r8af98jlmgdh9c8tcxjvz9qkw038js35mp4dma8qzvjptg",
			out:     "npub10elfcs4f...jptg",
		},
		{
			name:    "relay urls reduce to origin",
			kind:    pattern.KindRelayURL,
			display: policy.Normal,
			in:      "wss://relay.damus.io/v1",
			out:     "wss://relay.damus.io",
		},
		{
			name:    "normal passes through",
			kind:    pattern.KindNostrNote,
			display: policy.Normal,
			in:      "note1abcdef",
			out:     "note1abcdef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeText(tt.kind, tt.display, tt.in)
			assert.Equal(t, tt.out, got)
			if tt.display == policy.Hidden {
				assert.NotContains(t, got, tt.in)
			}
		})
	}
}

func TestParseHumanSize(t *testing.T) {
	n, err := ParseHumanSize("100KB")
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), n)

	n, err = ParseHumanSize("1MB")
	require.NoError(t, err)
	assert.Equal(t, int64(1_000_000), n)

	_, err = ParseHumanSize("lots")
	assert.Error(t, err)
}
