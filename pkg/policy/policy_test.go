package policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/clipguard/clipguard/pkg/pattern"
)

func TestForKnownKinds(t *testing.T) {
	tests := []struct {
		name string
		kind pattern.Kind
		want Policy
	}{
		{
			name: "nostr private key is catastrophic",
			kind: pattern.KindNostrPrivateKey,
			want: Policy{Critical, 10 * time.Second, Hidden},
		},
		{
			name: "seed phrase is catastrophic",
			kind: pattern.KindSeedPhrase,
			want: Policy{Critical, 10 * time.Second, Hidden},
		},
		{
			name: "context resolved private hex key is catastrophic",
			kind: pattern.KindNostrHexPrivateKey,
			want: Policy{Critical, 10 * time.Second, Hidden},
		},
		{
			name: "ambiguous hex key stays high",
			kind: pattern.KindNostrHexKey,
			want: Policy{High, 15 * time.Second, Blurred},
		},
		{
			name: "extended public key exposes the wallet branch",
			kind: pattern.KindBitcoinXpub,
			want: Policy{High, 15 * time.Second, Blurred},
		},
		{
			name: "testnet address tracks mainnet addresses",
			kind: pattern.KindBitcoinTestnetAddr,
			want: Policy{Medium, 30 * time.Second, Blurred},
		},
		{
			name: "encrypted dm event stays high",
			kind: pattern.KindJSONEventDM,
			want: Policy{High, 15 * time.Second, Blurred},
		},
		{
			name: "segwit address is medium blurred",
			kind: pattern.KindBitcoinSegwitAddr,
			want: Policy{Medium, 30 * time.Second, Blurred},
		},
		{
			name: "public key abbreviates",
			kind: pattern.KindNostrPublicKey,
			want: Policy{Medium, 60 * time.Second, Abbreviated},
		},
		{
			name: "relay url never expires",
			kind: pattern.KindRelayURL,
			want: Policy{Minimal, 0, Normal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, For(tt.kind))
		})
	}
}

func TestForUnknownKindUsesDefault(t *testing.T) {
	got := For(pattern.Kind("custom_internal token"))
	assert.Equal(t, Default, got)
	assert.Equal(t, Medium, got.Risk)
}

func TestRiskOrdering(t *testing.T) {
	assert.True(t, Minimal < Low)
	assert.True(t, Low < Medium)
	assert.True(t, Medium < High)
	assert.True(t, High < Critical)
}

func TestStringers(t *testing.T) {
	assert.Equal(t, "CRITICAL", Critical.String())
	assert.Equal(t, "MINIMAL", Minimal.String())
	assert.Equal(t, "UNKNOWN", RiskLevel(99).String())

	assert.Equal(t, "HIDDEN", Hidden.String())
	assert.Equal(t, "ABBREVIATED", Abbreviated.String())
	assert.Equal(t, "UNKNOWN", DisplayPolicy(99).String())
}

func TestEveryPrivateKeyKindIsHiddenAndCritical(t *testing.T) {
	kinds := []pattern.Kind{
		pattern.KindBitcoinPrivateKey,
		pattern.KindBitcoinXprv,
		pattern.KindSeedPhrase,
		pattern.KindSSHPrivateKey,
		pattern.KindNostrPrivateKey,
		pattern.KindNostrHexPrivateKey,
	}
	for _, kind := range kinds {
		p := For(kind)
		assert.Equal(t, Critical, p.Risk, "kind %s", kind)
		assert.Equal(t, Hidden, p.Display, "kind %s", kind)
		assert.Greater(t, p.TTL, time.Duration(0), "kind %s", kind)
	}
}
