// Package policy maps a finding kind to its retention and display policy.
// Lookups are pure and allocation-free so any number of callers may run them
// concurrently.
package policy

import (
	"time"

	"github.com/clipguard/clipguard/pkg/pattern"
)

// RiskLevel orders severities from harmless to catastrophic.
type RiskLevel int

const (
	Minimal RiskLevel = iota
	Low
	Medium
	High
	Critical
)

func (r RiskLevel) String() string {
	switch r {
	case Minimal:
		return "MINIMAL"
	case Low:
		return "LOW"
	case Medium:
		return "MEDIUM"
	case High:
		return "HIGH"
	case Critical:
		return "CRITICAL"
	}
	return "UNKNOWN"
}

// DisplayPolicy controls how a record's content may be rendered.
type DisplayPolicy int

const (
	// Hidden content is never shown and refuses reveal.
	Hidden DisplayPolicy = iota
	// Blurred content renders as a masked glyph until explicitly revealed.
	Blurred
	// Abbreviated content renders in the fixed truncation format.
	Abbreviated
	// Normal content renders as-is.
	Normal
)

func (d DisplayPolicy) String() string {
	switch d {
	case Hidden:
		return "HIDDEN"
	case Blurred:
		return "BLURRED"
	case Abbreviated:
		return "ABBREVIATED"
	case Normal:
		return "NORMAL"
	}
	return "UNKNOWN"
}

// Policy bundles the decisions driven by a single finding kind. A zero TTL
// means the record never expires.
type Policy struct {
	Risk    RiskLevel
	TTL     time.Duration
	Display DisplayPolicy
}

var table = map[pattern.Kind]Policy{
	pattern.KindBitcoinPrivateKey:  {Critical, 10 * time.Second, Hidden},
	pattern.KindBitcoinXprv:        {Critical, 10 * time.Second, Hidden},
	pattern.KindSeedPhrase:         {Critical, 10 * time.Second, Hidden},
	pattern.KindSSHPrivateKey:      {Critical, 10 * time.Second, Hidden},
	pattern.KindNostrPrivateKey:    {Critical, 10 * time.Second, Hidden},
	pattern.KindNostrHexPrivateKey: {Critical, 10 * time.Second, Hidden},

	// The ambiguity-defaulted raw hex shape: private until proven otherwise.
	pattern.KindNostrHexKey: {High, 15 * time.Second, Blurred},
	pattern.KindJSONEventDM: {High, 15 * time.Second, Blurred},

	// An xpub exposes every address of a wallet branch, not funds.
	pattern.KindBitcoinXpub: {High, 15 * time.Second, Blurred},
	pattern.KindSSN:         {High, 15 * time.Second, Blurred},

	pattern.KindBitcoinLegacyAddr:   {Medium, 30 * time.Second, Blurred},
	pattern.KindBitcoinP2SHAddr:     {Medium, 30 * time.Second, Blurred},
	pattern.KindBitcoinSegwitAddr:   {Medium, 30 * time.Second, Blurred},
	pattern.KindBitcoinTaprootAddr:  {Medium, 30 * time.Second, Blurred},
	pattern.KindBitcoinTestnetAddr:  {Medium, 30 * time.Second, Blurred},
	pattern.KindCreditCard:          {Medium, 30 * time.Second, Blurred},
	pattern.KindNostrPublicKey:      {Medium, 60 * time.Second, Abbreviated},
	pattern.KindNostrProfile:        {Medium, 60 * time.Second, Abbreviated},
	pattern.KindNostrHexPublicKey:   {Medium, 60 * time.Second, Abbreviated},
	pattern.KindAPIKey:              {Medium, 60 * time.Second, Abbreviated},
	pattern.KindLightningInvoice:    {Medium, 60 * time.Second, Abbreviated},
	pattern.KindJSONEventProfile:    {Medium, 60 * time.Second, Blurred},
	pattern.KindJSONEventZapRequest: {Medium, 60 * time.Second, Blurred},

	pattern.KindNostrNote:           {Low, 120 * time.Second, Normal},
	pattern.KindNostrEvent:          {Low, 120 * time.Second, Normal},
	pattern.KindNostrAddr:           {Low, 120 * time.Second, Normal},
	pattern.KindJSONEvent:           {Low, 120 * time.Second, Normal},
	pattern.KindJSONEventNote:       {Low, 120 * time.Second, Normal},
	pattern.KindJSONEventZapReceipt: {Low, 120 * time.Second, Normal},
	pattern.KindPassword:            {Low, 60 * time.Second, Normal},
	pattern.KindJWT:                 {Low, 300 * time.Second, Normal},

	pattern.KindRelayURL: {Minimal, 0, Normal},
	pattern.KindNIP05:    {Minimal, 0, Normal},
}

// Default applies to custom rule kinds and anything else outside the table.
var Default = Policy{Medium, 60 * time.Second, Blurred}

// For returns the policy for a finding kind.
func For(kind pattern.Kind) Policy {
	if p, ok := table[kind]; ok {
		return p
	}
	return Default
}
