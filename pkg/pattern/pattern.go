package pattern

import (
	"regexp"
)

// Protocol groups kinds by the ecosystem they belong to.
type Protocol string

const (
	ProtocolBitcoin Protocol = "bitcoin"
	ProtocolNostr   Protocol = "nostr"
	ProtocolGeneric Protocol = "generic"
)

// Kind tags one recognizable content shape. The classifier may refine a
// matched kind (hex keys by context, JSON events by their kind field) into
// one of the derived kinds below.
type Kind string

const (
	KindBitcoinLegacyAddr  Kind = "bitcoin_legacy_address"
	KindBitcoinP2SHAddr    Kind = "bitcoin_p2sh_address"
	KindBitcoinSegwitAddr  Kind = "bitcoin_segwit_address"
	KindBitcoinTaprootAddr Kind = "bitcoin_taproot_address"
	KindBitcoinTestnetAddr Kind = "bitcoin_testnet_address"
	KindBitcoinPrivateKey  Kind = "bitcoin_private_key"
	KindBitcoinXprv        Kind = "bitcoin_extended_private_key"
	KindBitcoinXpub        Kind = "bitcoin_extended_public_key"
	KindSeedPhrase         Kind = "seed_phrase"
	KindLightningInvoice   Kind = "lightning_invoice"

	KindNostrPrivateKey Kind = "nostr_private_key"
	KindNostrPublicKey  Kind = "nostr_public_key"
	KindNostrNote       Kind = "nostr_note"
	KindNostrEvent      Kind = "nostr_event"
	KindNostrProfile    Kind = "nostr_profile"
	KindNostrAddr       Kind = "nostr_address"

	// KindNostrHexKey is the raw shape; context resolution narrows it to one
	// of the two derived kinds, or leaves it as-is when context is missing or
	// conflicting (the fail-safe default).
	KindNostrHexKey        Kind = "nostr_hex_key"
	KindNostrHexPrivateKey Kind = "nostr_hex_private_key"
	KindNostrHexPublicKey  Kind = "nostr_hex_public_key"

	KindRelayURL Kind = "relay_url"
	KindNIP05    Kind = "nip05_identifier"

	// KindJSONEvent is the raw shape; the integer kind field narrows it.
	KindJSONEvent           Kind = "json_event"
	KindJSONEventDM         Kind = "json_event_encrypted_dm"
	KindJSONEventProfile    Kind = "json_event_profile"
	KindJSONEventNote       Kind = "json_event_note"
	KindJSONEventZapRequest Kind = "json_event_zap_request"
	KindJSONEventZapReceipt Kind = "json_event_zap_receipt"

	KindPassword      Kind = "password"
	KindCreditCard    Kind = "credit_card"
	KindSSN           Kind = "ssn"
	KindAPIKey        Kind = "api_key"
	KindJWT           Kind = "jwt_token"
	KindSSHPrivateKey Kind = "ssh_private_key"
)

// Spec describes one recognizable shape: how to find candidate spans and how
// to validate them. Precedence decides which spec wins when spans overlap;
// higher wins, ties go to the longer span, then to the spec declared earlier
// in the table.
type Spec struct {
	Kind       Kind
	Protocol   Protocol
	Pattern    *regexp.Regexp
	Precedence int

	// Validate applies the checksum or structure rule to a shape match.
	// A nil Validate means the shape alone is enough; findings from such
	// specs carry low confidence.
	Validate func(match string) bool

	// ContextWords, when set, requires at least one of the listed keywords
	// within the classifier's context window around the match.
	ContextWords []string

	// matcher replaces Pattern for shapes a regular expression cannot
	// express (balanced JSON objects).
	matcher func(text string) [][]int
}

// Find returns all candidate spans of the spec in text as [start,end) pairs.
func (s *Spec) Find(text string) [][]int {
	if s.matcher != nil {
		return s.matcher(text)
	}
	return s.Pattern.FindAllStringIndex(text, -1)
}

const bech32Charset = `qpzry9x8gf2tvdw0s3jn54khce6mua7l`

var builtin = []Spec{
	{
		Kind:       KindSSHPrivateKey,
		Protocol:   ProtocolGeneric,
		Pattern:    regexp.MustCompile(`-----BEGIN (?:RSA |DSA |EC |OPENSSH |ENCRYPTED )?PRIVATE KEY-----`),
		Precedence: 97,
	},
	{
		Kind:       KindSeedPhrase,
		Protocol:   ProtocolBitcoin,
		Precedence: 95,
		Validate:   validSeedPhrase,
		matcher:    matchSeedPhrase,
	},
	{
		Kind:       KindNostrPrivateKey,
		Protocol:   ProtocolNostr,
		Pattern:    regexp.MustCompile(`\bnsec1[` + bech32Charset + `]{6,}\b`),
		Precedence: 92,
		Validate:   validBech32("nsec"),
	},
	{
		Kind:       KindNostrPublicKey,
		Protocol:   ProtocolNostr,
		Pattern:    regexp.MustCompile(`\bnpub1[` + bech32Charset + `]{6,}\b`),
		Precedence: 91,
		Validate:   validBech32("npub"),
	},
	{
		Kind:       KindBitcoinTaprootAddr,
		Protocol:   ProtocolBitcoin,
		Pattern:    regexp.MustCompile(`\bbc1p[` + bech32Charset + `]{6,87}\b`),
		Precedence: 90,
		Validate:   validBech32m("bc"),
	},
	{
		Kind:       KindNostrNote,
		Protocol:   ProtocolNostr,
		Pattern:    regexp.MustCompile(`\bnote1[` + bech32Charset + `]{6,}\b`),
		Precedence: 89,
		Validate:   validBech32("note"),
	},
	{
		Kind:       KindNostrEvent,
		Protocol:   ProtocolNostr,
		Pattern:    regexp.MustCompile(`\bnevent1[` + bech32Charset + `]{6,}\b`),
		Precedence: 89,
		Validate:   validBech32("nevent"),
	},
	{
		Kind:       KindNostrProfile,
		Protocol:   ProtocolNostr,
		Pattern:    regexp.MustCompile(`\bnprofile1[` + bech32Charset + `]{6,}\b`),
		Precedence: 89,
		Validate:   validBech32("nprofile"),
	},
	{
		Kind:       KindNostrAddr,
		Protocol:   ProtocolNostr,
		Pattern:    regexp.MustCompile(`\bnaddr1[` + bech32Charset + `]{6,}\b`),
		Precedence: 89,
		Validate:   validBech32("naddr"),
	},
	{
		Kind:       KindLightningInvoice,
		Protocol:   ProtocolBitcoin,
		Pattern:    regexp.MustCompile(`\bln(?:bc|tb)[0-9]*[munp]?1[` + bech32Charset + `]{6,}\b`),
		Precedence: 88,
		Validate:   validLightning,
	},
	{
		Kind:       KindBitcoinSegwitAddr,
		Protocol:   ProtocolBitcoin,
		Pattern:    regexp.MustCompile(`\bbc1q[` + bech32Charset + `]{6,87}\b`),
		Precedence: 85,
		Validate:   validBech32("bc"),
	},
	{
		Kind:       KindBitcoinXprv,
		Protocol:   ProtocolBitcoin,
		Pattern:    regexp.MustCompile(`\bxprv[1-9A-HJ-NP-Za-km-z]{107}\b`),
		Precedence: 82,
		Validate:   validXprv,
	},
	{
		Kind:       KindBitcoinXpub,
		Protocol:   ProtocolBitcoin,
		Pattern:    regexp.MustCompile(`\bxpub[1-9A-HJ-NP-Za-km-z]{107}\b`),
		Precedence: 81,
		Validate:   validXpub,
	},
	{
		Kind:       KindBitcoinPrivateKey,
		Protocol:   ProtocolBitcoin,
		Pattern:    regexp.MustCompile(`\b[5KL][1-9A-HJ-NP-Za-km-z]{50,51}\b`),
		Precedence: 80,
		Validate:   validWIF,
	},
	{
		Kind:       KindJSONEvent,
		Protocol:   ProtocolNostr,
		Precedence: 75,
		matcher:    matchJSONEvent,
	},
	{
		Kind:       KindRelayURL,
		Protocol:   ProtocolNostr,
		Pattern:    regexp.MustCompile(`\bwss?://[a-zA-Z0-9.-]+(?::[0-9]+)?(?:/[^\s"']*)?`),
		Precedence: 70,
		Validate:   validRelayURL,
	},
	{
		Kind:       KindJWT,
		Protocol:   ProtocolGeneric,
		Pattern:    regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\b`),
		Precedence: 66,
	},
	{
		Kind:     KindAPIKey,
		Protocol: ProtocolGeneric,
		Pattern: regexp.MustCompile(`\b(?:` +
			`AKIA[0-9A-Z]{16}` +
			`|sk_live_[a-zA-Z0-9]{24,}` +
			`|pk_live_[a-zA-Z0-9]{24,}` +
			`|ghp_[A-Za-z0-9]{36}` +
			`|gho_[A-Za-z0-9]{36}` +
			`|glpat-[A-Za-z0-9_\-]{20,}` +
			`|xox[baprs]-[A-Za-z0-9\-]{10,}` +
			`)\b`),
		Precedence: 65,
	},
	{
		Kind:       KindBitcoinLegacyAddr,
		Protocol:   ProtocolBitcoin,
		Pattern:    regexp.MustCompile(`\b1[a-km-zA-HJ-NP-Z1-9]{24,33}\b`),
		Precedence: 60,
		Validate:   validBase58Check,
	},
	{
		Kind:       KindBitcoinP2SHAddr,
		Protocol:   ProtocolBitcoin,
		Pattern:    regexp.MustCompile(`\b3[a-km-zA-HJ-NP-Z1-9]{24,33}\b`),
		Precedence: 60,
		Validate:   validP2SHAddr,
	},
	{
		Kind:       KindBitcoinTestnetAddr,
		Protocol:   ProtocolBitcoin,
		Pattern:    regexp.MustCompile(`\b(?:tb1[` + bech32Charset + `]{6,87}|[mn2][a-km-zA-HJ-NP-Z1-9]{25,34})\b`),
		Precedence: 59,
		Validate:   validTestnetAddr,
	},
	{
		Kind:       KindCreditCard,
		Protocol:   ProtocolGeneric,
		Pattern:    regexp.MustCompile(`\b(?:\d[ \-]?){12,18}\d\b`),
		Precedence: 50,
		Validate:   validCreditCard,
	},
	{
		Kind:       KindSSN,
		Protocol:   ProtocolGeneric,
		Pattern:    regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
		Precedence: 45,
		Validate:   validSSN,
	},
	{
		Kind:       KindNostrHexKey,
		Protocol:   ProtocolNostr,
		Pattern:    regexp.MustCompile(`\b[0-9a-fA-F]{64}\b`),
		Precedence: 40,
	},
	{
		Kind:       KindNIP05,
		Protocol:   ProtocolNostr,
		Pattern:    regexp.MustCompile(`(?i)\b[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}\b`),
		Precedence: 30,
		Validate:   validNIP05Domain,
	},
	{
		Kind:         KindPassword,
		Protocol:     ProtocolGeneric,
		Pattern:      regexp.MustCompile(`\S{8,64}`),
		Precedence:   20,
		Validate:     validPasswordShape,
		ContextWords: []string{"password", "passwd", "pwd", "pass"},
	},
}

// Specs returns the built-in pattern table in precedence-declaration order.
// The returned slice is shared; callers must not mutate it.
func Specs() []Spec {
	return builtin
}
