package pattern

import (
	"net/url"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
)

// validBech32 verifies a classic bech32 checksum and the expected
// human-readable prefix.
func validBech32(hrp string) func(string) bool {
	return func(match string) bool {
		got, _, version, err := bech32.DecodeGeneric(strings.ToLower(match))
		return err == nil && got == hrp && version == bech32.Version0
	}
}

// validBech32m is the bech32m variant used by taproot addresses.
func validBech32m(hrp string) func(string) bool {
	return func(match string) bool {
		got, _, version, err := bech32.DecodeGeneric(strings.ToLower(match))
		return err == nil && got == hrp && version == bech32.VersionM
	}
}

func validLightning(match string) bool {
	hrp, _, version, err := bech32.DecodeGeneric(strings.ToLower(match))
	if err != nil || version != bech32.Version0 {
		return false
	}
	return strings.HasPrefix(hrp, "lnbc") || strings.HasPrefix(hrp, "lntb")
}

func validBase58Check(match string) bool {
	_, version, err := base58.CheckDecode(match)
	return err == nil && version == 0x00
}

func validP2SHAddr(match string) bool {
	_, version, err := base58.CheckDecode(match)
	return err == nil && version == 0x05
}

// validTestnetAddr accepts the testnet address families: bech32 and
// bech32m under the tb prefix, pay-to-pubkey-hash with version 0x6f
// (prefixes m and n) and script-hash with version 0xc4 (prefix 2).
func validTestnetAddr(match string) bool {
	if strings.HasPrefix(strings.ToLower(match), "tb1") {
		hrp, _, _, err := bech32.DecodeGeneric(strings.ToLower(match))
		return err == nil && hrp == "tb"
	}
	_, version, err := base58.CheckDecode(match)
	return err == nil && (version == 0x6f || version == 0xc4)
}

// extendedKeyPayload decodes a base58check serialized extended key and
// returns its payload when the version byte and length fit the BIP32
// layout: one leading version byte 0x04 and 77 remaining bytes.
func extendedKeyPayload(match string) ([]byte, bool) {
	payload, version, err := base58.CheckDecode(match)
	if err != nil || version != 0x04 || len(payload) != 77 {
		return nil, false
	}
	return payload, true
}

// validXprv checks the mainnet private extended key version 0x0488ade4.
// The key field of a private key is zero-padded to 33 bytes.
func validXprv(match string) bool {
	payload, ok := extendedKeyPayload(match)
	return ok && payload[0] == 0x88 && payload[1] == 0xad && payload[2] == 0xe4 &&
		payload[44] == 0x00
}

// validXpub checks the mainnet public extended key version 0x0488b21e.
func validXpub(match string) bool {
	payload, ok := extendedKeyPayload(match)
	return ok && payload[0] == 0x88 && payload[1] == 0xb2 && payload[2] == 0x1e
}

// validWIF accepts mainnet wallet import format keys: base58check with
// version byte 0x80 and a 32-byte payload, optionally followed by the
// compressed-pubkey marker.
func validWIF(match string) bool {
	payload, version, err := base58.CheckDecode(match)
	if err != nil || version != 0x80 {
		return false
	}
	if len(payload) == 33 {
		return payload[32] == 0x01
	}
	return len(payload) == 32
}

func validCreditCard(match string) bool {
	digits := make([]byte, 0, len(match))
	for _, r := range match {
		if r >= '0' && r <= '9' {
			digits = append(digits, byte(r-'0'))
		}
	}
	if len(digits) < 13 || len(digits) > 19 {
		return false
	}
	return luhn(digits)
}

// luhn doubles every second digit from the right and checks the sum mod 10.
func luhn(digits []byte) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i])
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

// validSSN rejects assignments the US numbering scheme never issues: area
// 000, 666 or 900 and up, group 00, serial 0000.
func validSSN(match string) bool {
	area := match[:3]
	group := match[4:6]
	serial := match[7:]
	if area == "000" || area == "666" || area[0] == '9' {
		return false
	}
	return group != "00" && serial != "0000"
}

func validRelayURL(match string) bool {
	u, err := url.Parse(match)
	if err != nil {
		return false
	}
	return (u.Scheme == "ws" || u.Scheme == "wss") && u.Hostname() != ""
}

func validNIP05Domain(match string) bool {
	at := strings.LastIndexByte(match, '@')
	if at <= 0 || at == len(match)-1 {
		return false
	}
	domain := match[at+1:]
	if !strings.Contains(domain, ".") {
		return false
	}
	for _, label := range strings.Split(domain, ".") {
		if label == "" || strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
	}
	return true
}

// validPasswordShape requires mixed case, a digit and a symbol in a single
// token. The keyword-context requirement is enforced by the classifier via
// Spec.ContextWords.
func validPasswordShape(match string) bool {
	if len(match) < 8 || len(match) > 64 {
		return false
	}
	var upper, lower, digit, symbol bool
	for _, r := range match {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(`@$!%*?&#^+=_~+.,:;-`, r):
			symbol = true
		default:
			return false
		}
	}
	return upper && lower && digit && symbol
}
