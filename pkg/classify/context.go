package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/clipguard/clipguard/pkg/pattern"
)

var privateContextWords = []string{"private", "secret", "nsec", "priv"}
var publicContextWords = []string{"public", "npub", "pubkey", "profile"}

// resolveHexKind inspects the window around a raw 64-hex match for private
// versus public context. The nearest keyword wins; absent or equidistant
// context leaves the ambiguous kind, which carries the fail-safe policy.
func (c *Classifier) resolveHexKind(text string, start, end int) pattern.Kind {
	lo, hi := expandWindow(text, start, end, c.window)
	window := strings.ToLower(text[lo:hi])
	matchLo := start - lo
	matchHi := end - lo

	privDist := nearestKeyword(window, matchLo, matchHi, privateContextWords)
	pubDist := nearestKeyword(window, matchLo, matchHi, publicContextWords)

	switch {
	case privDist < 0 && pubDist < 0:
		return pattern.KindNostrHexKey
	case privDist < 0:
		return pattern.KindNostrHexPublicKey
	case pubDist < 0, privDist < pubDist:
		return pattern.KindNostrHexPrivateKey
	case pubDist < privDist:
		return pattern.KindNostrHexPublicKey
	default:
		return pattern.KindNostrHexKey
	}
}

// nearestKeyword returns the distance from the match span to the closest
// occurrence of any keyword inside window, or -1 when none occurs.
func nearestKeyword(window string, matchLo, matchHi int, words []string) int {
	best := -1
	for _, w := range words {
		from := 0
		for {
			idx := strings.Index(window[from:], w)
			if idx < 0 {
				break
			}
			idx += from
			d := distance(idx, idx+len(w), matchLo, matchHi)
			if best < 0 || d < best {
				best = d
			}
			from = idx + 1
		}
	}
	return best
}

func distance(aLo, aHi, bLo, bHi int) int {
	if aHi <= bLo {
		return bLo - aHi
	}
	if bHi <= aLo {
		return aLo - bHi
	}
	return 0
}

// expandWindow widens [start,end) by window runes on each side, clamped to
// the text bounds. Counting runes keeps the inspected context stable for
// multi-byte text.
func expandWindow(text string, start, end, window int) (int, int) {
	lo := start
	for i := 0; i < window && lo > 0; i++ {
		_, size := utf8.DecodeLastRuneInString(text[:lo])
		lo -= size
	}
	hi := end
	for i := 0; i < window && hi < len(text); i++ {
		_, size := utf8.DecodeRuneInString(text[hi:])
		hi += size
	}
	return lo, hi
}

// hasContextWord reports whether any keyword occurs within the window
// around [start,end), used for kinds that only count with nearby context.
func hasContextWord(text string, start, end, window int, words []string) bool {
	lo, hi := expandWindow(text, start, end, window)
	zone := strings.ToLower(text[lo:hi])
	for _, w := range words {
		if strings.Contains(zone, w) {
			return true
		}
	}
	return false
}
