package pattern

import (
	"regexp"
	"strings"
	"sync"

	bip39 "github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

var wordlistOnce sync.Once
var wordlist map[string]struct{}

func seedWords() map[string]struct{} {
	wordlistOnce.Do(func() {
		list := bip39.GetWordList()
		wordlist = make(map[string]struct{}, len(list))
		for _, w := range list {
			wordlist[w] = struct{}{}
		}
	})
	return wordlist
}

var seedRun = regexp.MustCompile(`(?i)\b[a-z]+(?: [a-z]+)*\b`)

// matchSeedPhrase emits every contiguous 12- and 24-word window made
// entirely of BIP39 words. Windows are taken inside each run of
// space-separated words, so ordinary prose adjacent to a phrase does not
// mask it. A 12-word window fully inside an emitted 24-word window is
// dropped.
func matchSeedPhrase(text string) [][]int {
	list := seedWords()
	var spans [][]int
	for _, run := range seedRun.FindAllStringIndex(text, -1) {
		words := wordSpans(text, run[0], run[1])
		valid := make([]bool, len(words))
		for i, w := range words {
			token := strings.ToLower(norm.NFKD.String(text[w[0]:w[1]]))
			_, valid[i] = list[token]
		}

		var full [][]int
		for i := 0; i+24 <= len(words); i++ {
			if allValid(valid[i : i+24]) {
				full = append(full, []int{words[i][0], words[i+23][1]})
			}
		}
		spans = append(spans, full...)

		for i := 0; i+12 <= len(words); i++ {
			if !allValid(valid[i : i+12]) {
				continue
			}
			span := []int{words[i][0], words[i+11][1]}
			if containedIn(full, span) {
				continue
			}
			spans = append(spans, span)
		}
	}
	return spans
}

func wordSpans(text string, start, end int) [][2]int {
	var spans [][2]int
	ws := start
	for i := start; i < end; i++ {
		if text[i] == ' ' {
			spans = append(spans, [2]int{ws, i})
			ws = i + 1
		}
	}
	return append(spans, [2]int{ws, end})
}

func allValid(flags []bool) bool {
	for _, ok := range flags {
		if !ok {
			return false
		}
	}
	return true
}

func containedIn(spans [][]int, span []int) bool {
	for _, s := range spans {
		if s[0] <= span[0] && span[1] <= s[1] {
			return true
		}
	}
	return false
}

// validSeedPhrase accepts exactly 12 or 24 space-separated words, each
// present in the BIP39 English list. Words are NFKD-normalized first, as the
// BIP39 spec requires.
func validSeedPhrase(match string) bool {
	words := strings.Fields(match)
	if len(words) != 12 && len(words) != 24 {
		return false
	}
	list := seedWords()
	for _, w := range words {
		w = strings.ToLower(norm.NFKD.String(w))
		if _, ok := list[w]; !ok {
			return false
		}
	}
	return true
}
