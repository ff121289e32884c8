package pattern

import (
	"strings"

	"github.com/tidwall/gjson"
)

// matchJSONEvent reports the span of the snippet when it parses as a JSON
// object carrying an integer kind field. Parse failures are silent; a
// snippet that is not a well-formed event simply yields no span.
func matchJSONEvent(text string) [][]int {
	start := strings.IndexByte(text, '{')
	if start < 0 {
		return nil
	}
	end := strings.LastIndexByte(text, '}')
	if end <= start {
		return nil
	}
	candidate := text[start : end+1]
	if !gjson.Valid(candidate) {
		return nil
	}
	kind := gjson.Get(candidate, "kind")
	if !kind.Exists() || kind.Type != gjson.Number || kind.Num != float64(int64(kind.Num)) {
		return nil
	}
	return [][]int{{start, end + 1}}
}

// RefineJSONEvent maps an event's integer kind to the matching sub-kind.
func RefineJSONEvent(match string) Kind {
	switch gjson.Get(match, "kind").Int() {
	case 4:
		return KindJSONEventDM
	case 0:
		return KindJSONEventProfile
	case 1, 6:
		return KindJSONEventNote
	case 9734:
		return KindJSONEventZapRequest
	case 9735:
		return KindJSONEventZapReceipt
	default:
		return KindJSONEvent
	}
}
