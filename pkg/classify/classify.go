// Package classify turns raw snippet text into typed findings by matching
// the pattern table, validating checksums and resolving overlapping spans.
package classify

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/clipguard/clipguard/pkg/pattern"
	"github.com/clipguard/clipguard/pkg/policy"
)

// Confidence distinguishes fully validated findings from shape-only ones.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceHigh
)

func (c Confidence) String() string {
	if c == ConfidenceHigh {
		return "high"
	}
	return "low"
}

// Finding is one classified match within a snippet. MatchedText is an owned
// copy so the source buffer can be wiped independently.
type Finding struct {
	Kind        pattern.Kind
	Protocol    pattern.Protocol
	Start       int
	End         int
	Confidence  Confidence
	MatchedText string

	precedence int
	tableOrder int
}

// DefaultMaxScanBytes bounds the scan on adversarially large input.
const DefaultMaxScanBytes = 100_000

// DefaultContextWindow is the rune radius inspected around context-dependent
// matches (raw hex keys, password candidates).
const DefaultContextWindow = 40

// Classifier scans text against a pattern table. The zero-cost functional
// options keep tests free to shrink the scan bound and window.
type Classifier struct {
	specs        []pattern.Spec
	maxScanBytes int
	window       int
}

type Option func(*Classifier)

// WithMaxScanBytes caps how much of the input is scanned.
func WithMaxScanBytes(n int) Option {
	return func(c *Classifier) { c.maxScanBytes = n }
}

// WithContextWindow sets the ambiguity-resolution radius.
func WithContextWindow(n int) Option {
	return func(c *Classifier) { c.window = n }
}

// WithExtraSpecs appends user-supplied specs to the built-in table.
func WithExtraSpecs(specs []pattern.Spec) Option {
	return func(c *Classifier) { c.specs = append(c.specs, specs...) }
}

func New(opts ...Option) *Classifier {
	c := &Classifier{
		specs:        pattern.Specs(),
		maxScanBytes: DefaultMaxScanBytes,
		window:       DefaultContextWindow,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultClassifier = New()

// Classify runs the default classifier.
func Classify(text string) []Finding {
	return defaultClassifier.Classify(text)
}

// Classify returns the ordered findings for text. It never fails: empty,
// non-text and malformed input all yield an empty result.
func (c *Classifier) Classify(text string) []Finding {
	if text == "" || !utf8.ValidString(text) {
		return nil
	}
	if len(text) > c.maxScanBytes {
		cut := c.maxScanBytes
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}

	var candidates []Finding
	for i := range c.specs {
		spec := &c.specs[i]
		for _, span := range spec.Find(text) {
			f, ok := c.candidate(spec, i, text, span[0], span[1])
			if ok {
				candidates = append(candidates, f)
			}
		}
	}

	kept := resolveOverlaps(candidates)
	sort.Slice(kept, func(i, j int) bool { return kept[i].Start < kept[j].Start })
	if len(kept) > 0 {
		log.Trace().Int("findings", len(kept)).Msg("Classified snippet")
	}
	return kept
}

func (c *Classifier) candidate(spec *pattern.Spec, order int, text string, start, end int) (Finding, bool) {
	match := text[start:end]

	if spec.Validate != nil && !spec.Validate(match) {
		return Finding{}, false
	}
	if len(spec.ContextWords) > 0 && !hasContextWord(text, start, end, c.window, spec.ContextWords) {
		return Finding{}, false
	}

	f := Finding{
		Kind:        spec.Kind,
		Protocol:    spec.Protocol,
		Start:       start,
		End:         end,
		MatchedText: strings.Clone(match),
		precedence:  spec.Precedence,
		tableOrder:  order,
	}
	if spec.Validate != nil {
		f.Confidence = ConfidenceHigh
	}

	switch spec.Kind {
	case pattern.KindNostrHexKey:
		f.Kind = c.resolveHexKind(text, start, end)
	case pattern.KindJSONEvent:
		f.Kind = pattern.RefineJSONEvent(match)
		f.Confidence = ConfidenceHigh
	}
	return f, true
}

// resolveOverlaps keeps, for every overlapping group, the single finding
// with the highest precedence; ties go to the longer span, then to the spec
// declared earlier in the table.
func resolveOverlaps(candidates []Finding) []Finding {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.precedence != b.precedence {
			return a.precedence > b.precedence
		}
		if la, lb := a.End-a.Start, b.End-b.Start; la != lb {
			return la > lb
		}
		return a.tableOrder < b.tableOrder
	})

	var kept []Finding
	for _, cand := range candidates {
		overlaps := false
		for _, k := range kept {
			if cand.Start < k.End && k.Start < cand.End {
				overlaps = true
				break
			}
		}
		if !overlaps {
			kept = append(kept, cand)
		}
	}
	return kept
}

// Dominant returns the finding that decides the record-level policy: the
// highest risk wins, ties broken by pattern precedence. The boolean is false
// for an empty findings list.
func Dominant(findings []Finding) (Finding, policy.Policy, bool) {
	if len(findings) == 0 {
		return Finding{}, policy.Policy{}, false
	}
	best := findings[0]
	bestPolicy := policy.For(best.Kind)
	for _, f := range findings[1:] {
		p := policy.For(f.Kind)
		if p.Risk > bestPolicy.Risk || (p.Risk == bestPolicy.Risk && f.precedence > best.precedence) {
			best, bestPolicy = f, p
		}
	}
	return best, bestPolicy, true
}
