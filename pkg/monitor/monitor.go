// Package monitor drives the clipboard pipeline: poll for changes, scrub
// hidden Unicode, classify, store, and claw back critical content once its
// retention window closes.
package monitor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/clipguard/clipguard/pkg/classify"
	"github.com/clipguard/clipguard/pkg/format"
	"github.com/clipguard/clipguard/pkg/policy"
	"github.com/clipguard/clipguard/pkg/sanitize"
	"github.com/clipguard/clipguard/pkg/store"
)

// Clipboard abstracts the OS clipboard so tests can substitute a fake.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// DefaultPollInterval matches the original application's polling cadence.
const DefaultPollInterval = 100 * time.Millisecond

// Stats counts pipeline activity since start.
type Stats struct {
	Snippets int
	Scrubbed int
	Findings int
	Critical int
	Cleared  int
}

// Monitor owns the polling loop. One goroutine runs the loop; Status may be
// called from any goroutine.
type Monitor struct {
	store    *store.Store
	clip     Clipboard
	cls      *classify.Classifier
	interval time.Duration

	mu           sync.Mutex
	last         string
	stats        Stats
	disabledOnce sync.Once
}

// Options configures a Monitor. Zero values fall back to defaults.
type Options struct {
	PollInterval time.Duration
	Classifier   *classify.Classifier
}

func New(st *store.Store, clip Clipboard, opts Options) *Monitor {
	m := &Monitor{
		store:    st,
		clip:     clip,
		cls:      opts.Classifier,
		interval: opts.PollInterval,
	}
	if m.interval <= 0 {
		m.interval = DefaultPollInterval
	}
	if m.cls == nil {
		m.cls = classify.New()
	}
	return m
}

// Run polls until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", m.interval).Msg("Clipboard monitoring started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("Clipboard monitoring stopped")
			return ctx.Err()
		case <-ticker.C:
			m.poll()
		}
	}
}

func (m *Monitor) poll() {
	content, err := m.clip.Read()
	if err != nil {
		log.Trace().Err(err).Msg("Clipboard read failed")
		return
	}
	if content == "" {
		return
	}

	m.mu.Lock()
	unchanged := content == m.last
	m.mu.Unlock()
	if unchanged {
		return
	}

	cleaned, removed := sanitize.Scrub(content)
	if removed > 0 {
		if err := m.clip.Write(cleaned); err != nil {
			log.Warn().Err(err).Msg("Failed rewriting scrubbed clipboard")
		} else {
			log.Info().Int("removed", removed).Msg("Scrubbed hidden characters from clipboard")
		}
	}

	m.mu.Lock()
	m.last = cleaned
	m.stats.Snippets++
	if removed > 0 {
		m.stats.Scrubbed++
	}
	m.mu.Unlock()

	m.ingest(cleaned)
}

func (m *Monitor) ingest(text string) {
	rec, err := m.store.Insert(text)
	switch {
	case errors.Is(err, store.ErrPersistenceDisabled):
		m.disabledOnce.Do(func() {
			log.Warn().Msg("History disabled, classification continues without storage")
		})
		m.report(m.cls.Classify(text))
		return
	case errors.Is(err, store.ErrCapacityExceeded):
		log.Error().Msg("History full and fully pinned, snippet not stored")
		m.report(m.cls.Classify(text))
		return
	case err != nil:
		log.Error().Err(err).Msg("Failed storing snippet")
		return
	}

	m.report(rec.Findings)

	if rec.Risk == policy.Critical && rec.TTL > 0 {
		m.scheduleClear(text, rec.TTL)
	}
}

// report logs findings with policy-safe display text only.
func (m *Monitor) report(findings []classify.Finding) {
	m.mu.Lock()
	m.stats.Findings += len(findings)
	m.mu.Unlock()

	if len(findings) == 0 {
		return
	}

	dominant, pol, _ := classify.Dominant(findings)
	event := log.Info()
	if pol.Risk >= policy.High {
		event = log.Warn()
	}
	if pol.Risk == policy.Critical {
		m.mu.Lock()
		m.stats.Critical++
		m.mu.Unlock()
	}
	event.
		Str("kind", string(dominant.Kind)).
		Str("risk", pol.Risk.String()).
		Str("display", format.SafeText(dominant.Kind, pol.Display, dominant.MatchedText)).
		Int("findings", len(findings)).
		Msg("Sensitive content detected")
}

// scheduleClear overwrites the system clipboard once the retention window
// for critical content closes, provided the user has not copied something
// else in the meantime.
func (m *Monitor) scheduleClear(text string, after time.Duration) {
	time.AfterFunc(after, func() {
		current, err := m.clip.Read()
		if err != nil || current != text {
			return
		}
		if err := m.clip.Write(""); err != nil {
			log.Warn().Err(err).Msg("Failed clearing clipboard")
			return
		}
		m.mu.Lock()
		m.stats.Cleared++
		m.last = ""
		m.mu.Unlock()
		log.Info().Msg("Cleared critical content from clipboard")
	})
}

// StatsSnapshot returns a copy of the counters.
func (m *Monitor) StatsSnapshot() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

// StatusEvent builds the event emitted by the status keyboard shortcut.
func (m *Monitor) StatusEvent() *zerolog.Event {
	st := m.StatsSnapshot()
	return log.Info().
		Int("snippets", st.Snippets).
		Int("scrubbed", st.Scrubbed).
		Int("findings", st.Findings).
		Int("critical", st.Critical).
		Int("cleared", st.Cleared).
		Int("stored", len(m.store.List()))
}
