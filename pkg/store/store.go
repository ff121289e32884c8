// Package store holds classified snippets encrypted at rest, bounded in
// size, and swept for expiry. All mutations serialize through one write
// lock; list and reveal copy what they need and decrypt outside it.
package store

import (
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/rxwycdh/rxhash"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/clipguard/clipguard/pkg/classify"
	"github.com/clipguard/clipguard/pkg/keychain"
	"github.com/clipguard/clipguard/pkg/policy"
	"github.com/clipguard/clipguard/pkg/secure"
)

var (
	// ErrPersistenceDisabled is returned when no encryption key could be
	// obtained; the store fails closed and holds nothing.
	ErrPersistenceDisabled = errors.New("store: persistence disabled, no encryption key")
	// ErrCapacityExceeded is returned when every slot is pinned.
	ErrCapacityExceeded = errors.New("store: capacity exceeded, all records pinned")
	// ErrNotRevealable is returned for records whose policy forbids reveal.
	ErrNotRevealable = errors.New("store: record is not revealable")
	// ErrNotFound is returned for unknown or already purged record IDs.
	ErrNotFound = errors.New("store: record not found")
	// ErrCorrupt is returned when a record's ciphertext fails to decrypt.
	ErrCorrupt = errors.New("store: record is corrupt")
)

// DefaultCapacity bounds the record log unless configured otherwise.
const DefaultCapacity = 50

// Clock supplies time; tests substitute a fake.
type Clock func() time.Time

// Options configures a Store.
type Options struct {
	Capacity   int
	Clock      Clock
	Classifier *classify.Classifier
}

// Store is the bounded, encrypted, time-ordered record log.
type Store struct {
	mu       sync.RWMutex
	records  []*Record
	capacity int
	clock    Clock
	cls      *classify.Classifier

	aead   cipher.AEAD
	key    []byte
	nextID uint64

	disabled error
}

// New builds a store around the supplied key provider. A provider failure
// does not error out: the store comes up disabled so live classification
// keeps working while nothing is persisted.
func New(provider keychain.Provider, opts Options) *Store {
	s := &Store{
		capacity: opts.Capacity,
		clock:    opts.Clock,
		cls:      opts.Classifier,
	}
	if s.capacity <= 0 {
		s.capacity = DefaultCapacity
	}
	if s.clock == nil {
		s.clock = time.Now
	}
	if s.cls == nil {
		s.cls = classify.New()
	}

	key, err := provider.Key()
	if err != nil {
		log.Warn().Err(err).Msg("Encryption key unavailable, clipboard history disabled")
		s.disabled = ErrPersistenceDisabled
		return s
	}
	aead, err := chacha20poly1305.New(key)
	if err != nil {
		log.Warn().Err(err).Msg("Failed initializing cipher, clipboard history disabled")
		s.disabled = ErrPersistenceDisabled
		return s
	}
	s.key = key
	s.aead = aead
	return s
}

// Insert classifies text, derives the dominant policy and appends an
// encrypted record. A snippet identical to a live record is not re-inserted;
// the existing record is returned untouched so its TTL is never extended.
func (s *Store) Insert(text string) (Record, error) {
	if s.disabled != nil {
		return Record{}, s.disabled
	}

	findings := s.cls.Classify(text)
	pol := policy.Policy{Risk: policy.Minimal, TTL: 0, Display: policy.Normal}
	if _, dominant, ok := classify.Dominant(findings); ok {
		pol = dominant
	}
	hash := contentHash(text)

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing := s.findByHash(hash); existing != nil {
		return existing.snapshot(), nil
	}

	if s.liveCount() >= s.capacity {
		if !s.evictOldest() {
			return Record{}, ErrCapacityExceeded
		}
	}

	plain := []byte(text)
	defer secure.Zero(plain)

	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return Record{}, err
	}

	s.nextID++
	rec := &Record{
		ID:          s.nextID,
		CreatedAt:   s.clock(),
		Findings:    findings,
		Risk:        pol.Risk,
		TTL:         pol.TTL,
		Display:     pol.Display,
		State:       StateActive,
		contentHash: hash,
		nonce:       nonce,
		ciphertext:  s.aead.Seal(nil, nonce, plain, nil),
	}
	s.records = append(s.records, rec)

	log.Debug().
		Uint64("id", rec.ID).
		Str("risk", rec.Risk.String()).
		Dur("ttl", rec.TTL).
		Int("findings", len(findings)).
		Msg("Stored snippet")
	return rec.snapshot(), nil
}

// List snapshots the live records, oldest first, without decrypting.
// Corrupt records are excluded.
func (s *Store) List() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		if r.State == StateActive || r.State == StatePinned {
			out = append(out, r.snapshot())
		}
	}
	return out
}

// Reveal decrypts one record's payload. Records under a HIDDEN policy
// refuse. Decryption runs outside the write lock; a failure quarantines the
// record as corrupt, wipes its ciphertext, and is reported exactly once.
func (s *Store) Reveal(id uint64) (*secure.Buffer, error) {
	s.mu.RLock()
	var nonce, ct []byte
	var display policy.DisplayPolicy
	found := false
	corrupt := false
	for _, r := range s.records {
		if r.ID != id {
			continue
		}
		switch r.State {
		case StateActive, StatePinned:
			found = true
			display = r.Display
			nonce = append([]byte(nil), r.nonce...)
			ct = append([]byte(nil), r.ciphertext...)
		case StateCorrupt:
			corrupt = true
		}
		break
	}
	s.mu.RUnlock()

	if corrupt {
		return nil, ErrCorrupt
	}
	if !found {
		return nil, ErrNotFound
	}
	if display == policy.Hidden {
		return nil, ErrNotRevealable
	}

	plain, err := s.aead.Open(nil, nonce, ct, nil)
	secure.Zero(ct)
	if err != nil {
		s.quarantine(id)
		return nil, ErrCorrupt
	}
	return secure.NewBuffer(plain), nil
}

// Pin suspends expiry for a record. Unpin re-arms the original TTL window;
// a record whose window already elapsed goes on the next sweep.
func (s *Store) Pin(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.find(id)
	if r == nil {
		return ErrNotFound
	}
	r.Pinned = true
	r.State = StatePinned
	return nil
}

func (s *Store) Unpin(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.find(id)
	if r == nil {
		return ErrNotFound
	}
	r.Pinned = false
	r.State = StateActive
	return nil
}

// Sweep transitions every eligible record ACTIVE → EXPIRED → PURGED and
// wipes its ciphertext. Idempotent: a second sweep with no intervening
// insert finds nothing eligible.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	purged := 0
	kept := s.records[:0]
	for _, r := range s.records {
		if r.expired(now) {
			r.State = StateExpired
			s.wipe(r)
			r.State = StatePurged
			purged++
			continue
		}
		kept = append(kept, r)
	}
	s.records = kept

	if purged > 0 {
		log.Debug().Int("purged", purged).Msg("Swept expired records")
	}
	return purged
}

// Clear secure-wipes and purges every record regardless of state.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Close wipes all payload material first and the key material last, in that
// order, then leaves the store disabled.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.clearLocked()
	secure.Zero(s.key)
	s.key = nil
	s.aead = nil
	s.disabled = ErrPersistenceDisabled
}

func (s *Store) clearLocked() {
	for _, r := range s.records {
		s.wipe(r)
		r.State = StatePurged
	}
	s.records = nil
}

// wipe destroys a record's ciphertext and nonce so the payload is
// unrecoverable even if the key later leaks.
func (s *Store) wipe(r *Record) {
	secure.Zero(r.ciphertext)
	secure.Zero(r.nonce)
	r.ciphertext = nil
	r.nonce = nil
}

func (s *Store) quarantine(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.find(id)
	if r == nil {
		return
	}
	s.wipe(r)
	r.State = StateCorrupt
	if !r.corruptLogged {
		r.corruptLogged = true
		log.Error().Uint64("id", id).Msg("Record failed decryption, quarantined")
	}
}

func (s *Store) find(id uint64) *Record {
	for _, r := range s.records {
		if r.ID == id && (r.State == StateActive || r.State == StatePinned) {
			return r
		}
	}
	return nil
}

func (s *Store) findByHash(hash string) *Record {
	if hash == "" {
		return nil
	}
	for _, r := range s.records {
		if r.contentHash == hash && (r.State == StateActive || r.State == StatePinned) {
			return r
		}
	}
	return nil
}

// liveCount counts the records that hold usable payloads. Corrupt records
// stay listed for error reporting but do not consume capacity.
func (s *Store) liveCount() int {
	n := 0
	for _, r := range s.records {
		if r.State == StateActive || r.State == StatePinned {
			n++
		}
	}
	return n
}

// evictOldest removes the oldest unpinned active record to make room.
// Pinned records are never evicted.
func (s *Store) evictOldest() bool {
	for i, r := range s.records {
		if r.State == StateActive && !r.Pinned {
			s.wipe(r)
			r.State = StatePurged
			s.records = append(s.records[:i], s.records[i+1:]...)
			log.Debug().Uint64("id", r.ID).Msg("Evicted oldest record")
			return true
		}
	}
	return false
}

func contentHash(text string) string {
	hash, err := rxhash.HashStruct(struct{ Text string }{Text: text})
	if err != nil {
		return ""
	}
	return hash
}
