package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/clipguard/clipguard/pkg/policy"
	"github.com/clipguard/clipguard/pkg/secure"
)

// snapshotDoc is the encrypted on-disk history format: a nonce followed by
// the sealed JSON document.
type snapshotDoc struct {
	SavedAt time.Time        `json:"saved_at"`
	Records []snapshotRecord `json:"records"`
}

type snapshotRecord struct {
	CreatedAt time.Time     `json:"created_at"`
	TTL       time.Duration `json:"ttl"`
	Pinned    bool          `json:"pinned"`
	Text      string        `json:"text"`
}

// SaveSnapshot persists the low-risk portion of the history to an encrypted
// file. CRITICAL and HIGH records never touch disk: after their purge they
// must be unrecoverable, so they are excluded rather than round-tripped.
func (s *Store) SaveSnapshot(path string) error {
	if s.disabled != nil {
		return s.disabled
	}

	s.mu.RLock()
	type pending struct {
		meta  snapshotRecord
		nonce []byte
		ct    []byte
	}
	var items []pending
	for _, r := range s.records {
		if r.State != StateActive && r.State != StatePinned {
			continue
		}
		if r.Risk >= policy.High {
			continue
		}
		items = append(items, pending{
			meta:  snapshotRecord{CreatedAt: r.CreatedAt, TTL: r.TTL, Pinned: r.Pinned},
			nonce: append([]byte(nil), r.nonce...),
			ct:    append([]byte(nil), r.ciphertext...),
		})
	}
	s.mu.RUnlock()

	doc := snapshotDoc{SavedAt: s.clock()}
	for _, it := range items {
		plain, err := s.aead.Open(nil, it.nonce, it.ct, nil)
		secure.Zero(it.ct)
		if err != nil {
			continue
		}
		it.meta.Text = string(plain)
		secure.Zero(plain)
		doc.Records = append(doc.Records, it.meta)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	defer secure.Zero(raw)

	nonce := make([]byte, chacha20poly1305.NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return err
	}
	sealed := s.aead.Seal(nonce, nonce, raw, nil)

	if err := os.WriteFile(path, sealed, 0o600); err != nil {
		return err
	}
	log.Debug().Int("records", len(doc.Records)).Str("path", path).Msg("Saved history snapshot")
	return nil
}

// LoadSnapshot restores a previously saved history file. Records whose TTL
// window already elapsed are dropped on the spot. A missing file is not an
// error; an undecryptable file is.
func (s *Store) LoadSnapshot(path string) error {
	if s.disabled != nil {
		return s.disabled
	}

	sealed, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(sealed) < chacha20poly1305.NonceSize {
		return ErrCorrupt
	}

	raw, err := s.aead.Open(nil, sealed[:chacha20poly1305.NonceSize], sealed[chacha20poly1305.NonceSize:], nil)
	if err != nil {
		log.Warn().Str("path", path).Msg("History snapshot failed decryption, ignoring")
		return ErrCorrupt
	}
	defer secure.Zero(raw)

	var doc snapshotDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return err
	}

	now := s.clock()
	restored := 0
	for _, sr := range doc.Records {
		if sr.TTL > 0 && !sr.Pinned && !now.Before(sr.CreatedAt.Add(sr.TTL)) {
			continue
		}
		rec, err := s.Insert(sr.Text)
		if err != nil {
			continue
		}
		s.mu.Lock()
		if r := s.find(rec.ID); r != nil {
			r.CreatedAt = sr.CreatedAt
			if sr.Pinned {
				r.Pinned = true
				r.State = StatePinned
			}
		}
		s.mu.Unlock()
		restored++
	}
	log.Debug().Int("records", restored).Str("path", path).Msg("Restored history snapshot")
	return nil
}
