package store

import (
	"time"

	"github.com/clipguard/clipguard/pkg/classify"
	"github.com/clipguard/clipguard/pkg/policy"
)

// State tracks a record through its lifecycle. EXPIRED is transient: a sweep
// that expires a record wipes and purges it in the same pass.
type State int

const (
	StateActive State = iota
	StatePinned
	StateExpired
	StatePurged
	StateCorrupt
)

func (s State) String() string {
	switch s {
	case StateActive:
		return "ACTIVE"
	case StatePinned:
		return "PINNED"
	case StateExpired:
		return "EXPIRED"
	case StatePurged:
		return "PURGED"
	case StateCorrupt:
		return "CORRUPT"
	}
	return "UNKNOWN"
}

// Record is one classified snippet held by the store. The payload lives only
// as ciphertext; Reveal decrypts transiently. A zero TTL means no expiry.
type Record struct {
	ID        uint64
	CreatedAt time.Time
	Findings  []classify.Finding
	Risk      policy.RiskLevel
	TTL       time.Duration
	Display   policy.DisplayPolicy
	Pinned    bool
	State     State

	contentHash   string
	nonce         []byte
	ciphertext    []byte
	corruptLogged bool
}

// snapshot copies the record metadata without the ciphertext, so List
// results can leave the lock and never leak encrypted material.
func (r *Record) snapshot() Record {
	cp := *r
	cp.nonce = nil
	cp.ciphertext = nil
	cp.Findings = append([]classify.Finding(nil), r.Findings...)
	return cp
}

// expiresAt is only meaningful for TTL > 0.
func (r *Record) expiresAt() time.Time {
	return r.CreatedAt.Add(r.TTL)
}

// expired reports expiry eligibility: active, unpinned, finite TTL, elapsed.
func (r *Record) expired(now time.Time) bool {
	return r.State == StateActive && !r.Pinned && r.TTL > 0 && !now.Before(r.expiresAt())
}
