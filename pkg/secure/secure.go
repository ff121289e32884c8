// Package secure holds the plaintext-erasure primitives. Anything that
// touches key material or decrypted payloads wipes through here so the
// overwrite cannot be dead-code eliminated.
package secure

import (
	"runtime"
	"sync"
)

// Zero overwrites b in place.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// Do runs fn over buf and zeroes buf on every exit path, including panics.
func Do(buf []byte, fn func([]byte) error) error {
	defer Zero(buf)
	return fn(buf)
}

// Buffer owns a plaintext byte slice and guarantees it is overwritten before
// release. Destroy is idempotent and safe to defer alongside explicit calls.
type Buffer struct {
	mu   sync.Mutex
	data []byte
	dead bool
}

// NewBuffer takes ownership of b; the caller must not retain it.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{data: b}
}

// Bytes exposes the plaintext. Returns nil after Destroy.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dead {
		return nil
	}
	return b.data
}

// String copies the plaintext into a string. The copy cannot be wiped, so
// callers use it only for content already cleared for display.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Destroy zeroes the underlying buffer and detaches it.
func (b *Buffer) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dead {
		return
	}
	Zero(b.data)
	b.data = nil
	b.dead = true
}
