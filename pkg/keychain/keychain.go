// Package keychain supplies the symmetric record-store key. The OS secure
// enclave integration lives outside this module; the file provider covers
// standalone use and the static provider covers tests.
package keychain

import (
	"crypto/rand"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"
)

// KeySize is the ChaCha20-Poly1305 key length.
const KeySize = 32

var ErrKeyUnavailable = errors.New("keychain: key unavailable")

// Provider returns the single symmetric encryption key.
type Provider interface {
	Key() ([]byte, error)
}

// Static serves a fixed key. Test use only.
type Static struct {
	K []byte
}

func (s Static) Key() ([]byte, error) {
	if len(s.K) != KeySize {
		return nil, ErrKeyUnavailable
	}
	return s.K, nil
}

// File lazily creates and caches a random key at Path with 0600 permissions.
type File struct {
	Path string

	mu  sync.Mutex
	key []byte
}

// DefaultKeyPath places the key under the user config directory.
func DefaultKeyPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "clipguard", "clipguard.key"), nil
}

func (f *File) Key() ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.key != nil {
		return f.key, nil
	}

	existing, err := os.ReadFile(f.Path)
	if err == nil {
		if len(existing) != KeySize {
			return nil, ErrKeyUnavailable
		}
		f.key = existing
		return f.key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	fresh := make([]byte, KeySize)
	if _, err := rand.Read(fresh); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return nil, err
	}
	if err := os.WriteFile(f.Path, fresh, 0o600); err != nil {
		return nil, err
	}
	log.Debug().Str("path", f.Path).Msg("Created encryption key")
	f.key = fresh
	return f.key, nil
}
