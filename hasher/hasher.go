// Package hasher computes digests of serialized overlay snapshots.
package hasher

import (
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
)

// ErrDataIsNil is returned if the passed data is nil.
var ErrDataIsNil = errors.New("data is nil")

// Hasher computes a digest of a byte slice. Every call starts from a fresh
// state, so equal inputs always produce equal digests.
type Hasher interface {
	Name() string
	Hash(data []byte) ([]byte, error)
}

type stdHasher struct {
	name    string
	newHash func() hash.Hash
}

// NewSHA256Hasher creates a Hasher producing SHA-256 digests.
func NewSHA256Hasher() Hasher {
	return stdHasher{name: "sha256", newHash: sha256.New}
}

// NewSHA1Hasher creates a Hasher producing SHA-1 digests.
func NewSHA1Hasher() Hasher {
	return stdHasher{name: "sha1", newHash: sha1.New}
}

// Name implements Hasher interface.
func (h stdHasher) Name() string {
	return h.name
}

// Hash implements Hasher interface.
func (h stdHasher) Hash(data []byte) ([]byte, error) {
	if data == nil {
		return nil, ErrDataIsNil
	}

	state := h.newHash()

	n, err := state.Write(data)
	if n < len(data) || err != nil {
		return nil, fmt.Errorf("failed to write data: %w", err)
	}

	return state.Sum(nil), nil
}
