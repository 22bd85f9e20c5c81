// Package digest wraps the SHA-256 commitments threaded through a proof
// run: the archived config's byte image and an externally supplied
// credential blob both get folded into the journal via Sum (spec.md
// §4.12, C12). The derivation style mirrors rng's seed-splitting use of
// SHA-256 as a generic binding primitive.
package digest

import (
	"crypto/sha256"
	"hash"
)

// Sum returns the SHA-256 digest of data.
func Sum(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// Hasher accumulates bytes across multiple writes before producing a
// single digest, for callers assembling a commitment from several
// pieces without concatenating them first.
type Hasher struct {
	h hash.Hash
}

// NewHasher returns a Hasher ready to accept writes.
func NewHasher() *Hasher {
	return &Hasher{h: sha256.New()}
}

// Write feeds data into the running digest.
func (h *Hasher) Write(data []byte) {
	h.h.Write(data)
}

// Sum finalizes and returns the accumulated digest.
func (h *Hasher) Sum() [32]byte {
	var out [32]byte
	copy(out[:], h.h.Sum(nil))
	return out
}
