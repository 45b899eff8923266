package fs

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/swatch/internal/core/ports"
)

var _ ports.Hasher = (*Hasher)(nil)

// Hasher computes xxhash digests of theme documents.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// Fingerprint returns the XXHash of data as 16 hex digits.
func (h *Hasher) Fingerprint(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}
