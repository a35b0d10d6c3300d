package hash

import "github.com/cespare/xxhash/v2"

// Fingerprint returns the 64-bit xxhash of data.
func Fingerprint(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// NewFingerprint returns a streaming fingerprint digest.
func NewFingerprint() *xxhash.Digest {
	return xxhash.New()
}
