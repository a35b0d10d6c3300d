// Package hash provides the checksums and fingerprints used by normal streams.
//
// # CRC32-Castagnoli (CRC32C)
//
// Stream headers carry the CRC32C of the uncompressed payload. Go's crc32
// package uses hardware instructions (SSE4.2, ARM CRC) when available.
//
//	checksum := hash.CRC32C(payload)
//
// # Fingerprints
//
// Fingerprint is a 64-bit xxhash of the payload. Archives use it to give
// identical streams identical names.
//
//	name := fmt.Sprintf("%016x", hash.Fingerprint(payload))
package hash
