// Package normal packs unit-length 3D vectors into a single 32-bit word.
//
// # Layout
//
//	bit  31            16 15            1  0
//	    +----------------+---------------+---+
//	    |   x (16 bit)   |  y (15 bit)   | s |
//	    +----------------+---------------+---+
//
// x and y are mapped from [-1, 1] to [0, 1] and quantized to 65535 and 32767
// steps. z is not stored: only its sign survives in bit 0 (1 = negative), and
// the decoder rebuilds |z| from x² + y² + z² = 1.
//
// The encoding is lossy and only meaningful for unit vectors. For normals away
// from the equator (|z| well above 0.01) every component round-trips within
// vec3.Epsilon.
//
// # Usage
//
//	w := normal.Pack(vec3.New(0, 0, -1))
//	n := normal.Unpack(w)
//
// # Reconstruction policy
//
// Quantization can push (x, y) slightly outside the unit disk, which makes
// 1 - x² - y² negative. Unpack clamps the radicand to zero, so z decodes as
// (signed) zero. UnpackStrict reports ErrOutsideUnitDisk instead, and a
// Decoder configured with PolicyNaN reproduces the unguarded square root.
//
// # Byte order
//
// On the wire a Word is 4 bytes, big-endian (PutWord, AppendWord, ReadWord,
// MarshalBinary).
package normal
