// Package stream stores sequences of packed normals in a self-describing
// binary container.
//
// # Format
//
// All integers are big-endian.
//
//	off  size  field
//	0    4     magic "NPK1"
//	4    1     format version (1)
//	5    1     compression (0 none, 1 lz4, 2 zstd)
//	6    2     reserved, zero
//	8    4     normal count
//	12   4     stored payload length
//	16   4     CRC32C of the uncompressed payload
//	20   ...   payload: count words of 4 bytes, compressed as recorded
//
// Compression is only kept when it saves at least 10%; otherwise the payload
// is stored raw and the header records "none".
package stream
