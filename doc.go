// Package normpack packs unit normal vectors into 32-bit words.
//
// A word keeps x in 16 bits, y in 15 bits and the sign of z in the lowest bit;
// z is rebuilt from x and y on decode. Unit vectors survive a round trip with
// at most 0.005 error per component, except very close to the z = 0 equator
// where the reconstruction is least precise.
//
// # Quick Start
//
//	w := normpack.Pack(vec3.New(0, 0, -1))
//	v := normpack.Unpack(w) // ≈ (0, 0, -1)
//
// # Batches and Streams
//
// A Codec carries a decode policy, a logger and a metrics collector:
//
//	c := normpack.New(
//	    normpack.WithDecodePolicy(normal.PolicyStrict),
//	    normpack.WithCompression(stream.CompressionZSTD),
//	    normpack.WithLogger(normpack.NewJSONLogger(slog.LevelDebug)),
//	)
//
//	words, _ := c.PackAll(ctx, normals)
//	data, _ := c.EncodeStream(ctx, normals)
//	restored, _ := c.DecodeStream(ctx, data)
//
// # Storage
//
// Streams can be archived on any blobstore.BlobStore through the archive
// package; blobstore ships memory, local (mmap), S3 and MinIO backends.
//
// # Decode Policy
//
// Quantization can push (x, y) just outside the unit disk, leaving no real z.
// The default policy clamps z to signed zero. PolicyStrict reports
// ErrOutsideUnitDisk and PolicyNaN propagates NaN.
package normpack
