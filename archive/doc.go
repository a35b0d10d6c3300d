// Package archive stores named normal streams on a blob store.
//
// Streams saved with Save are content addressed: the name is derived from the
// xxhash64 of the uncompressed payload, so saving identical normals twice
// yields the same blob.
//
//	arc := archive.New(blobstore.NewLocalStore("/var/lib/normals"),
//	    archive.WithCompression(stream.CompressionZSTD),
//	)
//	name, err := arc.Save(ctx, normals)
//	restored, err := arc.Load(ctx, name)
package archive
