// Package s3 stores normal streams in Amazon S3 or an S3-compatible endpoint.
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("normals/"),
//	    s3.WithRegion("us-east-1"),
//	)
//	arc := archive.New(store)
//
// Streams larger than UploadConfig.PartSize go through the transfer manager
// as multipart uploads. Smaller ones are sent in a single PutObject carrying a
// CRC32C checksum so that S3 rejects corrupted uploads. NoSuchKey and NotFound
// responses map to blobstore.ErrNotFound.
package s3
