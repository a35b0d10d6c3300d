// Package blobstore provides the storage abstraction behind normal archives.
//
// A BlobStore holds whole, immutable blobs addressed by name. Implementations
// must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - MemoryStore: in-process map, used by tests and as the CLI default
//   - LocalStore: files under a root directory, read through mmap
//   - CachingStore: LRU of whole blobs in front of any other store
//   - s3.Store: Amazon S3 (aws-sdk-go-v2)
//   - minio.Store: MinIO and other S3-compatible servers (minio-go)
//
// # Custom Implementations
//
//	type BlobStore interface {
//	    Put(ctx, name, data) error
//	    Get(ctx, name) ([]byte, error)
//	    Delete(ctx, name) error
//	    List(ctx, prefix) ([]string, error)
//	}
//
// Get must return an error matching ErrNotFound for missing blobs. Delete of a
// missing blob is not an error, and List returns names in sorted order.
package blobstore
