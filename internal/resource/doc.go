// Package resource limits the concurrency and IO throughput of archive
// operations.
//
//	rc := resource.NewController(resource.Config{
//	    MaxConcurrent:      4,
//	    IOLimitBytesPerSec: 64 << 20, // 64MB/s
//	})
//
//	if err := rc.Acquire(ctx); err != nil {
//	    return err
//	}
//	defer rc.Release()
//
//	if err := rc.AcquireIO(ctx, len(blob)); err != nil {
//	    return err
//	}
//
// All methods handle a nil Controller gracefully and become no-ops.
package resource
