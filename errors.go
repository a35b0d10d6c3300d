package normpack

import (
	"fmt"

	"github.com/hupe1980/normpack/normal"
)

// ErrOutsideUnitDisk is returned under normal.PolicyStrict when a word decodes
// to (x, y) outside the unit disk.
var ErrOutsideUnitDisk = normal.ErrOutsideUnitDisk

// StreamError reports a failed stream operation.
//
// The wrapped error is available via errors.Unwrap, so
// errors.Is works against the stream package sentinels.
type StreamError struct {
	Op  string
	Err error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("normpack: stream %s: %v", e.Op, e.Err)
}

func (e *StreamError) Unwrap() error { return e.Err }
