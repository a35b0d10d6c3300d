package verify

import (
	"bufio"
	"fmt"
	"io"

	"github.com/hupe1980/normpack/vec3"
)

// Format renders v as "[ x y z ]" with six significant digits.
func Format(v vec3.Vec3) string {
	return fmt.Sprintf("[ %.6g %.6g %.6g ]", v.X, v.Y, v.Z)
}

// WriteText writes one line per case followed by the error count:
//
//	SUCCESS: [ 1 0 0 ] --> 4294934528 --> [ 1 3.05176e-05 0 ]
//	>>> FAIL: [ ... ] --> ... --> [ ... ]
//
//	Errors: 0
func (r *Report) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)

	for _, res := range r.Results {
		prefix := "SUCCESS: "
		if !res.OK {
			prefix = ">>> FAIL: "
		}
		fmt.Fprintf(bw, "%s%s --> %d --> %s\n", prefix, Format(res.Input), uint32(res.Word), Format(res.Output))
	}
	fmt.Fprintf(bw, "\nErrors: %d\n", r.Failed)

	return bw.Flush()
}
