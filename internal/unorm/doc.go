// Package unorm provides the affine maps and fixed-width quantizers used by the
// normal codec.
//
// Two ranges are involved:
//
//	signed   [-1, 1]  (vector components)
//	unsigned [ 0, 1]  (quantizer input)
//
// UNorm and SNorm convert between them. Quantize16 and Quantize15 scale an
// unsigned value to 2^16-1 and 2^15-1 steps and round to nearest. The two
// quantizers are intentionally not unified: the 15-bit variant keeps a 16-bit
// mask on its result, the 16-bit variant has none.
//
// None of the functions validate their input. Values outside the expected
// domain extrapolate (UNorm/SNorm) or wrap (Quantize*).
package unorm
