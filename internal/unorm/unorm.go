package unorm

import "math"

const (
	// Max15 is the largest 15-bit code (2^15 - 1).
	Max15 = 1<<15 - 1
	// Max16 is the largest 16-bit code (2^16 - 1).
	Max16 = 1<<16 - 1

	mask16 = 0x0000FFFF
)

// UNorm maps x from [-1, 1] to [0, 1].
func UNorm(x float32) float32 {
	return (x + 1) * 0.5
}

// SNorm maps x from [0, 1] to [-1, 1].
func SNorm(x float32) float32 {
	return x*2 - 1
}

// Quantize15 scales f in [0, 1] to a 15-bit code. The result is masked to the
// low 16 bits, so inputs above 1 wrap instead of spilling into higher bits.
func Quantize15(f float32) uint32 {
	return round(f*Max15) & mask16
}

// Quantize16 scales f in [0, 1] to a 16-bit code. No mask is applied.
func Quantize16(f float32) uint32 {
	return round(f * Max16)
}

// Dequantize15 maps a 15-bit code back to [0, 1].
func Dequantize15(u uint32) float32 {
	return float32(u) / Max15
}

// Dequantize16 maps a 16-bit code back to [0, 1].
func Dequantize16(u uint32) float32 {
	return float32(u) / Max16
}

// round rounds half away from zero. The detour through int64 makes negative
// products wrap two's-complement style; a direct float to uint32 conversion
// of a negative value is implementation-defined in Go.
func round(f float32) uint32 {
	return uint32(int64(math.Round(float64(f))))
}
