package unorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUNorm(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{-1, 0},
		{0, 0.5},
		{1, 1},
		{-0.5, 0.25},
		{3, 2}, // extrapolates
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, UNorm(tt.in), "UNorm(%v)", tt.in)
	}
}

func TestSNorm(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, -1},
		{0.5, 0},
		{1, 1},
		{0.25, -0.5},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SNorm(tt.in), "SNorm(%v)", tt.in)
	}
}

func TestSNormInvertsUNorm(t *testing.T) {
	for _, x := range []float32{-1, -0.75, -0.125, 0, 0.3, 0.9, 1} {
		assert.InDelta(t, x, SNorm(UNorm(x)), 1e-6)
	}
}

func TestQuantize16(t *testing.T) {
	assert.Equal(t, uint32(0), Quantize16(0))
	assert.Equal(t, uint32(65535), Quantize16(1))
	assert.Equal(t, uint32(32768), Quantize16(0.5)) // 32767.5 rounds away from zero
	assert.Equal(t, uint32(65536), Quantize16(1+1.0/65535), "no mask on the 16-bit quantizer")
}

func TestQuantize15(t *testing.T) {
	assert.Equal(t, uint32(0), Quantize15(0))
	assert.Equal(t, uint32(32767), Quantize15(1))
	assert.Equal(t, uint32(16384), Quantize15(0.5)) // 16383.5 rounds away from zero
	assert.Equal(t, uint32(65534), Quantize15(2), "stays within 16 bits")
	assert.Equal(t, uint32(0), Quantize15(65536.0/32767), "wraps at the 16-bit mask")
}

func TestQuantizeNegativeWraps(t *testing.T) {
	assert.Equal(t, uint32(0xFFFF), Quantize15(-1.0/32767))
	assert.Equal(t, uint32(0xFFFFFFFF), Quantize16(-1.0/65535))
}

func TestDequantize(t *testing.T) {
	assert.Equal(t, float32(0), Dequantize16(0))
	assert.Equal(t, float32(1), Dequantize16(Max16))
	assert.Equal(t, float32(0), Dequantize15(0))
	assert.Equal(t, float32(1), Dequantize15(Max15))

	for _, f := range []float32{0, 0.1, 0.5, 0.853553, 1} {
		assert.InDelta(t, f, Dequantize16(Quantize16(f)), 0.5/Max16+1e-6)
		assert.InDelta(t, f, Dequantize15(Quantize15(f)), 0.5/Max15+1e-6)
	}
}

func BenchmarkQuantize16(b *testing.B) {
	var sink uint32
	for b.Loop() {
		sink += Quantize16(0.853553)
	}
	_ = sink
}
