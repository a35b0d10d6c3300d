package normal

import (
	"errors"
	"math"
	"testing"

	"github.com/hupe1980/normpack/testutil"
	"github.com/hupe1980/normpack/vec3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackUnpack_Axes(t *testing.T) {
	tests := []struct {
		name string
		in   vec3.Vec3
	}{
		{"+x", vec3.New(1, 0, 0)},
		{"+y", vec3.New(0, 1, 0)},
		{"+z", vec3.New(0, 0, 1)},
		{"-x", vec3.New(-1, 0, 0)},
		{"-y", vec3.New(0, -1, 0)},
		{"-z", vec3.New(0, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Unpack(Pack(tt.in))
			assert.True(t, got.ApproxEqual(tt.in), "%v -> %v", tt.in, got)
		})
	}
}

func TestPackUnpack_Diagonals(t *testing.T) {
	raw := []vec3.Vec3{
		{X: 1, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1},
		{X: -1, Y: -1, Z: 0}, {X: -1, Y: 0, Z: -1}, {X: 0, Y: -1, Z: -1},
		{X: 1, Y: -1, Z: 0}, {X: -1, Y: 1, Z: 0}, {X: 1, Y: 0, Z: -1},
		{X: -1, Y: 0, Z: 1}, {X: 0, Y: 1, Z: -1}, {X: 0, Y: -1, Z: 1},
	}

	for _, r := range raw {
		in := r.Normalize()
		got := Unpack(Pack(in))
		assert.True(t, got.ApproxEqual(in), "%v -> %v", in, got)
	}
}

func TestPackUnpack_Scenarios(t *testing.T) {
	got := Unpack(Pack(vec3.New(1, 0, 0)))
	assert.True(t, got.ApproxEqual(vec3.New(1, 0, 0)))

	got = Unpack(Pack(vec3.New(0, 1, 0)))
	assert.True(t, got.ApproxEqual(vec3.New(0, 1, 0)))

	w := Pack(vec3.New(1, 1, 0).Normalize())
	assert.False(t, w.ZNegative(), "z = 0 encodes as non-negative")
	got = Unpack(w)
	assert.True(t, got.ApproxEqual(vec3.New(0.7071, 0.7071, 0)), "got %v", got)
}

func TestPackUnpack_RandomRoundTrip(t *testing.T) {
	rng := testutil.NewRNG(42)

	for _, n := range rng.UnitNormalsAwayFromEquator(10000, 0.05) {
		got := Unpack(Pack(n))
		require.True(t, got.ApproxEqual(n), "%v -> %v (max err %g)", n, got, got.MaxAbsDiff(n))
	}
}

func TestPackUnpack_ZSign(t *testing.T) {
	assert.Greater(t, Unpack(Pack(vec3.New(0, 0, 1))).Z, float32(0))
	assert.Less(t, Unpack(Pack(vec3.New(0, 0, -1))).Z, float32(0))

	negZero := float32(math.Copysign(0, -1))
	assert.True(t, Pack(vec3.New(1, 0, negZero)).ZNegative(), "-0 keeps its sign")
	assert.False(t, Pack(vec3.New(1, 0, 0)).ZNegative())
}

func TestPack_BitLayoutIsolation(t *testing.T) {
	base := vec3.New(0.3, -0.4, 0.8660254)
	w := Pack(base)

	t.Run("x only touches bits 31-16", func(t *testing.T) {
		for _, x := range []float32{-1, -0.5, 0, 0.2, 0.9, 1} {
			v := base
			v.X = x
			diff := uint32(Pack(v) ^ w)
			assert.Zero(t, diff&0x0000FFFF, "x=%v", x)
		}
	})

	t.Run("y only touches bits 15-1", func(t *testing.T) {
		for _, y := range []float32{-1, -0.5, 0, 0.2, 0.9, 1} {
			v := base
			v.Y = y
			diff := uint32(Pack(v) ^ w)
			assert.Zero(t, diff&0xFFFF0001, "y=%v", y)
		}
	})

	t.Run("z sign only touches bit 0", func(t *testing.T) {
		v := base
		v.Z = -v.Z
		assert.Equal(t, uint32(1), uint32(Pack(v)^w))

		v.Z = -0.1 // magnitude is not stored
		assert.Equal(t, uint32(1), uint32(Pack(v)^w))
	})
}

func TestPack_Idempotent(t *testing.T) {
	rng := testutil.NewRNG(7)

	for _, n := range rng.UnitNormalsAwayFromEquator(10000, 0.05) {
		w := Pack(n)
		assert.Equal(t, w, Pack(Unpack(w)), "%v", n)
	}
}

func TestPack_IdempotentAtEquator(t *testing.T) {
	const n = 100000

	for _, zSign := range []float32{1, -1} {
		clamped := 0
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / n
			v := vec3.New(float32(math.Cos(a)), float32(math.Sin(a)), zSign*1e-5).Normalize()

			w := Pack(v)
			if Clamped(w) {
				clamped++
			}
			require.Equal(t, w, Pack(Unpack(w)), "%v", v)
		}
		assert.Positive(t, clamped, "z sign %v: no clamped words exercised", zSign)
	}

	t.Run("clamped words", func(t *testing.T) {
		for _, w := range []Word{
			New(65535, 17000, true),
			New(65535, 32767, true),
			New(0, 0, true),
			New(65535, 17000, false),
		} {
			require.True(t, Clamped(w))
			assert.Equal(t, w, Pack(Unpack(w)), "%s", w)
		}
	})
}

func TestPack_KnownWords(t *testing.T) {
	tests := []struct {
		in   vec3.Vec3
		want Word
	}{
		{vec3.New(1, 0, 0), New(65535, 16384, false)},
		{vec3.New(-1, 0, 0), New(0, 16384, false)},
		{vec3.New(0, 1, 0), New(32768, 32767, false)},
		{vec3.New(0, -1, 0), New(32768, 0, false)},
		{vec3.New(0, 0, 1), New(32768, 16384, false)},
		{vec3.New(0, 0, -1), New(32768, 16384, true)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Pack(tt.in), "%v", tt.in)
	}
}

func TestUnpack_ClampsRadicand(t *testing.T) {
	// x = 1 and y clearly above zero: x² + y² > 1.
	w := New(65535, 17000, true)
	require.True(t, Clamped(w))

	v := Unpack(w)
	assert.Equal(t, float32(1), v.X)
	assert.Zero(t, v.Z)
	assert.False(t, Clamped(Pack(vec3.New(0, 0, 1))))
	assert.False(t, math.IsNaN(float64(v.Z)))

	// Corner words are far outside the unit disk.
	v = Unpack(New(65535, 32767, false))
	assert.Zero(t, v.Z)
}

func TestDecoder_Policies(t *testing.T) {
	outside := New(65535, 32767, true)
	inside := Pack(vec3.New(0, 0, -1))

	t.Run("clamp", func(t *testing.T) {
		v, err := Decoder{}.Decode(outside)
		require.NoError(t, err)
		assert.Zero(t, v.Z)
	})

	t.Run("nan", func(t *testing.T) {
		v, err := Decoder{Policy: PolicyNaN}.Decode(outside)
		require.NoError(t, err)
		assert.True(t, math.IsNaN(float64(v.Z)))
	})

	t.Run("strict", func(t *testing.T) {
		v, err := Decoder{Policy: PolicyStrict}.Decode(outside)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrOutsideUnitDisk))
		assert.Equal(t, float32(1), v.X)
		assert.Equal(t, float32(1), v.Y)

		_, err = UnpackStrict(inside)
		assert.NoError(t, err)
	})
}

func TestParseDecodePolicy(t *testing.T) {
	for _, p := range []DecodePolicy{PolicyClamp, PolicyNaN, PolicyStrict} {
		got, err := ParseDecodePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}

	got, err := ParseDecodePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyClamp, got)

	_, err = ParseDecodePolicy("round")
	assert.Error(t, err)
	assert.Equal(t, "DecodePolicy(9)", DecodePolicy(9).String())
}

func BenchmarkPack(b *testing.B) {
	n := vec3.New(0.3, -0.4, 0.8660254)
	var sink Word
	for b.Loop() {
		sink ^= Pack(n)
	}
	_ = sink
}

func BenchmarkUnpack(b *testing.B) {
	w := Pack(vec3.New(0.3, -0.4, 0.8660254))
	var sink float32
	for b.Loop() {
		sink += Unpack(w).Z
	}
	_ = sink
}
