package verify

import "github.com/hupe1980/normpack/vec3"

// Source yields uniform floats in [0, 1). *rand.Rand and *testutil.RNG
// both satisfy it.
type Source interface {
	Float32() float32
}

// AxisCases returns the six signed unit axes.
func AxisCases() []vec3.Vec3 {
	return []vec3.Vec3{
		vec3.New(1, 0, 0),
		vec3.New(0, 1, 0),
		vec3.New(0, 0, 1),
		vec3.New(-1, 0, 0),
		vec3.New(0, -1, 0),
		vec3.New(0, 0, -1),
	}
}

// DiagonalCases returns the twelve normalized diagonals with exactly one zero
// component.
func DiagonalCases() []vec3.Vec3 {
	raw := []vec3.Vec3{
		vec3.New(1, 1, 0),
		vec3.New(1, 0, 1),
		vec3.New(0, 1, 1),

		vec3.New(-1, -1, 0),
		vec3.New(-1, 0, -1),
		vec3.New(0, -1, -1),

		vec3.New(1, -1, 0),
		vec3.New(-1, 1, 0),
		vec3.New(1, 0, -1),
		vec3.New(-1, 0, 1),
		vec3.New(0, 1, -1),
		vec3.New(0, -1, 1),
	}
	for i := range raw {
		raw[i] = raw[i].Normalize()
	}
	return raw
}

// RandomCases returns n normalized vectors whose components are drawn
// uniformly from [-1, 1). Draws landing on the origin are repeated.
func RandomCases(src Source, n int) []vec3.Vec3 {
	out := make([]vec3.Vec3, 0, n)
	for len(out) < n {
		v := vec3.New(src.Float32()*2-1, src.Float32()*2-1, src.Float32()*2-1)
		if v.LengthSq() == 0 {
			continue
		}
		out = append(out, v.Normalize())
	}
	return out
}

// DefaultCases returns the axis and diagonal cases followed by n random ones.
func DefaultCases(src Source, n int) []vec3.Vec3 {
	cases := append(AxisCases(), DiagonalCases()...)
	return append(cases, RandomCases(src, n)...)
}
