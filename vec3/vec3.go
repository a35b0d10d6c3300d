// Package vec3 provides the float32 3D vector type used for unit normals.
package vec3

import "math"

// Epsilon is the per-component tolerance used to accept a decoded normal.
// Keep it as low as the codec allows: the 15-bit y channel bounds the error
// for well-conditioned normals at roughly 3e-5.
const Epsilon float32 = 0.005

// Vec3 is a 3-component float32 vector. Normals are expected to have unit length.
type Vec3 struct {
	X float32 `json:"x" msgpack:"x"`
	Y float32 `json:"y" msgpack:"y"`
	Z float32 `json:"z" msgpack:"z"`
}

// New creates a vector from its components.
func New(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// FromSlice creates a vector from the first three elements of s.
// It panics if len(s) < 3.
func FromSlice(s []float32) Vec3 {
	_ = s[2]
	return Vec3{X: s[0], Y: s[1], Z: s[2]}
}

// Slice returns the components as a new slice.
func (v Vec3) Slice() []float32 { return []float32{v.X, v.Y, v.Z} }

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v * k.
func (v Vec3) Scale(k float32) Vec3 { return Vec3{v.X * k, v.Y * k, v.Z * k} }

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// LengthSq returns the squared Euclidean length.
func (v Vec3) LengthSq() float32 { return v.Dot(v) }

// Length returns the Euclidean length.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSq())))
}

// Normalize returns the unit vector pointing in the direction of v.
// The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

// IsUnit reports whether |v| is within eps of 1.
func (v Vec3) IsUnit(eps float32) bool {
	return ApproxEqualFloatEps(v.Length(), 1, eps)
}

// MaxAbsDiff returns the largest per-component absolute difference.
func (v Vec3) MaxAbsDiff(o Vec3) float32 {
	d := abs(v.X - o.X)
	if dy := abs(v.Y - o.Y); dy > d || dy != dy {
		d = dy
	}
	if dz := abs(v.Z - o.Z); dz > d || dz != dz {
		d = dz
	}
	return d
}

// ApproxEqual reports whether every component of v is within Epsilon of o.
func (v Vec3) ApproxEqual(o Vec3) bool {
	return v.ApproxEqualEps(o, Epsilon)
}

// ApproxEqualEps reports whether every component of v is within eps of o.
func (v Vec3) ApproxEqualEps(o Vec3, eps float32) bool {
	return ApproxEqualFloatEps(v.X, o.X, eps) &&
		ApproxEqualFloatEps(v.Y, o.Y, eps) &&
		ApproxEqualFloatEps(v.Z, o.Z, eps)
}

// ApproxEqualFloat reports whether |a-b| < Epsilon.
func ApproxEqualFloat(a, b float32) bool {
	return ApproxEqualFloatEps(a, b, Epsilon)
}

// ApproxEqualFloatEps reports whether |a-b| < eps. NaN is never equal.
func ApproxEqualFloatEps(a, b, eps float32) bool {
	return abs(a-b) < eps
}

func abs(f float32) float32 {
	return math.Float32frombits(math.Float32bits(f) &^ (1 << 31))
}
