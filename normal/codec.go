package normal

import (
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/normpack/internal/unorm"
	"github.com/hupe1980/normpack/vec3"
)

// ErrOutsideUnitDisk is returned by strict decoding when the decoded (x, y)
// lies outside the unit disk, leaving no real z.
var ErrOutsideUnitDisk = errors.New("normal: decoded x,y outside unit disk")

// DecodePolicy selects how a negative radicand is handled when z is rebuilt.
type DecodePolicy uint8

const (
	// PolicyClamp clamps the radicand to zero. z decodes as signed zero.
	PolicyClamp DecodePolicy = iota
	// PolicyNaN takes the square root unguarded; z decodes as NaN.
	PolicyNaN
	// PolicyStrict reports ErrOutsideUnitDisk.
	PolicyStrict
)

func (p DecodePolicy) String() string {
	switch p {
	case PolicyClamp:
		return "clamp"
	case PolicyNaN:
		return "nan"
	case PolicyStrict:
		return "strict"
	default:
		return fmt.Sprintf("DecodePolicy(%d)", uint8(p))
	}
}

// ParseDecodePolicy parses the String form of a policy.
func ParseDecodePolicy(s string) (DecodePolicy, error) {
	switch s {
	case "", "clamp":
		return PolicyClamp, nil
	case "nan":
		return PolicyNaN, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return 0, fmt.Errorf("normal: unknown decode policy %q", s)
	}
}

// Pack encodes a unit vector. The input is not validated; vectors that are
// not unit length produce words that decode with larger errors.
//
// z contributes only its sign bit, so -0 sets bit 0. Clamped words decode to a
// signed zero z and therefore re-encode to the same word.
func Pack(v vec3.Vec3) Word {
	ux := unorm.Quantize16(unorm.UNorm(v.X))
	uy := unorm.Quantize15(unorm.UNorm(v.Y))

	var ua uint32
	if math.Signbit(float64(v.Z)) {
		ua = 1
	}

	return Word(ux<<xShift | uy<<yShift | ua)
}

// Unpack decodes a word, clamping a negative radicand to zero.
func Unpack(w Word) vec3.Vec3 {
	v, _ := decode(w, PolicyClamp)
	return v
}

// UnpackStrict decodes a word and returns ErrOutsideUnitDisk when z has no
// real solution. The returned vector still carries the decoded x and y, with
// z set to signed zero.
func UnpackStrict(w Word) (vec3.Vec3, error) {
	return decode(w, PolicyStrict)
}

// Decoder decodes words with a fixed policy. The zero value clamps.
type Decoder struct {
	Policy DecodePolicy
}

// Decode decodes w. An error is only possible with PolicyStrict.
func (d Decoder) Decode(w Word) (vec3.Vec3, error) {
	return decode(w, d.Policy)
}

// Clamped reports whether decoding w requires clamping the radicand.
func Clamped(w Word) bool {
	fx, fy := decodeXY(w)
	return radicand(fx, fy) < 0
}

func decodeXY(w Word) (fx, fy float32) {
	x := uint32(w) >> xShift
	y := (uint32(w) & yMask) >> yShift
	fx = unorm.SNorm(unorm.Dequantize16(x))
	fy = unorm.SNorm(unorm.Dequantize15(y))
	return fx, fy
}

func radicand(fx, fy float32) float32 {
	return 1 - (fx*fx + fy*fy)
}

func decode(w Word, policy DecodePolicy) (vec3.Vec3, error) {
	fx, fy := decodeXY(w)

	sign := float32(1)
	if w.ZNegative() {
		sign = -1
	}

	r := radicand(fx, fy)

	var err error
	if r < 0 {
		switch policy {
		case PolicyNaN:
			// math.Sqrt of a negative value is NaN.
		case PolicyStrict:
			err = fmt.Errorf("%w: %s", ErrOutsideUnitDisk, w)
			r = 0
		default:
			r = 0
		}
	}

	fz := float32(math.Sqrt(float64(r))) * sign

	return vec3.Vec3{X: fx, Y: fy, Z: fz}, err
}
