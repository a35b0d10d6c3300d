package normal

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Size is the encoded size of a normal in bytes.
const Size = 4

const (
	xShift  = 16
	yShift  = 1
	yMask   = 0x0000FFFF
	signBit = 0x00000001
)

// ErrInvalidLength is returned when a binary word is not exactly Size bytes.
var ErrInvalidLength = errors.New("normal: invalid word length")

// Word is a packed normal.
type Word uint32

// New composes a word from raw fields. Only the low 15 bits of uy are used.
func New(ux, uy uint16, zNegative bool) Word {
	w := Word(ux)<<xShift | Word(uy&0x7FFF)<<yShift
	if zNegative {
		w |= signBit
	}
	return w
}

// X returns the 16-bit x code.
func (w Word) X() uint16 { return uint16(w >> xShift) }

// Y returns the 15-bit y code.
func (w Word) Y() uint16 { return uint16((w & yMask) >> yShift) }

// ZNegative reports whether the sign flag is set.
func (w Word) ZNegative() bool { return w&signBit != 0 }

func (w Word) String() string { return fmt.Sprintf("0x%08x", uint32(w)) }

// PutWord writes w into b[:Size] in big-endian order.
func PutWord(b []byte, w Word) {
	binary.BigEndian.PutUint32(b, uint32(w))
}

// AppendWord appends the big-endian encoding of w to b.
func AppendWord(b []byte, w Word) []byte {
	return binary.BigEndian.AppendUint32(b, uint32(w))
}

// ReadWord reads a big-endian word from b[:Size].
func ReadWord(b []byte) Word {
	return Word(binary.BigEndian.Uint32(b))
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (w Word) MarshalBinary() ([]byte, error) {
	return AppendWord(make([]byte, 0, Size), w), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (w *Word) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return fmt.Errorf("%w: %d bytes", ErrInvalidLength, len(data))
	}
	*w = ReadWord(data)
	return nil
}
