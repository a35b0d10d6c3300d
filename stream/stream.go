package stream

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/hupe1980/normpack/internal/hash"
	"github.com/hupe1980/normpack/normal"
	"github.com/hupe1980/normpack/vec3"
)

const (
	// Magic identifies a normal stream ("NPK1").
	Magic uint32 = 0x4E504B31
	// Version is the current format version.
	Version uint8 = 1
	// HeaderSize is the encoded header size in bytes.
	HeaderSize = 20
)

var (
	// ErrBadMagic is returned when data does not start with Magic.
	ErrBadMagic = errors.New("stream: bad magic")
	// ErrUnsupportedVersion is returned for unknown format versions.
	ErrUnsupportedVersion = errors.New("stream: unsupported version")
	// ErrUnknownCompression is returned for unknown compression codes.
	ErrUnknownCompression = errors.New("stream: unknown compression")
	// ErrChecksumMismatch is returned when the payload CRC does not match.
	ErrChecksumMismatch = errors.New("stream: checksum mismatch")
	// ErrTruncated is returned when data is shorter than the header announces.
	ErrTruncated = errors.New("stream: truncated")
	// ErrCorrupt is returned when a compressed payload cannot decode to the
	// size the header announces.
	ErrCorrupt = errors.New("stream: corrupt payload")
	// ErrTooLarge is returned when a stream would exceed the 32-bit count field.
	ErrTooLarge = errors.New("stream: too many normals")
)

// Header describes an encoded stream.
type Header struct {
	Version     uint8
	Compression Compression
	Count       uint32
	PayloadLen  uint32
	Checksum    uint32
}

// RawSize returns the uncompressed payload size.
func (h Header) RawSize() int { return int(h.Count) * normal.Size }

// Size returns the total encoded size.
func (h Header) Size() int { return HeaderSize + int(h.PayloadLen) }

// AppendTo appends the encoded header to b.
func (h Header) AppendTo(b []byte) []byte {
	b = binary.BigEndian.AppendUint32(b, Magic)
	b = append(b, h.Version, byte(h.Compression), 0, 0)
	b = binary.BigEndian.AppendUint32(b, h.Count)
	b = binary.BigEndian.AppendUint32(b, h.PayloadLen)
	b = binary.BigEndian.AppendUint32(b, h.Checksum)
	return b
}

// ParseHeader decodes and validates a header.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("%w: %d bytes, header needs %d", ErrTruncated, len(data), HeaderSize)
	}

	if m := binary.BigEndian.Uint32(data[0:]); m != Magic {
		return Header{}, fmt.Errorf("%w: 0x%08x", ErrBadMagic, m)
	}

	h := Header{
		Version:     data[4],
		Compression: Compression(data[5]),
		Count:       binary.BigEndian.Uint32(data[8:]),
		PayloadLen:  binary.BigEndian.Uint32(data[12:]),
		Checksum:    binary.BigEndian.Uint32(data[16:]),
	}

	if h.Version != Version {
		return Header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	if h.Compression > CompressionZSTD {
		return Header{}, fmt.Errorf("%w: %d", ErrUnknownCompression, h.Compression)
	}

	return h, nil
}

type options struct {
	compression Compression
	quantizer   *normal.Quantizer
}

// Option configures encoding and decoding.
type Option func(*options)

// WithCompression sets the payload compression. Default is CompressionNone.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithQuantizer sets the quantizer used by EncodeNormals and DecodeNormals.
func WithQuantizer(q *normal.Quantizer) Option {
	return func(o *options) {
		o.quantizer = q
	}
}

func applyOptions(optFns []Option) options {
	o := options{compression: CompressionNone}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.quantizer == nil {
		o.quantizer = normal.NewQuantizer()
	}
	return o
}

// Encode serializes words into a stream.
func Encode(words []normal.Word, optFns ...Option) ([]byte, error) {
	o := applyOptions(optFns)

	if uint64(len(words)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d", ErrTooLarge, len(words))
	}

	raw := RawPayload(words)

	payload, used, err := compress(raw, o.compression)
	if err != nil {
		return nil, err
	}

	h := Header{
		Version:     Version,
		Compression: used,
		Count:       uint32(len(words)),
		PayloadLen:  uint32(len(payload)),
		Checksum:    hash.CRC32C(raw),
	}

	out := make([]byte, 0, HeaderSize+len(payload))
	out = h.AppendTo(out)
	return append(out, payload...), nil
}

// Decode parses a stream and returns its words.
func Decode(data []byte) ([]normal.Word, Header, error) {
	h, err := ParseHeader(data)
	if err != nil {
		return nil, Header{}, err
	}

	if len(data) < h.Size() {
		return nil, h, fmt.Errorf("%w: %d bytes, stream needs %d", ErrTruncated, len(data), h.Size())
	}

	raw, err := decompress(data[HeaderSize:h.Size()], h.Compression, h.RawSize())
	if err != nil {
		return nil, h, err
	}

	if sum := hash.CRC32C(raw); sum != h.Checksum {
		return nil, h, fmt.Errorf("%w: got 0x%08x, want 0x%08x", ErrChecksumMismatch, sum, h.Checksum)
	}

	words := make([]normal.Word, h.Count)
	for i := range words {
		words[i] = normal.ReadWord(raw[i*normal.Size:])
	}

	return words, h, nil
}

// EncodeNormals packs normals and serializes them into a stream.
func EncodeNormals(ctx context.Context, normals []vec3.Vec3, optFns ...Option) ([]byte, error) {
	o := applyOptions(optFns)

	words, err := o.quantizer.PackAll(ctx, normals)
	if err != nil {
		return nil, err
	}

	return Encode(words, optFns...)
}

// DecodeNormals parses a stream and unpacks its normals with the configured
// quantizer's decode policy.
func DecodeNormals(ctx context.Context, data []byte, optFns ...Option) ([]vec3.Vec3, error) {
	o := applyOptions(optFns)

	words, _, err := Decode(data)
	if err != nil {
		return nil, err
	}

	return o.quantizer.UnpackAll(ctx, words)
}

// RawPayload returns the uncompressed big-endian payload for words.
func RawPayload(words []normal.Word) []byte {
	raw := make([]byte, 0, len(words)*normal.Size)
	for _, w := range words {
		raw = normal.AppendWord(raw, w)
	}
	return raw
}

// Fingerprint returns the xxhash64 of the raw payload for words. Streams with
// the same normals have the same fingerprint regardless of compression.
func Fingerprint(words []normal.Word) uint64 {
	return hash.Fingerprint(RawPayload(words))
}
