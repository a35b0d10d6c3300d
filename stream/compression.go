package stream

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload compression of a stream.
type Compression uint8

const (
	// CompressionNone stores the words as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses ZSTD (better ratio).
	CompressionZSTD Compression = 2
)

// minSavings is the largest compressed/raw ratio worth keeping.
const minSavings = 0.9

// Upper bounds on raw/compressed size. An LZ4 block expands at most 255x; a
// ZSTD RLE block turns 4 bytes into 128 KiB.
const (
	lz4MaxExpansion  = 255
	zstdMaxExpansion = 1 << 15
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression parses the String form of a compression.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, s)
	}
}

// ZSTD encoder/decoder pools
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// compress returns the compressed payload and the compression actually used.
// Payloads that do not shrink below minSavings are returned as is with
// CompressionNone.
func compress(raw []byte, c Compression) ([]byte, Compression, error) {
	if c == CompressionNone || len(raw) == 0 {
		return raw, CompressionNone, nil
	}

	var (
		out []byte
		err error
	)

	switch c {
	case CompressionLZ4:
		out, err = compressLZ4(raw)
	case CompressionZSTD:
		out = compressZSTD(raw)
	default:
		return nil, 0, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}

	if err != nil {
		return nil, 0, err
	}

	if len(out) == 0 || float64(len(out)) > float64(len(raw))*minSavings {
		return raw, CompressionNone, nil
	}

	return out, c, nil
}

func compressLZ4(raw []byte) ([]byte, error) {
	out := make([]byte, lz4.CompressBlockBound(len(raw)))

	n, err := lz4.CompressBlock(raw, out, nil)
	if err != nil {
		return nil, err
	}

	// n == 0 means incompressible
	return out[:n], nil
}

func compressZSTD(raw []byte) []byte {
	enc := getZstdEncoder()
	defer putZstdEncoder(enc)

	return enc.EncodeAll(raw, nil)
}

// decompress expands payload into exactly rawSize bytes.
func decompress(payload []byte, c Compression, rawSize int) ([]byte, error) {
	switch c {
	case CompressionNone:
		if len(payload) != rawSize {
			return nil, fmt.Errorf("%w: payload %d bytes, want %d", ErrTruncated, len(payload), rawSize)
		}
		return payload, nil
	case CompressionLZ4:
		if rawSize > lz4MaxExpansion*len(payload) {
			return nil, fmt.Errorf("%w: %d lz4 bytes cannot hold %d", ErrCorrupt, len(payload), rawSize)
		}
		out := make([]byte, rawSize)
		n, err := lz4.UncompressBlock(payload, out)
		if err != nil {
			return nil, fmt.Errorf("stream: lz4: %w", err)
		}
		if n != rawSize {
			return nil, fmt.Errorf("%w: lz4 produced %d bytes, want %d", ErrTruncated, n, rawSize)
		}
		return out, nil
	case CompressionZSTD:
		if rawSize > zstdMaxExpansion*len(payload) {
			return nil, fmt.Errorf("%w: %d zstd bytes cannot hold %d", ErrCorrupt, len(payload), rawSize)
		}
		// The frame must announce the size the header promises, so the
		// decoder never grows past rawSize.
		var zh zstd.Header
		if err := zh.Decode(payload); err != nil {
			return nil, fmt.Errorf("%w: zstd frame: %v", ErrCorrupt, err)
		}
		if !zh.HasFCS || zh.FrameContentSize != uint64(rawSize) {
			return nil, fmt.Errorf("%w: zstd frame holds %d bytes, want %d", ErrCorrupt, zh.FrameContentSize, rawSize)
		}

		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		out, err := dec.DecodeAll(payload, make([]byte, 0, rawSize))
		if err != nil {
			return nil, fmt.Errorf("stream: zstd: %w", err)
		}
		if len(out) != rawSize {
			return nil, fmt.Errorf("%w: zstd produced %d bytes, want %d", ErrTruncated, len(out), rawSize)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}
}
