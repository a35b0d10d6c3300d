package normal

import (
	"context"
	"runtime"

	"github.com/hupe1980/normpack/vec3"
	"golang.org/x/sync/errgroup"
)

// ParallelThreshold is the batch size above which PackAll and UnpackAll
// split the work across goroutines.
const ParallelThreshold = 4096

// Quantizer packs flat float32 slices of xyz triples.
// It compresses 12 bytes per normal to Size bytes.
//
// A Quantizer is immutable and safe for concurrent use.
type Quantizer struct {
	decoder Decoder
	workers int
}

// QuantizerOption configures a Quantizer.
type QuantizerOption func(*Quantizer)

// WithPolicy sets the decode policy used by Decode and UnpackAll.
func WithPolicy(p DecodePolicy) QuantizerOption {
	return func(q *Quantizer) {
		q.decoder.Policy = p
	}
}

// WithWorkers limits the number of goroutines used for large batches.
// Values <= 0 select GOMAXPROCS.
func WithWorkers(n int) QuantizerOption {
	return func(q *Quantizer) {
		q.workers = n
	}
}

// NewQuantizer creates a quantizer.
func NewQuantizer(optFns ...QuantizerOption) *Quantizer {
	q := &Quantizer{}
	for _, fn := range optFns {
		fn(q)
	}
	if q.workers <= 0 {
		q.workers = runtime.GOMAXPROCS(0)
	}
	return q
}

// Policy returns the decode policy.
func (q *Quantizer) Policy() DecodePolicy { return q.decoder.Policy }

// Encode packs v, read as consecutive xyz triples, into big-endian words.
// A trailing partial triple is ignored.
func (q *Quantizer) Encode(v []float32) []byte {
	n := len(v) / 3
	out := make([]byte, n*Size)
	for i := range n {
		PutWord(out[i*Size:], Pack(vec3.FromSlice(v[i*3:])))
	}
	return out
}

// Decode unpacks big-endian words into xyz triples.
// Trailing bytes that do not form a whole word are ignored. Under
// PolicyStrict, components of words outside the unit disk decode with z = 0.
func (q *Quantizer) Decode(b []byte) []float32 {
	n := len(b) / Size
	out := make([]float32, n*3)
	for i := range n {
		v, _ := q.decoder.Decode(ReadWord(b[i*Size:]))
		out[i*3], out[i*3+1], out[i*3+2] = v.X, v.Y, v.Z
	}
	return out
}

// BytesPerVector returns Size.
func (q *Quantizer) BytesPerVector() int { return Size }

// CompressionRatio returns the size ratio of float32 triples to words.
func (q *Quantizer) CompressionRatio() float64 {
	return 12.0 / Size
}

// PackAll packs a batch of normals.
func (q *Quantizer) PackAll(ctx context.Context, normals []vec3.Vec3) ([]Word, error) {
	out := make([]Word, len(normals))
	err := q.forChunks(ctx, len(normals), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			out[i] = Pack(normals[i])
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// UnpackAll unpacks a batch of words. Under PolicyStrict the first failing
// word aborts the batch.
func (q *Quantizer) UnpackAll(ctx context.Context, words []Word) ([]vec3.Vec3, error) {
	out := make([]vec3.Vec3, len(words))
	err := q.forChunks(ctx, len(words), func(lo, hi int) error {
		for i := lo; i < hi; i++ {
			v, err := q.decoder.Decode(words[i])
			if err != nil {
				return err
			}
			out[i] = v
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// forChunks runs fn over [0, n) in disjoint ranges.
func (q *Quantizer) forChunks(ctx context.Context, n int, fn func(lo, hi int) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if n <= ParallelThreshold || q.workers == 1 {
		return fn(0, n)
	}

	chunk := (n + q.workers - 1) / q.workers
	if chunk < ParallelThreshold/4 {
		chunk = ParallelThreshold / 4
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(q.workers)

	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return fn(lo, hi)
		})
	}

	return g.Wait()
}
