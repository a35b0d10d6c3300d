package normpack

import (
	"context"
	"time"

	"github.com/hupe1980/normpack/normal"
	"github.com/hupe1980/normpack/stream"
	"github.com/hupe1980/normpack/vec3"
	"github.com/hupe1980/normpack/verify"
)

// Codec packs and unpacks normals with a fixed configuration.
// It is safe for concurrent use.
type Codec struct {
	quantizer   *normal.Quantizer
	decoder     normal.Decoder
	compression stream.Compression
	logger      *Logger
	metrics     MetricsCollector
}

// New creates a Codec.
func New(optFns ...Option) *Codec {
	o := options{
		policy:      normal.PolicyClamp,
		compression: stream.CompressionNone,
	}
	for _, fn := range optFns {
		fn(&o)
	}

	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}

	return &Codec{
		quantizer: normal.NewQuantizer(
			normal.WithPolicy(o.policy),
			normal.WithWorkers(o.workers),
		),
		decoder:     normal.Decoder{Policy: o.policy},
		compression: o.compression,
		logger:      o.logger.WithComponent("codec"),
		metrics:     o.metricsCollector,
	}
}

var defaultCodec = New()

// Pack encodes a unit vector with the default codec.
func Pack(v vec3.Vec3) normal.Word {
	return defaultCodec.Pack(v)
}

// Unpack decodes a word with the default codec, clamping z when (x, y) lies
// outside the unit disk.
func Unpack(w normal.Word) vec3.Vec3 {
	v, _ := defaultCodec.Unpack(w)
	return v
}

// Policy returns the decode policy.
func (c *Codec) Policy() normal.DecodePolicy { return c.decoder.Policy }

// Pack encodes a unit vector.
func (c *Codec) Pack(v vec3.Vec3) normal.Word {
	w := normal.Pack(v)
	c.metrics.RecordPack(1)
	return w
}

// Unpack decodes a word. An error is only possible with normal.PolicyStrict.
func (c *Codec) Unpack(w normal.Word) (vec3.Vec3, error) {
	v, err := c.decoder.Decode(w)
	c.metrics.RecordUnpack(1, clampedCount(w))
	return v, err
}

// PackAll encodes a batch of normals.
func (c *Codec) PackAll(ctx context.Context, normals []vec3.Vec3) ([]normal.Word, error) {
	words, err := c.quantizer.PackAll(ctx, normals)
	if err != nil {
		return nil, err
	}
	c.metrics.RecordPack(len(words))
	return words, nil
}

// UnpackAll decodes a batch of words.
func (c *Codec) UnpackAll(ctx context.Context, words []normal.Word) ([]vec3.Vec3, error) {
	normals, err := c.quantizer.UnpackAll(ctx, words)
	if err != nil {
		return nil, err
	}
	c.metrics.RecordUnpack(len(words), clampedCount(words...))
	return normals, nil
}

// EncodeStream packs normals into a self-describing stream.
func (c *Codec) EncodeStream(ctx context.Context, normals []vec3.Vec3) ([]byte, error) {
	start := time.Now()

	data, err := stream.EncodeNormals(ctx, normals,
		stream.WithCompression(c.compression),
		stream.WithQuantizer(c.quantizer),
	)
	c.metrics.RecordStream(len(data), time.Since(start), err)
	c.logger.LogStream(ctx, "encode", len(normals), len(data), err)
	if err != nil {
		return nil, &StreamError{Op: "encode", Err: err}
	}

	c.metrics.RecordPack(len(normals))
	return data, nil
}

// DecodeStream parses a stream and unpacks its normals.
func (c *Codec) DecodeStream(ctx context.Context, data []byte) ([]vec3.Vec3, error) {
	start := time.Now()

	words, _, err := stream.Decode(data)
	var normals []vec3.Vec3
	if err == nil {
		normals, err = c.quantizer.UnpackAll(ctx, words)
	}

	c.metrics.RecordStream(len(data), time.Since(start), err)
	c.logger.LogStream(ctx, "decode", len(words), len(data), err)
	if err != nil {
		return nil, &StreamError{Op: "decode", Err: err}
	}

	c.metrics.RecordUnpack(len(words), clampedCount(words...))
	return normals, nil
}

// Verify runs the round-trip harness with the codec's decode policy and
// logger.
func (c *Codec) Verify(ctx context.Context, cases []vec3.Vec3, optFns ...verify.Option) (*verify.Report, error) {
	opts := append([]verify.Option{
		verify.WithDecodePolicy(c.decoder.Policy),
		verify.WithLogger(c.logger.Logger),
	}, optFns...)

	report, err := verify.Run(ctx, cases, opts...)
	if err != nil {
		return nil, err
	}

	c.metrics.RecordPack(report.Total)
	c.metrics.RecordUnpack(report.Total, countClamped(report.Results))
	c.logger.LogVerify(ctx, report)
	return report, nil
}

func clampedCount(words ...normal.Word) int {
	n := 0
	for _, w := range words {
		if normal.Clamped(w) {
			n++
		}
	}
	return n
}

func countClamped(results []verify.Result) int {
	n := 0
	for _, r := range results {
		if r.Clamped {
			n++
		}
	}
	return n
}
