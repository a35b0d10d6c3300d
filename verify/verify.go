package verify

import (
	"context"
	"log/slog"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/google/uuid"

	"github.com/hupe1980/normpack/normal"
	"github.com/hupe1980/normpack/vec3"
)

// MaxExitCode is the largest exit status ExitCode returns.
const MaxExitCode = 125

// Result is the outcome of one case.
type Result struct {
	Input   vec3.Vec3   `json:"input" msgpack:"input"`
	Word    normal.Word `json:"word" msgpack:"word"`
	Output  vec3.Vec3   `json:"output" msgpack:"output"`
	Error   float32     `json:"error" msgpack:"error"`
	Clamped bool        `json:"clamped,omitempty" msgpack:"clamped,omitempty"`
	OK      bool        `json:"ok" msgpack:"ok"`
	// DecodeError is set when strict decoding rejected the word.
	DecodeError string `json:"decode_error,omitempty" msgpack:"decode_error,omitempty"`
}

// Report summarizes a run.
type Report struct {
	RunID    uuid.UUID `json:"run_id" msgpack:"run_id"`
	Epsilon  float32   `json:"epsilon" msgpack:"epsilon"`
	Policy   string    `json:"policy" msgpack:"policy"`
	Total    int       `json:"total" msgpack:"total"`
	Failed   int       `json:"failed" msgpack:"failed"`
	MaxError float32   `json:"max_error" msgpack:"max_error"`
	// FailedCases lists the indices of failing cases in ascending order.
	FailedCases []uint32 `json:"failed_cases" msgpack:"failed_cases"`
	Results     []Result `json:"results" msgpack:"results"`

	// Failures holds the same indices as FailedCases.
	Failures *roaring.Bitmap `json:"-" msgpack:"-"`
}

// Passed returns the number of passing cases.
func (r *Report) Passed() int { return r.Total - r.Failed }

// OK reports whether every case passed.
func (r *Report) OK() bool { return r.Failed == 0 }

// ExitCode returns the failure count, capped at MaxExitCode.
func (r *Report) ExitCode() int {
	return min(r.Failed, MaxExitCode)
}

// Failure reports whether case i failed.
func (r *Report) Failure(i int) bool {
	if r.Failures == nil || i < 0 {
		return false
	}
	return r.Failures.Contains(uint32(i))
}

type options struct {
	epsilon float32
	policy  normal.DecodePolicy
	logger  *slog.Logger
}

// Option configures Run.
type Option func(*options)

// WithEpsilon sets the per-component tolerance. The default is vec3.Epsilon.
func WithEpsilon(eps float32) Option {
	return func(o *options) {
		if eps > 0 {
			o.epsilon = eps
		}
	}
}

// WithDecodePolicy sets how words outside the unit disk are decoded.
func WithDecodePolicy(p normal.DecodePolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithLogger logs each case at debug level and each failure at warn level.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Run checks every case. It returns early only when ctx is canceled.
func Run(ctx context.Context, cases []vec3.Vec3, optFns ...Option) (*Report, error) {
	o := options{epsilon: vec3.Epsilon, policy: normal.PolicyClamp}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	report := &Report{
		RunID:    uuid.New(),
		Epsilon:  o.epsilon,
		Policy:   o.policy.String(),
		Total:    len(cases),
		Failures: roaring.New(),
		Results:  make([]Result, len(cases)),
	}

	logger := o.logger.With(slog.String("run_id", report.RunID.String()))
	dec := normal.Decoder{Policy: o.policy}

	for i, in := range cases {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		res := check(dec, in, o.epsilon)
		report.Results[i] = res

		if res.Error > report.MaxError {
			report.MaxError = res.Error
		}

		attrs := []slog.Attr{
			slog.Int("case", i),
			slog.String("input", Format(res.Input)),
			slog.String("word", res.Word.String()),
			slog.String("output", Format(res.Output)),
			slog.Float64("error", float64(res.Error)),
		}
		if res.OK {
			logger.LogAttrs(ctx, slog.LevelDebug, "case passed", attrs...)
			continue
		}

		report.Failed++
		report.Failures.Add(uint32(i))
		if res.DecodeError != "" {
			attrs = append(attrs, slog.String("decode_error", res.DecodeError))
		}
		logger.LogAttrs(ctx, slog.LevelWarn, "case failed", attrs...)
	}

	report.FailedCases = report.Failures.ToArray()

	logger.LogAttrs(ctx, slog.LevelInfo, "verification finished",
		slog.Int("total", report.Total),
		slog.Int("failed", report.Failed),
		slog.Float64("max_error", float64(report.MaxError)),
	)
	return report, nil
}

func check(dec normal.Decoder, in vec3.Vec3, eps float32) Result {
	w := normal.Pack(in)
	out, err := dec.Decode(w)

	res := Result{
		Input:   in,
		Word:    w,
		Output:  out,
		Error:   in.MaxAbsDiff(out),
		Clamped: normal.Clamped(w),
	}
	if err != nil {
		res.DecodeError = err.Error()
		return res
	}

	res.OK = in.ApproxEqualEps(out, eps)
	return res
}
