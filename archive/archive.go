package archive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hupe1980/normpack/blobstore"
	"github.com/hupe1980/normpack/internal/resource"
	"github.com/hupe1980/normpack/normal"
	"github.com/hupe1980/normpack/stream"
	"github.com/hupe1980/normpack/vec3"
)

// Ext is the file extension of archived streams.
const Ext = ".npk"

// ErrInvalidName is returned for empty stream names.
var ErrInvalidName = errors.New("archive: invalid stream name")

// Archive reads and writes normal streams on a blob store.
type Archive struct {
	store       blobstore.BlobStore
	prefix      string
	compression stream.Compression
	quantizer   *normal.Quantizer
	rc          *resource.Controller
	logger      *slog.Logger
}

type options struct {
	prefix        string
	compression   stream.Compression
	quantizer     *normal.Quantizer
	ioLimit       int64
	maxConcurrent int64
	logger        *slog.Logger
}

// Option configures an Archive.
type Option func(*options)

// WithPrefix places every stream under prefix.
func WithPrefix(prefix string) Option {
	return func(o *options) { o.prefix = prefix }
}

// WithCompression sets the payload compression for saved streams.
func WithCompression(c stream.Compression) Option {
	return func(o *options) { o.compression = c }
}

// WithQuantizer sets the quantizer used to pack and unpack normals.
func WithQuantizer(q *normal.Quantizer) Option {
	return func(o *options) { o.quantizer = q }
}

// WithIOLimit caps the bytes per second written to and read from the store.
func WithIOLimit(bytesPerSec int64) Option {
	return func(o *options) { o.ioLimit = bytesPerSec }
}

// WithMaxConcurrent caps the number of store operations in flight.
func WithMaxConcurrent(n int64) Option {
	return func(o *options) { o.maxConcurrent = n }
}

// WithLogger sets the logger. The default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// New creates an Archive on store.
func New(store blobstore.BlobStore, optFns ...Option) *Archive {
	o := options{compression: stream.CompressionNone}
	for _, fn := range optFns {
		fn(&o)
	}

	if o.quantizer == nil {
		o.quantizer = normal.NewQuantizer()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}

	return &Archive{
		store:       store,
		prefix:      o.prefix,
		compression: o.compression,
		quantizer:   o.quantizer,
		rc: resource.NewController(resource.Config{
			MaxConcurrent:      o.maxConcurrent,
			IOLimitBytesPerSec: o.ioLimit,
		}),
		logger: o.logger,
	}
}

// Save packs normals and stores them under a content-addressed name, which it
// returns.
func (a *Archive) Save(ctx context.Context, normals []vec3.Vec3) (string, error) {
	words, err := a.quantizer.PackAll(ctx, normals)
	if err != nil {
		return "", err
	}

	name := fmt.Sprintf("%016x%s", stream.Fingerprint(words), Ext)
	if err := a.putWords(ctx, name, words); err != nil {
		return "", err
	}
	return name, nil
}

// SaveAs packs normals and stores them under name. The extension is added when
// missing.
func (a *Archive) SaveAs(ctx context.Context, name string, normals []vec3.Vec3) error {
	if name == "" {
		return ErrInvalidName
	}

	words, err := a.quantizer.PackAll(ctx, normals)
	if err != nil {
		return err
	}
	return a.putWords(ctx, withExt(name), words)
}

// SaveWords stores already packed words under name.
func (a *Archive) SaveWords(ctx context.Context, name string, words []normal.Word) error {
	if name == "" {
		return ErrInvalidName
	}
	return a.putWords(ctx, withExt(name), words)
}

// Load reads the stream called name and unpacks its normals.
func (a *Archive) Load(ctx context.Context, name string) ([]vec3.Vec3, error) {
	words, err := a.LoadWords(ctx, name)
	if err != nil {
		return nil, err
	}
	return a.quantizer.UnpackAll(ctx, words)
}

// LoadWords reads the stream called name without unpacking it.
func (a *Archive) LoadWords(ctx context.Context, name string) ([]normal.Word, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	name = withExt(name)

	data, err := a.get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("archive: load %s: %w", name, err)
	}

	words, h, err := stream.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("archive: load %s: %w", name, err)
	}

	a.logger.LogAttrs(ctx, slog.LevelDebug, "stream loaded",
		slog.String("name", name),
		slog.Int("count", int(h.Count)),
		slog.String("compression", h.Compression.String()),
		slog.Int("bytes", len(data)),
	)
	return words, nil
}

// Stat returns the header of the stream called name.
func (a *Archive) Stat(ctx context.Context, name string) (stream.Header, error) {
	if name == "" {
		return stream.Header{}, ErrInvalidName
	}
	name = withExt(name)

	data, err := a.get(ctx, name)
	if err != nil {
		return stream.Header{}, fmt.Errorf("archive: stat %s: %w", name, err)
	}
	return stream.ParseHeader(data)
}

// List returns the sorted names of all archived streams, without the prefix.
func (a *Archive) List(ctx context.Context) ([]string, error) {
	if err := a.rc.Acquire(ctx); err != nil {
		return nil, err
	}
	defer a.rc.Release()

	keys, err := a.store.List(ctx, a.prefix)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(keys))
	for _, k := range keys {
		if strings.HasSuffix(k, Ext) {
			names = append(names, strings.TrimPrefix(k, a.prefix))
		}
	}
	return names, nil
}

// Delete removes the stream called name. Deleting a missing stream succeeds.
func (a *Archive) Delete(ctx context.Context, name string) error {
	if name == "" {
		return ErrInvalidName
	}

	if err := a.rc.Acquire(ctx); err != nil {
		return err
	}
	defer a.rc.Release()

	return a.store.Delete(ctx, a.prefix+withExt(name))
}

// IOBytes returns the number of bytes moved to and from the store.
func (a *Archive) IOBytes() int64 { return a.rc.IOBytes() }

// Limits returns the configured concurrency cap and IO rate. Zero means
// unlimited.
func (a *Archive) Limits() (maxConcurrent, ioBytesPerSec int64) {
	cfg := a.rc.Config()
	return cfg.MaxConcurrent, cfg.IOLimitBytesPerSec
}

func (a *Archive) putWords(ctx context.Context, name string, words []normal.Word) error {
	data, err := stream.Encode(words, stream.WithCompression(a.compression))
	if err != nil {
		return err
	}

	if err := a.rc.Acquire(ctx); err != nil {
		return err
	}
	defer a.rc.Release()

	if err := a.rc.AcquireIO(ctx, len(data)); err != nil {
		return err
	}

	if err := a.store.Put(ctx, a.prefix+name, data); err != nil {
		return fmt.Errorf("archive: save %s: %w", name, err)
	}

	a.logger.LogAttrs(ctx, slog.LevelDebug, "stream saved",
		slog.String("name", name),
		slog.Int("count", len(words)),
		slog.Int("bytes", len(data)),
	)
	return nil
}

func (a *Archive) get(ctx context.Context, name string) ([]byte, error) {
	if err := a.rc.Acquire(ctx); err != nil {
		return nil, err
	}
	defer a.rc.Release()

	data, err := a.store.Get(ctx, a.prefix+name)
	if err != nil {
		return nil, err
	}

	if err := a.rc.AcquireIO(ctx, len(data)); err != nil {
		return nil, err
	}
	return data, nil
}

func withExt(name string) string {
	if strings.HasSuffix(name, Ext) {
		return name
	}
	return name + Ext
}
