package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/hupe1980/normpack"
	"github.com/hupe1980/normpack/archive"
	"github.com/hupe1980/normpack/blobstore"
	"github.com/hupe1980/normpack/blobstore/minio"
	"github.com/hupe1980/normpack/blobstore/s3"
	"github.com/hupe1980/normpack/internal/config"
)

// memStore backs the memory backend for the lifetime of the process.
var memStore = blobstore.NewMemoryStore()

// app holds the state shared by all subcommands.
type app struct {
	cfgFile string
	verbose bool
	stderr  io.Writer
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "normpack",
		Short: "Pack unit normals into 32-bit words",
		Long: `normpack encodes unit normal vectors into 32-bit words (16 bits x,
15 bits y, 1 bit z sign), verifies the round trip and stores packed
normal streams on local disk, S3 or MinIO.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.stderr = cmd.ErrOrStderr()
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (YAML)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable verbose output")

	root.AddCommand(
		newVerifyCmd(a),
		newPackCmd(a),
		newUnpackCmd(a),
		newEncodeCmd(a),
		newDecodeCmd(a),
		newLsCmd(a),
		newVersionCmd(),
	)

	return root
}

func (a *app) setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if a.verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(a.stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

func (a *app) loadConfig() (*config.Config, error) {
	if a.cfgFile == "" {
		return config.Default(), nil
	}
	return config.Load(a.cfgFile)
}

// newCodec builds a codec from the config, with policy overriding the
// configured decode policy when non-empty.
func (a *app) newCodec(cfg *config.Config, policy string, logger *slog.Logger) (*normpack.Codec, error) {
	if policy != "" {
		cfg.Decode.Policy = policy
	}
	p, err := cfg.Decode.PolicyValue()
	if err != nil {
		return nil, err
	}
	c, err := cfg.Stream.CompressionValue()
	if err != nil {
		return nil, err
	}

	return normpack.New(
		normpack.WithDecodePolicy(p),
		normpack.WithCompression(c),
		normpack.WithLogger(&normpack.Logger{Logger: logger}),
	), nil
}

// openStore creates the configured blob store. The returned prefix still has
// to be applied by the caller; remote stores apply it themselves and return "".
func openStore(ctx context.Context, cfg config.StoreConfig) (blobstore.BlobStore, string, error) {
	var (
		store  blobstore.BlobStore
		prefix string
	)

	switch cfg.Backend {
	case config.BackendMemory:
		store, prefix = memStore, cfg.Prefix
	case config.BackendLocal:
		store, prefix = blobstore.NewLocalStore(cfg.Path), cfg.Prefix
	case config.BackendS3:
		opts := []s3.Option{s3.WithPrefix(cfg.Prefix)}
		if cfg.Region != "" {
			opts = append(opts, s3.WithRegion(cfg.Region))
		}
		if cfg.Endpoint != "" {
			opts = append(opts, s3.WithEndpoint(cfg.Endpoint))
		}
		s, err := s3.New(ctx, cfg.Bucket, opts...)
		if err != nil {
			return nil, "", fmt.Errorf("creating s3 store: %w", err)
		}
		store = s
	case config.BackendMinio:
		client, err := minio.Dial(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey, cfg.UseSSL)
		if err != nil {
			return nil, "", fmt.Errorf("creating minio client: %w", err)
		}
		store = minio.NewStore(client, cfg.Bucket, cfg.Prefix)
	default:
		return nil, "", fmt.Errorf("unknown store backend %q", cfg.Backend)
	}

	if cfg.CacheEntries > 0 {
		cs, err := blobstore.NewCachingStore(store, cfg.CacheEntries)
		if err != nil {
			return nil, "", err
		}
		store = cs
	}

	return store, prefix, nil
}

// openArchive loads the config and opens the archive it describes.
func (a *app) openArchive(ctx context.Context) (*archive.Archive, *config.Config, *normpack.Logger, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	compression, err := cfg.Stream.CompressionValue()
	if err != nil {
		return nil, nil, nil, err
	}

	store, prefix, err := openStore(ctx, cfg.Store)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := &normpack.Logger{Logger: a.setupLogger()}

	arc := archive.New(store,
		archive.WithPrefix(prefix),
		archive.WithCompression(compression),
		archive.WithIOLimit(cfg.Archive.IOLimit),
		archive.WithMaxConcurrent(cfg.Archive.MaxConcurrent),
		archive.WithLogger(logger.WithComponent("archive").Logger),
	)
	return arc, cfg, logger, nil
}
