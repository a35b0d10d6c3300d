package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/normpack/blobstore"
	"github.com/hupe1980/normpack/internal/config"
)

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "normpack.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "normpack dev\n", out)
}

func TestPackUnpack(t *testing.T) {
	t.Run("three args", func(t *testing.T) {
		out, err := execute(t, "", "pack", "1", "0", "0")
		require.NoError(t, err)
		assert.Equal(t, "0xffff8000 4294934528\n", out)
	})

	t.Run("comma separated", func(t *testing.T) {
		out, err := execute(t, "", "pack", "1,0,0")
		require.NoError(t, err)
		assert.Equal(t, "0xffff8000 4294934528\n", out)
	})

	t.Run("negative after separator", func(t *testing.T) {
		out, err := execute(t, "", "pack", "--", "0", "0", "-1")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "0x"))
	})

	t.Run("normalize", func(t *testing.T) {
		out, err := execute(t, "", "pack", "--normalize", "2", "0", "0")
		require.NoError(t, err)
		assert.Equal(t, "0xffff8000 4294934528\n", out)
	})

	t.Run("wrong arity", func(t *testing.T) {
		_, err := execute(t, "", "pack", "1", "0")
		require.Error(t, err)
	})

	t.Run("bad component", func(t *testing.T) {
		_, err := execute(t, "", "pack", "1", "x", "0")
		require.Error(t, err)
	})

	t.Run("unpack hex", func(t *testing.T) {
		out, err := execute(t, "", "unpack", "0xffff8000")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "[ 1 3.05176e-05 0 ]"), out)
	})

	t.Run("unpack decimal", func(t *testing.T) {
		hex, err := execute(t, "", "unpack", "0xffff8000")
		require.NoError(t, err)
		dec, err := execute(t, "", "unpack", "4294934528")
		require.NoError(t, err)
		assert.Equal(t, hex, dec)
	})

	t.Run("unpack out of range", func(t *testing.T) {
		_, err := execute(t, "", "unpack", "4294967296")
		require.Error(t, err)
	})

	t.Run("strict rejects corner word", func(t *testing.T) {
		// x and y fields both at their maximum.
		_, err := execute(t, "", "unpack", "--policy", "strict", "0xfffffffe")
		require.Error(t, err)
	})

	t.Run("clamp reports corner word", func(t *testing.T) {
		out, err := execute(t, "", "unpack", "0xfffffffe")
		require.NoError(t, err)
		assert.Contains(t, out, "(clamped)")
	})
}

func TestVerify(t *testing.T) {
	t.Run("fixed cases pass", func(t *testing.T) {
		out, err := execute(t, "", "verify", "--random", "0")
		require.NoError(t, err)
		assert.Contains(t, out, "SUCCESS: [ 1 0 0 ] --> 4294934528")
		assert.Contains(t, out, "\nErrors: 0\n")
		assert.NotContains(t, out, ">>> FAIL")
	})

	t.Run("failures set exit code", func(t *testing.T) {
		out, err := execute(t, "", "verify", "--random", "0", "--epsilon", "1e-6")
		require.Error(t, err)

		var exitErr *exitError
		require.True(t, errors.As(err, &exitErr))
		assert.Greater(t, exitErr.code, 0)
		assert.LessOrEqual(t, exitErr.code, 125)
		assert.Contains(t, out, ">>> FAIL")
	})

	t.Run("json report", func(t *testing.T) {
		out, err := execute(t, "", "verify", "--random", "0", "--format", "json")
		require.NoError(t, err)

		var report map[string]any
		require.NoError(t, json.Unmarshal([]byte(out), &report))
		assert.EqualValues(t, 18, report["total"])
		assert.EqualValues(t, 0, report["failed"])
		assert.Equal(t, "clamp", report["policy"])
	})

	t.Run("report file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "report.msgpack")
		out, err := execute(t, "", "verify", "--random", "0", "--format", "msgpack", "--out", path)
		require.NoError(t, err)
		assert.Empty(t, out)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := execute(t, "", "verify", "--format", "xml")
		require.Error(t, err)
	})

	t.Run("non-positive epsilon", func(t *testing.T) {
		_, err := execute(t, "", "verify", "--epsilon", "0")
		require.Error(t, err)
	})

	t.Run("negative random", func(t *testing.T) {
		_, err := execute(t, "", "verify", "--random", "-1")
		require.Error(t, err)
	})
}

func TestArchiveCommands(t *testing.T) {
	input := `# unit axes
1 0 0

0 1 0
0 0 -1
`

	t.Run("memory backend round trip", func(t *testing.T) {
		name, err := execute(t, input, "encode", "-")
		require.NoError(t, err)
		name = strings.TrimSpace(name)
		assert.True(t, strings.HasSuffix(name, ".npk"), name)

		out, err := execute(t, "", "decode", name)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.True(t, strings.HasPrefix(lines[0], "1 "), lines[0])
		assert.True(t, strings.HasSuffix(lines[2], " -1"), lines[2])

		out, err = execute(t, "", "ls")
		require.NoError(t, err)
		assert.Contains(t, out, name)
	})

	t.Run("local backend with name", func(t *testing.T) {
		dir := t.TempDir()
		cfg := writeConfig(t, "store:\n  backend: local\n  path: "+dir+"\nstream:\n  compression: zstd\n")

		src := filepath.Join(t.TempDir(), "normals.txt")
		require.NoError(t, os.WriteFile(src, []byte(input), 0o600))

		out, err := execute(t, "", "--config", cfg, "encode", "--name", "axes.npk", src)
		require.NoError(t, err)
		assert.Equal(t, "axes.npk\n", out)

		out, err = execute(t, "", "--config", cfg, "ls", "--long")
		require.NoError(t, err)
		assert.Contains(t, out, "NAME")
		assert.Contains(t, out, "axes.npk")

		out, err = execute(t, "", "--config", cfg, "decode", "axes.npk")
		require.NoError(t, err)
		assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
	})

	t.Run("decode missing", func(t *testing.T) {
		_, err := execute(t, "", "decode", "missing.npk")
		require.Error(t, err)
	})

	t.Run("bad input line", func(t *testing.T) {
		_, err := execute(t, "1 0\n", "encode", "-")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 1")
	})
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		store, prefix, err := openStore(ctx, config.StoreConfig{Backend: config.BackendMemory, Prefix: "p"})
		require.NoError(t, err)
		assert.Same(t, memStore, store)
		assert.Equal(t, "p", prefix)
	})

	t.Run("local with cache", func(t *testing.T) {
		store, _, err := openStore(ctx, config.StoreConfig{
			Backend:      config.BackendLocal,
			Path:         t.TempDir(),
			CacheEntries: 8,
		})
		require.NoError(t, err)
		_, ok := store.(*blobstore.CachingStore)
		assert.True(t, ok)
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, _, err := openStore(ctx, config.StoreConfig{Backend: "ftp"})
		require.Error(t, err)
	})
}

func TestOpenArchive_Limits(t *testing.T) {
	cfg := writeConfig(t, "archive:\n  io_limit: 4096\n  max_concurrent: 3\n")

	a := &app{cfgFile: cfg, stderr: &bytes.Buffer{}}
	arc, _, _, err := a.openArchive(context.Background())
	require.NoError(t, err)

	maxConcurrent, ioLimit := arc.Limits()
	assert.Equal(t, int64(3), maxConcurrent)
	assert.Equal(t, int64(4096), ioLimit)

	a.cfgFile = writeConfig(t, "archive:\n  max_concurrent: -1\n")
	_, _, _, err = a.openArchive(context.Background())
	require.Error(t, err)
}
