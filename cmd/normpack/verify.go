package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hupe1980/normpack/codec"
	"github.com/hupe1980/normpack/vec3"
	"github.com/hupe1980/normpack/verify"
)

type verifyFlags struct {
	random  int
	seed    int64
	epsilon float32
	policy  string
	format  string
	out     string
}

func newVerifyCmd(a *app) *cobra.Command {
	f := &verifyFlags{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Round-trip the axis, diagonal and random test normals",
		Long: `Verify packs and unpacks the six unit axes, the twelve normalized
diagonals and --random uniformly drawn normals, comparing each component
against --epsilon.

The exit status is the number of failing cases, capped at 125.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("seed") {
				f.seed = time.Now().UnixNano()
			}
			return runVerify(cmd, a, f)
		},
	}

	cmd.Flags().IntVar(&f.random, "random", 100, "number of random normals")
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "random seed (default: time based)")
	cmd.Flags().Float32Var(&f.epsilon, "epsilon", vec3.Epsilon, "per-component tolerance")
	cmd.Flags().StringVar(&f.policy, "policy", "", "decode policy: clamp, nan or strict (default from config)")
	cmd.Flags().StringVar(&f.format, "format", "text", "output format: text, json, go-json or msgpack")
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "write the report to a file instead of stdout")

	return cmd
}

func runVerify(cmd *cobra.Command, a *app, f *verifyFlags) error {
	if f.random < 0 {
		return fmt.Errorf("--random must not be negative, got %d", f.random)
	}
	if f.epsilon <= 0 {
		return fmt.Errorf("--epsilon must be positive, got %g", f.epsilon)
	}

	cfg, err := a.loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := a.setupLogger()
	c, err := a.newCodec(cfg, f.policy, logger)
	if err != nil {
		return err
	}

	var enc codec.Codec
	if f.format != "text" {
		var ok bool
		if enc, ok = codec.ByName(f.format); !ok {
			return fmt.Errorf("unknown format %q", f.format)
		}
	}

	logger.Debug("verification started",
		"random", f.random,
		"seed", f.seed,
		"epsilon", f.epsilon,
		"policy", c.Policy().String(),
	)

	cases := verify.DefaultCases(rand.New(rand.NewSource(f.seed)), f.random)

	report, err := c.Verify(cmd.Context(), cases, verify.WithEpsilon(f.epsilon))
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if f.out != "" {
		file, err := os.Create(f.out)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer file.Close()
		w = file
	}

	if enc == nil {
		err = report.WriteText(w)
	} else {
		var data []byte
		if data, err = enc.Marshal(report); err == nil {
			_, err = w.Write(data)
		}
	}
	if err != nil {
		return fmt.Errorf("writing report: %w", err)
	}

	if code := report.ExitCode(); code != 0 {
		return &exitError{code: code}
	}
	return nil
}
