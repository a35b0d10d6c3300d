package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/normpack/normal"
	"github.com/hupe1980/normpack/vec3"
	"github.com/hupe1980/normpack/verify"
)

func newPackCmd(a *app) *cobra.Command {
	var normalize bool

	cmd := &cobra.Command{
		Use:   "pack X Y Z",
		Short: "Pack a normal and print the word",
		Long: `Pack encodes one normal and prints the word in hex and decimal.
Components may also be given as a single "x,y,z" argument. Put "--" before
negative values so they are not read as flags:

  normpack pack -- -1 0 0`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseVec3(args)
			if err != nil {
				return err
			}
			if normalize {
				v = v.Normalize()
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			c, err := a.newCodec(cfg, "", a.setupLogger())
			if err != nil {
				return err
			}

			w := c.Pack(v)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", w, uint32(w))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&normalize, "normalize", "n", false, "normalize the vector before packing")
	return cmd
}

func newUnpackCmd(a *app) *cobra.Command {
	var policy string

	cmd := &cobra.Command{
		Use:   "unpack WORD",
		Short: "Unpack a word (decimal or 0x-hex) and print the normal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := strconv.ParseUint(args[0], 0, 32)
			if err != nil {
				return fmt.Errorf("invalid word %q: %w", args[0], err)
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			c, err := a.newCodec(cfg, policy, a.setupLogger())
			if err != nil {
				return err
			}

			w := normal.Word(u)
			v, err := c.Unpack(w)
			if err != nil {
				return err
			}

			out := verify.Format(v)
			if normal.Clamped(w) {
				out += " (clamped)"
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&policy, "policy", "", "decode policy: clamp, nan or strict (default from config)")
	return cmd
}

// parseVec3 reads three components from either three arguments or a single
// comma separated one.
func parseVec3(args []string) (vec3.Vec3, error) {
	fields := args
	if len(args) == 1 {
		fields = strings.Split(args[0], ",")
	}
	if len(fields) != 3 {
		return vec3.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}

	var c [3]float32
	for i, s := range fields {
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 32)
		if err != nil {
			return vec3.Vec3{}, fmt.Errorf("invalid component %q: %w", s, err)
		}
		c[i] = float32(f)
	}
	return vec3.New(c[0], c[1], c[2]), nil
}
