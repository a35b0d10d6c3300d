package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hupe1980/normpack/vec3"
)

func newEncodeCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "encode FILE",
		Short: "Store the normals of FILE as a packed stream",
		Long: `Encode reads one normal per line ("x y z", blank lines and lines
starting with # are skipped) from FILE, or stdin when FILE is "-", packs them
and stores the stream in the configured archive. It prints the stream name,
which is content addressed unless --name is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			normals, err := readNormals(r)
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			arc, _, logger, err := a.openArchive(ctx)
			if err != nil {
				return err
			}

			if name == "" {
				name, err = arc.Save(ctx, normals)
			} else {
				err = arc.SaveAs(ctx, name, normals)
			}
			logger.LogArchive(ctx, "save", name, err)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "store under this name instead of the content hash")
	return cmd
}

func newDecodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "decode NAME",
		Short: "Print the normals of an archived stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			arc, _, logger, err := a.openArchive(ctx)
			if err != nil {
				return err
			}

			normals, err := arc.Load(ctx, args[0])
			logger.LogArchive(ctx, "load", args[0], err)
			if err != nil {
				return err
			}

			w := bufio.NewWriter(cmd.OutOrStdout())
			for _, v := range normals {
				fmt.Fprintf(w, "%.6g %.6g %.6g\n", v.X, v.Y, v.Z)
			}
			return w.Flush()
		},
	}
}

func newLsCmd(a *app) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "ls",
		Short: "List archived streams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			arc, _, _, err := a.openArchive(ctx)
			if err != nil {
				return err
			}

			names, err := arc.List(ctx)
			if err != nil {
				return err
			}

			if !long {
				for _, n := range names {
					fmt.Fprintln(cmd.OutOrStdout(), n)
				}
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCOUNT\tCOMPRESSION\tBYTES")
			for _, n := range names {
				h, err := arc.Stat(ctx, n)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%d\t%s\t%d\n", n, h.Count, h.Compression, h.Size())
			}
			return w.Flush()
		},
	}

	cmd.Flags().BoolVarP(&long, "long", "l", false, "show count, compression and size")
	return cmd
}

// readNormals parses "x y z" lines.
func readNormals(r io.Reader) ([]vec3.Vec3, error) {
	var normals []vec3.Vec3

	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		v, err := parseVec3(strings.Fields(text))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		normals = append(normals, v)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return normals, nil
}
