// Package verify runs round-trip checks of the normal codec.
//
// Each case is packed, unpacked and compared component-wise with the input.
// The fixed cases are the six unit axes and twelve normalized diagonals that
// lie in a coordinate plane; RandomCases adds normalized vectors drawn
// uniformly from the cube [-1, 1)³.
//
//	cases := append(verify.AxisCases(), verify.DiagonalCases()...)
//	cases = append(cases, verify.RandomCases(rand.New(rand.NewSource(1)), 100)...)
//	report, err := verify.Run(ctx, cases)
//	report.WriteText(os.Stdout)
//	os.Exit(report.ExitCode())
package verify
