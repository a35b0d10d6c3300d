// Package testutil provides testing utilities for normpack.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded, thread-safe RNG that generates unit normals.
//
//	rng := testutil.NewRNG(seed)
//	normals := rng.UnitNormals(1000)            // uniform on the sphere
//	normals = rng.UnitNormalsAwayFromEquator(1000, 0.05)
//	cube := rng.CubeNormals(100)                // normalize(uniform [-1,1)^3)
package testutil
