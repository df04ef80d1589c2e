// Package main generates deterministic field layouts for benchmarks.
// Each layout is written as a JSON shape file that mowsim batches can
// replay instead of generating fresh maps.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/verdantlabs/mowsim/internal/gen"
)

func main() {
	seed := flag.Int64("seed", 42, "Random seed for deterministic generation")
	count := flag.Int("count", 5, "Number of field layouts to generate")
	width := flag.Int("width", 60, "Grid width in tassels")
	height := flag.Int("height", 40, "Grid height in tassels")
	dimTassel := flag.Float64("dim-tassel", 0.5, "Tassel side in meters")
	shape := flag.String("shape", gen.ShapeSquare, "Isolated area shape (Square or Circle)")
	squares := flag.Int("squares", 2, "Number of squared obstacles")
	circles := flag.Int("circles", 1, "Number of circled obstacles")
	outputDir := flag.String("output", "testdata", "Output directory")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	params := gen.Params{
		Width:     *width,
		Height:    *height,
		DimTassel: *dimTassel,

		IsolatedShape:     *shape,
		IsolatedMinWidth:  2,
		IsolatedMaxWidth:  6,
		IsolatedMinLength: 2,
		IsolatedMaxLength: 6,
		MinRadius:         1,
		MaxRadius:         3,

		NumSquares:      *squares,
		MinWidthSquare:  1,
		MaxWidthSquare:  3,
		MinHeightSquare: 1,
		MaxHeightSquare: 3,

		NumCircles: *circles,
		MinRay:     1,
		MaxRay:     2,
	}

	rng := rand.New(rand.NewSource(*seed))
	for i := 0; i < *count; i++ {
		field, err := gen.Generate(rng, params)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating field %d: %v\n", i, err)
			os.Exit(1)
		}

		name := fmt.Sprintf("field_%dx%d_%d_%02d.json", *width, *height, *seed, i)
		path := filepath.Join(*outputDir, name)
		if err := gen.SaveShape(path, field.Shape()); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", path, err)
			os.Exit(1)
		}

		fmt.Printf("Generated: %s (%d clusters, %d skipped, reference=%v)\n",
			path, len(field.Clusters), field.SkippedObstacles, field.HasReference)
	}
}
