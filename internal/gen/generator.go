// Package gen procedurally populates a grid with an isolated area and
// randomized obstacle clusters.
package gen

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/verdantlabs/mowsim/internal/core"
)

// Shape names for the isolated area.
const (
	ShapeSquare = "Square"
	ShapeCircle = "Circle"
)

// Params drives one field generation. Linear measures are in meters and
// are scaled to tassels via DimTassel.
type Params struct {
	Width, Height int // grid size in tassels
	DimTassel     float64

	IsolatedShape     string
	IsolatedMinWidth  float64
	IsolatedMaxWidth  float64
	IsolatedMinLength float64
	IsolatedMaxLength float64
	MinRadius         float64
	MaxRadius         float64

	NumSquares      int
	MinWidthSquare  float64
	MaxWidthSquare  float64
	MinHeightSquare float64
	MaxHeightSquare float64

	NumCircles int
	MinRay     float64
	MaxRay     float64
}

// Cluster is one obstacle instance: its cells plus the outward anchor
// candidates handed to the guideline router.
type Cluster struct {
	ID      core.ClusterID
	Cells   []core.Pos
	Anchors []core.Pos
}

// Field is the output of one generation run.
type Field struct {
	Grid *core.Grid

	// ReferenceCorner is a randomly chosen opening tassel of the isolated
	// area; HasReference is false in the degenerate no-openings case.
	ReferenceCorner core.Pos
	HasReference    bool

	Clusters       []Cluster
	LargestCluster []core.Pos

	// SkippedObstacles counts obstacles abandoned after the bounded
	// anchor search was exhausted.
	SkippedObstacles int
}

// maxPlacementAttempts caps every bounded random-position search.
const maxPlacementAttempts = 35

// Generate builds a fresh field. The RNG is threaded explicitly so runs
// are reproducible from a seed.
func Generate(rng *rand.Rand, p Params) (*Field, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("field dimensions must be positive, got %dx%d", p.Width, p.Height)
	}
	if p.DimTassel <= 0 {
		return nil, fmt.Errorf("tassel dimension must be positive, got %g", p.DimTassel)
	}

	f := &Field{Grid: core.NewGrid(p.Width, p.Height)}

	placeIsolatedArea(f, rng, p)
	placeObstacles(f, rng, p)
	f.LargestCluster = f.Grid.LargestCluster()
	return f, nil
}

// sampleScaled samples a length between min and its variance-widened
// bound and converts it to whole tassels.
func sampleScaled(rng *rand.Rand, min, max, dimTassel float64) int {
	spread := core.Variance(int(min), int(max))
	return int((min + float64(rng.Intn(spread+1))) / dimTassel)
}

// nearOpening reports whether any Moore neighbor of p holds an opening.
func nearOpening(g *core.Grid, p core.Pos) bool {
	for _, nb := range g.Neighborhood(p, core.Moore, 1, false) {
		if g.ContainsAny(nb, core.Opening) {
			return true
		}
	}
	return false
}

// cellFree reports whether p can host part of an obstacle: in bounds,
// empty of area markers, and not adjacent to an opening.
func cellFree(g *core.Grid, p core.Pos) bool {
	if !g.WithinBounds(p) {
		return false
	}
	if g.ContainsAny(p, core.IsolatedArea, core.SquaredBlocked, core.CircledBlocked, core.Opening, core.GuideLine) {
		return false
	}
	return !nearOpening(g, p)
}

func ceilDiv(a, b float64) int {
	if b <= 0 {
		return 0
	}
	return int(math.Ceil(a / b))
}
