package gen

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"github.com/verdantlabs/mowsim/internal/core"
)

// placeIsolatedArea carves the isolated area into a randomly chosen grid
// corner and opens a randomized number of passages through its enclosure.
// A random opening becomes the field's reference corner.
func placeIsolatedArea(f *Field, rng *rand.Rand, p Params) {
	var cells []core.Pos
	var width int
	switch p.IsolatedShape {
	case ShapeCircle:
		cells, width = carveCircularArea(f.Grid, rng, p)
	default:
		cells, width = carveSquaredArea(f.Grid, rng, p)
	}
	if len(cells) == 0 {
		return
	}

	openings := placeOpenings(f.Grid, rng, enclosureOf(f.Grid, cells), width)
	if len(openings) > 0 {
		f.ReferenceCorner = openings[rng.Intn(len(openings))]
		f.HasReference = true
	}
}

// carveSquaredArea marks a rectangular isolated area anchored at one of the
// four grid corners, extending inward. Returns the carved cells and the
// area's width in tassels.
func carveSquaredArea(g *core.Grid, rng *rand.Rand, p Params) ([]core.Pos, int) {
	iw := sampleScaled(rng, p.IsolatedMinWidth, p.IsolatedMaxWidth, p.DimTassel)
	il := sampleScaled(rng, p.IsolatedMinLength, p.IsolatedMaxLength, p.DimTassel)
	if iw <= 0 || il <= 0 {
		return nil, 0
	}
	if iw > g.Width() {
		iw = g.Width()
	}
	if il > g.Height() {
		il = g.Height()
	}

	corner := core.Corners(g.Width(), g.Height())[rng.Intn(4)]
	sx, sy := 1, 1
	if corner.X > 0 {
		sx = -1
	}
	if corner.Y > 0 {
		sy = -1
	}

	var cells []core.Pos
	for i := 0; i < iw; i++ {
		for j := 0; j < il; j++ {
			q := core.Pos{X: corner.X + i*sx, Y: corner.Y + j*sy}
			if g.Place(core.Marker{Kind: core.IsolatedArea}, q) {
				cells = append(cells, q)
			}
		}
	}
	return cells, iw
}

// carveCircularArea marks a disc-shaped isolated area centered on one of
// the four grid corners, clipped to bounds. Returns the carved cells and
// the disc's diameter in tassels.
func carveCircularArea(g *core.Grid, rng *rand.Rand, p Params) ([]core.Pos, int) {
	r := sampleScaled(rng, p.MinRadius, p.MaxRadius, p.DimTassel)
	if r <= 0 {
		return nil, 0
	}

	center := core.Corners(g.Width(), g.Height())[rng.Intn(4)]
	var cells []core.Pos
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			q := core.Pos{X: center.X + dx, Y: center.Y + dy}
			if g.Place(core.Marker{Kind: core.IsolatedArea}, q) {
				cells = append(cells, q)
			}
		}
	}
	return cells, 2*r + 1
}

// enclosureOf returns the isolated cells facing the open field: every
// carved cell with at least one in-bounds Von Neumann neighbor outside the
// area, excluding cells sitting in a convex corner of the area itself.
func enclosureOf(g *core.Grid, cells []core.Pos) []core.Pos {
	area := mapset.New[core.Pos]()
	for _, c := range cells {
		area.Put(c)
	}

	var out []core.Pos
	for _, c := range cells {
		exposed := 0
		for _, nb := range g.Neighborhood(c, core.VonNeumann, 1, false) {
			if !area.Has(nb) {
				exposed++
			}
		}
		// Convex corners expose two sides; an opening there would not
		// widen the passage.
		if exposed == 1 {
			out = append(out, c)
		}
	}
	return out
}

// placeOpenings converts a randomized share of the enclosure into opening
// tassels. The budget is (1 + rng.Intn(width)) mod the grid width, so a
// degenerate zero-opening area stays possible. Consecutive enclosure cells
// are opened starting from a random index.
func placeOpenings(g *core.Grid, rng *rand.Rand, enclosure []core.Pos, width int) []core.Pos {
	if len(enclosure) == 0 || width <= 0 {
		return nil
	}
	budget := (1 + rng.Intn(width)) % g.Width()
	if budget > len(enclosure) {
		budget = len(enclosure)
	}

	start := rng.Intn(len(enclosure))
	var openings []core.Pos
	for k := 0; k < budget; k++ {
		c := enclosure[(start+k)%len(enclosure)]
		if g.Place(core.Marker{Kind: core.Opening}, c) {
			openings = append(openings, c)
		}
	}
	return openings
}
