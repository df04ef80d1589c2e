package gen

import (
	"math"
	"math/rand"

	"github.com/jbeda/geom"
	"github.com/zyedidia/generic/mapset"

	"github.com/verdantlabs/mowsim/internal/core"
	"github.com/verdantlabs/mowsim/internal/route"
)

// placeObstacles adds the configured number of squared and circled blocked
// clusters. Each obstacle gets a bounded number of placement attempts;
// obstacles that find no room are skipped, not fatal.
func placeObstacles(f *Field, rng *rand.Rand, p Params) {
	next := core.ClusterID(1)
	for i := 0; i < p.NumSquares; i++ {
		if placeSquareObstacle(f, rng, p, next) {
			next++
		} else {
			f.SkippedObstacles++
		}
	}
	for i := 0; i < p.NumCircles; i++ {
		if placeCircleObstacle(f, rng, p, next) {
			next++
		} else {
			f.SkippedObstacles++
		}
	}
}

func placeSquareObstacle(f *Field, rng *rand.Rand, p Params, id core.ClusterID) bool {
	g := f.Grid
	w := ceilDiv(float64(core.Variance(int(p.MinWidthSquare), int(p.MaxWidthSquare)))+p.MinWidthSquare, p.DimTassel)
	h := ceilDiv(float64(core.Variance(int(p.MinHeightSquare), int(p.MaxHeightSquare)))+p.MinHeightSquare, p.DimTassel)
	if w <= 0 || h <= 0 || w > g.Width() || h > g.Height() {
		return false
	}

	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		origin := core.Pos{X: rng.Intn(g.Width()), Y: rng.Intn(g.Height())}
		// Shift the footprint back inside the grid instead of rejecting
		// draws near the far edges.
		if origin.X+w > g.Width() {
			origin.X = g.Width() - w
		}
		if origin.Y+h > g.Height() {
			origin.Y = g.Height() - h
		}

		cells := make([]core.Pos, 0, w*h)
		ok := true
		for i := 0; i < w && ok; i++ {
			for j := 0; j < h; j++ {
				q := core.Pos{X: origin.X + i, Y: origin.Y + j}
				if !cellFree(g, q) {
					ok = false
					break
				}
				cells = append(cells, q)
			}
		}
		if !ok {
			continue
		}

		for _, q := range cells {
			g.Place(core.Marker{Kind: core.SquaredBlocked, Cluster: id}, q)
		}
		f.Clusters = append(f.Clusters, Cluster{
			ID:      id,
			Cells:   cells,
			Anchors: seedAnchors(g, cells),
		})
		return true
	}
	return false
}

func placeCircleObstacle(f *Field, rng *rand.Rand, p Params, id core.ClusterID) bool {
	g := f.Grid
	ray := float64(core.Variance(int(p.MinRay), int(p.MaxRay))) + p.MinRay
	rt := int(ray / p.DimTassel)
	if rt <= 0 {
		return false
	}

	for attempt := 0; attempt < maxPlacementAttempts; attempt++ {
		center := core.Pos{X: rng.Intn(g.Width()), Y: rng.Intn(g.Height())}

		cells := discCells(g, center, rt)
		if cells == nil {
			continue
		}

		for _, q := range cells {
			g.Place(core.Marker{Kind: core.CircledBlocked, Cluster: id, Radius: float64(rt)}, q)
		}
		f.Clusters = append(f.Clusters, Cluster{
			ID:      id,
			Cells:   cells,
			Anchors: seedRingAnchors(g, center, ray, rt, p.DimTassel),
		})
		return true
	}
	return false
}

// discCells collects the disc footprint around center, or nil when any
// cell is out of bounds or occupied.
func discCells(g *core.Grid, center core.Pos, rt int) []core.Pos {
	var cells []core.Pos
	for dx := -rt; dx <= rt; dx++ {
		for dy := -rt; dy <= rt; dy++ {
			if dx*dx+dy*dy > rt*rt {
				continue
			}
			q := core.Pos{X: center.X + dx, Y: center.Y + dy}
			if !cellFree(g, q) {
				return nil
			}
			cells = append(cells, q)
		}
	}
	return cells
}

// seedAnchors collects the Moore ring around an obstacle footprint and
// seeds each anchor cell as a guide line, so the router can latch the
// cluster onto the perimeter network.
func seedAnchors(g *core.Grid, cells []core.Pos) []core.Pos {
	footprint := mapset.New[core.Pos]()
	for _, c := range cells {
		footprint.Put(c)
	}

	seen := mapset.New[core.Pos]()
	var anchors []core.Pos
	for _, c := range cells {
		for _, nb := range g.Neighborhood(c, core.Moore, 1, false) {
			if footprint.Has(nb) || seen.Has(nb) {
				continue
			}
			seen.Put(nb)
			route.SetGuidelineCell(g, nb)
			anchors = append(anchors, nb)
		}
	}
	return anchors
}

// seedRingAnchors samples the circle one tassel outside the blocked disc at
// equally spaced angular midpoints, one sample per covered tassel of area.
func seedRingAnchors(g *core.Grid, center core.Pos, ray float64, rt int, dimTassel float64) []core.Pos {
	count := ceilDiv(math.Pi*ray*ray, dimTassel*dimTassel)
	if count <= 0 {
		return nil
	}

	c := geom.Coord{X: float64(center.X), Y: float64(center.Y)}
	seen := mapset.New[core.Pos]()
	var anchors []core.Pos
	for k := 0; k < count; k++ {
		theta := 2 * math.Pi * (float64(k) + 0.5) / float64(count)
		dir := geom.Coord{X: math.Cos(theta), Y: math.Sin(theta)}
		sample := c.Plus(dir.Times(float64(rt + 1)))

		q := core.Pos{X: int(math.Round(sample.X)), Y: int(math.Round(sample.Y))}
		if !g.WithinBounds(q) || seen.Has(q) {
			continue
		}
		seen.Put(q)
		route.SetGuidelineCell(g, q)
		anchors = append(anchors, q)
	}
	return anchors
}
