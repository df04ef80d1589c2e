// Package route builds the guideline network: the grid perimeter trace and
// the shortest connections from obstacle clusters to the perimeter.
package route

import (
	"github.com/kyroy/kdtree"
	"github.com/kyroy/kdtree/points"

	"github.com/verdantlabs/mowsim/internal/core"
)

// guidelineBlockers are the kinds a GuideLine must never be placed over.
var guidelineBlockers = []core.MarkerKind{
	core.CircledBlocked,
	core.SquaredBlocked,
	core.IsolatedArea,
	core.BaseStation,
	core.GuideLine,
}

// SetGuidelineCell places a GuideLine at p unless the cell is out of
// bounds or already holds a blocking marker, a station, or a guide line.
func SetGuidelineCell(g *core.Grid, p core.Pos) bool {
	if !g.WithinBounds(p) {
		return false
	}
	if g.ContainsAny(p, guidelineBlockers...) {
		return false
	}
	return g.Place(core.Marker{Kind: core.GuideLine}, p)
}

// PerimeterCells returns every cell on the four border edges.
func PerimeterCells(g *core.Grid) []core.Pos {
	w, h := g.Width(), g.Height()
	var out []core.Pos
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			if x == 0 || x == w-1 || y == 0 || y == h-1 {
				out = append(out, core.Pos{X: x, Y: y})
			}
		}
	}
	return out
}

// TracePerimeter places a GuideLine on every unblocked border cell and
// returns the number of cells marked.
func TracePerimeter(g *core.Grid) int {
	placed := 0
	for _, p := range PerimeterCells(g) {
		if SetGuidelineCell(g, p) {
			placed++
		}
	}
	return placed
}

// DrawLine rasterizes the segment from a to b with Bresenham's algorithm,
// placing a GuideLine on every traversed cell that is not blocked. The
// returned path always includes both endpoints, in traversal order.
func DrawLine(g *core.Grid, a, b core.Pos) []core.Pos {
	dx := abs(b.X - a.X)
	dy := abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X >= b.X {
		sx = -1
	}
	if a.Y >= b.Y {
		sy = -1
	}

	x, y := a.X, a.Y
	err := dx - dy
	var path []core.Pos
	for {
		p := core.Pos{X: x, Y: y}
		path = append(path, p)
		SetGuidelineCell(g, p)
		if x == b.X && y == b.Y {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
	return path
}

// anchorPoint adapts a grid cell to the k-d tree point interface.
type anchorPoint struct {
	pos core.Pos
}

func (a *anchorPoint) Dimensions() int { return 2 }

func (a *anchorPoint) Dimension(i int) float64 {
	if i == 0 {
		return float64(a.pos.X)
	}
	return float64(a.pos.Y)
}

// NearestPerimeterPair finds the (anchor, perimeter cell) pair with
// globally minimal Euclidean distance. It builds a nearest-neighbor index
// over the anchors and queries every perimeter cell against it. Returns
// false when the anchor set is empty.
func NearestPerimeterPair(g *core.Grid, anchors []core.Pos) (anchor, perimeter core.Pos, ok bool) {
	if len(anchors) == 0 {
		return core.Pos{}, core.Pos{}, false
	}
	pts := make([]kdtree.Point, len(anchors))
	for i, a := range anchors {
		pts[i] = &anchorPoint{pos: a}
	}
	tree := kdtree.New(pts)

	best := -1.0
	for _, pc := range PerimeterCells(g) {
		nn := tree.KNN(&points.Point2D{X: float64(pc.X), Y: float64(pc.Y)}, 1)
		if len(nn) == 0 {
			continue
		}
		cand := nn[0].(*anchorPoint).pos
		if d := core.Euclidean(cand, pc); best < 0 || d < best {
			anchor, perimeter, best = cand, pc, d
		}
	}
	return anchor, perimeter, best >= 0
}

// ConnectToPerimeter links a cluster's anchor candidates to the grid
// perimeter. Anchors already sitting on the perimeter need no connection.
// Returns the drawn path, or nil when nothing was drawn.
func ConnectToPerimeter(g *core.Grid, anchors []core.Pos) []core.Pos {
	if len(anchors) == 0 {
		return nil
	}
	w, h := g.Width(), g.Height()
	for _, a := range anchors {
		if a.X == 0 || a.X == w-1 || a.Y == 0 || a.Y == h-1 {
			return nil
		}
	}
	anchor, perimeter, ok := NearestPerimeterPair(g, anchors)
	if !ok {
		return nil
	}
	return DrawLine(g, anchor, perimeter)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
