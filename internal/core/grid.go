package core

// Grid is the cell/resource store for one map. It is owned by exactly one
// pipeline stage at a time (generation, routing, placement, simulation);
// parallel experiment branches each take a Clone.
type Grid struct {
	width, height int
	cells         [][][]Marker
}

// NewGrid creates an empty width x height grid.
func NewGrid(width, height int) *Grid {
	cells := make([][][]Marker, width)
	for x := range cells {
		cells[x] = make([][]Marker, height)
	}
	return &Grid{width: width, height: height, cells: cells}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// WithinBounds reports whether p is inside the grid.
func (g *Grid) WithinBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Place adds a marker at p. Out-of-bounds placements are a no-op and
// return false; grid access never panics.
func (g *Grid) Place(m Marker, p Pos) bool {
	if !g.WithinBounds(p) {
		return false
	}
	g.cells[p.X][p.Y] = append(g.cells[p.X][p.Y], m)
	return true
}

// MarkersAt returns the markers at p. The slice aliases grid storage and
// must not be mutated by callers.
func (g *Grid) MarkersAt(p Pos) []Marker {
	if !g.WithinBounds(p) {
		return nil
	}
	return g.cells[p.X][p.Y]
}

// ContainsAny reports whether the cell at p holds a marker of any of the
// given kinds. Out-of-bounds positions contain nothing.
func (g *Grid) ContainsAny(p Pos, kinds ...MarkerKind) bool {
	if !g.WithinBounds(p) {
		return false
	}
	for _, m := range g.cells[p.X][p.Y] {
		for _, k := range kinds {
			if m.Kind == k {
				return true
			}
		}
	}
	return false
}

// Blocked reports whether p is impassable: it holds a squared or circled
// obstacle, or an isolated-area marker without a co-located opening.
func (g *Grid) Blocked(p Pos) bool {
	if g.ContainsAny(p, SquaredBlocked, CircledBlocked) {
		return true
	}
	return g.ContainsAny(p, IsolatedArea) && !g.ContainsAny(p, Opening)
}

// Empty reports whether the cell at p holds no markers at all.
func (g *Grid) Empty(p Pos) bool {
	return g.WithinBounds(p) && len(g.cells[p.X][p.Y]) == 0
}

// Neighborhood returns the positions within the given Chebyshev (Moore) or
// Manhattan (VonNeumann) radius of p, clipped to grid bounds.
func (g *Grid) Neighborhood(p Pos, kind NeighborhoodKind, radius int, includeCenter bool) []Pos {
	if radius < 0 {
		return nil
	}
	var out []Pos
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			if dx == 0 && dy == 0 && !includeCenter {
				continue
			}
			if kind == VonNeumann && abs(dx)+abs(dy) > radius {
				continue
			}
			q := Pos{p.X + dx, p.Y + dy}
			if g.WithinBounds(q) {
				out = append(out, q)
			}
		}
	}
	return out
}

// Clone returns a deep copy of the grid. Each experiment branch mutates
// its own clone.
func (g *Grid) Clone() *Grid {
	c := NewGrid(g.width, g.height)
	for x := range g.cells {
		for y := range g.cells[x] {
			if len(g.cells[x][y]) == 0 {
				continue
			}
			c.cells[x][y] = append([]Marker(nil), g.cells[x][y]...)
		}
	}
	return c
}

// SeedGrass places a GrassTassel on every cell not covered by an obstacle,
// mirroring the pre-simulation pass that turns the field mowable.
func (g *Grid) SeedGrass() {
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			p := Pos{x, y}
			if g.ContainsAny(p, GrassTassel, SquaredBlocked, CircledBlocked) {
				continue
			}
			g.Place(Marker{Kind: GrassTassel}, p)
		}
	}
}

// IncrementCut bumps the cut count of the grass tassel at p, if any.
func (g *Grid) IncrementCut(p Pos) bool {
	if !g.WithinBounds(p) {
		return false
	}
	for i := range g.cells[p.X][p.Y] {
		if g.cells[p.X][p.Y][i].Kind == GrassTassel {
			g.cells[p.X][p.Y][i].CutCount++
			return true
		}
	}
	return false
}

// CutCounts returns the per-cell grass cut counts as a [width][height]
// matrix. Cells without grass report zero.
func (g *Grid) CutCounts() [][]int {
	counts := make([][]int, g.width)
	for x := range counts {
		counts[x] = make([]int, g.height)
		for y := range counts[x] {
			for _, m := range g.cells[x][y] {
				if m.Kind == GrassTassel {
					counts[x][y] = m.CutCount
					break
				}
			}
		}
	}
	return counts
}

// ClusterCells returns every cell belonging to the given obstacle cluster.
func (g *Grid) ClusterCells(id ClusterID) []Pos {
	var out []Pos
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			for _, m := range g.cells[x][y] {
				if (m.Kind == SquaredBlocked || m.Kind == CircledBlocked) && m.Cluster == id {
					out = append(out, Pos{x, y})
					break
				}
			}
		}
	}
	return out
}

// LargestCluster returns the cells of the biggest obstacle cluster, or nil
// when the grid holds no obstacles.
func (g *Grid) LargestCluster() []Pos {
	sizes := make(map[ClusterID]int)
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			for _, m := range g.cells[x][y] {
				if m.Kind == SquaredBlocked || m.Kind == CircledBlocked {
					sizes[m.Cluster]++
					break
				}
			}
		}
	}
	best, bestSize := ClusterID(0), 0
	for id, n := range sizes {
		if n > bestSize || (n == bestSize && id < best) {
			best, bestSize = id, n
		}
	}
	if bestSize == 0 {
		return nil
	}
	return g.ClusterCells(best)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
