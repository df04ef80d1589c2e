// Package station places the base station and hooks it into the guideline
// network.
package station

import (
	"fmt"
	"math/rand"

	"github.com/verdantlabs/mowsim/internal/core"
	"github.com/verdantlabs/mowsim/internal/route"
)

// Strategy selects how the base station position is chosen.
type Strategy int

const (
	// PerimeterPair puts the station on a random point of the two border
	// axes.
	PerimeterPair Strategy = iota
	// BiggestRandomPair puts it on a random cell hugging the biggest
	// obstacle cluster.
	BiggestRandomPair
	// BiggestCenterPair puts it on the cell hugging the biggest cluster
	// that sits closest to the given center.
	BiggestCenterPair
)

var strategyNames = [...]string{
	PerimeterPair:     "perimeter_pair",
	BiggestRandomPair: "biggest_random_pair",
	BiggestCenterPair: "biggest_center_pair",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy maps a strategy name to its value.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("unknown station strategy %q", name)
}

// All lists every strategy, in comparison order for batch sweeps.
func All() []Strategy {
	return []Strategy{PerimeterPair, BiggestRandomPair, BiggestCenterPair}
}

// maxLocateAttempts caps the candidate search.
const maxLocateAttempts = 35

// repairOffsets are probed in order when a candidate cell is unusable.
var repairOffsets = [4]core.Dir{{DX: 0, DY: 1}, {DX: 0, DY: -1}, {DX: 1, DY: 0}, {DX: -1, DY: 0}}

// usable reports whether p can host the station.
func usable(g *core.Grid, p core.Pos) bool {
	return g.WithinBounds(p) && !g.Blocked(p) && !g.ContainsAny(p, core.BaseStation)
}

// repair returns the candidate itself when usable, otherwise the first
// usable cardinal neighbor that keep still accepts.
func repair(g *core.Grid, p core.Pos, keep func(core.Pos) bool) (core.Pos, bool) {
	if usable(g, p) && keep(p) {
		return p, true
	}
	for _, d := range repairOffsets {
		if q := p.Add(d); usable(g, q) && keep(q) {
			return q, true
		}
	}
	return core.Pos{}, false
}

func anyCell(core.Pos) bool { return true }

// randomBorderPoint samples one of the two border axes: a random column
// on the y == 0 edge, or a random row on the x == 0 edge.
func randomBorderPoint(g *core.Grid, rng *rand.Rand) core.Pos {
	if rng.Intn(2) == 0 {
		return core.Pos{X: rng.Intn(g.Width()), Y: 0}
	}
	return core.Pos{X: 0, Y: rng.Intn(g.Height())}
}

// clusterRing returns the in-bounds Moore ring around a cluster footprint.
func clusterRing(g *core.Grid, cells []core.Pos) []core.Pos {
	inCluster := make(map[core.Pos]bool, len(cells))
	for _, c := range cells {
		inCluster[c] = true
	}
	seen := make(map[core.Pos]bool)
	var ring []core.Pos
	for _, c := range cells {
		for _, nb := range g.Neighborhood(c, core.Moore, 1, false) {
			if inCluster[nb] || seen[nb] {
				continue
			}
			seen[nb] = true
			ring = append(ring, nb)
		}
	}
	return ring
}

// Locate picks the station cell for the strategy. center is the reference
// cell the center-seeking strategy aims for; largest is the biggest
// obstacle cluster's footprint. The cluster-hugging strategies report
// false when the cluster set is empty, and every strategy reports false
// when the attempt budget runs out without a usable cell.
func (s Strategy) Locate(g *core.Grid, rng *rand.Rand, center core.Pos, largest []core.Pos) (core.Pos, bool) {
	switch s {
	case BiggestRandomPair, BiggestCenterPair:
		if len(largest) == 0 {
			return core.Pos{}, false
		}
		ring := clusterRing(g, largest)
		if len(ring) == 0 {
			return core.Pos{}, false
		}
		if s == BiggestCenterPair {
			best, bestDist := core.Pos{}, -1.0
			for _, c := range ring {
				if d := core.Euclidean(c, center); bestDist < 0 || d < bestDist {
					best, bestDist = c, d
				}
			}
			return repair(g, best, anyCell)
		}
		for i := 0; i < maxLocateAttempts; i++ {
			if p, ok := repair(g, ring[rng.Intn(len(ring))], anyCell); ok {
				return p, true
			}
		}
		return core.Pos{}, false
	default:
		// Repairs must not wander off the border, so a walled-in
		// perimeter stays a not-found outcome.
		onBorder := func(p core.Pos) bool {
			return p.X == 0 || p.X == g.Width()-1 || p.Y == 0 || p.Y == g.Height()-1
		}
		for i := 0; i < maxLocateAttempts; i++ {
			if p, ok := repair(g, randomBorderPoint(g, rng), onBorder); ok {
				return p, true
			}
		}
		return core.Pos{}, false
	}
}

// PlaceWithGuidelines marks the station cell and draws its two guide
// lines: one to the isolated area's reference opening (when present) and
// one to the grid corner farthest from the station.
func PlaceWithGuidelines(g *core.Grid, at core.Pos, reference core.Pos, hasReference bool) error {
	if !usable(g, at) {
		return fmt.Errorf("station cell (%d,%d) not usable", at.X, at.Y)
	}
	if !g.Place(core.Marker{Kind: core.BaseStation}, at) {
		return fmt.Errorf("station cell (%d,%d) out of bounds", at.X, at.Y)
	}
	if hasReference {
		route.DrawLine(g, at, reference)
	}
	route.DrawLine(g, at, core.FarthestCorner(g.Width(), g.Height(), at))
	return nil
}
