// Package core defines the grid model and domain types for mowsim.
package core

// Pos identifies a tassel (grid cell) by integer coordinates.
type Pos struct {
	X, Y int
}

// Add returns the position one step along d.
func (p Pos) Add(d Dir) Pos {
	return Pos{p.X + d.DX, p.Y + d.DY}
}

// Dir is a unit movement direction on the grid.
type Dir struct {
	DX, DY int
}

// Reverse returns the opposite direction.
func (d Dir) Reverse() Dir {
	return Dir{-d.DX, -d.DY}
}

// ClusterID identifies one obstacle instance. Cells of the same obstacle
// share an id; 0 means "no cluster".
type ClusterID int

// MarkerKind classifies the resources a cell can hold.
type MarkerKind int

const (
	GrassTassel MarkerKind = iota
	IsolatedArea
	Opening
	SquaredBlocked
	CircledBlocked
	GuideLine
	BaseStation
)

var markerKindNames = [...]string{
	"GrassTassel", "IsolatedArea", "Opening", "SquaredBlocked",
	"CircledBlocked", "GuideLine", "BaseStation",
}

func (k MarkerKind) String() string {
	if k < 0 || int(k) >= len(markerKindNames) {
		return "Unknown"
	}
	return markerKindNames[k]
}

// ParseMarkerKind maps a marker name back to its kind.
func ParseMarkerKind(s string) (MarkerKind, bool) {
	for i, name := range markerKindNames {
		if name == s {
			return MarkerKind(i), true
		}
	}
	return 0, false
}

// Marker is one resource occupying a cell. A cell holds an unordered
// multiset of markers; Cluster, Radius and CutCount are meaningful only
// for the kinds that carry them.
type Marker struct {
	Kind     MarkerKind
	Cluster  ClusterID // SquaredBlocked / CircledBlocked
	Radius   float64   // CircledBlocked
	CutCount int       // GrassTassel
}

// NeighborhoodKind selects the adjacency used by Grid.Neighborhood.
type NeighborhoodKind int

const (
	Moore      NeighborhoodKind = iota // 8-connected
	VonNeumann                         // 4-connected
)

func (n NeighborhoodKind) String() string {
	if n == Moore {
		return "Moore"
	}
	return "VonNeumann"
}
