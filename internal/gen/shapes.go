package gen

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/verdantlabs/mowsim/internal/core"
)

// Obstacle kind names in shape files.
const (
	ShapeKindSquare = "square"
	ShapeKindCircle = "circle"
)

// Cell is one grid position in a shape file.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// ClusterShape is one obstacle cluster in a shape file.
type ClusterShape struct {
	Kind   string `json:"kind"`
	Radius int    `json:"radius,omitempty"`
	Cells  []Cell `json:"cells"`
}

// FieldShape is the serialized layout of a generated field, without grass
// or guide lines. Shape files let a batch replay the same maps across
// configurations.
type FieldShape struct {
	Width    int            `json:"width"`
	Height   int            `json:"height"`
	Isolated []Cell         `json:"isolated,omitempty"`
	Openings []Cell         `json:"openings,omitempty"`
	Clusters []ClusterShape `json:"clusters,omitempty"`
}

// LoadShape reads a field shape from a JSON file.
func LoadShape(path string) (FieldShape, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FieldShape{}, fmt.Errorf("reading shape file: %w", err)
	}
	var s FieldShape
	if err := json.Unmarshal(data, &s); err != nil {
		return FieldShape{}, fmt.Errorf("parsing shape file: %w", err)
	}
	return s, nil
}

// SaveShape writes a field shape as indented JSON.
func SaveShape(path string, s FieldShape) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding shape: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing shape file: %w", err)
	}
	return nil
}

// FromShape rebuilds a field from a serialized layout. Cluster IDs are
// assigned in file order and anchors are re-seeded around each footprint.
func FromShape(s FieldShape) (*Field, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("shape dimensions must be positive, got %dx%d", s.Width, s.Height)
	}
	f := &Field{Grid: core.NewGrid(s.Width, s.Height)}

	for _, c := range s.Isolated {
		if !f.Grid.Place(core.Marker{Kind: core.IsolatedArea}, core.Pos{X: c.X, Y: c.Y}) {
			return nil, fmt.Errorf("isolated cell (%d,%d) out of bounds", c.X, c.Y)
		}
	}
	for _, c := range s.Openings {
		if !f.Grid.Place(core.Marker{Kind: core.Opening}, core.Pos{X: c.X, Y: c.Y}) {
			return nil, fmt.Errorf("opening cell (%d,%d) out of bounds", c.X, c.Y)
		}
	}
	if len(s.Openings) > 0 {
		f.ReferenceCorner = core.Pos{X: s.Openings[0].X, Y: s.Openings[0].Y}
		f.HasReference = true
	}

	for i, cs := range s.Clusters {
		var kind core.MarkerKind
		switch cs.Kind {
		case ShapeKindSquare:
			kind = core.SquaredBlocked
		case ShapeKindCircle:
			kind = core.CircledBlocked
		default:
			return nil, fmt.Errorf("cluster %d: unknown kind %q", i, cs.Kind)
		}
		id := core.ClusterID(i + 1)
		cells := make([]core.Pos, 0, len(cs.Cells))
		for _, c := range cs.Cells {
			q := core.Pos{X: c.X, Y: c.Y}
			if !f.Grid.Place(core.Marker{Kind: kind, Cluster: id, Radius: float64(cs.Radius)}, q) {
				return nil, fmt.Errorf("cluster %d: cell (%d,%d) out of bounds", i, c.X, c.Y)
			}
			cells = append(cells, q)
		}
		f.Clusters = append(f.Clusters, Cluster{
			ID:      id,
			Cells:   cells,
			Anchors: seedAnchors(f.Grid, cells),
		})
	}

	f.LargestCluster = f.Grid.LargestCluster()
	return f, nil
}

// Shape serializes the field layout. Cell lists come out in deterministic
// scan order so shape files diff cleanly.
func (f *Field) Shape() FieldShape {
	s := FieldShape{Width: f.Grid.Width(), Height: f.Grid.Height()}

	for x := 0; x < f.Grid.Width(); x++ {
		for y := 0; y < f.Grid.Height(); y++ {
			p := core.Pos{X: x, Y: y}
			if f.Grid.ContainsAny(p, core.IsolatedArea) {
				s.Isolated = append(s.Isolated, Cell{X: x, Y: y})
			}
			if f.Grid.ContainsAny(p, core.Opening) {
				s.Openings = append(s.Openings, Cell{X: x, Y: y})
			}
		}
	}

	for _, cl := range f.Clusters {
		cs := ClusterShape{Kind: ShapeKindSquare}
		cells := append([]core.Pos(nil), cl.Cells...)
		sort.Slice(cells, func(i, j int) bool {
			if cells[i].X != cells[j].X {
				return cells[i].X < cells[j].X
			}
			return cells[i].Y < cells[j].Y
		})
		for _, q := range cells {
			for _, m := range f.Grid.MarkersAt(q) {
				if m.Kind == core.CircledBlocked && m.Cluster == cl.ID {
					cs.Kind = ShapeKindCircle
					cs.Radius = int(m.Radius)
				}
			}
			cs.Cells = append(cs.Cells, Cell{X: q.X, Y: q.Y})
		}
		s.Clusters = append(s.Clusters, cs)
	}
	return s
}
