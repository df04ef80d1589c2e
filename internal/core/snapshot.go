package core

import (
	"encoding/json"
	"fmt"
)

// MarkerRecord is the serialized form of one placed marker.
type MarkerRecord struct {
	X        int       `json:"x"`
	Y        int       `json:"y"`
	Kind     string    `json:"kind"`
	Cluster  ClusterID `json:"cluster,omitempty"`
	Radius   float64   `json:"radius,omitempty"`
	CutCount int       `json:"cut_count,omitempty"`
}

// Snapshot is a flat, order-stable serialization of a grid.
type Snapshot struct {
	Width   int            `json:"width"`
	Height  int            `json:"height"`
	Markers []MarkerRecord `json:"markers"`
}

// Snapshot captures the full grid state.
func (g *Grid) Snapshot() Snapshot {
	s := Snapshot{Width: g.width, Height: g.height}
	for x := 0; x < g.width; x++ {
		for y := 0; y < g.height; y++ {
			for _, m := range g.cells[x][y] {
				s.Markers = append(s.Markers, MarkerRecord{
					X:        x,
					Y:        y,
					Kind:     m.Kind.String(),
					Cluster:  m.Cluster,
					Radius:   m.Radius,
					CutCount: m.CutCount,
				})
			}
		}
	}
	return s
}

// FromSnapshot rebuilds a grid from a snapshot.
func FromSnapshot(s Snapshot) (*Grid, error) {
	if s.Width <= 0 || s.Height <= 0 {
		return nil, fmt.Errorf("snapshot has invalid dimensions %dx%d", s.Width, s.Height)
	}
	g := NewGrid(s.Width, s.Height)
	for _, r := range s.Markers {
		kind, ok := ParseMarkerKind(r.Kind)
		if !ok {
			return nil, fmt.Errorf("snapshot marker at (%d,%d) has unknown kind %q", r.X, r.Y, r.Kind)
		}
		m := Marker{Kind: kind, Cluster: r.Cluster, Radius: r.Radius, CutCount: r.CutCount}
		if !g.Place(m, Pos{r.X, r.Y}) {
			return nil, fmt.Errorf("snapshot marker at (%d,%d) is out of bounds", r.X, r.Y)
		}
	}
	return g, nil
}

// EncodeSnapshot serializes a grid to JSON.
func EncodeSnapshot(g *Grid) ([]byte, error) {
	return json.MarshalIndent(g.Snapshot(), "", "  ")
}

// DecodeSnapshot rebuilds a grid from EncodeSnapshot output.
func DecodeSnapshot(data []byte) (*Grid, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decoding grid snapshot: %w", err)
	}
	return FromSnapshot(s)
}
