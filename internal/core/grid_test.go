package core

import "testing"

func TestPlaceOutOfBounds(t *testing.T) {
	g := NewGrid(5, 5)

	cases := []Pos{{-1, 0}, {0, -1}, {5, 0}, {0, 5}, {17, 17}}
	for _, p := range cases {
		if g.Place(Marker{Kind: GuideLine}, p) {
			t.Errorf("Place at %v should fail out of bounds", p)
		}
	}

	if !g.Place(Marker{Kind: GuideLine}, Pos{4, 4}) {
		t.Error("Place at (4,4) should succeed")
	}
}

func TestContainsAny(t *testing.T) {
	g := NewGrid(5, 5)
	p := Pos{2, 3}
	g.Place(Marker{Kind: IsolatedArea}, p)
	g.Place(Marker{Kind: Opening}, p)

	if !g.ContainsAny(p, IsolatedArea) {
		t.Error("expected IsolatedArea at cell")
	}
	if !g.ContainsAny(p, GuideLine, Opening) {
		t.Error("expected Opening to match kind list")
	}
	if g.ContainsAny(p, SquaredBlocked, CircledBlocked) {
		t.Error("unexpected blocking marker")
	}
	if g.ContainsAny(Pos{-1, -1}, IsolatedArea) {
		t.Error("out-of-bounds cell must contain nothing")
	}
}

func TestBlocked(t *testing.T) {
	g := NewGrid(5, 5)

	g.Place(Marker{Kind: SquaredBlocked, Cluster: 1}, Pos{0, 0})
	g.Place(Marker{Kind: IsolatedArea}, Pos{1, 0})
	g.Place(Marker{Kind: IsolatedArea}, Pos{2, 0})
	g.Place(Marker{Kind: Opening}, Pos{2, 0})

	if !g.Blocked(Pos{0, 0}) {
		t.Error("obstacle cell must be blocked")
	}
	if !g.Blocked(Pos{1, 0}) {
		t.Error("isolated cell without opening must be blocked")
	}
	if g.Blocked(Pos{2, 0}) {
		t.Error("isolated cell with opening must be passable")
	}
	if g.Blocked(Pos{3, 3}) {
		t.Error("empty cell must be passable")
	}
}

func TestNeighborhoodClipping(t *testing.T) {
	g := NewGrid(4, 4)

	corner := g.Neighborhood(Pos{0, 0}, Moore, 1, false)
	if len(corner) != 3 {
		t.Errorf("corner Moore neighborhood: want 3 cells, got %d", len(corner))
	}

	center := g.Neighborhood(Pos{2, 2}, Moore, 1, false)
	if len(center) != 8 {
		t.Errorf("center Moore neighborhood: want 8 cells, got %d", len(center))
	}

	vn := g.Neighborhood(Pos{2, 2}, VonNeumann, 1, true)
	if len(vn) != 5 {
		t.Errorf("VonNeumann radius 1 with center: want 5 cells, got %d", len(vn))
	}
	for _, p := range vn {
		if abs(p.X-2)+abs(p.Y-2) > 1 {
			t.Errorf("cell %v outside VonNeumann radius", p)
		}
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := NewGrid(3, 3)
	g.Place(Marker{Kind: GrassTassel}, Pos{1, 1})

	c := g.Clone()
	c.IncrementCut(Pos{1, 1})
	c.Place(Marker{Kind: GuideLine}, Pos{0, 0})

	if g.CutCounts()[1][1] != 0 {
		t.Error("clone mutation leaked into original cut counts")
	}
	if g.ContainsAny(Pos{0, 0}, GuideLine) {
		t.Error("clone placement leaked into original grid")
	}
	if c.CutCounts()[1][1] != 1 {
		t.Error("clone should carry its own cut count")
	}
}

func TestLargestCluster(t *testing.T) {
	g := NewGrid(6, 6)
	for _, p := range []Pos{{0, 0}, {0, 1}, {1, 0}} {
		g.Place(Marker{Kind: SquaredBlocked, Cluster: 1}, p)
	}
	for _, p := range []Pos{{4, 4}, {4, 5}} {
		g.Place(Marker{Kind: CircledBlocked, Cluster: 2, Radius: 1}, p)
	}

	largest := g.LargestCluster()
	if len(largest) != 3 {
		t.Fatalf("largest cluster: want 3 cells, got %d", len(largest))
	}
	for _, p := range largest {
		if !g.ContainsAny(p, SquaredBlocked) {
			t.Errorf("cell %v not part of cluster 1", p)
		}
	}
}

func TestLargestClusterEmptyGrid(t *testing.T) {
	if cells := NewGrid(4, 4).LargestCluster(); cells != nil {
		t.Errorf("empty grid: want nil cluster, got %v", cells)
	}
}

func TestSeedGrassSkipsObstacles(t *testing.T) {
	g := NewGrid(3, 3)
	g.Place(Marker{Kind: SquaredBlocked, Cluster: 1}, Pos{1, 1})
	g.SeedGrass()

	if g.ContainsAny(Pos{1, 1}, GrassTassel) {
		t.Error("obstacle cell must not grow grass")
	}
	if !g.ContainsAny(Pos{0, 0}, GrassTassel) {
		t.Error("free cell must hold grass")
	}
}
