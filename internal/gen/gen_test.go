package gen

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/mowsim/internal/core"
)

func testParams() Params {
	return Params{
		Width:             20,
		Height:            20,
		DimTassel:         1,
		IsolatedShape:     ShapeSquare,
		IsolatedMinWidth:  3,
		IsolatedMaxWidth:  5,
		IsolatedMinLength: 3,
		IsolatedMaxLength: 5,
		MinRadius:         2,
		MaxRadius:         4,
		NumSquares:        2,
		MinWidthSquare:    2,
		MaxWidthSquare:    4,
		MinHeightSquare:   2,
		MaxHeightSquare:   4,
		NumCircles:        1,
		MinRay:            1,
		MaxRay:            2,
	}
}

func carveRect(g *core.Grid, origin core.Pos, w, h int) []core.Pos {
	var cells []core.Pos
	for i := 0; i < w; i++ {
		for j := 0; j < h; j++ {
			q := core.Pos{X: origin.X + i, Y: origin.Y + j}
			g.Place(core.Marker{Kind: core.IsolatedArea}, q)
			cells = append(cells, q)
		}
	}
	return cells
}

func TestEnclosureOfCornerRect(t *testing.T) {
	g := core.NewGrid(10, 10)
	cells := carveRect(g, core.Pos{X: 0, Y: 0}, 3, 3)

	enclosure := enclosureOf(g, cells)

	// Two cells per exposed edge; the convex corner (2,2) and the cells
	// hugging the grid border are excluded.
	assert.ElementsMatch(t, []core.Pos{
		{X: 2, Y: 0}, {X: 2, Y: 1},
		{X: 0, Y: 2}, {X: 1, Y: 2},
	}, enclosure)
}

func TestPlaceOpeningsUnblocksCells(t *testing.T) {
	g := core.NewGrid(10, 10)
	cells := carveRect(g, core.Pos{X: 0, Y: 0}, 3, 3)
	rng := rand.New(rand.NewSource(7))

	openings := placeOpenings(g, rng, enclosureOf(g, cells), 3)

	require.NotEmpty(t, openings)
	assert.LessOrEqual(t, len(openings), 3)
	for _, o := range openings {
		assert.True(t, g.ContainsAny(o, core.IsolatedArea), "opening %v off the area", o)
		assert.True(t, g.ContainsAny(o, core.Opening))
		assert.False(t, g.Blocked(o), "opening %v still blocked", o)
	}
	// Cells of the area without an opening stay impassable.
	assert.True(t, g.Blocked(core.Pos{X: 0, Y: 0}))
}

func TestGenerateDeterministic(t *testing.T) {
	p := testParams()

	a, err := Generate(rand.New(rand.NewSource(99)), p)
	require.NoError(t, err)
	b, err := Generate(rand.New(rand.NewSource(99)), p)
	require.NoError(t, err)

	assert.Equal(t, a.Shape(), b.Shape(), "same seed must reproduce the same field")
}

func TestGenerateFieldInvariants(t *testing.T) {
	p := testParams()
	f, err := Generate(rand.New(rand.NewSource(3)), p)
	require.NoError(t, err)

	assert.Equal(t, p.Width, f.Grid.Width())
	assert.Equal(t, p.Height, f.Grid.Height())
	assert.LessOrEqual(t, len(f.Clusters)+f.SkippedObstacles, p.NumSquares+p.NumCircles)

	for _, cl := range f.Clusters {
		require.NotEmpty(t, cl.Cells)
		for _, q := range cl.Cells {
			assert.True(t, f.Grid.Blocked(q), "cluster %d cell %v not blocked", cl.ID, q)
		}
		for _, a := range cl.Anchors {
			assert.True(t, f.Grid.WithinBounds(a))
			assert.NotContains(t, cl.Cells, a, "anchor %v inside its own cluster", a)
		}
	}

	if f.HasReference {
		assert.True(t, f.Grid.ContainsAny(f.ReferenceCorner, core.Opening))
	}
}

func TestGenerateLargestCluster(t *testing.T) {
	p := testParams()
	f, err := Generate(rand.New(rand.NewSource(11)), p)
	require.NoError(t, err)

	if len(f.Clusters) == 0 {
		t.Skip("no obstacles landed for this seed")
	}
	max := 0
	for _, cl := range f.Clusters {
		if len(cl.Cells) > max {
			max = len(cl.Cells)
		}
	}
	assert.Len(t, f.LargestCluster, max)
}

func TestGenerateRejectsBadParams(t *testing.T) {
	_, err := Generate(rand.New(rand.NewSource(1)), Params{Width: 0, Height: 5, DimTassel: 1})
	assert.Error(t, err)
	_, err = Generate(rand.New(rand.NewSource(1)), Params{Width: 5, Height: 5, DimTassel: 0})
	assert.Error(t, err)
}

func TestShapeRoundTrip(t *testing.T) {
	f, err := Generate(rand.New(rand.NewSource(21)), testParams())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "field.json")
	require.NoError(t, SaveShape(path, f.Shape()))
	loaded, err := LoadShape(path)
	require.NoError(t, err)

	restored, err := FromShape(loaded)
	require.NoError(t, err)

	for x := 0; x < f.Grid.Width(); x++ {
		for y := 0; y < f.Grid.Height(); y++ {
			q := core.Pos{X: x, Y: y}
			assert.Equal(t, f.Grid.Blocked(q), restored.Grid.Blocked(q), "blocked mismatch at %v", q)
			assert.Equal(t,
				f.Grid.ContainsAny(q, core.IsolatedArea),
				restored.Grid.ContainsAny(q, core.IsolatedArea), "isolated mismatch at %v", q)
			assert.Equal(t,
				f.Grid.ContainsAny(q, core.Opening),
				restored.Grid.ContainsAny(q, core.Opening), "opening mismatch at %v", q)
		}
	}
	assert.Len(t, restored.Clusters, len(f.Clusters))
}

func TestFromShapeRejectsBadInput(t *testing.T) {
	_, err := FromShape(FieldShape{Width: 0, Height: 4})
	assert.Error(t, err)

	_, err = FromShape(FieldShape{Width: 4, Height: 4, Isolated: []Cell{{X: 9, Y: 0}}})
	assert.Error(t, err)

	_, err = FromShape(FieldShape{Width: 4, Height: 4, Clusters: []ClusterShape{
		{Kind: "hexagon", Cells: []Cell{{X: 1, Y: 1}}},
	}})
	assert.Error(t, err)
}
