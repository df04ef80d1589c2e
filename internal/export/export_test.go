package export

import (
	"encoding/csv"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantlabs/mowsim/internal/core"
	"github.com/verdantlabs/mowsim/internal/sim"
)

func testGrid(t *testing.T) *core.Grid {
	t.Helper()
	g := core.NewGrid(6, 4)
	g.Place(core.Marker{Kind: core.SquaredBlocked, Cluster: 1}, core.Pos{X: 2, Y: 2})
	g.Place(core.Marker{Kind: core.BaseStation}, core.Pos{X: 0, Y: 0})
	g.SeedGrass()
	g.IncrementCut(core.Pos{X: 1, Y: 1})
	g.IncrementCut(core.Pos{X: 1, Y: 1})
	g.IncrementCut(core.Pos{X: 3, Y: 1})
	return g
}

func TestWriterCreatesRunDirectory(t *testing.T) {
	out := t.TempDir()
	w, err := NewWriter(out, 0.5, false)
	require.NoError(t, err)

	rel, err := filepath.Rel(out, w.Root())
	require.NoError(t, err)
	assert.NotEqual(t, ".", rel, "run directory must be nested under the output directory")

	info, err := os.Stat(w.Root())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestRecordFieldWritesSnapshot(t *testing.T) {
	w, err := NewWriter(t.TempDir(), 0.5, false)
	require.NoError(t, err)
	g := testGrid(t)

	require.NoError(t, w.RecordField("perimeter_pair", 0, g))

	data, err := os.ReadFile(filepath.Join(w.Root(), "perimeter_pair_map00_grid.json"))
	require.NoError(t, err)
	restored, err := core.DecodeSnapshot(data)
	require.NoError(t, err)
	assert.True(t, restored.ContainsAny(core.Pos{X: 0, Y: 0}, core.BaseStation))
	assert.True(t, restored.Blocked(core.Pos{X: 2, Y: 2}))
}

func TestRecordCycleWritesCSV(t *testing.T) {
	w, err := NewWriter(t.TempDir(), 0.5, false)
	require.NoError(t, err)
	g := testGrid(t)

	require.NoError(t, w.RecordCycle("perimeter_pair", 0, 1, 3, g))

	f, err := os.Open(filepath.Join(w.Root(), "perimeter_pair_map00_rep01_cycle003.csv"))
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 7, "header plus one row per x")
	assert.Equal(t, []string{"num_mappa", "ripetizione", "cycle", "x", "0", "0.5", "1", "1.5"}, rows[0])
	// Row for x == 1: two cuts at y == 1.
	assert.Equal(t, []string{"0", "1", "3", "0.5", "0", "2", "0", "0"}, rows[2])
}

func TestRecordCycleWritesHeatmap(t *testing.T) {
	w, err := NewWriter(t.TempDir(), 0.5, true)
	require.NoError(t, err)
	g := testGrid(t)

	require.NoError(t, w.RecordCycle("perimeter_pair", 0, 0, 1, g))

	f, err := os.Open(filepath.Join(w.Root(), "perimeter_pair_map00_rep00_cycle001.png"))
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 6, img.Bounds().Dx())
	assert.Equal(t, 4, img.Bounds().Dy())
}

func TestWriteMetrics(t *testing.T) {
	w, err := NewWriter(t.TempDir(), 0.5, false)
	require.NoError(t, err)

	in := []sim.Metrics{
		{Label: "perimeter_pair", MapIndex: 0, Repetition: 0, Cycles: 2, TasselsCut: 40},
		{Label: "biggest_center_pair", MapIndex: 0, Repetition: 1, Enclosed: true},
	}
	require.NoError(t, w.WriteMetrics(in))

	data, err := os.ReadFile(filepath.Join(w.Root(), "metrics.json"))
	require.NoError(t, err)
	var out []sim.Metrics
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
