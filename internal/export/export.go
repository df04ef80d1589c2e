// Package export writes run artifacts: grid snapshots, per-cycle cut
// counts, heatmaps, and the batch metrics summary.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"

	"github.com/verdantlabs/mowsim/internal/core"
	"github.com/verdantlabs/mowsim/internal/sim"
)

// Writer records run artifacts under a per-run directory named by a fresh
// UUID, so repeated batches never clobber each other.
type Writer struct {
	root      string
	dimTassel float64
	heatmaps  bool
}

// NewWriter creates the run directory under outDir. dimTassel scales the
// cell indices in CSV output back to meters.
func NewWriter(outDir string, dimTassel float64, heatmaps bool) (*Writer, error) {
	root := filepath.Join(outDir, uuid.NewString())
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("creating run directory: %w", err)
	}
	return &Writer{root: root, dimTassel: dimTassel, heatmaps: heatmaps}, nil
}

// Root returns the run directory path.
func (w *Writer) Root() string { return w.root }

// RecordField dumps the prepared grid before the first run on it.
func (w *Writer) RecordField(label string, mapIdx int, g *core.Grid) error {
	data, err := core.EncodeSnapshot(g)
	if err != nil {
		return fmt.Errorf("encoding map %d grid: %w", mapIdx, err)
	}
	path := filepath.Join(w.root, fmt.Sprintf("%s_map%02d_grid.json", label, mapIdx))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing map %d grid: %w", mapIdx, err)
	}
	return nil
}

// RecordCycle writes the cut counts reached by the end of a cycle, as a
// CSV matrix and optionally as a heatmap image.
func (w *Writer) RecordCycle(label string, mapIdx, rep, cycle int, g *core.Grid) error {
	stem := fmt.Sprintf("%s_map%02d_rep%02d_cycle%03d", label, mapIdx, rep, cycle)
	counts := g.CutCounts()

	if err := w.writeCounts(filepath.Join(w.root, stem+".csv"), mapIdx, rep, cycle, counts); err != nil {
		return err
	}
	if w.heatmaps {
		if err := writeHeatmap(filepath.Join(w.root, stem+".png"), g, counts); err != nil {
			return err
		}
	}
	return nil
}

// writeCounts lays the matrix out one row per x coordinate, with the y
// coordinates as columns, both scaled to meters.
func (w *Writer) writeCounts(path string, mapIdx, rep, cycle int, counts [][]int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating cycle file: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	header := []string{"num_mappa", "ripetizione", "cycle", "x"}
	if len(counts) > 0 {
		for y := range counts[0] {
			header = append(header, formatMeters(float64(y)*w.dimTassel))
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for x, col := range counts {
		row := []string{
			strconv.Itoa(mapIdx),
			strconv.Itoa(rep),
			strconv.Itoa(cycle),
			formatMeters(float64(x) * w.dimTassel),
		}
		for _, c := range col {
			row = append(row, strconv.Itoa(c))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing cycle file: %w", err)
	}
	return nil
}

// WriteMetrics writes the batch summary JSON.
func (w *Writer) WriteMetrics(results []sim.Metrics) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding metrics: %w", err)
	}
	path := filepath.Join(w.root, "metrics.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}

func formatMeters(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Discard is a Recorder that drops everything, for runs that only need
// the metrics.
type Discard struct{}

func (Discard) RecordField(string, int, *core.Grid) error           { return nil }
func (Discard) RecordCycle(string, int, int, int, *core.Grid) error { return nil }

var _ sim.Recorder = (*Writer)(nil)
var _ sim.Recorder = Discard{}
