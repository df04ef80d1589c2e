package export

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/verdantlabs/mowsim/internal/core"
)

var (
	blockedColor = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	stationColor = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	uncutColor   = color.RGBA{R: 210, G: 235, B: 210, A: 255}
)

// writeHeatmap renders the cut counts as a green ramp, darker where the
// robot passed more often. Obstacles come out gray, the station red. The
// image origin is the top-left, so y is flipped.
func writeHeatmap(path string, g *core.Grid, counts [][]int) error {
	w, h := g.Width(), g.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	max := 0
	for _, col := range counts {
		for _, c := range col {
			if c > max {
				max = c
			}
		}
	}

	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			p := core.Pos{X: x, Y: y}
			var c color.RGBA
			switch {
			case g.ContainsAny(p, core.BaseStation):
				c = stationColor
			case g.ContainsAny(p, core.SquaredBlocked, core.CircledBlocked):
				c = blockedColor
			case max == 0 || counts[x][y] == 0:
				c = uncutColor
			default:
				c = rampColor(counts[x][y], max)
			}
			img.SetRGBA(x, h-1-y, c)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating heatmap: %w", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encoding heatmap: %w", err)
	}
	return nil
}

func rampColor(count, max int) color.RGBA {
	t := float64(count) / float64(max)
	g := uint8(200 - t*140)
	return color.RGBA{R: uint8(40 * (1 - t)), G: g, B: uint8(40 * (1 - t)), A: 255}
}
