package core

import "math"

// Euclidean returns the Euclidean distance between two cells.
func Euclidean(a, b Pos) float64 {
	dx := float64(a.X - b.X)
	dy := float64(a.Y - b.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// CenterTassel returns the central cell of a width x height grid, biased
// toward the lower index on even dimensions.
func CenterTassel(width, height int) Pos {
	cx := width / 2
	if width%2 == 0 {
		cx--
	}
	cy := height / 2
	if height%2 == 0 {
		cy--
	}
	return Pos{cx, cy}
}

// Corners returns the four grid corners.
func Corners(width, height int) [4]Pos {
	return [4]Pos{
		{0, 0},
		{0, height - 1},
		{width - 1, 0},
		{width - 1, height - 1},
	}
}

// FarthestCorner returns the grid corner maximizing Euclidean distance
// from p.
func FarthestCorner(width, height int, p Pos) Pos {
	best := Pos{-1, -1}
	bestDist := -1.0
	for _, c := range Corners(width, height) {
		if d := Euclidean(p, c); d > bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

// Variance derives a randomized-size spread from two bounds:
// floor(((a-b)/2)^2 / 2).
func Variance(a, b int) int {
	half := float64(a-b) / 2
	return int(math.Abs(half*half) / 2)
}

// MowingTime estimates the seconds spent mowing totalArea with the given
// cutting width and speed: passes = ceil(area/width), distance =
// passes * area / width, time = distance / speed.
func MowingTime(speed, cuttingWidth, totalArea float64) float64 {
	if speed <= 0 || cuttingWidth <= 0 {
		return 0
	}
	passes := math.Ceil(totalArea / cuttingWidth)
	distance := passes * totalArea / cuttingWidth
	return distance / speed
}
