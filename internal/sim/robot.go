// Package sim runs the coverage robot over a prepared grid and accounts
// for its battery and run-time budgets.
package sim

import (
	"math"

	"github.com/jbeda/geom"
	"github.com/zyedidia/generic/mapset"

	"github.com/verdantlabs/mowsim/internal/core"
)

// Robot is the mowing agent. Grid position is the cell it occupies; Pose
// tracks the continuous position used by the angular movement variant.
type Robot struct {
	Pos     core.Pos
	Heading core.Dir
	Pose    geom.Coord

	// Autonomy is the charge left, in seconds. Used accumulates the
	// seconds consumed since the last recharge.
	Autonomy float64
	Used     float64

	Steps      int
	Bounces    int
	TasselsCut int

	visited mapset.Set[core.Pos]

	cutRadius int
	backOff   int
	stepCost  float64
}

// NewRobot builds a robot parked at start with a full charge.
func NewRobot(start core.Pos, speed, cutDiameter, dimTassel, autonomy float64) *Robot {
	visited := mapset.New[core.Pos]()
	visited.Put(start)
	return &Robot{
		Pos:      start,
		Pose:     geom.Coord{X: float64(start.X), Y: float64(start.Y)},
		Autonomy: autonomy,
		visited:  visited,

		cutRadius: int(cutDiameter/dimTassel) / 2,
		backOff:   int(math.Ceil(cutDiameter / dimTassel)),
		stepCost:  core.MowingTime(speed, cutDiameter, dimTassel*dimTassel),
	}
}

// StepCost returns the seconds one tassel of movement costs.
func (r *Robot) StepCost() float64 { return r.stepCost }

// BackOff returns the bounce retreat distance in tassels.
func (r *Robot) BackOff() int { return r.backOff }

// Visited reports whether the robot has already covered p this run.
func (r *Robot) Visited(p core.Pos) bool { return r.visited.Has(p) }

// MoveTo advances the robot one cell, mows the cutting disc around the
// new position, and charges the move against the battery.
func (r *Robot) MoveTo(g *core.Grid, to core.Pos) {
	r.Pos = to
	r.Pose = geom.Coord{X: float64(to.X), Y: float64(to.Y)}
	r.visited.Put(to)
	r.Steps++
	r.mow(g)
	r.Autonomy -= r.stepCost
	r.Used += r.stepCost
}

// Idle charges one step's worth of time without moving. Called when the
// robot is maneuvering in place so budgets keep draining.
func (r *Robot) Idle() {
	r.Autonomy -= r.stepCost
	r.Used += r.stepCost
}

// Recharge resets the per-charge accounting. The caller sets the new
// Autonomy from whatever budget remains.
func (r *Robot) Recharge() {
	r.Used = 0
}

// mow cuts every grass tassel the cutting disc covers at the current
// position.
func (r *Robot) mow(g *core.Grid) {
	for _, p := range g.Neighborhood(r.Pos, core.VonNeumann, r.cutRadius, true) {
		if g.IncrementCut(p) {
			r.TasselsCut++
		}
	}
}
