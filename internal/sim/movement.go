package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/jbeda/geom"

	"github.com/verdantlabs/mowsim/internal/core"
)

// ErrEnclosedStart is returned when the robot cannot leave its starting
// cell within the attempt budget.
var ErrEnclosedStart = errors.New("start position is enclosed")

// maxFirstMoveAttempts bounds the initial direction search.
const maxFirstMoveAttempts = 35

// Movement drives the robot one tick at a time.
type Movement interface {
	Name() string
	// Advance performs one movement tick, mowing and charging the battery
	// through the robot. It reports whether the robot changed cell.
	Advance(g *core.Grid, r *Robot, rng *rand.Rand) bool
}

// ParseMovement builds the movement for a "<movement>-<bounce>" cutting
// mode split into its two parts.
func ParseMovement(movement, bounce string) (Movement, error) {
	table, err := bounceTable(bounce)
	if err != nil {
		return nil, err
	}
	switch movement {
	case "random":
		return &randomMovement{reflect: table}, nil
	case "angular":
		return &angularMovement{reflect: table}, nil
	default:
		return nil, fmt.Errorf("unknown movement %q", movement)
	}
}

func bounceTable(name string) (map[core.Dir]core.Dir, error) {
	switch name {
	case "", "sharp", "upper-left":
		return core.ReflectUpperLeft, nil
	case "left":
		return core.ReflectLeft, nil
	case "right":
		return core.ReflectRight, nil
	default:
		return nil, fmt.Errorf("unknown bounce mode %q", name)
	}
}

// acceptable reports whether the robot may step from its cell along d.
// The destination must be in bounds and passable, the cell one further
// ahead must not hold a hard obstacle so the cutting disc stays clear, and
// already-covered cells are only re-entered along a guide line.
func acceptable(g *core.Grid, r *Robot, d core.Dir) bool {
	to := r.Pos.Add(d)
	if !g.WithinBounds(to) || g.Blocked(to) {
		return false
	}
	if ahead := to.Add(d); g.ContainsAny(ahead, core.SquaredBlocked, core.CircledBlocked) {
		return false
	}
	if r.Visited(to) && !g.ContainsAny(to, core.GuideLine) {
		return false
	}
	return true
}

// FirstMove picks the robot's initial heading by sampling the compass.
// Exhausting the attempt budget means the station is walled in.
func FirstMove(g *core.Grid, r *Robot, rng *rand.Rand) error {
	for i := 0; i < maxFirstMoveAttempts; i++ {
		d := core.Compass[rng.Intn(len(core.Compass))]
		if acceptable(g, r, d) {
			r.Heading = d
			r.MoveTo(g, r.Pos.Add(d))
			return nil
		}
	}
	return ErrEnclosedStart
}

// bounce retreats up to the robot's back-off distance along the reversed
// heading, then turns the heading through the reflection table.
func bounce(g *core.Grid, r *Robot, reflect map[core.Dir]core.Dir) bool {
	back := r.Heading.Reverse()
	moved := false
	for i := 0; i < r.BackOff(); i++ {
		to := r.Pos.Add(back)
		if !g.WithinBounds(to) || g.Blocked(to) {
			break
		}
		r.MoveTo(g, to)
		moved = true
	}
	if next, ok := reflect[r.Heading]; ok {
		r.Heading = next
	} else {
		r.Heading = back
	}
	r.Bounces++
	if !moved {
		r.Idle()
	}
	return moved
}

// randomMovement keeps the current heading while it stays viable and
// bounces off anything in the way.
type randomMovement struct {
	reflect map[core.Dir]core.Dir
}

func (m *randomMovement) Name() string { return "random" }

func (m *randomMovement) Advance(g *core.Grid, r *Robot, rng *rand.Rand) bool {
	if acceptable(g, r, r.Heading) {
		r.MoveTo(g, r.Pos.Add(r.Heading))
		return true
	}
	// Prefer a fresh random heading over a bounce when one is open.
	d := core.Compass[rng.Intn(len(core.Compass))]
	if acceptable(g, r, d) {
		r.Heading = d
		r.MoveTo(g, r.Pos.Add(d))
		return true
	}
	return bounce(g, r, m.reflect)
}

// angularMovement advances a continuous pose along a unit velocity and
// snaps it to cells, so long straight runs cross the grid at arbitrary
// angles instead of the eight compass headings.
type angularMovement struct {
	reflect  map[core.Dir]core.Dir
	velocity geom.Coord
}

func (m *angularMovement) Name() string { return "angular" }

func (m *angularMovement) Advance(g *core.Grid, r *Robot, rng *rand.Rand) bool {
	if m.velocity.Magnitude() == 0 {
		theta := rng.Float64() * 2 * math.Pi
		m.velocity = geom.Coord{X: math.Cos(theta), Y: math.Sin(theta)}
	}

	next := r.Pose.Plus(m.velocity)
	cell := core.Pos{X: int(math.Round(next.X)), Y: int(math.Round(next.Y))}
	if cell == r.Pos {
		// Still inside the same tassel; drift without re-mowing.
		r.Pose = next
		r.Idle()
		return false
	}

	d := core.Dir{DX: clampStep(cell.X - r.Pos.X), DY: clampStep(cell.Y - r.Pos.Y)}
	if acceptable(g, r, d) {
		r.Heading = d
		r.MoveTo(g, r.Pos.Add(d))
		r.Pose = next
		return true
	}

	r.Heading = d
	moved := bounce(g, r, m.reflect)
	m.velocity = geom.Coord{X: float64(r.Heading.DX), Y: float64(r.Heading.DY)}
	if mag := m.velocity.Magnitude(); mag > 0 {
		m.velocity = m.velocity.Unit()
	}
	return moved
}

func clampStep(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}
