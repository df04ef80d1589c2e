package sim

import (
	"context"
	"math/rand"

	"github.com/verdantlabs/mowsim/internal/core"
)

// Config parameterizes one simulation run. Durations are in seconds.
type Config struct {
	Label      string // station strategy name, carried into exports
	MapIndex   int
	Repetition int

	Speed           float64
	CuttingDiameter float64
	DimTassel       float64

	Autonomy float64 // per-charge mowing time
	Recharge float64 // time docked per recharge
	Budget   float64 // total run time for this repetition

	Movement Movement
}

// Metrics summarizes a finished run.
type Metrics struct {
	Label      string  `json:"label"`
	MapIndex   int     `json:"map_index"`
	Repetition int     `json:"repetition"`
	Cycles     int     `json:"cycles"`
	Steps      int     `json:"steps"`
	Bounces    int     `json:"bounces"`
	TasselsCut int     `json:"tassels_cut"`
	BudgetLeft float64 `json:"budget_left"`
	Enclosed   bool    `json:"enclosed"`
}

// Recorder receives grid state at recording points. Implementations write
// the run artifacts; sim only drives the callbacks.
type Recorder interface {
	// RecordField is called once per prepared map, before any run.
	RecordField(label string, mapIdx int, g *core.Grid) error
	// RecordCycle is called at every recharge boundary with the current
	// cut state.
	RecordCycle(label string, mapIdx, rep, cycle int, g *core.Grid) error
}

// Simulator advances one robot over one grid until the run budget is
// spent.
type Simulator struct {
	cfg   Config
	grid  *core.Grid
	robot *Robot
	rng   *rand.Rand
	rec   Recorder

	metrics Metrics
	budget  float64
	started bool
	done    bool
}

// New builds a simulator with the robot parked at start.
func New(cfg Config, g *core.Grid, start core.Pos, rng *rand.Rand, rec Recorder) *Simulator {
	autonomy := cfg.Autonomy
	if cfg.Budget < autonomy {
		autonomy = cfg.Budget
	}
	return &Simulator{
		cfg:   cfg,
		grid:  g,
		robot: NewRobot(start, cfg.Speed, cfg.CuttingDiameter, cfg.DimTassel, autonomy),
		rng:   rng,
		rec:   rec,
		metrics: Metrics{
			Label:      cfg.Label,
			MapIndex:   cfg.MapIndex,
			Repetition: cfg.Repetition,
		},
		budget: cfg.Budget,
	}
}

// Done reports whether the run budget is exhausted.
func (s *Simulator) Done() bool { return s.done }

// Grid exposes the simulated grid, for exports after the run.
func (s *Simulator) Grid() *core.Grid { return s.grid }

// Metrics returns the current run summary.
func (s *Simulator) Metrics() Metrics {
	m := s.metrics
	m.Steps = s.robot.Steps
	m.Bounces = s.robot.Bounces
	m.TasselsCut = s.robot.TasselsCut
	m.BudgetLeft = s.budget
	if m.BudgetLeft < 0 {
		m.BudgetLeft = 0
	}
	return m
}

// Run steps the simulation to completion or context cancellation.
func (s *Simulator) Run(ctx context.Context) (Metrics, error) {
	for !s.done {
		select {
		case <-ctx.Done():
			return s.Metrics(), ctx.Err()
		default:
		}
		if err := s.Step(); err != nil {
			return s.Metrics(), err
		}
	}
	return s.Metrics(), nil
}

// Step advances one tick: the initial departure on the first call, then
// one movement per call, with a recharge whenever the charge cannot cover
// another move.
func (s *Simulator) Step() error {
	if s.done {
		return nil
	}
	if !s.started {
		if err := FirstMove(s.grid, s.robot, s.rng); err != nil {
			s.metrics.Enclosed = true
			s.done = true
			return err
		}
		s.started = true
		return nil
	}
	if s.robot.Autonomy < s.robot.StepCost() {
		return s.recharge()
	}
	s.cfg.Movement.Advance(s.grid, s.robot, s.rng)
	return nil
}

// recharge closes the current cycle: the cut state is recorded, the time
// mowed plus the docked recharge is charged against the run budget, and
// the battery refills from whatever budget remains.
func (s *Simulator) recharge() error {
	s.metrics.Cycles++
	if s.rec != nil {
		if err := s.rec.RecordCycle(s.cfg.Label, s.cfg.MapIndex, s.cfg.Repetition, s.metrics.Cycles, s.grid); err != nil {
			return err
		}
	}
	s.budget -= s.robot.Used + s.cfg.Recharge
	s.robot.Recharge()
	if s.budget <= s.robot.StepCost() {
		s.done = true
		return nil
	}
	s.robot.Autonomy = s.cfg.Autonomy
	if s.budget < s.robot.Autonomy {
		s.robot.Autonomy = s.budget
	}
	return nil
}
