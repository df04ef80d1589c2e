package sim

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/verdantlabs/mowsim/internal/config"
	"github.com/verdantlabs/mowsim/internal/core"
	"github.com/verdantlabs/mowsim/internal/gen"
	"github.com/verdantlabs/mowsim/internal/route"
	"github.com/verdantlabs/mowsim/internal/station"
)

// RunBatch executes the full experiment: for every generated map, every
// station strategy gets its own clone of the routed grid, and every
// repetition runs on a fresh clone of that. A nil strategies slice runs
// all of them. Maps where a strategy finds no station are logged and
// skipped, not fatal.
func RunBatch(ctx context.Context, cfg *config.Config, strategies []station.Strategy, rec Recorder, logger *log.Logger) ([]Metrics, error) {
	if logger == nil {
		logger = log.Default()
	}
	if len(strategies) == 0 {
		strategies = station.All()
	}
	movementName, bounceName, err := cfg.SplitCuttingMode()
	if err != nil {
		return nil, err
	}
	if _, err := ParseMovement(movementName, bounceName); err != nil {
		return nil, err
	}

	seed := cfg.Simulator.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	logger.Printf("batch: %d maps x %d repetitions, seed %d", cfg.Simulator.NumMaps, cfg.Simulator.Repetitions, seed)

	var results []Metrics
	for m := 0; m < cfg.Simulator.NumMaps; m++ {
		field, err := gen.Generate(rng, GenParams(cfg))
		if err != nil {
			return results, fmt.Errorf("generating map %d: %w", m, err)
		}
		if field.SkippedObstacles > 0 {
			logger.Printf("map %d: %d obstacles found no room", m, field.SkippedObstacles)
		}
		route.TracePerimeter(field.Grid)
		for _, cl := range field.Clusters {
			route.ConnectToPerimeter(field.Grid, cl.Anchors)
		}

		center := core.CenterTassel(field.Grid.Width(), field.Grid.Height())
		for _, strat := range strategies {
			g := field.Grid.Clone()
			pos, ok := strat.Locate(g, rng, center, field.LargestCluster)
			if !ok {
				logger.Printf("map %d: no station position for %s, skipping", m, strat)
				continue
			}
			if err := station.PlaceWithGuidelines(g, pos, field.ReferenceCorner, field.HasReference); err != nil {
				logger.Printf("map %d: placing station for %s: %v", m, strat, err)
				continue
			}
			g.SeedGrass()
			if rec != nil {
				if err := rec.RecordField(strat.String(), m, g); err != nil {
					return results, err
				}
			}

			for rep := 0; rep < cfg.Simulator.Repetitions; rep++ {
				// Movement variants carry per-run state, so each
				// repetition gets a fresh one.
				movement, err := ParseMovement(movementName, bounceName)
				if err != nil {
					return results, err
				}
				s := New(Config{
					Label:           strat.String(),
					MapIndex:        m,
					Repetition:      rep,
					Speed:           cfg.Robot.Speed,
					CuttingDiameter: cfg.Robot.CuttingDiameter,
					DimTassel:       cfg.Simulator.DimTassel,
					Autonomy:        cfg.EffectiveAutonomy(),
					Recharge:        cfg.Robot.Recharge,
					Budget:          cfg.RunBudget(),
					Movement:        movement,
				}, g.Clone(), pos, rng, rec)

				metrics, err := s.Run(ctx)
				if errors.Is(err, ErrEnclosedStart) {
					logger.Printf("map %d rep %d (%s): %v", m, rep, strat, err)
					results = append(results, metrics)
					continue
				}
				if err != nil {
					return results, err
				}
				results = append(results, metrics)
			}
		}
	}
	return results, nil
}

// GenParams maps the loaded configuration onto generation parameters.
func GenParams(cfg *config.Config) gen.Params {
	return gen.Params{
		Width:     cfg.GridWidth(),
		Height:    cfg.GridHeight(),
		DimTassel: cfg.Simulator.DimTassel,

		IsolatedShape:     cfg.Env.IsolatedAreaShape,
		IsolatedMinWidth:  cfg.Env.IsolatedAreaMinWidth,
		IsolatedMaxWidth:  cfg.Env.IsolatedAreaMaxWidth,
		IsolatedMinLength: cfg.Env.IsolatedAreaMinLength,
		IsolatedMaxLength: cfg.Env.IsolatedAreaMaxLength,
		MinRadius:         cfg.Env.MinRadius,
		MaxRadius:         cfg.Env.MaxRadius,

		NumSquares:      cfg.Env.NumBlockedSquares,
		MinWidthSquare:  cfg.Env.MinWidthSquare,
		MaxWidthSquare:  cfg.Env.MaxWidthSquare,
		MinHeightSquare: cfg.Env.MinHeightSquare,
		MaxHeightSquare: cfg.Env.MaxHeightSquare,

		NumCircles: cfg.Env.NumBlockedCircles,
		MinRay:     cfg.Env.MinRay,
		MaxRay:     cfg.Env.MaxRay,
	}
}
