// Package simulation drives a crossway.Monitor with one goroutine per vehicle
// and checks that no conflicting vehicles were ever inside together.
package simulation

import (
	"context"
	"math/rand"
	"time"

	"github.com/anggasct/crossway"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Report summarises a simulation run
type Report struct {
	Launched   int
	Completed  int
	Elapsed    time.Duration
	MaxInside  int
	TotalWaits int
	MaxWaits   int
	// WaitsByMovement sums the wake-ups of vehicles on each movement
	WaitsByMovement map[crossway.Movement]int
	Violations      []Violation
}

// Safe reports whether no conflicting vehicles were inside together
func (r *Report) Safe() bool {
	return len(r.Violations) == 0
}

type vehicleResult struct {
	movement crossway.Movement
	done     bool
	waits    int
}

// Run drives every planned vehicle through mon: enter, cross, exit.
//
// Once ctx is done no further vehicles are launched, including while Run is
// waiting for a free slot under cfg.Concurrency. Vehicles already launched
// always finish their crossing; the returned error is then ctx.Err() and the
// report covers the launched vehicles only.
func Run(ctx context.Context, mon *crossway.Monitor, cfg Config) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	plan := cfg.Movements
	if len(plan) == 0 {
		plan = RandomMovements(cfg.Vehicles, cfg.Seed)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	crossing := lo.Times(len(plan), func(int) time.Duration {
		if cfg.MaxCrossing <= 0 {
			return 0
		}
		return time.Duration(rng.Int63n(int64(cfg.MaxCrossing) + 1))
	})

	checker := NewSafetyChecker()
	mon.AddObserver(checker)
	defer mon.RemoveObserver(checker)

	var slots *semaphore.Weighted
	if cfg.Concurrency > 0 {
		slots = semaphore.NewWeighted(int64(cfg.Concurrency))
	}

	g := new(errgroup.Group)
	results := make([]vehicleResult, len(plan))
	start := time.Now()
	launched := 0
	for i, m := range plan {
		if ctx.Err() != nil {
			break
		}
		if slots != nil {
			if err := slots.Acquire(ctx, 1); err != nil {
				break
			}
		}
		i, m := i, m
		launched++
		g.Go(func() error {
			if slots != nil {
				defer slots.Release(1)
			}
			v := mon.Enter(m)
			time.Sleep(crossing[i])
			mon.Exit(m)
			results[i] = vehicleResult{movement: m, done: true, waits: v.WaitCount}
			return nil
		})
	}
	g.Wait()

	done := lo.Filter(results, func(r vehicleResult, _ int) bool { return r.done })
	report := &Report{
		Launched:   launched,
		Completed:  len(done),
		Elapsed:    time.Since(start),
		MaxInside:  checker.MaxInside(),
		TotalWaits: lo.SumBy(done, func(r vehicleResult) int { return r.waits }),
		WaitsByMovement: lo.MapValues(lo.GroupBy(done, func(r vehicleResult) crossway.Movement {
			return r.movement
		}), func(group []vehicleResult, _ crossway.Movement) int {
			return lo.SumBy(group, func(r vehicleResult) int { return r.waits })
		}),
		Violations: checker.Violations(),
	}
	if len(done) > 0 {
		report.MaxWaits = lo.MaxBy(done, func(a, b vehicleResult) bool { return a.waits > b.waits }).waits
	}

	return report, ctx.Err()
}
