package main

import (
	"math"

	"github.com/daniacca/ssacore/internal/ssa"
)

// seasonalBirthProblem is a single general jump whose rate is forced
// purely by time, not by state: a seasonal birth process
//
//	rate(t) = base * (1 + amplitude*sin(omega*t))
//
// paired with a constant per-capita death. The birth jump's VarsTouched
// is empty (it reads no species), which exercises the dependency-graph
// path for a jump that only ever needs to re-fire itself. Suited to
// Coevolve: sin is monotonic within each quarter-period window, so
// URate/LRate/RateInterval bound the rate exactly over that window
// instead of falling back to the global max amplitude for all time.
func seasonalBirthProblem() *ssa.JumpProblem {
	const (
		base      = 8.0
		amplitude = 0.7
		omega     = 0.5
		deathRate = 0.05
	)
	quarter := math.Pi / (2 * omega)

	seasonalRate := func(_ []int64, _ ssa.Params, t float64) float64 {
		return base * (1 + amplitude*math.Sin(omega*t))
	}

	// bounds returns the [lo, hi] envelope of sin(omega*t) over the
	// quarter-period window containing t, and how much longer that
	// window has left to run.
	bounds := func(t float64) (lo, hi, remaining float64) {
		k := math.Floor(t / quarter)
		t0 := k * quarter
		t1 := t0 + quarter
		s0, s1 := math.Sin(omega*t0), math.Sin(omega*t1)
		lo, hi = s0, s1
		if lo > hi {
			lo, hi = hi, lo
		}
		return lo, hi, t1 - t
	}

	return &ssa.JumpProblem{
		NumSpecies:   1,
		SpeciesNames: []string{"N"},
		MassActionJumps: []ssa.MassActionJump{
			{
				Name:         "death",
				ReactStoch:   []ssa.StoichEntry{{Species: 0, Coeff: 1}},
				NetStoch:     []ssa.StoichEntry{{Species: 0, Coeff: -1}},
				RateConstant: deathRate,
			},
		},
		GeneralJumps: []ssa.GeneralJump{
			{
				Name: "seasonal_birth",
				Rate: seasonalRate,
				URate: func(_ []int64, _ ssa.Params, t float64) float64 {
					_, hi, _ := bounds(t)
					return base * (1 + amplitude*hi)
				},
				LRate: func(_ []int64, _ ssa.Params, t float64) float64 {
					lo, _, _ := bounds(t)
					return base * (1 + amplitude*lo)
				},
				RateInterval: func(_ []int64, _ ssa.Params, t float64) float64 {
					_, _, remaining := bounds(t)
					return remaining
				},
				Affect: func(integrator *ssa.Integrator) {
					integrator.U[0]++
				},
				VarsTouched: nil,
				VarsWritten: []int{0},
			},
		},
		U0: []int64{20},
	}
}
