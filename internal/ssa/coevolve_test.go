package ssa

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func coevolveBirthDeathProblem() *JumpProblem {
	return &JumpProblem{
		NumSpecies: 1,
		MassActionJumps: []MassActionJump{
			{NetStoch: []StoichEntry{{Species: 0, Coeff: 1}}, RateConstant: 5.0},
			{ReactStoch: []StoichEntry{{Species: 0, Coeff: 1}}, NetStoch: []StoichEntry{{Species: 0, Coeff: -1}}, RateConstant: 0.1},
		},
		U0: []int64{10},
	}
}

func TestCoevolve_InitializeSchedulesEveryJump(t *testing.T) {
	problem := coevolveBirthDeathProblem()
	ig := NewIntegrator(append([]int64{}, problem.U0...), nil, 0, nil)
	agg := NewCoevolve(NewRandSource(1), 1000, nil)

	require.NoError(t, agg.Initialize(problem, ig))
	require.NotEqual(t, jumpOrNone, agg.NextJump())
	require.Greater(t, agg.NextJumpTime(), 0.0)
}

func TestCoevolve_RunsToEndTimeAndConservesNonNegativeState(t *testing.T) {
	problem := coevolveBirthDeathProblem()
	ig := NewIntegrator(append([]int64{}, problem.U0...), nil, 0, nil)
	agg := NewCoevolve(NewRandSource(42), 50, nil)
	require.NoError(t, agg.Initialize(problem, ig))

	stepper := NewStepper(agg, ig)
	require.NoError(t, stepper.Run(nil))

	require.GreaterOrEqual(t, ig.U[0], int64(0))
	require.InDelta(t, 50.0, ig.T, 1e-9)
}

func TestCoevolve_ZeroURateDisablesJump(t *testing.T) {
	problem := &JumpProblem{
		NumSpecies: 1,
		GeneralJumps: []GeneralJump{
			{
				Rate:        func(u []int64, p Params, t float64) float64 { return 0 },
				URate:       func(u []int64, p Params, t float64) float64 { return 0 },
				VarsWritten: []int{0},
			},
		},
	}
	ig := NewIntegrator([]int64{0}, nil, 0, nil)
	agg := NewCoevolve(NewRandSource(1), 100, nil)
	require.NoError(t, agg.Initialize(problem, ig))
	require.True(t, math.IsInf(agg.NextJumpTime(), 1))
}

func TestCoevolve_RejectsInconsistentBounds(t *testing.T) {
	problem := &JumpProblem{
		NumSpecies: 1,
		GeneralJumps: []GeneralJump{
			{
				Rate:        func(u []int64, p Params, t float64) float64 { return 1 },
				URate:       func(u []int64, p Params, t float64) float64 { return 1 },
				LRate:       func(u []int64, p Params, t float64) float64 { return 2 }, // lrate > urate
				VarsWritten: []int{0},
			},
		},
	}
	ig := NewIntegrator([]int64{0}, nil, 0, nil)
	agg := NewCoevolve(NewRandSource(1), 100, nil)
	require.Error(t, agg.Initialize(problem, ig))
}
