package ssa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func rssacrBirthDeathProblem() *JumpProblem {
	return &JumpProblem{
		NumSpecies: 1,
		MassActionJumps: []MassActionJump{
			{NetStoch: []StoichEntry{{Species: 0, Coeff: 1}}, RateConstant: 10.0},
			{ReactStoch: []StoichEntry{{Species: 0, Coeff: 1}}, NetStoch: []StoichEntry{{Species: 0, Coeff: -1}}, RateConstant: 0.1},
		},
		U0: []int64{50},
	}
}

func TestRSSACR_InitializeSchedulesFirstCandidate(t *testing.T) {
	problem := rssacrBirthDeathProblem()
	ig := NewIntegrator(append([]int64{}, problem.U0...), nil, 0, nil)
	agg := NewRSSACR(NewRandSource(1), 1000, nil)

	require.NoError(t, agg.Initialize(problem, ig))
	require.NotEqual(t, jumpOrNone, agg.NextJump())
}

func TestRSSACR_RunsToEndTimeNonNegativeState(t *testing.T) {
	problem := rssacrBirthDeathProblem()
	ig := NewIntegrator(append([]int64{}, problem.U0...), nil, 0, nil)
	agg := NewRSSACR(NewRandSource(9), 50, nil)
	require.NoError(t, agg.Initialize(problem, ig))

	stepper := NewStepper(agg, ig)
	require.NoError(t, stepper.Run(nil))

	require.GreaterOrEqual(t, ig.U[0], int64(0))
	require.InDelta(t, 50.0, ig.T, 1e-9)
}

func TestRSSACR_BracketInvariantHoldsAfterRun(t *testing.T) {
	problem := rssacrBirthDeathProblem()
	ig := NewIntegrator(append([]int64{}, problem.U0...), nil, 0, nil)
	agg := NewRSSACR(NewRandSource(3), 30, nil)
	require.NoError(t, agg.Initialize(problem, ig))

	stepper := NewStepper(agg, ig)
	require.NoError(t, stepper.Run(nil))
	require.NoError(t, agg.bracket.CheckInvariants(ig.U, ig.P, ig.T))
}

func TestRSSACR_ChoosePriorityTableMinexpHandlesAllZeroRates(t *testing.T) {
	g := choosePriorityTableMinexp([]float64{0, 0, 0})
	require.Equal(t, 0, g)
}

func TestRSSACR_ChoosePriorityTableMinexpPicksBelowSmallestPositive(t *testing.T) {
	g := choosePriorityTableMinexp([]float64{0, 8, 32})
	require.Less(t, g, 3) // floor(log2(8))-1 == 2
}
