package ssa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpeciesBracket(t *testing.T) {
	policy := DefaultBracketPolicy // Fluct 0.2, Threshold 20, Delta 2

	lo, hi := speciesBracket(0, policy)
	require.Equal(t, int64(0), lo)
	require.Equal(t, int64(0), hi)

	lo, hi = speciesBracket(5, policy)
	require.Equal(t, int64(3), lo)
	require.Equal(t, int64(7), hi)

	lo, hi = speciesBracket(1, policy) // n - Delta would go negative
	require.Equal(t, int64(0), lo)
	require.Equal(t, int64(3), hi)

	lo, hi = speciesBracket(100, policy) // above threshold, fluct-scaled
	require.Equal(t, int64(80), lo)
	require.Equal(t, int64(120), hi)
}

func simpleDecayProblem() *JumpProblem {
	return &JumpProblem{
		NumSpecies: 1,
		MassActionJumps: []MassActionJump{
			{
				ReactStoch:   []StoichEntry{{Species: 0, Coeff: 1}},
				NetStoch:     []StoichEntry{{Species: 0, Coeff: -1}},
				RateConstant: 0.5,
			},
		},
	}
}

func TestBracketEngine_InitializesFromU0(t *testing.T) {
	problem := simpleDecayProblem()
	engine := NewBracketEngine(problem, []int64{100}, nil)

	lo, hi := engine.SpeciesBounds(0)
	require.Equal(t, int64(80), lo)
	require.Equal(t, int64(120), hi)

	rLo, rHi := engine.RateBounds(0)
	require.Equal(t, 0.5*80, rLo)
	require.Equal(t, 0.5*120, rHi)
}

func TestBracketEngine_IsOutsideBrackets(t *testing.T) {
	problem := simpleDecayProblem()
	engine := NewBracketEngine(problem, []int64{100}, nil)

	require.False(t, engine.IsOutsideBrackets(0, 100))
	require.False(t, engine.IsOutsideBrackets(0, 120))
	require.True(t, engine.IsOutsideBrackets(0, 121))
	require.True(t, engine.IsOutsideBrackets(0, 79))
}

func TestBracketEngine_UpdateSpeciesBracket_RefreshesAffectedRate(t *testing.T) {
	problem := simpleDecayProblem()
	engine := NewBracketEngine(problem, []int64{100}, nil)

	engine.UpdateSpeciesBracket(0, 200, []int{0})
	lo, hi := engine.SpeciesBounds(0)
	require.Equal(t, int64(160), lo)
	require.Equal(t, int64(240), hi)

	rLo, rHi := engine.RateBounds(0)
	require.Equal(t, 0.5*160, rLo)
	require.Equal(t, 0.5*240, rHi)
}

func TestBracketEngine_CheckInvariants(t *testing.T) {
	problem := simpleDecayProblem()
	engine := NewBracketEngine(problem, []int64{100}, nil)

	require.NoError(t, engine.CheckInvariants([]int64{100}, nil, 0))
	require.Error(t, engine.CheckInvariants([]int64{1000}, nil, 0))
}
