package ssa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIntegrator_AddTStopKeepsSortedOrder(t *testing.T) {
	ig := NewIntegrator([]int64{0}, nil, 0, nil)
	ig.AddTStop(5)
	ig.AddTStop(1)
	ig.AddTStop(3)
	require.Equal(t, []float64{1, 3, 5}, ig.TStops)
}

func TestIntegrator_TerminateStopsStepping(t *testing.T) {
	ig := NewIntegrator([]int64{0}, nil, 0, nil)
	require.True(t, ig.StepShouldContinue())
	ig.Terminate("done")
	require.False(t, ig.StepShouldContinue())
}

func TestRegisterNextJumpTime_WritesTStopDirectly(t *testing.T) {
	ig := NewIntegrator([]int64{0}, nil, 0, nil)
	RegisterNextJumpTime(ig, 12.5)
	require.Equal(t, 12.5, ig.TStop)
	require.Empty(t, ig.TStops)
}

func TestIntegrator_StepShouldContinueDefaultsTrue(t *testing.T) {
	ig := NewIntegrator([]int64{0}, nil, 0, nil)
	require.True(t, ig.StepShouldContinue())
}
