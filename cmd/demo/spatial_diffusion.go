package main

import "github.com/daniacca/ssacore/internal/ssa"

// spatialDiffusionProblem is a single species "A" undergoing a local
// birth-death reaction at every site of a 4-site ring lattice, plus
// diffusion hops between ring neighbors. Grounded for
// ssa.SpatialRSSACRDirect: a pure mass-action reaction catalog
// (general jumps are not replicated spatially, per spatial.go) shared
// across all sites, wrapped in an ssa.SpatialProblem with a ring
// ssa.SiteTopology and one ssa.DiffusionRule.
func spatialDiffusionProblem() *ssa.SpatialProblem {
	reactions := &ssa.JumpProblem{
		NumSpecies:   1,
		SpeciesNames: []string{"A"},
		MassActionJumps: []ssa.MassActionJump{
			{
				Name:         "birth",
				NetStoch:     []ssa.StoichEntry{{Species: 0, Coeff: 1}},
				RateConstant: 2.0,
			},
			{
				Name:         "death",
				ReactStoch:   []ssa.StoichEntry{{Species: 0, Coeff: 1}},
				NetStoch:     []ssa.StoichEntry{{Species: 0, Coeff: -1}},
				RateConstant: 0.2,
			},
		},
	}

	ring := ssa.SiteTopology{
		NumSites: 4,
		Neighbors: [][]int{
			{1, 3},
			{0, 2},
			{1, 3},
			{2, 0},
		},
	}

	return &ssa.SpatialProblem{
		Problem:  reactions,
		Topology: ring,
		Diffusion: []ssa.DiffusionRule{
			{Species: 0, Rate: 0.5},
		},
	}
}

// spatialInitialState seeds all of species A's initial population at
// site 0, so the demo visibly spreads it across the ring via diffusion.
func spatialInitialState(sp *ssa.SpatialProblem) *ssa.SpatialState {
	state := ssa.NewSpatialState(sp.Topology.NumSites, sp.Problem.NumSpecies)
	state.U[0][0] = 40
	return state
}
