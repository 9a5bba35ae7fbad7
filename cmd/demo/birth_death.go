package main

import "github.com/daniacca/ssacore/internal/ssa"

// birthDeathProblem is the textbook single-species birth-death process:
// birth at constant rate b, death at rate d*n. A pure mass-action
// catalog, suited to RSSACR.
func birthDeathProblem() *ssa.JumpProblem {
	return &ssa.JumpProblem{
		NumSpecies:   1,
		SpeciesNames: []string{"N"},
		MassActionJumps: []ssa.MassActionJump{
			{
				Name:         "birth",
				ReactStoch:   nil,
				NetStoch:     []ssa.StoichEntry{{Species: 0, Coeff: 1}},
				RateConstant: 10.0,
			},
			{
				Name:         "death",
				ReactStoch:   []ssa.StoichEntry{{Species: 0, Coeff: 1}},
				NetStoch:     []ssa.StoichEntry{{Species: 0, Coeff: -1}},
				RateConstant: 0.1,
			},
		},
		U0: []int64{50},
	}
}
