package ssa

// fallingFactorial computes C(n, nu) = n*(n-1)*...*(n-nu+1), the
// combinatorial factor in a mass-action propensity. Returns 0 when
// n < nu (not enough molecules to support the reaction order), and 1
// when nu == 0 (zero-order reactant contributes nothing).
func fallingFactorial(n int64, nu int) float64 {
	if nu <= 0 {
		return 1
	}
	if n < int64(nu) {
		return 0
	}
	result := 1.0
	for i := 0; i < nu; i++ {
		result *= float64(n - int64(i))
	}
	return result
}

// evalMassActionRate evaluates a mass-action jump's propensity at state
// u: RateConstant times the product of falling-factorial combinatorial
// factors over its reactant list (spec.md §3/§4.C1).
func evalMassActionRate(u []int64, j *MassActionJump) float64 {
	rate := j.RateConstant
	if rate == 0 {
		return 0
	}
	for _, entry := range j.ReactStoch {
		rate *= fallingFactorial(u[entry.Species], entry.Coeff)
		if rate == 0 {
			return 0
		}
	}
	return rate
}

// evalRate evaluates jump k's instantaneous rate at (u, p, t). For a
// mass-action jump this is the combinatorial propensity; for a general
// jump the Rate closure is called verbatim. Returned rates may be 0 —
// callers treat 0 as "disabled this step" and schedule t = +Inf.
func evalRate(problem *JumpProblem, k int, u []int64, p Params, t float64) float64 {
	if problem.IsMassAction(k) {
		return evalMassActionRate(u, problem.MassActionJumpAt(k))
	}
	gj := problem.GeneralJumpAt(k)
	return gj.Rate(u, p, t)
}

// applyNetStoch applies a mass-action jump's net stoichiometry to u in
// place. Negative Δ consumes, positive Δ produces.
func applyNetStoch(u []int64, j *MassActionJump) {
	for _, entry := range j.NetStoch {
		u[entry.Species] += int64(entry.Coeff)
	}
}
