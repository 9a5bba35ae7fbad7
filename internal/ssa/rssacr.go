package ssa

import "math"

// RSSACR is the well-mixed rejection-based aggregator of spec.md §4.C7:
// a BracketEngine supplies conservative [r_lo, r_hi] rate envelopes, a
// PriorityTable samples a candidate jump proportional to r_hi, and a
// uniform draw against the exact rate decides accept or reject. Accept
// and reject are both resolved inside GenerateJumps, which loops until
// a candidate is actually accepted before publishing it — so a Step
// always fires. Brackets — and therefore PriorityTable entries — are
// refreshed lazily, only for species that actually leave their stale
// envelope.
type RSSACR struct {
	problem *JumpProblem
	bracket *BracketEngine
	pt      *PriorityTable
	dep     DependencyGraph

	// speciesDependents[s] lists every jump whose rate reads species s,
	// used to know which PriorityTable entries a bracket refresh for s
	// must touch.
	speciesDependents [][]int

	rng     Source
	logger  Logger
	endTime float64

	nextT      float64
	candidateJ int
}

// NewRSSACR creates an uninitialized RSSACR aggregator; call Initialize
// before stepping.
func NewRSSACR(rng Source, endTime float64, logger Logger) *RSSACR {
	if logger == nil {
		logger = NewNoOpLogger()
	}
	return &RSSACR{rng: rng, endTime: endTime, logger: logger, candidateJ: jumpOrNone}
}

func choosePriorityTableMinexp(rHigh []float64) int {
	min := math.Inf(1)
	for _, r := range rHigh {
		if r > 0 && r < min {
			min = r
		}
	}
	if math.IsInf(min, 1) {
		return 0
	}
	return int(math.Floor(math.Log2(min))) - 1
}

func buildSpeciesDependents(problem *JumpProblem) [][]int {
	out := make([][]int, problem.NumSpecies)
	for k := 0; k < problem.NumJumps(); k++ {
		for s := range readSetOf(problem, k) {
			out[s] = append(out[s], k)
		}
	}
	return out
}

func writtenSpecies(problem *JumpProblem, k int) []int {
	set := writeSetOf(problem, k)
	out := make([]int, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	return out
}

// Initialize builds the bracket engine, dependency graph, and priority
// table from the jump problem's initial state.
func (a *RSSACR) Initialize(problem *JumpProblem, ig *Integrator) error {
	a.problem = problem
	dep, err := ResolveDependencyGraph(problem)
	if err != nil {
		return err
	}
	a.dep = dep
	a.speciesDependents = buildSpeciesDependents(problem)
	a.bracket = NewBracketEngine(problem, ig.U, a.logger)

	rHigh := make([]float64, problem.NumJumps())
	for k := range rHigh {
		_, hi := a.bracket.RateBounds(k)
		rHigh[k] = hi
	}
	a.pt = NewPriorityTable(choosePriorityTableMinexp(rHigh))
	for k, hi := range rHigh {
		if err := a.pt.Insert(PID(k), hi); err != nil {
			return err
		}
	}

	return a.GenerateJumps(ig)
}

// GenerateJumps resolves the full rejection-sampling loop of spec.md
// §4.C7 internally: it repeatedly draws a waiting-time increment from
// the aggregate upper-bound Poisson process, samples a candidate jump
// proportional to its r_hi, and accepts it with probability
// rate(candidate)/r_hi(candidate). Rejections accumulate elapsed time
// and loop again without ever being observed outside this method — a
// Step only begins once a candidate is actually accepted, so by the
// time RegisterNextJumpTime runs, ExecuteJumps is guaranteed to fire
// the published candidate rather than discover a null event.
func (a *RSSACR) GenerateJumps(ig *Integrator) error {
	t := ig.T
	for {
		total := a.pt.Total()
		if total <= 0 {
			ig.TStop = a.endTime
			a.candidateJ = jumpOrNone
			return nil
		}
		t += a.rng.Exp(total)
		if t > a.endTime {
			ig.TStop = a.endTime
			a.candidateJ = jumpOrNone
			return nil
		}

		cand, err := a.pt.Sample(a.rng)
		if err != nil {
			return err
		}
		k := int(cand)

		exact := evalRate(a.problem, k, ig.U, ig.P, t)
		_, hi := a.bracket.RateBounds(k)
		if a.rng.Float64()*hi <= exact {
			a.nextT = t
			a.candidateJ = k
			RegisterNextJumpTime(ig, t)
			return nil
		}
		// rejected: null event, keep accumulating elapsed time and retry
	}
}

// ExecuteJumps applies the already-accepted candidate's net
// stoichiometry, advances ig.T to its time, and refreshes any species
// bracket the new counts fall outside of.
func (a *RSSACR) ExecuteJumps(ig *Integrator) error {
	if a.candidateJ == jumpOrNone {
		return nil
	}
	k := a.candidateJ
	ig.T = a.nextT

	if a.problem.IsMassAction(k) {
		applyNetStoch(ig.U, a.problem.MassActionJumpAt(k))
	} else {
		a.problem.GeneralJumpAt(k).Affect(ig)
	}
	ig.UModified()

	touchedPT := make(map[int]struct{})
	for _, s := range writtenSpecies(a.problem, k) {
		if a.bracket.IsOutsideBrackets(s, ig.U[s]) {
			a.bracket.UpdateSpeciesBracket(s, ig.U[s], a.speciesDependents[s])
			for _, j := range a.speciesDependents[s] {
				touchedPT[j] = struct{}{}
			}
		}
	}
	for j := range touchedPT {
		old := a.pt.Priority(PID(j))
		_, newHi := a.bracket.RateBounds(j)
		if old != newHi {
			if err := a.pt.Update(PID(j), old, newHi); err != nil {
				return err
			}
		}
	}
	return nil
}

func (a *RSSACR) NextJumpTime() float64 {
	if a.candidateJ == jumpOrNone {
		return a.endTime
	}
	return a.nextT
}

func (a *RSSACR) NextJump() int    { return a.candidateJ }
func (a *RSSACR) EndTime() float64 { return a.endTime }
func (a *RSSACR) RNG() Source      { return a.rng }
