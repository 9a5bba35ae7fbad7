package ssa

// DependencyGraph maps a jump index to the set of jump indices whose
// rate depends on state the first jump writes (spec.md §3 "Dependency
// graph G_dep"). Every jump is required to depend on itself
// (spec.md: "every k ∈ G_dep[k] (self-dependencies are forced)").
type DependencyGraph [][]int

// BuildDependencyGraph computes G_dep from stoichiometry and the
// general-jump VarsTouched/VarsWritten annotations, per spec.md §4.C5:
// for each jump k, take its write set (species touched by its net
// stoichiometry, or VarsWritten for a general jump), intersect against
// every jump j's read set (species named in its react_stoch, or
// VarsTouched for a general jump), and add an edge k->j whenever they
// intersect. k->k is always added.
func BuildDependencyGraph(problem *JumpProblem) DependencyGraph {
	n := problem.NumJumps()
	writeSets := make([]map[int]struct{}, n)
	readSets := make([]map[int]struct{}, n)

	for k := 0; k < n; k++ {
		writeSets[k] = writeSetOf(problem, k)
		readSets[k] = readSetOf(problem, k)
	}

	g := make(DependencyGraph, n)
	for k := 0; k < n; k++ {
		deps := make([]int, 0, 4)
		seen := make(map[int]struct{}, 4)
		for j := 0; j < n; j++ {
			if j == k || sharesSpecies(writeSets[k], readSets[j]) {
				if _, ok := seen[j]; !ok {
					deps = append(deps, j)
					seen[j] = struct{}{}
				}
			}
		}
		g[k] = deps
	}
	return g
}

func writeSetOf(problem *JumpProblem, k int) map[int]struct{} {
	set := make(map[int]struct{})
	if problem.IsMassAction(k) {
		for _, e := range problem.MassActionJumpAt(k).NetStoch {
			set[e.Species] = struct{}{}
		}
		return set
	}
	gj := problem.GeneralJumpAt(k)
	written := gj.VarsWritten
	if len(written) == 0 {
		written = gj.VarsTouched
	}
	for _, s := range written {
		set[s] = struct{}{}
	}
	return set
}

func readSetOf(problem *JumpProblem, k int) map[int]struct{} {
	set := make(map[int]struct{})
	if problem.IsMassAction(k) {
		for _, e := range problem.MassActionJumpAt(k).ReactStoch {
			set[e.Species] = struct{}{}
		}
		return set
	}
	gj := problem.GeneralJumpAt(k)
	for _, s := range gj.VarsTouched {
		set[s] = struct{}{}
	}
	return set
}

func sharesSpecies(a, b map[int]struct{}) bool {
	if len(a) > len(b) {
		a, b = b, a
	}
	for s := range a {
		if _, ok := b[s]; ok {
			return true
		}
	}
	return false
}

// ResolveDependencyGraph returns problem.DepGraph if the caller supplied
// one, after validating its node count, or builds one from stoichiometry
// otherwise. A missing graph is never an error: the built graph takes a
// general jump's rate dependence only from its VarsTouched, so a rate
// that reads species not listed there gets no edges for them.
func ResolveDependencyGraph(problem *JumpProblem) (DependencyGraph, error) {
	if problem.DepGraph != nil {
		if len(problem.DepGraph) != problem.NumJumps() {
			return nil, newConfigurationError(
				"dependency graph has %d nodes, expected %d", len(problem.DepGraph), problem.NumJumps())
		}
		return problem.DepGraph, nil
	}

	// An empty VarsTouched is a legitimate declaration — a rate driven
	// purely by t (e.g. a seasonal forcing) depends on no species, so
	// BuildDependencyGraph below correctly gives it no incoming edges
	// besides the forced self-dependency.
	return BuildDependencyGraph(problem), nil
}
