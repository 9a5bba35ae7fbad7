package ssa

import "fmt"

// ValidateJumpProblemConfig performs comprehensive validation of a
// JumpProblemConfig before it is compiled into a JumpProblem, in the
// same collect-every-issue style as the teacher's ValidateSchemaConfig.
func ValidateJumpProblemConfig(cfg JumpProblemConfig) error {
	err := &ValidationError{}

	if cfg.Name == "" {
		err.Add("jump problem name is required")
	}
	if len(cfg.Species) == 0 {
		err.Add("at least one species is required")
	}

	speciesSet := make(map[string]bool, len(cfg.Species))
	for _, sp := range cfg.Species {
		if sp.Name == "" {
			err.Add("species name is required")
			continue
		}
		if speciesSet[sp.Name] {
			err.Add("duplicate species name: " + sp.Name)
		} else {
			speciesSet[sp.Name] = true
		}
	}

	jumpNames := make(map[string]bool, len(cfg.MassActionJumps))
	for i, jc := range cfg.MassActionJumps {
		prefix := jumpPrefix(jc.Name, i)

		if jc.Name == "" {
			err.Add(prefix + ": jump name is required")
		} else if jumpNames[jc.Name] {
			err.Add("duplicate jump name: " + jc.Name)
		} else {
			jumpNames[jc.Name] = true
		}

		if jc.RateConstant < 0 {
			err.Add(prefix + ": rate constant must be non-negative")
		}
		if len(jc.NetStoch) == 0 {
			err.Add(prefix + ": net_stoch must name at least one species")
		}

		validateStoichRefs(jc.ReactStoch, prefix, "react_stoch", speciesSet, err)
		validateStoichRefs(jc.NetStoch, prefix, "net_stoch", speciesSet, err)
	}

	for name, n := range cfg.InitialCounts {
		if !speciesSet[name] {
			err.Add("initial_counts: unknown species '" + name + "'")
		} else if n < 0 {
			err.Add("initial_counts: species '" + name + "' has a negative count")
		}
	}

	if cfg.Bracket.Threshold < 0 {
		err.Add("bracket: threshold must be non-negative")
	}
	if cfg.Bracket.Fluct < 0 || cfg.Bracket.Fluct > 1 {
		err.Add("bracket: fluct must be in [0, 1]")
	}

	if err.HasIssues() {
		return err
	}
	return nil
}

func jumpPrefix(name string, idx int) string {
	if name != "" {
		return "jump '" + name + "'"
	}
	return fmt.Sprintf("jump at index %d", idx)
}

func validateStoichRefs(entries []StoichEntryConfig, jumpPrefix, listName string, speciesSet map[string]bool, err *ValidationError) {
	for j, e := range entries {
		entryPrefix := fmt.Sprintf("%s %s entry %d", jumpPrefix, listName, j)
		if e.Species == "" {
			err.Add(entryPrefix + ": species is required")
			continue
		}
		if !speciesSet[e.Species] {
			err.Add(entryPrefix + ": unknown species '" + e.Species + "'")
		}
		if listName == "react_stoch" && e.Coeff < 0 {
			err.Add(entryPrefix + ": react_stoch coefficient must be non-negative")
		}
	}
}
