package ssa

// Package-level JSON configuration schema for JumpProblem, mirroring
// the teacher's SchemaConfig/BuildSchemaFromConfig trio. Only
// mass-action jumps are expressible this way — a GeneralJump's rate and
// affect closures are Go code, so problems using them must be
// constructed directly rather than loaded from JSON.

// SpeciesConfig names one species; Description is free-form operator
// documentation, never read by BuildProblemFromConfig.
type SpeciesConfig struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// StoichEntryConfig is one (species name, coefficient) pair, resolved
// to a species index when the problem is built.
type StoichEntryConfig struct {
	Species string `json:"species"`
	Coeff   int    `json:"coeff"`
}

// MassActionJumpConfig is the JSON form of a MassActionJump.
type MassActionJumpConfig struct {
	Name         string              `json:"name"`
	ReactStoch   []StoichEntryConfig `json:"react_stoch,omitempty"`
	NetStoch     []StoichEntryConfig `json:"net_stoch"`
	RateConstant float64             `json:"rate_constant"`
}

// BracketPolicyConfig is the JSON form of a BracketPolicy. A zero value
// (all fields omitted) resolves to DefaultBracketPolicy.
type BracketPolicyConfig struct {
	Fluct     float64 `json:"fluct,omitempty"`
	Threshold int64   `json:"threshold,omitempty"`
	Delta     int64   `json:"delta,omitempty"`
}

// JumpProblemConfig is the top-level JSON document describing a
// mass-action-only JumpProblem: species, jump catalog, initial counts,
// global parameters, and the bracket policy tunables.
type JumpProblemConfig struct {
	Name            string                 `json:"name"`
	Species         []SpeciesConfig        `json:"species"`
	MassActionJumps []MassActionJumpConfig `json:"mass_action_jumps"`
	Params          map[string]float64     `json:"params,omitempty"`
	InitialCounts   map[string]int64       `json:"initial_counts"`
	Bracket         BracketPolicyConfig    `json:"bracket,omitempty"`
}

// BuildProblemFromConfig validates cfg and, on success, constructs a
// JumpProblem with species names resolved to indices.
func BuildProblemFromConfig(cfg JumpProblemConfig) (*JumpProblem, error) {
	if err := ValidateJumpProblemConfig(cfg); err != nil {
		return nil, err
	}

	names := make([]string, len(cfg.Species))
	index := make(map[string]int, len(cfg.Species))
	for i, s := range cfg.Species {
		names[i] = s.Name
		index[s.Name] = i
	}

	u0 := make([]int64, len(names))
	for name, n := range cfg.InitialCounts {
		u0[index[name]] = n
	}

	jumps := make([]MassActionJump, len(cfg.MassActionJumps))
	for i, jc := range cfg.MassActionJumps {
		jumps[i] = MassActionJump{
			Name:         jc.Name,
			ReactStoch:   resolveStoich(jc.ReactStoch, index),
			NetStoch:     resolveStoich(jc.NetStoch, index),
			RateConstant: jc.RateConstant,
		}
	}

	policy := BracketPolicy{Fluct: cfg.Bracket.Fluct, Threshold: cfg.Bracket.Threshold, Delta: cfg.Bracket.Delta}
	if policy == (BracketPolicy{}) {
		policy = DefaultBracketPolicy
	}

	return &JumpProblem{
		NumSpecies:      len(names),
		SpeciesNames:    names,
		MassActionJumps: jumps,
		Params:          Params(cfg.Params),
		U0:              u0,
		Bracket:         policy,
	}, nil
}

func resolveStoich(entries []StoichEntryConfig, index map[string]int) []StoichEntry {
	out := make([]StoichEntry, len(entries))
	for i, e := range entries {
		out[i] = StoichEntry{Species: index[e.Species], Coeff: e.Coeff}
	}
	return out
}
