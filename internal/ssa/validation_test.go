package ssa

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validBirthDeathConfig() JumpProblemConfig {
	return JumpProblemConfig{
		Name:    "birth-death",
		Species: []SpeciesConfig{{Name: "N"}},
		MassActionJumps: []MassActionJumpConfig{
			{Name: "birth", NetStoch: []StoichEntryConfig{{Species: "N", Coeff: 1}}, RateConstant: 10},
			{Name: "death", ReactStoch: []StoichEntryConfig{{Species: "N", Coeff: 1}}, NetStoch: []StoichEntryConfig{{Species: "N", Coeff: -1}}, RateConstant: 0.1},
		},
		InitialCounts: map[string]int64{"N": 50},
	}
}

func TestValidateJumpProblemConfig_Valid(t *testing.T) {
	require.NoError(t, ValidateJumpProblemConfig(validBirthDeathConfig()))
}

func TestValidateJumpProblemConfig_MissingNameAndSpecies(t *testing.T) {
	cfg := JumpProblemConfig{}
	err := ValidateJumpProblemConfig(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "name is required")
	require.Contains(t, err.Error(), "at least one species")
}

func TestValidateJumpProblemConfig_DuplicateSpecies(t *testing.T) {
	cfg := validBirthDeathConfig()
	cfg.Species = append(cfg.Species, SpeciesConfig{Name: "N"})
	err := ValidateJumpProblemConfig(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "duplicate species name")
}

func TestValidateJumpProblemConfig_UnknownSpeciesInStoich(t *testing.T) {
	cfg := validBirthDeathConfig()
	cfg.MassActionJumps[0].NetStoch = []StoichEntryConfig{{Species: "Ghost", Coeff: 1}}
	err := ValidateJumpProblemConfig(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown species 'Ghost'")
}

func TestValidateJumpProblemConfig_NegativeRateConstant(t *testing.T) {
	cfg := validBirthDeathConfig()
	cfg.MassActionJumps[0].RateConstant = -1
	err := ValidateJumpProblemConfig(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "non-negative")
}

func TestValidateJumpProblemConfig_NegativeInitialCount(t *testing.T) {
	cfg := validBirthDeathConfig()
	cfg.InitialCounts["N"] = -5
	err := ValidateJumpProblemConfig(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "negative count")
}

func TestValidateJumpProblemConfig_BadBracketPolicy(t *testing.T) {
	cfg := validBirthDeathConfig()
	cfg.Bracket.Fluct = 1.5
	err := ValidateJumpProblemConfig(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "fluct must be in")
}

func TestBuildProblemFromConfig_ResolvesIndicesAndDefaults(t *testing.T) {
	problem, err := BuildProblemFromConfig(validBirthDeathConfig())
	require.NoError(t, err)
	require.Equal(t, 1, problem.NumSpecies)
	require.Equal(t, []string{"N"}, problem.SpeciesNames)
	require.Equal(t, []int64{50}, problem.U0)
	require.Equal(t, DefaultBracketPolicy, problem.Bracket)
	require.Equal(t, 0, problem.MassActionJumps[1].ReactStoch[0].Species)
}

func TestBuildProblemFromConfig_RejectsInvalidConfig(t *testing.T) {
	_, err := BuildProblemFromConfig(JumpProblemConfig{})
	require.Error(t, err)
}
