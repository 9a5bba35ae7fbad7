package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadProblemFromFile_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problem.json")
	config := `{
		"name": "birth-death",
		"species": [{"name": "N"}],
		"mass_action_jumps": [
			{"name": "birth", "net_stoch": [{"species": "N", "coeff": 1}], "rate_constant": 10}
		],
		"initial_counts": {"N": 20}
	}`
	require.NoError(t, os.WriteFile(path, []byte(config), 0o644))

	problem, err := loadProblemFromFile(path)
	require.NoError(t, err)
	require.Equal(t, 1, problem.NumSpecies)
	require.Equal(t, []int64{20}, problem.U0)
}

func TestLoadProblemFromFile_MissingFile(t *testing.T) {
	_, err := loadProblemFromFile("/nonexistent/path/problem.json")
	require.Error(t, err)
}

func TestLoadProblemFromFile_InvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := loadProblemFromFile(path)
	require.Error(t, err)
}

func TestLoadProblemFromFile_InvalidProblemConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	_, err := loadProblemFromFile(path)
	require.Error(t, err)
}
