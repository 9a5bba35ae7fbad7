package ssa

import (
	"encoding/json"
	"fmt"
)

// TrajectorySnapshot is a point-in-time capture of a run's state,
// adapted from the teacher's Snapshot: a run ID, simulation time, and
// either a well-mixed state vector or a per-site spatial state.
type TrajectorySnapshot struct {
	RunID   string    `json:"run_id"`
	T       float64   `json:"t"`
	U       []int64   `json:"u,omitempty"`
	SiteU   [][]int64 `json:"site_u,omitempty"`
	JumpsFired int    `json:"jumps_fired"`
}

// ValidateSnapshot checks a snapshot against a problem's species count:
// exactly one of U or SiteU must be populated and every count must be
// non-negative, and (when problem is non-nil) U's length must match
// NumSpecies.
func ValidateSnapshot(snap TrajectorySnapshot, problem *JumpProblem) error {
	if snap.RunID == "" {
		return fmt.Errorf("snapshot has empty run ID")
	}
	hasU := len(snap.U) > 0
	hasSite := len(snap.SiteU) > 0
	if hasU == hasSite {
		return fmt.Errorf("snapshot must populate exactly one of U or SiteU")
	}

	if hasU {
		if problem != nil && len(snap.U) != problem.NumSpecies {
			return fmt.Errorf("snapshot has %d species, expected %d", len(snap.U), problem.NumSpecies)
		}
		for i, n := range snap.U {
			if n < 0 {
				return fmt.Errorf("species %d has negative count %d", i, n)
			}
		}
	} else {
		for site, u := range snap.SiteU {
			for i, n := range u {
				if n < 0 {
					return fmt.Errorf("site %d species %d has negative count %d", site, i, n)
				}
			}
		}
	}
	return nil
}

// EncodeSnapshotJSON encodes a snapshot to JSON.
func EncodeSnapshotJSON(snap TrajectorySnapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshotJSON decodes a snapshot from JSON.
func DecodeSnapshotJSON(data []byte) (TrajectorySnapshot, error) {
	var snap TrajectorySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return TrajectorySnapshot{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return snap, nil
}
