package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/daniacca/ssacore/internal/ssa"
)

// extractID pulls the path segment after prefix, e.g.
// extractID("/problem/foo", "/problem/") == "foo".
func extractID(path, prefix string) string {
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	rest := path[len(prefix):]
	if idx := strings.Index(rest, "/"); idx >= 0 {
		return rest[:idx]
	}
	return rest
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// POST /problem/{id}
// Body: ssa.JumpProblemConfig JSON. Builds and stores a JumpProblem.
func (s *Server) handleCreateProblem(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id := extractID(r.URL.Path, "/problem/")
	if id == "" {
		http.Error(w, "problem ID is required in path: /problem/{id}", http.StatusBadRequest)
		return
	}

	var cfg ssa.JumpProblemConfig
	if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
		http.Error(w, "invalid problem json: "+err.Error(), http.StatusBadRequest)
		return
	}

	problem, err := ssa.BuildProblemFromConfig(cfg)
	if err != nil {
		http.Error(w, "cannot build problem: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.problems[id] = problem
	s.mu.Unlock()

	s.logger.Infof("problem stored: id=%s species=%d jumps=%d", id, problem.NumSpecies, problem.NumJumps())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("problem stored"))
}

// startRunRequest is the body of POST /run/{id}/start.
type startRunRequest struct {
	ProblemID  string `json:"problem_id"`
	Aggregator string `json:"aggregator"` // "coevolve" or "rssacr"
	EndTime    float64 `json:"end_time"`
	Seed       int64   `json:"seed,omitempty"`
}

// POST /run/{id}/start
func (s *Server) handleStartRun(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id := extractID(r.URL.Path, "/run/")
	if id == "" {
		http.Error(w, "run ID is required in path: /run/{id}/start", http.StatusBadRequest)
		return
	}

	var req startRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.RLock()
	problem, exists := s.problems[req.ProblemID]
	s.mu.RUnlock()
	if !exists {
		http.Error(w, "unknown problem_id: "+req.ProblemID, http.StatusNotFound)
		return
	}

	seed := req.Seed
	if seed == 0 {
		seed = s.defaultSeed
	}
	rng := ssa.NewRandSource(seed)
	adapter := &ssaLoggerAdapter{logger: s.logger}

	var agg ssa.Aggregator
	switch req.Aggregator {
	case "", "rssacr":
		agg = ssa.NewRSSACR(rng, req.EndTime, adapter)
	case "coevolve":
		agg = ssa.NewCoevolve(rng, req.EndTime, adapter)
	default:
		http.Error(w, "unknown aggregator: "+req.Aggregator, http.StatusBadRequest)
		return
	}

	u0 := make([]int64, len(problem.U0))
	copy(u0, problem.U0)
	ig := ssa.NewIntegrator(u0, problem.Params, 0, adapter)

	notifierIDs := s.notifiers.ListNotifiers()
	onSave := func(t float64, u []int64) {
		snapshot := make([]int64, len(u))
		copy(snapshot, u)
		s.notifiers.Enqueue(ssa.JumpFiredEvent{RunID: id, SimTime: t, U: snapshot}, notifierIDs)
	}

	if err := s.runs.StartRun(id, problem, agg, ig, onSave); err != nil {
		http.Error(w, "cannot start run: "+err.Error(), http.StatusConflict)
		return
	}

	s.logger.Infof("run started: id=%s aggregator=%s end_time=%v seed=%d", id, req.Aggregator, req.EndTime, seed)
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write([]byte("run started"))
}

// POST /run/{id}/stop
func (s *Server) handleStopRun(w http.ResponseWriter, r *http.Request) {
	id := extractID(r.URL.Path, "/run/")
	if err := s.runs.StopRun(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("stop requested"))
}

// GET /run/{id}/snapshot
func (s *Server) handleRunSnapshot(w http.ResponseWriter, r *http.Request) {
	id := extractID(r.URL.Path, "/run/")
	ig, _, exists := s.runs.GetRun(id)
	if !exists {
		http.Error(w, "run not found", http.StatusNotFound)
		return
	}

	jumpsFired, _ := s.runs.JumpsFired(id)
	snap := ssa.TrajectorySnapshot{RunID: id, T: ig.T, U: ig.U, JumpsFired: jumpsFired}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		http.Error(w, "cannot encode: "+err.Error(), http.StatusInternalServerError)
		return
	}
}

// GET /runs
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.runs.ListRuns()); err != nil {
		http.Error(w, "cannot encode: "+err.Error(), http.StatusInternalServerError)
		return
	}
}
