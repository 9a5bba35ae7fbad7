package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/daniacca/ssacore/internal/ssa"
	"github.com/stretchr/testify/require"
)

func validConfigJSON(t *testing.T) []byte {
	t.Helper()
	cfg := ssa.JumpProblemConfig{
		Name:    "birth-death",
		Species: []ssa.SpeciesConfig{{Name: "N"}},
		MassActionJumps: []ssa.MassActionJumpConfig{
			{Name: "birth", NetStoch: []ssa.StoichEntryConfig{{Species: "N", Coeff: 1}}, RateConstant: 10},
		},
		InitialCounts: map[string]int64{"N": 20},
	}
	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	return data
}

func TestExtractID(t *testing.T) {
	require.Equal(t, "foo", extractID("/problem/foo", "/problem/"))
	require.Equal(t, "foo", extractID("/run/foo/start", "/run/"))
	require.Equal(t, "", extractID("/other/foo", "/problem/"))
}

func TestHandleHealth(t *testing.T) {
	s := NewServer(NewLogger("error"), 1)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "ok", rec.Body.String())
}

func TestHandleCreateProblem_StoresValidConfig(t *testing.T) {
	s := NewServer(NewLogger("error"), 1)
	req := httptest.NewRequest(http.MethodPost, "/problem/p1", bytes.NewReader(validConfigJSON(t)))
	rec := httptest.NewRecorder()

	s.handleCreateProblem(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	s.mu.RLock()
	_, exists := s.problems["p1"]
	s.mu.RUnlock()
	require.True(t, exists)
}

func TestHandleCreateProblem_MissingIDRejected(t *testing.T) {
	s := NewServer(NewLogger("error"), 1)
	req := httptest.NewRequest(http.MethodPost, "/problem/", bytes.NewReader(validConfigJSON(t)))
	rec := httptest.NewRecorder()

	s.handleCreateProblem(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCreateProblem_InvalidConfigRejected(t *testing.T) {
	s := NewServer(NewLogger("error"), 1)
	req := httptest.NewRequest(http.MethodPost, "/problem/p1", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()

	s.handleCreateProblem(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStartRun_UnknownProblemIDRejected(t *testing.T) {
	s := NewServer(NewLogger("error"), 1)
	body, err := json.Marshal(startRunRequest{ProblemID: "missing", Aggregator: "rssacr", EndTime: 10})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/run/r1/start", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleStartRun(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleStartRun_UnknownAggregatorRejected(t *testing.T) {
	s := NewServer(NewLogger("error"), 1)
	createReq := httptest.NewRequest(http.MethodPost, "/problem/p1", bytes.NewReader(validConfigJSON(t)))
	s.handleCreateProblem(httptest.NewRecorder(), createReq)

	body, err := json.Marshal(startRunRequest{ProblemID: "p1", Aggregator: "bogus", EndTime: 10})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/run/r1/start", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	s.handleStartRun(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleStartRun_ThenSnapshotAndListAndStop(t *testing.T) {
	s := NewServer(NewLogger("error"), 1)
	createReq := httptest.NewRequest(http.MethodPost, "/problem/p1", bytes.NewReader(validConfigJSON(t)))
	s.handleCreateProblem(httptest.NewRecorder(), createReq)

	body, err := json.Marshal(startRunRequest{ProblemID: "p1", Aggregator: "rssacr", EndTime: 5, Seed: 3})
	require.NoError(t, err)
	startReq := httptest.NewRequest(http.MethodPost, "/run/r1/start", bytes.NewReader(body))
	startRec := httptest.NewRecorder()
	s.handleStartRun(startRec, startReq)
	require.Equal(t, http.StatusAccepted, startRec.Code)

	require.NoError(t, s.runs.Wait("r1"))

	listRec := httptest.NewRecorder()
	s.handleListRuns(listRec, httptest.NewRequest(http.MethodGet, "/runs", nil))
	require.Equal(t, http.StatusOK, listRec.Code)
	var ids []string
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &ids))
	require.Contains(t, ids, "r1")

	snapRec := httptest.NewRecorder()
	s.handleRunSnapshot(snapRec, httptest.NewRequest(http.MethodGet, "/run/r1/snapshot", nil))
	require.Equal(t, http.StatusOK, snapRec.Code)
	var snap ssa.TrajectorySnapshot
	require.NoError(t, json.Unmarshal(snapRec.Body.Bytes(), &snap))
	require.Equal(t, "r1", snap.RunID)

	stopRec := httptest.NewRecorder()
	s.handleStopRun(stopRec, httptest.NewRequest(http.MethodPost, "/run/r1/stop", nil))
	require.Equal(t, http.StatusOK, stopRec.Code)
}

func TestHandleRunSnapshot_UnknownRunNotFound(t *testing.T) {
	s := NewServer(NewLogger("error"), 1)
	rec := httptest.NewRecorder()
	s.handleRunSnapshot(rec, httptest.NewRequest(http.MethodGet, "/run/missing/snapshot", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleStopRun_UnknownRunNotFound(t *testing.T) {
	s := NewServer(NewLogger("error"), 1)
	rec := httptest.NewRecorder()
	s.handleStopRun(rec, httptest.NewRequest(http.MethodPost, "/run/missing/stop", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
