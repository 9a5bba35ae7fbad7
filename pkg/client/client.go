// Package client is a thin HTTP client for ssacore-server, the run
// lifecycle surface of the jump-aggregator engine: register a jump
// problem, start/stop a trajectory run against it, and poll its
// snapshot.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/daniacca/ssacore/internal/ssa"
)

// Client talks to one ssacore-server instance.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client against baseURL (e.g. "http://localhost:8080").
// A nil httpClient falls back to http.DefaultClient's zero-value equivalent.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// StartRunRequest is the body accepted by POST /run/{id}/start.
type StartRunRequest struct {
	ProblemID  string  `json:"problem_id"`
	Aggregator string  `json:"aggregator"`
	EndTime    float64 `json:"end_time"`
	Seed       int64   `json:"seed,omitempty"`
}

// CreateProblem registers a jump problem config under id.
func (c *Client) CreateProblem(ctx context.Context, id string, cfg ssa.JumpProblemConfig) error {
	body, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal problem config: %w", err)
	}
	return c.postJSON(ctx, "/problem/"+id, body)
}

// StartRun starts a trajectory run under runID against a previously
// registered problem.
func (c *Client) StartRun(ctx context.Context, runID string, req StartRunRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal start request: %w", err)
	}
	return c.postJSON(ctx, "/run/"+runID+"/start", body)
}

// StopRun requests early termination of a running trajectory.
func (c *Client) StopRun(ctx context.Context, runID string) error {
	return c.postJSON(ctx, "/run/"+runID+"/stop", nil)
}

// GetSnapshot fetches the current state of a run.
func (c *Client) GetSnapshot(ctx context.Context, runID string) (ssa.TrajectorySnapshot, error) {
	u, err := url.JoinPath(c.baseURL, "run", runID, "snapshot")
	if err != nil {
		return ssa.TrajectorySnapshot{}, fmt.Errorf("build url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return ssa.TrajectorySnapshot{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ssa.TrajectorySnapshot{}, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return ssa.TrajectorySnapshot{}, fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(b))
	}

	var snap ssa.TrajectorySnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return ssa.TrajectorySnapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// ListRuns returns the IDs of every run the server currently tracks.
func (c *Client) ListRuns(ctx context.Context) ([]string, error) {
	u, err := url.JoinPath(c.baseURL, "runs")
	if err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(b))
	}

	var ids []string
	if err := json.NewDecoder(resp.Body).Decode(&ids); err != nil {
		return nil, fmt.Errorf("decode run list: %w", err)
	}
	return ids, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body []byte) error {
	u, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("build url: %w", err)
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, string(b))
	}
	return nil
}
