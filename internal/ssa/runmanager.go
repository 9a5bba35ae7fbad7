package ssa

import (
	"fmt"
	"sync"
)

// run is one in-flight or completed trajectory under RunManager's
// control: the aggregator/integrator pair, its driving Stepper, and the
// goroutine's completion signal.
type run struct {
	agg     Aggregator
	ig      *Integrator
	stepper *Stepper
	done    chan struct{}
	err     error
}

// RunManager manages multiple independently-seeded trajectories, each
// isolated from the others, adapted from the teacher's
// EnvironmentManager/Environment.Run-Stop pair: StartRun launches a
// trajectory's Stepper.Run loop in its own goroutine; StopRun requests
// an early, clean stop via Integrator.Terminate rather than killing the
// goroutine outright.
type RunManager struct {
	mu     sync.RWMutex
	runs   map[string]*run
	logger Logger
}

// NewRunManager creates an empty manager.
func NewRunManager(logger Logger) *RunManager {
	if logger == nil {
		logger = NewNoOpLogger()
	}
	return &RunManager{runs: make(map[string]*run), logger: logger}
}

// StartRun initializes agg against problem and ig, then drives it to
// completion (or early Terminate) in a background goroutine under id.
// onSave may be nil.
func (rm *RunManager) StartRun(id string, problem *JumpProblem, agg Aggregator, ig *Integrator, onSave func(t float64, u []int64)) error {
	rm.mu.Lock()
	if _, exists := rm.runs[id]; exists {
		rm.mu.Unlock()
		return fmt.Errorf("run %s already exists", id)
	}

	if err := agg.Initialize(problem, ig); err != nil {
		rm.mu.Unlock()
		return fmt.Errorf("run %s: initialize failed: %w", id, err)
	}

	r := &run{agg: agg, ig: ig, stepper: NewStepper(agg, ig), done: make(chan struct{})}
	rm.runs[id] = r
	rm.mu.Unlock()

	go func() {
		defer close(r.done)
		r.err = r.stepper.Run(onSave)
	}()
	return nil
}

// StopRun requests a clean early stop of run id; the trajectory's
// current jump still finishes applying, but no further jumps fire.
func (rm *RunManager) StopRun(id string) error {
	rm.mu.RLock()
	r, exists := rm.runs[id]
	rm.mu.RUnlock()
	if !exists {
		return fmt.Errorf("run %s does not exist", id)
	}
	r.ig.Terminate("stopped by operator")
	return nil
}

// Wait blocks until run id's goroutine finishes and returns its error.
func (rm *RunManager) Wait(id string) error {
	rm.mu.RLock()
	r, exists := rm.runs[id]
	rm.mu.RUnlock()
	if !exists {
		return fmt.Errorf("run %s does not exist", id)
	}
	<-r.done
	return r.err
}

// GetRun returns run id's integrator and aggregator for inspection
// (e.g. to take a TrajectorySnapshot).
func (rm *RunManager) GetRun(id string) (*Integrator, Aggregator, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	r, exists := rm.runs[id]
	if !exists {
		return nil, nil, false
	}
	return r.ig, r.agg, true
}

// JumpsFired returns the number of jumps fired so far by run id.
func (rm *RunManager) JumpsFired(id string) (int, bool) {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	r, exists := rm.runs[id]
	if !exists {
		return 0, false
	}
	return r.stepper.JumpsFired(), true
}

// ListRuns returns every tracked run ID.
func (rm *RunManager) ListRuns() []string {
	rm.mu.RLock()
	defer rm.mu.RUnlock()
	ids := make([]string, 0, len(rm.runs))
	for id := range rm.runs {
		ids = append(ids, id)
	}
	return ids
}

// DeleteRun stops run id if still active, waits for its goroutine to
// finish, and removes it from the manager.
func (rm *RunManager) DeleteRun(id string) error {
	rm.mu.RLock()
	r, exists := rm.runs[id]
	rm.mu.RUnlock()
	if !exists {
		return fmt.Errorf("run %s does not exist", id)
	}

	r.ig.Terminate("")
	<-r.done

	rm.mu.Lock()
	delete(rm.runs, id)
	rm.mu.Unlock()
	return nil
}
