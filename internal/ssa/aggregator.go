package ssa

import "math"

// Integrator is the stepper-owned mutable context every aggregator
// reads and writes through, mirroring the external collaborator
// surface fixed by spec.md §6: `integrator.u`, `.p`, `.t`, `.tstop`,
// `u_modified!`, `add_tstop!`, `terminate!`, and the callback vector.
// The stepper is the single owner; it hands mutable access to the
// aggregator only for the duration of ExecuteJumps/GenerateJumps
// (spec.md §9 "Callback / stepper coupling").
type Integrator struct {
	U []int64 // well-mixed state; nil when Spatial is in use
	P Params
	T float64

	// TStop is the aggregator-published next jump time. RegisterNextJumpTime
	// writes here directly; per spec.md §6 it MUST NOT also push onto
	// TStops, which would degrade stepping to O(log N) per jump.
	TStop float64

	Spatial *SpatialState // non-nil for the spatial aggregator

	TStops       []float64 // sorted ascending user checkpoints
	SaveAt       []float64 // sorted ascending save schedule
	keepStepping bool
	uModified    bool

	Callbacks []func(*Integrator)

	Logger Logger
}

// NewIntegrator builds an Integrator over a well-mixed state.
func NewIntegrator(u []int64, p Params, t0 float64, logger Logger) *Integrator {
	if logger == nil {
		logger = NewNoOpLogger()
	}
	return &Integrator{U: u, P: p, T: t0, keepStepping: true, Logger: logger}
}

// UModified marks that U (or Spatial) was mutated outside the normal
// affect path, matching the teacher's integrator contract name.
func (ig *Integrator) UModified() { ig.uModified = true }

// AddTStop inserts a user checkpoint time, keeping TStops sorted.
func (ig *Integrator) AddTStop(t float64) {
	i := 0
	for i < len(ig.TStops) && ig.TStops[i] < t {
		i++
	}
	ig.TStops = append(ig.TStops, 0)
	copy(ig.TStops[i+1:], ig.TStops[i:])
	ig.TStops[i] = t
}

// Terminate marks the trajectory for a clean stop; the next
// StepShouldContinue check returns false.
func (ig *Integrator) Terminate(retcode string) {
	ig.keepStepping = false
	if retcode != "" {
		ig.Logger.Infof("trajectory terminated: %s", retcode)
	}
}

// StepShouldContinue reports whether the stepper should keep going.
func (ig *Integrator) StepShouldContinue() bool { return ig.keepStepping }

// RegisterNextJumpTime writes p's published next jump time into
// integrator.TStop, per spec.md §6 — a plain assignment, never an
// insertion into TStops.
func RegisterNextJumpTime(ig *Integrator, nextJumpTime float64) {
	ig.TStop = nextJumpTime
}

// Aggregator is the shared interface every jump aggregator satisfies
// (spec.md §9 "Polymorphic aggregators"): a tagged-variant family, not
// a class hierarchy. Each concrete aggregator (Coevolve, RSSACR,
// SpatialRSSACRDirect) implements this directly; callers that need to
// dispatch across aggregator kinds do so on the interface, never on a
// shared base class.
type Aggregator interface {
	// Initialize builds internal tables from the jump problem and the
	// integrator's initial state, and schedules the first jump.
	Initialize(problem *JumpProblem, ig *Integrator) error

	// ExecuteJumps applies the currently scheduled jump's affect, then
	// refreshes whatever internal state depends on it.
	ExecuteJumps(ig *Integrator) error

	// GenerateJumps computes and publishes the next (jump, jump time)
	// pair, writing ig.TStop via RegisterNextJumpTime.
	GenerateJumps(ig *Integrator) error

	NextJumpTime() float64
	NextJump() int
	EndTime() float64
	RNG() Source
}

// jumpOrNone is the sentinel jump index meaning "no jump scheduled",
// used when every rate in a catalog is currently zero.
const jumpOrNone = -1

func isDisabled(t float64) bool { return math.IsInf(t, 1) }
