package ssa

import "sort"

// Stepper drives any Aggregator through a trajectory, the boundary
// collaborator of spec.md §6: it owns none of the aggregator's internal
// tables, only the Integrator and the decision of when to stop.
//
// Open question (spec.md §8, "does a tie between tstop and a user
// checkpoint retry the draw or fire once"): this package resolves it as
// fire-once. A jump whose time exactly coincides with a SaveAt
// checkpoint fires exactly once at that time; flushSaves then emits the
// checkpoint against the already-updated state. Run sorts TStops but
// does not stop at its entries: only jump times and the aggregator's end
// time bound a step. Retrying the draw on an exact tie
// would, at floating-point granularity, only ever happen by explicit
// user construction (e.g. a deterministic RateInterval boundary lined
// up with a save point) and gains nothing over firing once.
type Stepper struct {
	agg Aggregator
	ig  *Integrator

	jumpsFired int
	saveIdx    int
}

// NewStepper pairs an Aggregator with the Integrator it will drive.
// Initialize must already have been called on agg.
func NewStepper(agg Aggregator, ig *Integrator) *Stepper {
	return &Stepper{agg: agg, ig: ig}
}

// Run steps the trajectory forward until the integrator stops wanting
// to continue or the aggregator's end time is reached, invoking
// onSave at every crossed SaveAt checkpoint and every fired jump's
// resulting state. onSave may be nil.
func (st *Stepper) Run(onSave func(t float64, u []int64)) error {
	sort.Float64s(st.ig.SaveAt)
	sort.Float64s(st.ig.TStops)

	if onSave != nil && len(st.ig.SaveAt) > 0 && st.ig.SaveAt[0] == st.ig.T {
		onSave(st.ig.T, st.ig.U)
		st.saveIdx = 1
	}

	reachedEnd := false
	for st.ig.StepShouldContinue() {
		if st.agg.NextJump() == jumpOrNone {
			reachedEnd = true
			break
		}
		if isDisabled(st.agg.NextJumpTime()) && st.agg.NextJumpTime() >= st.agg.EndTime() {
			reachedEnd = true
			break
		}
		if st.agg.NextJumpTime() > st.agg.EndTime() {
			reachedEnd = true
			break
		}

		if err := st.agg.ExecuteJumps(st.ig); err != nil {
			return err
		}
		st.jumpsFired++

		for _, cb := range st.ig.Callbacks {
			cb(st.ig)
		}
		if onSave != nil {
			onSave(st.ig.T, st.ig.U)
		}
		st.flushSaves(onSave)

		if !st.ig.StepShouldContinue() {
			break
		}
		if err := st.agg.GenerateJumps(st.ig); err != nil {
			return err
		}
	}
	if reachedEnd {
		st.ig.T = st.agg.EndTime()
		st.flushSaves(onSave)
	}
	return nil
}

// flushSaves invokes onSave for every SaveAt checkpoint at or before the
// integrator's current time that has not yet been emitted.
func (st *Stepper) flushSaves(onSave func(t float64, u []int64)) {
	if onSave == nil {
		return
	}
	for st.saveIdx < len(st.ig.SaveAt) && st.ig.SaveAt[st.saveIdx] <= st.ig.T {
		onSave(st.ig.T, st.ig.U)
		st.saveIdx++
	}
}

// JumpsFired returns the number of jumps executed so far this run.
func (st *Stepper) JumpsFired() int { return st.jumpsFired }
