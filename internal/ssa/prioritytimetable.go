package ssa

import "math"

// pttOutside is the sentinel (group, slot) recorded for a pid whose
// scheduled time currently falls outside the table's sliding window.
var pttOutside = ptSlot{group: 0, slot: 0}

// PriorityTimeTable is the windowed bucketed min-time lookup used by
// Next-Reaction-style schedulers (spec.md §3/§4.C4). A sliding window
// [mintime, mintime+ngroups*timestep) is partitioned into ngroups equal
// slots; entries with times inside the window live in their slot,
// entries outside are tracked separately. getFirst scans groups in
// slot order and returns the minimum inside the earliest nonempty one.
type PriorityTimeTable struct {
	mintime  float64
	timestep float64
	ngroups  int

	groups     [][]PID // index 0..ngroups-1: in-window slots
	outside    map[PID]struct{}
	pidToGroup []ptSlot // pttOutside for pids in outside; an in-window pid at slot 0 of group 0 records the same value, so membership in outside decides
	times      []float64
}

// NewPriorityTimeTable creates a table over window
// [mintime, mintime+ngroups*timestep).
func NewPriorityTimeTable(mintime, timestep float64, ngroups int) *PriorityTimeTable {
	t := &PriorityTimeTable{
		mintime:  mintime,
		timestep: timestep,
		ngroups:  ngroups,
		groups:   make([][]PID, ngroups),
		outside:  make(map[PID]struct{}),
	}
	return t
}

func (t *PriorityTimeTable) maxtime() float64 {
	return t.mintime + float64(t.ngroups)*t.timestep
}

func (t *PriorityTimeTable) ensurePid(pid PID) {
	for len(t.pidToGroup) <= int(pid) {
		t.pidToGroup = append(t.pidToGroup, ptSlot{group: -1, slot: -1})
		t.times = append(t.times, math.Inf(1))
	}
}

// slotFor maps a time to its in-window slot index, clamped into
// [0, ngroups). Times outside the window must be checked by the caller
// before calling slotFor.
func (t *PriorityTimeTable) slotFor(tm float64) int {
	g := int(math.Ceil((tm - t.mintime) / t.timestep))
	if g < 0 {
		g = 0
	}
	if g >= t.ngroups {
		g = t.ngroups - 1
	}
	return g
}

func (t *PriorityTimeTable) removeFromCurrent(pid PID) {
	if _, ok := t.outside[pid]; ok {
		delete(t.outside, pid)
		return
	}
	loc := t.pidToGroup[pid]
	if loc.group < 0 {
		return // never inserted (ensurePid records (-1, -1))
	}
	slot := &t.groups[loc.group]
	idx := loc.slot
	last := len(*slot) - 1
	(*slot)[idx] = (*slot)[last]
	*slot = (*slot)[:last]
	if idx != last && len(*slot) > idx {
		t.pidToGroup[(*slot)[idx]] = ptSlot{group: loc.group, slot: idx}
	}
}

// Insert records pid's next scheduled fire time t. If t is at or past
// the window's end, pid is stashed outside the window (back-pointer
// (0,0) per spec.md §4.C4); otherwise it is slotted at
// ceil((t-mintime)/timestep), clamped into range.
func (t *PriorityTimeTable) Insert(pid PID, tm float64) {
	t.ensurePid(pid)
	t.times[pid] = tm

	if tm >= t.maxtime() || tm < t.mintime {
		t.outside[pid] = struct{}{}
		t.pidToGroup[pid] = pttOutside
		return
	}
	g := t.slotFor(tm)
	slot := len(t.groups[g])
	t.groups[g] = append(t.groups[g], pid)
	t.pidToGroup[pid] = ptSlot{group: g, slot: slot}
}

// Update moves pid from its old scheduled time to a new one, handling
// in-window/out-of-window transitions and cross-slot moves symmetrically.
func (t *PriorityTimeTable) Update(pid PID, tOld, tNew float64) {
	t.ensurePid(pid)
	t.removeFromCurrent(pid)
	t.Insert(pid, tNew)
}

// GetFirst returns the pid with the smallest scheduled time among
// entries currently inside the window, scanning slots in time order
// and then linearly inside the first nonempty slot. Returns (0, 0,
// false) if the window holds no entries — callers should then fall
// back to the outside set or trigger Rebuild.
func (t *PriorityTimeTable) GetFirst() (PID, float64, bool) {
	for g := 0; g < t.ngroups; g++ {
		if len(t.groups[g]) == 0 {
			continue
		}
		best := t.groups[g][0]
		bestTime := t.times[best]
		for _, pid := range t.groups[g][1:] {
			if t.times[pid] < bestTime {
				best = pid
				bestTime = t.times[pid]
			}
		}
		return best, bestTime, true
	}
	return 0, 0, false
}

// NeedsRebuild reports whether the window is exhausted: every entry
// currently tracked is parked outside the window. Per spec.md §7 this
// is an ExhaustionError, recoverable locally via Rebuild.
func (t *PriorityTimeTable) NeedsRebuild() bool {
	for g := 0; g < t.ngroups; g++ {
		if len(t.groups[g]) > 0 {
			return false
		}
	}
	return len(t.outside) > 0
}

// Rebuild recomputes slotting under a new window, scanning every
// tracked priority once and re-inserting it. O(N).
func (t *PriorityTimeTable) Rebuild(newMintime, newTimestep float64) error {
	if newTimestep <= 0 {
		return newConfigurationError("priority time table: timestep must be positive, got %v", newTimestep)
	}
	oldTimes := make([]float64, len(t.times))
	copy(oldTimes, t.times)

	t.mintime = newMintime
	t.timestep = newTimestep
	t.groups = make([][]PID, t.ngroups)
	t.outside = make(map[PID]struct{})
	t.pidToGroup = make([]ptSlot, len(oldTimes))
	for i := range t.pidToGroup {
		t.pidToGroup[i] = ptSlot{group: -1, slot: -1}
	}

	for pid, tm := range oldTimes {
		if math.IsInf(tm, 0) && tm > 0 {
			continue // never-scheduled slot, skip
		}
		t.Insert(PID(pid), tm)
	}
	return nil
}

// Time returns pid's currently recorded scheduled time.
func (t *PriorityTimeTable) Time(pid PID) float64 {
	if int(pid) >= len(t.times) {
		return math.Inf(1)
	}
	return t.times[pid]
}
