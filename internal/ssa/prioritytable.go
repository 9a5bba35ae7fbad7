package ssa

import "math"

// ptSlot is a priority table's per-pid back-pointer: which group the
// pid currently lives in, and at which slot inside that group's dense
// array. Per spec.md §9 "Cyclic back-pointers", both directions are
// plain indices into arenas, never owning pointers.
type ptSlot struct {
	group int
	slot  int
}

// ptGroup is one bucket of the priority table: pids whose priorities
// all lie in [2^(gid+minexp), 2^(gid+minexp+1)), stored as a dense,
// swap-remove-friendly slice, plus the running sum of their priorities.
type ptGroup struct {
	pids []PID
	gsum float64
}

// PriorityTable is the two-level grouped-log priority structure from
// spec.md §3/§4.C3: O(1) expected weighted sampling and O(1) update
// over N positive priorities spanning a wide dynamic range. Group 0 is
// reserved for the zero bucket; positive priorities live in groups
// indexed by gid = floor(log2(r)) - minexp.
type PriorityTable struct {
	minexp int
	groups []ptGroup

	pidToGroup []ptSlot
	priorities []float64

	gsum float64
}

// NewPriorityTable creates an empty priority table. minexp should be
// chosen strictly below floor(log2(r)) for the smallest positive
// priority the table will ever hold, so that prioToGid never computes a
// group below 1 and never needs its clamp away from the reserved zero
// bucket.
func NewPriorityTable(minexp int) *PriorityTable {
	return &PriorityTable{
		minexp: minexp,
		groups: []ptGroup{{}}, // group 0: the zero bucket
	}
}

// prioToGid maps a priority to its group index. prioToGid(0, _) == 0
// by definition (the reserved zero bucket); negative priorities are a
// caller error, not representable here.
func prioToGid(r float64, minexp int) int {
	if r <= 0 {
		return 0
	}
	g := int(math.Floor(math.Log2(r))) - minexp
	if g < 1 {
		// r sits below the range minexp was sized for; degrade into the
		// lowest real bucket rather than colliding with the zero bucket.
		g = 1
	}
	return g
}

// groupMax returns the exclusive upper bound on priorities stored in
// group g: 2^(g+minexp+1).
func groupMax(g, minexp int) float64 {
	return math.Exp2(float64(g + minexp + 1))
}

func (t *PriorityTable) ensureGroup(g int) {
	for len(t.groups) <= g {
		t.groups = append(t.groups, ptGroup{})
	}
}

func (t *PriorityTable) ensurePid(pid PID) {
	for len(t.pidToGroup) <= int(pid) {
		t.pidToGroup = append(t.pidToGroup, ptSlot{group: -1, slot: -1})
		t.priorities = append(t.priorities, 0)
	}
}

// Insert adds pid with priority r. r must be >= 0.
func (t *PriorityTable) Insert(pid PID, r float64) error {
	if r < 0 {
		return newDomainError("priority table: negative priority %v for pid %d", r, pid)
	}
	t.ensurePid(pid)
	g := prioToGid(r, t.minexp)
	t.ensureGroup(g)

	group := &t.groups[g]
	slot := len(group.pids)
	group.pids = append(group.pids, pid)
	group.gsum += r
	t.gsum += r

	t.pidToGroup[pid] = ptSlot{group: g, slot: slot}
	t.priorities[pid] = r
	return nil
}

// removeFromGroup swap-removes pid from its current group, fixing up
// the back-pointer of whichever pid gets swapped into its old slot.
func (t *PriorityTable) removeFromGroup(pid PID) {
	loc := t.pidToGroup[pid]
	group := &t.groups[loc.group]
	lastIdx := len(group.pids) - 1
	lastPid := group.pids[lastIdx]

	group.pids[loc.slot] = lastPid
	group.pids = group.pids[:lastIdx]

	if lastPid != pid {
		t.pidToGroup[lastPid] = ptSlot{group: loc.group, slot: loc.slot}
	}
}

// Update changes pid's priority from rOld to rNew, moving it between
// groups if the group assignment changes, or adjusting sums in place
// if it doesn't.
func (t *PriorityTable) Update(pid PID, rOld, rNew float64) error {
	if rNew < 0 {
		return newDomainError("priority table: negative priority %v for pid %d", rNew, pid)
	}
	gOld := prioToGid(rOld, t.minexp)
	gNew := prioToGid(rNew, t.minexp)

	if gOld == gNew {
		delta := rNew - rOld
		t.groups[gOld].gsum += delta
		t.gsum += delta
		t.priorities[pid] = rNew
		return nil
	}

	t.groups[gOld].gsum -= rOld
	t.removeFromGroup(pid)

	t.ensureGroup(gNew)
	group := &t.groups[gNew]
	slot := len(group.pids)
	group.pids = append(group.pids, pid)
	group.gsum += rNew
	t.pidToGroup[pid] = ptSlot{group: gNew, slot: slot}

	t.gsum += rNew - rOld
	t.priorities[pid] = rNew
	return nil
}

// Priority returns pid's currently recorded priority.
func (t *PriorityTable) Priority(pid PID) float64 {
	if int(pid) >= len(t.priorities) {
		return 0
	}
	return t.priorities[pid]
}

// Total returns the grand total of all priorities (spec.md I5: gsum).
func (t *PriorityTable) Total() float64 {
	return t.gsum
}

// Sample draws a pid with probability proportional to its priority:
// first pick a group proportional to groups[g].gsum/gsum, then within
// the group do rejection sampling against groupMax(g) — expected O(1)
// rejections since every priority in a group lies in
// [groupMax/2, groupMax).
func (t *PriorityTable) Sample(rng Source) (PID, error) {
	if t.gsum <= 0 {
		return 0, newDomainError("priority table: sample from empty/zero table")
	}

	target := rng.Float64() * t.gsum
	g := 1
	running := 0.0
	for ; g < len(t.groups); g++ {
		running += t.groups[g].gsum
		if target <= running {
			break
		}
	}
	if g >= len(t.groups) {
		g = len(t.groups) - 1
	}
	group := &t.groups[g]
	if len(group.pids) == 0 {
		// Floating point drift landed us on an empty group; fall back to
		// a linear scan for the first nonempty one.
		for gg := 1; gg < len(t.groups); gg++ {
			if len(t.groups[gg].pids) > 0 {
				g = gg
				group = &t.groups[gg]
				break
			}
		}
	}

	gmax := groupMax(g, t.minexp)
	for {
		slot := rng.IntN(len(group.pids))
		candidate := group.pids[slot]
		if rng.Float64()*gmax <= t.priorities[candidate] {
			return candidate, nil
		}
	}
}
