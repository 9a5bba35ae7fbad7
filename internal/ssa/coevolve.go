package ssa

import (
	"container/heap"
	"math"
)

// coevolveItem is one entry in the Coevolve aggregator's candidate-time
// heap: a jump index and its currently scheduled fire time. heapIndex
// lets the heap support Update (container/heap.Fix) without a linear
// search, the same "lazy decrease-key with a back-pointer" shape as
// katalvlaran-lvlath/dijkstra's MutableBinaryMinHeap usage.
type coevolveItem struct {
	jump      int
	t         float64
	heapIndex int
}

type coevolveHeap []*coevolveItem

func (h coevolveHeap) Len() int            { return len(h) }
func (h coevolveHeap) Less(i, j int) bool  { return h[i].t < h[j].t }
func (h coevolveHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}
func (h *coevolveHeap) Push(x any) {
	item := x.(*coevolveItem)
	item.heapIndex = len(*h)
	*h = append(*h, item)
}
func (h *coevolveHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// Coevolve is the thinning-based next-time aggregator for time-varying
// rates with rate-interval bounds (spec.md §4.C6). It maintains a
// MutableBinaryMinHeap of candidate fire times keyed by jump index, the
// last urate used per jump (cur_rates), and the dependency graph.
type Coevolve struct {
	problem  *JumpProblem
	depGraph DependencyGraph
	rng      Source
	logger   Logger

	heap    coevolveHeap
	handles []*coevolveItem // indexed by jump
	curRate []float64       // last urate used, per jump

	lastFired int
	endTime   float64
}

// NewCoevolve creates an uninitialized Coevolve aggregator; call
// Initialize before stepping.
func NewCoevolve(rng Source, endTime float64, logger Logger) *Coevolve {
	if logger == nil {
		logger = NewNoOpLogger()
	}
	return &Coevolve{rng: rng, endTime: endTime, logger: logger, lastFired: jumpOrNone}
}

func (c *Coevolve) urateOf(k int, u []int64, p Params, t float64) float64 {
	if c.problem.IsMassAction(k) {
		return evalMassActionRate(u, c.problem.MassActionJumpAt(k))
	}
	return c.problem.GeneralJumpAt(k).URate(u, p, t)
}

func (c *Coevolve) lrateOf(k int, u []int64, p Params, t float64) float64 {
	if c.problem.IsMassAction(k) {
		return evalMassActionRate(u, c.problem.MassActionJumpAt(k))
	}
	return c.problem.GeneralJumpAt(k).lrateOrZero(u, p, t)
}

func (c *Coevolve) rateIntervalOf(k int, u []int64, p Params, t float64) float64 {
	if c.problem.IsMassAction(k) {
		return math.Inf(1) // mass-action rate only changes when state does
	}
	return c.problem.GeneralJumpAt(k).rateIntervalOrInf(u, p, t)
}

// nextTime implements the thinning algorithm of spec.md §4.C6's
// next_time(k, now, tstop): draw (or rescale) a candidate from the
// urate-bound Poisson process, honor the rateinterval validity window,
// then accept/reject by comparing a single uniform draw against lrate
// (cheap acceptance) and, failing that, the exact rate.
func (c *Coevolve) nextTime(k int, now float64, u []int64, p Params, justFired bool) (float64, float64, error) {
	useRescale := !justFired && c.curRate[k] > 0

	for {
		urate := c.urateOf(k, u, p, now)
		if urate == 0 {
			return math.Inf(1), 0, nil
		}
		lrate := c.lrateOf(k, u, p, now)
		if lrate > urate {
			return 0, 0, newConfigurationError("jump %d: lrate(%v) > urate(%v)", k, lrate, urate)
		}

		var s float64
		if useRescale {
			oldT := c.handles[k].t
			s = c.curRate[k] / urate * (oldT - now)
		} else {
			s = c.rng.Exp(urate)
		}
		useRescale = false // only the first attempt may rescale

		interval := c.rateIntervalOf(k, u, p, now)
		for s > interval && !math.IsInf(interval, 1) {
			now += interval
			s = c.rng.Exp(urate)
			interval = c.rateIntervalOf(k, u, p, now)
		}
		tCandidate := now + s

		v := c.rng.Float64() * urate
		lrateAtT := c.lrateOf(k, u, p, tCandidate)
		if v <= lrateAtT {
			return tCandidate, urate, nil
		}
		exact := evalRate(c.problem, k, u, p, tCandidate)
		if v <= exact {
			return tCandidate, urate, nil
		}
		now = tCandidate // thin: retry from the rejected candidate
	}
}

// Initialize builds the dependency graph, schedules an initial
// candidate time for every jump, and fills the heap.
func (c *Coevolve) Initialize(problem *JumpProblem, ig *Integrator) error {
	c.problem = problem
	dep, err := ResolveDependencyGraph(problem)
	if err != nil {
		return err
	}
	c.depGraph = dep

	n := problem.NumJumps()
	c.curRate = make([]float64, n)
	c.handles = make([]*coevolveItem, n)
	c.heap = make(coevolveHeap, 0, n)

	for k := 0; k < n; k++ {
		t, urate, err := c.nextTime(k, ig.T, ig.U, ig.P, true)
		if err != nil {
			return err
		}
		item := &coevolveItem{jump: k, t: t}
		c.handles[k] = item
		c.curRate[k] = urate
		heap.Push(&c.heap, item)
	}
	return c.GenerateJumps(ig)
}

// GenerateJumps publishes the heap's minimum as the next (jump, time)
// pair, per spec.md §6's generate_jumps entry point.
func (c *Coevolve) GenerateJumps(ig *Integrator) error {
	if len(c.heap) == 0 {
		ig.TStop = c.endTime
		return nil
	}
	top := c.heap[0]
	RegisterNextJumpTime(ig, top.t)
	return nil
}

// ExecuteJumps applies the top-of-heap jump's affect, then recomputes
// (t, urate) for every dependent jump named in G_dep[k_next] and
// updates the heap (spec.md §4.C6 "Step").
func (c *Coevolve) ExecuteJumps(ig *Integrator) error {
	if len(c.heap) == 0 {
		return nil
	}
	top := c.heap[0]
	kNext := top.jump
	ig.T = top.t

	if c.problem.IsMassAction(kNext) {
		applyNetStoch(ig.U, c.problem.MassActionJumpAt(kNext))
	} else {
		c.problem.GeneralJumpAt(kNext).Affect(ig)
	}
	c.lastFired = kNext

	for _, j := range c.depGraph[kNext] {
		t, urate, err := c.nextTime(j, ig.T, ig.U, ig.P, j == kNext)
		if err != nil {
			return err
		}
		c.curRate[j] = urate
		c.handles[j].t = t
		heap.Fix(&c.heap, c.handles[j].heapIndex)
	}
	return nil
}

func (c *Coevolve) NextJumpTime() float64 {
	if len(c.heap) == 0 {
		return c.endTime
	}
	return c.heap[0].t
}

func (c *Coevolve) NextJump() int {
	if len(c.heap) == 0 {
		return jumpOrNone
	}
	return c.heap[0].jump
}

func (c *Coevolve) EndTime() float64 { return c.endTime }
func (c *Coevolve) RNG() Source      { return c.rng }
