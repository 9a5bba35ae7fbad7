package ssa

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Source is the RNG surface every aggregator and the priority table
// draw from. Per spec.md §5, each aggregator
// owns one Source exclusively — there is no global/shared generator —
// so that trajectory-level parallelism only needs independent,
// deterministically-seeded Source instances per worker.
//
// Source's Int63/Seed methods follow math/rand.Source. gonum/stat/distuv
// takes a golang.org/x/exp/rand.Source as its Src field instead, so
// RandSource.Exp hands it the expRandSource adapter below.
type Source interface {
	Float64() float64
	IntN(n int) int
	Int63() int64
	Seed(seed int64)

	// Exp draws a single Exponential(rate) waiting time; rate <= 0
	// yields +Inf (the "disabled" convention used throughout this
	// package).
	Exp(rate float64) float64
}

// RandSource is the default Source, backed by the teacher's own
// math/rand.Rand-per-owner pattern (internal/achem/environment.go built
// one *rand.Rand per Environment); here one is built per aggregator
// instead of per environment.
type RandSource struct {
	r *rand.Rand
}

// NewRandSource creates a Source seeded deterministically from seed.
// Non-goal (spec.md §1): this package makes no claim that the resulting
// stream matches any particular reference implementation's PRNG.
func NewRandSource(seed int64) *RandSource {
	return &RandSource{r: rand.New(rand.NewSource(seed))}
}

func (s *RandSource) Float64() float64 { return s.r.Float64() }
func (s *RandSource) IntN(n int) int   { return s.r.Intn(n) }
func (s *RandSource) Int63() int64     { return s.r.Int63() }
func (s *RandSource) Seed(seed int64)  { s.r.Seed(seed) }

// Exp draws a single Exponential(rate) sample, i.e. the waiting time to
// the next event of a unit-rate Poisson process rescaled by 1/rate.
// rate == 0 is the "disabled this step" convention and yields +Inf.
// Uses gonum/stat/distuv so the thinning and rejection-sampling
// aggregators (spec.md §4.C6/§4.C7) get a numerically-reviewed
// exponential generator rather than a hand-rolled -ln(U)/rate, while
// still drawing from this Source's own stream.
func (s *RandSource) Exp(rate float64) float64 {
	if rate <= 0 {
		return math.Inf(1)
	}
	return distuv.Exponential{Rate: rate, Src: expRandSource{s.r}}.Rand()
}

// expRandSource adapts *rand.Rand to golang.org/x/exp/rand.Source (the
// type gonum/stat/distuv v0.15.1 expects), drawing from the same
// underlying stream as every other Source method on s.
type expRandSource struct {
	r *rand.Rand
}

func (a expRandSource) Uint64() uint64   { return a.r.Uint64() }
func (a expRandSource) Seed(seed uint64) { a.r.Seed(int64(seed)) }
