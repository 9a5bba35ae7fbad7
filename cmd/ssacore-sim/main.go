package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/daniacca/ssacore/internal/ssa"
)

func main() {
	var (
		problemFile = flag.String("problem-file", "", "path to jump problem JSON config (required)")
		endTime     = flag.Float64("end-time", 100, "simulation end time")
		seed        = flag.Int64("seed", 1, "RNG seed")
		aggregator  = flag.String("aggregator", "rssacr", "aggregator: rssacr or coevolve")
	)
	flag.Parse()

	if *problemFile == "" {
		fmt.Fprintln(os.Stderr, "error: --problem-file is required")
		flag.Usage()
		os.Exit(1)
	}

	problem, err := loadProblemFromFile(*problemFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading problem: %v\n", err)
		os.Exit(1)
	}

	rng := ssa.NewRandSource(*seed)
	logger := ssa.NewNoOpLogger()

	var agg ssa.Aggregator
	switch *aggregator {
	case "rssacr":
		agg = ssa.NewRSSACR(rng, *endTime, logger)
	case "coevolve":
		agg = ssa.NewCoevolve(rng, *endTime, logger)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown aggregator %q\n", *aggregator)
		os.Exit(1)
	}

	u0 := make([]int64, len(problem.U0))
	copy(u0, problem.U0)
	ig := ssa.NewIntegrator(u0, problem.Params, 0, logger)

	if err := agg.Initialize(problem, ig); err != nil {
		fmt.Fprintf(os.Stderr, "error initializing aggregator: %v\n", err)
		os.Exit(1)
	}

	stepper := ssa.NewStepper(agg, ig)
	if err := stepper.Run(nil); err != nil {
		fmt.Fprintf(os.Stderr, "error running trajectory: %v\n", err)
		os.Exit(1)
	}

	printSummary(problem, ig, stepper, *aggregator, *endTime)
}

func loadProblemFromFile(path string) (*ssa.JumpProblem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading problem file: %w", err)
	}

	var cfg ssa.JumpProblemConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing problem JSON: %w", err)
	}

	problem, err := ssa.BuildProblemFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("building problem: %w", err)
	}
	return problem, nil
}

func printSummary(problem *ssa.JumpProblem, ig *ssa.Integrator, stepper *ssa.Stepper, aggregator string, endTime float64) {
	fmt.Printf("Simulation finished (species=%d, aggregator=%s, end_time=%v, jumps_fired=%d, final_t=%v)\n",
		problem.NumSpecies, aggregator, endTime, stepper.JumpsFired(), ig.T)
	fmt.Println("Final species counts:")

	names := make([]string, len(problem.SpeciesNames))
	copy(names, problem.SpeciesNames)
	sort.Strings(names)

	index := make(map[string]int, len(problem.SpeciesNames))
	for i, n := range problem.SpeciesNames {
		index[n] = i
	}
	for _, name := range names {
		fmt.Printf("  %s: %d\n", name, ig.U[index[name]])
	}
}
