// Package de implements current-to-best/1/bin Differential Evolution (spec
// §4.D/E): a serial engine and an island-parallel variant spawned the way
// the teacher's optim.ParallelEvaler fans work across goroutines — one
// worker per island, no migration, joined with a sync.WaitGroup and reduced
// to the minimum-fitness island.
package de

import (
	"sync"

	"github.com/yut0takagi/Optica/config"
	"github.com/yut0takagi/Optica/fitness"
	"github.com/yut0takagi/Optica/mesh"
	"github.com/yut0takagi/Optica/model"
	"github.com/yut0takagi/Optica/population"
	"github.com/yut0takagi/Optica/rng"
)

// Result is one engine's outcome: the best point found, its fitness, and
// the number of generations actually run (early convergence stops short of
// maxIter).
type Result struct {
	X          []float64
	Fitness    float64
	Iterations int
}

// Trace is an optional per-generation hook: called with the generation index
// and the incumbent best fitness after that generation's selection step.
// Wiring one in (e.g. for optica/record or optica/plotting, spec §3.A) costs
// nothing when nil — the island-parallel path does not call it, since
// per-island history from concurrent goroutines would need its own
// synchronization that the spec does not ask for.
type Trace func(gen int, bestFitness float64)

// Solve runs DE against m, dispatching to the island-parallel engine when
// threads > 1 and the problem is large enough to be worth the fan-out (spec
// §4.D/E's parallel-entry thresholds); otherwise it runs serially on a
// single population. trace, if supplied, receives one call per generation
// on the serial path only.
func Solve(m *model.Model, maxIter, threads int, seed uint64, trace ...Trace) Result {
	if threads > 1 && m.Dim >= config.ParallelMinDim && maxIter >= config.ParallelMinIter {
		return solveIslands(m, maxIter, threads, seed)
	}
	var t Trace
	if len(trace) > 0 {
		t = trace[0]
	}
	return solveSerial(m, maxIter, config.PopSize, rng.New(seed), t)
}

// solveSerial runs one population to convergence or maxIter generations.
func solveSerial(m *model.Model, maxIter, popSize int, src *rng.Source, trace Trace) Result {
	pop := population.NewRandom(popSize, m.LB, m.UB, src)
	for i := 0; i < pop.Size; i++ {
		pop.Fitness[i] = fitness.Compute(m, pop.Row(i))
	}

	bestIdx, bestFit := pop.Best()
	bestX := append([]float64(nil), pop.Row(bestIdx)...)

	trial := make([]float64, m.Dim)
	uniforms := make([]float64, m.Dim)

	iterRun := maxIter
	for gen := 0; gen < maxIter; gen++ {
		if bestFit < config.Tolerance {
			iterRun = gen
			break
		}

		for i := 0; i < pop.Size; i++ {
			r1, r2 := pickDonors(src, pop.Size, i)
			jRand := src.Intn(m.Dim)
			src.Fill(uniforms)

			row := pop.Row(i)
			donor1 := pop.Row(r1)
			donor2 := pop.Row(r2)
			for j := 0; j < m.Dim; j++ {
				if j == jRand || uniforms[j] < config.DECrossover {
					trial[j] = bestX[j] + config.DEMutation*(donor1[j]-donor2[j])
				} else {
					trial[j] = row[j]
				}
			}
			mesh.ClampInPlace(trial, m.LB, m.UB)

			trialFit := fitness.Compute(m, trial)
			if trialFit <= pop.Fitness[i] {
				copy(row, trial)
				pop.Fitness[i] = trialFit
				if trialFit < bestFit {
					bestFit = trialFit
					copy(bestX, trial)
				}
			}
		}
		iterRun = gen + 1
		if trace != nil {
			trace(gen, bestFit)
		}
	}

	return Result{X: bestX, Fitness: bestFit, Iterations: iterRun}
}

// pickDonors selects r1 != r2 != i uniformly, bumping cyclically on
// collision so the PRNG still consumes a fixed number of draws per call
// (spec §4.D step 1).
func pickDonors(src *rng.Source, size, i int) (int, int) {
	r1 := src.Intn(size)
	for r1 == i {
		r1 = (r1 + 1) % size
	}
	r2 := src.Intn(size)
	for r2 == i || r2 == r1 {
		r2 = (r2 + 1) % size
	}
	return r1, r2
}

// solveIslands runs threads independent DE populations concurrently, each
// with its own thread-strided seed and subpopulation size
// max(10, PopSize/threads); islands never migrate. The join step reduces to
// the minimum-fitness island, ties broken by lowest island index (spec §5).
func solveIslands(m *model.Model, maxIter, threads int, seed uint64) Result {
	subPop := config.PopSize / threads
	if subPop < 10 {
		subPop = 10
	}

	results := make([]Result, threads)
	var wg sync.WaitGroup
	wg.Add(threads)
	for t := 0; t < threads; t++ {
		t := t
		go func() {
			defer wg.Done()
			src := rng.NewThread(seed, t)
			results[t] = solveSerial(m, maxIter, subPop, src, nil)
		}()
	}
	wg.Wait()

	best := 0
	for t := 1; t < threads; t++ {
		if results[t].Fitness < results[best].Fitness {
			best = t
		}
	}
	return results[best]
}
