// Package hybrid runs DE for half the iteration budget, then PSO on a
// shrunken neighborhood of the DE incumbent for the remaining half,
// returning whichever phase produced the lower fitness (spec §4.G).
package hybrid

import (
	"github.com/yut0takagi/Optica/de"
	"github.com/yut0takagi/Optica/mesh"
	"github.com/yut0takagi/Optica/model"
	"github.com/yut0takagi/Optica/swarm"
)

// shrinkFraction is the half-width of the PSO phase's search window around
// the DE incumbent, as a fraction of each dimension's original span (spec
// §4.G: "x1 ± 0.1*(ub-lb)").
const shrinkFraction = 0.1

// Result mirrors de.Result/swarm.Result.
type Result struct {
	X          []float64
	Fitness    float64
	Iterations int
}

// Trace is an optional per-generation hook spanning both phases: called with
// a phase-relative generation index and the incumbent fitness at that point
// in either phase (spec §3.A's solve-history recorder). The DE phase and PSO
// phase each restart their generation counter at 0; a caller wiring this
// into optica/record should key its rows by phase, not assume a single
// monotonic generation axis.
type Trace func(phase string, gen int, bestFitness float64)

// Solve runs the two-phase DE→PSO driver against m. trace, if supplied,
// receives one call per generation of each phase.
func Solve(m *model.Model, maxIter, threads int, seed uint64, trace ...Trace) Result {
	var t Trace
	if len(trace) > 0 {
		t = trace[0]
	}
	half := maxIter / 2

	var deTrace de.Trace
	if t != nil {
		deTrace = func(gen int, best float64) { t("de", gen, best) }
	}
	deRes := de.Solve(m, half, threads, seed, deTrace)

	shrunkLB, shrunkUB := mesh.Shrink(m.LB, m.UB, deRes.X, shrinkFraction)
	phaseModel := *m
	phaseModel.LB = shrunkLB
	phaseModel.UB = shrunkUB

	var psoTrace swarm.Trace
	if t != nil {
		psoTrace = func(gen int, best float64) { t("pso", gen, best) }
	}
	psoRes := swarm.Solve(&phaseModel, maxIter-half, seed, psoTrace)

	if psoRes.Fitness <= deRes.Fitness {
		return Result{X: psoRes.X, Fitness: psoRes.Fitness, Iterations: deRes.Iterations + psoRes.Iterations}
	}
	return Result{X: deRes.X, Fitness: deRes.Fitness, Iterations: deRes.Iterations + psoRes.Iterations}
}
