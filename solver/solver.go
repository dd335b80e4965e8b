// Package solver is the state-machine entry point tying the model, the
// exact-CP backend, and the three metaheuristic engines together (spec
// §4.H's "State machine (solver entry)"). It mirrors the teacher's
// optim.Solver in spirit — a small struct wrapping a Method plus bookkeeping
// for Niter/Neval — generalized to the method names and dispatch rules the
// Optica language requires.
package solver

import (
	"errors"

	"github.com/yut0takagi/Optica/cpsat"
	"github.com/yut0takagi/Optica/de"
	"github.com/yut0takagi/Optica/hybrid"
	"github.com/yut0takagi/Optica/logging"
	"github.com/yut0takagi/Optica/model"
	"github.com/yut0takagi/Optica/swarm"
)

// Trace is an optional per-generation hook uniform across every engine
// Dispatch can route to: phase is "" for DE/PSO and "de"/"pso" for the two
// legs of Hybrid, matching hybrid.Trace.
type Trace func(phase string, gen int, bestFitness float64)

// Method selects which metaheuristic engine Dispatch routes to.
type Method string

const (
	MethodAuto   Method = "auto"
	MethodDE     Method = "de"
	MethodPSO    Method = "pso"
	MethodHybrid Method = "hybrid"
)

// autoDimThreshold is the dimension at which "auto" switches from PSO to DE
// (spec §4.H: "auto -> PSO if dim <= 20 else DE").
const autoDimThreshold = 20

// Result is the solver's terminal output: a point, its fitness, and the
// iteration count actually consumed.
type Result struct {
	X          []float64
	Fitness    float64
	Iterations int
	ExactCP    bool
}

// ErrZeroDimension is the fatal error raised before dispatch when the model
// has no decision variables (spec §4.H).
var ErrZeroDimension = errors.New("solver: model has zero decision variables")

// Dispatch runs the Dispatch -> {ExactCP | Metaheuristic} state machine: if
// m has CP-global constraints and exact is non-nil and succeeds, its result
// wins outright; otherwise dispatch falls through to the metaheuristic
// engine named by method ("de"|"pso"|"hybrid"|"auto").
func Dispatch(m *model.Model, method Method, maxIter, threads int, seed uint64, exact cpsat.ExactSolver, trace ...Trace) (Result, error) {
	if m.Dim == 0 {
		return Result{}, ErrZeroDimension
	}

	if len(m.CPGlobals) > 0 {
		if x, fit, ok := cpsat.SolveCPEntry(exact, m, maxIter, threads); ok {
			return Result{X: x, Fitness: fit, Iterations: 0, ExactCP: true}, nil
		}
		logging.Warnf("exact CP backend unavailable; falling back to metaheuristics with CP penalties")
	}

	var t Trace
	if len(trace) > 0 {
		t = trace[0]
	}

	resolved := method
	if resolved == MethodAuto {
		if m.Dim <= autoDimThreshold {
			resolved = MethodPSO
		} else {
			resolved = MethodDE
		}
	}

	switch resolved {
	case MethodDE:
		var dt de.Trace
		if t != nil {
			dt = func(gen int, best float64) { t("", gen, best) }
		}
		r := de.Solve(m, maxIter, threads, seed, dt)
		return Result{X: r.X, Fitness: r.Fitness, Iterations: r.Iterations}, nil
	case MethodPSO:
		var st swarm.Trace
		if t != nil {
			st = func(gen int, best float64) { t("", gen, best) }
		}
		r := swarm.Solve(m, maxIter, seed, st)
		return Result{X: r.X, Fitness: r.Fitness, Iterations: r.Iterations}, nil
	case MethodHybrid:
		var ht hybrid.Trace
		if t != nil {
			ht = hybrid.Trace(t)
		}
		r := hybrid.Solve(m, maxIter, threads, seed, ht)
		return Result{X: r.X, Fitness: r.Fitness, Iterations: r.Iterations}, nil
	default:
		r := de.Solve(m, maxIter, threads, seed)
		return Result{X: r.X, Fitness: r.Fitness, Iterations: r.Iterations}, nil
	}
}
