// Package cpsat defines the optional exact-CP backend contract (spec §4.H):
// an ExactSolver honors variable bounds and algebraic constraints precisely,
// plus whatever CP-global annotations it recognizes, reporting ok=false when
// it can't (or isn't wired in). No implementation ships in this module — no Go
// library in this codebase's dependency pack exposes the linear-arithmetic /
// interval / cumulative-resource primitives CP-SAT's linearize_expr relies
// on (see DESIGN.md) — so Default (like a nil ExactSolver) always falls back
// to the metaheuristic engines with CP penalties, exactly like the source
// language's `#[cfg(not(feature = "cp-sat"))]` stub.
package cpsat

import "github.com/yut0takagi/Optica/model"

// ExactSolver solves m exactly and returns (x, fitness, 0) on success, or
// ok=false when it cannot (infeasible within its own time budget, an
// unsupported construct, or internal failure) — never panics, by contract.
type ExactSolver interface {
	SolveCP(m *model.Model) (x []float64, fitness float64, ok bool)
}

// Default is the backend used when no ExactSolver has been wired in. It
// always reports ok=false, which is what routes every solve through the
// metaheuristic engines unless a caller supplies its own ExactSolver.
type Default struct{}

func (Default) SolveCP(m *model.Model) ([]float64, float64, bool) {
	return nil, 0, false
}

// SolveCPEntry tries solver against m, mirroring solve_cp_entry's shape
// (spec §4.H): max_iter and threads are accepted for interface symmetry with
// the metaheuristic engines but are not meaningful to an exact backend.
func SolveCPEntry(solver ExactSolver, m *model.Model, maxIter, threads int) (x []float64, fitness float64, ok bool) {
	if solver == nil {
		return nil, 0, false
	}
	return solver.SolveCP(m)
}
