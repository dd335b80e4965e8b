package solver

import (
	"testing"

	"github.com/yut0takagi/Optica/model"
)

func sphereModel(dim int) *model.Model {
	m := model.New()
	for i := 0; i < dim; i++ {
		m.LB = append(m.LB, -5)
		m.UB = append(m.UB, 5)
		m.VarNames = append(m.VarNames, "x")
	}
	m.Dim = dim
	return m
}

func TestDispatchZeroDimensionIsFatal(t *testing.T) {
	m := model.New()
	_, err := Dispatch(m, MethodAuto, 100, 1, 1, nil)
	if err != ErrZeroDimension {
		t.Fatalf("err = %v, want ErrZeroDimension", err)
	}
}

func TestDispatchAutoPicksPSOForSmallDim(t *testing.T) {
	m := sphereModel(5)
	res, err := Dispatch(m, MethodAuto, 300, 1, 1, nil)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if res.Fitness > 1e-1 {
		t.Fatalf("auto-PSO on small sphere did not converge: %v", res.Fitness)
	}
}

func TestDispatchAutoPicksDEForLargeDim(t *testing.T) {
	m := sphereModel(25)
	res, err := Dispatch(m, MethodAuto, 500, 1, 1, nil)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if res.Fitness > 10 {
		t.Fatalf("auto-DE on large sphere did not make progress: %v", res.Fitness)
	}
}

type fakeExactSolver struct {
	x   []float64
	fit float64
}

func (f fakeExactSolver) SolveCP(m *model.Model) ([]float64, float64, bool) {
	return f.x, f.fit, true
}

func TestDispatchPrefersExactCPWhenAvailable(t *testing.T) {
	m := sphereModel(2)
	m.CPGlobals = []string{"c0: no_overlap(start, end)"}

	res, err := Dispatch(m, MethodAuto, 100, 1, 1, fakeExactSolver{x: []float64{1, 2}, fit: 0.5})
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if !res.ExactCP {
		t.Fatal("expected ExactCP result when an ExactSolver succeeds")
	}
	if res.Fitness != 0.5 {
		t.Fatalf("Fitness = %v, want 0.5 from the exact solver", res.Fitness)
	}
}

func TestDispatchTraceFiresForResolvedMethod(t *testing.T) {
	m := sphereModel(25) // auto -> DE
	calls := 0
	_, err := Dispatch(m, MethodAuto, 50, 1, 1, nil, func(phase string, gen int, bestFitness float64) {
		calls++
	})
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if calls == 0 {
		t.Fatal("trace callback was never invoked")
	}
}

func TestDispatchKnapsackSurrogateNearLPOptimum(t *testing.T) {
	m, err := model.Parse(`
var x1 >= 0 <= 1;
var x2 >= 0 <= 1;
var x3 >= 0 <= 1;
maximize 3*x1 + 5*x2 + 4*x3;
subject to
c1: 2*x1 + 3*x2 + x3 <= 4;
`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	res, err := Dispatch(m, MethodDE, 1000, 1, 12345, nil)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	obj := -res.Fitness // sign restored for maximize
	if d := obj - 12.333; d > 0.05 || d < -0.05 {
		t.Fatalf("objective = %v, want ~12.333 (LP optimum)", obj)
	}
}

func TestDispatchEpsilonConstraintHonorsThreshold(t *testing.T) {
	m, err := model.Parse(`
var x1 >= 0 <= 1;
var x2 >= 0 <= 1;
objectives:
minimize f1: x1;
minimize f2: x2;
pareto method: epsilon_constraint
primary: f1
epsilon:
f2 <= 0.5;
`)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if m.Pareto.Kind != model.ParetoEpsilon {
		t.Fatalf("Pareto.Kind = %v, want ParetoEpsilon", m.Pareto.Kind)
	}

	res, err := Dispatch(m, MethodPSO, 500, 1, 12345, nil)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if res.X[0] > 1e-2 {
		t.Fatalf("x1 = %v, want ~0 (primary objective minimized)", res.X[0])
	}
	if res.X[1] > 0.5+1e-3 {
		t.Fatalf("x2 = %v, want <= 0.5 within tolerance (epsilon threshold)", res.X[1])
	}
}

func TestDispatchFallsBackWhenExactUnavailable(t *testing.T) {
	m := sphereModel(2)
	m.CPGlobals = []string{"c0: no_overlap(start, end)"}

	res, err := Dispatch(m, MethodAuto, 100, 1, 1, nil)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if res.ExactCP {
		t.Fatal("expected metaheuristic fallback when no ExactSolver is wired in")
	}
}
