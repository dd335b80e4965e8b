package bench

import (
	"testing"

	"github.com/yut0takagi/Optica/solver"
)

func TestInsideBoundsRejectsOutOfRange(t *testing.T) {
	fn := Ackley{}
	if InsideBounds([]float64{100, 0}, fn) {
		t.Fatal("point far outside Ackley's bounds must be rejected")
	}
	if !InsideBounds([]float64{1, 1}, fn) {
		t.Fatal("point inside Ackley's bounds must be accepted")
	}
}

func TestEvalAtKnownOptimum(t *testing.T) {
	fn := Sphere{NDim: 3}
	got := fn.Eval([]float64{0, 0, 0})
	if got != fn.OptimumVal() {
		t.Fatalf("Sphere at origin = %v, want %v", got, fn.OptimumVal())
	}
}

func TestAsModelWiresEvalFunc(t *testing.T) {
	fn := Ackley{}
	m := AsModel(fn)
	if m.Dim != 2 {
		t.Fatalf("Dim = %d, want 2", m.Dim)
	}
	got := m.EvaluateObjective([]float64{0, 0})
	if got != 0 {
		t.Fatalf("Ackley via AsModel at origin = %v, want 0", got)
	}
}

func TestSolveSphereThroughDispatch(t *testing.T) {
	m := AsModel(Sphere{NDim: 5})
	res, err := solver.Dispatch(m, solver.MethodDE, 500, 1, 1, nil)
	if err != nil {
		t.Fatalf("Dispatch returned error: %v", err)
	}
	if res.Fitness > 1 {
		t.Fatalf("DE on 5-d Sphere via bench.AsModel did not make progress: %v", res.Fitness)
	}
}

func TestAllFuncsHaveConsistentBounds(t *testing.T) {
	for _, fn := range AllFuncs {
		low, up := fn.Bounds()
		if len(low) != len(up) {
			t.Fatalf("%s: bounds length mismatch", fn.Name())
		}
		for i := range low {
			if low[i] >= up[i] {
				t.Fatalf("%s: dim %d has low >= up", fn.Name(), i)
			}
		}
	}
}
