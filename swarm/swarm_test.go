package swarm

import (
	"testing"

	"github.com/yut0takagi/Optica/model"
	"github.com/yut0takagi/Optica/rng"
)

func rngSourceForTest(seed uint64) *rng.Source {
	return rng.New(seed)
}

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

func TestSolveConvergesNearOptimumOnSphere(t *testing.T) {
	m := sphereModel(5)
	res := Solve(m, 500, 42)
	if res.Fitness > 1e-2 {
		t.Fatalf("PSO on 5-d sphere did not converge: fitness=%v", res.Fitness)
	}
}

func TestSolveRespectsBounds(t *testing.T) {
	m := sphereModel(3)
	res := Solve(m, 100, 1)
	for j, v := range res.X {
		if v < m.LB[j] || v > m.UB[j] {
			t.Fatalf("result dim %d = %v out of bounds", j, v)
		}
	}
}

func TestSolveDeterministicForFixedSeed(t *testing.T) {
	m := sphereModel(4)
	a := Solve(m, 50, 9)
	b := Solve(m, 50, 9)
	if a.Fitness != b.Fitness {
		t.Fatalf("same seed produced different fitness: %v vs %v", a.Fitness, b.Fitness)
	}
}

func TestSolveTraceReceivesOneCallPerGeneration(t *testing.T) {
	m := sphereModel(4)
	calls := 0
	res := Solve(m, 15, 5, func(gen int, bestFitness float64) {
		if gen != calls {
			t.Fatalf("trace called out of order: gen=%d, want %d", gen, calls)
		}
		calls++
	})
	if calls == 0 {
		t.Fatal("trace callback was never invoked")
	}
	if res.Fitness < 0 {
		t.Fatalf("unexpected negative fitness: %v", res.Fitness)
	}
}

func TestEarlyConvergenceReportsFewerIterationsThanBudget(t *testing.T) {
	m := model.New()
	m.LB = []float64{0}
	m.UB = []float64{10}
	m.VarNames = []string{"x"}
	m.Dim = 1
	m.ObjectiveExpr = "0"
	m.HasObjective = true

	res := Solve(m, 1000, 3)
	if res.Iterations >= 1000 {
		t.Fatalf("Iterations = %d, want fewer than the 1000-generation budget", res.Iterations)
	}
}

func TestInertiaDecaysTowardFloor(t *testing.T) {
	m := sphereModel(2)
	src := rngSourceForTest(1)
	pop := NewPopulation(5, m.LB, m.UB, m, src)
	for i := 0; i < 500; i++ {
		pop.Inertia *= 0.995
		if pop.Inertia < 0.4 {
			pop.Inertia = 0.4
		}
	}
	if pop.Inertia != 0.4 {
		t.Fatalf("inertia after many decays = %v, want floor 0.4", pop.Inertia)
	}
}
