package de

import (
	"math"
	"testing"

	"github.com/yut0takagi/Optica/model"
	"github.com/yut0takagi/Optica/rng"
)

func newTestSource() *rng.Source {
	return rng.New(123)
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

func TestSolveSerialConvergesNearOptimumOnSphere(t *testing.T) {
	m := sphereModel(5)
	res := Solve(m, 500, 1, 42)
	if res.Fitness > 1e-3 {
		t.Fatalf("DE on 5-d sphere did not converge: fitness=%v", res.Fitness)
	}
	if len(res.X) != 5 {
		t.Fatalf("len(X) = %d, want 5", len(res.X))
	}
}

func TestSolveDeterministicForFixedSeed(t *testing.T) {
	m := sphereModel(5)
	a := Solve(m, 50, 1, 7)
	b := Solve(m, 50, 1, 7)
	if a.Fitness != b.Fitness {
		t.Fatalf("same seed produced different fitness: %v vs %v", a.Fitness, b.Fitness)
	}
	for j := range a.X {
		if a.X[j] != b.X[j] {
			t.Fatalf("same seed produced different X at dim %d", j)
		}
	}
}

func TestSolveIslandsRespectsBounds(t *testing.T) {
	m := sphereModel(60)
	res := Solve(m, 200, 4, 11)
	for j, v := range res.X {
		if v < m.LB[j] || v > m.UB[j] {
			t.Fatalf("island result dim %d = %v out of bounds", j, v)
		}
	}
}

func TestPickDonorsNeverEqualsSelfOrEachOther(t *testing.T) {
	src := newTestSource()
	for i := 0; i < 5; i++ {
		r1, r2 := pickDonors(src, 5, i)
		if r1 == i || r2 == i || r1 == r2 {
			t.Fatalf("pickDonors(5, %d) = (%d, %d), invariant violated", i, r1, r2)
		}
	}
}

func TestSolveTraceReceivesOneCallPerGeneration(t *testing.T) {
	m := sphereModel(5)
	var gens []int
	Solve(m, 20, 1, 4, func(gen int, bestFitness float64) {
		gens = append(gens, gen)
	})
	if len(gens) == 0 {
		t.Fatal("trace callback was never invoked")
	}
	for i, g := range gens {
		if g != i {
			t.Fatalf("gens[%d] = %d, want %d (trace must fire once per generation in order)", i, g, i)
		}
	}
}

func TestEarlyConvergenceReportsFewerIterationsThanBudget(t *testing.T) {
	m := model.New()
	m.LB = []float64{0}
	m.UB = []float64{10}
	m.VarNames = []string{"x"}
	m.ObjectiveExpr = "0"
	m.HasObjective = true

	res := Solve(m, 1000, 1, 3)
	if res.Fitness >= math.Inf(1) {
		t.Fatal("constant-zero objective must converge immediately")
	}
	if res.Iterations >= 1000 {
		t.Fatalf("Iterations = %d, want fewer than the 1000-generation budget", res.Iterations)
	}
}
