package model

import (
	"math"
	"testing"
)

func TestSphereFallback(t *testing.T) {
	m := New()
	m.finalize()
	x := []float64{1, 2, 3}
	got := m.EvaluateObjective(x)
	want := 1.0 + 4.0 + 9.0
	if got != want {
		t.Fatalf("sphere fallback = %v, want %v", got, want)
	}
}

func TestEvaluateObjectiveExpr(t *testing.T) {
	m := New()
	m.addVar("x", 0, 10)
	m.addVar("y", 0, 10)
	m.finalize()
	m.ObjectiveExpr = "x + y * 2"
	m.HasObjective = true

	got := m.EvaluateExpr(m.ObjectiveExpr, []float64{3, 4}, nil)
	if got != 11 {
		t.Fatalf("x + y*2 at (3,4) = %v, want 11", got)
	}
}

func TestCheckConstraintsFeasible(t *testing.T) {
	m := New()
	m.addVar("x", 0, 10)
	m.finalize()
	m.Constraints = []Constraint{{Name: "c0", Expr: "x", Op: Le, RHS: 5}}

	feasible, viol := m.CheckConstraints([]float64{3})
	if !feasible || viol != 0 {
		t.Fatalf("expected feasible with 0 violation, got feasible=%v viol=%v", feasible, viol)
	}

	feasible, viol = m.CheckConstraints([]float64{7})
	if feasible || viol <= 0 {
		t.Fatalf("expected infeasible with positive violation, got feasible=%v viol=%v", feasible, viol)
	}
}

func TestViolationOperators(t *testing.T) {
	if v := violation(10, Le, 5); v != 5 {
		t.Fatalf("Le violation = %v, want 5", v)
	}
	if v := violation(3, Le, 5); v != 0 {
		t.Fatalf("Le within bound = %v, want 0", v)
	}
	if v := violation(3, Ge, 5); v != 2 {
		t.Fatalf("Ge violation = %v, want 2", v)
	}
	if v := violation(3, Eq, 5); v != 2 {
		t.Fatalf("Eq violation = %v, want 2", v)
	}
}

func TestEvalArithPrecedenceAndParens(t *testing.T) {
	m := New()
	m.finalize()
	got := m.EvaluateExpr("2 + 3 * 4", nil, nil)
	if got != 14 {
		t.Fatalf("2+3*4 = %v, want 14", got)
	}
	got = m.EvaluateExpr("(2 + 3) * 4", nil, nil)
	if got != 20 {
		t.Fatalf("(2+3)*4 = %v, want 20", got)
	}
}

func TestEvalArithDivByNearZeroCollapsesToZero(t *testing.T) {
	m := New()
	m.finalize()
	got := m.EvaluateExpr("5 / 0", nil, nil)
	if got != 0 {
		t.Fatalf("5/0 = %v, want 0 (never-fail policy)", got)
	}
}

func TestEvalIfThenElse(t *testing.T) {
	m := New()
	m.addVar("x", 0, 10)
	m.finalize()

	got := m.EvaluateExpr("x <= 5 then 1 else 0", []float64{3}, nil)
	if got != 1 {
		t.Fatalf("x<=5 then 1 else 0 at x=3 = %v, want 1", got)
	}
	got = m.EvaluateExpr("x <= 5 then 1 else 0", []float64{9}, nil)
	if got != 0 {
		t.Fatalf("x<=5 then 1 else 0 at x=9 = %v, want 0", got)
	}
}

func TestEvalMaxMin(t *testing.T) {
	m := New()
	m.finalize()
	if got := m.EvaluateExpr("max(3, 7)", nil, nil); got != 7 {
		t.Fatalf("max(3,7) = %v, want 7", got)
	}
	if got := m.EvaluateExpr("min(3, 7)", nil, nil); got != 3 {
		t.Fatalf("min(3,7) = %v, want 3", got)
	}
}

func TestEvalSumOverSet(t *testing.T) {
	m := New()
	m.Sets["Items"] = []string{"a", "b", "c"}
	m.Params["value"] = map[string]float64{"a": 1, "b": 2, "c": 3}
	m.finalize()

	got := m.EvaluateExpr("sum(i in Items) value[i]", nil, nil)
	if got != 6 {
		t.Fatalf("sum of value[i] over Items = %v, want 6", got)
	}
}

func TestEvalSymbolResolutionOrder(t *testing.T) {
	m := New()
	m.addVar("x", 0, 10)
	m.Params["x"] = map[string]float64{"_": 99}
	m.finalize()

	got := m.evalSymbol("x", []float64{4}, nil)
	if got != 4 {
		t.Fatalf("decision variable must shadow a same-named scalar param, got %v want 4", got)
	}
}

func TestEvalUnknownSymbolCollapsesToZero(t *testing.T) {
	m := New()
	m.finalize()
	got := m.EvaluateExpr("nonexistent_symbol", nil, nil)
	if got != 0 {
		t.Fatalf("unknown symbol = %v, want 0", got)
	}
}

func TestEvalComparisonEqualityTolerance(t *testing.T) {
	m := New()
	m.finalize()
	got := m.EvaluateExpr("1.0000000001 == 1", nil, nil)
	if got != 1 {
		t.Fatalf("near-equal comparison under tolerance should be true, got %v", got)
	}
}

func TestEvalArithUnaryMinus(t *testing.T) {
	m := New()
	m.finalize()
	got := m.EvaluateExpr("-5 + 3", nil, nil)
	if math.Abs(got-(-2)) > 1e-12 {
		t.Fatalf("-5+3 = %v, want -2", got)
	}
}
