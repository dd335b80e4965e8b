// Package model holds the problem representation (spec §3) and the
// expression evaluator that interprets it against a candidate assignment
// (spec §4.B). It is a direct, idiom-preserving port of the source
// language's parser module: a Model is built once by Parse, then read only
// for the rest of a solve, which is what lets the DE island workers share it
// by reference.
package model

import "github.com/yut0takagi/Optica/config"

// ConstraintOp is the comparison operator of an algebraic constraint or an
// epsilon-constraint threshold.
type ConstraintOp int

const (
	Le ConstraintOp = iota
	Ge
	Eq
)

func (op ConstraintOp) String() string {
	switch op {
	case Le:
		return "<="
	case Ge:
		return ">="
	case Eq:
		return "=="
	default:
		return "?"
	}
}

// Constraint is one line of a `subject to` block.
type Constraint struct {
	Name string
	Expr string
	Op   ConstraintOp
	RHS  float64
}

// Objective is one named objective in an `objectives:` block (or the single
// maximize/minimize statement, wrapped as a one-element slice).
type Objective struct {
	Name     string
	Expr     string
	Maximize bool
}

// ParetoKind tags which branch of the fitness composer a multi-objective
// model uses (spec §4.C).
type ParetoKind int

const (
	ParetoSingle ParetoKind = iota
	ParetoWeightedSum
	ParetoEpsilon
)

// WeightedObjective is one (name, weight) pair of a WeightedSum pareto
// method.
type WeightedObjective struct {
	Name   string
	Weight float64
}

// EpsilonConstraint is one (name, op, threshold) entry of an Epsilon pareto
// method's secondary-objective thresholds.
type EpsilonConstraint struct {
	Name      string
	Op        ConstraintOp
	Threshold float64
}

// Pareto carries the data for whichever ParetoKind is active. Only the
// fields matching Kind are meaningful.
type Pareto struct {
	Kind    ParetoKind
	Weights []WeightedObjective
	Primary string
	Eps     []EpsilonConstraint
}

// Model is the problem instance: decision variables with bounds, parameters,
// sets, objective(s), algebraic constraints, and CP-global annotations.
// Once returned by Parse it is read-only and safe to share across island
// goroutines by reference (spec §3 Lifecycles, §5).
type Model struct {
	Dim       int
	LB, UB    []float64
	VarNames  []string
	VarIndex  map[string]int
	Maximize  bool
	Params    map[string]map[string]float64
	Sets      map[string][]string

	ObjectiveExpr string
	HasObjective  bool
	Objectives    []Objective

	// EvalFunc, when set, overrides ObjectiveExpr/Objectives entirely: it is
	// the escape hatch benchmark suites use to plug in an objective that
	// isn't expressible in the text grammar (spec §9 supplement).
	EvalFunc func(x []float64) float64

	Constraints []Constraint
	Pareto      Pareto

	CPGlobals []string
}

// New returns an empty Model with its maps initialized, matching the
// teacher's zero-value-unsafe-map convention (Rust's Model::new()).
func New() *Model {
	return &Model{
		VarIndex: map[string]int{},
		Params:   map[string]map[string]float64{},
		Sets:     map[string][]string{},
	}
}

// addVar appends one scalar decision variable and returns its index.
func (m *Model) addVar(name string, lb, ub float64) int {
	idx := len(m.VarNames)
	m.LB = append(m.LB, lb)
	m.UB = append(m.UB, ub)
	m.VarNames = append(m.VarNames, name)
	return idx
}

// finalize builds VarIndex from VarNames and sets Dim, mirroring parse()'s
// post-pass in parser.rs.
func (m *Model) finalize() {
	for i, name := range m.VarNames {
		m.VarIndex[name] = i
	}
	m.Dim = len(m.VarNames)
}

// EvaluateObjective evaluates the model's primary objective against x,
// falling back to the Sphere function (spec §4.B) when neither
// ObjectiveExpr nor Objectives is set.
func (m *Model) EvaluateObjective(x []float64) float64 {
	if m.EvalFunc != nil {
		return m.EvalFunc(x)
	}
	if m.HasObjective {
		return m.EvaluateExpr(m.ObjectiveExpr, x, nil)
	}
	if len(m.Objectives) > 0 {
		return m.EvaluateExpr(m.Objectives[0].Expr, x, nil)
	}
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return sum
}

// CheckConstraints evaluates every algebraic constraint against x and
// returns the unweighted sum of violations, plus whether that sum is within
// config.ConstraintTolerance of zero (spec §4.B).
func (m *Model) CheckConstraints(x []float64) (feasible bool, totalViolation float64) {
	for _, c := range m.Constraints {
		lhs := m.EvaluateExpr(c.Expr, x, nil)
		totalViolation += violation(lhs, c.Op, c.RHS)
	}
	return totalViolation <= config.ConstraintTolerance, totalViolation
}

// violation computes the non-negative breach of "lhs op rhs" per spec §4.B:
// max(0, lhs-rhs) for <=, max(0, rhs-lhs) for >=, |lhs-rhs| for ==.
func violation(lhs float64, op ConstraintOp, rhs float64) float64 {
	switch op {
	case Le:
		if d := lhs - rhs; d > 0 {
			return d
		}
		return 0
	case Ge:
		if d := rhs - lhs; d > 0 {
			return d
		}
		return 0
	case Eq:
		d := lhs - rhs
		if d < 0 {
			d = -d
		}
		return d
	default:
		return 0
	}
}
