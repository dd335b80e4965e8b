// Package bench provides benchmark optimization functions for exercising
// the solver engines end to end, adapted from the teacher's bench package
// (http://en.wikipedia.org/wiki/Test_functions_for_optimization). Each Func
// is wrapped as a Model via AsModel so it can be driven through
// solver.Dispatch exactly like a parsed Optica program (spec §9 supplement:
// the CLI's "bench" subcommand exercises this suite, not just Sphere).
package bench

import (
	"fmt"
	"math"

	"github.com/yut0takagi/Optica/model"
)

var (
	sin  = math.Sin
	cos  = math.Cos
	abs  = math.Abs
	exp  = math.Exp
	sqrt = math.Sqrt
)

// Func is one benchmark function: evaluable directly, and carrying enough
// metadata (bounds, known optimum, convergence tolerance) to drive and grade
// a solve.
type Func interface {
	Eval(v []float64) float64
	Bounds() (low, up []float64)
	OptimumVal() float64
	// Tol returns a fitness value below which a solve is considered
	// converged on this function.
	Tol() float64
	Name() string
}

// AllFuncs is the full benchmark suite, mirroring the teacher's AllFuncs.
var AllFuncs = []Func{
	Sphere{NDim: 10},
	Ackley{},
	CrossTray{},
	Eggholder{},
	HolderTable{},
	Schaffer2{},
	Styblinski{NDim: 1},
	Styblinski{NDim: 10},
	Styblinski{NDim: 100},
	Rosenbrock{NDim: 2},
	Rosenbrock{NDim: 10},
	Rosenbrock{NDim: 100},
}

// InsideBounds reports whether p lies within fn's box bounds.
func InsideBounds(p []float64, fn Func) bool {
	low, up := fn.Bounds()
	for i := range p {
		if p[i] < low[i] || p[i] > up[i] {
			return false
		}
	}
	return true
}

// AsModel wraps fn as a Model whose objective is fn.Eval, so it can be
// driven through solver.Dispatch the same way a parsed program is. The
// objective is plugged in as a Go closure via EvalFunc rather than text,
// since these benchmark surfaces (Eggholder, HolderTable, ...) aren't
// expressible in the Optica text grammar.
func AsModel(fn Func) *model.Model {
	low, up := fn.Bounds()
	m := model.New()
	m.LB = append([]float64(nil), low...)
	m.UB = append([]float64(nil), up...)
	for i := range low {
		name := fmt.Sprintf("x%d", i)
		m.VarNames = append(m.VarNames, name)
		m.VarIndex[name] = i
	}
	m.Dim = len(m.VarNames)
	m.EvalFunc = fn.Eval
	return m
}

// Sphere is the classic separable quadratic bowl; included here (rather
// than only as model.EvaluateObjective's no-objective fallback) so the bench
// CLI subcommand can grade it like any other entry in the suite.
type Sphere struct{ NDim int }

func (fn Sphere) Name() string { return fmt.Sprintf("Sphere_%dD", fn.NDim) }
func (fn Sphere) Tol() float64 { return 1e-6 }

func (fn Sphere) Eval(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(1)
	}
	sum := 0.0
	for _, v := range x {
		sum += v * v
	}
	return sum
}

func (fn Sphere) Bounds() (low, up []float64) {
	low = make([]float64, fn.NDim)
	up = make([]float64, fn.NDim)
	for i := range low {
		low[i] = -5.12
		up[i] = 5.12
	}
	return low, up
}

func (fn Sphere) OptimumVal() float64 { return 0 }

type Ackley struct{}

func (fn Ackley) Name() string { return "Ackley" }
func (fn Ackley) Tol() float64 { return .01 }

func (fn Ackley) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}
	x, y := v[0], v[1]
	return -20*math.Exp(-0.2*math.Sqrt(0.5*(x*x+y*y))) -
		math.Exp(0.5*(math.Cos(2*math.Pi*x)+math.Cos(2*math.Pi*y))) +
		20 + math.E
}

func (fn Ackley) Bounds() (low, up []float64) { return []float64{-5, -5}, []float64{5, 5} }
func (fn Ackley) OptimumVal() float64         { return 0 }

type CrossTray struct{}

func (fn CrossTray) Name() string     { return "CrossTray" }
func (fn CrossTray) OptimumVal() float64 { return -2.06261 }
func (fn CrossTray) Tol() float64     { return fn.OptimumVal() + math.Abs(fn.OptimumVal()*.01) }

func (fn CrossTray) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}
	x, y := v[0], v[1]
	return -.0001 * math.Pow(abs(sin(x)*sin(y)*exp(abs(100-sqrt(x*x+y*y)/math.Pi)))+1, 0.1)
}

func (fn CrossTray) Bounds() (low, up []float64) { return []float64{-10, -10}, []float64{10, 10} }

type Eggholder struct{}

func (fn Eggholder) Name() string        { return "Eggholder" }
func (fn Eggholder) OptimumVal() float64 { return -959.6407 }
func (fn Eggholder) Tol() float64        { return fn.OptimumVal() + math.Abs(fn.OptimumVal()*.01) }

func (fn Eggholder) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}
	x, y := v[0], v[1]
	return -(y+47)*sin(sqrt(abs(y+x/2+47))) - x*sin(sqrt(abs(x-(y+47))))
}

func (fn Eggholder) Bounds() (low, up []float64) { return []float64{-512, -512}, []float64{512, 512} }

type HolderTable struct{}

func (fn HolderTable) Name() string        { return "HolderTable" }
func (fn HolderTable) OptimumVal() float64 { return -19.2085 }
func (fn HolderTable) Tol() float64        { return fn.OptimumVal() + math.Abs(fn.OptimumVal()*.01) }

func (fn HolderTable) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}
	x, y := v[0], v[1]
	return -abs(sin(x) * cos(y) * exp(abs(1-sqrt(x*x+y*y)/math.Pi)))
}

func (fn HolderTable) Bounds() (low, up []float64) { return []float64{-10, -10}, []float64{10, 10} }

type Schaffer2 struct{}

func (fn Schaffer2) Name() string        { return "Schaffer2" }
func (fn Schaffer2) Tol() float64        { return .01 }
func (fn Schaffer2) OptimumVal() float64 { return 0 }

func (fn Schaffer2) Eval(v []float64) float64 {
	if !InsideBounds(v, fn) {
		return math.Inf(1)
	}
	x, y := v[0], v[1]
	return 0.5 + (math.Pow(sin(x*x-y*y), 2)-0.5)/math.Pow(1+.0001*(x*x+y*y), 2)
}

func (fn Schaffer2) Bounds() (low, up []float64) { return []float64{-100, -100}, []float64{100, 100} }

type Styblinski struct{ NDim int }

func (fn Styblinski) Name() string        { return fmt.Sprintf("Styblinski_%dD", fn.NDim) }
func (fn Styblinski) OptimumVal() float64 { return -39.16599 * float64(fn.NDim) }
func (fn Styblinski) Tol() float64        { return fn.OptimumVal() + math.Abs(fn.OptimumVal()*.01) }

func (fn Styblinski) Eval(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(1)
	}
	tot := 0.0
	for _, v := range x {
		tot += math.Pow(v, 4) - 16*math.Pow(v, 2) + 5*v
	}
	return tot / 2
}

func (fn Styblinski) Bounds() (low, up []float64) {
	low = make([]float64, fn.NDim)
	up = make([]float64, fn.NDim)
	for i := range low {
		low[i] = -5
		up[i] = 5
	}
	return low, up
}

type Rosenbrock struct{ NDim int }

func (fn Rosenbrock) Name() string        { return fmt.Sprintf("Rosenbrock_%dD", fn.NDim) }
func (fn Rosenbrock) OptimumVal() float64 { return 0 }
func (fn Rosenbrock) Tol() float64        { return float64(fn.NDim) }

func (fn Rosenbrock) Eval(x []float64) float64 {
	if !InsideBounds(x, fn) {
		return math.Inf(1)
	}
	tot1, tot2 := 0.0, 0.0
	for i := 0; i < fn.NDim-1; i++ {
		tot1 += math.Pow(x[i+1]-x[i]*x[i], 2)
		tot2 += math.Pow(x[i]-1, 2)
	}
	return 100*tot1 + tot2
}

func (fn Rosenbrock) Bounds() (low, up []float64) {
	low = make([]float64, fn.NDim)
	up = make([]float64, fn.NDim)
	for i := range low {
		low[i] = -30
		up[i] = 30
	}
	return low, up
}
