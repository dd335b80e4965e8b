// Package fitness composes a Model's objective(s), algebraic constraints,
// and CP-global annotations into the single scalar the DE/PSO engines
// minimize (spec §4.C). It mirrors the source language's compute_fitness
// module: a small, branchless-per-call function plus one piece of global,
// process-wide, read-mostly state — the penalty coefficient — read once via
// sync.OnceValue rather than guarded by a mutex, since it never changes
// after the first read.
package fitness

import (
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/yut0takagi/Optica/config"
	"github.com/yut0takagi/Optica/model"
)

var penaltyCoeff = sync.OnceValue(func() float64 {
	if v := os.Getenv(config.PenaltyEnvVar); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return config.DefaultPenaltyCoeff
})

// PenaltyCoeff returns the process-wide penalty multiplier, reading
// config.PenaltyEnvVar on first use and caching the result for the life of
// the process.
func PenaltyCoeff() float64 {
	return penaltyCoeff()
}

// Compute evaluates m's fitness at x: the scalar every engine minimizes,
// branching on m.Pareto.Kind (spec §4.C).
func Compute(m *model.Model, x []float64) float64 {
	p := PenaltyCoeff()
	_, algebraicViolation := m.CheckConstraints(x)
	cp := cpPenalty(m, x)

	switch m.Pareto.Kind {
	case model.ParetoWeightedSum:
		return weightedSum(m, x) + algebraicViolation*p

	case model.ParetoEpsilon:
		return epsilon(m, x) + (algebraicViolation+epsViolations(m, x))*p

	default: // model.ParetoSingle
		obj := m.EvaluateObjective(x)
		if m.Maximize {
			obj = -obj
		}
		return obj + (algebraicViolation+cp)*p
	}
}

func signedObjective(m *model.Model, expr string, maximize bool, x []float64) float64 {
	v := m.EvaluateExpr(expr, x, nil)
	if maximize {
		return -v
	}
	return v
}

// weightedSum sums w * signed(v) over every named objective carrying a
// weight; CP penalty is intentionally not added in this branch (spec §4.C,
// decided in DESIGN.md's Open Questions).
func weightedSum(m *model.Model, x []float64) float64 {
	byName := make(map[string]model.Objective, len(m.Objectives))
	for _, o := range m.Objectives {
		byName[o.Name] = o
	}
	total := 0.0
	for _, w := range m.Pareto.Weights {
		obj, ok := byName[w.Name]
		if !ok {
			continue
		}
		total += w.Weight * signedObjective(m, obj.Expr, obj.Maximize, x)
	}
	return total
}

// epsilon returns the signed value of the primary objective.
func epsilon(m *model.Model, x []float64) float64 {
	for _, o := range m.Objectives {
		if o.Name == m.Pareto.Primary {
			return signedObjective(m, o.Expr, o.Maximize, x)
		}
	}
	return 0
}

// epsViolations sums the per-threshold violation of every secondary
// objective named in Pareto.Eps, using the same per-op rule as algebraic
// constraints.
func epsViolations(m *model.Model, x []float64) float64 {
	byName := make(map[string]model.Objective, len(m.Objectives))
	for _, o := range m.Objectives {
		byName[o.Name] = o
	}
	total := 0.0
	for _, eps := range m.Pareto.Eps {
		obj, ok := byName[eps.Name]
		if !ok {
			continue
		}
		v := signedObjective(m, obj.Expr, obj.Maximize, x)
		total += opViolation(v, eps.Op, eps.Threshold)
	}
	return total
}

func opViolation(lhs float64, op model.ConstraintOp, rhs float64) float64 {
	switch op {
	case model.Le:
		if d := lhs - rhs; d > 0 {
			return d
		}
		return 0
	case model.Ge:
		if d := rhs - lhs; d > 0 {
			return d
		}
		return 0
	case model.Eq:
		d := lhs - rhs
		if d < 0 {
			d = -d
		}
		return d
	default:
		return 0
	}
}

// interval is one candidate-dependent [start, end) span used by the CP
// penalty sweeps below.
type interval struct {
	start, end float64
}

// cpPenalty sums the penalty contribution of every CP-global annotation
// line recorded on m (spec §4.C).
func cpPenalty(m *model.Model, x []float64) float64 {
	total := 0.0
	for _, g := range m.CPGlobals {
		switch {
		case strings.Contains(g, "no_overlap"):
			total += pairwiseOverlapPenalty(noOverlapIntervals(m, x))
		case strings.Contains(g, "disjunctive"):
			total += pairwiseOverlapPenalty(disjunctiveIntervals(m, x))
		case strings.Contains(g, "cumulative"):
			total += cumulativePenalty(m, x, g)
		}
	}
	return total
}

// suffixesWithBoth scans VarNames for pairs of vars named prefix1[k] and
// prefix2[k] sharing the same bracketed suffix k, returning the sorted list
// of suffixes for which both exist.
func suffixesWithBoth(m *model.Model, prefix1, prefix2 string) []string {
	has1 := map[string]bool{}
	has2 := map[string]bool{}
	for _, name := range m.VarNames {
		if suf, ok := suffixOf(name, prefix1); ok {
			has1[suf] = true
		}
		if suf, ok := suffixOf(name, prefix2); ok {
			has2[suf] = true
		}
	}
	var out []string
	for suf := range has1 {
		if has2[suf] {
			out = append(out, suf)
		}
	}
	sort.Strings(out)
	return out
}

func suffixOf(name, prefix string) (string, bool) {
	if !strings.HasPrefix(name, prefix+"[") || !strings.HasSuffix(name, "]") {
		return "", false
	}
	return name[len(prefix)+1 : len(name)-1], true
}

// noOverlapIntervals builds one (start, end) interval per suffix that has
// both a start[k] and end[k] decision variable.
func noOverlapIntervals(m *model.Model, x []float64) []interval {
	var out []interval
	for _, suf := range suffixesWithBoth(m, "start", "end") {
		s := x[m.VarIndex["start["+suf+"]"]]
		e := x[m.VarIndex["end["+suf+"]"]]
		out = append(out, interval{start: s, end: e})
	}
	return out
}

// disjunctiveIntervals builds (start, start+duration) intervals from
// start[k]/duration[k] pairs.
func disjunctiveIntervals(m *model.Model, x []float64) []interval {
	var out []interval
	for _, suf := range suffixesWithBoth(m, "start", "duration") {
		s := x[m.VarIndex["start["+suf+"]"]]
		d := x[m.VarIndex["duration["+suf+"]"]]
		out = append(out, interval{start: s, end: s + d})
	}
	return out
}

// pairwiseOverlapPenalty sums, over every unordered pair i<j, the overlap
// length max(0, min(e_i,e_j) - max(s_i,s_j)) (spec §4.C).
func pairwiseOverlapPenalty(intervals []interval) float64 {
	total := 0.0
	for i := 0; i < len(intervals); i++ {
		for j := i + 1; j < len(intervals); j++ {
			lo := intervals[i].start
			if intervals[j].start > lo {
				lo = intervals[j].start
			}
			hi := intervals[i].end
			if intervals[j].end < hi {
				hi = intervals[j].end
			}
			if d := hi - lo; d > 0 {
				total += d
			}
		}
	}
	return total
}

// cumulativePenalty sweeps the sorted endpoints of start[k]/start[k]+
// duration[k] intervals, accumulating max(0, load-capacity) * elapsed over
// each elementary interval, where demand and capacity are the first two
// numeric literals appearing in the annotation line g (spec §4.C).
func cumulativePenalty(m *model.Model, x []float64, g string) float64 {
	intervals := disjunctiveIntervals(m, x)
	if len(intervals) == 0 {
		return 0
	}
	demand, capacity := firstTwoNumbers(g)

	points := make([]float64, 0, 2*len(intervals))
	for _, iv := range intervals {
		points = append(points, iv.start, iv.end)
	}
	sort.Float64s(points)

	total := 0.0
	for i := 0; i+1 < len(points); i++ {
		t0, t1 := points[i], points[i+1]
		if t1 <= t0 {
			continue
		}
		mid := (t0 + t1) / 2
		count := 0
		for _, iv := range intervals {
			if mid >= iv.start && mid < iv.end {
				count++
			}
		}
		load := demand * float64(count)
		if excess := load - capacity; excess > 0 {
			total += excess * (t1 - t0)
		}
	}
	return total
}

// firstTwoNumbers scans s left to right and returns the first two numeric
// literals found, 0 for any that are missing. Digits embedded in an
// identifier (the "0" of a constraint name like "c0") are not literals.
func firstTwoNumbers(s string) (float64, float64) {
	var nums []float64
	i := 0
	for i < len(s) && len(nums) < 2 {
		c := s[i]
		if c >= '0' && c <= '9' {
			if i > 0 && isIdentByte(s[i-1]) {
				i++
				continue
			}
			start := i
			i++
			for i < len(s) && (s[i] >= '0' && s[i] <= '9' || s[i] == '.') {
				i++
			}
			if v, err := strconv.ParseFloat(s[start:i], 64); err == nil {
				nums = append(nums, v)
			}
			continue
		}
		i++
	}
	for len(nums) < 2 {
		nums = append(nums, 0)
	}
	return nums[0], nums[1]
}

func isIdentByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}
