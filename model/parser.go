package model

import (
	"strconv"
	"strings"

	"github.com/yut0takagi/Optica/config"
)

// Parse reads the Optica text format (spec §2) line by line and returns a
// fully-built Model. It never returns an error: a malformed line is skipped
// rather than aborting the whole parse, mirroring the source language's
// permissive line-oriented grammar. This keeps Parse usable on partial or
// hand-edited model files during REPL experimentation (spec §6).
func Parse(source string) (*Model, error) {
	m := New()

	inSubjectTo := false
	inData := false
	inObjectives := false

	var weights []WeightedObjective
	var epsConstraints []EpsilonConstraint
	primaryObj := ""
	paretoMode := ""

	for _, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(raw)
		line = strings.TrimSpace(strings.TrimSuffix(line, ";"))

		if line == "" ||
			strings.HasPrefix(line, "#") ||
			strings.HasPrefix(line, "//") ||
			strings.HasPrefix(line, "end") ||
			line == "}" {
			continue
		}

		if strings.HasPrefix(line, "objectives:") {
			inObjectives = true
			inSubjectTo = false
			continue
		}

		if strings.HasPrefix(line, "data:") {
			inData = true
			continue
		}

		if inData {
			if line == "" ||
				strings.HasPrefix(line, "param ") ||
				strings.HasPrefix(line, "var ") ||
				strings.HasPrefix(line, "set ") ||
				strings.HasPrefix(line, "subject to") ||
				strings.HasPrefix(line, "maximize") ||
				strings.HasPrefix(line, "minimize") {
				inData = false
				// fall through: this line belongs to the next section.
			} else {
				parseDataAssignment(line, m.Params)
				continue
			}
		}

		if inObjectives {
			if strings.HasPrefix(line, "subject to") {
				inObjectives = false
				inSubjectTo = true
				continue
			}
			if strings.HasPrefix(line, "pareto method:") {
				switch {
				case strings.Contains(line, "weighted_sum"):
					paretoMode = "weighted_sum"
				case strings.Contains(line, "epsilon_constraint"):
					paretoMode = "epsilon_constraint"
				}
				continue
			}
			if paretoMode == "weighted_sum" && strings.HasPrefix(line, "weight ") {
				if colon := strings.IndexByte(line, ':'); colon >= 0 {
					name := strings.TrimSpace(line[7:colon])
					val, _ := strconv.ParseFloat(strings.TrimSpace(line[colon+1:]), 64)
					weights = append(weights, WeightedObjective{Name: name, Weight: val})
				}
				continue
			}
			if paretoMode == "epsilon_constraint" {
				if rest, ok := strings.CutPrefix(line, "primary:"); ok {
					primaryObj = strings.TrimSpace(rest)
					continue
				}
				if strings.HasPrefix(line, "epsilon:") {
					continue
				}
				if strings.Contains(line, "<=") {
					s := strings.ReplaceAll(line, ":", "")
					if opPos := strings.Index(s, "<="); opPos >= 0 {
						name := strings.TrimSpace(s[:opPos])
						rhs, _ := strconv.ParseFloat(strings.TrimSpace(s[opPos+2:]), 64)
						epsConstraints = append(epsConstraints, EpsilonConstraint{Name: name, Op: Le, Threshold: rhs})
						continue
					}
				}
			}
			if strings.HasPrefix(line, "maximize") || strings.HasPrefix(line, "minimize") {
				maximize := strings.HasPrefix(line, "maximize")
				name, expr := parseObjectiveNamed(line)
				m.Objectives = append(m.Objectives, Objective{Name: name, Expr: expr, Maximize: maximize})
				if !m.HasObjective {
					m.Maximize = maximize
					m.ObjectiveExpr = expr
					m.HasObjective = true
				}
			}
			continue
		}

		switch {
		case strings.HasPrefix(line, "set "):
			parseSet(line, m.Sets)
		case strings.HasPrefix(line, "stage "):
			parseStage(line, m.Sets)
		case strings.HasPrefix(line, "state "):
			parseStateOrDecision(line, m, m.Sets, true)
		case strings.HasPrefix(line, "decision "):
			parseStateOrDecision(line, m, m.Sets, false)
		case strings.HasPrefix(line, "param "):
			parseParam(line, m.Params)
		case strings.HasPrefix(line, "var "):
			parseVar(line, m, m.Sets)
		case strings.HasPrefix(line, "maximize"):
			m.Maximize = true
			parseObjective(line, m)
		case strings.HasPrefix(line, "minimize"):
			m.Maximize = false
			parseObjective(line, m)
		case strings.HasPrefix(line, "subject to"):
			inSubjectTo = true
		case inSubjectTo && line != "":
			parseConstraint(line, m)
		}
	}

	switch {
	case paretoMode == "weighted_sum" && len(weights) > 0:
		m.Pareto = Pareto{Kind: ParetoWeightedSum, Weights: weights}
	case paretoMode == "epsilon_constraint" && primaryObj != "":
		m.Pareto = Pareto{Kind: ParetoEpsilon, Primary: primaryObj, Eps: epsConstraints}
	}

	m.finalize()
	return m, nil
}

// expandIndices resolves each raw index token to its domain: a named set, an
// inline a..b range, or (failing both) the literal token as a singleton
// domain.
func expandIndices(idxList []string, sets map[string][]string) [][]string {
	values := make([][]string, 0, len(idxList))
	for _, idx := range idxList {
		switch {
		case sets[idx] != nil:
			values = append(values, append([]string(nil), sets[idx]...))
		case strings.Contains(idx, ".."):
			dd := strings.Index(idx, "..")
			start, errA := strconv.Atoi(strings.TrimSpace(idx[:dd]))
			end, errB := strconv.Atoi(strings.TrimSpace(idx[dd+2:]))
			if errA == nil && errB == nil {
				v := make([]string, 0, end-start+1)
				for i := start; i <= end; i++ {
					v = append(v, strconv.Itoa(i))
				}
				values = append(values, v)
			} else {
				values = append(values, nil)
			}
		default:
			values = append(values, []string{idx})
		}
	}
	return values
}

// cartesian returns the cartesian product of lists, preserving the order
// each list contributes its axis, matching expand_indices' call site.
func cartesian(lists [][]string) [][]string {
	res := [][]string{{}}
	for _, list := range lists {
		var next [][]string
		for _, prefix := range res {
			for _, v := range list {
				p := append(append([]string(nil), prefix...), v)
				next = append(next, p)
			}
		}
		res = next
	}
	return res
}

// parseSet handles "set Items = {1, 2, 3};" and "set CUSTOMERS = 1..5;".
func parseSet(line string, sets map[string][]string) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return
	}
	name := strings.TrimSpace(line[4:eq])
	value := strings.TrimSuffix(strings.TrimSpace(line[eq+1:]), ";")

	if dd := strings.Index(value, ".."); dd >= 0 {
		start, errA := strconv.Atoi(strings.TrimSpace(value[:dd]))
		end, errB := strconv.Atoi(strings.TrimSpace(value[dd+2:]))
		if errA == nil && errB == nil {
			elems := make([]string, 0, end-start+1)
			for i := start; i <= end; i++ {
				elems = append(elems, strconv.Itoa(i))
			}
			sets[name] = elems
			return
		}
	}

	elemsStr := strings.Trim(value, "{}")
	var elems []string
	for _, s := range strings.Split(elemsStr, ",") {
		s = strings.Trim(strings.TrimSpace(s), "\"'")
		if s != "" {
			elems = append(elems, s)
		}
	}
	sets[name] = elems
}

// parseParam handles "param capacity = 10;", "param value[Items] = {1: 10,
// 2: 20};", and the value-less declaration "param value[Items] real;".
func parseParam(line string, params map[string]map[string]float64) {
	line = strings.TrimSuffix(line, ";")

	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		namePart := strings.TrimSpace(line[6:])
		if bracket := strings.IndexByte(namePart, '['); bracket >= 0 {
			name := strings.TrimSpace(namePart[:bracket])
			params[name] = map[string]float64{}
		}
		return
	}

	namePart := strings.TrimSpace(line[6:eq])
	valueStr := strings.TrimSpace(line[eq+1:])

	if !strings.Contains(namePart, "[") {
		if val, err := strconv.ParseFloat(valueStr, 64); err == nil {
			params[namePart] = map[string]float64{"_": val}
		}
		return
	}

	bracket := strings.IndexByte(namePart, '[')
	name := strings.TrimSpace(namePart[:bracket])

	m := map[string]float64{}
	valueStr = strings.Trim(valueStr, "{}")
	for _, pair := range strings.Split(valueStr, ",") {
		pair = strings.TrimSpace(pair)
		colon := strings.IndexByte(pair, ':')
		if colon < 0 {
			continue
		}
		key := strings.Trim(strings.TrimSpace(pair[:colon]), "\"'")
		if val, err := strconv.ParseFloat(strings.TrimSpace(pair[colon+1:]), 64); err == nil {
			m[key] = val
		}
	}
	params[name] = m
}

// parseDataAssignment handles "capacity = 100" / "cost[A] = 10" lines inside
// a data: block.
func parseDataAssignment(line string, params map[string]map[string]float64) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return
	}
	namePart := strings.TrimSpace(line[:eq])
	valueStr := strings.TrimSpace(line[eq+1:])

	if !strings.Contains(namePart, "[") {
		if val, err := strconv.ParseFloat(valueStr, 64); err == nil {
			params[namePart] = map[string]float64{"_": val}
		}
		return
	}

	b := strings.IndexByte(namePart, '[')
	name := strings.TrimSpace(namePart[:b])
	idx := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(namePart[b+1:]), "]"))
	val, _ := strconv.ParseFloat(valueStr, 64)
	if params[name] == nil {
		params[name] = map[string]float64{}
	}
	params[name][idx] = val
}

// parseVar handles "var x[Items] >= 0 <= 10;", "var y Binary;", and
// "var z[ITEMS, PERIODS] int;".
func parseVar(line string, m *Model, sets map[string][]string) {
	body := strings.TrimSuffix(strings.TrimSpace(line[4:]), ";")

	name, indices := splitNameIndices(body)
	lb, ub := parseBounds(body)
	addCombos(m, name, indices, sets, lb, ub)
}

// parseStage handles "stage t in 1..12;", registering a synthetic set named
// after the stage variable.
func parseStage(line string, sets map[string][]string) {
	line = strings.TrimSuffix(line, ";")
	inPos := strings.Index(line, " in ")
	if inPos < 0 {
		return
	}
	varName := strings.TrimSpace(line[6:inPos])
	rangeStr := strings.TrimSpace(line[inPos+4:])

	dd := strings.Index(rangeStr, "..")
	if dd < 0 {
		return
	}
	start, errA := strconv.Atoi(strings.TrimSpace(rangeStr[:dd]))
	end, errB := strconv.Atoi(strings.TrimSpace(rangeStr[dd+2:]))
	if errA != nil || errB != nil {
		return
	}
	elems := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		elems = append(elems, strconv.Itoa(i))
	}
	sets[varName] = elems
}

// parseStateOrDecision handles "state S[t] in 0..100 int;" and
// "decision order[t] in 0..50 int;", both materialized as ordinary decision
// variables (spec §9 supplement: DP-style state/decision declarations are
// accepted as sugar over var).
func parseStateOrDecision(line string, m *Model, sets map[string][]string, isState bool) {
	line = strings.TrimSuffix(line, ";")
	prefix := "decision "
	if isState {
		prefix = "state "
	}
	body := line[len(prefix):]

	name, indices := splitNameIndices(body)

	lb, ub := 0.0, config.DefaultUpperBound
	if inPos := strings.Index(body, " in "); inPos >= 0 {
		rangeStr := body[inPos+4:]
		if dd := strings.Index(rangeStr, ".."); dd >= 0 {
			startStr := strings.TrimSpace(rangeStr[:dd])
			rest := rangeStr[dd+2:]
			fields := strings.Fields(rest)
			endStr := ""
			if len(fields) > 0 {
				endStr = fields[0]
			}
			start, errA := strconv.ParseFloat(startStr, 64)
			end, errB := strconv.ParseFloat(endStr, 64)
			if errA == nil && errB == nil {
				lb, ub = start, end
			}
		}
	}

	addCombos(m, name, indices, sets, lb, ub)
}

// splitNameIndices splits "name[i1,i2]" into ("name", ["i1","i2"]) or a bare
// "name token ..." into ("name", nil).
func splitNameIndices(body string) (string, []string) {
	b := strings.IndexByte(body, '[')
	if b < 0 {
		fields := strings.Fields(body)
		if len(fields) == 0 {
			return "", nil
		}
		return fields[0], nil
	}
	e := strings.IndexByte(body, ']')
	if e < 0 {
		e = len(body)
	}
	indicesStr := body[b+1 : e]
	var indices []string
	for _, s := range strings.Split(indicesStr, ",") {
		indices = append(indices, strings.TrimSpace(s))
	}
	return strings.TrimSpace(body[:b]), indices
}

// addCombos expands indices against sets and appends one variable per
// cartesian-product combination, all sharing the same bounds.
func addCombos(m *Model, name string, indices []string, sets map[string][]string, lb, ub float64) {
	var combos []string
	if indices != nil {
		values := expandIndices(indices, sets)
		for _, combo := range cartesian(values) {
			combos = append(combos, name+"["+strings.Join(combo, ",")+"]")
		}
	} else {
		combos = append(combos, name)
	}
	for _, varName := range combos {
		m.addVar(varName, lb, ub)
	}
}

// parseObjective handles the single-objective form: "maximize profit: sum{i
// in Items} value[i] * x[i];" or the colon-less "maximize <expr>;".
func parseObjective(line string, m *Model) {
	if colon := strings.IndexByte(line, ':'); colon >= 0 {
		expr := strings.TrimSuffix(strings.TrimSpace(line[colon+1:]), ";")
		m.ObjectiveExpr = expr
		m.HasObjective = true
		return
	}
	if rest, ok := strings.CutPrefix(line, "maximize "); ok {
		m.ObjectiveExpr = strings.TrimSuffix(strings.TrimSpace(rest), ";")
		m.HasObjective = true
	} else if rest, ok := strings.CutPrefix(line, "minimize "); ok {
		m.ObjectiveExpr = strings.TrimSuffix(strings.TrimSpace(rest), ";")
		m.HasObjective = true
	}
}

// parseObjectiveNamed handles "minimize total_cost: expr" inside an
// objectives: block, returning (name, expr); the objective is named "obj"
// when no name precedes the colon.
func parseObjectiveNamed(line string) (string, string) {
	colon := strings.IndexByte(line, ':')
	if colon < 0 {
		return "obj", strings.TrimSuffix(line, ";")
	}
	head := strings.TrimSpace(line[:colon])
	expr := strings.TrimSuffix(strings.TrimSpace(line[colon+1:]), ";")
	fields := strings.Fields(head)
	name := "obj"
	if len(fields) > 1 {
		name = fields[1]
	}
	return name, expr
}

// parseConstraint handles one "subject to" line. Lines mentioning
// no_overlap/disjunctive/cumulative are recorded verbatim as CP-global
// annotations (spec §4.H) instead of being parsed as algebraic inequalities.
func parseConstraint(line string, m *Model) {
	line = strings.TrimSuffix(line, ";")

	if strings.Contains(line, "no_overlap") || strings.Contains(line, "disjunctive") || strings.Contains(line, "cumulative") {
		m.CPGlobals = append(m.CPGlobals, line)
		return
	}

	name, exprPart := "", line
	if colon := strings.IndexByte(line, ':'); colon >= 0 {
		name = strings.TrimSpace(line[:colon])
		exprPart = line[colon+1:]
	}
	exprPart = strings.TrimSpace(exprPart)

	var op ConstraintOp
	var opStr string
	switch {
	case strings.Contains(exprPart, "<="):
		op, opStr = Le, "<="
	case strings.Contains(exprPart, ">="):
		op, opStr = Ge, ">="
	case strings.Contains(exprPart, "=="):
		op, opStr = Eq, "=="
	default:
		return
	}

	parts := strings.SplitN(exprPart, opStr, 2)
	if len(parts) != 2 {
		return
	}
	lhs := strings.TrimSpace(parts[0])
	rhsStr := strings.TrimSpace(parts[1])

	rhs, err := strconv.ParseFloat(rhsStr, 64)
	if err != nil {
		rhs = 0.0
		if paramMap, ok := m.Params[rhsStr]; ok {
			rhs = paramMap["_"]
		}
	}

	if name == "" {
		name = "c" + strconv.Itoa(len(m.Constraints))
	}
	m.Constraints = append(m.Constraints, Constraint{Name: name, Expr: lhs, Op: op, RHS: rhs})
}

// parseBounds extracts (lb, ub) from a var/state/decision line: Binary
// collapses to [0,1]; otherwise >= and <= are scanned independently, each
// defaulting per spec §3 ([0, config.DefaultUpperBound]).
func parseBounds(line string) (float64, float64) {
	lb, ub := 0.0, config.DefaultUpperBound

	if strings.Contains(line, "binary") || strings.Contains(line, "Binary") {
		return 0.0, 1.0
	}

	if p := strings.Index(line, ">="); p >= 0 {
		fields := strings.Fields(line[p+2:])
		if len(fields) > 0 {
			if v, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], ";"), 64); err == nil {
				lb = v
			}
		}
	}

	if p := strings.Index(line, "<="); p >= 0 {
		fields := strings.Fields(line[p+2:])
		if len(fields) > 0 {
			if v, err := strconv.ParseFloat(strings.TrimSuffix(fields[0], ";"), 64); err == nil {
				ub = v
			}
		}
	}

	return lb, ub
}
