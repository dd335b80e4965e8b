package model

import "strings"

// UnknownSymbols reports the identifiers in expr that resolve to neither a
// decision variable, a parameter, a set, nor a quantifier bound by an
// enclosing sum. The evaluator silently treats such symbols as 0, which
// hides typos; a caller wanting a strict validation pass can run this over a
// model's expressions before solving and reject any that report entries.
// The evaluator's own never-fail contract is unchanged.
func (m *Model) UnknownSymbols(expr string) []string {
	bound := map[string]bool{}
	seen := map[string]bool{}
	var unknown []string

	report := func(name string) {
		if !seen[name] {
			seen[name] = true
			unknown = append(unknown, name)
		}
	}

	// Pull sum headers out first: their quantifiers bind in the body, and
	// their domains are set names or ranges, not arithmetic symbols.
	var body strings.Builder
	rest := expr
	for {
		i := strings.Index(rest, "sum(")
		if j := strings.Index(rest, "sum{"); i < 0 || (j >= 0 && j < i) {
			i = j
		}
		if i < 0 {
			body.WriteString(rest)
			break
		}
		body.WriteString(rest[:i])
		closer := byte(')')
		if rest[i+3] == '{' {
			closer = '}'
		}
		end := strings.IndexByte(rest[i:], closer)
		if end < 0 {
			break
		}
		for _, part := range strings.Split(rest[i+4:i+end], ",") {
			pos := strings.Index(part, " in ")
			if pos < 0 {
				continue
			}
			bound[strings.TrimSpace(part[:pos])] = true
			dom := strings.TrimSpace(part[pos+len(" in "):])
			if _, ok := m.Sets[dom]; !ok && !strings.Contains(dom, "..") {
				report(dom)
			}
		}
		rest = rest[i+end+1:]
	}

	for _, t := range tokenizeArith(body.String()) {
		if t.kind != tokSym {
			continue
		}
		sym := t.sym
		c := sym[0]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_') {
			continue
		}
		switch sym {
		case "then", "else", "max", "min", "sum":
			continue
		}

		if br := strings.IndexByte(sym, '['); br >= 0 {
			name := sym[:br]
			if _, ok := m.Params[name]; ok {
				continue
			}
			if m.hasIndexedVar(name) {
				continue
			}
			report(name)
			continue
		}

		if _, ok := m.VarIndex[sym]; ok {
			continue
		}
		if _, ok := m.Params[sym]; ok {
			continue
		}
		if bound[sym] {
			continue
		}
		if _, ok := m.Sets[sym]; ok {
			continue
		}
		report(sym)
	}
	return unknown
}

// hasIndexedVar reports whether any decision variable belongs to the indexed
// family name[...].
func (m *Model) hasIndexedVar(name string) bool {
	prefix := name + "["
	for _, v := range m.VarNames {
		if strings.HasPrefix(v, prefix) {
			return true
		}
	}
	return false
}
