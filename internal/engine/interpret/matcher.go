package interpret

import "math"

// Rule is one (condition, interpretation) pair from a calculator's ordered
// rule list. Severity is informational and never evaluated.
type Rule struct {
	Condition      string
	Interpretation string
	Severity       string
}

type entry struct {
	cond Condition
	ok   bool
	text string
}

// RuleSet is a list of rules with their conditions parsed ahead of time.
// Compile once per calculator and evaluate many times; a RuleSet is
// immutable and safe for concurrent use.
type RuleSet struct {
	entries []entry
}

// Compile parses every rule condition. Malformed conditions become
// never-matching entries rather than errors: one bad rule must not block
// the rest of the list.
func Compile(rules []Rule) *RuleSet {
	rs := &RuleSet{entries: make([]entry, 0, len(rules))}
	for _, r := range rules {
		cond, err := ParseCondition(r.Condition)
		rs.entries = append(rs.entries, entry{
			cond: cond,
			ok:   err == nil,
			text: r.Interpretation,
		})
	}
	return rs
}

// Interpret returns the interpretation of the first rule whose condition
// matches value, in list order. It returns "" when no rule matches or when
// value is NaN or infinite; absence of an interpretation is a valid outcome,
// not an error.
func (rs *RuleSet) Interpret(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return ""
	}
	for _, e := range rs.entries {
		if e.ok && e.cond.Matches(value) {
			return e.text
		}
	}
	return ""
}

// Interpret evaluates rules against an optional result without precompiling.
// A nil value short-circuits to "": no interpretation is meaningful for an
// absent result. Callers on a hot path should Compile once instead.
func Interpret(rules []Rule, value *float64) string {
	if value == nil {
		return ""
	}
	return Compile(rules).Interpret(*value)
}
