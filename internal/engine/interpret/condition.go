// Package interpret selects the clinical interpretation for a computed
// result by evaluating a calculator's ordered interpretation rules.
//
// Conditions form a small closed grammar: a blank condition always matches,
// a single comparison ("< 18.5", ">= 40"), or two comparisons joined by the
// word "and" (">= 18.5 and < 25"). Comparisons may carry an optional leading
// "result" identifier, which some catalog entries spell out.
package interpret

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Op is a comparison operator in a rule condition.
type Op int

const (
	OpLT Op = iota
	OpLE
	OpGT
	OpGE
	OpEQ
)

type comparison struct {
	op        Op
	threshold float64
}

func (c comparison) matches(v float64) bool {
	switch c.op {
	case OpLT:
		return v < c.threshold
	case OpLE:
		return v <= c.threshold
	case OpGT:
		return v > c.threshold
	case OpGE:
		return v >= c.threshold
	case OpEQ:
		return v == c.threshold
	}
	return false
}

// Condition is a parsed rule condition. The zero value never matches; use
// ParseCondition to build one.
type Condition struct {
	always bool
	cmps   []comparison
}

var andSplit = regexp.MustCompile(`(?i)\band\b`)

// ParseCondition parses a condition string into its compiled form. A blank
// string yields an always-matching condition. Parse once at catalog load and
// reuse: conditions are immutable and safe for concurrent use.
func ParseCondition(s string) (Condition, error) {
	if strings.TrimSpace(s) == "" {
		return Condition{always: true}, nil
	}

	parts := andSplit.Split(s, -1)
	cmps := make([]comparison, 0, len(parts))
	for _, part := range parts {
		cmp, err := parseComparison(part)
		if err != nil {
			return Condition{}, fmt.Errorf("condition %q: %w", s, err)
		}
		cmps = append(cmps, cmp)
	}
	return Condition{cmps: cmps}, nil
}

func parseComparison(s string) (comparison, error) {
	s = strings.TrimSpace(s)

	// Tolerate an explicit "result" subject: "result >= 90" == ">= 90".
	if rest, ok := strings.CutPrefix(s, "result"); ok {
		s = strings.TrimSpace(rest)
	}

	var op Op
	var rest string
	switch {
	case strings.HasPrefix(s, "<="):
		op, rest = OpLE, s[2:]
	case strings.HasPrefix(s, ">="):
		op, rest = OpGE, s[2:]
	case strings.HasPrefix(s, "=="):
		op, rest = OpEQ, s[2:]
	case strings.HasPrefix(s, "<"):
		op, rest = OpLT, s[1:]
	case strings.HasPrefix(s, ">"):
		op, rest = OpGT, s[1:]
	case strings.HasPrefix(s, "="):
		op, rest = OpEQ, s[1:]
	default:
		return comparison{}, fmt.Errorf("expected comparison operator in %q", s)
	}

	threshold, err := strconv.ParseFloat(strings.TrimSpace(rest), 64)
	if err != nil {
		return comparison{}, fmt.Errorf("invalid threshold in %q", s)
	}
	return comparison{op: op, threshold: threshold}, nil
}

// Matches reports whether the condition holds for the given value. All
// comparisons of a conjunctive condition must hold.
func (c Condition) Matches(v float64) bool {
	if c.always {
		return true
	}
	if len(c.cmps) == 0 {
		return false
	}
	for _, cmp := range c.cmps {
		if !cmp.matches(v) {
			return false
		}
	}
	return true
}

// Always reports whether the condition matches any value (blank condition,
// used for default rules).
func (c Condition) Always() bool { return c.always }
