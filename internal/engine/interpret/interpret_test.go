package interpret

import (
	"math"
	"testing"
)

func TestParseCondition(t *testing.T) {
	tests := []struct {
		cond    string
		value   float64
		matches bool
	}{
		{"< 18.5", 17, true},
		{"< 18.5", 18.5, false},
		{"<= 8", 8, true},
		{"> 100", 100, false},
		{"> 100", 100.01, true},
		{">= 40", 40, true},
		{"= 15", 15, true},
		{"= 15", 14.9, false},
		{"== 15", 15, true},
		{">= 18.5 and < 25", 22.86, true},
		{">= 18.5 and < 25", 25, false},
		{">= 18.5 and < 25", 18.49, false},
		{">= 9 AND <= 12", 10, true},
		{"result >= 90", 95, true},
		{"result >= 60 and result < 90", 75, true},
		{"result >= 60 and result < 90", 90, false},
		{"< -5", -10, true},
		{">= -2.5 and < 0", -1, true},
		{"", 123.45, true},
		{"   ", -1, true},
	}
	for _, tt := range tests {
		t.Run(tt.cond, func(t *testing.T) {
			cond, err := ParseCondition(tt.cond)
			if err != nil {
				t.Fatalf("ParseCondition(%q) error: %v", tt.cond, err)
			}
			if got := cond.Matches(tt.value); got != tt.matches {
				t.Errorf("ParseCondition(%q).Matches(%v) = %v, want %v", tt.cond, tt.value, got, tt.matches)
			}
		})
	}
}

func TestParseConditionErrors(t *testing.T) {
	malformed := []string{
		"> >= 5",
		"between 1 and 2",
		">=",
		"< abc",
		"18.5 <",
		"value > 5",
	}
	for _, cond := range malformed {
		if _, err := ParseCondition(cond); err == nil {
			t.Errorf("ParseCondition(%q) = nil error, want parse failure", cond)
		}
	}
}

func bmiRules() []Rule {
	return []Rule{
		{Condition: "< 16", Interpretation: "Severe Thinness", Severity: "critical"},
		{Condition: ">= 16 and < 17", Interpretation: "Moderate Thinness", Severity: "warning"},
		{Condition: ">= 17 and < 18.5", Interpretation: "Mild Thinness", Severity: "caution"},
		{Condition: ">= 18.5 and < 25", Interpretation: "Normal weight", Severity: "normal"},
		{Condition: ">= 25 and < 30", Interpretation: "Overweight", Severity: "caution"},
		{Condition: ">= 30 and < 35", Interpretation: "Obese Class I", Severity: "warning"},
		{Condition: ">= 35 and < 40", Interpretation: "Obese Class II", Severity: "danger"},
		{Condition: ">= 40", Interpretation: "Obese Class III", Severity: "critical"},
	}
}

func TestFirstMatchPolicy(t *testing.T) {
	rs := Compile(bmiRules())

	tests := []struct {
		value float64
		want  string
	}{
		{15.9, "Severe Thinness"},
		{16, "Moderate Thinness"},
		{22.86, "Normal weight"},
		{25, "Overweight"},
		{29.999, "Overweight"},
		{40, "Obese Class III"},
		{55, "Obese Class III"},
	}
	for _, tt := range tests {
		if got := rs.Interpret(tt.value); got != tt.want {
			t.Errorf("Interpret(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFirstMatchStopsAtFirst(t *testing.T) {
	// A broad catch-all after a specific rule must never win for values the
	// specific rule covers.
	rs := Compile([]Rule{
		{Condition: ">= 18.5 and < 25", Interpretation: "Normal weight"},
		{Condition: ">= 0", Interpretation: "Catch-all"},
	})
	if got := rs.Interpret(22.86); got != "Normal weight" {
		t.Errorf("Interpret(22.86) = %q, want the specific rule to win", got)
	}
	if got := rs.Interpret(30); got != "Catch-all" {
		t.Errorf("Interpret(30) = %q, want %q", got, "Catch-all")
	}
}

func TestDefaultRule(t *testing.T) {
	rs := Compile([]Rule{
		{Condition: "< 10", Interpretation: "Low"},
		{Condition: "", Interpretation: "This is your calculated ideal body weight."},
	})
	if got := rs.Interpret(72.5); got != "This is your calculated ideal body weight." {
		t.Errorf("default rule not selected, got %q", got)
	}
}

func TestNoMatchingRule(t *testing.T) {
	rs := Compile([]Rule{
		{Condition: "< 10", Interpretation: "Low"},
		{Condition: "> 100", Interpretation: "High"},
	})
	if got := rs.Interpret(50); got != "" {
		t.Errorf("Interpret(50) = %q, want empty", got)
	}
}

func TestNullAndNonFiniteResults(t *testing.T) {
	rules := bmiRules()
	if got := Interpret(rules, nil); got != "" {
		t.Errorf("Interpret(nil) = %q, want empty", got)
	}
	rs := Compile(rules)
	if got := rs.Interpret(math.NaN()); got != "" {
		t.Errorf("Interpret(NaN) = %q, want empty", got)
	}
	if got := rs.Interpret(math.Inf(1)); got != "" {
		t.Errorf("Interpret(+Inf) = %q, want empty", got)
	}
}

func TestMalformedRuleIsSkipped(t *testing.T) {
	rs := Compile([]Rule{
		{Condition: "> >= 5", Interpretation: "Broken"},
		{Condition: ">= 5", Interpretation: "Valid"},
	})
	if got := rs.Interpret(10); got != "Valid" {
		t.Errorf("Interpret(10) = %q, want the malformed rule skipped", got)
	}
	// A malformed rule alone never matches anything.
	broken := Compile([]Rule{{Condition: "> >= 5", Interpretation: "Broken"}})
	if got := broken.Interpret(10); got != "" {
		t.Errorf("broken-only rule set matched: %q", got)
	}
}

func TestEmptyRuleList(t *testing.T) {
	v := 42.0
	if got := Interpret(nil, &v); got != "" {
		t.Errorf("Interpret with no rules = %q, want empty", got)
	}
}

func TestInterpretIsIdempotent(t *testing.T) {
	rs := Compile(bmiRules())
	first := rs.Interpret(31.2)
	second := rs.Interpret(31.2)
	if first != second || first != "Obese Class I" {
		t.Errorf("repeated interpretation differs: %q vs %q", first, second)
	}
}
