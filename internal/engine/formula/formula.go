// Package formula evaluates clinical formula templates such as
// "{weight} / (({height}/100)^2)" against a map of named inputs.
//
// Templates are parsed into an expression tree and evaluated with a variable
// environment; no text substitution or dynamic code execution is involved.
// Evaluation is a pure function of the template and the inputs.
package formula

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// Inputs maps field names to values. Numeric fields carry float64 (or any
// integer kind), select and text fields carry strings. String values are
// coerced to numbers only where a formula uses them in arithmetic position.
type Inputs map[string]any

// datePattern matches the one supported date-arithmetic form,
// "{field} + N days". It is checked before generic parsing; a matching
// formula never reaches the arithmetic evaluator.
var datePattern = regexp.MustCompile(`(?i)^\s*\{\s*([a-zA-Z0-9_]+)\s*\}\s*\+\s*(\d+)\s*days\s*$`)

var dateLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

// Evaluate computes a formula template against the given inputs. It returns
// an error when a referenced input is missing or non-numeric, the template
// does not parse, or the arithmetic result is NaN or infinite. Callers that
// want the original null-on-failure contract treat any error as "no result".
func Evaluate(template string, inputs Inputs) (float64, error) {
	if template == "" {
		return 0, fmt.Errorf("empty formula")
	}

	if m := datePattern.FindStringSubmatch(template); m != nil {
		return evalDate(m[1], m[2], inputs)
	}

	root, err := parse(template)
	if err != nil {
		return 0, fmt.Errorf("parse formula: %w", err)
	}

	env := make(map[string]float64, len(inputs))
	for name, raw := range inputs {
		if v, ok := numeric(raw); ok {
			env[name] = v
		}
	}

	v, err := root.eval(env)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("result is not a finite number")
	}
	return v, nil
}

// evalDate handles "{field} + N days": the field value is parsed as a
// calendar date and the result is the Unix millisecond timestamp of that
// date plus N days, so downstream code can format it back into a date.
func evalDate(field, daysStr string, inputs Inputs) (float64, error) {
	raw, ok := inputs[field]
	if !ok {
		return 0, fmt.Errorf("input %q is not defined", field)
	}
	days, err := strconv.Atoi(daysStr)
	if err != nil {
		return 0, fmt.Errorf("invalid day count %q", daysStr)
	}

	var base time.Time
	switch v := raw.(type) {
	case time.Time:
		base = v
	case string:
		for _, layout := range dateLayouts {
			if t, perr := time.Parse(layout, v); perr == nil {
				base = t
				break
			}
		}
		if base.IsZero() {
			return 0, fmt.Errorf("input %q is not a parseable date: %q", field, v)
		}
	default:
		return 0, fmt.Errorf("input %q is not a date", field)
	}

	result := base.Add(time.Duration(days) * 24 * time.Hour)
	return float64(result.UnixMilli()), nil
}

// numeric coerces an input value to float64. Strings are accepted when they
// parse as numbers; everything else has no arithmetic meaning.
func numeric(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// Validate reports whether a formula template is well-formed without
// evaluating it. The date-arithmetic form is always considered valid.
func Validate(template string) error {
	if template == "" {
		return fmt.Errorf("empty formula")
	}
	if datePattern.MatchString(template) {
		return nil
	}
	_, err := parse(template)
	return err
}
