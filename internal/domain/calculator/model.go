package calculator

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/medcalc/medcalc/internal/engine/formula"
)

// FieldType enumerates the supported form input kinds.
type FieldType string

const (
	FieldNumber FieldType = "number"
	FieldSelect FieldType = "select"
	FieldText   FieldType = "text"
)

// Severity tags an interpretation rule for display purposes; it is never
// evaluated by the matcher.
const (
	SeverityNormal   = "normal"
	SeverityCaution  = "caution"
	SeverityWarning  = "warning"
	SeverityDanger   = "danger"
	SeverityCritical = "critical"
)

// Categories lists the known calculator categories.
var Categories = []string{"cardiology", "endocrinology", "general", "nephrology", "neurology", "obstetrics", "pediatrics"}

// FieldOption is one choice of a select field. Factors carries auxiliary
// numeric inputs injected when the option is chosen, e.g. a sex-based
// multiplier {"sex_factor": 0.85} that the formula references directly.
type FieldOption struct {
	Value   string             `json:"value"`
	Label   string             `json:"label"`
	LabelRu string             `json:"label_ru,omitempty"`
	Factors map[string]float64 `json:"factors,omitempty"`
}

// InputField describes one form input of a calculator.
type InputField struct {
	Name     string        `json:"name"`
	Label    string        `json:"label"`
	LabelRu  string        `json:"label_ru,omitempty"`
	Type     FieldType     `json:"type"`
	Unit     string        `json:"unit,omitempty"`
	UnitRu   string        `json:"unit_ru,omitempty"`
	Required bool          `json:"required"`
	Min      *float64      `json:"min,omitempty"`
	Max      *float64      `json:"max,omitempty"`
	Step     *float64      `json:"step,omitempty"`
	Options  []FieldOption `json:"options,omitempty"`
}

// InterpretationRule is one (condition, interpretation) pair. Rules are
// ordered most-specific first; the matcher returns the first match.
type InterpretationRule struct {
	Condition        string `json:"condition"`
	Interpretation   string `json:"interpretation"`
	InterpretationRu string `json:"interpretation_ru,omitempty"`
	Severity         string `json:"severity,omitempty"`
}

// Calculator is a catalog entry: a named formula with its input fields and
// ordered interpretation rules. Catalog entries are immutable at runtime.
type Calculator struct {
	ID                  uuid.UUID            `json:"id"`
	Name                string               `json:"name"`
	NameRu              string               `json:"name_ru,omitempty"`
	Description         string               `json:"description,omitempty"`
	DescriptionRu       string               `json:"description_ru,omitempty"`
	Category            string               `json:"category"`
	Formula             string               `json:"formula"`
	InputFields         []InputField         `json:"input_fields"`
	InterpretationRules []InterpretationRule `json:"interpretation_rules"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

// Field returns the input field with the given name, or nil.
func (c *Calculator) Field(name string) *InputField {
	for i := range c.InputFields {
		if c.InputFields[i].Name == name {
			return &c.InputFields[i]
		}
	}
	return nil
}

// CoerceInputs converts raw request input data into a typed input map for
// the formula engine. Numeric fields are parsed and range-checked, select
// fields are resolved to their option (injecting any auxiliary factors),
// text fields pass through. This is the validation boundary: downstream
// evaluation assumes numeric inputs are finite.
func (c *Calculator) CoerceInputs(raw map[string]any) (formula.Inputs, error) {
	inputs := make(formula.Inputs, len(c.InputFields))

	for _, f := range c.InputFields {
		v, present := raw[f.Name]
		if !present || isBlank(v) {
			if f.Required {
				return nil, fmt.Errorf("field %q is required", f.Name)
			}
			continue
		}

		switch f.Type {
		case FieldNumber:
			n, err := toNumber(v)
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", f.Name, err)
			}
			if f.Min != nil && n < *f.Min {
				return nil, fmt.Errorf("field %q must be at least %v", f.Name, *f.Min)
			}
			if f.Max != nil && n > *f.Max {
				return nil, fmt.Errorf("field %q must be at most %v", f.Name, *f.Max)
			}
			inputs[f.Name] = n

		case FieldSelect:
			s := fmt.Sprintf("%v", v)
			opt := f.option(s)
			if opt == nil {
				return nil, fmt.Errorf("field %q: unknown option %q", f.Name, s)
			}
			inputs[f.Name] = opt.Value
			for k, factor := range opt.Factors {
				inputs[k] = factor
			}

		default:
			inputs[f.Name] = fmt.Sprintf("%v", v)
		}
	}

	return inputs, nil
}

func (f *InputField) option(value string) *FieldOption {
	for i := range f.Options {
		if f.Options[i].Value == value {
			return &f.Options[i]
		}
	}
	return nil
}

func isBlank(v any) bool {
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func toNumber(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n)
		}
		return f, nil
	}
	return 0, fmt.Errorf("not a number: %v", v)
}

// Validate checks that a catalog entry is structurally sound: the formula
// parses and required metadata is present. Rule conditions are not checked
// here. A malformed condition degrades to never-matching at interpretation
// time instead of blocking the whole entry.
func (c *Calculator) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name is required")
	}
	if c.Category == "" {
		return fmt.Errorf("category is required")
	}
	if len(c.InputFields) == 0 {
		return fmt.Errorf("at least one input field is required")
	}
	if err := formula.Validate(c.Formula); err != nil {
		return fmt.Errorf("formula: %w", err)
	}
	return nil
}
