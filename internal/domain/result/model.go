package result

import (
	"time"

	"github.com/google/uuid"
)

// CalculationResult is one stored calculation: the inputs a user supplied,
// the computed value (rounded to 2 decimals at persistence time) and the
// matched clinical interpretation.
type CalculationResult struct {
	ID                 uuid.UUID      `json:"id"`
	UserID             string         `json:"user_id"`
	CalculatorID       uuid.UUID      `json:"calculator_id"`
	CalculatorName     string         `json:"calculator_name,omitempty"`
	CalculatorCategory string         `json:"calculator_category,omitempty"`
	InputData          map[string]any `json:"input_data"`
	ResultValue        float64        `json:"result_value"`
	Interpretation     string         `json:"interpretation"`
	PerformedAt        time.Time      `json:"performed_at"`
}

// CreateRequest is the POST /calculation-results body.
type CreateRequest struct {
	CalculatorID uuid.UUID      `json:"calculator_id"`
	InputData    map[string]any `json:"input_data"`
}

// ListFilter narrows a result listing.
type ListFilter struct {
	CalculatorID *uuid.UUID
	Limit        int
	Offset       int
}
