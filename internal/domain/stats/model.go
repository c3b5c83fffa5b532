package stats

import (
	"time"

	"github.com/google/uuid"
)

// UsageStatistic is one per-day usage counter for a (user, calculator) pair.
type UsageStatistic struct {
	UserID         string    `json:"user_id"`
	CalculatorID   uuid.UUID `json:"calculator_id"`
	CalculatorName string    `json:"calculator_name,omitempty"`
	Date           time.Time `json:"date"`
	Count          int       `json:"count"`
}

// Summary aggregates a set of usage statistics over a date range.
type Summary struct {
	TotalCalculations int            `json:"total_calculations"`
	TotalDays         int            `json:"total_days"`
	ByCalculator      map[string]int `json:"by_calculator"`
	ByDate            map[string]int `json:"by_date"`
}

// DateRange is the inclusive window a statistics query covers.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Report is the GET /usage-statistics response: the raw per-day rows plus
// the aggregate summary, mirroring what the history screen renders.
type Report struct {
	Statistics []*UsageStatistic `json:"statistics"`
	Summary    Summary           `json:"summary"`
	DateRange  DateRange         `json:"date_range"`
}
