package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// defaultWindowDays is the trailing window used when no range is given.
const defaultWindowDays = 30

// Service records and reports calculator usage. It implements the result
// domain's UsageRecorder.
type Service struct {
	repo Repository
}

// NewService creates a new usage statistics service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Record bumps the usage counter for the day the calculation was performed.
func (s *Service) Record(ctx context.Context, userID string, calculatorID uuid.UUID, day time.Time) error {
	if userID == "" {
		return fmt.Errorf("user id is required")
	}
	return s.repo.Increment(ctx, userID, calculatorID, day)
}

// Report returns the user's usage rows and summary for the given range.
// A zero end defaults to today; a zero start defaults to end minus 30 days.
func (s *Service) Report(ctx context.Context, userID string, calculatorID *uuid.UUID, start, end time.Time) (*Report, error) {
	if end.IsZero() {
		end = time.Now().UTC()
	}
	end = truncateDay(end)
	if start.IsZero() {
		start = end.AddDate(0, 0, -defaultWindowDays)
	}
	start = truncateDay(start)
	if start.After(end) {
		return nil, fmt.Errorf("start date %s is after end date %s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}

	rows, err := s.repo.ListRange(ctx, userID, calculatorID, start, end)
	if err != nil {
		return nil, err
	}

	summary := Summary{
		ByCalculator: make(map[string]int),
		ByDate:       make(map[string]int),
	}
	days := make(map[string]struct{})
	for _, row := range rows {
		day := row.Date.Format(time.DateOnly)
		summary.TotalCalculations += row.Count
		summary.ByCalculator[row.CalculatorID.String()] += row.Count
		summary.ByDate[day] += row.Count
		days[day] = struct{}{}
	}
	summary.TotalDays = len(days)

	if rows == nil {
		rows = []*UsageStatistic{}
	}
	return &Report{
		Statistics: rows,
		Summary:    summary,
		DateRange:  DateRange{Start: start, End: end},
	}, nil
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
