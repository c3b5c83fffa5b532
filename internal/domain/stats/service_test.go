package stats

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

type counterKey struct {
	userID string
	calcID uuid.UUID
	day    string
}

type mockRepo struct {
	counters map[counterKey]int
}

func newMockRepo() *mockRepo {
	return &mockRepo{counters: make(map[counterKey]int)}
}

func (m *mockRepo) Increment(_ context.Context, userID string, calculatorID uuid.UUID, day time.Time) error {
	m.counters[counterKey{userID, calculatorID, day.UTC().Format(time.DateOnly)}]++
	return nil
}

func (m *mockRepo) ListRange(_ context.Context, userID string, calculatorID *uuid.UUID, start, end time.Time) ([]*UsageStatistic, error) {
	var result []*UsageStatistic
	for key, count := range m.counters {
		if key.userID != userID {
			continue
		}
		if calculatorID != nil && key.calcID != *calculatorID {
			continue
		}
		day, _ := time.Parse(time.DateOnly, key.day)
		if day.Before(start) || day.After(end) {
			continue
		}
		result = append(result, &UsageStatistic{
			UserID:       key.userID,
			CalculatorID: key.calcID,
			Date:         day,
			Count:        count,
		})
	}
	return result, nil
}

func TestRecordIncrements(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	calcID := uuid.New()
	day := time.Date(2025, 8, 20, 14, 30, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		if err := svc.Record(context.Background(), "user-1", calcID, day); err != nil {
			t.Fatalf("Record error: %v", err)
		}
	}

	key := counterKey{"user-1", calcID, "2025-08-20"}
	if repo.counters[key] != 3 {
		t.Errorf("counter = %d, want 3", repo.counters[key])
	}

	if err := svc.Record(context.Background(), "", calcID, day); err == nil {
		t.Error("Record without user id should fail")
	}
}

func TestReportSummary(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	bmiID := uuid.New()
	cgID := uuid.New()

	day1 := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 8, 19, 0, 0, 0, 0, time.UTC)
	_ = svc.Record(context.Background(), "user-1", bmiID, day1)
	_ = svc.Record(context.Background(), "user-1", bmiID, day1)
	_ = svc.Record(context.Background(), "user-1", cgID, day2)
	_ = svc.Record(context.Background(), "user-2", bmiID, day1) // other user, excluded

	report, err := svc.Report(context.Background(), "user-1", nil,
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Report error: %v", err)
	}

	if report.Summary.TotalCalculations != 3 {
		t.Errorf("total_calculations = %d, want 3", report.Summary.TotalCalculations)
	}
	if report.Summary.TotalDays != 2 {
		t.Errorf("total_days = %d, want 2", report.Summary.TotalDays)
	}
	if report.Summary.ByCalculator[bmiID.String()] != 2 {
		t.Errorf("by_calculator[bmi] = %d, want 2", report.Summary.ByCalculator[bmiID.String()])
	}
	if report.Summary.ByDate["2025-08-18"] != 2 {
		t.Errorf("by_date[2025-08-18] = %d, want 2", report.Summary.ByDate["2025-08-18"])
	}
}

func TestReportCalculatorFilter(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)
	bmiID := uuid.New()
	cgID := uuid.New()
	day := time.Date(2025, 8, 18, 0, 0, 0, 0, time.UTC)

	_ = svc.Record(context.Background(), "user-1", bmiID, day)
	_ = svc.Record(context.Background(), "user-1", cgID, day)

	report, err := svc.Report(context.Background(), "user-1", &cgID,
		day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("Report error: %v", err)
	}
	if report.Summary.TotalCalculations != 1 {
		t.Errorf("filtered total = %d, want 1", report.Summary.TotalCalculations)
	}
	if _, ok := report.Summary.ByCalculator[bmiID.String()]; ok {
		t.Error("filtered report should not include the other calculator")
	}
}

func TestReportDefaultRange(t *testing.T) {
	svc := NewService(newMockRepo())

	report, err := svc.Report(context.Background(), "user-1", nil, time.Time{}, time.Time{})
	if err != nil {
		t.Fatalf("Report error: %v", err)
	}

	window := report.DateRange.End.Sub(report.DateRange.Start)
	if window != defaultWindowDays*24*time.Hour {
		t.Errorf("default window = %v, want %d days", window, defaultWindowDays)
	}
	if len(report.Statistics) != 0 {
		t.Errorf("empty account should report no rows, got %d", len(report.Statistics))
	}
}

func TestReportRejectsInvertedRange(t *testing.T) {
	svc := NewService(newMockRepo())
	_, err := svc.Report(context.Background(), "user-1", nil,
		time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Error("inverted range should fail")
	}
}
