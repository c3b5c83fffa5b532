package stats

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository persists usage counters.
type Repository interface {
	// Increment bumps the counter for (user, calculator, day), creating it
	// at 1 when absent.
	Increment(ctx context.Context, userID string, calculatorID uuid.UUID, day time.Time) error
	// ListRange returns counters for the user within [start, end], newest
	// first, optionally filtered by calculator.
	ListRange(ctx context.Context, userID string, calculatorID *uuid.UUID, start, end time.Time) ([]*UsageStatistic, error)
}
