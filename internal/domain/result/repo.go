package result

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a calculation result does not exist for the
// requesting user.
var ErrNotFound = errors.New("calculation result not found")

// Repository persists calculation results. All reads are scoped to a user:
// results are private to whoever performed the calculation.
type Repository interface {
	Create(ctx context.Context, res *CalculationResult) error
	List(ctx context.Context, userID string, filter ListFilter) ([]*CalculationResult, int, error)
	GetByID(ctx context.Context, userID string, id uuid.UUID) (*CalculationResult, error)
}
