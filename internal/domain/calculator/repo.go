package calculator

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a calculator does not exist.
var ErrNotFound = errors.New("calculator not found")

// Repository provides access to the calculator catalog.
type Repository interface {
	List(ctx context.Context, category string) ([]*Calculator, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Calculator, error)
	GetByName(ctx context.Context, name string) (*Calculator, error)
	Upsert(ctx context.Context, calc *Calculator) error
}
