package calculator

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Service provides catalog read operations.
type Service struct {
	repo Repository
}

// NewService creates a new calculator service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns catalog entries, optionally filtered by category.
func (s *Service) List(ctx context.Context, category string) ([]*Calculator, error) {
	if category != "" && !validCategory(category) {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	return s.repo.List(ctx, category)
}

// Get returns a single catalog entry by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Calculator, error) {
	return s.repo.GetByID(ctx, id)
}

func validCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}
