// Package catalog ships the built-in calculator definitions and seeds them
// into the database on startup or via the seed command.
package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medcalc/medcalc/internal/domain/calculator"
)

//go:embed catalog.json
var catalogJSON []byte

// Load parses the embedded catalog and validates every entry.
func Load() ([]*calculator.Calculator, error) {
	var entries []*calculator.Calculator
	if err := json.Unmarshal(catalogJSON, &entries); err != nil {
		return nil, fmt.Errorf("parsing embedded catalog: %w", err)
	}
	for _, c := range entries {
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", c.Name, err)
		}
	}
	return entries, nil
}

// Seeder upserts the embedded catalog into a calculator repository.
type Seeder struct {
	repo   calculator.Repository
	logger zerolog.Logger
}

// NewSeeder creates a new catalog seeder.
func NewSeeder(repo calculator.Repository, logger zerolog.Logger) *Seeder {
	return &Seeder{repo: repo, logger: logger}
}

// Seed upserts every catalog entry, keyed by name. Running it repeatedly is
// safe: existing entries are updated in place.
func (s *Seeder) Seed(ctx context.Context) (int, error) {
	entries, err := Load()
	if err != nil {
		return 0, err
	}

	for _, c := range entries {
		if err := s.repo.Upsert(ctx, c); err != nil {
			return 0, fmt.Errorf("seeding calculator %q: %w", c.Name, err)
		}
		s.logger.Debug().Str("name", c.Name).Str("category", c.Category).Msg("seeded calculator")
	}

	s.logger.Info().Int("count", len(entries)).Msg("calculator catalog seeded")
	return len(entries), nil
}
