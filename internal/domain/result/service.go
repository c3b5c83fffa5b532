package result

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/medcalc/medcalc/internal/domain/calculator"
	"github.com/medcalc/medcalc/internal/engine/formula"
	"github.com/medcalc/medcalc/internal/engine/interpret"
)

// ErrNoResult is returned when a formula produces no numeric result for the
// given inputs (missing/invalid values, non-finite arithmetic). The engine
// never panics or propagates; the service maps its failure to this error.
var ErrNoResult = errors.New("calculation produced no result")

// ErrInvalidInput is returned when the submitted input data fails field
// validation (required, range, unknown select option).
var ErrInvalidInput = errors.New("invalid input data")

// UsageRecorder records that a user ran a calculator on a given day. The
// stats domain implements it; results only depend on this narrow interface.
type UsageRecorder interface {
	Record(ctx context.Context, userID string, calculatorID uuid.UUID, day time.Time) error
}

// Service computes and persists calculation results.
type Service struct {
	repo   Repository
	calcs  calculator.Repository
	usage  UsageRecorder
	logger zerolog.Logger

	// Compiled rule sets, keyed by calculator id. Conditions are parsed once
	// and reused across requests; entries are immutable so the cache only
	// needs a lock around the map itself.
	mu       sync.RWMutex
	rulesets map[uuid.UUID]*interpret.RuleSet
}

// NewService creates a new calculation result service.
func NewService(repo Repository, calcs calculator.Repository, usage UsageRecorder, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		calcs:    calcs,
		usage:    usage,
		logger:   logger,
		rulesets: make(map[uuid.UUID]*interpret.RuleSet),
	}
}

// Create runs a calculation and stores the outcome: coerce inputs against
// the calculator's field definitions, evaluate the formula, round to 2
// decimals for persistence, select the interpretation, save, and bump the
// usage counter.
func (s *Service) Create(ctx context.Context, userID string, req *CreateRequest) (*CalculationResult, error) {
	if req.CalculatorID == uuid.Nil {
		return nil, fmt.Errorf("%w: calculator_id is required", ErrInvalidInput)
	}
	calc, err := s.calcs.GetByID(ctx, req.CalculatorID)
	if err != nil {
		return nil, err
	}

	inputs, err := calc.CoerceInputs(req.InputData)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	value, err := formula.Evaluate(calc.Formula, inputs)
	if err != nil {
		s.logger.Debug().
			Err(err).
			Str("calculator", calc.Name).
			Msg("formula evaluation failed")
		return nil, ErrNoResult
	}
	value = math.Round(value*100) / 100

	res := &CalculationResult{
		UserID:             userID,
		CalculatorID:       calc.ID,
		CalculatorName:     calc.Name,
		CalculatorCategory: calc.Category,
		InputData:          req.InputData,
		ResultValue:        value,
		Interpretation:     s.ruleset(calc).Interpret(value),
	}
	if err := s.repo.Create(ctx, res); err != nil {
		return nil, err
	}

	if err := s.usage.Record(ctx, userID, calc.ID, res.PerformedAt); err != nil {
		// Usage counters are best-effort; a failed bump never fails the
		// calculation that was already stored.
		s.logger.Warn().Err(err).Str("calculator", calc.Name).Msg("failed to record usage")
	}
	return res, nil
}

// List returns the user's stored results, newest first.
func (s *Service) List(ctx context.Context, userID string, filter ListFilter) ([]*CalculationResult, int, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	return s.repo.List(ctx, userID, filter)
}

// Get returns one of the user's stored results.
func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*CalculationResult, error) {
	return s.repo.GetByID(ctx, userID, id)
}

func (s *Service) ruleset(calc *calculator.Calculator) *interpret.RuleSet {
	s.mu.RLock()
	rs, ok := s.rulesets[calc.ID]
	s.mu.RUnlock()
	if ok {
		return rs
	}

	rules := make([]interpret.Rule, len(calc.InterpretationRules))
	for i, r := range calc.InterpretationRules {
		rules[i] = interpret.Rule{
			Condition:      r.Condition,
			Interpretation: r.Interpretation,
			Severity:       r.Severity,
		}
	}
	rs = interpret.Compile(rules)

	s.mu.Lock()
	s.rulesets[calc.ID] = rs
	s.mu.Unlock()
	return rs
}
