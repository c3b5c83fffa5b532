package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a PostgreSQL-backed usage statistics repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) Increment(ctx context.Context, userID string, calculatorID uuid.UUID, day time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO usage_statistics (user_id, calculator_id, performed_date, count)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (user_id, calculator_id, performed_date)
		DO UPDATE SET count = usage_statistics.count + 1`,
		userID, calculatorID, day.UTC().Truncate(24*time.Hour))
	if err != nil {
		return fmt.Errorf("increment usage: %w", err)
	}
	return nil
}

func (r *repoPG) ListRange(ctx context.Context, userID string, calculatorID *uuid.UUID, start, end time.Time) ([]*UsageStatistic, error) {
	query := `
		SELECT s.user_id, s.calculator_id, c.name, s.performed_date, s.count
		FROM usage_statistics s
		JOIN calculators c ON c.id = s.calculator_id
		WHERE s.user_id = $1 AND s.performed_date BETWEEN $2 AND $3`
	args := []interface{}{userID, start, end}
	if calculatorID != nil {
		query += ` AND s.calculator_id = $4`
		args = append(args, *calculatorID)
	}
	query += ` ORDER BY s.performed_date DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list usage statistics: %w", err)
	}
	defer rows.Close()

	var result []*UsageStatistic
	for rows.Next() {
		var s UsageStatistic
		if err := rows.Scan(&s.UserID, &s.CalculatorID, &s.CalculatorName, &s.Date, &s.Count); err != nil {
			return nil, err
		}
		result = append(result, &s)
	}
	return result, rows.Err()
}
