package result

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG creates a PostgreSQL-backed calculation result repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) Create(ctx context.Context, res *CalculationResult) error {
	inputData, err := json.Marshal(res.InputData)
	if err != nil {
		return fmt.Errorf("encode input_data: %w", err)
	}
	if res.ID == uuid.Nil {
		res.ID = uuid.New()
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO calculation_results (id, user_id, calculator_id, input_data, result_value, interpretation)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING performed_at`,
		res.ID, res.UserID, res.CalculatorID, inputData, res.ResultValue, res.Interpretation).
		Scan(&res.PerformedAt)
	if err != nil {
		return fmt.Errorf("insert calculation result: %w", err)
	}
	return nil
}

const resultColumns = `r.id, r.user_id, r.calculator_id, c.name, c.category,
	r.input_data, r.result_value, r.interpretation, r.performed_at`

func scanResult(row pgx.Row) (*CalculationResult, error) {
	var res CalculationResult
	var inputData []byte
	err := row.Scan(&res.ID, &res.UserID, &res.CalculatorID, &res.CalculatorName,
		&res.CalculatorCategory, &inputData, &res.ResultValue, &res.Interpretation, &res.PerformedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(inputData, &res.InputData); err != nil {
		return nil, fmt.Errorf("decode input_data: %w", err)
	}
	return &res, nil
}

func (r *repoPG) List(ctx context.Context, userID string, filter ListFilter) ([]*CalculationResult, int, error) {
	where := `WHERE r.user_id = $1`
	args := []interface{}{userID}
	if filter.CalculatorID != nil {
		where += ` AND r.calculator_id = $2`
		args = append(args, *filter.CalculatorID)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM calculation_results r ` + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count calculation results: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT `+resultColumns+`
		FROM calculation_results r
		JOIN calculators c ON c.id = r.calculator_id
		%s
		ORDER BY r.performed_at DESC
		LIMIT %d OFFSET %d`, where, filter.Limit, filter.Offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list calculation results: %w", err)
	}
	defer rows.Close()

	var results []*CalculationResult
	for rows.Next() {
		res, err := scanResult(rows)
		if err != nil {
			return nil, 0, err
		}
		results = append(results, res)
	}
	return results, total, rows.Err()
}

func (r *repoPG) GetByID(ctx context.Context, userID string, id uuid.UUID) (*CalculationResult, error) {
	res, err := scanResult(r.pool.QueryRow(ctx, `
		SELECT `+resultColumns+`
		FROM calculation_results r
		JOIN calculators c ON c.id = r.calculator_id
		WHERE r.id = $1 AND r.user_id = $2`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get calculation result: %w", err)
	}
	return res, nil
}
