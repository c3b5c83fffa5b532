package calculator

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

// NewRepoPG creates a PostgreSQL-backed calculator repository.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

const calculatorColumns = `id, name, COALESCE(name_ru,''), COALESCE(description,''), COALESCE(description_ru,''),
	category, formula, input_fields, interpretation_rules, created_at, updated_at`

func scanCalculator(row pgx.Row) (*Calculator, error) {
	var c Calculator
	var fields, rules []byte
	err := row.Scan(&c.ID, &c.Name, &c.NameRu, &c.Description, &c.DescriptionRu,
		&c.Category, &c.Formula, &fields, &rules, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fields, &c.InputFields); err != nil {
		return nil, fmt.Errorf("decode input_fields: %w", err)
	}
	if err := json.Unmarshal(rules, &c.InterpretationRules); err != nil {
		return nil, fmt.Errorf("decode interpretation_rules: %w", err)
	}
	return &c, nil
}

func (r *repoPG) List(ctx context.Context, category string) ([]*Calculator, error) {
	query := `SELECT ` + calculatorColumns + ` FROM calculators`
	args := []interface{}{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list calculators: %w", err)
	}
	defer rows.Close()

	var result []*Calculator
	for rows.Next() {
		c, err := scanCalculator(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID) (*Calculator, error) {
	c, err := scanCalculator(r.pool.QueryRow(ctx,
		`SELECT `+calculatorColumns+` FROM calculators WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get calculator: %w", err)
	}
	return c, nil
}

func (r *repoPG) GetByName(ctx context.Context, name string) (*Calculator, error) {
	c, err := scanCalculator(r.pool.QueryRow(ctx,
		`SELECT `+calculatorColumns+` FROM calculators WHERE name = $1`, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get calculator by name: %w", err)
	}
	return c, nil
}

func (r *repoPG) Upsert(ctx context.Context, c *Calculator) error {
	fields, err := json.Marshal(c.InputFields)
	if err != nil {
		return fmt.Errorf("encode input_fields: %w", err)
	}
	rules, err := json.Marshal(c.InterpretationRules)
	if err != nil {
		return fmt.Errorf("encode interpretation_rules: %w", err)
	}

	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	err = r.pool.QueryRow(ctx, `
		INSERT INTO calculators (id, name, name_ru, description, description_ru, category, formula, input_fields, interpretation_rules)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (name) DO UPDATE SET
			name_ru = EXCLUDED.name_ru,
			description = EXCLUDED.description,
			description_ru = EXCLUDED.description_ru,
			category = EXCLUDED.category,
			formula = EXCLUDED.formula,
			input_fields = EXCLUDED.input_fields,
			interpretation_rules = EXCLUDED.interpretation_rules,
			updated_at = NOW()
		RETURNING id`,
		c.ID, c.Name, c.NameRu, c.Description, c.DescriptionRu, c.Category, c.Formula, fields, rules).
		Scan(&c.ID)
	if err != nil {
		return fmt.Errorf("upsert calculator %q: %w", c.Name, err)
	}
	return nil
}
