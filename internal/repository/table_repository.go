package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"cafe-counter/internal/model"
)

// tableRepository implements the TableRepository interface using PostgreSQL.
type tableRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewTableRepository creates a new PostgreSQL-backed table repository.
func NewTableRepository(pool *pgxpool.Pool, logger zerolog.Logger) TableRepository {
	return &tableRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "table").Logger(),
	}
}

// GetAll retrieves every table ordered by number.
func (r *tableRepository) GetAll(ctx context.Context) ([]model.CafeTable, error) {
	query := `
		SELECT id, table_number, seats, is_active, created_at
		FROM cafe_tables
		ORDER BY table_number
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query tables")
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []model.CafeTable
	for rows.Next() {
		var t model.CafeTable
		if err := rows.Scan(&t.ID, &t.TableNumber, &t.Seats, &t.IsActive, &t.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan table row")
			return nil, fmt.Errorf("failed to scan table: %w", err)
		}
		tables = append(tables, t)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating table rows")
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}

	return tables, nil
}

// GetActiveByNumber resolves an active table by its number.
func (r *tableRepository) GetActiveByNumber(ctx context.Context, number int) (*model.CafeTable, error) {
	query := `
		SELECT id, table_number, seats, is_active, created_at
		FROM cafe_tables
		WHERE table_number = $1 AND is_active = TRUE
	`

	var t model.CafeTable
	err := r.pool.QueryRow(ctx, query, number).Scan(&t.ID, &t.TableNumber, &t.Seats, &t.IsActive, &t.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int("table_number", number).Msg("active table not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int("table_number", number).Msg("failed to query table")
		return nil, fmt.Errorf("failed to query table: %w", err)
	}

	return &t, nil
}

// Create inserts a new table.
func (r *tableRepository) Create(ctx context.Context, table *model.CafeTable) error {
	query := `
		INSERT INTO cafe_tables (id, table_number, seats, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, table.ID, table.TableNumber, table.Seats, table.IsActive, table.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int("table_number", table.TableNumber).Msg("failed to create table")
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

// Update replaces the mutable fields of a table.
func (r *tableRepository) Update(ctx context.Context, table *model.CafeTable) error {
	query := `
		UPDATE cafe_tables
		SET table_number = $2, seats = $3, is_active = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query, table.ID, table.TableNumber, table.Seats, table.IsActive)
	if err != nil {
		r.logger.Error().Err(err).Str("table_id", table.ID.String()).Msg("failed to update table")
		return fmt.Errorf("failed to update table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTableNotFound
	}

	return nil
}

// Delete removes a table. Orders pointing at it keep their rows; the foreign
// key nulls the reference.
func (r *tableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM cafe_tables WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("table_id", id.String()).Msg("failed to delete table")
		return fmt.Errorf("failed to delete table: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrTableNotFound
	}

	r.logger.Debug().Str("table_id", id.String()).Msg("table deleted")
	return nil
}
