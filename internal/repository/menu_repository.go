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

// menuRepository implements the MenuRepository interface using PostgreSQL.
type menuRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewMenuRepository creates a new PostgreSQL-backed menu repository.
func NewMenuRepository(pool *pgxpool.Pool, logger zerolog.Logger) MenuRepository {
	return &menuRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "menu").Logger(),
	}
}

const menuColumns = "id, name, description, price, category, image_url, is_available, created_at"

func scanMenuItem(row pgx.Row, m *model.MenuItem) error {
	return row.Scan(&m.ID, &m.Name, &m.Description, &m.Price, &m.Category, &m.ImageURL, &m.IsAvailable, &m.CreatedAt)
}

// GetAll retrieves menu items, optionally filtered to available ones.
func (r *menuRepository) GetAll(ctx context.Context, availableOnly bool) ([]model.MenuItem, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menu_items
		ORDER BY category, name
	`
	if availableOnly {
		query = `
			SELECT ` + menuColumns + `
			FROM menu_items
			WHERE is_available = TRUE
			ORDER BY category, name
		`
	}

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query menu items")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := scanMenuItem(rows, &m); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu item row")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu item rows")
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

// GetByID retrieves a single menu item by its ID.
func (r *menuRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	query := `
		SELECT ` + menuColumns + `
		FROM menu_items
		WHERE id = $1
	`

	var m model.MenuItem
	err := scanMenuItem(r.pool.QueryRow(ctx, query, id), &m)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("item_id", id.String()).Msg("menu item not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", id.String()).Msg("failed to query menu item")
		return nil, fmt.Errorf("failed to query menu item: %w", err)
	}

	return &m, nil
}

// GetByIDs retrieves multiple menu items by their IDs.
func (r *menuRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.MenuItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `
		SELECT ` + menuColumns + `
		FROM menu_items
		WHERE id = ANY($1)
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("id_count", len(ids)).Msg("failed to query menu items by ids")
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var m model.MenuItem
		if err := scanMenuItem(rows, &m); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan menu item row")
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating menu item rows")
		return nil, fmt.Errorf("error iterating menu items: %w", err)
	}

	return items, nil
}

// Create inserts a new menu item.
func (r *menuRepository) Create(ctx context.Context, item *model.MenuItem) error {
	query := `
		INSERT INTO menu_items (id, name, description, price, category, image_url, is_available, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.pool.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.Price, item.Category, item.ImageURL, item.IsAvailable, item.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", item.ID.String()).Msg("failed to create menu item")
		return fmt.Errorf("failed to create menu item: %w", err)
	}

	r.logger.Debug().Str("item_id", item.ID.String()).Str("name", item.Name).Msg("menu item created")
	return nil
}

// Update replaces the mutable fields of a menu item.
func (r *menuRepository) Update(ctx context.Context, item *model.MenuItem) error {
	query := `
		UPDATE menu_items
		SET name = $2, description = $3, price = $4, category = $5, image_url = $6, is_available = $7
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		item.ID, item.Name, item.Description, item.Price, item.Category, item.ImageURL, item.IsAvailable)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", item.ID.String()).Msg("failed to update menu item")
		return fmt.Errorf("failed to update menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}

	return nil
}

// Delete removes a menu item.
func (r *menuRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", id.String()).Msg("failed to delete menu item")
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrItemNotFound
	}

	r.logger.Debug().Str("item_id", id.String()).Msg("menu item deleted")
	return nil
}
