package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"cafe-counter/internal/model"
)

// contactRepository implements the ContactRepository interface using PostgreSQL.
type contactRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewContactRepository creates a new PostgreSQL-backed contact message repository.
func NewContactRepository(pool *pgxpool.Pool, logger zerolog.Logger) ContactRepository {
	return &contactRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "contact").Logger(),
	}
}

// Create inserts a new contact message.
func (r *contactRepository) Create(ctx context.Context, msg *model.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, name, email, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.pool.Exec(ctx, query, msg.ID, msg.Name, msg.Email, msg.Message, msg.IsRead, msg.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("message_id", msg.ID.String()).Msg("failed to create contact message")
		return fmt.Errorf("failed to create contact message: %w", err)
	}

	r.logger.Debug().Str("message_id", msg.ID.String()).Msg("contact message created")
	return nil
}

// GetAll retrieves every contact message, newest first.
func (r *contactRepository) GetAll(ctx context.Context) ([]model.ContactMessage, error) {
	query := `
		SELECT id, name, email, message, is_read, created_at
		FROM contact_messages
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query contact messages")
		return nil, fmt.Errorf("failed to query contact messages: %w", err)
	}
	defer rows.Close()

	var messages []model.ContactMessage
	for rows.Next() {
		var m model.ContactMessage
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan contact message row")
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		messages = append(messages, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating contact message rows")
		return nil, fmt.Errorf("error iterating contact messages: %w", err)
	}

	return messages, nil
}

// SetRead sets a message's read flag.
func (r *contactRepository) SetRead(ctx context.Context, id uuid.UUID, isRead bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE contact_messages SET is_read = $2 WHERE id = $1`, id, isRead)
	if err != nil {
		r.logger.Error().Err(err).Str("message_id", id.String()).Msg("failed to update contact message")
		return fmt.Errorf("failed to update contact message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMessageNotFound
	}

	return nil
}

// Delete removes a contact message.
func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Str("message_id", id.String()).Msg("failed to delete contact message")
		return fmt.Errorf("failed to delete contact message: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrMessageNotFound
	}

	r.logger.Debug().Str("message_id", id.String()).Msg("contact message deleted")
	return nil
}
