package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cafe-counter/internal/model"
	"cafe-counter/internal/repository"
)

// contactService implements ContactService.
type contactService struct {
	contactRepo repository.ContactRepository
	logger      zerolog.Logger
}

// NewContactService creates a new contact message service.
func NewContactService(contactRepo repository.ContactRepository, logger zerolog.Logger) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		logger:      logger.With().Str("service", "contact").Logger(),
	}
}

// Submit stores a message from the public contact form. Fields are trimmed
// before persisting.
func (s *contactService) Submit(ctx context.Context, req *model.ContactMessageRequest) (*model.ContactMessage, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	msg := &model.ContactMessage{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(req.Name),
		Email:     strings.TrimSpace(req.Email),
		Message:   strings.TrimSpace(req.Message),
		IsRead:    false,
		CreatedAt: time.Now(),
	}

	if err := s.contactRepo.Create(ctx, msg); err != nil {
		s.logger.Error().Err(err).Msg("failed to store contact message")
		return nil, fmt.Errorf("failed to store contact message: %w", err)
	}

	s.logger.Info().Str("message_id", msg.ID.String()).Msg("contact message received")
	return msg, nil
}

// GetAll retrieves every message, newest first.
func (s *contactService) GetAll(ctx context.Context) ([]model.ContactMessage, error) {
	messages, err := s.contactRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get contact messages")
		return nil, fmt.Errorf("failed to get contact messages: %w", err)
	}
	return messages, nil
}

// SetRead sets a message's read flag.
func (s *contactService) SetRead(ctx context.Context, id uuid.UUID, isRead bool) error {
	if err := s.contactRepo.SetRead(ctx, id, isRead); err != nil {
		s.logger.Error().Err(err).Str("message_id", id.String()).Msg("failed to update contact message")
		return err
	}
	return nil
}

// Delete removes a message from the inbox.
func (s *contactService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("message_id", id.String()).Msg("failed to delete contact message")
		return err
	}

	s.logger.Info().Str("message_id", id.String()).Msg("contact message deleted")
	return nil
}
