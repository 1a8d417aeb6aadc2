package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"cafe-counter/internal/model"
	"cafe-counter/internal/repository"
)

// tableService implements TableService for the back office.
type tableService struct {
	tableRepo repository.TableRepository
	logger    zerolog.Logger
}

// NewTableService creates a new table service.
func NewTableService(tableRepo repository.TableRepository, logger zerolog.Logger) TableService {
	return &tableService{
		tableRepo: tableRepo,
		logger:    logger.With().Str("service", "table").Logger(),
	}
}

// GetAll retrieves every table ordered by number.
func (s *tableService) GetAll(ctx context.Context) ([]model.CafeTable, error) {
	tables, err := s.tableRepo.GetAll(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get tables")
		return nil, fmt.Errorf("failed to get tables: %w", err)
	}
	return tables, nil
}

// Create adds a new table.
func (s *tableService) Create(ctx context.Context, req *model.CafeTableRequest) (*model.CafeTable, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	table := &model.CafeTable{
		ID:          uuid.New(),
		TableNumber: req.TableNumber,
		Seats:       req.Seats,
		IsActive:    req.IsActive,
		CreatedAt:   time.Now(),
	}

	if err := s.tableRepo.Create(ctx, table); err != nil {
		s.logger.Error().Err(err).Int("table_number", req.TableNumber).Msg("failed to create table")
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	s.logger.Info().Int("table_number", table.TableNumber).Msg("table created")
	return table, nil
}

// Update replaces the mutable fields of a table.
func (s *tableService) Update(ctx context.Context, id uuid.UUID, req *model.CafeTableRequest) (*model.CafeTable, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	table := &model.CafeTable{
		ID:          id,
		TableNumber: req.TableNumber,
		Seats:       req.Seats,
		IsActive:    req.IsActive,
	}

	if err := s.tableRepo.Update(ctx, table); err != nil {
		s.logger.Error().Err(err).Str("table_id", id.String()).Msg("failed to update table")
		return nil, err
	}

	return table, nil
}

// Delete removes a table.
func (s *tableService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.tableRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("table_id", id.String()).Msg("failed to delete table")
		return err
	}

	s.logger.Info().Str("table_id", id.String()).Msg("table deleted")
	return nil
}
