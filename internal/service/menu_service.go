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

// menuService implements MenuService.
type menuService struct {
	menuRepo repository.MenuRepository
	logger   zerolog.Logger
}

// NewMenuService creates a new menu service.
func NewMenuService(menuRepo repository.MenuRepository, logger zerolog.Logger) MenuService {
	return &menuService{
		menuRepo: menuRepo,
		logger:   logger.With().Str("service", "menu").Logger(),
	}
}

// GetMenu retrieves menu items.
func (s *menuService) GetMenu(ctx context.Context, availableOnly bool) ([]model.MenuItem, error) {
	items, err := s.menuRepo.GetAll(ctx, availableOnly)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to get menu")
		return nil, fmt.Errorf("failed to get menu: %w", err)
	}
	return items, nil
}

// GetItem retrieves a single menu item.
func (s *menuService) GetItem(ctx context.Context, id uuid.UUID) (*model.MenuItem, error) {
	item, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("item_id", id.String()).Msg("failed to get menu item")
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return item, nil
}

// CreateItem adds a new menu item.
func (s *menuService) CreateItem(ctx context.Context, req *model.MenuItemRequest) (*model.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	item := &model.MenuItem{
		ID:          uuid.New(),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		IsAvailable: req.IsAvailable,
		CreatedAt:   time.Now(),
	}

	if err := s.menuRepo.Create(ctx, item); err != nil {
		s.logger.Error().Err(err).Str("name", req.Name).Msg("failed to create menu item")
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}

	s.logger.Info().Str("item_id", item.ID.String()).Str("name", item.Name).Msg("menu item created")
	return item, nil
}

// UpdateItem replaces the mutable fields of a menu item.
func (s *menuService) UpdateItem(ctx context.Context, id uuid.UUID, req *model.MenuItemRequest) (*model.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.menuRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	if existing == nil {
		return nil, model.ErrItemNotFound
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Price = req.Price
	existing.Category = req.Category
	existing.ImageURL = req.ImageURL
	existing.IsAvailable = req.IsAvailable

	if err := s.menuRepo.Update(ctx, existing); err != nil {
		s.logger.Error().Err(err).Str("item_id", id.String()).Msg("failed to update menu item")
		return nil, err
	}

	return existing, nil
}

// DeleteItem removes a menu item.
func (s *menuService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.menuRepo.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("item_id", id.String()).Msg("failed to delete menu item")
		return err
	}

	s.logger.Info().Str("item_id", id.String()).Msg("menu item deleted")
	return nil
}
