package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"shop-kart/internal/model"
	"shop-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// inventoryService implements InventoryService.
type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	logger        zerolog.Logger
}

// NewInventoryService creates a new inventory ledger service.
func NewInventoryService(inventoryRepo repository.InventoryRepository, logger zerolog.Logger) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		logger:        logger.With().Str("service", "inventory").Logger(),
	}
}

// RecordMovement appends one immutable movement to the ledger.
func (s *inventoryService) RecordMovement(ctx context.Context, params RecordMovementParams) (*model.InventoryMovement, error) {
	if !params.Type.Valid() {
		return nil, model.NewValidation(model.ErrCodeInvalidStockAction,
			fmt.Sprintf("Unknown movement type: %s", params.Type))
	}

	quantity := int(math.Floor(params.Quantity))
	if quantity < 0 {
		quantity = 0
	}

	movement := &model.InventoryMovement{
		ID:        uuid.New(),
		ProductID: params.ProductID,
		Type:      params.Type,
		Quantity:  quantity,
		Reason:    params.Reason,
		OrderID:   params.OrderID,
		UserID:    params.UserID,
		CreatedAt: time.Now(),
	}

	if err := s.inventoryRepo.Create(ctx, movement); err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("product_id", params.ProductID.String()).
		Str("type", string(params.Type)).
		Int("quantity", quantity).
		Msg("inventory movement recorded")

	return movement, nil
}

// List retrieves movements matching the filter, newest first.
func (s *inventoryService) List(ctx context.Context, filter model.MovementFilter) ([]model.InventoryMovement, error) {
	movements, err := s.inventoryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory movements: %w", err)
	}
	return movements, nil
}
