package service

import (
	"context"
	"fmt"
	"time"

	"shop-kart/internal/model"
	"shop-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	logger        zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, inventoryRepo repository.InventoryRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		logger:        logger.With().Str("service", "product").Logger(),
	}
}

// GetByID retrieves a single product.
func (s *productService) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.ErrProductNotFound
	}
	return product, nil
}

// GetByIDs retrieves multiple products in one batch lookup.
func (s *productService) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// AdjustStock applies a manual stock correction and records an ADJUST
// movement in the same transaction, so the ledger always explains the
// stock change.
func (s *productService) AdjustStock(ctx context.Context, id uuid.UUID, req model.AdjustStockRequest, userID *uuid.UUID) (*model.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	quantity := req.Quantity
	if quantity < 0 {
		quantity = 0
	}

	tx, err := s.productRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	movementQty := quantity
	switch req.Action {
	case model.StockSet:
		delta := quantity - product.Stock
		if delta < 0 {
			delta = -delta
		}
		movementQty = delta
		if err = s.productRepo.SetStock(ctx, tx, id, quantity); err != nil {
			return nil, err
		}
		product.Stock = quantity
	case model.StockIncrement:
		if err = s.productRepo.IncrementStock(ctx, tx, id, quantity); err != nil {
			return nil, err
		}
		product.Stock += quantity
	case model.StockDecrement:
		var ok bool
		ok, err = s.productRepo.DecrementStock(ctx, tx, id, quantity)
		if err != nil {
			return nil, err
		}
		if !ok {
			err = model.ErrInsufficientStock(product.Name)
			return nil, err
		}
		product.Stock -= quantity
	default:
		err = model.NewValidation(model.ErrCodeInvalidStockAction,
			fmt.Sprintf("Invalid stock action: %s", req.Action))
		return nil, err
	}

	reason := "manual adjustment - " + string(req.Action)
	movement := &model.InventoryMovement{
		ID:        uuid.New(),
		ProductID: id,
		Type:      model.MovementAdjust,
		Quantity:  movementQty,
		Reason:    &reason,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if err = s.inventoryRepo.Insert(ctx, tx, movement); err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to adjust stock: %w", err)
	}

	s.logger.Info().
		Str("product_id", id.String()).
		Str("action", string(req.Action)).
		Int("quantity", quantity).
		Int("stock", product.Stock).
		Msg("stock adjusted")

	return product, nil
}

// SetFlashDeal configures a time-boxed deal price on a product.
func (s *productService) SetFlashDeal(ctx context.Context, id uuid.UUID, req model.FlashDealRequest) (*model.Product, error) {
	if req.StartAt.IsZero() || req.EndAt.IsZero() || !req.EndAt.After(req.StartAt) {
		return nil, model.ErrInvalidFlashDeal
	}

	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	deal := &model.FlashDeal{
		StartAt:   req.StartAt,
		EndAt:     req.EndAt,
		DealPrice: req.DealPrice,
	}
	if err := s.productRepo.UpdateFlashDeal(ctx, id, true, deal); err != nil {
		return nil, err
	}

	product.IsFlashDeal = true
	product.FlashDeal = deal
	return product, nil
}

// ClearFlashDeal removes a product's flash deal.
func (s *productService) ClearFlashDeal(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.UpdateFlashDeal(ctx, id, false, nil); err != nil {
		return nil, err
	}

	product.IsFlashDeal = false
	product.FlashDeal = nil
	return product, nil
}
