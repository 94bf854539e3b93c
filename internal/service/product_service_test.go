package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shop-kart/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductService() (ProductService, *MockProductRepository, *MockInventoryRepository) {
	productRepo := new(MockProductRepository)
	inventoryRepo := new(MockInventoryRepository)
	svc := NewProductService(productRepo, inventoryRepo, zerolog.Nop())
	return svc, productRepo, inventoryRepo
}

func TestProductService_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, productRepo, _ := newProductService()

	id := uuid.New()
	productRepo.On("GetByID", ctx, id).Return(nil, nil)

	_, err := svc.GetByID(ctx, id)
	assert.ErrorIs(t, err, model.ErrProductNotFound)
}

func TestProductService_AdjustStock(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("Set records the delta", func(t *testing.T) {
		svc, productRepo, inventoryRepo := newProductService()
		p := freeShippingProduct("kettle", 1200, 50)
		productRepo.On("GetByID", ctx, p.ID).Return(&p, nil)

		tx := new(MockTx)
		productRepo.On("BeginTx", ctx).Return(tx, nil)
		productRepo.On("SetStock", ctx, tx, p.ID, 30).Return(nil)

		var movement *model.InventoryMovement
		inventoryRepo.On("Insert", ctx, tx, mock.AnythingOfType("*model.InventoryMovement")).
			Run(func(args mock.Arguments) {
				movement = args.Get(2).(*model.InventoryMovement)
			}).
			Return(nil)
		tx.On("Commit", ctx).Return(nil)

		result, err := svc.AdjustStock(ctx, p.ID, model.AdjustStockRequest{Action: model.StockSet, Quantity: 30}, &userID)
		require.NoError(t, err)
		assert.Equal(t, 30, result.Stock)

		require.NotNil(t, movement)
		assert.Equal(t, model.MovementAdjust, movement.Type)
		assert.Equal(t, 20, movement.Quantity)
		require.NotNil(t, movement.Reason)
		assert.Equal(t, "manual adjustment - set", *movement.Reason)
		require.NotNil(t, movement.UserID)
		assert.Equal(t, userID, *movement.UserID)
	})

	t.Run("Increment", func(t *testing.T) {
		svc, productRepo, inventoryRepo := newProductService()
		p := freeShippingProduct("kettle", 1200, 50)
		productRepo.On("GetByID", ctx, p.ID).Return(&p, nil)

		tx := new(MockTx)
		productRepo.On("BeginTx", ctx).Return(tx, nil)
		productRepo.On("IncrementStock", ctx, tx, p.ID, 5).Return(nil)
		inventoryRepo.On("Insert", ctx, tx, mock.AnythingOfType("*model.InventoryMovement")).Return(nil)
		tx.On("Commit", ctx).Return(nil)

		result, err := svc.AdjustStock(ctx, p.ID, model.AdjustStockRequest{Action: model.StockIncrement, Quantity: 5}, nil)
		require.NoError(t, err)
		assert.Equal(t, 55, result.Stock)
	})

	t.Run("Decrement below stock fails", func(t *testing.T) {
		svc, productRepo, inventoryRepo := newProductService()
		p := freeShippingProduct("kettle", 1200, 3)
		productRepo.On("GetByID", ctx, p.ID).Return(&p, nil)

		tx := new(MockTx)
		productRepo.On("BeginTx", ctx).Return(tx, nil)
		productRepo.On("DecrementStock", ctx, tx, p.ID, 10).Return(false, nil)
		tx.On("Rollback", ctx).Return(nil)

		_, err := svc.AdjustStock(ctx, p.ID, model.AdjustStockRequest{Action: model.StockDecrement, Quantity: 10}, nil)
		require.Error(t, err)

		var domainErr *model.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, model.ErrCodeInsufficientStock, domainErr.Code)
		assert.True(t, tx.rolledBack)
		inventoryRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Negative quantity clamped to zero", func(t *testing.T) {
		svc, productRepo, inventoryRepo := newProductService()
		p := freeShippingProduct("kettle", 1200, 50)
		productRepo.On("GetByID", ctx, p.ID).Return(&p, nil)

		tx := new(MockTx)
		productRepo.On("BeginTx", ctx).Return(tx, nil)
		productRepo.On("IncrementStock", ctx, tx, p.ID, 0).Return(nil)
		inventoryRepo.On("Insert", ctx, tx, mock.AnythingOfType("*model.InventoryMovement")).Return(nil)
		tx.On("Commit", ctx).Return(nil)

		result, err := svc.AdjustStock(ctx, p.ID, model.AdjustStockRequest{Action: model.StockIncrement, Quantity: -4}, nil)
		require.NoError(t, err)
		assert.Equal(t, 50, result.Stock)
	})

	t.Run("Unknown action", func(t *testing.T) {
		svc, productRepo, _ := newProductService()
		p := freeShippingProduct("kettle", 1200, 50)
		productRepo.On("GetByID", ctx, p.ID).Return(&p, nil)

		tx := new(MockTx)
		productRepo.On("BeginTx", ctx).Return(tx, nil)
		tx.On("Rollback", ctx).Return(nil)

		_, err := svc.AdjustStock(ctx, p.ID, model.AdjustStockRequest{Action: "reset", Quantity: 1}, nil)
		var domainErr *model.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, model.ErrCodeInvalidStockAction, domainErr.Code)
	})
}

func TestProductService_SetFlashDeal(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid period", func(t *testing.T) {
		svc, productRepo, _ := newProductService()
		p := freeShippingProduct("kettle", 1200, 50)
		productRepo.On("GetByID", ctx, p.ID).Return(&p, nil)
		productRepo.On("UpdateFlashDeal", ctx, p.ID, true, mock.AnythingOfType("*model.FlashDeal")).Return(nil)

		price := 899.0
		req := model.FlashDealRequest{
			StartAt:   time.Now(),
			EndAt:     time.Now().Add(24 * time.Hour),
			DealPrice: &price,
		}
		result, err := svc.SetFlashDeal(ctx, p.ID, req)
		require.NoError(t, err)
		assert.True(t, result.IsFlashDeal)
		require.NotNil(t, result.FlashDeal)
		assert.Equal(t, &price, result.FlashDeal.DealPrice)
	})

	t.Run("End before start", func(t *testing.T) {
		svc, productRepo, _ := newProductService()
		req := model.FlashDealRequest{
			StartAt: time.Now(),
			EndAt:   time.Now().Add(-time.Hour),
		}
		_, err := svc.SetFlashDeal(ctx, uuid.New(), req)
		assert.ErrorIs(t, err, model.ErrInvalidFlashDeal)
		productRepo.AssertNotCalled(t, "UpdateFlashDeal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestProductService_ClearFlashDeal(t *testing.T) {
	ctx := context.Background()
	svc, productRepo, _ := newProductService()

	p := freeShippingProduct("kettle", 1200, 50)
	p.IsFlashDeal = true
	p.FlashDeal = &model.FlashDeal{StartAt: time.Now(), EndAt: time.Now().Add(time.Hour)}
	productRepo.On("GetByID", ctx, p.ID).Return(&p, nil)
	productRepo.On("UpdateFlashDeal", ctx, p.ID, false, (*model.FlashDeal)(nil)).Return(nil)

	result, err := svc.ClearFlashDeal(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, result.IsFlashDeal)
	assert.Nil(t, result.FlashDeal)
}
