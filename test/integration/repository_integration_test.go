package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"shop-kart/internal/model"
	"shop-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewProductRepository(testDB.Pool, zerolog.Nop())

	t.Run("GetByID returns nil for missing product", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		p, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("GetByID round-trips shipping locations", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		id := SeedLocationShippingProduct(t, testDB.Pool, "fan", 1000, 10,
			`[{"location": "Dhaka", "price": 60}, {"location": "Sylhet", "price": 90}]`)

		p, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, model.ShippingLocationBased, p.Shipping.Kind)
		require.Len(t, p.Shipping.Locations, 2)
		assert.Equal(t, "Dhaka", p.Shipping.Locations[0].Location)
		assert.Equal(t, 60.0, p.Shipping.Locations[0].Price)
	})

	t.Run("DecrementStock refuses to go negative", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		id := SeedProduct(t, testDB.Pool, "kettle", 1200, 5)

		tx, err := repo.BeginTx(ctx)
		require.NoError(t, err)

		ok, err := repo.DecrementStock(ctx, tx, id, 3)
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.DecrementStock(ctx, tx, id, 3)
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, tx.Commit(ctx))
		assert.Equal(t, 2, ProductStock(t, testDB.Pool, id))
	})

	t.Run("concurrent decrements never oversell", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		id := SeedProduct(t, testDB.Pool, "kettle", 1200, 5)

		const workers = 10
		var wg sync.WaitGroup
		succeeded := make(chan bool, workers)

		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tx, err := repo.BeginTx(ctx)
				if err != nil {
					succeeded <- false
					return
				}
				ok, err := repo.DecrementStock(ctx, tx, id, 1)
				if err != nil || !ok {
					_ = tx.Rollback(ctx)
					succeeded <- false
					return
				}
				if err := tx.Commit(ctx); err != nil {
					succeeded <- false
					return
				}
				succeeded <- true
			}()
		}
		wg.Wait()
		close(succeeded)

		var wins int
		for ok := range succeeded {
			if ok {
				wins++
			}
		}
		assert.Equal(t, 5, wins)
		assert.Equal(t, 0, ProductStock(t, testDB.Pool, id))
	})

	t.Run("UpdateFlashDeal sets and clears deal fields", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		id := SeedProduct(t, testDB.Pool, "kettle", 1200, 5)

		price := 899.0
		deal := &model.FlashDeal{
			StartAt:   time.Now().UTC().Truncate(time.Second),
			EndAt:     time.Now().UTC().Add(24 * time.Hour).Truncate(time.Second),
			DealPrice: &price,
		}
		require.NoError(t, repo.UpdateFlashDeal(ctx, id, true, deal))

		p, err := repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, p.IsFlashDeal)
		require.NotNil(t, p.FlashDeal)
		require.NotNil(t, p.FlashDeal.DealPrice)
		assert.Equal(t, 899.0, *p.FlashDeal.DealPrice)

		require.NoError(t, repo.UpdateFlashDeal(ctx, id, false, nil))
		p, err = repo.GetByID(ctx, id)
		require.NoError(t, err)
		assert.False(t, p.IsFlashDeal)
		assert.Nil(t, p.FlashDeal)
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()
	orderRepo := repository.NewOrderRepository(testDB.Pool, zerolog.Nop())

	newOrder := func(productID uuid.UUID, userID *uuid.UUID) *model.Order {
		orderID := uuid.New()
		now := time.Now().UTC().Truncate(time.Second)
		return &model.Order{
			ID:     orderID,
			UserID: userID,
			Items: []model.OrderItem{{
				ID:         uuid.New(),
				OrderID:    orderID,
				ProductID:  productID,
				SKU:        "SK-kettle",
				Name:       "kettle",
				Slug:       "kettle",
				UnitPrice:  1200,
				Quantity:   3,
				TotalPrice: 3600,
			}},
			Customer: model.Customer{
				Name:        "Asha Rahman",
				Phone:       "01700000000",
				FullAddress: "12 Green Road, Dhaka",
			},
			PaymentMethod: model.PaymentCOD,
			Status:        model.OrderProcessing,
			Subtotal:      3600,
			Total:         3600,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
	}

	t.Run("CreateOrder and GetByID round-trip", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		productID := SeedProduct(t, testDB.Pool, "kettle", 1200, 50)
		order := newOrder(productID, nil)

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, orderRepo.CreateOrder(ctx, tx, order))
		require.NoError(t, tx.Commit(ctx))

		got, err := orderRepo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, order.Customer, got.Customer)
		assert.Equal(t, order.Status, got.Status)
		assert.Equal(t, order.Total, got.Total)
		require.Len(t, got.Items, 1)
		assert.Equal(t, order.Items[0].SKU, got.Items[0].SKU)
		assert.Equal(t, order.Items[0].Quantity, got.Items[0].Quantity)
	})

	t.Run("ListByUser filters by user", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		productID := SeedProduct(t, testDB.Pool, "kettle", 1200, 50)

		userID := uuid.New()
		mine := newOrder(productID, &userID)
		theirs := newOrder(productID, nil)

		for _, o := range []*model.Order{mine, theirs} {
			tx, err := orderRepo.BeginTx(ctx)
			require.NoError(t, err)
			require.NoError(t, orderRepo.CreateOrder(ctx, tx, o))
			require.NoError(t, tx.Commit(ctx))
		}

		orders, err := orderRepo.ListByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, mine.ID, orders[0].ID)
	})

	t.Run("UpdateStatus on missing order returns not found", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)
		defer tx.Rollback(ctx)

		err = orderRepo.UpdateStatus(ctx, tx, uuid.New(), model.OrderPlaced)
		assert.ErrorIs(t, err, model.ErrOrderNotFound)
	})
}

func TestInventoryRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	ctx := context.Background()
	repo := repository.NewInventoryRepository(testDB.Pool, zerolog.Nop())

	seedMovement := func(t *testing.T, productID uuid.UUID, movementType model.MovementType, qty int, at time.Time) {
		t.Helper()
		reason := "test"
		require.NoError(t, repo.Create(ctx, &model.InventoryMovement{
			ID:        uuid.New(),
			ProductID: productID,
			Type:      movementType,
			Quantity:  qty,
			Reason:    &reason,
			CreatedAt: at,
		}))
	}

	t.Run("List expands product fields and filters", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		kettleID := SeedProduct(t, testDB.Pool, "kettle", 1200, 50)
		fanID := SeedProduct(t, testDB.Pool, "fan", 1000, 10)

		now := time.Now().UTC()
		seedMovement(t, kettleID, model.MovementOut, 3, now.Add(-2*time.Hour))
		seedMovement(t, kettleID, model.MovementIn, 3, now.Add(-time.Hour))
		seedMovement(t, fanID, model.MovementAdjust, 5, now)

		all, err := repo.List(ctx, model.MovementFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		// Newest first.
		assert.Equal(t, fanID, all[0].ProductID)
		assert.Equal(t, "fan", all[0].ProductName)
		assert.Equal(t, "SK-fan", all[0].ProductSKU)

		byProduct, err := repo.List(ctx, model.MovementFilter{ProductID: &kettleID})
		require.NoError(t, err)
		assert.Len(t, byProduct, 2)

		outType := model.MovementOut
		byType, err := repo.List(ctx, model.MovementFilter{Type: &outType})
		require.NoError(t, err)
		require.Len(t, byType, 1)
		assert.Equal(t, kettleID, byType[0].ProductID)

		from := now.Add(-90 * time.Minute)
		recent, err := repo.List(ctx, model.MovementFilter{From: &from})
		require.NoError(t, err)
		assert.Len(t, recent, 2)
	})
}
