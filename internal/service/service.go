package service

import (
	"context"

	"shop-kart/internal/model"

	"github.com/google/uuid"
)

// OrderService defines the order checkout and lifecycle operations.
type OrderService interface {
	// Checkout converts a cart-like item list into a persisted order with
	// matching stock decrements and ledger entries. userID is nil for
	// guest checkout.
	Checkout(ctx context.Context, req *model.CheckoutRequest, userID *uuid.UUID) (*model.Order, error)

	// GetByID retrieves an order by its ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// MyOrders retrieves the given user's orders, newest first.
	MyOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListOrders retrieves all orders, newest first.
	ListOrders(ctx context.Context) ([]model.Order, error)

	// UpdateOrderStatus moves an order along the status graph. Cancel and
	// refund are rejected here; they have dedicated operations because
	// they carry restock side effects.
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error)

	// CancelOrder cancels an order and restores its stock.
	CancelOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// RefundOrder refunds an order and restores its stock. Refunding an
	// already-canceled order is rejected to prevent double restock.
	RefundOrder(ctx context.Context, id uuid.UUID) (*model.Order, error)
}

// RecordMovementParams describes one inventory movement to append.
type RecordMovementParams struct {
	ProductID uuid.UUID
	Type      model.MovementType
	Quantity  float64
	Reason    *string
	OrderID   *uuid.UUID
	UserID    *uuid.UUID
}

// InventoryService defines the append-only stock movement ledger.
type InventoryService interface {
	// RecordMovement appends one immutable movement. Quantity is floored
	// and clamped to zero before storage. The ledger trusts the caller to
	// have validated stock sufficiency.
	RecordMovement(ctx context.Context, params RecordMovementParams) (*model.InventoryMovement, error)

	// List retrieves movements matching the filter, newest first.
	List(ctx context.Context, filter model.MovementFilter) ([]model.InventoryMovement, error)
}

// ProductService defines the catalogue operations the order engine and
// admin panel consume.
type ProductService interface {
	// GetByID retrieves a single product.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByIDs retrieves multiple products in one batch lookup.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)

	// AdjustStock applies a manual stock correction and records an ADJUST
	// movement attributed to the acting user.
	AdjustStock(ctx context.Context, id uuid.UUID, req model.AdjustStockRequest, userID *uuid.UUID) (*model.Product, error)

	// SetFlashDeal configures a time-boxed deal price on a product.
	SetFlashDeal(ctx context.Context, id uuid.UUID, req model.FlashDealRequest) (*model.Product, error)

	// ClearFlashDeal removes a product's flash deal.
	ClearFlashDeal(ctx context.Context, id uuid.UUID) (*model.Product, error)
}

// NotificationService records and serves admin-facing events.
type NotificationService interface {
	// Record persists one event.
	Record(ctx context.Context, eventType, message string, data map[string]any) (*model.Notification, error)

	// List retrieves all notifications, newest first.
	List(ctx context.Context) ([]model.Notification, error)

	// MarkRead flags a notification as read.
	MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error)
}
