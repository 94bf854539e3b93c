package repository

import (
	"context"

	"shop-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ProductRepository defines the interface for catalogue data access.
type ProductRepository interface {
	// GetByID retrieves a single product by its ID. Returns nil when the
	// product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// GetByIDs retrieves multiple products by their IDs in one batch lookup.
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error)

	// BeginTx starts a new database transaction for stock mutations.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// DecrementStock atomically decrements stock by quantity, guarded by
	// "stock >= quantity". Returns false when the guard rejects the update,
	// leaving stock untouched.
	DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) (bool, error)

	// IncrementStock adds quantity back to a product's stock.
	IncrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error

	// SetStock overwrites a product's stock level.
	SetStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error

	// UpdateFlashDeal replaces a product's flash deal configuration.
	// A nil deal clears it.
	UpdateFlashDeal(ctx context.Context, id uuid.UUID, isFlashDeal bool, deal *model.FlashDeal) error
}

// OrderRepository defines the interface for order aggregate persistence.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts an order and its item snapshots within the
	// provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order with its items. Returns nil when missing.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// ListAll retrieves every order with items, newest first.
	ListAll(ctx context.Context) ([]model.Order, error)

	// ListByUser retrieves the given user's orders with items, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// UpdateStatus sets an order's status within the provided transaction.
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status model.OrderStatus) error
}

// InventoryRepository defines the interface for the append-only movement
// ledger. There are deliberately no update or delete operations.
type InventoryRepository interface {
	// Insert appends a movement within the provided transaction.
	Insert(ctx context.Context, tx pgx.Tx, movement *model.InventoryMovement) error

	// Create appends a movement outside any caller transaction.
	Create(ctx context.Context, movement *model.InventoryMovement) error

	// List retrieves movements matching the filter, newest first, with the
	// referenced product expanded for display.
	List(ctx context.Context, filter model.MovementFilter) ([]model.InventoryMovement, error)
}

// NotificationRepository defines the interface for admin event records.
type NotificationRepository interface {
	// Create inserts a notification record.
	Create(ctx context.Context, n *model.Notification) error

	// List retrieves all notifications, newest first.
	List(ctx context.Context) ([]model.Notification, error)

	// MarkRead flags a notification as read. Returns nil when missing.
	MarkRead(ctx context.Context, id uuid.UUID) (*model.Notification, error)
}
