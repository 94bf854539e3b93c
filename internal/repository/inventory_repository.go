package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"shop-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// inventoryRepository implements the InventoryRepository interface using
// PostgreSQL. The inventory_movements table is append-only; this type
// exposes no update or delete operations.
type inventoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewInventoryRepository creates a new PostgreSQL-backed inventory ledger.
func NewInventoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) InventoryRepository {
	return &inventoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "inventory").Logger(),
	}
}

const insertMovementQuery = `
	INSERT INTO inventory_movements (id, product_id, type, quantity, reason, order_id, user_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// Insert appends a movement within the provided transaction.
func (r *inventoryRepository) Insert(ctx context.Context, tx pgx.Tx, m *model.InventoryMovement) error {
	_, err := tx.Exec(ctx, insertMovementQuery,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Reason, m.OrderID, m.UserID, m.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", m.ProductID.String()).
			Str("type", string(m.Type)).
			Msg("failed to insert inventory movement")
		return fmt.Errorf("failed to insert inventory movement: %w", err)
	}
	return nil
}

// Create appends a movement outside any caller transaction.
func (r *inventoryRepository) Create(ctx context.Context, m *model.InventoryMovement) error {
	_, err := r.pool.Exec(ctx, insertMovementQuery,
		m.ID, m.ProductID, m.Type, m.Quantity, m.Reason, m.OrderID, m.UserID, m.CreatedAt)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", m.ProductID.String()).
			Str("type", string(m.Type)).
			Msg("failed to insert inventory movement")
		return fmt.Errorf("failed to insert inventory movement: %w", err)
	}
	return nil
}

// List retrieves movements matching the filter, newest first, with the
// referenced product expanded for display.
func (r *inventoryRepository) List(ctx context.Context, filter model.MovementFilter) ([]model.InventoryMovement, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT m.id, m.product_id, m.type, m.quantity, m.reason, m.order_id, m.user_id, m.created_at,
		       COALESCE(p.name, ''), COALESCE(p.sku, ''), COALESCE(p.slug, '')
		FROM inventory_movements m
		LEFT JOIN products p ON p.id = m.product_id
	`)

	var conditions []string
	var args []any
	addCondition := func(expr string, value any) {
		args = append(args, value)
		conditions = append(conditions, expr+" $"+strconv.Itoa(len(args)))
	}

	if filter.ProductID != nil {
		addCondition("m.product_id =", *filter.ProductID)
	}
	if filter.Type != nil {
		addCondition("m.type =", *filter.Type)
	}
	if filter.From != nil {
		addCondition("m.created_at >=", *filter.From)
	}
	if filter.To != nil {
		addCondition("m.created_at <=", *filter.To)
	}

	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY m.created_at DESC")

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query inventory movements")
		return nil, fmt.Errorf("failed to query inventory movements: %w", err)
	}
	defer rows.Close()

	var movements []model.InventoryMovement
	for rows.Next() {
		var m model.InventoryMovement
		err := rows.Scan(
			&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Reason, &m.OrderID, &m.UserID, &m.CreatedAt,
			&m.ProductName, &m.ProductSKU, &m.ProductSlug,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan inventory movement row")
			return nil, fmt.Errorf("failed to scan inventory movement: %w", err)
		}
		movements = append(movements, m)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating inventory movement rows")
		return nil, fmt.Errorf("error iterating inventory movements: %w", err)
	}

	return movements, nil
}
