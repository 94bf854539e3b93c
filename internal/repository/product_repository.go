package repository

import (
	"context"
	"fmt"
	"time"

	"shop-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = `
	id, name, sku, slug, description, thumbnail, price, stock, voucher_balance,
	discount_kind, discount_value,
	is_flash_deal, flash_start_at, flash_end_at, flash_deal_price,
	shipping_kind, shipping_locations,
	created_at, updated_at
`

// productRepository implements the ProductRepository interface using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row) (*model.Product, error) {
	var (
		p             model.Product
		discountKind  *string
		discountValue *float64
		flashStart    *time.Time
		flashEnd      *time.Time
		dealPrice     *float64
	)

	err := row.Scan(
		&p.ID, &p.Name, &p.SKU, &p.Slug, &p.Description, &p.Thumbnail,
		&p.Price, &p.Stock, &p.VoucherBalance,
		&discountKind, &discountValue,
		&p.IsFlashDeal, &flashStart, &flashEnd, &dealPrice,
		&p.Shipping.Kind, &p.Shipping.Locations,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if discountKind != nil && discountValue != nil {
		p.Discount = &model.Discount{Kind: model.DiscountKind(*discountKind), Value: *discountValue}
	}
	if flashStart != nil && flashEnd != nil {
		p.FlashDeal = &model.FlashDeal{
			StartAt:   *flashStart,
			EndAt:     *flashEnd,
			DealPrice: dealPrice,
		}
	}

	return &p, nil
}

// GetByID retrieves a single product by its ID.
func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("product_id", id.String()).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return p, nil
}

// GetByIDs retrieves multiple products by their IDs.
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	query := `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`

	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		r.logger.Error().Err(err).Int("count", len(ids)).Msg("failed to query products by IDs")
		return nil, fmt.Errorf("failed to query products by IDs: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// BeginTx starts a new database transaction.
func (r *productRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// DecrementStock atomically decrements stock, guarded by "stock >= quantity".
// The guard inside the UPDATE is what makes concurrent checkouts safe: two
// requests can never both drive stock negative.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) (bool, error) {
	query := `
		UPDATE products
		SET stock = stock - $2, updated_at = NOW()
		WHERE id = $1 AND stock >= $2
	`

	tag, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", id.String()).
			Int("quantity", quantity).
			Msg("failed to decrement stock")
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}

	return tag.RowsAffected() == 1, nil
}

// IncrementStock adds quantity back to a product's stock.
func (r *productRepository) IncrementStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", id.String()).
			Int("quantity", quantity).
			Msg("failed to increment stock")
		return fmt.Errorf("failed to increment stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// SetStock overwrites a product's stock level.
func (r *productRepository) SetStock(ctx context.Context, tx pgx.Tx, id uuid.UUID, quantity int) error {
	query := `
		UPDATE products
		SET stock = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().Err(err).
			Str("product_id", id.String()).
			Int("quantity", quantity).
			Msg("failed to set stock")
		return fmt.Errorf("failed to set stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// UpdateFlashDeal replaces a product's flash deal configuration.
func (r *productRepository) UpdateFlashDeal(ctx context.Context, id uuid.UUID, isFlashDeal bool, deal *model.FlashDeal) error {
	query := `
		UPDATE products
		SET is_flash_deal = $2, flash_start_at = $3, flash_end_at = $4,
		    flash_deal_price = $5, updated_at = NOW()
		WHERE id = $1
	`

	var (
		startAt, endAt any
		dealPrice      *float64
	)
	if deal != nil {
		startAt = deal.StartAt
		endAt = deal.EndAt
		dealPrice = deal.DealPrice
	}

	tag, err := r.pool.Exec(ctx, query, id, isFlashDeal, startAt, endAt, dealPrice)
	if err != nil {
		r.logger.Error().Err(err).Str("product_id", id.String()).Msg("failed to update flash deal")
		return fmt.Errorf("failed to update flash deal: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}
