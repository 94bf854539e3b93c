package service

import (
	"context"
	"fmt"
	"time"

	"shop-kart/internal/events"
	"shop-kart/internal/mailer"
	"shop-kart/internal/model"
	"shop-kart/internal/pricing"
	"shop-kart/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// Ledger reason strings for order-driven stock movements.
const (
	reasonCheckout      = "checkout"
	reasonCancelRestock = "order canceled - restock"
	reasonRefundRestock = "order refunded - restock"
)

// orderService implements OrderService. Checkout, cancel and refund each
// run their stock mutation, ledger append and order write inside a single
// database transaction, so an order can never exist without its matching
// stock and ledger effects.
type orderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	notifications NotificationService
	publisher     events.Publisher
	mail          mailer.Mailer
	adminEmail    string
	logger        zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	notifications NotificationService,
	publisher events.Publisher,
	mail mailer.Mailer,
	adminEmail string,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		inventoryRepo: inventoryRepo,
		notifications: notifications,
		publisher:     publisher,
		mail:          mail,
		adminEmail:    adminEmail,
		logger:        logger.With().Str("service", "order").Logger(),
	}
}

// Checkout converts a cart-like item list into a persisted order.
func (s *orderService) Checkout(ctx context.Context, req *model.CheckoutRequest, userID *uuid.UUID) (*model.Order, error) {
	if err := s.validateCheckoutRequest(req); err != nil {
		return nil, err
	}

	productIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	byID := make(map[uuid.UUID]*model.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	var location string
	if req.ShippingLocation != nil {
		location = *req.ShippingLocation
	}

	now := time.Now()
	orderID := uuid.New()

	var subtotal, shippingCost float64
	orderItems := make([]model.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		p, ok := byID[it.ProductID]
		if !ok {
			s.logger.Warn().Str("product_id", it.ProductID.String()).Msg("unknown product in checkout")
			return nil, model.ErrProductNotFound
		}

		// Voucher rule: a product carrying voucher balance must ship free.
		if p.VoucherBalance > 0 && p.Shipping.Kind != model.ShippingFree {
			return nil, model.ErrVoucherShippingConflict(p.Name)
		}

		// Advisory fast-fail against the loaded snapshot. The conditional
		// decrement inside the transaction below is the authoritative guard.
		if p.Stock < it.Quantity {
			return nil, model.ErrInsufficientStock(p.Name)
		}

		unitPrice := pricing.EffectiveUnitPrice(p, now)
		lineTotal := unitPrice * float64(it.Quantity)
		subtotal += lineTotal

		lineShipping, err := pricing.ShippingForLine(p, it.Quantity, location)
		if err != nil {
			return nil, err
		}
		shippingCost += lineShipping

		orderItems = append(orderItems, model.OrderItem{
			ID:             uuid.New(),
			OrderID:        orderID,
			ProductID:      p.ID,
			SKU:            p.SKU,
			Name:           p.Name,
			Slug:           p.Slug,
			Thumbnail:      p.Thumbnail,
			UnitPrice:      unitPrice,
			Quantity:       it.Quantity,
			TotalPrice:     lineTotal,
			VoucherBalance: p.VoucherBalance,
		})
	}

	order := &model.Order{
		ID:               orderID,
		UserID:           userID,
		Items:            orderItems,
		Customer:         req.Customer,
		PaymentMethod:    model.PaymentCOD,
		Status:           model.OrderProcessing,
		ShippingLocation: req.ShippingLocation,
		ShippingCost:     shippingCost,
		Subtotal:         subtotal,
		Total:            subtotal + shippingCost,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	for _, item := range order.Items {
		var ok bool
		ok, err = s.productRepo.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
		if err != nil {
			return nil, fmt.Errorf("failed to reserve stock: %w", err)
		}
		if !ok {
			// A concurrent checkout won the race since the snapshot read.
			err = model.ErrInsufficientStock(item.Name)
			return nil, err
		}

		if err = s.appendMovement(ctx, tx, item, model.MovementOut, reasonCheckout, orderID, userID, now); err != nil {
			return nil, err
		}
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to commit checkout transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Int("item_count", len(order.Items)).
		Float64("total", order.Total).
		Msg("order placed")

	// The order is committed; everything below is best-effort.
	s.fireSideEffects(ctx, model.EventNewOrder,
		fmt.Sprintf("New order %s placed", order.ID), order, "")

	return order, nil
}

// GetByID retrieves an order by its ID.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// MyOrders retrieves the given user's orders, newest first.
func (s *orderService) MyOrders(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListOrders retrieves all orders, newest first.
func (s *orderService) ListOrders(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateOrderStatus moves an order along the status graph.
func (s *orderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status model.OrderStatus) (*model.Order, error) {
	if !status.Valid() {
		return nil, model.NewValidation(model.ErrCodeInvalidTransition,
			fmt.Sprintf("Unknown order status: %s", status))
	}
	if status == model.OrderCanceled || status == model.OrderRefunded {
		return nil, model.NewValidation(model.ErrCodeInvalidTransition,
			"Use the cancel or refund operation to move an order to this status")
	}

	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransition(status) {
		return nil, model.ErrIllegalTransition(order.Status, status)
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	if err = s.orderRepo.UpdateStatus(ctx, tx, id, status); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", string(order.Status)).
		Str("to", string(status)).
		Msg("order status updated")

	order.Status = status
	return order, nil
}

// CancelOrder cancels an order and restores its stock.
func (s *orderService) CancelOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if order.Status == model.OrderDelivered {
		return nil, model.ErrCancelDelivered
	}
	if !order.Status.CanTransition(model.OrderCanceled) {
		return nil, model.ErrIllegalTransition(order.Status, model.OrderCanceled)
	}

	if err := s.restockAndFinalize(ctx, order, model.OrderCanceled, reasonCancelRestock); err != nil {
		return nil, err
	}

	s.fireSideEffects(ctx, model.EventOrderCanceled,
		fmt.Sprintf("Order %s canceled", order.ID), order, "canceled")

	return order, nil
}

// RefundOrder refunds an order and restores its stock. The transition
// table forbids refunding a CANCELED order, so stock can never be
// restored twice for the same order.
func (s *orderService) RefundOrder(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	order, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransition(model.OrderRefunded) {
		return nil, model.ErrIllegalTransition(order.Status, model.OrderRefunded)
	}

	if err := s.restockAndFinalize(ctx, order, model.OrderRefunded, reasonRefundRestock); err != nil {
		return nil, err
	}

	s.fireSideEffects(ctx, model.EventOrderRefunded,
		fmt.Sprintf("Order %s refunded", order.ID), order, "refunded")

	return order, nil
}

// restockAndFinalize restores stock for every item, appends one IN
// movement per item and sets the terminal status, all in one transaction.
func (s *orderService) restockAndFinalize(ctx context.Context, order *model.Order, status model.OrderStatus, reason string) (err error) {
	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to %s order: %w", status, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	now := time.Now()
	for _, item := range order.Items {
		if err = s.productRepo.IncrementStock(ctx, tx, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("failed to restock product: %w", err)
		}
		if err = s.appendMovement(ctx, tx, item, model.MovementIn, reason, order.ID, order.UserID, now); err != nil {
			return err
		}
	}

	if err = s.orderRepo.UpdateStatus(ctx, tx, order.ID, status); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to %s order: %w", status, err)
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("status", string(status)).
		Int("item_count", len(order.Items)).
		Msg("order restocked")

	order.Status = status
	order.UpdatedAt = now
	return nil
}

func (s *orderService) appendMovement(ctx context.Context, tx pgx.Tx, item model.OrderItem, movementType model.MovementType, reason string, orderID uuid.UUID, userID *uuid.UUID, now time.Time) error {
	movement := &model.InventoryMovement{
		ID:        uuid.New(),
		ProductID: item.ProductID,
		Type:      movementType,
		Quantity:  item.Quantity,
		Reason:    &reason,
		OrderID:   &orderID,
		UserID:    userID,
		CreatedAt: now,
	}
	if err := s.inventoryRepo.Insert(ctx, tx, movement); err != nil {
		return fmt.Errorf("failed to record inventory movement: %w", err)
	}
	return nil
}

// fireSideEffects records the notification, publishes the broker event
// and sends the admin email. Failures are logged and swallowed: none of
// them may fail an already-committed order operation.
func (s *orderService) fireSideEffects(ctx context.Context, eventType, message string, order *model.Order, action string) {
	data := map[string]any{
		"orderId": order.ID.String(),
		"total":   order.Total,
		"status":  string(order.Status),
	}
	if _, err := s.notifications.Record(ctx, eventType, message, data); err != nil {
		s.logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to record notification")
	}

	event := events.OrderEvent{
		EventID:   uuid.New(),
		Type:      eventType,
		OrderID:   order.ID,
		UserID:    order.UserID,
		Status:    string(order.Status),
		Total:     order.Total,
		Timestamp: time.Now(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().Err(err).Str("event_type", eventType).Msg("failed to publish order event")
	}

	if s.adminEmail == "" {
		return
	}

	var msg mailer.Message
	var err error
	if action == "" {
		msg, err = mailer.RenderInvoice(order)
		if err != nil {
			s.logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("failed to render invoice email")
			return
		}
	} else {
		msg = mailer.RenderStatusChange(order, action)
	}
	msg.To = []string{s.adminEmail}

	if err := s.mail.Send(ctx, msg); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID.String()).Msg("failed to send admin email")
	}
}

// validateCheckoutRequest validates the checkout payload shape.
func (s *orderService) validateCheckoutRequest(req *model.CheckoutRequest) error {
	if req == nil {
		return model.NewValidation(model.ErrCodeMissingField, "Checkout request is required")
	}
	if len(req.Items) == 0 {
		return model.NewValidation(model.ErrCodeMissingField, "Order must contain at least one item")
	}
	if req.PaymentMethod != model.PaymentCOD {
		return model.NewValidation(model.ErrCodeInvalidPaymentMethod, "Only cash on delivery is supported")
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return model.ErrInvalidQuantity
		}
	}
	if req.Customer.Name == "" || req.Customer.Phone == "" || req.Customer.FullAddress == "" {
		return model.NewValidation(model.ErrCodeMissingField, "Customer name, phone and address are required")
	}
	return nil
}
