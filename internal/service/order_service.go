package service

import (
	"context"
	"fmt"
	"time"

	"storefront/internal/cart"
	"storefront/internal/coupon"
	"storefront/internal/model"
	"storefront/internal/notify"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const defaultPrepTimeMinutes = 30

// orderService implements OrderService. Order creation is the assembly
// pipeline: cart pricing, coupon evaluation, store rules, then a single
// transaction writing the header and its lines.
type orderService struct {
	orders   repository.OrderRepository
	stores   repository.StoreRepository
	pricer   *cart.Pricer
	coupons  *coupon.Evaluator
	notifier notify.Notifier
	now      func() time.Time
	logger   zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orders repository.OrderRepository,
	stores repository.StoreRepository,
	pricer *cart.Pricer,
	coupons *coupon.Evaluator,
	notifier notify.Notifier,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orders:   orders,
		stores:   stores,
		pricer:   pricer,
		coupons:  coupons,
		notifier: notifier,
		now:      time.Now,
		logger:   logger.With().Str("service", "order").Logger(),
	}
}

// Create turns a raw cart submission into a priced, validated, persisted
// order. Any validation failure aborts before anything is written; the order
// header and its lines commit in one transaction.
func (s *orderService) Create(ctx context.Context, storeID uuid.UUID, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	store, err := s.stores.GetByID(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}
	if store == nil {
		return nil, model.ErrStoreNotFound
	}
	if !store.AcceptsOrders {
		s.logger.Warn().Str("store_id", storeID.String()).Msg("store not accepting orders")
		return nil, model.ErrStoreNotAcceptingOrders
	}

	priced, err := s.pricer.Price(ctx, storeID, req.Items)
	if err != nil {
		return nil, err
	}

	if priced.Subtotal < store.MinOrderValue {
		return nil, model.NewMinimumOrderNotMet(store.MinOrderValue)
	}

	var appliedCoupon *model.Coupon
	var discount float64
	if req.CouponCode != "" {
		appliedCoupon, err = s.coupons.Evaluate(ctx, req.CouponCode, storeID, priced.Subtotal)
		if err != nil {
			return nil, err
		}
		discount = coupon.Discount(appliedCoupon, priced.Subtotal)
	}

	var deliveryFee float64
	if req.DeliveryMode == model.ModeDelivery {
		deliveryFee = store.DeliveryFee
		if appliedCoupon != nil && appliedCoupon.Type == model.DiscountFreeShipping {
			deliveryFee = 0
		}
	}

	total := priced.Subtotal - discount + deliveryFee

	if req.PaymentMethod == model.PaymentCash && req.ChangeFor != nil && *req.ChangeFor < total {
		return nil, model.ErrInsufficientChange
	}

	now := s.now()
	prepTime := store.PrepTimeMinutes
	if prepTime <= 0 {
		prepTime = defaultPrepTimeMinutes
	}

	order := &model.Order{
		ID:               uuid.New(),
		StoreID:          storeID,
		CustomerID:       req.CustomerID,
		Customer:         req.Customer,
		Subtotal:         priced.Subtotal,
		Discount:         discount,
		DeliveryFee:      deliveryFee,
		Total:            total,
		CouponDiscount:   discount,
		PaymentMethod:    req.PaymentMethod,
		ChangeFor:        req.ChangeFor,
		DeliveryMode:     req.DeliveryMode,
		Notes:            req.Notes,
		EstimatedMinutes: prepTime,
		Status:           model.StatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if appliedCoupon != nil {
		order.CouponCode = &appliedCoupon.Code
	}

	lines := make([]model.PricedLine, len(priced.Lines))
	for i, line := range priced.Lines {
		line.OrderID = order.ID
		lines[i] = line
	}

	tx, err := s.orders.BeginTx(ctx)
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

	if err = s.orders.CreateOrder(ctx, tx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	if err = s.orders.CreateOrderLines(ctx, tx, lines); err != nil {
		return nil, fmt.Errorf("failed to create order lines: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The coupon is committed to usage only now that the order is durable.
	// An increment failure never fails the already-created order.
	if appliedCoupon != nil {
		if redeemErr := s.coupons.Redeem(ctx, appliedCoupon.ID); redeemErr != nil {
			s.logger.Warn().
				Err(redeemErr).
				Str("order_id", order.ID.String()).
				Str("coupon_code", appliedCoupon.Code).
				Msg("coupon usage increment failed after order creation")
		}
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("store_id", storeID.String()).
		Int("line_count", len(lines)).
		Float64("total", order.Total).
		Msg("order created")

	return &model.OrderResponse{Order: order, Items: lines}, nil
}

// GetByID retrieves an order with its priced lines.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, lines, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, nil
	}

	return &model.OrderResponse{Order: order, Items: lines}, nil
}

// ListByStore retrieves a store's orders, optionally filtered by status.
func (s *orderService) ListByStore(ctx context.Context, storeID uuid.UUID, status *model.Status, limit, offset int) ([]model.Order, error) {
	orders, err := s.orders.ListByStore(ctx, storeID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus advances an order through the status state machine. An
// invalid transition leaves the order untouched. After a successful
// transition the customer-notification hook fires; its outcome never affects
// the result.
func (s *orderService) UpdateStatus(ctx context.Context, orderID, storeID uuid.UUID, next model.Status, cancelReason string) (*model.Order, error) {
	order, err := s.loadStoreOrder(ctx, orderID, storeID)
	if err != nil {
		return nil, err
	}

	if !next.Valid() {
		return nil, model.NewInvalidTransition(order.Status, next)
	}
	if err := order.Transition(next, cancelReason, s.now()); err != nil {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("from", string(order.Status)).
			Str("to", string(next)).
			Msg("invalid status transition")
		return nil, err
	}

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("status", string(order.Status)).
		Msg("order status updated")

	s.notifier.NotifyCustomer(ctx, order)

	return order, nil
}

// AddNote appends a timestamped merchant note to an order.
func (s *orderService) AddNote(ctx context.Context, orderID, storeID uuid.UUID, note string) (*model.Order, error) {
	if note == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Note must not be empty")
	}

	order, err := s.loadStoreOrder(ctx, orderID, storeID)
	if err != nil {
		return nil, err
	}

	order.AppendNote(note, s.now())

	if err := s.orders.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to save order note: %w", err)
	}

	return order, nil
}

// loadStoreOrder fetches an order and checks store ownership. Orders of
// other stores surface as not found.
func (s *orderService) loadStoreOrder(ctx context.Context, orderID, storeID uuid.UUID) (*model.Order, error) {
	order, _, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil || order.StoreID != storeID {
		return nil, model.ErrOrderNotFound
	}
	return order, nil
}

// validateOrderRequest checks the request shape before any lookups run.
func validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeMissingField, "Order request is required")
	}
	if req.Customer.Name == "" || req.Customer.Phone == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Customer name and phone are required")
	}
	if !req.PaymentMethod.Valid() {
		return model.NewDomainError(model.ErrCodeMissingField, "A valid payment method is required")
	}
	if !req.DeliveryMode.Valid() {
		return model.NewDomainError(model.ErrCodeMissingField, "A valid delivery mode is required")
	}
	return nil
}
