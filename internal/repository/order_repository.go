package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

const orderColumns = `id, store_id, customer_id,
	customer_name, customer_phone, customer_email,
	address_postcode, address_street, address_number, address_complement,
	address_district, address_city, address_state, address_reference,
	subtotal, discount, delivery_fee, total,
	coupon_code, coupon_discount,
	payment_method, change_for, delivery_mode,
	notes, estimated_minutes, status, cancel_reason,
	created_at, updated_at, confirmed_at, preparing_at,
	out_for_delivery_at, delivered_at, canceled_at`

func orderValues(o *model.Order) []any {
	return []any{
		o.ID, o.StoreID, o.CustomerID,
		o.Customer.Name, o.Customer.Phone, o.Customer.Email,
		o.Customer.Postcode, o.Customer.Street, o.Customer.Number, o.Customer.Complement,
		o.Customer.District, o.Customer.City, o.Customer.State, o.Customer.Reference,
		o.Subtotal, o.Discount, o.DeliveryFee, o.Total,
		o.CouponCode, o.CouponDiscount,
		o.PaymentMethod, o.ChangeFor, o.DeliveryMode,
		o.Notes, o.EstimatedMinutes, o.Status, o.CancelReason,
		o.CreatedAt, o.UpdatedAt, o.ConfirmedAt, o.PreparingAt,
		o.OutForDeliveryAt, o.DeliveredAt, o.CanceledAt,
	}
}

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.StoreID, &o.CustomerID,
		&o.Customer.Name, &o.Customer.Phone, &o.Customer.Email,
		&o.Customer.Postcode, &o.Customer.Street, &o.Customer.Number, &o.Customer.Complement,
		&o.Customer.District, &o.Customer.City, &o.Customer.State, &o.Customer.Reference,
		&o.Subtotal, &o.Discount, &o.DeliveryFee, &o.Total,
		&o.CouponCode, &o.CouponDiscount,
		&o.PaymentMethod, &o.ChangeFor, &o.DeliveryMode,
		&o.Notes, &o.EstimatedMinutes, &o.Status, &o.CancelReason,
		&o.CreatedAt, &o.UpdatedAt, &o.ConfirmedAt, &o.PreparingAt,
		&o.OutForDeliveryAt, &o.DeliveredAt, &o.CanceledAt,
	)
}

// CreateOrder inserts a new order header within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26,
		        $27, $28, $29, $30, $31, $32, $33, $34)
	`

	_, err := tx.Exec(ctx, query, orderValues(order)...)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().Str("order_id", order.ID.String()).Msg("order created")
	return nil
}

// CreateOrderLines inserts the order's priced lines within the provided
// transaction.
func (r *orderRepository) CreateOrderLines(ctx context.Context, tx pgx.Tx, lines []model.PricedLine) error {
	if len(lines) == 0 {
		return nil
	}

	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name,
		                         product_description, list_price, promo_price,
		                         unit_price, quantity, subtotal, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	batch := &pgx.Batch{}
	for _, line := range lines {
		batch.Queue(query,
			line.ID, line.OrderID, line.ProductID, line.ProductName,
			line.ProductDescription, line.ListPrice, line.PromoPrice,
			line.UnitPrice, line.Quantity, line.Subtotal, line.Note,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for i := 0; i < len(lines); i++ {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().
				Err(err).
				Str("order_id", lines[i].OrderID.String()).
				Str("product_id", lines[i].ProductID.String()).
				Msg("failed to create order line")
			return fmt.Errorf("failed to create order line: %w", err)
		}
	}

	r.logger.Debug().Int("count", len(lines)).Msg("order lines created")
	return nil
}

// GetByID retrieves an order by its ID along with its priced lines.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.PricedLine, error) {
	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id), &order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	linesQuery := `
		SELECT id, order_id, product_id, product_name, product_description,
		       list_price, promo_price, unit_price, quantity, subtotal, note
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.pool.Query(ctx, linesQuery, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order lines")
		return nil, nil, fmt.Errorf("failed to query order lines: %w", err)
	}
	defer rows.Close()

	var lines []model.PricedLine
	for rows.Next() {
		var l model.PricedLine
		err := rows.Scan(
			&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.ProductDescription,
			&l.ListPrice, &l.PromoPrice, &l.UnitPrice, &l.Quantity, &l.Subtotal, &l.Note,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order line row")
			return nil, nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order line rows")
		return nil, nil, fmt.Errorf("error iterating order lines: %w", err)
	}

	return &order, lines, nil
}

// ListByStore retrieves a store's orders, optionally filtered by status,
// newest first.
func (r *orderRepository) ListByStore(ctx context.Context, storeID uuid.UUID, status *model.Status, limit, offset int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE store_id = $1`
	args := []any{storeID}

	if status != nil {
		query += ` AND status = $2`
		args = append(args, *status)
	}
	query += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Str("store_id", storeID.String()).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// Update persists an order's mutable fields.
func (r *orderRepository) Update(ctx context.Context, order *model.Order) error {
	query := `
		UPDATE orders
		SET status = $2, cancel_reason = $3, notes = $4, updated_at = $5,
		    confirmed_at = $6, preparing_at = $7, out_for_delivery_at = $8,
		    delivered_at = $9, canceled_at = $10
		WHERE id = $1
	`

	_, err := r.pool.Exec(ctx, query,
		order.ID, order.Status, order.CancelReason, order.Notes, order.UpdatedAt,
		order.ConfirmedAt, order.PreparingAt, order.OutForDeliveryAt,
		order.DeliveredAt, order.CanceledAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", order.ID.String()).
		Str("status", string(order.Status)).
		Msg("order updated")

	return nil
}
