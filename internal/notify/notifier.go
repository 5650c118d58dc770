package notify

import (
	"context"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// Notifier is the customer-notification hook invoked after a successful
// status transition. Implementations are fire-and-forget: delivery failure
// must never affect the transition that triggered it.
type Notifier interface {
	NotifyCustomer(ctx context.Context, order *model.Order)
}

// LogNotifier is the placeholder implementation. It records the would-be
// notification and does nothing else.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a logging notifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{
		logger: logger.With().Str("component", "notifier").Logger(),
	}
}

// NotifyCustomer logs the notification that a real channel (WhatsApp, email)
// would deliver.
func (n *LogNotifier) NotifyCustomer(ctx context.Context, order *model.Order) {
	n.logger.Info().
		Str("order_id", order.ID.String()).
		Str("customer_phone", order.Customer.Phone).
		Str("status", string(order.Status)).
		Msg("customer notification (no-op)")
}
