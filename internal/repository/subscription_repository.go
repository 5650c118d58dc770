package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// subscriptionRepository implements the SubscriptionRepository interface
// using PostgreSQL.
type subscriptionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSubscriptionRepository creates a new PostgreSQL-backed subscription
// repository.
func NewSubscriptionRepository(pool *pgxpool.Pool, logger zerolog.Logger) SubscriptionRepository {
	return &subscriptionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "subscription").Logger(),
	}
}

// GetActivePlan returns the plan name of the account's active subscription.
// An empty string means no active subscription; callers resolve the fallback
// tier through the plan package.
func (r *subscriptionRepository) GetActivePlan(ctx context.Context, accountID uuid.UUID) (string, error) {
	query := `
		SELECT plan
		FROM subscriptions
		WHERE account_id = $1 AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1
	`

	var plan string
	err := r.pool.QueryRow(ctx, query, accountID).Scan(&plan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Str("account_id", accountID.String()).Msg("no active subscription")
			return "", nil
		}
		r.logger.Error().Err(err).Str("account_id", accountID.String()).Msg("failed to query subscription")
		return "", fmt.Errorf("failed to query subscription: %w", err)
	}

	return plan, nil
}
