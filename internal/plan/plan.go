package plan

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Name is a subscription tier.
type Name string

const (
	Simples Name = "simples"
	Duplo   Name = "duplo"
	Supremo Name = "supremo"
)

// Resource is a countable, plan-limited resource.
type Resource string

const (
	ResourceStores             Resource = "stores"
	ResourceProductsPerStore   Resource = "products_per_store"
	ResourceCategoriesPerStore Resource = "categories_per_store"
	ResourcePromotionsActive   Resource = "promotions_active"
)

// Feature is a boolean, plan-gated capability.
type Feature string

const (
	FeatureCustomColors    Feature = "custom_colors"
	FeatureLogoUpload      Feature = "logo_upload"
	FeatureBannerUpload    Feature = "banner_upload"
	FeatureProductImages   Feature = "product_images"
	FeatureCategoryImages  Feature = "category_images"
	FeatureAdvancedReports Feature = "advanced_reports"
	FeatureAPIAccess       Feature = "api_access"
	FeatureCustomDomain    Feature = "custom_domain"
	FeaturePrioritySupport Feature = "priority_support"
)

// Unlimited marks a resource with no cap on the tier.
const Unlimited = -1

// Limits carries the numeric caps and feature set of one tier.
type Limits struct {
	Stores             int
	ProductsPerStore   int
	CategoriesPerStore int
	PromotionsActive   int
	Features           map[Feature]bool
}

var limitsByPlan = map[Name]Limits{
	Simples: {
		Stores:             1,
		ProductsPerStore:   10,
		CategoriesPerStore: 10,
		PromotionsActive:   3,
		Features:           map[Feature]bool{},
	},
	Duplo: {
		Stores:             1,
		ProductsPerStore:   50,
		CategoriesPerStore: 15,
		PromotionsActive:   5,
		Features: map[Feature]bool{
			FeatureCustomColors:    true,
			FeatureLogoUpload:      true,
			FeatureBannerUpload:    true,
			FeatureProductImages:   true,
			FeatureCategoryImages:  true,
			FeatureAdvancedReports: true,
		},
	},
	Supremo: {
		Stores:             5,
		ProductsPerStore:   Unlimited,
		CategoriesPerStore: Unlimited,
		PromotionsActive:   Unlimited,
		Features: map[Feature]bool{
			FeatureCustomColors:    true,
			FeatureLogoUpload:      true,
			FeatureBannerUpload:    true,
			FeatureProductImages:   true,
			FeatureCategoryImages:  true,
			FeatureAdvancedReports: true,
			FeatureAPIAccess:       true,
			FeatureCustomDomain:    true,
			FeaturePrioritySupport: true,
		},
	},
}

// Resolve maps a stored plan name to a tier. Every call site that needs a
// fallback goes through here: unknown or empty names resolve to the lowest
// tier.
func Resolve(name string) Name {
	n := Name(name)
	if _, ok := limitsByPlan[n]; ok {
		return n
	}
	return Simples
}

// LimitsFor returns the limits of a tier.
func LimitsFor(name Name) Limits {
	if l, ok := limitsByPlan[name]; ok {
		return l
	}
	return limitsByPlan[Simples]
}

// LimitFor returns the cap for one resource on a tier.
func (l Limits) LimitFor(resource Resource) int {
	switch resource {
	case ResourceStores:
		return l.Stores
	case ResourceProductsPerStore:
		return l.ProductsPerStore
	case ResourceCategoriesPerStore:
		return l.CategoriesPerStore
	case ResourcePromotionsActive:
		return l.PromotionsActive
	}
	return 0
}

// HasReachedLimit reports whether currentCount has hit the tier's cap for
// resource. Unlimited resources never reach it.
func HasReachedLimit(name Name, resource Resource, currentCount int) bool {
	limit := LimitsFor(name).LimitFor(resource)
	if limit == Unlimited {
		return false
	}
	return currentCount >= limit
}

// HasFeature reports whether the tier carries the feature.
func HasFeature(name Name, feature Feature) bool {
	return LimitsFor(name).Features[feature]
}

// SubscriptionSource resolves an account's active plan name. An empty string
// means no active subscription.
type SubscriptionSource interface {
	GetActivePlan(ctx context.Context, accountID uuid.UUID) (string, error)
}

// Gate decides whether plan-limited mutations may proceed. It is consulted
// before every resource-creation and upload path; it performs no writes of
// its own.
type Gate struct {
	subscriptions SubscriptionSource
	logger        zerolog.Logger
}

// NewGate creates a plan gate backed by a subscription source.
func NewGate(subscriptions SubscriptionSource, logger zerolog.Logger) *Gate {
	return &Gate{
		subscriptions: subscriptions,
		logger:        logger.With().Str("component", "plan-gate").Logger(),
	}
}

// PlanFor resolves the account's effective tier, falling back to the lowest
// tier when no active subscription exists.
func (g *Gate) PlanFor(ctx context.Context, accountID uuid.UUID) (Name, error) {
	name, err := g.subscriptions.GetActivePlan(ctx, accountID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve active plan: %w", err)
	}
	return Resolve(name), nil
}

// CheckLimit returns PlanLimitReached when creating one more unit of resource
// would exceed the account's tier cap.
func (g *Gate) CheckLimit(ctx context.Context, accountID uuid.UUID, resource Resource, currentCount int) error {
	tier, err := g.PlanFor(ctx, accountID)
	if err != nil {
		return err
	}

	if HasReachedLimit(tier, resource, currentCount) {
		limit := LimitsFor(tier).LimitFor(resource)
		g.logger.Warn().
			Str("account_id", accountID.String()).
			Str("plan", string(tier)).
			Str("resource", string(resource)).
			Int("limit", limit).
			Int("current", currentCount).
			Msg("plan limit reached")
		return model.NewPlanLimitReached(string(resource), limit)
	}

	return nil
}

// CheckFeature returns PlanFeatureUnavailable when the account's tier does
// not carry the feature.
func (g *Gate) CheckFeature(ctx context.Context, accountID uuid.UUID, feature Feature) error {
	tier, err := g.PlanFor(ctx, accountID)
	if err != nil {
		return err
	}

	if !HasFeature(tier, feature) {
		g.logger.Warn().
			Str("account_id", accountID.String()).
			Str("plan", string(tier)).
			Str("feature", string(feature)).
			Msg("plan feature unavailable")
		return model.NewPlanFeatureUnavailable(string(feature))
	}

	return nil
}
