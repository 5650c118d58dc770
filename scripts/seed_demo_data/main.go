// Seeds a local database with a demo account, store, catalogue and coupons
// so the API can be exercised end to end.
//
// Usage: go run ./scripts/seed_demo_data
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()
	logger := zerolog.Nop()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	accountID := uuid.New()
	storeID := uuid.New()

	_, err = pool.Exec(ctx, `
		INSERT INTO stores (id, account_id, name, slug, accepts_orders, min_order_value, delivery_fee, prep_time_minutes, active, created_at, updated_at)
		VALUES ($1, $2, 'Pizzaria Demo', 'pizzaria-demo', TRUE, 15.00, 6.00, 40, TRUE, NOW(), NOW())
	`, storeID, accountID)
	if err != nil {
		log.Fatalf("Failed to seed store: %v", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO subscriptions (id, account_id, plan, status, created_at)
		VALUES ($1, $2, 'duplo', 'active', NOW())
	`, uuid.New(), accountID)
	if err != nil {
		log.Fatalf("Failed to seed subscription: %v", err)
	}

	products := []struct {
		name       string
		price      float64
		promoPrice *float64
	}{
		{"Pizza Margherita", 32.00, ptr(28.00)},
		{"Pizza Calabresa", 34.00, nil},
		{"Pizza Quatro Queijos", 38.00, nil},
		{"Guarana 2L", 9.00, nil},
		{"Pudim", 12.00, ptr(10.00)},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, store_id, name, description, price, promo_price, available, created_at, updated_at)
			VALUES ($1, $2, $3, '', $4, $5, TRUE, NOW(), NOW())
		`, uuid.New(), storeID, p.name, p.price, p.promoPrice)
		if err != nil {
			log.Fatalf("Failed to seed product %s: %v", p.name, err)
		}
	}

	coupons := []struct {
		code       string
		kind       string
		value      float64
		minOrder   float64
		usageLimit *int
	}{
		{"BEMVINDO10", "percentage", 10, 0, nil},
		{"PIZZA5", "fixed_amount", 5, 30.00, ptr(100)},
		{"FRETEGRATIS", "free_shipping", 0, 50.00, nil},
	}

	for _, c := range coupons {
		_, err := pool.Exec(ctx, `
			INSERT INTO coupons (id, store_id, code, type, value, min_order_value, starts_at, ends_at, usage_limit, total_used, active, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, TRUE, NOW(), NOW())
		`, uuid.New(), storeID, c.code, c.kind, c.value, c.minOrder,
			time.Now().AddDate(0, 0, -1), time.Now().AddDate(0, 3, 0), c.usageLimit)
		if err != nil {
			log.Fatalf("Failed to seed coupon %s: %v", c.code, err)
		}
	}

	fmt.Println("Demo data seeded successfully!")
	fmt.Printf("  Store ID:   %s\n", storeID)
	fmt.Printf("  Account ID: %s\n", accountID)
	fmt.Println("  Coupons:    BEMVINDO10 (10%), PIZZA5 (R$5 off, min R$30), FRETEGRATIS (min R$50)")
}

func ptr[T any](v T) *T {
	return &v
}
