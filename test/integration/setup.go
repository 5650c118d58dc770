package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// Fixed IDs the seed helpers use, so tests can reference seeded rows.
var (
	SeedAccountID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	SeedStoreID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	SeedPizzaID   = uuid.MustParse("33333333-3333-3333-3333-333333333331")
	SeedSodaID    = uuid.MustParse("33333333-3333-3333-3333-333333333332")
	SeedCouponID  = uuid.MustParse("44444444-4444-4444-4444-444444444441")
)

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	poolConfig, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		t.Fatalf("failed to parse connection string: %v", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping database: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS stores (
			id UUID PRIMARY KEY,
			account_id UUID NOT NULL,
			name VARCHAR(255) NOT NULL,
			slug VARCHAR(255) NOT NULL,
			accepts_orders BOOLEAN NOT NULL DEFAULT TRUE,
			min_order_value DECIMAL(10, 2) NOT NULL DEFAULT 0,
			delivery_fee DECIMAL(10, 2) NOT NULL DEFAULT 0,
			prep_time_minutes INTEGER NOT NULL DEFAULT 30,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS categories (
			id UUID PRIMARY KEY,
			store_id UUID NOT NULL REFERENCES stores(id),
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			image_url TEXT,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS products (
			id UUID PRIMARY KEY,
			store_id UUID NOT NULL REFERENCES stores(id),
			category_id UUID REFERENCES categories(id),
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			price DECIMAL(10, 2) NOT NULL,
			promo_price DECIMAL(10, 2),
			image_url TEXT,
			available BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS promotions (
			id UUID PRIMARY KEY,
			store_id UUID NOT NULL REFERENCES stores(id),
			name VARCHAR(255) NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			starts_at TIMESTAMP NOT NULL,
			ends_at TIMESTAMP NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS coupons (
			id UUID PRIMARY KEY,
			store_id UUID NOT NULL REFERENCES stores(id),
			code VARCHAR(50) NOT NULL,
			type VARCHAR(20) NOT NULL,
			value DECIMAL(10, 2) NOT NULL,
			min_order_value DECIMAL(10, 2) NOT NULL DEFAULT 0,
			starts_at TIMESTAMP NOT NULL,
			ends_at TIMESTAMP NOT NULL,
			usage_limit INTEGER,
			total_used INTEGER NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (store_id, code)
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			store_id UUID NOT NULL REFERENCES stores(id),
			customer_id UUID NOT NULL,
			customer_name VARCHAR(255) NOT NULL,
			customer_phone VARCHAR(50) NOT NULL,
			customer_email VARCHAR(255) NOT NULL DEFAULT '',
			address_postcode VARCHAR(20) NOT NULL DEFAULT '',
			address_street VARCHAR(255) NOT NULL DEFAULT '',
			address_number VARCHAR(20) NOT NULL DEFAULT '',
			address_complement VARCHAR(255) NOT NULL DEFAULT '',
			address_district VARCHAR(255) NOT NULL DEFAULT '',
			address_city VARCHAR(255) NOT NULL DEFAULT '',
			address_state VARCHAR(50) NOT NULL DEFAULT '',
			address_reference VARCHAR(255) NOT NULL DEFAULT '',
			subtotal DECIMAL(10, 2) NOT NULL,
			discount DECIMAL(10, 2) NOT NULL DEFAULT 0,
			delivery_fee DECIMAL(10, 2) NOT NULL DEFAULT 0,
			total DECIMAL(10, 2) NOT NULL,
			coupon_code VARCHAR(50),
			coupon_discount DECIMAL(10, 2) NOT NULL DEFAULT 0,
			payment_method VARCHAR(20) NOT NULL,
			change_for DECIMAL(10, 2),
			delivery_mode VARCHAR(20) NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			estimated_minutes INTEGER NOT NULL DEFAULT 30,
			status VARCHAR(30) NOT NULL,
			cancel_reason TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			confirmed_at TIMESTAMP,
			preparing_at TIMESTAMP,
			out_for_delivery_at TIMESTAMP,
			delivered_at TIMESTAMP,
			canceled_at TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS order_items (
			id UUID PRIMARY KEY,
			order_id UUID NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id UUID NOT NULL,
			product_name VARCHAR(255) NOT NULL,
			product_description TEXT NOT NULL DEFAULT '',
			list_price DECIMAL(10, 2) NOT NULL,
			promo_price DECIMAL(10, 2),
			unit_price DECIMAL(10, 2) NOT NULL,
			quantity INTEGER NOT NULL CHECK (quantity > 0),
			subtotal DECIMAL(10, 2) NOT NULL,
			note TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS subscriptions (
			id UUID PRIMARY KEY,
			account_id UUID NOT NULL,
			plan VARCHAR(50) NOT NULL,
			status VARCHAR(20) NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_products_store_id ON products(store_id);
		CREATE INDEX IF NOT EXISTS idx_coupons_store_code ON coupons(store_id, code);
		CREATE INDEX IF NOT EXISTS idx_orders_store_id ON orders(store_id);
		CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id);
		CREATE INDEX IF NOT EXISTS idx_subscriptions_account_id ON subscriptions(account_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedStore inserts the fixture store with an active duplo subscription.
func SeedStore(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO stores (id, account_id, name, slug, accepts_orders, min_order_value, delivery_fee, prep_time_minutes)
		VALUES ($1, $2, 'Pizzaria Teste', 'pizzaria-teste', TRUE, 15.00, 6.00, 40)
	`, SeedStoreID, SeedAccountID)
	if err != nil {
		t.Fatalf("failed to seed store: %v", err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO subscriptions (id, account_id, plan, status)
		VALUES ($1, $2, 'duplo', 'active')
	`, uuid.New(), SeedAccountID)
	if err != nil {
		t.Fatalf("failed to seed subscription: %v", err)
	}
}

// SeedProducts inserts test products owned by the fixture store.
func SeedProducts(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	products := []struct {
		id         uuid.UUID
		name       string
		price      float64
		promoPrice *float64
		available  bool
	}{
		{SeedPizzaID, "Pizza Margherita", 10.00, ptr(8.00), true},
		{SeedSodaID, "Guarana 2L", 9.00, nil, true},
	}

	for _, p := range products {
		_, err := pool.Exec(ctx, `
			INSERT INTO products (id, store_id, name, price, promo_price, available)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.id, SeedStoreID, p.name, p.price, p.promoPrice, p.available)
		if err != nil {
			t.Fatalf("failed to seed product %s: %v", p.name, err)
		}
	}
}

// SeedCoupon inserts a 10% coupon valid for the next week.
func SeedCoupon(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO coupons (id, store_id, code, type, value, min_order_value, starts_at, ends_at, usage_limit, total_used, active)
		VALUES ($1, $2, 'PROMO10', 'percentage', 10, 0, $3, $4, 100, 0, TRUE)
	`, SeedCouponID, SeedStoreID, time.Now().AddDate(0, 0, -1), time.Now().AddDate(0, 0, 7))
	if err != nil {
		t.Fatalf("failed to seed coupon: %v", err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "coupons", "promotions", "products", "categories", "subscriptions", "stores"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
