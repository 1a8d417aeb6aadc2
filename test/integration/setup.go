package integration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
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

	// Create connection pool
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

// createSchema applies migrations/schema.sql to the test database.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	schema, err := os.ReadFile(filepath.Join("..", "..", "migrations", "schema.sql"))
	if err != nil {
		t.Fatalf("failed to read schema file: %v", err)
	}

	if _, err := pool.Exec(context.Background(), string(schema)); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// Fixed IDs so tests can reference seeded rows directly.
var (
	EspressoID  = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	FlatWhiteID = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	CroissantID = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	OffMenuID   = uuid.MustParse("44444444-4444-4444-4444-444444444444")
	TableOneID  = uuid.MustParse("55555555-5555-5555-5555-555555555555")
	Save20ID    = uuid.MustParse("66666666-6666-6666-6666-666666666666")
)

// SeedMenu inserts test menu items. OffMenuID is seeded unavailable.
func SeedMenu(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	items := []struct {
		id        uuid.UUID
		name      string
		price     float64
		category  string
		available bool
	}{
		{EspressoID, "Espresso", 2.80, "coffee", true},
		{FlatWhiteID, "Flat White", 3.50, "coffee", true},
		{CroissantID, "Croissant", 2.20, "pastry", true},
		{OffMenuID, "Seasonal Special", 5.00, "special", false},
	}

	for _, it := range items {
		_, err := pool.Exec(ctx,
			"INSERT INTO menu_items (id, name, price, category, is_available) VALUES ($1, $2, $3, $4, $5)",
			it.id, it.name, it.price, it.category, it.available,
		)
		if err != nil {
			t.Fatalf("failed to seed menu item %s: %v", it.name, err)
		}
	}
}

// SeedTables inserts one active table with number 1.
func SeedTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		"INSERT INTO cafe_tables (id, table_number, seats, is_active) VALUES ($1, 1, 4, TRUE)",
		TableOneID,
	)
	if err != nil {
		t.Fatalf("failed to seed table: %v", err)
	}
}

// SeedCoupons inserts an active SAVE20 percentage coupon limited to one use
// per user.
func SeedCoupons(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO coupons (id, code, discount_type, discount_value, is_active, usage_limit_per_user)
		 VALUES ($1, 'SAVE20', 'percentage', 20, TRUE, 1)`,
		Save20ID,
	)
	if err != nil {
		t.Fatalf("failed to seed coupon: %v", err)
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"order_items", "orders", "coupon_usages", "coupons", "cafe_tables", "menu_items", "contact_messages"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
