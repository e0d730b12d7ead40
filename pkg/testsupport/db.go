package testsupport

import (
	"context"
	"database/sql"
	"sync/atomic"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

// crmSchema mirrors the production schema closely enough for repository
// tests: unique indexes on users.email and products.name, and the
// bills->sells cascade.
const crmSchema = `
CREATE TABLE users (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	email TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	password TEXT NOT NULL,
	is_active BOOLEAN NOT NULL DEFAULT 1
);

CREATE TABLE products (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	description TEXT,
	price NUMERIC NOT NULL,
	available_quantity INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE bills (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	user_id INTEGER NOT NULL REFERENCES users (id),
	date TIMESTAMP NOT NULL,
	total_amount NUMERIC NOT NULL DEFAULT 0
);

CREATE TABLE sells (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	bill_id INTEGER NOT NULL REFERENCES bills (id) ON DELETE CASCADE,
	product_id INTEGER NOT NULL REFERENCES products (id),
	quantity INTEGER NOT NULL,
	sale_price NUMERIC NOT NULL
);
`

// NewDB opens an in-memory SQLite database with the CRM schema applied and
// foreign keys enforced. The handle is closed when the test finishes.
func NewDB(t *testing.T) *bun.DB {
	t.Helper()

	sqldb, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	// A pooled second connection would see its own empty :memory: database.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.ExecContext(context.Background(), crmSchema); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}

	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close database: %v", err)
		}
	})
	return db
}

// QueryCounter is a bun query hook counting store round trips, used to prove
// that cache hits short-circuit the store.
type QueryCounter struct {
	n atomic.Int64
}

// BeforeQuery implements bun.QueryHook.
func (c *QueryCounter) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

// AfterQuery implements bun.QueryHook.
func (c *QueryCounter) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	c.n.Add(1)
}

// Count returns the number of queries observed so far.
func (c *QueryCounter) Count() int64 { return c.n.Load() }

// Reset zeroes the counter.
func (c *QueryCounter) Reset() { c.n.Store(0) }
