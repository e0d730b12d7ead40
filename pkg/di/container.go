// Package di is the composition root for the CRM store. It owns the
// process-wide cache backend and logger, and hands out per-entity
// repositories and services wired against an externally-provided database
// handle.
package di

import (
	"database/sql"
	"log/slog"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-crm-store/cache"
	"github.com/goliatone/go-crm-store/pkg/logging"
	"github.com/goliatone/go-crm-store/repository"
	"github.com/goliatone/go-crm-store/service"
)

// Container wires the store, the cache port, and the logger into the
// per-entity repositories and services. Construct it once at startup and
// pass the services down.
type Container struct {
	db   *bun.DB
	port cache.Port
	log  *slog.Logger

	users    *service.Users
	products *service.Products
	bills    *service.Bills
	sells    *service.Sells
}

// NewContainer builds a container over an existing database handle and cache
// port. Both are externally owned; the container does not close them.
func NewContainer(db *bun.DB, port cache.Port, log *slog.Logger) *Container {
	if log == nil {
		log = logging.New()
	}

	c := &Container{db: db, port: port, log: log}
	c.users = service.NewUsers(repository.NewUsers(db, port), log)
	c.products = service.NewProducts(repository.NewProducts(db, port), log)
	c.bills = service.NewBills(repository.NewBills(db, port), log)
	c.sells = service.NewSells(repository.NewSells(db, port), log)
	return c
}

// NewContainerWithDefaults builds a container with the default in-process
// cache backend, for single-node deployments and local development.
func NewContainerWithDefaults(db *bun.DB) (*Container, error) {
	port, err := cache.NewMemory(cache.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return NewContainer(db, port, nil), nil
}

// DB returns the backing store handle.
func (c *Container) DB() *bun.DB { return c.db }

// Cache returns the cache port.
func (c *Container) Cache() cache.Port { return c.port }

// Logger returns the base logger services were built with.
func (c *Container) Logger() *slog.Logger { return c.log }

// Users returns the user service.
func (c *Container) Users() *service.Users { return c.users }

// Products returns the product service.
func (c *Container) Products() *service.Products { return c.products }

// Bills returns the bill service.
func (c *Container) Bills() *service.Bills { return c.bills }

// Sells returns the sell service.
func (c *Container) Sells() *service.Sells { return c.sells }

// NewSQLiteDB opens a SQLite-backed bun handle. Use dsn ":memory:" for an
// ephemeral database; pass _foreign_keys=on to enforce the bills->sells
// cascade.
func NewSQLiteDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// NewPostgresDB opens a Postgres-backed bun handle.
func NewPostgresDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, pgdialect.New()), nil
}
