package service

import (
	"context"
	"log/slog"

	"github.com/goliatone/go-crm-store/cache"
	"github.com/goliatone/go-crm-store/model"
	"github.com/goliatone/go-crm-store/repository"
)

// Users orchestrates user operations: generic CRUD plus the login-identifier
// finder.
type Users struct {
	*Service[*model.User]
	repo *repository.Users
}

// NewUsers constructs the user service.
func NewUsers(repo *repository.Users, log *slog.Logger) *Users {
	return &Users{Service: New[*model.User](repo, "user", log), repo: repo}
}

// FindByEmailOrUsername returns the user matching the unique login
// identifier.
func (s *Users) FindByEmailOrUsername(ctx context.Context, identifier string, spec *cache.Spec) (*model.User, error) {
	log := s.opLogger("find_by_email_or_username", spec).With("identifier", identifier)
	log.DebugContext(ctx, "finding user")

	user, err := s.repo.FindByEmailOrUsername(ctx, identifier, spec)
	if err != nil {
		return nil, s.fail(ctx, log, "finding user by identifier", err)
	}
	log.DebugContext(ctx, "user found", "id", user.ID)
	return user, nil
}

// Products orchestrates product operations: generic CRUD plus the unique
// name finder.
type Products struct {
	*Service[*model.Product]
	repo *repository.Products
}

// NewProducts constructs the product service.
func NewProducts(repo *repository.Products, log *slog.Logger) *Products {
	return &Products{Service: New[*model.Product](repo, "product", log), repo: repo}
}

// FindByName returns the product with the exact given name.
func (s *Products) FindByName(ctx context.Context, name string, spec *cache.Spec) (*model.Product, error) {
	log := s.opLogger("find_by_name", spec).With("name", name)
	log.DebugContext(ctx, "finding product")

	product, err := s.repo.FindByName(ctx, name, spec)
	if err != nil {
		return nil, s.fail(ctx, log, "finding product by name", err)
	}
	log.DebugContext(ctx, "product found", "id", product.ID)
	return product, nil
}

// Bills orchestrates bill operations: generic CRUD plus the owning-user
// finder.
type Bills struct {
	*Service[*model.Bill]
	repo *repository.Bills
}

// NewBills constructs the bill service.
func NewBills(repo *repository.Bills, log *slog.Logger) *Bills {
	return &Bills{Service: New[*model.Bill](repo, "bill", log), repo: repo}
}

// FindByUser returns all bills owned by userID; a user with no bills reports
// NotFound.
func (s *Bills) FindByUser(ctx context.Context, userID int64, spec *cache.Spec) ([]*model.Bill, error) {
	log := s.opLogger("find_by_user", spec).With("user_id", userID)
	log.DebugContext(ctx, "finding bills")

	bills, err := s.repo.FindByUser(ctx, userID, spec)
	if err != nil {
		return nil, s.fail(ctx, log, "finding bills by user", err)
	}
	log.DebugContext(ctx, "bills found", "count", len(bills))
	return bills, nil
}

// Sells orchestrates sell operations: generic CRUD plus the owning-bill
// finder.
type Sells struct {
	*Service[*model.Sell]
	repo *repository.Sells
}

// NewSells constructs the sell service.
func NewSells(repo *repository.Sells, log *slog.Logger) *Sells {
	return &Sells{Service: New[*model.Sell](repo, "sell", log), repo: repo}
}

// FindByBill returns all sells on billID; a bill with no sells returns an
// empty list.
func (s *Sells) FindByBill(ctx context.Context, billID int64, spec *cache.Spec) ([]*model.Sell, error) {
	log := s.opLogger("find_by_bill", spec).With("bill_id", billID)
	log.DebugContext(ctx, "finding sells")

	sells, err := s.repo.FindByBill(ctx, billID, spec)
	if err != nil {
		return nil, s.fail(ctx, log, "finding sells by bill", err)
	}
	log.DebugContext(ctx, "sells found", "count", len(sells))
	return sells, nil
}
