package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-crm-store/apperror"
	"github.com/goliatone/go-crm-store/cache"
	"github.com/goliatone/go-crm-store/model"
)

// Products is the product repository: generic CRUD plus lookup by the unique
// product name.
type Products struct {
	*Repository[*model.Product]
}

// NewProducts constructs the product repository.
func NewProducts(db *bun.DB, port cache.Port) *Products {
	return &Products{Repository: New(db, port, productHandlers())}
}

// FindByName returns the product with the exact given name. Absent products
// report NotFound.
func (r *Products) FindByName(ctx context.Context, name string, spec *cache.Spec) (*model.Product, error) {
	return cachedOne(ctx, r.Repository, spec, func(ctx context.Context) (*model.Product, error) {
		product := &model.Product{}
		err := r.DB().NewSelect().Model(product).Where("name = ?", name).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("product %q not found", name)
		}
		if err != nil {
			return nil, apperror.Persistence(err, "finding product by name")
		}
		return product, nil
	})
}

func productHandlers() Handlers[*model.Product] {
	return Handlers[*model.Product]{
		NewRecord: func() *model.Product { return &model.Product{} },
		GetID:     func(p *model.Product) int64 { return p.ID },
	}
}
