package repository

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-crm-store/apperror"
	"github.com/goliatone/go-crm-store/cache"
	"github.com/goliatone/go-crm-store/model"
)

// Sells is the sell repository: generic CRUD plus lookup by owning bill.
type Sells struct {
	*Repository[*model.Sell]
}

// NewSells constructs the sell repository.
func NewSells(db *bun.DB, port cache.Port) *Sells {
	return &Sells{Repository: New(db, port, sellHandlers())}
}

// FindByBill returns all sells on billID. A bill with no sells returns an
// empty list, not NotFound; see Bills.FindByUser for the deliberate contrast.
func (r *Sells) FindByBill(ctx context.Context, billID int64, spec *cache.Spec) ([]*model.Sell, error) {
	return cachedList(ctx, r.Repository, spec, func(ctx context.Context) ([]*model.Sell, error) {
		sells := []*model.Sell{}
		err := r.DB().NewSelect().Model(&sells).Where("bill_id = ?", billID).Order("id ASC").Scan(ctx)
		if err != nil {
			return nil, apperror.Persistence(err, "finding sells by bill")
		}
		return sells, nil
	})
}

func sellHandlers() Handlers[*model.Sell] {
	return Handlers[*model.Sell]{
		NewRecord: func() *model.Sell { return &model.Sell{} },
		GetID:     func(s *model.Sell) int64 { return s.ID },
	}
}
