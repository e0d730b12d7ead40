package repository

import (
	"context"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-crm-store/apperror"
	"github.com/goliatone/go-crm-store/cache"
	"github.com/goliatone/go-crm-store/model"
)

// Bills is the bill repository: generic CRUD plus lookup by owning user.
type Bills struct {
	*Repository[*model.Bill]
}

// NewBills constructs the bill repository.
func NewBills(db *bun.DB, port cache.Port) *Bills {
	return &Bills{Repository: New(db, port, billHandlers())}
}

// FindByUser returns all bills owned by userID. A user with no bills reports
// NotFound; this intentionally differs from Sells.FindByBill, which returns
// an empty list.
func (r *Bills) FindByUser(ctx context.Context, userID int64, spec *cache.Spec) ([]*model.Bill, error) {
	return cachedList(ctx, r.Repository, spec, func(ctx context.Context) ([]*model.Bill, error) {
		bills := []*model.Bill{}
		err := r.DB().NewSelect().Model(&bills).Where("user_id = ?", userID).Order("id ASC").Scan(ctx)
		if err != nil {
			return nil, apperror.Persistence(err, "finding bills by user")
		}
		if len(bills) == 0 {
			return nil, apperror.NotFound("bills for user %d not found", userID)
		}
		return bills, nil
	})
}

func billHandlers() Handlers[*model.Bill] {
	return Handlers[*model.Bill]{
		NewRecord: func() *model.Bill { return &model.Bill{} },
		GetID:     func(b *model.Bill) int64 { return b.ID },
	}
}
