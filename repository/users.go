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

// Users is the user repository: generic CRUD plus lookup by the unique login
// identifier.
type Users struct {
	*Repository[*model.User]
}

// NewUsers constructs the user repository.
func NewUsers(db *bun.DB, port cache.Port) *Users {
	return &Users{Repository: New(db, port, userHandlers())}
}

// FindByEmailOrUsername returns the user whose email or display name exactly
// matches identifier. Absent users report NotFound.
func (r *Users) FindByEmailOrUsername(ctx context.Context, identifier string, spec *cache.Spec) (*model.User, error) {
	return cachedOne(ctx, r.Repository, spec, func(ctx context.Context) (*model.User, error) {
		user := &model.User{}
		err := r.DB().NewSelect().Model(user).
			Where("email = ?", identifier).
			WhereOr("name = ?", identifier).
			Limit(1).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user %q not found", identifier)
		}
		if err != nil {
			return nil, apperror.Persistence(err, "finding user by identifier")
		}
		return user, nil
	})
}

func userHandlers() Handlers[*model.User] {
	return Handlers[*model.User]{
		NewRecord: func() *model.User { return &model.User{} },
		GetID:     func(u *model.User) int64 { return u.ID },
	}
}
