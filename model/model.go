// Package model holds the CRM domain records. They are plain data carriers
// with no behavior beyond field access and validation; the persistence layer
// owns their lifecycle.
package model

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// User is an account holder. Email is unique; the password field carries
// ciphertext produced outside this module.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u" json:"-"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Email    string `bun:"email,notnull,unique" json:"email"`
	Name     string `bun:"name,notnull" json:"name"`
	Password string `bun:"password,notnull" json:"password"`
	IsActive bool   `bun:"is_active,notnull" json:"is_active"`
}

// Validate checks the user's field invariants.
func (u *User) Validate() error {
	return validation.ValidateStruct(u,
		validation.Field(&u.Email, validation.Required, is.Email),
		validation.Field(&u.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&u.Password, validation.Required),
	)
}

// Product is a sellable item. Name is unique; price and available quantity
// are never negative.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p" json:"-"`

	ID                int64           `bun:"id,pk,autoincrement" json:"id"`
	Name              string          `bun:"name,notnull,unique" json:"name"`
	Description       string          `bun:"description" json:"description"`
	Price             decimal.Decimal `bun:"price,notnull" json:"price"`
	AvailableQuantity int64           `bun:"available_quantity,notnull" json:"available_quantity"`
}

// Validate checks the product's field invariants.
func (p *Product) Validate() error {
	return validation.ValidateStruct(p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&p.Price, validation.By(nonNegativeMoney)),
		validation.Field(&p.AvailableQuantity, validation.Min(0)),
	)
}

// Bill groups a user's sales under one total. Deleting a bill cascades to
// its sells; the bill exclusively owns their lifecycle.
type Bill struct {
	bun.BaseModel `bun:"table:bills,alias:b" json:"-"`

	ID          int64           `bun:"id,pk,autoincrement" json:"id"`
	UserID      int64           `bun:"user_id,notnull" json:"user_id"`
	Date        time.Time       `bun:"date,notnull" json:"date"`
	TotalAmount decimal.Decimal `bun:"total_amount,notnull" json:"total_amount"`
}

// Validate checks the bill's field invariants.
func (b *Bill) Validate() error {
	return validation.ValidateStruct(b,
		validation.Field(&b.UserID, validation.Required, validation.Min(int64(1))),
		validation.Field(&b.TotalAmount, validation.By(nonNegativeMoney)),
	)
}

// Sell is one line of a bill: a product, a quantity, and the price at the
// time of sale.
type Sell struct {
	bun.BaseModel `bun:"table:sells,alias:s" json:"-"`

	ID        int64           `bun:"id,pk,autoincrement" json:"id"`
	BillID    int64           `bun:"bill_id,notnull" json:"bill_id"`
	ProductID int64           `bun:"product_id,notnull" json:"product_id"`
	Quantity  int64           `bun:"quantity,notnull" json:"quantity"`
	SalePrice decimal.Decimal `bun:"sale_price,notnull" json:"sale_price"`
}

// Validate checks the sell's field invariants.
func (s *Sell) Validate() error {
	return validation.ValidateStruct(s,
		validation.Field(&s.BillID, validation.Required, validation.Min(int64(1))),
		validation.Field(&s.ProductID, validation.Required, validation.Min(int64(1))),
		validation.Field(&s.Quantity, validation.Required, validation.Min(int64(1))),
		validation.Field(&s.SalePrice, validation.By(positiveMoney)),
	)
}

func nonNegativeMoney(value any) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return validation.NewError("validation_money", "must be a decimal amount")
	}
	if d.IsNegative() {
		return validation.NewError("validation_money_negative", "must not be negative")
	}
	return nil
}

func positiveMoney(value any) error {
	d, ok := value.(decimal.Decimal)
	if !ok {
		return validation.NewError("validation_money", "must be a decimal amount")
	}
	if !d.IsPositive() {
		return validation.NewError("validation_money_positive", "must be greater than zero")
	}
	return nil
}
