package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/uptrace/bun"

	"github.com/goliatone/go-crm-store/apperror"
	"github.com/goliatone/go-crm-store/cache"
	"github.com/goliatone/go-crm-store/model"
	"github.com/goliatone/go-crm-store/pkg/testsupport"
	"github.com/goliatone/go-crm-store/repository"
)

type crmEnv struct {
	db      *bun.DB
	cache   *testsupport.RecordingCache
	queries *testsupport.QueryCounter

	users    *repository.Users
	products *repository.Products
	bills    *repository.Bills
	sells    *repository.Sells
}

func newCRMEnv(t *testing.T) *crmEnv {
	t.Helper()
	db := testsupport.NewDB(t)
	counter := &testsupport.QueryCounter{}
	db.AddQueryHook(counter)
	rc := testsupport.NewRecordingCache()
	return &crmEnv{
		db:       db,
		cache:    rc,
		queries:  counter,
		users:    repository.NewUsers(db, rc),
		products: repository.NewProducts(db, rc),
		bills:    repository.NewBills(db, rc),
		sells:    repository.NewSells(db, rc),
	}
}

func (e *crmEnv) seedUser(t *testing.T) *model.User {
	t.Helper()
	user, err := e.users.Create(context.Background(), &model.User{
		Email:    "jane@example.com",
		Name:     "jane",
		Password: "ciphertext",
		IsActive: true,
	}, nil)
	if err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func (e *crmEnv) seedBill(t *testing.T, userID int64) *model.Bill {
	t.Helper()
	bill, err := e.bills.Create(context.Background(), &model.Bill{
		UserID:      userID,
		Date:        time.Date(2024, 6, 1, 12, 30, 0, 0, time.UTC),
		TotalAmount: money("139.93"),
	}, nil)
	if err != nil {
		t.Fatalf("seeding bill: %v", err)
	}
	return bill
}

func TestUsersFindByEmailOrUsername(t *testing.T) {
	env := newCRMEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)

	byEmail, err := env.users.FindByEmailOrUsername(ctx, "jane@example.com", nil)
	if err != nil {
		t.Fatalf("FindByEmailOrUsername(email) error = %v", err)
	}
	if byEmail.ID != user.ID {
		t.Errorf("lookup by email returned id %d, want %d", byEmail.ID, user.ID)
	}

	byName, err := env.users.FindByEmailOrUsername(ctx, "jane", nil)
	if err != nil {
		t.Fatalf("FindByEmailOrUsername(name) error = %v", err)
	}
	if byName.ID != user.ID {
		t.Errorf("lookup by name returned id %d, want %d", byName.ID, user.ID)
	}

	if _, err := env.users.FindByEmailOrUsername(ctx, "nobody", nil); !apperror.IsNotFound(err) {
		t.Errorf("lookup of absent user error = %v, want not found", err)
	}
}

func TestUsersFinderCacheHitSkipsStore(t *testing.T) {
	env := newCRMEnv(t)
	ctx := context.Background()
	env.seedUser(t)

	spec := cache.NewSpec(time.Minute, "user", "login", "jane")
	if _, err := env.users.FindByEmailOrUsername(ctx, "jane", spec); err != nil {
		t.Fatalf("FindByEmailOrUsername() error = %v", err)
	}

	env.queries.Reset()
	got, err := env.users.FindByEmailOrUsername(ctx, "jane", spec)
	if err != nil {
		t.Fatalf("FindByEmailOrUsername() error = %v", err)
	}
	if env.queries.Count() != 0 {
		t.Errorf("cache hit issued %d store queries, want 0", env.queries.Count())
	}
	if got.Email != "jane@example.com" {
		t.Errorf("cached lookup = %+v", got)
	}
}

func TestProductsFindByName(t *testing.T) {
	env := newCRMEnv(t)
	ctx := context.Background()

	if _, err := env.products.Create(ctx, widget(), nil); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	product, err := env.products.FindByName(ctx, "Widget", nil)
	if err != nil {
		t.Fatalf("FindByName() error = %v", err)
	}
	if !product.Price.Equal(money("19.99")) {
		t.Errorf("FindByName() price = %s", product.Price)
	}

	if _, err := env.products.FindByName(ctx, "Vaporware", nil); !apperror.IsNotFound(err) {
		t.Errorf("FindByName() of absent product error = %v, want not found", err)
	}
}

func TestBillsFindByUser(t *testing.T) {
	env := newCRMEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	first := env.seedBill(t, user.ID)
	second := env.seedBill(t, user.ID)

	bills, err := env.bills.FindByUser(ctx, user.ID, nil)
	if err != nil {
		t.Fatalf("FindByUser() error = %v", err)
	}
	if len(bills) != 2 {
		t.Fatalf("FindByUser() len = %d, want 2", len(bills))
	}
	if bills[0].ID != first.ID || bills[1].ID != second.ID {
		t.Errorf("FindByUser() order = [%d %d], want [%d %d]", bills[0].ID, bills[1].ID, first.ID, second.ID)
	}
}

// A user with no bills is reported as an absence, unlike a bill with no
// sells.
func TestBillsFindByUserEmptyIsNotFound(t *testing.T) {
	env := newCRMEnv(t)
	user := env.seedUser(t)

	_, err := env.bills.FindByUser(context.Background(), user.ID, nil)
	if !apperror.IsNotFound(err) {
		t.Errorf("FindByUser() with no bills error = %v, want not found", err)
	}
}

func TestSellsFindByBill(t *testing.T) {
	env := newCRMEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	bill := env.seedBill(t, user.ID)
	product, err := env.products.Create(ctx, widget(), nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for i := int64(1); i <= 2; i++ {
		_, err := env.sells.Create(ctx, &model.Sell{
			BillID:    bill.ID,
			ProductID: product.ID,
			Quantity:  i,
			SalePrice: money("19.99"),
		}, nil)
		if err != nil {
			t.Fatalf("Create() sell error = %v", err)
		}
	}

	sells, err := env.sells.FindByBill(ctx, bill.ID, nil)
	if err != nil {
		t.Fatalf("FindByBill() error = %v", err)
	}
	if len(sells) != 2 {
		t.Errorf("FindByBill() len = %d, want 2", len(sells))
	}
}

func TestSellsFindByBillEmptyIsEmptyList(t *testing.T) {
	env := newCRMEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	bill := env.seedBill(t, user.ID)

	spec := cache.NewSpec(time.Minute, "sells", "bill", bill.ID)
	sells, err := env.sells.FindByBill(ctx, bill.ID, spec)
	if err != nil {
		t.Fatalf("FindByBill() error = %v", err)
	}
	if len(sells) != 0 {
		t.Errorf("FindByBill() len = %d, want 0", len(sells))
	}

	// The empty result is itself cacheable.
	if payload, ok := env.cache.Payload(spec.Key); !ok || payload != "[]" {
		t.Errorf("cached empty list payload = %q, %v", payload, ok)
	}
	env.queries.Reset()
	if _, err := env.sells.FindByBill(ctx, bill.ID, spec); err != nil {
		t.Fatalf("FindByBill() from cache error = %v", err)
	}
	if env.queries.Count() != 0 {
		t.Errorf("cache hit issued %d store queries, want 0", env.queries.Count())
	}
}

func TestDeletingBillCascadesToSells(t *testing.T) {
	env := newCRMEnv(t)
	ctx := context.Background()
	user := env.seedUser(t)
	bill := env.seedBill(t, user.ID)
	product, err := env.products.Create(ctx, widget(), nil)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := env.sells.Create(ctx, &model.Sell{
		BillID:    bill.ID,
		ProductID: product.ID,
		Quantity:  1,
		SalePrice: money("19.99"),
	}, nil); err != nil {
		t.Fatalf("Create() sell error = %v", err)
	}

	if _, err := env.bills.Delete(ctx, bill.ID, nil); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	sells, err := env.sells.FindByBill(ctx, bill.ID, nil)
	if err != nil {
		t.Fatalf("FindByBill() after cascade error = %v", err)
	}
	if len(sells) != 0 {
		t.Errorf("sells survived the bill delete: %d left", len(sells))
	}
}

func TestFixtureSeededCatalog(t *testing.T) {
	env := newCRMEnv(t)
	ctx := context.Background()

	var products []*model.Product
	testsupport.LoadFixtureJSON(t, testsupport.FixturePath("products.json"), &products)
	if len(products) == 0 {
		t.Fatal("fixture is empty")
	}
	for _, p := range products {
		if _, err := env.products.Create(ctx, p, nil); err != nil {
			t.Fatalf("Create(%s) error = %v", p.Name, err)
		}
	}

	all, err := env.products.FindAll(ctx, nil)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if len(all) != len(products) {
		t.Errorf("FindAll() len = %d, want %d", len(all), len(products))
	}

	gadget, err := env.products.FindByName(ctx, "Gadget", nil)
	if err != nil {
		t.Fatalf("FindByName() error = %v", err)
	}
	if !gadget.Price.Equal(money("99.95")) {
		t.Errorf("Gadget price = %s, want 99.95", gadget.Price)
	}
}
