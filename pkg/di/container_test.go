package di_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/goliatone/go-crm-store/apperror"
	"github.com/goliatone/go-crm-store/cache"
	"github.com/goliatone/go-crm-store/model"
	"github.com/goliatone/go-crm-store/pkg/di"
	"github.com/goliatone/go-crm-store/pkg/testsupport"
)

func newContainer(t *testing.T) *di.Container {
	t.Helper()
	container, err := di.NewContainerWithDefaults(testsupport.NewDB(t))
	if err != nil {
		t.Fatalf("NewContainerWithDefaults() error = %v", err)
	}
	return container
}

func TestContainerWiresAllServices(t *testing.T) {
	container := newContainer(t)

	if container.Users() == nil || container.Products() == nil ||
		container.Bills() == nil || container.Sells() == nil {
		t.Fatal("container left a service unwired")
	}
	if container.DB() == nil || container.Cache() == nil || container.Logger() == nil {
		t.Fatal("container left a shared dependency unwired")
	}
}

// End-to-end pass through service, repository, codec, and the in-process
// cache backend.
func TestContainerEndToEnd(t *testing.T) {
	container := newContainer(t)
	ctx := context.Background()
	products := container.Products()

	price, _ := decimal.NewFromString("19.99")
	created, err := products.Save(ctx, &model.Product{
		Name:              "Widget",
		Price:             price,
		AvailableQuantity: 100,
	}, nil)
	if err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if created.ID == 0 {
		t.Fatal("Save() should assign an id")
	}

	spec := cache.NewSpec(time.Minute, "product", "name", "Widget")
	first, err := products.FindByName(ctx, "Widget", spec)
	if err != nil {
		t.Fatalf("FindByName() error = %v", err)
	}
	second, err := products.FindByName(ctx, "Widget", spec)
	if err != nil {
		t.Fatalf("FindByName() from cache error = %v", err)
	}
	if first.ID != second.ID || !first.Price.Equal(second.Price) {
		t.Errorf("cached read diverged: %+v vs %+v", first, second)
	}

	newPrice, _ := decimal.NewFromString("24.99")
	updated, err := products.Update(ctx, created.ID, map[string]any{"price": newPrice}, nil)
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if !updated.Price.Equal(newPrice) {
		t.Errorf("Update() price = %s, want %s", updated.Price, newPrice)
	}

	if ok, err := products.Delete(ctx, created.ID, nil); err != nil || !ok {
		t.Fatalf("Delete() = (%v, %v)", ok, err)
	}
	if _, err := products.FindByID(ctx, created.ID, nil); !apperror.IsNotFound(err) {
		t.Errorf("FindByID() after delete error = %v, want not found", err)
	}
}

func TestContainerFinderAsymmetry(t *testing.T) {
	container := newContainer(t)
	ctx := context.Background()

	user, err := container.Users().Save(ctx, &model.User{
		Email:    "jane@example.com",
		Name:     "jane",
		Password: "ciphertext",
		IsActive: true,
	}, nil)
	if err != nil {
		t.Fatalf("Save() user error = %v", err)
	}

	if _, err := container.Bills().FindByUser(ctx, user.ID, nil); !apperror.IsNotFound(err) {
		t.Errorf("FindByUser() with no bills error = %v, want not found", err)
	}

	total, _ := decimal.NewFromString("10.00")
	bill, err := container.Bills().Save(ctx, &model.Bill{
		UserID:      user.ID,
		Date:        time.Now().UTC(),
		TotalAmount: total,
	}, nil)
	if err != nil {
		t.Fatalf("Save() bill error = %v", err)
	}

	sells, err := container.Sells().FindByBill(ctx, bill.ID, nil)
	if err != nil {
		t.Fatalf("FindByBill() error = %v", err)
	}
	if len(sells) != 0 {
		t.Errorf("FindByBill() with no sells len = %d, want 0", len(sells))
	}
}

func TestNewSQLiteDB(t *testing.T) {
	db, err := di.NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("NewSQLiteDB() error = %v", err)
	}
	defer db.Close()

	if err := db.PingContext(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}
