package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"canteen/configs"
	"canteen/entity"
	"canteen/pkg/apperr"
	"canteen/pkg/locker"
	"canteen/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := configs.SetupDatabase(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedMenu inserts two items: Fried Rice at 5.00 and Noodle Soup at 3.50,
// plus an unavailable special.
func seedMenu(t *testing.T, db *gorm.DB) []entity.MenuItem {
	t.Helper()

	items := []entity.MenuItem{
		{Name: "Fried Rice", Price: decimal.RequireFromString("5.00"), Available: true},
		{Name: "Noodle Soup", Price: decimal.RequireFromString("3.50"), Available: true},
		{Name: "Old Special", Price: decimal.RequireFromString("7.00"), Available: false},
	}
	if err := db.Create(&items).Error; err != nil {
		t.Fatalf("seed menu: %v", err)
	}
	return items
}

func newCartService(t *testing.T) (*CartService, *gorm.DB, []entity.MenuItem) {
	t.Helper()

	db := openTestDB(t)
	menu := seedMenu(t, db)
	svc := NewCartService(db, repository.NewCartRepository(db), repository.NewMenuRepository(db), locker.New(), 5*time.Second)
	return svc, db, menu
}

func TestAddAccumulatesQuantityKeepsFirstPrice(t *testing.T) {
	svc, db, menu := newCartService(t)
	ctx := context.Background()
	rice := menu[0]

	line, merged, err := svc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	if merged {
		t.Fatal("first add reported merge")
	}
	if !line.UnitPrice.Equal(rice.Price) {
		t.Fatalf("line price = %s, want menu price %s", line.UnitPrice, rice.Price)
	}

	// A menu price change must not rewrite the stored line on merge.
	if err := db.Model(&entity.MenuItem{}).Where("id = ?", rice.ID).
		Update("price", decimal.RequireFromString("9.99")).Error; err != nil {
		t.Fatal(err)
	}

	line, merged, err = svc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("second add: %v", err)
	}
	if !merged {
		t.Fatal("second add did not merge")
	}
	if line.Quantity != 5 {
		t.Fatalf("quantity = %d, want 5", line.Quantity)
	}
	if !line.UnitPrice.Equal(decimal.RequireFromString("5.00")) {
		t.Fatalf("merge rewrote price to %s", line.UnitPrice)
	}
}

func TestAddUnknownOrUnavailableMenu(t *testing.T) {
	svc, _, menu := newCartService(t)
	ctx := context.Background()

	if _, _, err := svc.Add(ctx, 1, &AddToCartIn{MenuItemID: 9999, Quantity: 1}); !errors.Is(err, apperr.ErrMenuNotFound) {
		t.Fatalf("unknown menu: got %v, want ErrMenuNotFound", err)
	}

	unavailable := menu[2]
	if _, _, err := svc.Add(ctx, 1, &AddToCartIn{MenuItemID: unavailable.ID, Quantity: 1}); !errors.Is(err, apperr.ErrMenuNotFound) {
		t.Fatalf("unavailable menu: got %v, want ErrMenuNotFound", err)
	}
}

func TestAddRejectsNonPositiveQuantity(t *testing.T) {
	svc, _, menu := newCartService(t)

	for _, qty := range []int{0, -3} {
		if _, _, err := svc.Add(context.Background(), 1, &AddToCartIn{MenuItemID: menu[0].ID, Quantity: qty}); !errors.Is(err, apperr.ErrInvalidQuantity) {
			t.Fatalf("qty %d: got %v, want ErrInvalidQuantity", qty, err)
		}
	}
}

func TestUpdateQuantity(t *testing.T) {
	svc, _, menu := newCartService(t)
	ctx := context.Background()
	rice := menu[0]

	// Absent line: rejected, cart untouched.
	if _, err := svc.UpdateQuantity(ctx, 1, rice.ID, 3); !errors.Is(err, apperr.ErrLineNotFound) {
		t.Fatalf("got %v, want ErrLineNotFound", err)
	}
	lines, err := svc.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 0 {
		t.Fatalf("failed update mutated the cart: %+v", lines)
	}

	if _, _, err := svc.Add(ctx, 1, &AddToCartIn{MenuItemID: rice.ID, Quantity: 2}); err != nil {
		t.Fatal(err)
	}

	// Absolute set, not a delta.
	line, err := svc.UpdateQuantity(ctx, 1, rice.ID, 7)
	if err != nil {
		t.Fatal(err)
	}
	if line.Quantity != 7 {
		t.Fatalf("quantity = %d, want 7", line.Quantity)
	}

	// Zero/negative never deletes; it is rejected and the line survives.
	if _, err := svc.UpdateQuantity(ctx, 1, rice.ID, 0); !errors.Is(err, apperr.ErrInvalidQuantity) {
		t.Fatalf("got %v, want ErrInvalidQuantity", err)
	}
	lines, err = svc.List(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 || lines[0].Quantity != 7 {
		t.Fatalf("rejected update changed the line: %+v", lines)
	}
}

func TestRemoveScopedToCaller(t *testing.T) {
	svc, _, menu := newCartService(t)
	ctx := context.Background()

	line, _, err := svc.Add(ctx, 1, &AddToCartIn{MenuItemID: menu[0].ID, Quantity: 1})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Remove(ctx, 2, line.ID); !errors.Is(err, apperr.ErrLineNotFound) {
		t.Fatalf("foreign remove: got %v, want ErrLineNotFound", err)
	}
	if err := svc.Remove(ctx, 1, line.ID); err != nil {
		t.Fatalf("owner remove: %v", err)
	}
	if err := svc.Remove(ctx, 1, line.ID); !errors.Is(err, apperr.ErrLineNotFound) {
		t.Fatalf("second remove: got %v, want ErrLineNotFound", err)
	}
}

func TestConcurrentAddsAllCount(t *testing.T) {
	svc, _, menu := newCartService(t)
	rice := menu[0]

	const n = 20
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			_, _, err := svc.Add(context.Background(), 1, &AddToCartIn{MenuItemID: rice.ID, Quantity: 1})
			return err
		})
	}
	if err := g.Wait(); err != nil {
		t.Fatalf("concurrent add: %v", err)
	}

	lines, err := svc.List(context.Background(), 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(lines) != 1 {
		t.Fatalf("expected one merged line, got %d", len(lines))
	}
	if lines[0].Quantity != n {
		t.Fatalf("quantity = %d, want %d (lost adds)", lines[0].Quantity, n)
	}
}
