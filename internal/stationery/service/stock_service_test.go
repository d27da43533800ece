package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
	"github.com/InfoRubix/stationery/internal/stationery/repository"
	"github.com/InfoRubix/stationery/internal/stationery/testutil"
)

func setupStockTest(t *testing.T) (*gorm.DB, *StockService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	return db, NewStockService(repos.Item, nil, zap.NewNop())
}

func TestCeiling(t *testing.T) {
	cases := []struct {
		name string
		item entity.Item
		want int
	}{
		{"limit set", entity.Item{CurrentStock: 50, OrderLimit: 10}, 10},
		{"limit unset uses stock", entity.Item{CurrentStock: 7, OrderLimit: 0}, 7},
		{"limit above stock still wins", entity.Item{CurrentStock: 3, OrderLimit: 20}, 20},
		{"empty item", entity.Item{}, 0},
	}
	for _, tc := range cases {
		if got := Ceiling(&tc.item); got != tc.want {
			t.Errorf("%s: Ceiling = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestDeductClampsAtZero(t *testing.T) {
	db, svc := setupStockTest(t)
	ctx := context.Background()
	item := testutil.SeedItem(t, db, "itm-clamp-001", "Stapler", 3, 0, 0)

	newStock, err := svc.Deduct(ctx, item, 5, "ORDER", "1")
	if err != nil {
		t.Fatalf("Deduct failed: %v", err)
	}
	if newStock != 0 {
		t.Errorf("expected stock clamped to 0, got %d", newStock)
	}

	var stored entity.Item
	if err := db.First(&stored, "id = ?", item.ID).Error; err != nil {
		t.Fatalf("reload item: %v", err)
	}
	if stored.CurrentStock != 0 {
		t.Errorf("persisted stock = %d, want 0", stored.CurrentStock)
	}

	// 扣减留下流水
	var movements []entity.StockMovement
	db.Where("item_id = ?", item.ID).Find(&movements)
	if len(movements) != 1 {
		t.Fatalf("expected 1 movement, got %d", len(movements))
	}
	if movements[0].Type != entity.MovementOrderDeduct || movements[0].Resulting != 0 {
		t.Errorf("unexpected movement: %+v", movements[0])
	}
}

func TestRestoreIsUnconditional(t *testing.T) {
	db, svc := setupStockTest(t)
	ctx := context.Background()
	// OrderLimit=5 不限制返还：返还后库存可以超过上限
	item := testutil.SeedItem(t, db, "itm-restore-001", "Notebook", 4, 5, 0)

	newStock, err := svc.Restore(ctx, item, 100, entity.MovementDeclineRestore, "ORDER", "2")
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if newStock != 104 {
		t.Errorf("expected stock 104, got %d", newStock)
	}

	var stored entity.Item
	db.First(&stored, "id = ?", item.ID)
	if stored.CurrentStock != 104 {
		t.Errorf("persisted stock = %d, want 104", stored.CurrentStock)
	}
}

func TestIndexByNameFirstCreatedWins(t *testing.T) {
	db, svc := setupStockTest(t)
	ctx := context.Background()

	// 后插入的行created_at更早：索引必须按创建时间取，不能依赖插入序
	testutil.SeedItem(t, db, "itm-dup-001", "Marker", 10, 0, 0)
	older := &entity.Item{
		ID:           "itm-dup-002",
		Name:         "Marker",
		Category:     "Stationery",
		CurrentStock: 99,
		CreatedAt:    time.Now().Add(-time.Hour),
		UpdatedAt:    time.Now().Add(-time.Hour),
	}
	if err := db.Create(older).Error; err != nil {
		t.Fatalf("Failed to seed duplicate item: %v", err)
	}

	index, err := svc.IndexByName(ctx)
	if err != nil {
		t.Fatalf("IndexByName failed: %v", err)
	}
	got, ok := index["Marker"]
	if !ok {
		t.Fatal("expected Marker in index")
	}
	if got.ID != older.ID {
		t.Errorf("expected first-created item %s, got %s", older.ID, got.ID)
	}

	// 名称索引和单条查找必须取同一行
	resolved, err := svc.ResolveByName(ctx, "Marker")
	if err != nil {
		t.Fatalf("ResolveByName failed: %v", err)
	}
	if resolved.ID != got.ID {
		t.Errorf("index and ResolveByName disagree: %s vs %s", got.ID, resolved.ID)
	}
}

func TestResolveByNameNotFound(t *testing.T) {
	_, svc := setupStockTest(t)
	if _, err := svc.ResolveByName(context.Background(), "No Such Item"); err != ErrItemNotFound {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}
