package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
	"github.com/InfoRubix/stationery/internal/stationery/repository"
	"github.com/InfoRubix/stationery/internal/stationery/testutil"
)

func setupOrderTest(t *testing.T) (*gorm.DB, *OrderService) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)
	stockSvc := NewStockService(repos.Item, nil, zap.NewNop())
	return db, NewOrderService(repos.Order, stockSvc, time.UTC, zap.NewNop())
}

func submitReq(lines ...OrderLine) SubmitOrderRequest {
	return SubmitOrderRequest{
		Email:      "staff@example.com",
		Department: "Finance",
		Items:      lines,
	}
}

func reloadStock(t *testing.T, db *gorm.DB, id string) int {
	t.Helper()
	var item entity.Item
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		t.Fatalf("reload item %s: %v", id, err)
	}
	return item.CurrentStock
}

func TestSubmitOrderDeductsStock(t *testing.T) {
	db, svc := setupOrderTest(t)
	ctx := context.Background()
	testutil.SeedItem(t, db, "itm-ord-001", "Pen", 50, 0, 0)
	testutil.SeedItem(t, db, "itm-ord-002", "Ruler", 20, 0, 0)

	order, err := svc.Submit(ctx, submitReq(
		OrderLine{ItemName: "Pen", Quantity: 5},
		OrderLine{ItemName: "Ruler", Quantity: 2},
	))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if order.ID == 0 {
		t.Error("expected assigned order ID")
	}
	if order.Status != entity.OrderStatusPending {
		t.Errorf("expected PENDING, got %s", order.Status)
	}
	if _, err := time.Parse("02/01/2006 15:04:05", order.Timestamp); err != nil {
		t.Errorf("timestamp %q not in DD/MM/YYYY HH:mm:ss: %v", order.Timestamp, err)
	}

	if got := reloadStock(t, db, "itm-ord-001"); got != 45 {
		t.Errorf("Pen stock = %d, want 45", got)
	}
	if got := reloadStock(t, db, "itm-ord-002"); got != 18 {
		t.Errorf("Ruler stock = %d, want 18", got)
	}

	// 行项按序落库
	loaded, err := svc.Get(ctx, order.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if len(loaded.Items) != 2 || loaded.Items[0].Seq != 1 || loaded.Items[1].Seq != 2 {
		t.Errorf("unexpected order items: %+v", loaded.Items)
	}
}

func TestSubmitOrderRejectsOverLimit(t *testing.T) {
	db, svc := setupOrderTest(t)
	ctx := context.Background()
	testutil.SeedItem(t, db, "itm-lim-001", "Highlighter", 100, 10, 0)

	_, err := svc.Submit(ctx, submitReq(OrderLine{ItemName: "Highlighter", Quantity: 11}))
	var limitErr *LimitExceededError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected LimitExceededError, got %v", err)
	}
	if limitErr.Max != 10 || limitErr.Requested != 11 {
		t.Errorf("unexpected limit error: %+v", limitErr)
	}
	if got := reloadStock(t, db, "itm-lim-001"); got != 100 {
		t.Errorf("stock changed on rejected order: %d", got)
	}
}

func TestSubmitOrderNoLimitUsesCurrentStock(t *testing.T) {
	db, svc := setupOrderTest(t)
	ctx := context.Background()
	testutil.SeedItem(t, db, "itm-lim-002", "Glue", 3, 0, 0)

	if _, err := svc.Submit(ctx, submitReq(OrderLine{ItemName: "Glue", Quantity: 4})); err == nil {
		t.Fatal("expected rejection when quantity exceeds current stock")
	}
	// 正好等于库存可以通过
	if _, err := svc.Submit(ctx, submitReq(OrderLine{ItemName: "Glue", Quantity: 3})); err != nil {
		t.Fatalf("expected order at stock ceiling to pass: %v", err)
	}
	if got := reloadStock(t, db, "itm-lim-002"); got != 0 {
		t.Errorf("stock = %d, want 0", got)
	}
}

func TestSubmitOrderAllOrNothing(t *testing.T) {
	db, svc := setupOrderTest(t)
	ctx := context.Background()
	testutil.SeedItem(t, db, "itm-aon-001", "Tape", 30, 0, 0)

	_, err := svc.Submit(ctx, submitReq(
		OrderLine{ItemName: "Tape", Quantity: 5},
		OrderLine{ItemName: "Unicorn", Quantity: 1},
	))
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}

	// 第一行也不能扣
	if got := reloadStock(t, db, "itm-aon-001"); got != 30 {
		t.Errorf("valid line deducted despite whole-order rejection: %d", got)
	}
	var count int64
	db.Model(&entity.Order{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no order rows, got %d", count)
	}
}

func TestSubmitOrderLineCount(t *testing.T) {
	db, svc := setupOrderTest(t)
	ctx := context.Background()

	var lines []OrderLine
	for i := 0; i < entity.MaxOrderItems+1; i++ {
		name := fmt.Sprintf("Item %02d", i)
		testutil.SeedItem(t, db, fmt.Sprintf("itm-cnt-%03d", i), name, 10, 0, 0)
		lines = append(lines, OrderLine{ItemName: name, Quantity: 1})
	}

	if _, err := svc.Submit(ctx, submitReq(lines...)); !errors.Is(err, ErrTooManyItems) {
		t.Fatalf("expected ErrTooManyItems for 11 lines, got %v", err)
	}

	order, err := svc.Submit(ctx, submitReq(lines[:entity.MaxOrderItems]...))
	if err != nil {
		t.Fatalf("10 lines should be accepted: %v", err)
	}
	if len(order.Items) != entity.MaxOrderItems {
		t.Errorf("expected %d items, got %d", entity.MaxOrderItems, len(order.Items))
	}
}

func TestDeclineRestoresStockOnce(t *testing.T) {
	db, svc := setupOrderTest(t)
	ctx := context.Background()
	testutil.SeedItem(t, db, "itm-dec-001", "Scissors", 20, 0, 0)

	order, err := svc.Submit(ctx, submitReq(OrderLine{ItemName: "Scissors", Quantity: 6}))
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if got := reloadStock(t, db, "itm-dec-001"); got != 14 {
		t.Fatalf("stock after submit = %d, want 14", got)
	}

	if _, err := svc.SetStatus(ctx, order.ID, SetStatusRequest{Status: entity.OrderStatusDecline}); err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if got := reloadStock(t, db, "itm-dec-001"); got != 20 {
		t.Errorf("stock after decline = %d, want 20", got)
	}

	// 重复DECLINE不得二次返还
	if _, err := svc.SetStatus(ctx, order.ID, SetStatusRequest{Status: entity.OrderStatusDecline}); err != nil {
		t.Fatalf("second decline failed: %v", err)
	}
	if got := reloadStock(t, db, "itm-dec-001"); got != 20 {
		t.Errorf("stock after double decline = %d, want 20", got)
	}
}

func TestApproveDoesNotRestore(t *testing.T) {
	db, svc := setupOrderTest(t)
	ctx := context.Background()
	testutil.SeedItem(t, db, "itm-app-001", "Envelope", 40, 0, 0)

	order, _ := svc.Submit(ctx, submitReq(OrderLine{ItemName: "Envelope", Quantity: 10}))

	updated, err := svc.SetStatus(ctx, order.ID, SetStatusRequest{Status: entity.OrderStatusApprove})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if updated.Status != entity.OrderStatusApprove {
		t.Errorf("status = %s, want APPROVE", updated.Status)
	}
	if got := reloadStock(t, db, "itm-app-001"); got != 30 {
		t.Errorf("stock = %d, want 30 (approve keeps the deduction)", got)
	}
}

func TestApplyDoesNotRestore(t *testing.T) {
	db, svc := setupOrderTest(t)
	ctx := context.Background()
	testutil.SeedItem(t, db, "itm-apl-001", "Binder", 25, 0, 0)

	order, _ := svc.Submit(ctx, submitReq(OrderLine{ItemName: "Binder", Quantity: 6}))

	updated, err := svc.SetStatus(ctx, order.ID, SetStatusRequest{Status: entity.OrderStatusApply})
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if updated.Status != entity.OrderStatusApply {
		t.Errorf("status = %s, want APPLY", updated.Status)
	}
	if got := reloadStock(t, db, "itm-apl-001"); got != 19 {
		t.Errorf("stock = %d, want 19 (apply keeps the deduction)", got)
	}
}

func TestSetStatusExplicitRestoration(t *testing.T) {
	db, svc := setupOrderTest(t)
	ctx := context.Background()
	testutil.SeedItem(t, db, "itm-edit-001", "Folder", 50, 0, 0)

	order, _ := svc.Submit(ctx, submitReq(OrderLine{ItemName: "Folder", Quantity: 8}))

	// 管理员把数量从8下调到5，差额3显式返还
	_, err := svc.SetStatus(ctx, order.ID, SetStatusRequest{
		Status:           entity.OrderStatusPending,
		Items:            []OrderLine{{ItemName: "Folder", Quantity: 5}},
		StockRestoration: []RestorationLine{{ItemName: "Folder", Quantity: 3}},
	})
	if err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	if got := reloadStock(t, db, "itm-edit-001"); got != 45 {
		t.Errorf("stock = %d, want 45", got)
	}

	loaded, _ := svc.Get(ctx, order.ID)
	if len(loaded.Items) != 1 || loaded.Items[0].Quantity != 5 {
		t.Errorf("items not rewritten: %+v", loaded.Items)
	}
}

func TestSetStatusValidation(t *testing.T) {
	_, svc := setupOrderTest(t)
	ctx := context.Background()

	if _, err := svc.SetStatus(ctx, 1, SetStatusRequest{Status: "SHIPPED"}); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
	if _, err := svc.SetStatus(ctx, 9999, SetStatusRequest{Status: entity.OrderStatusApprove}); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}
