package handler

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/InfoRubix/stationery/internal/stationery/entity"
	"github.com/InfoRubix/stationery/internal/stationery/repository"
	"github.com/InfoRubix/stationery/internal/stationery/service"
	"github.com/InfoRubix/stationery/internal/stationery/testutil"
)

func setupOrderHandlerTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	stockSvc := service.NewStockService(repos.Item, nil, zap.NewNop())
	orderSvc := service.NewOrderService(repos.Order, stockSvc, time.UTC, zap.NewNop())
	h := NewOrderHandler(orderSvc)

	// 下单公开，管理接口走JWT
	router.POST("/api/v1/orders", h.Submit)
	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/orders", h.List)
	api.GET("/orders/:id", h.Get)
	api.PUT("/orders/:id/status", h.SetStatus)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestOrderSubmitAndDecline(t *testing.T) {
	env := setupOrderHandlerTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedItem(t, env.DB, "itm-h-001", "Pen", 50, 0, 0)

	// 提交订单
	w := testutil.DoRequest(env.Router, "POST", "/api/v1/orders", map[string]interface{}{
		"email":      "staff@example.com",
		"department": "Finance",
		"items": []map[string]interface{}{
			{"item_name": "Pen", "quantity": 5},
		},
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != entity.OrderStatusPending {
		t.Errorf("Expected PENDING, got %v", data["status"])
	}
	orderID := int(data["id"].(float64))

	// 查询订单需要登录
	w2 := testutil.DoRequest(env.Router, "GET", fmt.Sprintf("/api/v1/orders/%d", orderID), nil, "")
	if w2.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", w2.Code)
	}

	// 拒单返还库存
	w3 := testutil.DoRequest(env.Router, "PUT", fmt.Sprintf("/api/v1/orders/%d/status", orderID),
		map[string]interface{}{"status": entity.OrderStatusDecline}, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w3.Code, w3.Body.String())
	}

	var item entity.Item
	env.DB.First(&item, "id = ?", "itm-h-001")
	if item.CurrentStock != 50 {
		t.Errorf("Expected stock restored to 50, got %d", item.CurrentStock)
	}
}

func TestOrderSubmitOverLimitRejected(t *testing.T) {
	env := setupOrderHandlerTest(t)
	testutil.SeedItem(t, env.DB, "itm-h-002", "Highlighter", 100, 10, 0)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/orders", map[string]interface{}{
		"email":      "staff@example.com",
		"department": "HR",
		"items": []map[string]interface{}{
			{"item_name": "Highlighter", "quantity": 11},
		},
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	if resp["code"].(float64) != 40000 {
		t.Errorf("Expected code 40000, got %v", resp["code"])
	}
}

func TestOrderSetStatusInvalid(t *testing.T) {
	env := setupOrderHandlerTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "PUT", "/api/v1/orders/1/status",
		map[string]interface{}{"status": "SHIPPED"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, "PUT", "/api/v1/orders/abc/status",
		map[string]interface{}{"status": entity.OrderStatusApprove}, token)
	if w2.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for non-numeric ID, got %d", w2.Code)
	}
}

func TestOrderListPagination(t *testing.T) {
	env := setupOrderHandlerTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedItem(t, env.DB, "itm-h-003", "Ruler", 100, 0, 0)

	for i := 0; i < 3; i++ {
		testutil.DoRequest(env.Router, "POST", "/api/v1/orders", map[string]interface{}{
			"email":      fmt.Sprintf("user%d@example.com", i),
			"department": "Ops",
			"items": []map[string]interface{}{
				{"item_name": "Ruler", "quantity": 1},
			},
		}, "")
	}

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/orders?page=1&page_size=2", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 2 {
		t.Errorf("Expected 2 orders on page, got %d", len(items))
	}
	pagination := data["pagination"].(map[string]interface{})
	if pagination["total"].(float64) != 3 {
		t.Errorf("Expected total 3, got %v", pagination["total"])
	}
}
