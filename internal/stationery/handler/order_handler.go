package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/InfoRubix/stationery/internal/stationery/repository"
	"github.com/InfoRubix/stationery/internal/stationery/service"
)

type OrderHandler struct {
	svc *service.OrderService
}

func NewOrderHandler(svc *service.OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Submit POST /api/v1/orders
func (h *OrderHandler) Submit(c *gin.Context) {
	var input service.SubmitOrderRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	order, err := h.svc.Submit(c.Request.Context(), input)
	if err != nil {
		var limitErr *service.LimitExceededError
		switch {
		case errors.As(err, &limitErr):
			BadRequest(c, limitErr.Error())
		case errors.Is(err, service.ErrTooManyItems),
			errors.Is(err, service.ErrItemNotFound),
			errors.Is(err, service.ErrValidation):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "提交订单失败: "+err.Error())
		}
		return
	}
	Created(c, order)
}

// List GET /api/v1/orders
func (h *OrderHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.OrderListParams{
		Status:     c.Query("status"),
		Email:      c.Query("email"),
		Department: c.Query("department"),
		Page:       page,
		Size:       pageSize,
	}

	orders, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, "获取订单列表失败: "+err.Error())
		return
	}
	Success(c, gin.H{
		"items":      orders,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// Get GET /api/v1/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := parseOrderID(c)
	if err != nil {
		BadRequest(c, "无效的订单ID")
		return
	}

	order, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		NotFound(c, "订单不存在")
		return
	}
	Success(c, order)
}

// SetStatus PUT /api/v1/orders/:id/status
func (h *OrderHandler) SetStatus(c *gin.Context) {
	id, err := parseOrderID(c)
	if err != nil {
		BadRequest(c, "无效的订单ID")
		return
	}

	var input service.SetStatusRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	order, err := h.svc.SetStatus(c.Request.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrOrderNotFound):
			NotFound(c, "订单不存在")
		case errors.Is(err, service.ErrInvalidStatus),
			errors.Is(err, service.ErrTooManyItems):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "更新订单状态失败: "+err.Error())
		}
		return
	}
	Success(c, order)
}

func parseOrderID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	return uint(id), err
}
