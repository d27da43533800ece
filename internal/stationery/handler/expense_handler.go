package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/InfoRubix/stationery/internal/stationery/service"
)

type ExpenseHandler struct {
	svc *service.ExpenseService
}

func NewExpenseHandler(svc *service.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{svc: svc}
}

// Add POST /api/v1/expenses
func (h *ExpenseHandler) Add(c *gin.Context) {
	var input service.AddExpenseRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	reqs, err := h.svc.Add(c.Request.Context(), input)
	if err != nil {
		InternalError(c, "创建采购申请失败: "+err.Error())
		return
	}
	Created(c, gin.H{"items": reqs})
}

// List GET /api/v1/expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	reqs, total, err := h.svc.List(c.Request.Context(), c.Query("status"), page, pageSize)
	if err != nil {
		InternalError(c, "获取采购申请列表失败: "+err.Error())
		return
	}
	Success(c, gin.H{
		"items":      reqs,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// UpdateStatus PUT /api/v1/expenses/:id/status
func (h *ExpenseHandler) UpdateStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	req, err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExpenseNotFound):
			NotFound(c, "采购申请不存在")
		case errors.Is(err, service.ErrInvalidStatus):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "更新采购申请状态失败: "+err.Error())
		}
		return
	}
	Success(c, req)
}

// ListLog GET /api/v1/expenses/log
func (h *ExpenseHandler) ListLog(c *gin.Context) {
	page, pageSize := GetPagination(c)
	logs, total, err := h.svc.ListLog(c.Request.Context(), page, pageSize)
	if err != nil {
		InternalError(c, "获取采购台账失败: "+err.Error())
		return
	}
	Success(c, gin.H{
		"items":      logs,
		"pagination": NewPagination(page, pageSize, total),
	})
}
