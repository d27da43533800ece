package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/InfoRubix/stationery/internal/stationery/repository"
	"github.com/InfoRubix/stationery/internal/stationery/service"
)

type ItemHandler struct {
	svc      *service.ItemService
	stockSvc *service.StockService
}

func NewItemHandler(svc *service.ItemService, stockSvc *service.StockService) *ItemHandler {
	return &ItemHandler{svc: svc, stockSvc: stockSvc}
}

// List GET /api/v1/items
func (h *ItemHandler) List(c *gin.Context) {
	page, pageSize := GetPagination(c)
	params := repository.ItemListParams{
		Category: c.Query("category"),
		Keyword:  c.Query("keyword"),
		LowStock: c.Query("low_stock") == "true",
		Page:     page,
		Size:     pageSize,
	}

	items, total, err := h.svc.List(c.Request.Context(), params)
	if err != nil {
		InternalError(c, "获取品目列表失败: "+err.Error())
		return
	}

	Success(c, gin.H{
		"items":      items,
		"pagination": NewPagination(page, pageSize, total),
	})
}

// ListAll GET /api/v1/items/all
func (h *ItemHandler) ListAll(c *gin.Context) {
	items, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		InternalError(c, "获取品目列表失败: "+err.Error())
		return
	}
	Success(c, gin.H{"items": items})
}

// Get GET /api/v1/items/:id
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		NotFound(c, "品目不存在")
		return
	}
	Success(c, item)
}

// Create POST /api/v1/items
func (h *ItemHandler) Create(c *gin.Context) {
	var input service.CreateItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	item, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		InternalError(c, "创建品目失败: "+err.Error())
		return
	}
	Created(c, item)
}

// Update PUT /api/v1/items/:id
func (h *ItemHandler) Update(c *gin.Context) {
	var input service.UpdateItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	item, err := h.svc.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			NotFound(c, "品目不存在")
			return
		}
		InternalError(c, "更新品目失败: "+err.Error())
		return
	}
	Success(c, item)
}

// Restock POST /api/v1/items/:id/restock
func (h *ItemHandler) Restock(c *gin.Context) {
	var input struct {
		Quantity int `json:"quantity" binding:"required,gt=0"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	item, err := h.svc.Restock(c.Request.Context(), c.Param("id"), input.Quantity, GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			NotFound(c, "品目不存在")
			return
		}
		InternalError(c, "补货失败: "+err.Error())
		return
	}
	Success(c, item)
}

// Delete DELETE /api/v1/items/:id
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			NotFound(c, "品目不存在")
			return
		}
		InternalError(c, "删除品目失败: "+err.Error())
		return
	}
	Success(c, gin.H{"deleted": true})
}

// GetPrice GET /api/v1/items/:id/price
func (h *ItemHandler) GetPrice(c *gin.Context) {
	ps, err := h.svc.GetPrice(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			NotFound(c, "品目不存在")
			return
		}
		InternalError(c, "获取价格失败: "+err.Error())
		return
	}
	Success(c, ps)
}

// UpdatePrice PUT /api/v1/items/:id/price
func (h *ItemHandler) UpdatePrice(c *gin.Context) {
	var input service.UpdatePriceRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	ps, err := h.svc.UpdatePrice(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			NotFound(c, "品目不存在")
			return
		}
		if errors.Is(err, service.ErrValidation) {
			BadRequest(c, err.Error())
			return
		}
		InternalError(c, "更新价格失败: "+err.Error())
		return
	}
	Success(c, ps)
}

// ListMovements GET /api/v1/items/:id/movements
func (h *ItemHandler) ListMovements(c *gin.Context) {
	page, pageSize := GetPagination(c)
	movements, total, err := h.stockSvc.ListMovements(c.Request.Context(), c.Param("id"), page, pageSize)
	if err != nil {
		InternalError(c, "获取库存流水失败: "+err.Error())
		return
	}
	Success(c, gin.H{
		"items":      movements,
		"pagination": NewPagination(page, pageSize, total),
	})
}
