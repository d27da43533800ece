package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/InfoRubix/stationery/internal/stationery/service"
)

type SheetHandler struct {
	svc *service.SheetService
}

func NewSheetHandler(svc *service.SheetService) *SheetHandler {
	return &SheetHandler{svc: svc}
}

// ExportItems GET /api/v1/export/items
func (h *SheetHandler) ExportItems(c *gin.Context) {
	f, filename, err := h.svc.ExportItems(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	writeExcel(c, f, filename)
}

// ExportOrders GET /api/v1/export/orders
func (h *SheetHandler) ExportOrders(c *gin.Context) {
	f, filename, err := h.svc.ExportOrders(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	writeExcel(c, f, filename)
}

// ExportPrices GET /api/v1/export/prices
func (h *SheetHandler) ExportPrices(c *gin.Context) {
	f, filename, err := h.svc.ExportPrices(c.Request.Context())
	if err != nil {
		InternalError(c, err.Error())
		return
	}
	writeExcel(c, f, filename)
}

// ImportItems POST /api/v1/import/items
func (h *SheetHandler) ImportItems(c *gin.Context) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "请上传Excel文件")
		return
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		BadRequest(c, "无法解析Excel文件: "+err.Error())
		return
	}
	defer f.Close()

	result, err := h.svc.ImportItems(c.Request.Context(), f)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}
	Success(c, result)
}

func writeExcel(c *gin.Context, f *excelize.File, filename string) {
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Transfer-Encoding", "binary")

	if err := f.Write(c.Writer); err != nil {
		InternalError(c, "write excel: "+err.Error())
	}
}
