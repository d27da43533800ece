package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/InfoRubix/stationery/internal/stationery/service"
)

type PlannerHandler struct {
	svc *service.PlannerService
}

func NewPlannerHandler(svc *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{svc: svc}
}

// Report GET /api/v1/reorder-plan
func (h *PlannerHandler) Report(c *gin.Context) {
	report, err := h.svc.BuildReport(c.Request.Context())
	if err != nil {
		InternalError(c, "生成补货报告失败: "+err.Error())
		return
	}
	Success(c, report)
}
