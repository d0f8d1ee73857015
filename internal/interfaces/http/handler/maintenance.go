// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/interfaces/http/dto"
)

// MaintenanceHandler 到期清扫处理器
type MaintenanceHandler struct {
	maintenance *diplomacy.MaintenanceService
}

// NewMaintenanceHandler 创建清扫处理器
func NewMaintenanceHandler(maintenance *diplomacy.MaintenanceService) *MaintenanceHandler {
	return &MaintenanceHandler{
		maintenance: maintenance,
	}
}

// Sweep 触发到期清扫
// @Summary 触发到期清扫
// @Description 立即清扫过期条约、通牒、制裁，与后台周期清扫同一逻辑
// @Tags Maintenance
// @Produce json
// @Success 200 {object} dto.Response[diplomacy.SweepReport]
// @Router /v1/maintenance/sweep [post]
func (h *MaintenanceHandler) Sweep(c *gin.Context) {
	report := h.maintenance.SweepAll(c.Request.Context())
	dto.Success(c, report)
}
