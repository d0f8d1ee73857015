// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/internal/interfaces/http/dto"
)

// IncidentHandler 外交冲突处理器
type IncidentHandler struct {
	incidents *diplomacy.IncidentService
}

// NewIncidentHandler 创建冲突处理器
func NewIncidentHandler(incidents *diplomacy.IncidentService) *IncidentHandler {
	return &IncidentHandler{
		incidents: incidents,
	}
}

// RecordIncident 记录冲突
// @Summary 记录冲突
// @Description 记录条约之外的敌对行为并按影响推高紧张度
// @Tags Incidents
// @Accept json
// @Produce json
// @Param body body dto.RecordIncidentRequest true "冲突信息"
// @Success 201 {object} dto.Response[dto.IncidentResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/incidents [post]
func (h *IncidentHandler) RecordIncident(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecordIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	incident, err := h.incidents.RecordIncident(ctx, req.ToRecordIncidentInput())
	if err != nil {
		respondError(c, "failed to record incident", err)
		return
	}

	dto.Created(c, dto.ToIncidentResponse(incident))
}

// GetIncident 获取冲突详情
// @Summary 获取冲突详情
// @Tags Incidents
// @Produce json
// @Param iid path string true "冲突 ID"
// @Success 200 {object} dto.Response[dto.IncidentResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/incidents/{iid} [get]
func (h *IncidentHandler) GetIncident(c *gin.Context) {
	ctx := c.Request.Context()

	incident, err := h.incidents.GetIncident(ctx, c.Param("iid"))
	if err != nil {
		respondError(c, "failed to get incident", err)
		return
	}

	dto.Success(c, dto.ToIncidentResponse(incident))
}

// ListIncidents 查询冲突列表
// @Summary 查询冲突列表
// @Description 按涉及阵营过滤，可只看未解决冲突
// @Tags Incidents
// @Produce json
// @Param faction_id query string false "涉及阵营 ID"
// @Param open_only query bool false "仅未解决冲突"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[dto.IncidentListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/incidents [get]
func (h *IncidentHandler) ListIncidents(c *gin.Context) {
	ctx := c.Request.Context()
	pageReq := dto.BindPage(c)

	filter := &repository.IncidentFilter{
		FactionID: c.Query("faction_id"),
		OpenOnly:  dto.BindBoolQuery(c, "open_only"),
	}

	result, err := h.incidents.ListIncidents(ctx, filter, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		respondError(c, "failed to list incidents", err)
		return
	}

	resp := dto.ToIncidentListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// AcknowledgeIncident 确认冲突
// @Summary 确认冲突
// @Description 标记冲突已被当事方知悉，不改变紧张度
// @Tags Incidents
// @Produce json
// @Param iid path string true "冲突 ID"
// @Success 200 {object} dto.Response[dto.IncidentResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/incidents/{iid}/acknowledge [post]
func (h *IncidentHandler) AcknowledgeIncident(c *gin.Context) {
	ctx := c.Request.Context()

	incident, err := h.incidents.AcknowledgeIncident(ctx, c.Param("iid"))
	if err != nil {
		respondError(c, "failed to acknowledge incident", err)
		return
	}

	dto.Success(c, dto.ToIncidentResponse(incident))
}

// ResolveIncident 解决冲突
// @Summary 解决冲突
// @Description 关闭冲突并回退部分紧张度，已解决时幂等返回
// @Tags Incidents
// @Produce json
// @Param iid path string true "冲突 ID"
// @Success 200 {object} dto.Response[dto.IncidentResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/incidents/{iid}/resolve [post]
func (h *IncidentHandler) ResolveIncident(c *gin.Context) {
	ctx := c.Request.Context()

	incident, err := h.incidents.ResolveIncident(ctx, c.Param("iid"))
	if err != nil {
		respondError(c, "failed to resolve incident", err)
		return
	}

	dto.Success(c, dto.ToIncidentResponse(incident))
}
