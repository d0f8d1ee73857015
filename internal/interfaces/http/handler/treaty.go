// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/internal/interfaces/http/dto"
)

// TreatyHandler 条约处理器
type TreatyHandler struct {
	treaties *diplomacy.TreatyService
}

// NewTreatyHandler 创建条约处理器
func NewTreatyHandler(treaties *diplomacy.TreatyService) *TreatyHandler {
	return &TreatyHandler{
		treaties: treaties,
	}
}

// CreateTreaty 创建条约
// @Summary 创建条约
// @Description 直接签署条约，联盟条约同时覆盖各方外交状态
// @Tags Treaties
// @Accept json
// @Produce json
// @Param body body dto.CreateTreatyRequest true "条约信息"
// @Success 201 {object} dto.Response[dto.TreatyResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /v1/treaties [post]
func (h *TreatyHandler) CreateTreaty(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateTreatyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	treaty, err := h.treaties.CreateTreaty(ctx, req.ToCreateTreatyInput())
	if err != nil {
		respondError(c, "failed to create treaty", err)
		return
	}

	dto.Created(c, dto.ToTreatyResponse(treaty))
}

// GetTreaty 获取条约详情
// @Summary 获取条约详情
// @Tags Treaties
// @Produce json
// @Param tid path string true "条约 ID"
// @Success 200 {object} dto.Response[dto.TreatyResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/treaties/{tid} [get]
func (h *TreatyHandler) GetTreaty(c *gin.Context) {
	ctx := c.Request.Context()

	treaty, err := h.treaties.GetTreaty(ctx, c.Param("tid"))
	if err != nil {
		respondError(c, "failed to get treaty", err)
		return
	}

	dto.Success(c, dto.ToTreatyResponse(treaty))
}

// ListTreaties 查询条约列表
// @Summary 查询条约列表
// @Description 按阵营、状态、类型过滤条约
// @Tags Treaties
// @Produce json
// @Param faction_id query string false "参与阵营 ID"
// @Param status query string false "条约状态 (active, violated, expired, dissolved)"
// @Param type query string false "条约类型 (alliance, trade, non_aggression, ceasefire, vassalage)"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[dto.TreatyListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/treaties [get]
func (h *TreatyHandler) ListTreaties(c *gin.Context) {
	ctx := c.Request.Context()
	pageReq := dto.BindPage(c)

	filter := &repository.TreatyFilter{
		FactionID: c.Query("faction_id"),
		Status:    entity.TreatyStatus(c.Query("status")),
		Type:      entity.TreatyType(c.Query("type")),
	}

	result, err := h.treaties.ListTreaties(ctx, filter, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		respondError(c, "failed to list treaties", err)
		return
	}

	resp := dto.ToTreatyListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// ReportViolation 举报违约
// @Summary 举报违约
// @Description 记录条约违约，条约转入 violated 并推高违约双方紧张度
// @Tags Treaties
// @Accept json
// @Produce json
// @Param tid path string true "条约 ID"
// @Param body body dto.ReportViolationRequest true "违约信息"
// @Success 201 {object} dto.Response[dto.ViolationResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/treaties/{tid}/violations [post]
func (h *TreatyHandler) ReportViolation(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ReportViolationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	violation, err := h.treaties.ReportViolation(ctx, c.Param("tid"), req.ToReportViolationInput())
	if err != nil {
		respondError(c, "failed to report violation", err)
		return
	}

	dto.Created(c, dto.ToViolationResponse(violation))
}

// ListViolations 查询条约违约记录
// @Summary 查询条约违约记录
// @Tags Treaties
// @Produce json
// @Param tid path string true "条约 ID"
// @Success 200 {object} dto.Response[dto.ViolationListResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/treaties/{tid}/violations [get]
func (h *TreatyHandler) ListViolations(c *gin.Context) {
	ctx := c.Request.Context()

	violations, err := h.treaties.ListViolations(ctx, c.Param("tid"))
	if err != nil {
		respondError(c, "failed to list violations", err)
		return
	}

	dto.Success(c, dto.ToViolationListResponse(violations))
}

// ResolveViolation 解决违约
// @Summary 解决违约
// @Description 关闭违约记录，条约无未决违约时恢复 active
// @Tags Treaties
// @Produce json
// @Param vid path string true "违约记录 ID"
// @Success 200 {object} dto.Response[dto.ViolationResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/violations/{vid}/resolve [post]
func (h *TreatyHandler) ResolveViolation(c *gin.Context) {
	ctx := c.Request.Context()

	violation, err := h.treaties.ResolveViolation(ctx, c.Param("vid"))
	if err != nil {
		respondError(c, "failed to resolve violation", err)
		return
	}

	dto.Success(c, dto.ToViolationResponse(violation))
}

// ExpireTreaty 使条约过期
// @Summary 使条约过期
// @Description 手动触发条约过期，已过期时幂等返回
// @Tags Treaties
// @Produce json
// @Param tid path string true "条约 ID"
// @Success 200 {object} dto.Response[dto.TreatyResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/treaties/{tid}/expire [post]
func (h *TreatyHandler) ExpireTreaty(c *gin.Context) {
	ctx := c.Request.Context()

	treaty, err := h.treaties.ExpireTreaty(ctx, c.Param("tid"))
	if err != nil {
		respondError(c, "failed to expire treaty", err)
		return
	}

	dto.Success(c, dto.ToTreatyResponse(treaty))
}
