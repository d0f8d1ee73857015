// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/internal/interfaces/http/dto"
)

// SanctionHandler 制裁处理器
type SanctionHandler struct {
	sanctions *diplomacy.SanctionService
}

// NewSanctionHandler 创建制裁处理器
func NewSanctionHandler(sanctions *diplomacy.SanctionService) *SanctionHandler {
	return &SanctionHandler{
		sanctions: sanctions,
	}
}

// ImposeSanction 施加制裁
// @Summary 施加制裁
// @Description 施加制裁并推高双方紧张度
// @Tags Sanctions
// @Accept json
// @Produce json
// @Param body body dto.ImposeSanctionRequest true "制裁信息"
// @Success 201 {object} dto.Response[dto.SanctionResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/sanctions [post]
func (h *SanctionHandler) ImposeSanction(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ImposeSanctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	sanction, err := h.sanctions.ImposeSanction(ctx, req.ToImposeSanctionInput())
	if err != nil {
		respondError(c, "failed to impose sanction", err)
		return
	}

	dto.Created(c, dto.ToSanctionResponse(sanction))
}

// GetSanction 获取制裁详情
// @Summary 获取制裁详情
// @Tags Sanctions
// @Produce json
// @Param sid path string true "制裁 ID"
// @Success 200 {object} dto.Response[dto.SanctionResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/sanctions/{sid} [get]
func (h *SanctionHandler) GetSanction(c *gin.Context) {
	ctx := c.Request.Context()

	sanction, err := h.sanctions.GetSanction(ctx, c.Param("sid"))
	if err != nil {
		respondError(c, "failed to get sanction", err)
		return
	}

	dto.Success(c, dto.ToSanctionResponse(sanction))
}

// ListSanctions 查询制裁列表
// @Summary 查询制裁列表
// @Description 按阵营、状态过滤制裁
// @Tags Sanctions
// @Produce json
// @Param faction_id query string false "涉及阵营 ID"
// @Param status query string false "制裁状态 (active, lifted, expired)"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[dto.SanctionListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/sanctions [get]
func (h *SanctionHandler) ListSanctions(c *gin.Context) {
	ctx := c.Request.Context()
	pageReq := dto.BindPage(c)

	filter := &repository.SanctionFilter{
		FactionID: c.Query("faction_id"),
		Status:    entity.SanctionStatus(c.Query("status")),
	}

	result, err := h.sanctions.ListSanctions(ctx, filter, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		respondError(c, "failed to list sanctions", err)
		return
	}

	resp := dto.ToSanctionListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// RecordViolation 记录制裁违规
// @Summary 记录制裁违规
// @Description 在生效中的制裁上追加违规记录并推高紧张度
// @Tags Sanctions
// @Accept json
// @Produce json
// @Param sid path string true "制裁 ID"
// @Param body body dto.RecordSanctionViolationRequest true "违规描述"
// @Success 200 {object} dto.Response[dto.SanctionResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/sanctions/{sid}/violations [post]
func (h *SanctionHandler) RecordViolation(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RecordSanctionViolationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	sanction, err := h.sanctions.RecordSanctionViolation(ctx, c.Param("sid"), req.Description)
	if err != nil {
		respondError(c, "failed to record sanction violation", err)
		return
	}

	dto.Success(c, dto.ToSanctionResponse(sanction))
}

// LiftSanction 解除制裁
// @Summary 解除制裁
// @Description 解除生效中的制裁并回退部分紧张度
// @Tags Sanctions
// @Produce json
// @Param sid path string true "制裁 ID"
// @Success 200 {object} dto.Response[dto.SanctionResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/sanctions/{sid}/lift [post]
func (h *SanctionHandler) LiftSanction(c *gin.Context) {
	ctx := c.Request.Context()

	sanction, err := h.sanctions.LiftSanction(ctx, c.Param("sid"))
	if err != nil {
		respondError(c, "failed to lift sanction", err)
		return
	}

	dto.Success(c, dto.ToSanctionResponse(sanction))
}
