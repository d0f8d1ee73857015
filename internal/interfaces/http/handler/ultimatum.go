// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/internal/interfaces/http/dto"
)

// UltimatumHandler 最后通牒处理器
type UltimatumHandler struct {
	ultimatums *diplomacy.UltimatumService
}

// NewUltimatumHandler 创建通牒处理器
func NewUltimatumHandler(ultimatums *diplomacy.UltimatumService) *UltimatumHandler {
	return &UltimatumHandler{
		ultimatums: ultimatums,
	}
}

// IssueUltimatum 发出最后通牒
// @Summary 发出最后通牒
// @Description 发出通牒即推高双方紧张度，截止期必须在未来
// @Tags Ultimatums
// @Accept json
// @Produce json
// @Param body body dto.IssueUltimatumRequest true "通牒信息"
// @Success 201 {object} dto.Response[dto.UltimatumResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/ultimatums [post]
func (h *UltimatumHandler) IssueUltimatum(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.IssueUltimatumRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ultimatum, err := h.ultimatums.IssueUltimatum(ctx, req.ToIssueUltimatumInput())
	if err != nil {
		respondError(c, "failed to issue ultimatum", err)
		return
	}

	dto.Created(c, dto.ToUltimatumResponse(ultimatum))
}

// GetUltimatum 获取通牒详情
// @Summary 获取通牒详情
// @Tags Ultimatums
// @Produce json
// @Param uid path string true "通牒 ID"
// @Success 200 {object} dto.Response[dto.UltimatumResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/ultimatums/{uid} [get]
func (h *UltimatumHandler) GetUltimatum(c *gin.Context) {
	ctx := c.Request.Context()

	ultimatum, err := h.ultimatums.GetUltimatum(ctx, c.Param("uid"))
	if err != nil {
		respondError(c, "failed to get ultimatum", err)
		return
	}

	dto.Success(c, dto.ToUltimatumResponse(ultimatum))
}

// ListUltimatums 查询通牒列表
// @Summary 查询通牒列表
// @Description 按阵营、状态过滤通牒，按截止期升序
// @Tags Ultimatums
// @Produce json
// @Param faction_id query string false "涉及阵营 ID"
// @Param status query string false "通牒状态 (pending, accepted, rejected, expired)"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[dto.UltimatumListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/ultimatums [get]
func (h *UltimatumHandler) ListUltimatums(c *gin.Context) {
	ctx := c.Request.Context()
	pageReq := dto.BindPage(c)

	filter := &repository.UltimatumFilter{
		FactionID: c.Query("faction_id"),
		Status:    entity.UltimatumStatus(c.Query("status")),
	}

	result, err := h.ultimatums.ListUltimatums(ctx, filter, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		respondError(c, "failed to list ultimatums", err)
		return
	}

	resp := dto.ToUltimatumListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// AcceptUltimatum 接受通牒
// @Summary 接受通牒
// @Description 截止期内接受：信任度上调、紧张度回落
// @Tags Ultimatums
// @Produce json
// @Param uid path string true "通牒 ID"
// @Success 200 {object} dto.Response[dto.UltimatumResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/ultimatums/{uid}/accept [post]
func (h *UltimatumHandler) AcceptUltimatum(c *gin.Context) {
	ctx := c.Request.Context()

	ultimatum, err := h.ultimatums.AcceptUltimatum(ctx, c.Param("uid"))
	if err != nil {
		respondError(c, "failed to accept ultimatum", err)
		return
	}

	dto.Success(c, dto.ToUltimatumResponse(ultimatum))
}

// RejectUltimatum 拒绝通牒
// @Summary 拒绝通牒
// @Description 拒绝触发既定紧张度后果
// @Tags Ultimatums
// @Produce json
// @Param uid path string true "通牒 ID"
// @Success 200 {object} dto.Response[dto.UltimatumResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/ultimatums/{uid}/reject [post]
func (h *UltimatumHandler) RejectUltimatum(c *gin.Context) {
	ctx := c.Request.Context()

	ultimatum, err := h.ultimatums.RejectUltimatum(ctx, c.Param("uid"))
	if err != nil {
		respondError(c, "failed to reject ultimatum", err)
		return
	}

	dto.Success(c, dto.ToUltimatumResponse(ultimatum))
}
