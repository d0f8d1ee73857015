// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/internal/interfaces/http/dto"
)

// RelationshipHandler 阵营关系处理器
type RelationshipHandler struct {
	tension *diplomacy.TensionService
}

// NewRelationshipHandler 创建关系处理器
func NewRelationshipHandler(tension *diplomacy.TensionService) *RelationshipHandler {
	return &RelationshipHandler{
		tension: tension,
	}
}

// GetPair 查询阵营对关系
// @Summary 查询阵营对关系
// @Description 按规范化无序阵营对查询关系，不存在时返回 404，不隐式创建
// @Tags Relationships
// @Produce json
// @Param faction_a_id query string true "阵营 A ID"
// @Param faction_b_id query string true "阵营 B ID"
// @Success 200 {object} dto.Response[dto.RelationshipResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/relationships/pair [get]
func (h *RelationshipHandler) GetPair(c *gin.Context) {
	ctx := c.Request.Context()
	factionA := c.Query("faction_a_id")
	factionB := c.Query("faction_b_id")
	if factionA == "" || factionB == "" {
		dto.BadRequest(c, "faction_a_id and faction_b_id are required")
		return
	}

	rel, err := h.tension.FindRelationship(ctx, factionA, factionB)
	if err != nil {
		respondError(c, "failed to get relationship", err)
		return
	}
	if rel == nil {
		dto.NotFound(c, "relationship not found")
		return
	}

	dto.Success(c, dto.ToRelationshipResponse(rel))
}

// Establish 建立关系
// @Summary 建立关系
// @Description 物化阵营对关系，已存在时幂等返回现有记录
// @Tags Relationships
// @Accept json
// @Produce json
// @Param body body dto.EstablishRelationshipRequest true "阵营对"
// @Success 200 {object} dto.Response[dto.RelationshipResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/relationships [post]
func (h *RelationshipHandler) Establish(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.EstablishRelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	rel, err := h.tension.GetOrCreateRelationship(ctx, req.FactionAID, req.FactionBID)
	if err != nil {
		respondError(c, "failed to establish relationship", err)
		return
	}

	dto.Success(c, dto.ToRelationshipResponse(rel))
}

// AdjustTension 调整紧张度
// @Summary 调整紧张度
// @Description 对阵营对施加紧张度增量，状态随阈值推导
// @Tags Relationships
// @Accept json
// @Produce json
// @Param body body dto.AdjustTensionRequest true "紧张度增量"
// @Success 200 {object} dto.Response[dto.RelationshipResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/relationships/tension [post]
func (h *RelationshipHandler) AdjustTension(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AdjustTensionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	rel, err := h.tension.UpdateTension(ctx, req.FactionAID, req.FactionBID, req.Delta, req.Reason)
	if err != nil {
		respondError(c, "failed to adjust tension", err)
		return
	}

	dto.Success(c, dto.ToRelationshipResponse(rel))
}

// AdjustTrust 调整信任度
// @Summary 调整信任度
// @Description 对阵营对施加信任度增量
// @Tags Relationships
// @Accept json
// @Produce json
// @Param body body dto.AdjustTrustRequest true "信任度增量"
// @Success 200 {object} dto.Response[dto.RelationshipResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/relationships/trust [post]
func (h *RelationshipHandler) AdjustTrust(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.AdjustTrustRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	rel, err := h.tension.AdjustTrust(ctx, req.FactionAID, req.FactionBID, req.Delta, req.Reason)
	if err != nil {
		respondError(c, "failed to adjust trust", err)
		return
	}

	dto.Success(c, dto.ToRelationshipResponse(rel))
}

// SetStatus 强制设置外交状态
// @Summary 强制设置外交状态
// @Description 显式覆盖外交状态，优先于阈值推导结果
// @Tags Relationships
// @Accept json
// @Produce json
// @Param body body dto.SetStatusRequest true "目标状态"
// @Success 200 {object} dto.Response[dto.RelationshipResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/relationships/status [put]
func (h *RelationshipHandler) SetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	status := entity.DiplomaticStatus(req.Status)
	if !status.Valid() {
		dto.BadRequest(c, "invalid diplomatic status: "+req.Status)
		return
	}

	rel, err := h.tension.SetStatus(ctx, req.FactionAID, req.FactionBID, status, req.Reason)
	if err != nil {
		respondError(c, "failed to set status", err)
		return
	}

	dto.Success(c, dto.ToRelationshipResponse(rel))
}

// ListByFaction 查询阵营的全部关系
// @Summary 查询阵营的全部关系
// @Description 列出指定阵营参与的所有关系，按紧张度倒序
// @Tags Relationships
// @Produce json
// @Param fid path string true "阵营 ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[dto.RelationshipListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/factions/{fid}/relationships [get]
func (h *RelationshipHandler) ListByFaction(c *gin.Context) {
	ctx := c.Request.Context()
	factionID := c.Param("fid")
	pageReq := dto.BindPage(c)

	result, err := h.tension.ListByFaction(ctx, factionID, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		respondError(c, "failed to list relationships", err)
		return
	}

	resp := dto.ToRelationshipListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// ListByStatus 按外交状态查询关系
// @Summary 按外交状态查询关系
// @Description 列出处于指定外交状态的全部关系
// @Tags Relationships
// @Produce json
// @Param status query string true "外交状态 (neutral, friendly, alliance, tense, hostile, war)"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[dto.RelationshipListResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/relationships [get]
func (h *RelationshipHandler) ListByStatus(c *gin.Context) {
	ctx := c.Request.Context()
	pageReq := dto.BindPage(c)

	status := entity.DiplomaticStatus(c.Query("status"))
	if !status.Valid() {
		dto.BadRequest(c, "invalid diplomatic status: "+c.Query("status"))
		return
	}

	result, err := h.tension.ListByStatus(ctx, status, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		respondError(c, "failed to list relationships", err)
		return
	}

	resp := dto.ToRelationshipListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}
