// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"faction-diplomacy-api/internal/application/diplomacy"
	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/internal/interfaces/http/dto"
)

// NegotiationHandler 谈判处理器
type NegotiationHandler struct {
	negotiations *diplomacy.NegotiationService
}

// NewNegotiationHandler 创建谈判处理器
func NewNegotiationHandler(negotiations *diplomacy.NegotiationService) *NegotiationHandler {
	return &NegotiationHandler{
		negotiations: negotiations,
	}
}

// StartNegotiation 发起谈判
// @Summary 发起谈判
// @Tags Negotiations
// @Accept json
// @Produce json
// @Param body body dto.StartNegotiationRequest true "谈判信息"
// @Success 201 {object} dto.Response[dto.NegotiationResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/negotiations [post]
func (h *NegotiationHandler) StartNegotiation(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.StartNegotiationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	negotiation, err := h.negotiations.StartNegotiation(ctx, req.ToStartNegotiationInput())
	if err != nil {
		respondError(c, "failed to start negotiation", err)
		return
	}

	dto.Created(c, dto.ToNegotiationResponse(negotiation))
}

// GetNegotiation 获取谈判详情
// @Summary 获取谈判详情
// @Tags Negotiations
// @Produce json
// @Param nid path string true "谈判 ID"
// @Success 200 {object} dto.Response[dto.NegotiationResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/negotiations/{nid} [get]
func (h *NegotiationHandler) GetNegotiation(c *gin.Context) {
	ctx := c.Request.Context()

	negotiation, err := h.negotiations.GetNegotiation(ctx, c.Param("nid"))
	if err != nil {
		respondError(c, "failed to get negotiation", err)
		return
	}

	dto.Success(c, dto.ToNegotiationResponse(negotiation))
}

// ListNegotiations 查询谈判列表
// @Summary 查询谈判列表
// @Description 按阵营、状态过滤谈判
// @Tags Negotiations
// @Produce json
// @Param faction_id query string false "参与阵营 ID"
// @Param status query string false "谈判状态 (pending, countered, accepted, rejected, expired)"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[dto.NegotiationListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/negotiations [get]
func (h *NegotiationHandler) ListNegotiations(c *gin.Context) {
	ctx := c.Request.Context()
	pageReq := dto.BindPage(c)

	filter := &repository.NegotiationFilter{
		FactionID: c.Query("faction_id"),
		Status:    entity.NegotiationStatus(c.Query("status")),
	}

	result, err := h.negotiations.ListNegotiations(ctx, filter, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		respondError(c, "failed to list negotiations", err)
		return
	}

	resp := dto.ToNegotiationListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// MakeOffer 出价
// @Summary 出价
// @Description 在进行中的谈判上提交新出价（首次报价或还价）
// @Tags Negotiations
// @Accept json
// @Produce json
// @Param nid path string true "谈判 ID"
// @Param body body dto.MakeOfferRequest true "出价内容"
// @Success 200 {object} dto.Response[dto.NegotiationResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/negotiations/{nid}/offers [post]
func (h *NegotiationHandler) MakeOffer(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.MakeOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	negotiation, err := h.negotiations.MakeOffer(ctx, c.Param("nid"), req.ToMakeOfferInput())
	if err != nil {
		respondError(c, "failed to make offer", err)
		return
	}

	dto.Success(c, dto.ToNegotiationResponse(negotiation))
}

// AcceptOffer 接受当前出价
// @Summary 接受当前出价
// @Description 接受后谈判终结，同一事务内按出价条款生成条约
// @Tags Negotiations
// @Accept json
// @Produce json
// @Param nid path string true "谈判 ID"
// @Param body body dto.RespondOfferRequest true "接受方"
// @Success 200 {object} dto.Response[dto.AcceptOfferResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/negotiations/{nid}/accept [post]
func (h *NegotiationHandler) AcceptOffer(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RespondOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	negotiation, treaty, err := h.negotiations.AcceptOffer(ctx, c.Param("nid"), req.FactionID)
	if err != nil {
		respondError(c, "failed to accept offer", err)
		return
	}

	dto.Success(c, &dto.AcceptOfferResponse{
		Negotiation: dto.ToNegotiationResponse(negotiation),
		Treaty:      dto.ToTreatyResponse(treaty),
	})
}

// RejectOffer 拒绝当前出价
// @Summary 拒绝当前出价
// @Description 拒绝后谈判终结，不生成条约
// @Tags Negotiations
// @Accept json
// @Produce json
// @Param nid path string true "谈判 ID"
// @Param body body dto.RespondOfferRequest true "拒绝方"
// @Success 200 {object} dto.Response[dto.NegotiationResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/negotiations/{nid}/reject [post]
func (h *NegotiationHandler) RejectOffer(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RespondOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	negotiation, err := h.negotiations.RejectOffer(ctx, c.Param("nid"), req.FactionID)
	if err != nil {
		respondError(c, "failed to reject offer", err)
		return
	}

	dto.Success(c, dto.ToNegotiationResponse(negotiation))
}
