// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"faction-diplomacy-api/internal/domain/entity"
	"faction-diplomacy-api/internal/domain/repository"
	"faction-diplomacy-api/internal/interfaces/http/dto"
	"faction-diplomacy-api/pkg/errors"
)

// EventHandler 外交事件处理器
// 事件日志只追加，只提供读取端点
type EventHandler struct {
	events repository.EventRepository
}

// NewEventHandler 创建事件处理器
func NewEventHandler(events repository.EventRepository) *EventHandler {
	return &EventHandler{
		events: events,
	}
}

// ListEvents 查询事件时间线
// @Summary 查询事件时间线
// @Description 按阵营、类型、时间区间、可见性过滤事件，按时间倒序
// @Tags Events
// @Produce json
// @Param faction_id query string false "涉及阵营 ID"
// @Param type query string false "事件类型"
// @Param from query string false "起始时间 (RFC3339)"
// @Param to query string false "截止时间 (RFC3339)"
// @Param public_only query bool false "仅公开事件"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[dto.EventListResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/events [get]
func (h *EventHandler) ListEvents(c *gin.Context) {
	ctx := c.Request.Context()
	pageReq := dto.BindPage(c)

	filter := &repository.EventFilter{
		FactionID:  c.Query("faction_id"),
		Type:       entity.DiplomaticEventType(c.Query("type")),
		From:       dto.BindTimeQuery(c, "from"),
		To:         dto.BindTimeQuery(c, "to"),
		PublicOnly: dto.BindBoolQuery(c, "public_only"),
	}

	result, err := h.events.List(ctx, filter, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		respondError(c, "failed to list events", err)
		return
	}

	resp := dto.ToEventListResponse(result.Items)
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, resp, meta)
}

// GetEvent 获取事件详情
// @Summary 获取事件详情
// @Tags Events
// @Produce json
// @Param evid path string true "事件 ID"
// @Success 200 {object} dto.Response[dto.EventResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/events/{evid} [get]
func (h *EventHandler) GetEvent(c *gin.Context) {
	ctx := c.Request.Context()

	event, err := h.events.GetByID(ctx, c.Param("evid"))
	if err != nil {
		respondError(c, "failed to get event", err)
		return
	}
	if event == nil {
		respondError(c, "failed to get event", errors.ErrEventNotFound)
		return
	}

	dto.Success(c, dto.ToEventResponse(event))
}
