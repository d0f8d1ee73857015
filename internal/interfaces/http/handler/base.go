// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"faction-diplomacy-api/internal/interfaces/http/dto"
	"faction-diplomacy-api/pkg/errors"
	"faction-diplomacy-api/pkg/logger"
)

// respondError 统一错误出口：业务错误按错误码映射状态码，其余记日志返回 500
func respondError(c *gin.Context, fallbackMessage string, err error) {
	if errors.IsAppError(err) {
		appErr := errors.AsAppError(err)
		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
			Code:    appErr.HTTPStatus,
			Message: appErr.Message,
			Error: &dto.ErrorDetail{
				ErrorCode: string(appErr.Code),
				Details:   appErr.Detail,
			},
			TraceID: c.GetString("trace_id"),
		})
		return
	}
	logger.Error(c.Request.Context(), fallbackMessage, err)
	dto.InternalError(c, fallbackMessage)
}
