// Package errors 提供统一的错误定义
package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode 错误码类型
type ErrorCode string

// 预定义错误码
const (
	// 通用错误 (1xxx)
	CodeSuccess            ErrorCode = "0"
	CodeUnknown            ErrorCode = "1000"
	CodeInvalidParam       ErrorCode = "1001"
	CodeUnauthorized       ErrorCode = "1002"
	CodeForbidden          ErrorCode = "1003"
	CodeNotFound           ErrorCode = "1004"
	CodeConflict           ErrorCode = "1005"
	CodeTooManyRequests    ErrorCode = "1006"
	CodeInternalError      ErrorCode = "1007"
	CodeServiceUnavailable ErrorCode = "1008"

	// 资源错误 (3xxx)
	CodeRelationshipNotFound ErrorCode = "3001"
	CodeTreatyNotFound       ErrorCode = "3002"
	CodeNegotiationNotFound  ErrorCode = "3003"
	CodeIncidentNotFound     ErrorCode = "3004"
	CodeUltimatumNotFound    ErrorCode = "3005"
	CodeSanctionNotFound     ErrorCode = "3006"
	CodeViolationNotFound    ErrorCode = "3007"
	CodeEventNotFound        ErrorCode = "3008"

	// 业务错误 (4xxx)
	CodeValidationFailed  ErrorCode = "4001"
	CodeInvalidTransition ErrorCode = "4002"
	CodeTreatyNotActive   ErrorCode = "4003"
	CodeSanctionNotActive ErrorCode = "4004"
	CodeDeadlinePassed    ErrorCode = "4005"

	// 外部服务错误 (5xxx)
	CodeDatabaseError ErrorCode = "5001"
	CodeCacheError    ErrorCode = "5002"
	CodeStreamError   ErrorCode = "5003"
)

// AppError 应用错误
type AppError struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	Detail     string    `json:"detail,omitempty"`
	HTTPStatus int       `json:"-"`
	Err        error     `json:"-"`
}

// Error 实现 error 接口
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap 返回底层错误
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail 添加详细信息
func (e *AppError) WithDetail(detail string) *AppError {
	e.Detail = detail
	return e
}

// WithError 添加底层错误
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New 创建新的应用错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Err:        err,
	}
}

// codeToHTTPStatus 错误码转 HTTP 状态码
func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case CodeSuccess:
		return http.StatusOK
	case CodeInvalidParam, CodeValidationFailed, CodeDeadlinePassed:
		return http.StatusBadRequest
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeNotFound, CodeRelationshipNotFound, CodeTreatyNotFound, CodeNegotiationNotFound,
		CodeIncidentNotFound, CodeUltimatumNotFound, CodeSanctionNotFound,
		CodeViolationNotFound, CodeEventNotFound:
		return http.StatusNotFound
	case CodeConflict, CodeInvalidTransition, CodeTreatyNotActive, CodeSanctionNotActive:
		return http.StatusConflict
	case CodeTooManyRequests:
		return http.StatusTooManyRequests
	case CodeServiceUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// 预定义错误
var (
	ErrInvalidParam       = New(CodeInvalidParam, "invalid parameter")
	ErrNotFound           = New(CodeNotFound, "resource not found")
	ErrConflict           = New(CodeConflict, "resource conflict")
	ErrInternalError      = New(CodeInternalError, "internal server error")
	ErrServiceUnavailable = New(CodeServiceUnavailable, "service unavailable")

	ErrRelationshipNotFound = New(CodeRelationshipNotFound, "relationship not found")
	ErrTreatyNotFound       = New(CodeTreatyNotFound, "treaty not found")
	ErrNegotiationNotFound  = New(CodeNegotiationNotFound, "negotiation not found")
	ErrIncidentNotFound     = New(CodeIncidentNotFound, "incident not found")
	ErrUltimatumNotFound    = New(CodeUltimatumNotFound, "ultimatum not found")
	ErrSanctionNotFound     = New(CodeSanctionNotFound, "sanction not found")
	ErrViolationNotFound    = New(CodeViolationNotFound, "violation not found")
	ErrEventNotFound        = New(CodeEventNotFound, "event not found")

	ErrValidationFailed  = New(CodeValidationFailed, "validation failed")
	ErrInvalidTransition = New(CodeInvalidTransition, "invalid state transition")
	ErrTreatyNotActive   = New(CodeTreatyNotActive, "treaty is not active")
	ErrSanctionNotActive = New(CodeSanctionNotActive, "sanction is not active")
)

// IsAppError 检查是否为 AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// AsAppError 将错误转换为 AppError
func AsAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, CodeUnknown, "unknown error")
}
