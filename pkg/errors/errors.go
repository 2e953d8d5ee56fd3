/*
Package errors 应用层错误码

领域层只返回哨兵错误，本包把它们转换为对外稳定的错误码。
HTTP 状态码映射留在 api/response。
*/
package errors

import (
	"errors"
	"fmt"

	"propertyhub/domain/cart"
	"propertyhub/domain/enquiry"
	"propertyhub/domain/shared"
)

// ErrorCode 错误码
type ErrorCode string

const (
	// 通用错误码
	CodeInternal        ErrorCode = "INTERNAL_ERROR"
	CodeBadRequest      ErrorCode = "BAD_REQUEST"
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	CodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeNotFound        ErrorCode = "NOT_FOUND"
	CodeConflict        ErrorCode = "CONFLICT"
	CodeTooManyRequests ErrorCode = "TOO_MANY_REQUESTS"
	CodeValidation      ErrorCode = "VALIDATION_ERROR"

	// 业务错误码 - 购物车
	CodeCartNotFound     ErrorCode = "CART_NOT_FOUND"
	CodeCartItemNotFound ErrorCode = "CART_ITEM_NOT_FOUND"

	// 业务错误码 - 咨询
	CodeEnquiryNotFound      ErrorCode = "ENQUIRY_NOT_FOUND"
	CodeInvalidEnquiryStatus ErrorCode = "INVALID_ENQUIRY_STATUS"
)

// AppError 应用错误
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New 创建新错误
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap 包装错误
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func BadRequest(message string) *AppError {
	return New(CodeBadRequest, message)
}

func TooManyRequests(message string) *AppError {
	return New(CodeTooManyRequests, message)
}

// Is 检查是否为特定错误码
func Is(err error, code ErrorCode) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}

// codeMapping 按顺序匹配，具体哨兵必须排在通用分类之前
var codeMapping = []struct {
	target error
	code   ErrorCode
}{
	{cart.ErrCartNotFound, CodeCartNotFound},
	{cart.ErrItemNotFound, CodeCartItemNotFound},
	{enquiry.ErrEnquiryNotFound, CodeEnquiryNotFound},
	{enquiry.ErrInvalidStatus, CodeInvalidEnquiryStatus},

	{shared.ErrUnauthenticated, CodeUnauthenticated},
	{shared.ErrUnauthorized, CodeUnauthorized},
	{shared.ErrForbidden, CodeForbidden},
	{shared.ErrNotFound, CodeNotFound},
	{shared.ErrInvalidInput, CodeValidation},
	{shared.ErrConflict, CodeConflict},
}

// FromDomainError 将领域错误转换为应用错误
// 无法识别的错误一律视为内部错误，消息由 API 层隐藏
func FromDomainError(err error) *AppError {
	if err == nil {
		return nil
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	for _, m := range codeMapping {
		if errors.Is(err, m.target) {
			return Wrap(err, m.code, userMessage(err))
		}
	}

	return Wrap(err, CodeInternal, "internal server error")
}

// userMessage 优先使用领域错误自带的消息
func userMessage(err error) string {
	var stacker shared.Stacker
	if errors.As(err, &stacker) {
		if domainErr, ok := stacker.(error); ok {
			return domainErr.Error()
		}
	}
	return err.Error()
}
