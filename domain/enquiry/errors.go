/*
Package enquiry - 咨询领域错误定义

哨兵错误包装 shared 层通用分类，构造函数捕获创建点堆栈。
*/
package enquiry

import (
	"fmt"

	"propertyhub/domain/shared"
)

var (
	// ErrEnquiryNotFound 咨询记录不存在
	ErrEnquiryNotFound = fmt.Errorf("enquiry not found: %w", shared.ErrNotFound)

	// ErrInvalidStatus 状态值不在 NEW / RESPONDED / CLOSED 之中
	ErrInvalidStatus = fmt.Errorf("invalid status value: %w", shared.ErrInvalidInput)

	// ErrEmptyMessage 咨询内容为空
	ErrEmptyMessage = fmt.Errorf("message is required: %w", shared.ErrInvalidInput)

	// ErrInvalidListing 房源标识必须为正数
	ErrInvalidListing = fmt.Errorf("listing id must be positive: %w", shared.ErrInvalidInput)

	// ErrMissingParty 客户或房东标识缺失
	ErrMissingParty = fmt.Errorf("customer and owner are required: %w", shared.ErrInvalidInput)
)

// NewEnquiryNotFoundError 创建咨询未找到错误（带堆栈）
func NewEnquiryNotFoundError(id string) error {
	return &enquiryDomainError{
		sentinel: ErrEnquiryNotFound,
		message:  "Enquiry not found: " + id,
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidStatusError 创建无效状态错误
func NewInvalidStatusError(value string) error {
	return &enquiryDomainError{
		sentinel: ErrInvalidStatus,
		field:    "status",
		message:  fmt.Sprintf("Invalid status value: %q", value),
		stack:    shared.CaptureStack(3),
	}
}

// NewValidationError 创建字段校验错误，sentinel 决定分类
func NewValidationError(sentinel error, field, message string) error {
	return &enquiryDomainError{
		sentinel: sentinel,
		field:    field,
		message:  message,
		stack:    shared.CaptureStack(3),
	}
}

// enquiryDomainError 咨询领域错误（带堆栈）
type enquiryDomainError struct {
	sentinel error
	field    string
	message  string
	stack    []uintptr
}

func (e *enquiryDomainError) Error() string {
	return e.message
}

func (e *enquiryDomainError) Unwrap() error {
	return e.sentinel
}

// Field 校验失败的字段名
func (e *enquiryDomainError) Field() string {
	return e.field
}

// Stack 实现 shared.Stacker 接口
func (e *enquiryDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
