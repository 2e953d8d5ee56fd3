/*
Package cart - 购物车（收藏房源）领域错误定义

哨兵错误同时包装 shared 层的通用分类，因此既可以
errors.Is(err, ErrCartNotFound) 也可以 errors.Is(err, shared.ErrNotFound)。
构造函数在创建时捕获堆栈（skip=3）。
*/
package cart

import (
	"fmt"

	"propertyhub/domain/shared"
)

var (
	// ErrCartNotFound 用户尚无购物车
	ErrCartNotFound = fmt.Errorf("cart not found: %w", shared.ErrNotFound)

	// ErrItemNotFound 购物车中没有该房源
	ErrItemNotFound = fmt.Errorf("item not found: %w", shared.ErrNotFound)

	// ErrInvalidListing 房源标识必须为正数
	ErrInvalidListing = fmt.Errorf("listing id must be positive: %w", shared.ErrInvalidInput)

	// ErrInvalidOwner 购物车必须有所有者
	ErrInvalidOwner = fmt.Errorf("cart owner is required: %w", shared.ErrInvalidInput)

	// ErrConcurrentModification 并发创建同一用户的购物车（唯一约束冲突）
	// 开启重试时工作单元会重新执行整个事务
	ErrConcurrentModification = fmt.Errorf("cart was modified by another transaction, please retry: %w", shared.ErrConflict)
)

// NewCartNotFoundError 创建购物车未找到错误（带堆栈）
func NewCartNotFoundError(ownerID string) error {
	return &cartDomainError{
		sentinel: ErrCartNotFound,
		message:  "Cart not found for owner " + ownerID,
		stack:    shared.CaptureStack(3),
	}
}

// NewItemNotFoundError 创建购物车项未找到错误
func NewItemNotFoundError(listingID int64) error {
	return &cartDomainError{
		sentinel: ErrItemNotFound,
		message:  fmt.Sprintf("Item not found for listing %d", listingID),
		stack:    shared.CaptureStack(3),
	}
}

// NewInvalidListingError 创建房源标识无效错误
func NewInvalidListingError(listingID int64) error {
	return &cartDomainError{
		sentinel: ErrInvalidListing,
		field:    "listing_id",
		message:  fmt.Sprintf("listing id must be positive, got %d", listingID),
		stack:    shared.CaptureStack(3),
	}
}

// NewConcurrentModificationError 创建并发修改错误
func NewConcurrentModificationError(ownerID string) error {
	return &cartDomainError{
		sentinel: ErrConcurrentModification,
		message:  "cart for owner " + ownerID + " was modified by another transaction, please retry",
		stack:    shared.CaptureStack(3),
	}
}

// cartDomainError 购物车领域错误（带堆栈）
type cartDomainError struct {
	sentinel error
	field    string
	message  string
	stack    []uintptr
}

func (e *cartDomainError) Error() string {
	return e.message
}

func (e *cartDomainError) Unwrap() error {
	return e.sentinel
}

// Field 校验失败的字段名
func (e *cartDomainError) Field() string {
	return e.field
}

// Stack 实现 shared.Stacker 接口
func (e *cartDomainError) Stack() []string {
	if len(e.stack) == 0 {
		return nil
	}
	return shared.FormatStack(e.stack)
}
