package cart

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddItemRequest 加入收藏的入参。
// Price 为指针以区分缺失与 0。
type AddItemRequest struct {
	ListingID int64            `json:"listing_id" binding:"required"`
	Price     *decimal.Decimal `json:"price" binding:"required"`
}

// CartResponse 购物车返回模型；尚未创建的购物车返回空 Items。
type CartResponse struct {
	ID            string             `json:"id,omitempty"`
	OwnerID       string             `json:"owner_id"`
	Items         []CartItemResponse `json:"items"`
	TotalQuantity int                `json:"total_quantity"`
	UpdatedAt     *time.Time         `json:"updated_at,omitempty"`
}

// CartItemResponse 购物车项返回模型。
type CartItemResponse struct {
	ListingID int64     `json:"listing_id"`
	Price     string    `json:"price"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

// RemoveItemResponse 删除确认。
type RemoveItemResponse struct {
	ListingID int64  `json:"listing_id"`
	Message   string `json:"message"`
}

// ClearCartResponse 清空确认。
type ClearCartResponse struct {
	RemovedItems int    `json:"removed_items"`
	Message      string `json:"message"`
}
