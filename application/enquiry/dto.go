package enquiry

import "time"

// CreateEnquiryRequest 创建咨询的入参。
// CustomerID 仅为兼容旧客户端而解码，始终被调用方身份覆盖。
type CreateEnquiryRequest struct {
	ListingID  int64  `json:"listing_id"`
	OwnerID    string `json:"owner_id"`
	Message    string `json:"message"`
	CustomerID string `json:"customer_id,omitempty"`
}

// UpdateStatusRequest 更新咨询状态的入参，大小写不敏感。
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// EnquiryResponse 咨询返回模型。
type EnquiryResponse struct {
	ID         string    `json:"id"`
	ListingID  int64     `json:"listing_id"`
	CustomerID string    `json:"customer_id"`
	OwnerID    string    `json:"owner_id"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
