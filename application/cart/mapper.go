package cart

import (
	"propertyhub/domain/cart"
)

func emptyCartResponse(ownerID string) *CartResponse {
	return &CartResponse{
		OwnerID: ownerID,
		Items:   []CartItemResponse{},
	}
}

func toCartResponse(c *cart.Cart) *CartResponse {
	items := make([]CartItemResponse, 0, len(c.Items()))
	for _, item := range c.Items() {
		items = append(items, CartItemResponse{
			ListingID: item.ListingID(),
			Price:     item.UnitPrice().String(),
			Quantity:  item.Quantity(),
			AddedAt:   item.AddedAt(),
		})
	}

	updatedAt := c.UpdatedAt()
	return &CartResponse{
		ID:            c.ID(),
		OwnerID:       c.OwnerID(),
		Items:         items,
		TotalQuantity: c.TotalQuantity(),
		UpdatedAt:     &updatedAt,
	}
}
