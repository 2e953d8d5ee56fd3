package po

import (
	"time"

	"propertyhub/domain/cart"
	"propertyhub/domain/shared"

	"github.com/shopspring/decimal"
)

// CartPO Cart persistence object
// One row per owner; items live in cart_items without GORM associations
type CartPO struct {
	ID        string    `gorm:"primaryKey;size:64"`
	OwnerID   string    `gorm:"size:64;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;not null"`
}

// TableName Specify table name
func (CartPO) TableName() string {
	return "carts"
}

// CartItemPO Cart item persistence object
type CartItemPO struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	CartID    string          `gorm:"size:64;not null;uniqueIndex:idx_cart_items_cart_listing"`
	ListingID int64           `gorm:"not null;uniqueIndex:idx_cart_items_cart_listing"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity  int             `gorm:"not null"`
	AddedAt   time.Time       `gorm:"not null"`
}

// TableName Specify table name
func (CartItemPO) TableName() string {
	return "cart_items"
}

// FromCartDomain Convert domain model to persistence objects
func FromCartDomain(c *cart.Cart) (*CartPO, []CartItemPO) {
	cartPO := &CartPO{
		ID:        c.ID(),
		OwnerID:   c.OwnerID(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}

	items := c.Items()
	itemPOs := make([]CartItemPO, len(items))
	for i, item := range items {
		itemPOs[i] = CartItemPO{
			CartID:    c.ID(),
			ListingID: item.ListingID(),
			UnitPrice: item.UnitPrice().Decimal(),
			Quantity:  item.Quantity(),
			AddedAt:   item.AddedAt(),
		}
	}

	return cartPO, itemPOs
}

// ToDomain Convert persistence objects to domain model
func (po *CartPO) ToDomain(itemPOs []CartItemPO) (*cart.Cart, error) {
	items := make([]cart.CartItem, len(itemPOs))
	for i, itemPO := range itemPOs {
		price, err := shared.NewPrice(itemPO.UnitPrice)
		if err != nil {
			return nil, err
		}
		items[i] = cart.RebuildItemFromDTO(cart.ItemReconstructionDTO{
			ListingID: itemPO.ListingID,
			UnitPrice: price,
			Quantity:  itemPO.Quantity,
			AddedAt:   itemPO.AddedAt,
		})
	}

	return cart.RebuildFromDTO(cart.ReconstructionDTO{
		ID:        po.ID,
		OwnerID:   po.OwnerID,
		Items:     items,
		CreatedAt: po.CreatedAt,
		UpdatedAt: po.UpdatedAt,
	}), nil
}
