/*
Package cart Saved-listings subdomain.

A Cart belongs to exactly one owner and holds at most one CartItem per
listing. Carts are created lazily on the first add; "no cart yet" and
"empty cart" are indistinguishable to callers.
*/
package cart

import (
	"fmt"
	"strings"
	"time"

	"propertyhub/domain/shared"

	"github.com/google/uuid"
)

// Cart Cart aggregate root
// All modifications to CartItem go through the Cart
type Cart struct {
	shared.EventRecorder

	id        string
	ownerID   string
	items     []CartItem
	createdAt time.Time
	updatedAt time.Time

	// isNew is true until the cart has been persisted once
	isNew bool
}

// CartItem Entity within the aggregate, identified by listing id
type CartItem struct {
	listingID int64
	unitPrice shared.Price
	quantity  int
	addedAt   time.Time
}

// NewCart Create an empty cart for owner
func NewCart(ownerID string) (*Cart, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, ErrInvalidOwner
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate cart ID: %w", err)
	}

	now := time.Now().UTC()
	return &Cart{
		id:        id.String(),
		ownerID:   ownerID,
		createdAt: now,
		updatedAt: now,
		isNew:     true,
	}, nil
}

// ============================================================================
// ReconstructionDTO - For Repository Layer Use Only
// ============================================================================

// ReconstructionDTO Cart reconstruction data transfer object
type ReconstructionDTO struct {
	ID        string
	OwnerID   string
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RebuildFromDTO Reconstruct Cart aggregate root from storage
func RebuildFromDTO(dto ReconstructionDTO) *Cart {
	items := make([]CartItem, len(dto.Items))
	copy(items, dto.Items)
	return &Cart{
		id:        dto.ID,
		ownerID:   dto.OwnerID,
		items:     items,
		createdAt: dto.CreatedAt,
		updatedAt: dto.UpdatedAt,
		isNew:     false,
	}
}

// ItemReconstructionDTO Cart item reconstruction data transfer object
type ItemReconstructionDTO struct {
	ListingID int64
	UnitPrice shared.Price
	Quantity  int
	AddedAt   time.Time
}

// RebuildItemFromDTO Rebuild CartItem from storage
func RebuildItemFromDTO(dto ItemReconstructionDTO) CartItem {
	return CartItem{
		listingID: dto.ListingID,
		unitPrice: dto.UnitPrice,
		quantity:  dto.Quantity,
		addedAt:   dto.AddedAt,
	}
}

// ============================================================================
// Aggregate Root Behavior Methods
// ============================================================================

// AddItem merges listingID into the cart.
// An existing item gets quantity+1 and keeps the price captured on its first add;
// otherwise a new item with quantity 1 and the given price is appended.
func (c *Cart) AddItem(listingID int64, price shared.Price) error {
	if listingID <= 0 {
		return NewInvalidListingError(listingID)
	}

	now := time.Now().UTC()
	if i := c.indexOf(listingID); i >= 0 {
		c.items[i].quantity++
		c.updatedAt = now
		c.Record(NewItemAddedEvent(c.id, c.ownerID, listingID, c.items[i].quantity, c.items[i].unitPrice))
		return nil
	}

	c.items = append(c.items, CartItem{
		listingID: listingID,
		unitPrice: price,
		quantity:  1,
		addedAt:   now,
	})
	c.updatedAt = now
	c.Record(NewItemAddedEvent(c.id, c.ownerID, listingID, 1, price))
	return nil
}

// RemoveItem deletes the whole line for listingID; there is no decrement.
func (c *Cart) RemoveItem(listingID int64) error {
	i := c.indexOf(listingID)
	if i < 0 {
		return NewItemNotFoundError(listingID)
	}

	c.items = append(c.items[:i], c.items[i+1:]...)
	c.updatedAt = time.Now().UTC()
	c.Record(NewItemRemovedEvent(c.id, c.ownerID, listingID))
	return nil
}

// Clear empties the cart; the repository removes the cart row afterwards.
func (c *Cart) Clear() {
	removed := len(c.items)
	c.items = nil
	c.updatedAt = time.Now().UTC()
	c.Record(NewClearedEvent(c.id, c.ownerID, removed))
}

func (c *Cart) indexOf(listingID int64) int {
	for i, item := range c.items {
		if item.listingID == listingID {
			return i
		}
	}
	return -1
}

// ============================================================================
// Getters - Read-only Accessors
// ============================================================================

func (c *Cart) ID() string           { return c.id }
func (c *Cart) OwnerID() string      { return c.ownerID }
func (c *Cart) CreatedAt() time.Time { return c.createdAt }
func (c *Cart) UpdatedAt() time.Time { return c.updatedAt }
func (c *Cart) IsEmpty() bool        { return len(c.items) == 0 }

// IsNew Repository uses this to decide between insert and update
func (c *Cart) IsNew() bool { return c.isNew }

// MarkPersisted Repository calls this after a successful save
func (c *Cart) MarkPersisted() { c.isNew = false }

// Items Return copy of cart items
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Item looks up the line for listingID.
func (c *Cart) Item(listingID int64) (CartItem, bool) {
	if i := c.indexOf(listingID); i >= 0 {
		return c.items[i], true
	}
	return CartItem{}, false
}

// TotalQuantity sums quantities across all lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.items {
		total += item.quantity
	}
	return total
}

func (item CartItem) ListingID() int64        { return item.listingID }
func (item CartItem) UnitPrice() shared.Price { return item.unitPrice }
func (item CartItem) Quantity() int           { return item.quantity }
func (item CartItem) AddedAt() time.Time      { return item.addedAt }

// Compile-time check that Cart implements AggregateRoot interface
var _ shared.AggregateRoot = (*Cart)(nil)
