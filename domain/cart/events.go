package cart

import (
	"time"

	"propertyhub/domain/shared"
)

type ItemAddedEvent struct {
	cartID     string
	ownerID    string
	listingID  int64
	quantity   int
	unitPrice  shared.Price
	occurredOn time.Time
}

func NewItemAddedEvent(cartID, ownerID string, listingID int64, quantity int, unitPrice shared.Price) *ItemAddedEvent {
	return &ItemAddedEvent{
		cartID:     cartID,
		ownerID:    ownerID,
		listingID:  listingID,
		quantity:   quantity,
		unitPrice:  unitPrice,
		occurredOn: time.Now().UTC(),
	}
}

func (e *ItemAddedEvent) EventName() string       { return "cart.item_added" }
func (e *ItemAddedEvent) OccurredOn() time.Time   { return e.occurredOn }
func (e *ItemAddedEvent) GetAggregateID() string  { return e.cartID }
func (e *ItemAddedEvent) OwnerID() string         { return e.ownerID }
func (e *ItemAddedEvent) ListingID() int64        { return e.listingID }
func (e *ItemAddedEvent) Quantity() int           { return e.quantity }
func (e *ItemAddedEvent) UnitPrice() shared.Price { return e.unitPrice }

func (e *ItemAddedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"owner_id":   e.ownerID,
		"listing_id": e.listingID,
		"quantity":   e.quantity,
		"unit_price": e.unitPrice.String(),
	}
}

type ItemRemovedEvent struct {
	cartID     string
	ownerID    string
	listingID  int64
	occurredOn time.Time
}

func NewItemRemovedEvent(cartID, ownerID string, listingID int64) *ItemRemovedEvent {
	return &ItemRemovedEvent{
		cartID:     cartID,
		ownerID:    ownerID,
		listingID:  listingID,
		occurredOn: time.Now().UTC(),
	}
}

func (e *ItemRemovedEvent) EventName() string      { return "cart.item_removed" }
func (e *ItemRemovedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ItemRemovedEvent) GetAggregateID() string { return e.cartID }
func (e *ItemRemovedEvent) OwnerID() string        { return e.ownerID }
func (e *ItemRemovedEvent) ListingID() int64       { return e.listingID }

func (e *ItemRemovedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"owner_id":   e.ownerID,
		"listing_id": e.listingID,
	}
}

type ClearedEvent struct {
	cartID       string
	ownerID      string
	removedItems int
	occurredOn   time.Time
}

func NewClearedEvent(cartID, ownerID string, removedItems int) *ClearedEvent {
	return &ClearedEvent{
		cartID:       cartID,
		ownerID:      ownerID,
		removedItems: removedItems,
		occurredOn:   time.Now().UTC(),
	}
}

func (e *ClearedEvent) EventName() string      { return "cart.cleared" }
func (e *ClearedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *ClearedEvent) GetAggregateID() string { return e.cartID }
func (e *ClearedEvent) OwnerID() string        { return e.ownerID }
func (e *ClearedEvent) RemovedItems() int      { return e.removedItems }

func (e *ClearedEvent) Payload() map[string]interface{} {
	return map[string]interface{}{
		"owner_id":      e.ownerID,
		"removed_items": e.removedItems,
	}
}
