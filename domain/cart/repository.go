package cart

import "context"

// Repository Cart repository interface
type Repository interface {
	// FindByOwnerID Find the owner's cart with its items
	// Returns ErrCartNotFound when the owner has never added anything
	FindByOwnerID(ctx context.Context, ownerID string) (*Cart, error)

	// Save Persist the full cart-with-items state
	// Items are replaced wholesale inside the caller's transaction
	Save(ctx context.Context, cart *Cart) error

	// Remove Delete the cart and, by cascade, its items
	Remove(ctx context.Context, cartID string) error
}
