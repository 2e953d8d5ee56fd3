package memory

import (
	"context"

	"propertyhub/domain/cart"
	"propertyhub/infrastructure/persistence/po"
)

// CartRepository in-memory implementation of cart.Repository
type CartRepository struct {
	store *Store
}

func NewCartRepository(store *Store) *CartRepository {
	return &CartRepository{store: store}
}

func (r *CartRepository) FindByOwnerID(ctx context.Context, ownerID string) (*cart.Cart, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	rec, ok := r.store.carts[ownerID]
	r.store.mu.RUnlock()

	if !ok {
		return nil, cart.NewCartNotFoundError(ownerID)
	}
	// rec.items is never mutated in place, ToDomain copies it
	return rec.cart.ToDomain(rec.items)
}

func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cartPO, itemPOs := po.FromCartDomain(c)
	isNew := c.IsNew()
	ownerID := c.OwnerID()

	err := r.store.write(ctx, op{
		check: func(s *Store) error {
			if existing, ok := s.carts[ownerID]; ok && isNew && existing.cart.ID != cartPO.ID {
				return cart.NewConcurrentModificationError(ownerID)
			}
			return nil
		},
		apply: func(s *Store) {
			s.carts[ownerID] = cartRecord{cart: *cartPO, items: itemPOs}
		},
	})
	if err != nil {
		return err
	}

	c.MarkPersisted()
	return nil
}

func (r *CartRepository) Remove(ctx context.Context, cartID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return r.store.write(ctx, op{
		apply: func(s *Store) {
			for owner, rec := range s.carts {
				if rec.cart.ID == cartID {
					delete(s.carts, owner)
					return
				}
			}
		},
	})
}

var _ cart.Repository = (*CartRepository)(nil)
