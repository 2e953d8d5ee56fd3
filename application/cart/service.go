/*
Package cart Application Layer - saved-listings use cases

Every mutation runs inside its own unit of work: load or lazily create the
owner's cart, apply the aggregate method, save the full cart and let the
unit of work write the recorded events to the outbox before commit.

Without a Locker the load-modify-save path is unguarded and two concurrent
adds for the same owner can lose an increment. A Locker serializes
mutations per owner.
*/
package cart

import (
	"context"
	"errors"

	"propertyhub/domain/cart"
	"propertyhub/domain/identity"
	"propertyhub/domain/shared"
	"propertyhub/pkg/logger"

	"go.uber.org/zap"
)

// Locker grants per-key mutual exclusion.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(context.Context) error, err error)
}

// ApplicationService Cart application service
type ApplicationService struct {
	cartRepo   cart.Repository
	uowFactory shared.UnitOfWorkFactory
	locker     Locker
}

// Option configures the ApplicationService.
type Option func(*ApplicationService)

// WithLocker serializes mutations per owner.
func WithLocker(l Locker) Option {
	return func(s *ApplicationService) {
		s.locker = l
	}
}

// NewApplicationService Create cart application service
func NewApplicationService(cartRepo cart.Repository, uowFactory shared.UnitOfWorkFactory, opts ...Option) *ApplicationService {
	s := &ApplicationService{
		cartRepo:   cartRepo,
		uowFactory: uowFactory,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem adds listingID to the caller's cart, creating the cart on first use.
func (s *ApplicationService) AddItem(ctx context.Context, caller identity.Context, req AddItemRequest) (*CartResponse, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}
	if req.Price == nil {
		return nil, shared.NewValidationError("cart", "price", "price is required")
	}
	price, err := shared.NewPrice(*req.Price)
	if err != nil {
		return nil, err
	}

	var c *cart.Cart
	err = s.mutate(ctx, caller.CallerID(), func(ctx context.Context, uow shared.UnitOfWork) error {
		var err error
		c, err = s.loadOrCreate(ctx, caller.CallerID())
		if err != nil {
			return err
		}

		if err := c.AddItem(req.ListingID, price); err != nil {
			return err
		}

		isNew := c.IsNew()
		if err := s.cartRepo.Save(ctx, c); err != nil {
			return err
		}

		if isNew {
			uow.RegisterNew(c)
		} else {
			uow.RegisterDirty(c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toCartResponse(c), nil
}

// RemoveItem deletes the caller's line for listingID.
// Fails with cart.ErrCartNotFound or cart.ErrItemNotFound.
func (s *ApplicationService) RemoveItem(ctx context.Context, caller identity.Context, listingID int64) (*RemoveItemResponse, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	err := s.mutate(ctx, caller.CallerID(), func(ctx context.Context, uow shared.UnitOfWork) error {
		c, err := s.cartRepo.FindByOwnerID(ctx, caller.CallerID())
		if err != nil {
			return err
		}

		if err := c.RemoveItem(listingID); err != nil {
			return err
		}

		if err := s.cartRepo.Save(ctx, c); err != nil {
			return err
		}

		uow.RegisterDirty(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &RemoveItemResponse{ListingID: listingID, Message: "Item removed"}, nil
}

// GetCart returns the caller's cart, or an empty projection when none exists yet.
func (s *ApplicationService) GetCart(ctx context.Context, caller identity.Context) (*CartResponse, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	c, err := s.cartRepo.FindByOwnerID(ctx, caller.CallerID())
	if errors.Is(err, cart.ErrCartNotFound) {
		return emptyCartResponse(caller.CallerID()), nil
	}
	if err != nil {
		return nil, err
	}

	return toCartResponse(c), nil
}

// ClearCart removes the caller's cart and all its items. Clearing a missing
// cart succeeds with zero removed items.
func (s *ApplicationService) ClearCart(ctx context.Context, caller identity.Context) (*ClearCartResponse, error) {
	if err := requireCaller(caller); err != nil {
		return nil, err
	}

	removed := 0
	err := s.mutate(ctx, caller.CallerID(), func(ctx context.Context, uow shared.UnitOfWork) error {
		c, err := s.cartRepo.FindByOwnerID(ctx, caller.CallerID())
		if errors.Is(err, cart.ErrCartNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		removed = len(c.Items())
		c.Clear()

		if err := s.cartRepo.Remove(ctx, c.ID()); err != nil {
			return err
		}

		uow.RegisterRemoved(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ClearCartResponse{RemovedItems: removed, Message: "Cart cleared"}, nil
}

func (s *ApplicationService) loadOrCreate(ctx context.Context, ownerID string) (*cart.Cart, error) {
	c, err := s.cartRepo.FindByOwnerID(ctx, ownerID)
	if err == nil {
		return c, nil
	}
	if !errors.Is(err, cart.ErrCartNotFound) {
		return nil, err
	}
	return cart.NewCart(ownerID)
}

// mutate runs fn in a fresh unit of work, holding the owner's lock when a
// Locker is configured.
func (s *ApplicationService) mutate(ctx context.Context, ownerID string, fn func(ctx context.Context, uow shared.UnitOfWork) error) error {
	if s.locker != nil {
		release, err := s.locker.Acquire(ctx, ownerID)
		if err != nil {
			return err
		}
		defer func() {
			// the lease expires on its own if release fails
			if err := release(context.WithoutCancel(ctx)); err != nil {
				logger.FromContext(ctx).Warn("Failed to release cart lock",
					zap.String("owner_id", ownerID), zap.Error(err))
			}
		}()
	}

	uow := s.uowFactory.New()
	return uow.Execute(ctx, func(ctx context.Context) error {
		return fn(ctx, uow)
	})
}

func requireCaller(caller identity.Context) error {
	if caller.IsZero() {
		return shared.NewUnauthenticatedError("missing caller identity")
	}
	return nil
}
