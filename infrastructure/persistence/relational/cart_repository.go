package relational

import (
	"context"
	"errors"

	"propertyhub/domain/cart"
	"propertyhub/infrastructure/persistence"
	"propertyhub/infrastructure/persistence/po"

	"gorm.io/gorm"
)

// CartRepository GORM implementation of cart repository
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository Create cart repository
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// getDB returns the transaction from context if available, otherwise the default db
func (r *CartRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// FindByOwnerID Load the owner's cart and its items
func (r *CartRepository) FindByOwnerID(ctx context.Context, ownerID string) (*cart.Cart, error) {
	db := r.getDB(ctx)

	var cartPO po.CartPO
	if err := db.Where("owner_id = ?", ownerID).First(&cartPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.NewCartNotFoundError(ownerID)
		}
		return nil, err
	}

	// Items are queried explicitly instead of Preload to keep the aggregate boundary clear
	var itemPOs []po.CartItemPO
	if err := db.Where("cart_id = ?", cartPO.ID).Order("added_at ASC, id ASC").Find(&itemPOs).Error; err != nil {
		return nil, err
	}

	return cartPO.ToDomain(itemPOs)
}

// Save Save cart (create or update) and replace its items
// When called within UoW.Execute(), it uses the transaction from context
// When called standalone, it creates its own transaction for atomicity
func (r *CartRepository) Save(ctx context.Context, c *cart.Cart) error {
	cartPO, itemPOs := po.FromCartDomain(c)

	var err error
	if tx := persistence.TxFromContext(ctx); tx != nil {
		err = r.saveWithTx(tx, c, cartPO, itemPOs)
	} else {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return r.saveWithTx(tx, c, cartPO, itemPOs)
		})
	}
	if err != nil {
		return err
	}

	c.MarkPersisted()
	return nil
}

func (r *CartRepository) saveWithTx(tx *gorm.DB, c *cart.Cart, cartPO *po.CartPO, itemPOs []po.CartItemPO) error {
	if c.IsNew() {
		if err := tx.Create(cartPO).Error; err != nil {
			// another request created this owner's cart first
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return cart.NewConcurrentModificationError(c.OwnerID())
			}
			return err
		}
	} else if err := tx.Save(cartPO).Error; err != nil {
		return err
	}

	// Delete old items then insert the current set
	if err := tx.Where("cart_id = ?", cartPO.ID).Delete(&po.CartItemPO{}).Error; err != nil {
		return err
	}

	if len(itemPOs) > 0 {
		if err := tx.Create(&itemPOs).Error; err != nil {
			return err
		}
	}

	return nil
}

// Remove Delete the cart row and its items
func (r *CartRepository) Remove(ctx context.Context, cartID string) error {
	remove := func(tx *gorm.DB) error {
		if err := tx.Where("cart_id = ?", cartID).Delete(&po.CartItemPO{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", cartID).Delete(&po.CartPO{}).Error
	}

	if tx := persistence.TxFromContext(ctx); tx != nil {
		return remove(tx)
	}
	return r.db.WithContext(ctx).Transaction(remove)
}

// Compile-time interface implementation check
var _ cart.Repository = (*CartRepository)(nil)
