package relational

import (
	"context"
	"fmt"

	"propertyhub/domain/shared"
	"propertyhub/infrastructure/persistence"
	"propertyhub/infrastructure/persistence/retry"
	"propertyhub/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UnitOfWork runs one cart or enquiry mutation in a GORM transaction and
// writes the events the touched aggregates recorded (cart.item_added,
// cart.cleared, enquiry.status_changed, ...) to outbox_events before commit.
//
// Cart saves replace the whole item set and enquiry saves upsert the full row,
// so a retried attempt re-applies complete aggregate state.
type UnitOfWork struct {
	db          *gorm.DB
	outbox      *OutboxRepository
	touched     []shared.AggregateRoot
	retryConfig retry.Config
}

func NewUnitOfWork(db *gorm.DB, retryConfig retry.Config) *UnitOfWork {
	return &UnitOfWork{
		db:          db,
		outbox:      NewOutboxRepository(db),
		retryConfig: retryConfig,
	}
}

// Execute hands fn a context carrying the transaction; repositories pick it
// up through getDB. The outbox batch commits or rolls back with fn's writes.
func (u *UnitOfWork) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return retry.ExecuteWithRetry(ctx, u.retryConfig, func(ctx context.Context) error {
		u.touched = nil

		return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			txCtx := persistence.ContextWithTx(ctx, tx)
			if err := fn(txCtx); err != nil {
				return err
			}
			return u.flushEvents(txCtx, tx)
		})
	})
}

func (u *UnitOfWork) flushEvents(ctx context.Context, tx *gorm.DB) error {
	var (
		events     []shared.DomainEvent
		aggregates []string
	)
	for _, agg := range u.touched {
		pulled := agg.PullEvents()
		if len(pulled) == 0 {
			continue
		}
		events = append(events, pulled...)
		aggregates = append(aggregates, agg.ID())
	}
	if len(events) == 0 {
		return nil
	}

	if err := u.outbox.saveEventsWithTx(tx, events); err != nil {
		return fmt.Errorf("failed to save events to outbox: %w", err)
	}

	logger.FromContext(ctx).Debug("Outbox events staged",
		zap.Strings("aggregates", aggregates),
		zap.Int("events", len(events)))
	return nil
}

// RegisterNew tracks a cart or enquiry created in this unit of work.
func (u *UnitOfWork) RegisterNew(aggregate shared.AggregateRoot) {
	u.touched = append(u.touched, aggregate)
}

// RegisterDirty tracks a cart whose items changed or an enquiry whose status changed.
func (u *UnitOfWork) RegisterDirty(aggregate shared.AggregateRoot) {
	u.touched = append(u.touched, aggregate)
}

// RegisterRemoved tracks a cleared cart; its cart.cleared event outlives the row.
func (u *UnitOfWork) RegisterRemoved(aggregate shared.AggregateRoot) {
	u.touched = append(u.touched, aggregate)
}

// UnitOfWorkFactory hands out one UnitOfWork per business operation.
type UnitOfWorkFactory struct {
	db          *gorm.DB
	retryConfig retry.Config
}

func NewUnitOfWorkFactory(db *gorm.DB, retryConfig retry.Config) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db, retryConfig: retryConfig}
}

func (f *UnitOfWorkFactory) New() shared.UnitOfWork {
	return NewUnitOfWork(f.db, f.retryConfig)
}

var (
	_ shared.UnitOfWork        = (*UnitOfWork)(nil)
	_ shared.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)
)
