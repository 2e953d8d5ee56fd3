package memory

import (
	"context"
	"fmt"
	"time"

	"propertyhub/domain/shared"
	"propertyhub/infrastructure/persistence/po"
)

// OutboxRepository in-memory outbox, drained by the in-process relay
type OutboxRepository struct {
	store *Store
}

func NewOutboxRepository(store *Store) *OutboxRepository {
	return &OutboxRepository{store: store}
}

func (r *OutboxRepository) SaveEvent(ctx context.Context, event shared.DomainEvent) error {
	if err := shared.ValidateEvent(event); err != nil {
		return fmt.Errorf("invalid domain event: %w", err)
	}

	outboxPO, err := po.FromDomainEvent(event)
	if err != nil {
		return fmt.Errorf("failed to convert domain event: %w", err)
	}

	return r.store.write(ctx, op{
		apply: func(s *Store) {
			s.outbox = append(s.outbox, outboxPO)
		},
	})
}

// GetPendingEvents returns copies of pending events, oldest first.
func (r *OutboxRepository) GetPendingEvents(_ context.Context, limit int) ([]*po.OutboxEventPO, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var events []*po.OutboxEventPO
	for _, e := range r.store.outbox {
		if len(events) >= limit {
			break
		}
		if e.Status == string(po.EventStatusPending) {
			cp := *e
			events = append(events, &cp)
		}
	}
	return events, nil
}

func (r *OutboxRepository) MarkEventProcessing(_ context.Context, eventID string) error {
	return r.update(eventID, func(e *po.OutboxEventPO) error {
		if e.Status != string(po.EventStatusPending) {
			return fmt.Errorf("event not found or already being processed: %s", eventID)
		}
		e.Status = string(po.EventStatusProcessing)
		return nil
	})
}

// MarkEventPublished drops the row; only pending, in-flight and failed
// events stay in memory.
func (r *OutboxRepository) MarkEventPublished(_ context.Context, eventID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for i, e := range r.store.outbox {
		if e.ID != eventID {
			continue
		}
		r.store.outbox = append(r.store.outbox[:i], r.store.outbox[i+1:]...)
		return nil
	}
	return fmt.Errorf("event not found: %s", eventID)
}

func (r *OutboxRepository) MarkEventFailed(_ context.Context, eventID string, maxRetries int) error {
	return r.update(eventID, func(e *po.OutboxEventPO) error {
		e.RetryCount++
		if e.RetryCount < maxRetries {
			e.Status = string(po.EventStatusPending)
		} else {
			e.Status = string(po.EventStatusFailed)
		}
		return nil
	})
}

// Events returns a snapshot of the unpublished outbox rows; used by tests and diagnostics.
func (r *OutboxRepository) Events() []po.OutboxEventPO {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]po.OutboxEventPO, len(r.store.outbox))
	for i, e := range r.store.outbox {
		out[i] = *e
	}
	return out
}

func (r *OutboxRepository) update(eventID string, fn func(e *po.OutboxEventPO) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, e := range r.store.outbox {
		if e.ID != eventID {
			continue
		}
		if err := fn(e); err != nil {
			return err
		}
		e.UpdatedAt = time.Now().UTC()
		return nil
	}
	return fmt.Errorf("event not found: %s", eventID)
}

var _ shared.OutboxRepository = (*OutboxRepository)(nil)
