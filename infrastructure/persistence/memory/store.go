/*
Package memory keeps aggregates in process memory behind the same ports as
the relational package.

Rows are stored as persistence objects, so every load rebuilds a detached
aggregate. Writes made inside UnitOfWork.Execute are staged and applied
together on commit under the store lock; a failed Execute leaves the store
untouched. Reads always see committed state only.
*/
package memory

import (
	"context"
	"sync"

	"propertyhub/infrastructure/persistence/po"
)

type cartRecord struct {
	cart  po.CartPO
	items []po.CartItemPO
}

// Store is the shared in-memory database.
type Store struct {
	mu        sync.RWMutex
	carts     map[string]cartRecord   // by owner ID
	enquiries map[string]po.EnquiryPO // by enquiry ID
	outbox    []*po.OutboxEventPO
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		carts:     make(map[string]cartRecord),
		enquiries: make(map[string]po.EnquiryPO),
	}
}

// op is one staged write. check runs for every op before any apply, so a
// conflicting commit applies nothing.
type op struct {
	check func(s *Store) error
	apply func(s *Store)
}

type tx struct {
	ops []op
}

type txKey struct{}

func contextWithTx(ctx context.Context, t *tx) context.Context {
	return context.WithValue(ctx, txKey{}, t)
}

func txFromContext(ctx context.Context) *tx {
	if t, ok := ctx.Value(txKey{}).(*tx); ok {
		return t
	}
	return nil
}

// write stages o when ctx carries a transaction, otherwise applies it now.
func (s *Store) write(ctx context.Context, o op) error {
	if t := txFromContext(ctx); t != nil {
		t.ops = append(t.ops, o)
		return nil
	}
	return s.commit(&tx{ops: []op{o}})
}

func (s *Store) commit(t *tx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, o := range t.ops {
		if o.check == nil {
			continue
		}
		if err := o.check(s); err != nil {
			return err
		}
	}
	for _, o := range t.ops {
		o.apply(s)
	}
	return nil
}

// Ping always succeeds; it lets health checks treat every backend alike.
func (s *Store) Ping(context.Context) error {
	return nil
}
