// Package lock provides per-key mutual exclusion for cart mutations.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"propertyhub/domain/shared"
)

// ErrLockTimeout is returned when the wait limit elapses before the key is free.
var ErrLockTimeout = fmt.Errorf("lock wait limit exceeded: %w", shared.ErrConflict)

// LocalLocker serializes callers inside one process. A key's slot lives only
// while someone holds or waits for it.
type LocalLocker struct {
	mu        sync.Mutex
	keys      map[string]*slot
	waitLimit time.Duration
}

type slot struct {
	ch   chan struct{}
	refs int // holders plus waiters
}

func NewLocalLocker(waitLimit time.Duration) *LocalLocker {
	return &LocalLocker{
		keys:      make(map[string]*slot),
		waitLimit: waitLimit,
	}
}

func (l *LocalLocker) join(key string) *slot {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.keys[key]
	if !ok {
		s = &slot{ch: make(chan struct{}, 1)}
		l.keys[key] = s
	}
	s.refs++
	return s
}

func (l *LocalLocker) leave(key string, s *slot) {
	l.mu.Lock()
	defer l.mu.Unlock()

	s.refs--
	if s.refs == 0 {
		delete(l.keys, key)
	}
}

// Acquire blocks until key is free, ctx is done, or the wait limit passes.
func (l *LocalLocker) Acquire(ctx context.Context, key string) (func(context.Context) error, error) {
	s := l.join(key)

	if l.waitLimit > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.waitLimit)
		defer cancel()
	}

	select {
	case s.ch <- struct{}{}:
	case <-ctx.Done():
		l.leave(key, s)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrLockTimeout, key)
		}
		return nil, ctx.Err()
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			<-s.ch
			l.leave(key, s)
		})
		return nil
	}, nil
}

// Keys reports how many keys are currently held or awaited.
func (l *LocalLocker) Keys() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.keys)
}
