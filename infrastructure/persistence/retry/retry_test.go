package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"propertyhub/domain/cart"
	"propertyhub/domain/shared"

	mysqlDriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

func fastConfig() Config {
	cfg := DefaultConfig
	cfg.Enabled = true
	cfg.InitialDelay = time.Millisecond
	cfg.MaxDelay = 2 * time.Millisecond
	return cfg
}

func TestIsRetryableError(t *testing.T) {
	cfg := fastConfig()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"concurrent cart creation", cart.NewConcurrentModificationError("user-a"), true},
		{"wrapped concurrent", fmt.Errorf("save: %w", cart.ErrConcurrentModification), true},
		{"mysql deadlock", &mysqlDriver.MySQLError{Number: 1213}, true},
		{"mysql lock timeout", &mysqlDriver.MySQLError{Number: 1205}, true},
		{"mysql duplicate", &mysqlDriver.MySQLError{Number: 1062}, false},
		{"postgres serialization", &pgconn.PgError{Code: "40001"}, true},
		{"postgres deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, false},
		{"sqlite busy", errors.New("database is locked"), true},
		{"domain not found", cart.NewItemNotFoundError(42), false},
		{"forbidden", shared.NewForbiddenError("enquiry", "no"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryableError(tt.err, cfg); got != tt.want {
				t.Errorf("IsRetryableError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRetryableErrorHonoursFlags(t *testing.T) {
	cfg := fastConfig()
	cfg.RetryOnDeadlock = false
	cfg.RetryOnConcurrentModification = false

	if IsRetryableError(&pgconn.PgError{Code: "40P01"}, cfg) {
		t.Error("deadlock retry disabled but reported retryable")
	}
	if IsRetryableError(cart.ErrConcurrentModification, cfg) {
		t.Error("concurrent modification retry disabled but reported retryable")
	}
}

func TestExecuteWithRetry(t *testing.T) {
	t.Run("disabled runs once", func(t *testing.T) {
		calls := 0
		err := ExecuteWithRetry(context.Background(), DefaultConfig, func(ctx context.Context) error {
			calls++
			return cart.ErrConcurrentModification
		})
		if !errors.Is(err, cart.ErrConcurrentModification) || calls != 1 {
			t.Errorf("calls = %d, err = %v", calls, err)
		}
	})

	t.Run("retries transient until success", func(t *testing.T) {
		calls := 0
		err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return &mysqlDriver.MySQLError{Number: 1213}
			}
			return nil
		})
		if err != nil || calls != 3 {
			t.Errorf("calls = %d, err = %v", calls, err)
		}
	})

	t.Run("stops on domain failure", func(t *testing.T) {
		calls := 0
		err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
			calls++
			return cart.NewCartNotFoundError("user-a")
		})
		if !errors.Is(err, cart.ErrCartNotFound) || calls != 1 {
			t.Errorf("calls = %d, err = %v", calls, err)
		}
	})

	t.Run("gives up after max attempts", func(t *testing.T) {
		calls := 0
		err := ExecuteWithRetry(context.Background(), fastConfig(), func(ctx context.Context) error {
			calls++
			return errors.New("deadlock detected")
		})
		if err == nil || calls != 3 {
			t.Errorf("calls = %d, err = %v", calls, err)
		}
	})

	t.Run("honours cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := ExecuteWithRetry(ctx, fastConfig(), func(ctx context.Context) error {
			t.Fatal("fn must not run with a cancelled context")
			return nil
		})
		if !errors.Is(err, context.Canceled) {
			t.Errorf("err = %v, want context.Canceled", err)
		}
	})
}

func TestExponentialBackoffWithJitter(t *testing.T) {
	cfg := DefaultConfig
	cfg.JitterEnabled = false

	if got := ExponentialBackoffWithJitter(0, cfg); got != 0 {
		t.Errorf("attempt 0 = %v", got)
	}
	if got := ExponentialBackoffWithJitter(2, cfg); got != 200*time.Millisecond {
		t.Errorf("attempt 2 = %v, want 200ms", got)
	}
	if got := ExponentialBackoffWithJitter(10, cfg); got != cfg.MaxDelay {
		t.Errorf("attempt 10 = %v, want cap %v", got, cfg.MaxDelay)
	}
}
