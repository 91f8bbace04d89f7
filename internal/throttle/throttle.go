// Package throttle counts failed logins per identifier and blocks further
// attempts once the limit is reached. A counter is cleared only by a
// successful login, or by the store's TTL when one is configured.
//
// Counters are keyed on the normalised email, not the client address. A
// password-guessing run against one account is what this stops, and it
// stops it even when the attempts come from many addresses. The cost is
// that anyone can lock an account out by failing on purpose; the TTL
// (LOGIN_FAILURE_TTL) bounds how long that lasts, so production should set
// one.
//
// Check runs before the password comparison, so a throttled caller learns
// nothing about whether the password was right and does not spend a bcrypt
// comparison either.
package throttle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lalith-99/lockerroom/internal/cache"
)

const DefaultMaxFailures = 5

var ErrThrottled = errors.New("too many failed login attempts")

type Throttle struct {
	store       cache.Store
	maxFailures int64
}

func New(store cache.Store, maxFailures int) *Throttle {
	if maxFailures < 1 {
		maxFailures = DefaultMaxFailures
	}
	return &Throttle{store: store, maxFailures: int64(maxFailures)}
}

func key(identifier string) string {
	return "login_failures:" + strings.ToLower(strings.TrimSpace(identifier))
}

// Check returns ErrThrottled when identifier has reached the failure limit.
// Callers run it before looking at credentials.
func (t *Throttle) Check(ctx context.Context, identifier string) error {
	n, _, err := t.store.Get(ctx, key(identifier))
	if err != nil {
		return fmt.Errorf("read failure counter: %w", err)
	}
	if n >= t.maxFailures {
		return ErrThrottled
	}
	return nil
}

// Fail records one failed attempt and returns the new count.
func (t *Throttle) Fail(ctx context.Context, identifier string) (int64, error) {
	n, err := t.store.Incr(ctx, key(identifier))
	if err != nil {
		return 0, fmt.Errorf("increment failure counter: %w", err)
	}
	return n, nil
}

// Succeed clears the identifier's counter.
func (t *Throttle) Succeed(ctx context.Context, identifier string) error {
	if err := t.store.Del(ctx, key(identifier)); err != nil {
		return fmt.Errorf("clear failure counter: %w", err)
	}
	return nil
}
