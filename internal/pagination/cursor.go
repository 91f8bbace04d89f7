package pagination

import (
	"context"
	"fmt"
	"math"

	"github.com/lalith-99/lockerroom/internal/cache"
)

// Cursor remembers, per user and team, which page the "next" listing should
// serve when the caller does not name one. State lives in the injected store
// so it can be shared between processes (redis) or reset in tests (memory).
type Cursor struct {
	store cache.Store
}

func NewCursor(store cache.Store) *Cursor {
	return &Cursor{store: store}
}

func cursorKey(userID, teamID int64) string {
	return fmt.Sprintf("page_cursor:%d:%d", userID, teamID)
}

// Resolve picks the page to serve without moving the cursor. An explicit
// positive page wins over the stored one; otherwise the stored page is used,
// or the first page if the user has not listed this team before.
func (c *Cursor) Resolve(ctx context.Context, userID, teamID int64, rawPage string) (int, error) {
	if n, ok := ParseLeadingInt(rawPage); ok && n > 0 {
		return n, nil
	}
	stored, found, err := c.store.Get(ctx, cursorKey(userID, teamID))
	if err != nil {
		return 0, fmt.Errorf("read page cursor: %w", err)
	}
	if found && stored > 0 {
		return int(stored), nil
	}
	return DefaultPage, nil
}

// Commit records that page was served, so the next bare Resolve returns the
// page after it. Callers commit only once the rows were actually read; a
// failed listing leaves the cursor where it was and the same page is served
// again on retry. An explicit page commits like any other, which is how
// "?page=1" restarts the walk at 2, 3, ...
func (c *Cursor) Commit(ctx context.Context, userID, teamID int64, page int) error {
	next := page
	if page < math.MaxInt {
		next = page + 1
	}
	if err := c.store.Set(ctx, cursorKey(userID, teamID), int64(next)); err != nil {
		return fmt.Errorf("store page cursor: %w", err)
	}
	return nil
}
