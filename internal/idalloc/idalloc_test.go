package idalloc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmallestUnused(t *testing.T) {
	tests := []struct {
		name string
		ids  []int64
		want int64
	}{
		{name: "empty collection", ids: nil, want: 1},
		{name: "dense prefix", ids: []int64{1, 2, 3}, want: 4},
		{name: "gap in the middle", ids: []int64{1, 2, 4, 5}, want: 3},
		{name: "first id freed", ids: []int64{2, 3}, want: 1},
		{name: "unsorted with duplicates", ids: []int64{5, 1, 3, 1, 2, 5}, want: 4},
		{name: "non-positive ignored", ids: []int64{-1, 0, 1}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SmallestUnused(tt.ids))
		})
	}
}

// Simulates N creates followed by random deletes and checks the allocator
// always returns the smallest id missing from what remains.
func TestSmallestUnused_CreateDeleteSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		var live []int64
		n := rng.Intn(30) + 1
		for i := 0; i < n; i++ {
			live = append(live, SmallestUnused(live))
		}
		for i := 1; i <= n; i++ {
			assert.Contains(t, live, int64(i))
		}

		kept := live[:0]
		deleted := map[int64]bool{}
		for _, id := range live {
			if rng.Intn(3) == 0 {
				deleted[id] = true
				continue
			}
			kept = append(kept, id)
		}

		want := int64(1)
		for ; want <= int64(n); want++ {
			if deleted[want] {
				break
			}
		}
		assert.Equal(t, want, SmallestUnused(kept))
	}
}

func TestLockKey(t *testing.T) {
	assert.Equal(t, "idalloc:team_messages", LockKey("team_messages"))
	assert.NotEqual(t, LockKey("team_messages"), LockKey("direct_messages"))
}
