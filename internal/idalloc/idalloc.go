// Package idalloc implements gap-filling identifier assignment: a new row
// gets the smallest positive integer not already used in its collection, so
// ids freed by deletes are handed out again.
//
// SmallestUnused is only correct when the caller holds the collection's
// allocation lock between reading the ids and inserting the new row; the
// postgres stores take a transaction-scoped advisory lock for that.
package idalloc

// SmallestUnused returns the smallest positive integer absent from ids.
// ids may be unsorted and may contain duplicates or non-positive values.
func SmallestUnused(ids []int64) int64 {
	used := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id > 0 {
			used[id] = struct{}{}
		}
	}

	next := int64(1)
	for {
		if _, ok := used[next]; !ok {
			return next
		}
		next++
	}
}

// LockKey is the advisory lock key for a collection's allocation.
func LockKey(collection string) string {
	return "idalloc:" + collection
}
