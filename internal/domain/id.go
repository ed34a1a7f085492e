package domain

// NextID returns the next identifier for a collection whose existing ids are
// given: one past the current maximum, or 1 for an empty collection. Gaps
// left by deletions are never reused while a higher id exists.
func NextID(ids []int) int {
	next := 1
	for _, id := range ids {
		if id >= next {
			next = id + 1
		}
	}
	return next
}
