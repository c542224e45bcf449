package scheduler

// Queue is a FIFO of T
type Queue[T any] struct {
	items []T
}

// Push appends items to the tail
func (q *Queue[T]) Push(items ...T) {
	q.items = append(q.items, items...)
}

// Pop removes and returns the head
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	head := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return head, true
}

// Len returns queue size
func (q *Queue[T]) Len() int {
	return len(q.items)
}

// Items returns a copy of queued items, head first
func (q *Queue[T]) Items() []T {
	ret := make([]T, len(q.items))
	copy(ret, q.items)
	return ret
}
