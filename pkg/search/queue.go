package search

import "github.com/aretw0/digits/pkg/domain"

// queue is a FIFO frontier. Popped slots are released so expanded states can be collected.
type queue struct {
	items []domain.State
	head  int
}

func newQueue(init ...domain.State) *queue {
	return &queue{items: append([]domain.State(nil), init...)}
}

func (q *queue) Len() int {
	return len(q.items) - q.head
}

func (q *queue) Push(s domain.State) {
	q.items = append(q.items, s)
}

func (q *queue) Pop() domain.State {
	s := q.items[q.head]
	q.items[q.head] = domain.State{}
	q.head++

	// Compact once the consumed prefix dominates the backing array.
	if q.head > 1024 && q.head*2 > len(q.items) {
		q.items = append([]domain.State(nil), q.items[q.head:]...)
		q.head = 0
	}
	return s
}
