package memory

import (
	"github.com/viant/fbp/service/messaging"
)

// Queue implements a slice backed FIFO messaging.Queue
type Queue[T any] struct {
	messages []T
}

// Publish appends t at the tail
func (q *Queue[T]) Publish(t T) {
	q.messages = append(q.messages, t)
}

// Len returns the current number of messages in the queue
func (q *Queue[T]) Len() int {
	return len(q.messages)
}

// At returns the message at index i; it panics when i is out of range
func (q *Queue[T]) At(i int) T {
	return q.messages[i]
}

// Discard removes the first n messages, clamping n to the queue size
func (q *Queue[T]) Discard(n int) {
	if n <= 0 {
		return
	}
	if n >= len(q.messages) {
		q.Reset()
		return
	}
	var zero T
	for i := 0; i < n; i++ {
		q.messages[i] = zero
	}
	q.messages = q.messages[n:]
}

// Reset removes every message
func (q *Queue[T]) Reset() {
	q.messages = nil
}

// Messages returns a copy of the queued messages in FIFO order
func (q *Queue[T]) Messages() []T {
	return append([]T{}, q.messages...)
}

// NewQueue creates an empty queue
func NewQueue[T any]() *Queue[T] {
	return &Queue[T]{}
}

// ensure Queue implements messaging.Queue interface
var _ messaging.Queue[any] = (*Queue[any])(nil)
