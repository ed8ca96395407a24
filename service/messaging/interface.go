package messaging

// Queue is an ordered, in-process buffer of pending deliveries.
// Implementations are not required to be safe for concurrent use.
type Queue[T any] interface {
	// Publish appends a message at the tail
	Publish(t T)

	// Len returns the number of queued messages
	Len() int

	// At returns the message at index i, counting from the head
	At(i int) T

	// Discard removes the first n messages
	Discard(n int)

	// Reset removes every message
	Reset()
}
