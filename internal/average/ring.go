package average

import "codeberg.org/mutker/windsensor/internal/errors"

// RingBuffer holds the most recent values up to a fixed capacity. Once full,
// each Add overwrites the oldest value.
type RingBuffer[T any] struct {
	values []T
	next   int
	size   int
}

// NewRingBuffer returns an empty buffer with the given capacity.
func NewRingBuffer[T any](capacity int) (*RingBuffer[T], error) {
	if capacity < 1 {
		return nil, errors.New().WithData(errors.ErrInvalidArgument, "ring buffer capacity must be at least 1")
	}

	return &RingBuffer[T]{values: make([]T, capacity)}, nil
}

// Add appends v, evicting the oldest value when the buffer is full.
func (r *RingBuffer[T]) Add(v T) {
	r.values[r.next] = v
	r.next = (r.next + 1) % len(r.values)
	if r.size < len(r.values) {
		r.size++
	}
}

func (r *RingBuffer[T]) Len() int {
	return r.size
}

func (r *RingBuffer[T]) Cap() int {
	return len(r.values)
}

// Values returns a copy of the held values, oldest first.
func (r *RingBuffer[T]) Values() []T {
	out := make([]T, 0, r.size)
	start := (r.next - r.size + len(r.values)) % len(r.values)
	for i := 0; i < r.size; i++ {
		out = append(out, r.values[(start+i)%len(r.values)])
	}

	return out
}

// Each calls fn for every held value, oldest first.
func (r *RingBuffer[T]) Each(fn func(T)) {
	start := (r.next - r.size + len(r.values)) % len(r.values)
	for i := 0; i < r.size; i++ {
		fn(r.values[(start+i)%len(r.values)])
	}
}
