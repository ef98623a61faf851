package repository

// ring is a bounded FIFO log: pushing past capacity evicts the oldest entries.
type ring[T any] struct {
	capacity int
	items    []T
}

func newRing[T any](capacity int) *ring[T] {
	return &ring[T]{capacity: capacity}
}

func (r *ring[T]) push(v T) {
	r.items = append(r.items, v)
	if len(r.items) > r.capacity {
		r.items = r.items[len(r.items)-r.capacity:]
	}
}

func (r *ring[T]) snapshot() []T {
	out := make([]T, len(r.items))
	copy(out, r.items)
	return out
}

func (r *ring[T]) size() int {
	return len(r.items)
}

func (r *ring[T]) removeAt(i int) T {
	v := r.items[i]
	r.items = append(r.items[:i], r.items[i+1:]...)
	return v
}
