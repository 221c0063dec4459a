package store

import "sync"

// Value is an observable in-memory value. Subscribers run synchronously,
// in subscription order, after every Set or Mutate.
type Value[T any] struct {
	mu     sync.Mutex
	val    T
	nextID int
	subs   map[int]func(T)
	order  []int
}

func NewValue[T any](initial T) *Value[T] {
	return &Value[T]{val: initial, subs: make(map[int]func(T))}
}

func (v *Value[T]) Get() T {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.val
}

func (v *Value[T]) Set(val T) {
	v.Mutate(func(T) T { return val })
}

// Mutate replaces the value with fn(current) and notifies subscribers.
func (v *Value[T]) Mutate(fn func(T) T) T {
	v.mu.Lock()
	v.val = fn(v.val)
	val := v.val
	subs := make([]func(T), 0, len(v.order))
	for _, id := range v.order {
		subs = append(subs, v.subs[id])
	}
	v.mu.Unlock()

	for _, fn := range subs {
		fn(val)
	}
	return val
}

// Subscribe registers fn and returns a function that removes it.
func (v *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	v.mu.Lock()
	defer v.mu.Unlock()
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	v.order = append(v.order, id)

	var once sync.Once
	return func() {
		once.Do(func() {
			v.mu.Lock()
			defer v.mu.Unlock()
			delete(v.subs, id)
			for i, o := range v.order {
				if o == id {
					v.order = append(v.order[:i], v.order[i+1:]...)
					break
				}
			}
		})
	}
}
