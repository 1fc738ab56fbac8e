package ax

// Validator is implemented by anything the cache can check for liveness.
// *Element and Elements are Validators.
type Validator interface {
	IsValid() bool
}

// Store is caller-owned storage the cache reads and writes one slot of.
// The cache never manages the lifetime of the store itself.
type Store interface {
	Load(key any) (any, bool)
	Store(key, value any)
	Delete(key any)
}

// Slots is a plain map Store, the field bag a wrapper object keeps its
// memoized lookups in. It is not safe for concurrent use.
type Slots map[any]any

// Load returns the value stored at key.
func (s Slots) Load(key any) (any, bool) {
	v, ok := s[key]
	return v, ok
}

// Store sets the value at key.
func (s Slots) Store(key, value any) { s[key] = value }

// Delete clears key.
func (s Slots) Delete(key any) { delete(s, key) }

// Cached is a read-through cache over one slot of store.
//
// A stored value is returned untouched when it is still valid and verify
// (optional) accepts it. Otherwise resolve runs; a fresh value that passes
// both checks is stored and returned, anything else clears the slot and
// reports false. Invalidation happens only here, on read.
//
// resolve must not re-enter Cached for the same store and key.
func Cached[T Validator](store Store, key any, resolve func() T, verify func(T) bool) (T, bool) {
	if store == nil || resolve == nil {
		panic(misuse("Cached requires a store and a resolver"))
	}
	if v, ok := store.Load(key); ok {
		if t, ok := v.(T); ok && usable(t, verify) {
			return t, true
		}
	}
	fresh := resolve()
	if !usable(fresh, verify) {
		store.Delete(key)
		var zero T
		return zero, false
	}
	store.Store(key, fresh)
	return fresh, true
}

func usable[T Validator](v T, verify func(T) bool) bool {
	if any(v) == nil || !v.IsValid() {
		return false
	}
	return verify == nil || verify(v)
}

// Slot is a single cached value, for wrappers that keep one field per
// memoized lookup instead of a Slots bag.
type Slot[T Validator] struct {
	value T
	set   bool
}

// Get returns the cached value, re-resolving it under the same rules as
// Cached.
func (s *Slot[T]) Get(resolve func() T, verify func(T) bool) (T, bool) {
	if resolve == nil {
		panic(misuse("Slot.Get requires a resolver"))
	}
	if s.set && usable(s.value, verify) {
		return s.value, true
	}
	fresh := resolve()
	if !usable(fresh, verify) {
		s.Reset()
		var zero T
		return zero, false
	}
	s.value, s.set = fresh, true
	return fresh, true
}

// Peek returns the stored value without checking or resolving it.
func (s *Slot[T]) Peek() (T, bool) {
	return s.value, s.set
}

// Reset clears the slot.
func (s *Slot[T]) Reset() {
	var zero T
	s.value, s.set = zero, false
}
