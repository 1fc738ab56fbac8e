package ax

import "sort"

// Observable holds a value and notifies watchers when it changes. When built
// with Computed it can re-derive itself from a resolver on Refresh.
type Observable[T any] struct {
	value    T
	resolve  func() T
	equal    func(a, b T) bool
	watchers map[int]func(T)
	next     int
}

// NewObservable returns an observable holding initial. equal decides whether
// a Set is a change; nil means every Set notifies.
func NewObservable[T any](initial T, equal func(a, b T) bool) *Observable[T] {
	return &Observable[T]{value: initial, equal: equal, watchers: make(map[int]func(T))}
}

// Computed returns an observable whose value comes from resolve, evaluated
// now and on every Refresh.
func Computed[T any](resolve func() T, equal func(a, b T) bool) *Observable[T] {
	if resolve == nil {
		panic(misuse("Computed requires a resolver"))
	}
	o := NewObservable(resolve(), equal)
	o.resolve = resolve
	return o
}

// ElementObservable is Computed specialised to element resolvers, treating
// two handles to the same node as unchanged.
func ElementObservable(resolve func() *Element) *Observable[*Element] {
	return Computed(resolve, func(a, b *Element) bool {
		return (a == nil && b == nil) || a.Same(b)
	})
}

// Get returns the current value.
func (o *Observable[T]) Get() T { return o.value }

// Set stores v and notifies watchers if it differs from the current value.
func (o *Observable[T]) Set(v T) {
	if o.equal != nil && o.equal(o.value, v) {
		o.value = v
		return
	}
	o.value = v
	o.notify()
}

// Refresh re-runs the resolver, if any, and returns the new value.
func (o *Observable[T]) Refresh() T {
	if o.resolve != nil {
		o.Set(o.resolve())
	}
	return o.value
}

// Watch registers fn for future changes. The returned function removes it.
func (o *Observable[T]) Watch(fn func(T)) (cancel func()) {
	if fn == nil {
		panic(misuse("Watch requires a function"))
	}
	if o.watchers == nil {
		o.watchers = make(map[int]func(T))
	}
	id := o.next
	o.next++
	o.watchers[id] = fn
	return func() { delete(o.watchers, id) }
}

func (o *Observable[T]) notify() {
	ids := make([]int, 0, len(o.watchers))
	for id := range o.watchers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		if fn, ok := o.watchers[id]; ok {
			fn(o.value)
		}
	}
}
