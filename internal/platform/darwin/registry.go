package darwin

import (
	"sync"

	"github.com/mj1618/axquery/internal/ax"
)

// refOps are the ownership primitives of the native handle type.
type refOps struct {
	hash    func(h uintptr) uintptr
	equal   func(a, b uintptr) bool
	retain  func(h uintptr)
	release func(h uintptr)
}

// registry interns native element handles as ax.Refs. Handles that compare
// equal natively share one Ref, so identity survives repeated lookups of the
// same node. Each interned handle holds one retain until it is forgotten or
// releaseAll runs.
type registry struct {
	mu     sync.Mutex
	ops    refOps
	refs   map[ax.Ref]uintptr
	byHash map[uintptr][]ax.Ref
	next   ax.Ref
}

func newRegistry(ops refOps) *registry {
	return &registry{
		ops:    ops,
		refs:   make(map[ax.Ref]uintptr),
		byHash: make(map[uintptr][]ax.Ref),
		next:   1,
	}
}

// intern returns the Ref for h, retaining h when it is new. The caller keeps
// its own reference to h either way.
func (r *registry) intern(h uintptr) ax.Ref {
	if h == 0 {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	key := r.ops.hash(h)
	for _, ref := range r.byHash[key] {
		if r.ops.equal(r.refs[ref], h) {
			return ref
		}
	}
	r.ops.retain(h)
	ref := r.next
	r.next++
	r.refs[ref] = h
	r.byHash[key] = append(r.byHash[key], ref)
	return ref
}

func (r *registry) lookup(ref ax.Ref) (uintptr, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.refs[ref]
	return h, ok
}

// forget drops ref and releases its handle. Dead nodes never come back, so
// a forgotten ref stays unresolvable.
func (r *registry) forget(ref ax.Ref) {
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.refs[ref]
	if !ok {
		return
	}
	delete(r.refs, ref)
	key := r.ops.hash(h)
	bucket := r.byHash[key]
	for i, x := range bucket {
		if x == ref {
			bucket = append(bucket[:i], bucket[i+1:]...)
			break
		}
	}
	if len(bucket) == 0 {
		delete(r.byHash, key)
	} else {
		r.byHash[key] = bucket
	}
	r.ops.release(h)
}

func (r *registry) len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.refs)
}

// releaseAll drops every handle. Refs minted before the call stop resolving.
func (r *registry) releaseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, h := range r.refs {
		r.ops.release(h)
	}
	r.refs = make(map[ax.Ref]uintptr)
	r.byHash = make(map[uintptr][]ax.Ref)
}
