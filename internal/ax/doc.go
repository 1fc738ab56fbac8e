// Package ax queries a live accessibility tree that the target application
// may rebuild at any moment.
//
// Handles are weak: an *Element identifies a node owned by the OS and can go
// stale between any two calls. Every operation treats staleness and missing
// data as absence (nil, empty slices, false) and never as an error. Misuse,
// such as a nil predicate where one is required, panics with an error
// wrapping ErrMisuse.
//
// Queries are built from three pieces:
//
//   - a ChildSource: a node, a func producing children, or a resolved list
//   - a Predicate filtering candidates
//   - a Less comparator ordering them (ReadingOrder when nil)
//
// Repeated lookups are memoized with Cached or Slot, which re-resolve lazily
// the next time a stored handle fails its liveness or verification check.
// PropertyOf turns a resolver into a live view of one attribute.
//
// Nothing in this package is safe for concurrent use. Serialize access the
// way the host event loop does.
package ax
