package ax

import "fmt"

// Resolver locates an element on demand. It returns nil when nothing
// currently matches.
type Resolver func() *Element

// Value is one reading of a property. OK is false when no element resolved
// or the attribute was unset.
type Value struct {
	Data any
	OK   bool
}

func sameValue(a, b Value) bool {
	return a.OK == b.OK && attributeEqual(a.Data, b.Data)
}

// Property is a live view of one attribute on whatever element its resolver
// currently returns. It never caches the element; put caching in the
// resolver (see Cached) when lookups are expensive.
type Property struct {
	resolve  Resolver
	name     string
	settable bool

	derived *Observable[Value]
	cancel  func()
}

// PropertyOf builds a property reading name from the element resolve
// returns. Writes are allowed only when settable.
func PropertyOf(resolve Resolver, name string, settable bool) *Property {
	if resolve == nil {
		panic(misuse("PropertyOf requires a resolver"))
	}
	return &Property{resolve: resolve, name: name, settable: settable}
}

// WatchProperty builds a property over an observable element. Whenever the
// observable changes the attribute is re-derived and, if different, pushed
// to the property's watchers.
func WatchProperty(src *Observable[*Element], name string, settable bool) *Property {
	if src == nil {
		panic(misuse("WatchProperty requires an observable"))
	}
	p := PropertyOf(src.Get, name, settable)
	p.derived = NewObservable(p.read(src.Get()), sameValue)
	p.cancel = src.Watch(func(el *Element) {
		p.derived.Set(p.read(el))
	})
	return p
}

// Name returns the attribute name.
func (p *Property) Name() string { return p.name }

// Settable reports whether Set is allowed.
func (p *Property) Settable() bool { return p.settable }

// Element resolves the current element, or nil.
func (p *Property) Element() *Element {
	el := p.resolve()
	if !el.IsValid() {
		return nil
	}
	return el
}

func (p *Property) read(el *Element) Value {
	v, ok := el.Attribute(p.name)
	return Value{Data: v, OK: ok}
}

// Get resolves the element and reads the attribute.
func (p *Property) Get() (any, bool) {
	v := p.read(p.Element())
	return v.Data, v.OK
}

// Set resolves the element and writes the attribute. Failures are reported
// as errors: ErrReadOnly, ErrNotFound or ErrSetFailed.
func (p *Property) Set(value any) error {
	if !p.settable {
		return fmt.Errorf("set %s: %w", p.name, ErrReadOnly)
	}
	el := p.Element()
	if el == nil {
		return fmt.Errorf("set %s: %w", p.name, ErrNotFound)
	}
	if !el.SetAttribute(p.name, value) {
		return fmt.Errorf("%w: %s on %s", ErrSetFailed, p.name, el.Describe())
	}
	p.Update()
	return nil
}

// Update re-derives the value for watchers. Attribute changes on the same
// element are not pushed by the provider, so callers that poll call this.
func (p *Property) Update() {
	if p.derived != nil {
		p.derived.Set(p.read(p.Element()))
	}
}

// Watch registers fn for changes of a property built with WatchProperty.
// Properties built with PropertyOf have no push source; Watch then only
// fires from Update and Set.
func (p *Property) Watch(fn func(Value)) (cancel func()) {
	if p.derived == nil {
		p.derived = NewObservable(p.read(p.Element()), sameValue)
	}
	return p.derived.Watch(fn)
}

// Close detaches the property from its observable source.
func (p *Property) Close() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// StringValue reads the property as a string.
func (p *Property) StringValue() (string, bool) {
	v, ok := p.Get()
	if !ok {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	return fmt.Sprint(v), true
}
