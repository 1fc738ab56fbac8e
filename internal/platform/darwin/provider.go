//go:build darwin && cgo

package darwin

import (
	"fmt"

	"github.com/mj1618/axquery/internal/ax"
)

// Provider implements ax.Provider over AXUIElement handles.
type Provider struct {
	reg *registry
}

func newProvider() *Provider {
	return &Provider{reg: newRegistry(cf)}
}

// element interns h, which the caller still owns, as an element.
func (p *Provider) element(h uintptr) *ax.Element {
	if h == 0 {
		return nil
	}
	return ax.NewElement(p, p.reg.intern(h))
}

// AttributeValue implements ax.Provider. AXFrame is synthesized from
// AXPosition and AXSize when the application does not expose it.
func (p *Provider) AttributeValue(ref ax.Ref, name string) (any, bool) {
	h, ok := p.reg.lookup(ref)
	if !ok {
		return nil, false
	}
	if name == ax.AttrFrame {
		return p.frame(h)
	}
	v, code := copyAttr(h, name)
	if code != axSuccess || v == 0 {
		return nil, false
	}
	defer cf.release(v)
	return p.convert(v), true
}

func (p *Provider) frame(h uintptr) (any, bool) {
	if v, code := copyAttr(h, ax.AttrFrame); code == axSuccess && v != 0 {
		defer cf.release(v)
		if kindOf(v) == kindRect {
			g := geometry(v)
			return ax.Frame{X: g[0], Y: g[1], W: g[2], H: g[3]}, true
		}
	}
	pos, code := copyAttr(h, "AXPosition")
	if code != axSuccess || pos == 0 {
		return nil, false
	}
	defer cf.release(pos)
	size, code := copyAttr(h, "AXSize")
	if code != axSuccess || size == 0 {
		return nil, false
	}
	defer cf.release(size)
	xy, wh := geometry(pos), geometry(size)
	return ax.Frame{X: xy[0], Y: xy[1], W: wh[2], H: wh[3]}, true
}

// convert maps a CF value to the Go types ax expects. Nested elements are
// interned; v stays owned by the caller.
func (p *Provider) convert(v uintptr) any {
	switch kindOf(v) {
	case kindString:
		return goString(v)
	case kindBool:
		return goBool(v)
	case kindNumber:
		return goNumber(v)
	case kindElement:
		return p.reg.intern(v)
	case kindRect:
		g := geometry(v)
		return ax.Frame{X: g[0], Y: g[1], W: g[2], H: g[3]}
	case kindPoint:
		g := geometry(v)
		return []float64{g[0], g[1]}
	case kindSize:
		g := geometry(v)
		return []float64{g[2], g[3]}
	case kindArray:
		return p.convertArray(v)
	}
	return nil
}

func (p *Provider) convertArray(v uintptr) any {
	n := arrayLen(v)
	items := make([]uintptr, n)
	allElements, allStrings := true, true
	for i := range items {
		items[i] = arrayAt(v, i)
		k := kindOf(items[i])
		allElements = allElements && k == kindElement
		allStrings = allStrings && k == kindString
	}
	switch {
	case n > 0 && allElements:
		refs := make([]ax.Ref, n)
		for i, it := range items {
			refs[i] = p.reg.intern(it)
		}
		return refs
	case allStrings:
		strs := make([]string, n)
		for i, it := range items {
			strs[i] = goString(it)
		}
		return strs
	}
	out := make([]any, n)
	for i, it := range items {
		out[i] = p.convert(it)
	}
	return out
}

// AttributeNames implements ax.Provider.
func (p *Provider) AttributeNames(ref ax.Ref) []string {
	h, ok := p.reg.lookup(ref)
	if !ok {
		return nil
	}
	return attrNames(h)
}

// IsLive implements ax.Provider. Only kAXErrorInvalidUIElement counts as
// dead; a busy application is still live. Dead refs are dropped from the
// registry and their handles released.
func (p *Provider) IsLive(ref ax.Ref) bool {
	h, ok := p.reg.lookup(ref)
	if !ok {
		return false
	}
	v, code := copyAttr(h, ax.AttrRole)
	if v != 0 {
		cf.release(v)
	}
	if code == axInvalidElement {
		p.reg.forget(ref)
		return false
	}
	return true
}

// SetAttributeValue implements ax.Provider for string, bool, number and
// element values.
func (p *Provider) SetAttributeValue(ref ax.Ref, name string, value any) bool {
	h, ok := p.reg.lookup(ref)
	if !ok {
		return false
	}
	var code int
	switch v := value.(type) {
	case string:
		code = setString(h, name, v)
	case bool:
		code = setBool(h, name, v)
	case float64:
		code = setNumber(h, name, v)
	case int:
		code = setNumber(h, name, float64(v))
	case ax.Ref:
		target, ok := p.reg.lookup(v)
		if !ok {
			return false
		}
		code = setElement(h, name, target)
	default:
		return false
	}
	return code == axSuccess
}

// PerformAction implements ax.Provider.
func (p *Provider) PerformAction(ref ax.Ref, action string) error {
	h, ok := p.reg.lookup(ref)
	if !ok {
		return ax.ErrNotFound
	}
	if code := perform(h, action); code != axSuccess {
		return fmt.Errorf("AXError %d", code)
	}
	return nil
}
