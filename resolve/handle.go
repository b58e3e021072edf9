package resolve

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Handle is the cached binding of a role to a member of one host type
// Immutable once published; an absent handle stays absent
type Handle struct {
	typ      reflect.Type
	role     string
	kind     Kind
	strategy Strategy
	member   Member
}

func absent(t reflect.Type, role Role) *Handle {
	return &Handle{typ: t, role: role.Name, kind: role.Kind}
}

// Found reports whether any pass bound the role
func (h *Handle) Found() bool { return h != nil && h.strategy != StrategyNone }

// Type returns the declaring host struct type
func (h *Handle) Type() reflect.Type { return h.typ }

// Role returns the logical role name
func (h *Handle) Role() string { return h.role }

// Kind returns the member kind the role asked for
func (h *Handle) Kind() Kind { return h.kind }

// Strategy returns the pass that bound the role
func (h *Handle) Strategy() Strategy { return h.strategy }

// Member returns the bound member; zero when absent
func (h *Handle) Member() Member { return h.member }

func (h *Handle) String() string {
	if !h.Found() {
		return fmt.Sprintf("%s.%s: absent", h.typ, h.role)
	}
	return fmt.Sprintf("%s.%s -> %s (%s)", h.typ, h.role, h.member.Name, h.strategy)
}

// base returns the address of the struct inst points to, or nil when inst is
// not a non-nil pointer to the handle's type
func (h *Handle) base(inst any) unsafe.Pointer {
	v := reflect.ValueOf(inst)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Type().Elem() != h.typ {
		return nil
	}
	return v.UnsafePointer()
}

// field returns the address of the bound field inside inst
// Unexported fields are reached by offset; the host layout is fixed for the
// lifetime of the process
func (h *Handle) field(inst any) unsafe.Pointer {
	if !h.Found() || h.member.Method {
		return nil
	}
	p := h.base(inst)
	if p == nil {
		return nil
	}
	return unsafe.Add(p, h.member.offset)
}

// Value returns the bound member of inst as a reflect.Value: an addressable
// settable field, or a method value. Zero Value when absent or mismatched
func (h *Handle) Value(inst any) reflect.Value {
	if !h.Found() {
		return reflect.Value{}
	}
	if h.member.Method {
		if h.base(inst) == nil {
			return reflect.Value{}
		}
		return reflect.ValueOf(inst).Method(h.member.Index)
	}
	p := h.field(inst)
	if p == nil {
		return reflect.Value{}
	}
	return reflect.NewAt(h.member.Type, p).Elem()
}
