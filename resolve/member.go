package resolve

import (
	"reflect"
	"runtime"
)

// Member describes one member declared directly on a host struct type
type Member struct {
	Name string
	// Index is the field index, or the method index in the pointer method set
	Index int
	// Type is the field type, or the method signature without receiver
	Type   reflect.Type
	Method bool

	offset uintptr
}

// Predicate filters members during the structural pass
type Predicate func(Member) bool

// Any matches every member; combined with Role.Type it selects by type and
// declaration position alone
func Any(Member) bool { return true }

// OfType matches members of exactly t
func OfType(t reflect.Type) Predicate {
	return func(m Member) bool { return m.Type == t }
}

// TypeNamed matches members whose type prints as name, e.g. "[]float32" or
// "*host.Texture". Used by the binding table where no reflect.Type exists
func TypeNamed(name string) Predicate {
	return func(m Member) bool { return m.Type.String() == name }
}

// And matches when every predicate matches
func And(ps ...Predicate) Predicate {
	return func(m Member) bool {
		for _, p := range ps {
			if p != nil && !p(m) {
				return false
			}
		}
		return true
	}
}

// members lists candidates of the requested kind in declaration order
// Embedded fields and methods promoted from them belong to ancestors and
// are skipped. Methods follow fields, in reflect's (name-sorted) order
func members(t reflect.Type, kind Kind) []Member {
	var out []Member
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Anonymous || f.Name == "_" {
			continue
		}
		if (f.Type.Kind() == reflect.Func) != (kind == KindEntry) {
			continue
		}
		out = append(out, Member{Name: f.Name, Index: i, Type: f.Type, offset: f.Offset})
	}

	if kind != KindEntry {
		return out
	}

	pt := reflect.PointerTo(t)
	for i := 0; i < pt.NumMethod(); i++ {
		m := pt.Method(i)
		if promoted(t, m.Name) {
			continue
		}
		out = append(out, Member{Name: m.Name, Index: i, Type: receiverless(m.Type), Method: true})
	}
	return out
}

// promoted reports whether name reaches t only through an embedded field. A
// method t declares itself shadows the embedded one and is not promoted
func promoted(t reflect.Type, name string) bool {
	if !embeddedHas(t, name) {
		return false
	}
	if m, ok := reflect.PointerTo(t).MethodByName(name); ok && !wrapper(m.Func) {
		return false
	}
	if m, ok := t.MethodByName(name); ok && !wrapper(m.Func) {
		return false
	}
	return true
}

// wrapper reports whether fn is compiler-generated: the forwarding stub for a
// promoted method, or the pointer stub of a value-receiver method
func wrapper(fn reflect.Value) bool {
	pc := fn.Pointer()
	f := runtime.FuncForPC(pc)
	if f == nil {
		return true
	}
	file, _ := f.FileLine(pc)
	return file == "<autogenerated>"
}

// embeddedHas reports whether any embedded field of t has a method name
func embeddedHas(t reflect.Type, name string) bool {
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ft := f.Type
		if ft.Kind() != reflect.Pointer && ft.Kind() != reflect.Interface {
			ft = reflect.PointerTo(ft)
		}
		if _, ok := ft.MethodByName(name); ok {
			return true
		}
	}
	return false
}

// receiverless drops the receiver from a method expression type
func receiverless(ft reflect.Type) reflect.Type {
	in := make([]reflect.Type, 0, ft.NumIn()-1)
	for i := 1; i < ft.NumIn(); i++ {
		in = append(in, ft.In(i))
	}
	out := make([]reflect.Type, 0, ft.NumOut())
	for i := 0; i < ft.NumOut(); i++ {
		out = append(out, ft.Out(i))
	}
	return reflect.FuncOf(in, out, ft.IsVariadic())
}
