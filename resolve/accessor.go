package resolve

import (
	"reflect"
	"sync"
)

// Slot is a typed accessor for a resolved field. The zero Slot, and any Slot
// over an absent or mismatched handle, is a no-op
type Slot[T any] struct {
	h  *Handle
	ok bool
}

// SlotOf binds h as a field of type T. The field type must be exactly T
func SlotOf[T any](h *Handle) Slot[T] {
	ok := h.Found() && !h.member.Method && h.member.Type == reflect.TypeFor[T]()
	return Slot[T]{h: h, ok: ok}
}

// Valid reports whether reads and writes reach a host member
func (s Slot[T]) Valid() bool { return s.ok }

// Handle returns the underlying handle, possibly nil
func (s Slot[T]) Handle() *Handle { return s.h }

// Ptr returns the address of the field inside inst, or nil
func (s Slot[T]) Ptr(inst any) *T {
	if !s.ok {
		return nil
	}
	return (*T)(s.h.field(inst))
}

// Get reads the field from inst
func (s Slot[T]) Get(inst any) (T, bool) {
	if p := s.Ptr(inst); p != nil {
		return *p, true
	}
	var zero T
	return zero, false
}

// Set writes the field on inst, reporting whether the write happened
func (s Slot[T]) Set(inst any, v T) bool {
	p := s.Ptr(inst)
	if p == nil {
		return false
	}
	*p = v
	return true
}

// Entry is a typed accessor for a resolved method or func-typed field
type Entry[F any] struct {
	h  *Handle
	ft reflect.Type
	ok bool
}

// EntryOf binds h as a callable of func type F. The member signature must
// convert to F
func EntryOf[F any](h *Handle) Entry[F] {
	ft := reflect.TypeFor[F]()
	ok := h.Found() && ft.Kind() == reflect.Func && h.member.Type.ConvertibleTo(ft)
	return Entry[F]{h: h, ft: ft, ok: ok}
}

// Valid reports whether Bind can return a callable
func (e Entry[F]) Valid() bool { return e.ok }

// Bind returns the callable for inst. A nil func-typed field reports false
func (e Entry[F]) Bind(inst any) (F, bool) {
	var zero F
	if !e.ok {
		return zero, false
	}
	v := e.h.Value(inst)
	if !v.IsValid() || v.IsNil() {
		return zero, false
	}
	return v.Convert(e.ft).Interface().(F), true
}

// LazySlot resolves its role on first access and caches the Slot
type LazySlot[T any] struct {
	once    sync.Once
	resolve func() *Handle
	slot    Slot[T]
}

// NewLazySlot defers resolution of role on host type H until first use
func NewLazySlot[H, T any](r *Resolver, role Role) *LazySlot[T] {
	return &LazySlot[T]{resolve: func() *Handle { return Of[H](r, role) }}
}

// Slot returns the bound accessor, resolving on the first call
func (l *LazySlot[T]) Slot() Slot[T] {
	l.once.Do(func() { l.slot = SlotOf[T](l.resolve()) })
	return l.slot
}

// LazyEntry resolves its role on first access and caches the Entry
type LazyEntry[F any] struct {
	once    sync.Once
	resolve func() *Handle
	entry   Entry[F]
}

// NewLazyEntry defers resolution of role on host type H until first use
func NewLazyEntry[H, F any](r *Resolver, role Role) *LazyEntry[F] {
	return &LazyEntry[F]{resolve: func() *Handle { return Of[H](r, role) }}
}

// Entry returns the bound accessor, resolving on the first call
func (l *LazyEntry[F]) Entry() Entry[F] {
	l.once.Do(func() { l.entry = EntryOf[F](l.resolve()) })
	return l.entry
}
