package katachi

import "reflect"

// Pack adds or replaces a component on an entity and returns a pointer to
// the stored value.
//
// If the entity already holds a component of the same type this is a pure
// overwrite: no view cache is touched, which makes re-packing much cheaper
// than Remove followed by Pack. Only when the component type is new for the
// entity does every view whose mask is now a subset of the entity's mask
// receive an Add diff.
//
// The returned pointer is valid only until the next structural mutation on
// this component type; copy the value out for longer-lived use.
func Pack[T any](w *World, e Entity, v T) *T {
	if e == NullEntity {
		panic("ecs: pack on null entity")
	}
	bit := componentType[T](w)
	em := &w.masks[e.Index()]
	had := em.containsBit(bit)
	em.set(bit)
	p := storeFor[T](w, bit).write(e, v)
	if had {
		return p
	}
	for m, c := range w.views {
		if !em.contains(m) || c.member(e) {
			continue
		}
		c.enqueue(cacheDiff{entity: e, op: diffAdd})
		w.trace("view gains entity", m, e)
	}
	return p
}

// Pack2 packs two components, equivalent to calling Pack for each.
func Pack2[A, B any](w *World, e Entity, a A, b B) {
	Pack(w, e, a)
	Pack(w, e, b)
}

// Pack3 packs three components, equivalent to calling Pack for each.
func Pack3[A, B, C any](w *World, e Entity, a A, b B, c C) {
	Pack(w, e, a)
	Pack(w, e, b)
	Pack(w, e, c)
}

// Unpack returns the component of type T attached to an entity. The entity
// must hold one; absence is a programming error and panics. Use Contains
// first when absence is a valid outcome.
//
// The returned pointer points into the packed store and may be invalidated
// by the next Remove or DestroyEntity touching this component type. Do not
// keep it across frames; keep the entity and unpack again.
func Unpack[T any](w *World, e Entity) *T {
	if e == NullEntity {
		panic("ecs: unpack on null entity")
	}
	bit, ok := w.types[reflect.TypeFor[T]()]
	if !ok {
		panic("ecs: unpack of unregistered component type")
	}
	return storeFor[T](w, bit).read(e)
}

// Contains reports whether the entity holds a component of type T. It works
// even if T was never registered, since checking for a type no entity ever
// had is reasonable.
func Contains[T any](w *World, e Entity) bool {
	bit, ok := w.types[reflect.TypeFor[T]()]
	if !ok {
		return false
	}
	return storeFor[T](w, bit).contains(e)
}

// Contains2 reports whether the entity holds both component types,
// short-circuiting on the first miss.
func Contains2[A, B any](w *World, e Entity) bool {
	return Contains[A](w, e) && Contains[B](w, e)
}

// Contains3 reports whether the entity holds all three component types.
func Contains3[A, B, C any](w *World, e Entity) bool {
	return Contains[A](w, e) && Contains[B](w, e) && Contains[C](w, e)
}

// Remove detaches the component of type T from an entity. Removing a
// component the entity does not hold is a no-op, as is removing a type that
// was never registered. Every view whose mask includes T and whose
// membership still has the entity receives a Remove diff.
//
// Pointers previously returned by Unpack for this component type may be
// invalidated.
func Remove[T any](w *World, e Entity) {
	bit, ok := w.types[reflect.TypeFor[T]()]
	if !ok {
		return
	}
	storeFor[T](w, bit).remove(e)
	for m, c := range w.views {
		if !m.containsBit(bit) || !c.member(e) {
			continue
		}
		c.enqueue(cacheDiff{entity: e, op: diffRemove})
		w.trace("view loses entity", m, e)
	}
	w.masks[e.Index()].unset(bit)
}
