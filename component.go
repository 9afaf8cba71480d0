package katachi

import (
	"fmt"
	"reflect"
	"unsafe"
)

// ComponentType is the small integer identity of a registered component
// type. Assignment is permanent for the lifetime of the World but depends on
// registration order, so it is not stable across runs.
type ComponentType uint8

// Active is an empty component marking an entity as runnable by systems.
// Views skip entities without it unless the caller opts into inactive
// entities.
type Active struct{}

// storage is the type-erased capability set the World needs from every
// component store: removal and duplication. Everything else goes through the
// typed store directly.
type storage interface {
	remove(e Entity)
	copyTo(dst, src Entity)
}

// store holds all live instances of a single component type in a densely
// packed slice, plus both directions of the entity<->slot association.
// Slots [0, count) are exactly the live components, with no gaps; packing is
// preserved by swap-with-last removal.
type store[T any] struct {
	packed       []T
	entityToSlot map[Entity]uint32
	slotToEntity map[uint32]Entity
	count        int
}

// newStore reserves roughly reserveBytes of component storage up front to
// cut down on early growth reallocations.
func newStore[T any](reserveBytes int) *store[T] {
	var zero T
	n := 1
	if size := int(unsafe.Sizeof(zero)); size > 0 {
		n = reserveBytes / size
		if n < 1 {
			n = 1
		}
	}
	return &store[T]{
		packed:       make([]T, 0, n),
		entityToSlot: make(map[Entity]uint32),
		slotToEntity: make(map[uint32]Entity),
	}
}

// write sets the component for an entity. If the entity already holds one it
// is overwritten in place without moving other entries; otherwise the value
// is appended at the next free slot. The returned pointer is valid only
// until the next remove on this store.
func (s *store[T]) write(e Entity, v T) *T {
	if slot, ok := s.entityToSlot[e]; ok {
		s.packed[slot] = v
		return &s.packed[slot]
	}
	slot := uint32(s.count)
	s.entityToSlot[e] = slot
	s.slotToEntity[slot] = e
	if int(slot) < len(s.packed) {
		s.packed[slot] = v
	} else {
		s.packed = append(s.packed, v)
	}
	s.count++
	return &s.packed[slot]
}

// read returns the component for an entity. The entity must hold one. Do not
// keep the returned pointer across a remove on this store: removal may
// relocate slot contents.
func (s *store[T]) read(e Entity) *T {
	slot, ok := s.entityToSlot[e]
	if !ok {
		panic("ecs: missing component on entity")
	}
	return &s.packed[slot]
}

// remove invalidates the component for an entity. It is a no-op when the
// entity holds none, since the type-erased removal path has no prior
// containment check. Otherwise the last occupied slot is moved into the
// vacated one so the store stays gap-free in O(1).
func (s *store[T]) remove(e Entity) {
	removed, ok := s.entityToSlot[e]
	if !ok {
		return
	}
	last := uint32(s.count - 1)
	s.packed[removed] = s.packed[last]

	moved := s.slotToEntity[last]
	s.slotToEntity[removed] = moved
	s.entityToSlot[moved] = removed

	delete(s.entityToSlot, e)
	delete(s.slotToEntity, last)
	s.count--
}

// copyTo duplicates src's component into dst via write. src must hold one.
func (s *store[T]) copyTo(dst, src Entity) {
	s.write(dst, *s.read(src))
}

// contains reports whether the entity holds a component. O(1), no side
// effects.
func (s *store[T]) contains(e Entity) bool {
	_, ok := s.entityToSlot[e]
	return ok
}

// size returns the number of live components in the store.
func (s *store[T]) size() int {
	return s.count
}

// RegisterComponent registers T with the world and returns its type id. It
// panics if T is already registered or if the configured maximum number of
// component types is exceeded. Components register themselves on first Pack,
// so calling this is only needed to pin a specific registration order.
func RegisterComponent[T any](w *World) ComponentType {
	typ := reflect.TypeFor[T]()
	if _, ok := w.types[typ]; ok {
		panic(fmt.Sprintf("ecs: component type %s already registered", typ))
	}
	return registerComponent[T](w, typ)
}

func registerComponent[T any](w *World, typ reflect.Type) ComponentType {
	if len(w.stores) >= w.cfg.MaxComponentTypes {
		panic(fmt.Sprintf("ecs: cannot register component %s: maximum number of component types (%d) reached",
			typ, w.cfg.MaxComponentTypes))
	}
	id := ComponentType(len(w.stores))
	w.types[typ] = id
	w.stores = append(w.stores, newStore[T](w.cfg.StoreCapacity))
	return id
}

// componentType returns the type id for T, registering it on first use.
func componentType[T any](w *World) ComponentType {
	typ := reflect.TypeFor[T]()
	if id, ok := w.types[typ]; ok {
		return id
	}
	return registerComponent[T](w, typ)
}

// storeFor returns the typed store behind a registered component id.
func storeFor[T any](w *World, id ComponentType) *store[T] {
	return w.stores[id].(*store[T])
}
