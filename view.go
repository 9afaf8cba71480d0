package katachi

// view answers a structural query for the given mask. On a cache miss it
// scans all alive entities once and memoizes the result; on a hit it folds
// any pending diffs and returns the cached list. The returned slice is owned
// by the cache: it is reference-stable until the next mutation affecting
// this mask, and must not be iterated while destroying matching entities.
// Collect entities first when mutating during iteration.
func (w *World) view(m mask) []Entity {
	if c, ok := w.views[m]; ok {
		if len(c.diffs) == 0 {
			return c.entities
		}
		w.trace("view folds pending diffs", m, NullEntity)
		c.fold()
		return c.entities
	}
	w.trace("view initial build", m, NullEntity)
	c := &viewCache{lookup: make(map[Entity]struct{})}
	for _, e := range w.entities {
		if e == NullEntity {
			continue
		}
		if w.masks[e.Index()].contains(m) {
			c.entities = append(c.entities, e)
			c.lookup[e] = struct{}{}
		}
	}
	w.views[m] = c
	return c.entities
}

// queryMask builds the cache key for a set of component bits, adding the
// reserved Active bit unless inactive entities were requested.
func (w *World) queryMask(includeInactive bool, bits ...ComponentType) mask {
	var m mask
	for _, bit := range bits {
		m.set(bit)
	}
	if !includeInactive {
		m.set(w.activeBit)
	}
	return m
}

// View returns all entities holding a component of type A, in the order the
// entities entered the view. Only active entities are matched unless
// includeInactive is true.
//
// The first call for a given component set builds a cache; later calls
// return the cached list, folding any pending diffs first. The cost of a hit
// is proportional to the number of pending diffs, usually zero.
func View[A any](w *World, includeInactive bool) []Entity {
	return w.view(w.queryMask(includeInactive, componentType[A](w)))
}

// View2 returns all entities holding both component types.
func View2[A, B any](w *World, includeInactive bool) []Entity {
	return w.view(w.queryMask(includeInactive, componentType[A](w), componentType[B](w)))
}

// View3 returns all entities holding all three component types.
func View3[A, B, C any](w *World, includeInactive bool) []Entity {
	return w.view(w.queryMask(includeInactive,
		componentType[A](w), componentType[B](w), componentType[C](w)))
}

// View4 returns all entities holding all four component types.
func View4[A, B, C, D any](w *World, includeInactive bool) []Entity {
	return w.view(w.queryMask(includeInactive,
		componentType[A](w), componentType[B](w), componentType[C](w), componentType[D](w)))
}

// Each calls fn with the unpacked component of every matching entity.
func Each[A any](w *World, fn func(*A), includeInactive bool) {
	for _, e := range View[A](w, includeInactive) {
		fn(Unpack[A](w, e))
	}
}

// Each2 calls fn with both unpacked components of every matching entity.
func Each2[A, B any](w *World, fn func(*A, *B), includeInactive bool) {
	for _, e := range View2[A, B](w, includeInactive) {
		fn(Unpack[A](w, e), Unpack[B](w, e))
	}
}

// Each3 calls fn with all three unpacked components of every matching entity.
func Each3[A, B, C any](w *World, fn func(*A, *B, *C), includeInactive bool) {
	for _, e := range View3[A, B, C](w, includeInactive) {
		fn(Unpack[A](w, e), Unpack[B](w, e), Unpack[C](w, e))
	}
}

// EachEntity is Each with the entity handle passed through.
func EachEntity[A any](w *World, fn func(Entity, *A), includeInactive bool) {
	for _, e := range View[A](w, includeInactive) {
		fn(e, Unpack[A](w, e))
	}
}

// EachEntity2 is Each2 with the entity handle passed through.
func EachEntity2[A, B any](w *World, fn func(Entity, *A, *B), includeInactive bool) {
	for _, e := range View2[A, B](w, includeInactive) {
		fn(e, Unpack[A](w, e), Unpack[B](w, e))
	}
}

// EachEntity3 is Each3 with the entity handle passed through.
func EachEntity3[A, B, C any](w *World, fn func(Entity, *A, *B, *C), includeInactive bool) {
	for _, e := range View3[A, B, C](w, includeInactive) {
		fn(e, Unpack[A](w, e), Unpack[B](w, e), Unpack[C](w, e))
	}
}

// ViewOne returns the first entity holding a component of type A. Views keep
// entities in insertion order, so this reliably returns the same entity
// until it is destroyed or loses a required component. The second return is
// false when nothing matches; absence is a valid outcome here.
func ViewOne[A any](w *World, includeInactive bool) (Entity, bool) {
	if v := View[A](w, includeInactive); len(v) > 0 {
		return v[0], true
	}
	return NullEntity, false
}

// ViewOne2 returns the first entity holding both component types.
func ViewOne2[A, B any](w *World, includeInactive bool) (Entity, bool) {
	if v := View2[A, B](w, includeInactive); len(v) > 0 {
		return v[0], true
	}
	return NullEntity, false
}

// ViewOne3 returns the first entity holding all three component types.
func ViewOne3[A, B, C any](w *World, includeInactive bool) (Entity, bool) {
	if v := View3[A, B, C](w, includeInactive); len(v) > 0 {
		return v[0], true
	}
	return NullEntity, false
}

// UnpackOne finds the first entity holding a component of type A and unpacks
// it. Unlike ViewOne this panics when nothing matches: use it only when an
// empty result is a programming error, such as fetching a singleton.
//
//	camera := katachi.UnpackOne[Camera](w, false)
func UnpackOne[A any](w *World, includeInactive bool) *A {
	e, ok := ViewOne[A](w, includeInactive)
	if !ok {
		panic("ecs: no entities were matched")
	}
	return Unpack[A](w, e)
}
