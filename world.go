package katachi

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// destroyedEntity is the transient record kept between DestroyEntity and
// CollectUnusedEntities. The index stays quarantined until every listed
// cache has absorbed its Remove diff, so a recycled handle can never
// reappear in a stale cached result.
type destroyedEntity struct {
	entity Entity
	caches []*viewCache
}

// World owns the entity registry, one packed store per registered component
// type, the per-entity structural masks, the view cache, the event bus, the
// resource registry and the ordered list of systems. It is the sole entry
// point collaborators use, and it is not safe for concurrent use: all
// operations run on a single logical thread and complete before returning.
type World struct {
	cfg    Config
	logger *zap.Logger

	// Entity registry. aliveCount is the next fresh index; indices below it
	// are either alive, quarantined in destroyed, or recycled in unused.
	aliveCount uint32
	entities   []Entity // all alive handles, NullEntity included
	handles    []Entity // current live handle per index, NullEntity if dead
	unused     []Entity // recycled handles, oldest first
	destroyed  []destroyedEntity

	// Structural index and query cache.
	masks []mask
	views map[mask]*viewCache

	// Component registry.
	types  map[reflect.Type]ComponentType
	stores []storage

	activeBit ComponentType

	systems     []System
	systemTypes []reflect.Type

	bus       EventBus
	resources resources
}

// NewWorld creates a World with DefaultConfig limits unless overridden by
// options. It panics if the resulting configuration is invalid.
func NewWorld(opts ...Option) *World {
	w := &World{
		cfg:    DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if err := w.cfg.validate(); err != nil {
		panic(fmt.Sprintf("ecs: invalid config: %v", err))
	}
	w.entities = make([]Entity, 0, w.cfg.MaxEntities)
	w.handles = make([]Entity, w.cfg.MaxEntities)
	w.masks = make([]mask, w.cfg.MaxEntities)
	w.views = make(map[mask]*viewCache)
	w.types = make(map[reflect.Type]ComponentType, w.cfg.MaxComponentTypes)
	w.stores = make([]storage, 0, w.cfg.MaxComponentTypes)
	w.activeBit = RegisterComponent[Active](w)
	return w
}

// CreateEntity creates a new entity with an Active component attached.
func (w *World) CreateEntity() Entity {
	e := w.CreateInactiveEntity()
	Pack(w, e, Active{})
	return e
}

// CreateInactiveEntity creates a new entity without the Active component.
// The entity exists in the world and can hold components, but default views
// will not match it until SetActive is called. Useful for building entities
// before handing them to systems.
//
// A fresh index is used while any remain; otherwise the oldest recycled
// index is reused with its generation incremented. Exceeding the configured
// maximum population panics.
func (w *World) CreateInactiveEntity() Entity {
	if len(w.unused) > 0 {
		old := w.unused[0]
		w.unused = w.unused[1:]
		e := makeEntity(old.Index(), old.Version()+1)
		w.handles[e.Index()] = e
		w.entities = append(w.entities, e)
		return e
	}
	if int(w.aliveCount) >= w.cfg.MaxEntities {
		panic("ecs: too many entities")
	}
	e := Entity(w.aliveCount)
	w.aliveCount++
	if e == NullEntity {
		// Reserve index 0 for the null entity so that callers always have
		// a handle value that is never alive.
		w.entities = append(w.entities, NullEntity)
		if int(w.aliveCount) >= w.cfg.MaxEntities {
			panic("ecs: too many entities")
		}
		e++
		w.aliveCount++
	}
	w.handles[e.Index()] = e
	w.entities = append(w.entities, e)
	return e
}

// CreateEntityFrom creates a new active entity and copies every component
// from the archetype entity onto it.
func (w *World) CreateEntityFrom(archetype Entity) Entity {
	if archetype == NullEntity {
		panic("ecs: null entity used as archetype")
	}
	e := w.CreateEntity()
	w.CopyEntity(e, archetype)
	return e
}

// CopyEntity duplicates every component src holds onto dst, overwriting any
// dst already has. Views that now match dst pick it up through the usual
// diff path.
func (w *World) CopyEntity(dst, src Entity) {
	if dst == NullEntity {
		panic("ecs: copy to null entity")
	}
	srcMask := w.masks[src.Index()]
	dstMask := &w.masks[dst.Index()]
	for id := range w.stores {
		bit := ComponentType(id)
		if !srcMask.containsBit(bit) {
			continue
		}
		w.stores[id].copyTo(dst, src)
		dstMask.set(bit)
	}
	for m, c := range w.views {
		if !dstMask.contains(m) || c.member(dst) {
			continue
		}
		c.enqueue(cacheDiff{entity: dst, op: diffAdd})
		w.trace("view gains entity", m, dst)
	}
}

// DestroyEntity destroys an entity and all of its components. The entity's
// index becomes reusable only after CollectUnusedEntities has reconciled
// every view cache that still references it.
func (w *World) DestroyEntity(e Entity) {
	if e == NullEntity {
		panic("ecs: destroy of null entity")
	}
	if !w.IsValid(e) {
		panic(fmt.Sprintf("ecs: destroy of invalid entity %#x", uint32(e)))
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	w.masks[e.Index()] = mask{}
	w.handles[e.Index()] = NullEntity

	d := destroyedEntity{entity: e}
	for m, c := range w.views {
		if !c.member(e) {
			// A Remove may already be pending from an earlier mutation this
			// frame; the cache still needs reconciling before index reuse.
			if _, ok := c.lookup[e]; !ok {
				continue
			}
		} else {
			c.enqueue(cacheDiff{entity: e, op: diffRemove})
			w.trace("view loses entity", m, e)
		}
		d.caches = append(d.caches, c)
	}

	for i, alive := range w.entities {
		if alive == e {
			last := len(w.entities) - 1
			w.entities[i] = w.entities[last]
			w.entities = w.entities[:last]
			break
		}
	}
	w.destroyed = append(w.destroyed, d)
}

// SetActive attaches or removes the Active component, switching whether
// default views match the entity.
func (w *World) SetActive(e Entity, active bool) {
	if active {
		Pack(w, e, Active{})
	} else {
		Remove[Active](w, e)
	}
}

// IsValid reports whether the handle refers to a currently alive entity. A
// destroyed handle turns invalid immediately, before its index is recycled.
func (w *World) IsValid(e Entity) bool {
	if e == NullEntity || int(e.Index()) >= len(w.handles) {
		return false
	}
	return w.handles[e.Index()] == e
}

// Entities returns every alive handle, the null entity and inactive
// entities included. The slice is owned by the world; DestroyEntity
// invalidates it. Use View with includeInactive instead when destroying
// while iterating.
func (w *World) Entities() []Entity {
	return w.entities
}

// CollectUnusedEntities recycles the indices of entities destroyed since the
// last call. For each one it folds the pending diffs of every cache that
// still referenced the entity, fully purging it, then releases the index to
// the recycle pool. Run once per logical frame, after all mutation is done.
// Skipping a frame only delays recycling; results stay correct.
func (w *World) CollectUnusedEntities() {
	if len(w.destroyed) == 0 {
		return
	}
	for _, d := range w.destroyed {
		for _, c := range d.caches {
			c.fold()
		}
		w.unused = append(w.unused, d.entity)
		if ce := w.logger.Check(zap.DebugLevel, "entity index recycled"); ce != nil {
			ce.Write(zap.Uint32("index", d.entity.Index()), zap.Uint32("version", d.entity.Version()))
		}
	}
	w.destroyed = w.destroyed[:0]
}

// trace logs a cache operation at debug level. The Check call keeps the
// disabled path free of field allocations.
func (w *World) trace(msg string, m mask, e Entity) {
	if ce := w.logger.Check(zap.DebugLevel, msg); ce != nil {
		ce.Write(zap.Stringer("view", m), zap.Uint32("entity", uint32(e)))
	}
}
