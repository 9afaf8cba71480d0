package katachi

import "reflect"

// System is a unit of per-frame behavior invoked by the World. Systems own
// no entity data; they read and mutate the world through its operations.
//
// Load runs when the system is added, Unload when it is removed or the
// world tears all systems down. Update and Draw run once per frame in the
// order systems were added. Embed BaseSystem to override only what you need.
type System interface {
	Load(w *World)
	Update(w *World, dt float64)
	Draw(w *World)
	Unload(w *World)
}

// BaseSystem provides no-op implementations of every System method.
type BaseSystem struct{}

func (BaseSystem) Load(*World)            {}
func (BaseSystem) Update(*World, float64) {}
func (BaseSystem) Draw(*World)            {}
func (BaseSystem) Unload(*World)          {}

// AddSystem appends a system to the world and calls its Load callback.
// Different instances of the same system type may coexist; adding the same
// instance twice is only detected when Config.Paranoia is on.
func (w *World) AddSystem(s System) System {
	if s == nil {
		panic("ecs: nil system")
	}
	w.checkDuplicateSystem(s)
	w.systems = append(w.systems, s)
	w.systemTypes = append(w.systemTypes, reflect.TypeOf(s))
	s.Load(w)
	return s
}

// AddSystemBefore inserts a system immediately before the first system of
// type Before, controlling execution order. When no such system exists the
// new one is appended. Load is called either way.
func AddSystemBefore[Before any](w *World, s System) System {
	if s == nil {
		panic("ecs: nil system")
	}
	anchor := reflect.TypeOf((*Before)(nil))
	pos := -1
	for i, t := range w.systemTypes {
		if t == anchor {
			pos = i
			break
		}
	}
	if pos < 0 {
		return w.AddSystem(s)
	}
	w.checkDuplicateSystem(s)
	w.systems = append(w.systems, nil)
	copy(w.systems[pos+1:], w.systems[pos:])
	w.systems[pos] = s
	w.systemTypes = append(w.systemTypes, nil)
	copy(w.systemTypes[pos+1:], w.systemTypes[pos:])
	w.systemTypes[pos] = reflect.TypeOf(s)
	s.Load(w)
	return s
}

// GetSystem returns the first system of type T, or false if none is present.
func GetSystem[T any](w *World) (*T, bool) {
	t := reflect.TypeOf((*T)(nil))
	for i, st := range w.systemTypes {
		if st == t {
			return any(w.systems[i]).(*T), true
		}
	}
	return nil, false
}

// GetAllSystems returns every system of type T in execution order.
func GetAllSystems[T any](w *World) []*T {
	t := reflect.TypeOf((*T)(nil))
	var out []*T
	for i, st := range w.systemTypes {
		if st == t {
			out = append(out, any(w.systems[i]).(*T))
		}
	}
	return out
}

// RemoveSystem calls the system's Unload callback and drops it from the
// world, preserving the order of the remaining systems. Removing a system
// that is not in the world is a no-op. Do not remove systems from inside the
// update loop; decide in the system's Update whether it should run instead.
func (w *World) RemoveSystem(s System) {
	for i, existing := range w.systems {
		if existing != s {
			continue
		}
		s.Unload(w)
		w.systems = append(w.systems[:i], w.systems[i+1:]...)
		w.systemTypes = append(w.systemTypes[:i], w.systemTypes[i+1:]...)
		return
	}
}

// RemoveAllSystems unloads every system in execution order and clears the
// list. Called on world teardown.
func (w *World) RemoveAllSystems() {
	for _, s := range w.systems {
		s.Unload(w)
	}
	w.systems = w.systems[:0]
	w.systemTypes = w.systemTypes[:0]
}

// Systems returns the active systems in execution order. The slice is owned
// by the world.
func (w *World) Systems() []System {
	return w.systems
}

// Update runs every system's Update in execution order.
func (w *World) Update(dt float64) {
	for _, s := range w.systems {
		s.Update(w, dt)
	}
}

// Draw runs every system's Draw in execution order.
func (w *World) Draw() {
	for _, s := range w.systems {
		s.Draw(w)
	}
}

func (w *World) checkDuplicateSystem(s System) {
	if !w.cfg.Paranoia {
		return
	}
	for _, existing := range w.systems {
		if existing == s {
			panic("ecs: duplicate system instance in the world")
		}
	}
}
