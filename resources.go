package katachi

import (
	"fmt"
	"reflect"
)

// resources is a typed singleton registry for global data systems share
// without going through an entity: asset managers, tuning tables, the
// renderer handle. At most one value per type.
type resources struct {
	items map[reflect.Type]any
}

// AddResource stores res as the world's singleton of type T. It panics if a
// resource of the same type already exists or res is nil.
func AddResource[T any](w *World, res *T) {
	if res == nil {
		panic("ecs: cannot add nil resource")
	}
	t := reflect.TypeOf(res)
	if w.resources.items == nil {
		w.resources.items = make(map[reflect.Type]any)
	}
	if _, ok := w.resources.items[t]; ok {
		panic(fmt.Sprintf("ecs: resource of type %s already exists", t))
	}
	w.resources.items[t] = res
}

// GetResource retrieves the singleton of type T, or false if none is set.
func GetResource[T any](w *World) (*T, bool) {
	res, ok := w.resources.items[reflect.TypeOf((*T)(nil))]
	if !ok {
		return nil, false
	}
	return res.(*T), true
}

// RemoveResource drops the singleton of type T if present.
func RemoveResource[T any](w *World) {
	delete(w.resources.items, reflect.TypeOf((*T)(nil)))
}

// ClearResources removes all resources.
func (w *World) ClearResources() {
	clear(w.resources.items)
}
