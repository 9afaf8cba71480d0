package katachi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkPacked verifies the store invariant: slots [0, count) hold exactly
// the live components, with both maps agreeing.
func checkPacked[T any](t *testing.T, s *store[T]) {
	t.Helper()
	require.Equal(t, s.count, len(s.entityToSlot))
	require.Equal(t, s.count, len(s.slotToEntity))
	for e, slot := range s.entityToSlot {
		require.Less(t, int(slot), s.count, "slot beyond count")
		require.Equal(t, e, s.slotToEntity[slot])
	}
}

func TestStoreWriteAndRead(t *testing.T) {
	s := newStore[Position](1024)
	e := makeEntity(1, 0)

	p := s.write(e, Position{X: 1, Y: 2})
	assert.Equal(t, Position{X: 1, Y: 2}, *p)
	assert.Equal(t, Position{X: 1, Y: 2}, *s.read(e))
	assert.Equal(t, 1, s.size())
	checkPacked(t, s)
}

func TestStoreOverwriteInPlace(t *testing.T) {
	s := newStore[Position](1024)
	e1 := makeEntity(1, 0)
	e2 := makeEntity(2, 0)
	s.write(e1, Position{X: 1})
	s.write(e2, Position{X: 2})

	slotBefore := s.entityToSlot[e1]
	s.write(e1, Position{X: 9})

	assert.Equal(t, slotBefore, s.entityToSlot[e1], "overwrite must not move the entry")
	assert.Equal(t, 2, s.size(), "overwrite must not change packing")
	assert.Equal(t, float32(9), s.read(e1).X)
	checkPacked(t, s)
}

func TestStoreRemoveSwapsLastIntoHole(t *testing.T) {
	s := newStore[Health](1024)
	e1 := makeEntity(1, 0)
	e2 := makeEntity(2, 0)
	e3 := makeEntity(3, 0)
	s.write(e1, Health{Current: 1})
	s.write(e2, Health{Current: 2})
	s.write(e3, Health{Current: 3})

	s.remove(e1)

	assert.Equal(t, 2, s.size())
	assert.False(t, s.contains(e1))
	assert.Equal(t, 2, s.read(e2).Current)
	assert.Equal(t, 3, s.read(e3).Current)
	checkPacked(t, s)
}

func TestStoreRemoveAbsentIsNoop(t *testing.T) {
	s := newStore[Health](1024)
	s.write(makeEntity(1, 0), Health{Current: 1})
	assert.NotPanics(t, func() { s.remove(makeEntity(9, 0)) })
	assert.Equal(t, 1, s.size())
}

func TestStoreNeverHasGaps(t *testing.T) {
	s := newStore[Health](64)
	entities := make([]Entity, 0, 32)
	for i := uint32(1); i <= 32; i++ {
		e := makeEntity(i, 0)
		entities = append(entities, e)
		s.write(e, Health{Current: int(i)})
	}
	// Remove every third entry, then re-add half of them.
	for i := 0; i < len(entities); i += 3 {
		s.remove(entities[i])
		checkPacked(t, s)
	}
	for i := 0; i < len(entities); i += 6 {
		s.write(entities[i], Health{Current: -1})
		checkPacked(t, s)
	}
	for _, e := range entities {
		if s.contains(e) {
			_ = s.read(e) // must not panic for any live entry
		}
	}
}

func TestStoreCopyTo(t *testing.T) {
	s := newStore[Position](1024)
	src := makeEntity(1, 0)
	dst := makeEntity(2, 0)
	s.write(src, Position{X: 4})

	s.copyTo(dst, src)
	assert.Equal(t, float32(4), s.read(dst).X)

	// Copies are independent values.
	s.read(dst).X = 7
	assert.Equal(t, float32(4), s.read(src).X)
}

func TestStoreReadAbsentPanics(t *testing.T) {
	s := newStore[Position](1024)
	require.Panics(t, func() { s.read(makeEntity(1, 0)) })
}

func TestRegisterComponentTwicePanics(t *testing.T) {
	w := NewWorld()
	RegisterComponent[Position](w)
	require.Panics(t, func() { RegisterComponent[Position](w) })
}

func TestTooManyComponentTypesPanics(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxComponentTypes = 2 // Active takes one slot
	w := NewWorld(WithConfig(cfg))
	RegisterComponent[Position](w)
	require.Panics(t, func() { RegisterComponent[Velocity](w) })
}

func TestComponentTypeAssignmentIsFirstUseOrder(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	Pack(w, e, Velocity{})
	Pack(w, e, Position{})

	// Active registers at world construction, then types in Pack order.
	assert.Equal(t, ComponentType(1), componentType[Velocity](w))
	assert.Equal(t, ComponentType(2), componentType[Position](w))
}
