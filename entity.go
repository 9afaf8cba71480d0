package katachi

const (
	entityIndexBits = 16
	entityIndexMask = 1<<entityIndexBits - 1

	// MaxEntities is the hard ceiling on the live entity population, fixed
	// by the 16-bit index portion of an Entity handle. The configured limit
	// (Config.MaxEntities) may be lower but never higher.
	MaxEntities = 1 << entityIndexBits
)

// Entity is a unique handle identifying an object in the World. It packs a
// 16-bit index with a 16-bit version counter so that recycled indices are
// never confused with the entities that previously used them. A handle is a
// capability, not a pointer: holding one does not keep the entity alive.
type Entity uint32

// NullEntity exists in the world's bookkeeping but never carries components
// and is never matched by any view. It is useful as a "no entity" value when
// storing entities in arrays.
const NullEntity Entity = 0

// makeEntity builds a handle from an index and a version.
func makeEntity(index, version uint32) Entity {
	return Entity(index | version<<entityIndexBits)
}

// Index returns the index part of the handle. Pure bit-decomposition, no
// world lookup required.
func (e Entity) Index() uint32 {
	return uint32(e) & entityIndexMask
}

// Version returns the generation counter of the handle. It is incremented
// each time the handle's index is recycled.
func (e Entity) Version() uint32 {
	return uint32(e) >> entityIndexBits
}
