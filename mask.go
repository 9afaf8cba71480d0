package katachi

import "fmt"

const (
	bitsPerWord = 64
	maskWords   = 2

	// maxComponentTypes is the hard ceiling on distinct component types,
	// fixed by the mask width. Config.MaxComponentTypes may be lower.
	maxComponentTypes = maskWords * bitsPerWord
)

// mask records which component types are attached to an entity, one bit per
// registered type. Masks also key the view cache, so the type must stay a
// comparable fixed-size array.
//
// Which bit represents a given component type depends on registration order,
// so a mask must never be treated as a durable cross-run identifier.
type mask [maskWords]uint64

// set enables the bit for the given component type.
func (m *mask) set(bit ComponentType) {
	m[bit>>6] |= uint64(1) << uint64(bit&63)
}

// unset disables the bit for the given component type.
func (m *mask) unset(bit ComponentType) {
	m[bit>>6] &= ^(uint64(1) << uint64(bit&63))
}

// contains reports whether every bit set in sub is also set in m.
func (m mask) contains(sub mask) bool {
	return (m[0]&sub[0]) == sub[0] &&
		(m[1]&sub[1]) == sub[1]
}

// containsBit reports whether a single bit is set.
func (m mask) containsBit(bit ComponentType) bool {
	return (m[bit>>6] & (uint64(1) << uint64(bit&63))) != 0
}

// String renders the mask as hex for trace logs, most significant word first.
func (m mask) String() string {
	return fmt.Sprintf("%016x%016x", m[1], m[0])
}
