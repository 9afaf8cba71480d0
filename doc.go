// Package katachi is a small entity-component runtime built around packed
// component storage and cached structural queries.
//
// Entities are integral handles that encode an index and a generation
// counter. Components are plain values attached to entities by type, stored
// in densely packed per-type arrays with O(1) swap-with-last removal.
// Structural queries ("which entities have components A, B and C?") are
// answered from per-mask caches that are kept consistent through lazily
// applied Add/Remove diffs rather than full rebuilds.
//
// The world is single-threaded by design: all operations are synchronous and
// there is no internal locking. The only deferred work is cache-diff folding
// and entity-index recycling, both flushed by CollectUnusedEntities, which
// callers run once per frame after mutation settles.
//
//	w := katachi.NewWorld()
//	e := w.CreateEntity()
//	katachi.Pack(w, e, Position{X: 1, Y: 2})
//	katachi.Each(w, func(p *Position) { p.X++ }, false)
//	w.CollectUnusedEntities()
package katachi
