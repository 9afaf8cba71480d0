package katachi

// diffOp is a deferred cache operation.
type diffOp uint8

const (
	diffAdd diffOp = iota
	diffRemove
)

// cacheDiff is a pending change queued against a memoized view result.
type cacheDiff struct {
	entity Entity
	op     diffOp
}

// viewCache memoizes the result of one structural query: the last-known
// matching entities in the order they were added, a membership set for O(1)
// containment checks, and the diffs not yet folded into the list.
//
// Invariant: folding all pending diffs in enqueue order reproduces the true
// result set exactly.
type viewCache struct {
	entities []Entity
	lookup   map[Entity]struct{}
	diffs    []cacheDiff
}

// member reports whether the entity belongs to the view once all pending
// diffs are accounted for. Mutations consult this rather than the raw lookup
// set so that a remove-then-pack within one frame still folds to the correct
// membership.
func (c *viewCache) member(e Entity) bool {
	_, in := c.lookup[e]
	for _, d := range c.diffs {
		if d.entity == e {
			in = d.op == diffAdd
		}
	}
	return in
}

// enqueue records a pending membership change. Ops for one entity always
// alternate, because mutations consult member before enqueueing, so a pending
// diff for the same entity is either a duplicate to drop or the opposite op
// to cancel against. At most one diff per entity is ever pending.
func (c *viewCache) enqueue(d cacheDiff) {
	for i, q := range c.diffs {
		if q.entity != d.entity {
			continue
		}
		if q.op == d.op {
			return
		}
		c.diffs = append(c.diffs[:i], c.diffs[i+1:]...)
		return
	}
	c.diffs = append(c.diffs, d)
}

// fold applies every pending diff in enqueue order and clears the queue.
// Add appends to the list and membership set; Remove swaps the entity with
// the last list element and pops, keeping the list packed.
func (c *viewCache) fold() {
	for _, d := range c.diffs {
		switch d.op {
		case diffAdd:
			c.entities = append(c.entities, d.entity)
			c.lookup[d.entity] = struct{}{}
		case diffRemove:
			found := -1
			for i, e := range c.entities {
				if e == d.entity {
					found = i
					break
				}
			}
			if found < 0 {
				panic("ecs: cache diff refers to an entity missing from the view")
			}
			last := len(c.entities) - 1
			c.entities[found] = c.entities[last]
			c.entities = c.entities[:last]
			delete(c.lookup, d.entity)
		}
	}
	c.diffs = c.diffs[:0]
}
