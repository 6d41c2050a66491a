package execution

import (
	"sync"

	"github.com/YoutacRandS-VA/teku/consensus-types/primitives"
	"github.com/google/btree"
)

const slotMapDegree = 8

type slotEntry[V any] struct {
	slot primitives.Slot
	val  V
}

// slotMap is a map keyed by slot that keeps its keys ordered so entries
// below a slot can be dropped from the low end. It is safe for concurrent use.
type slotMap[V any] struct {
	lock sync.RWMutex
	tree *btree.BTreeG[slotEntry[V]]
}

func newSlotMap[V any]() *slotMap[V] {
	return &slotMap[V]{
		tree: btree.NewG(slotMapDegree, func(a, b slotEntry[V]) bool { return a.slot < b.slot }),
	}
}

// put stores v at slot, replacing any previous entry.
func (m *slotMap[V]) put(slot primitives.Slot, v V) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.tree.ReplaceOrInsert(slotEntry[V]{slot: slot, val: v})
}

func (m *slotMap[V]) get(slot primitives.Slot) (V, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()
	e, ok := m.tree.Get(slotEntry[V]{slot: slot})
	return e.val, ok
}

// pruneBefore removes every entry with a slot strictly below floor and
// returns how many were removed.
func (m *slotMap[V]) pruneBefore(floor primitives.Slot) int {
	m.lock.Lock()
	defer m.lock.Unlock()
	n := 0
	for {
		e, ok := m.tree.Min()
		if !ok || e.slot >= floor {
			return n
		}
		m.tree.DeleteMin()
		n++
	}
}

func (m *slotMap[V]) len() int {
	m.lock.RLock()
	defer m.lock.RUnlock()
	return m.tree.Len()
}

// keys returns the stored slots in ascending order.
func (m *slotMap[V]) keys() []primitives.Slot {
	m.lock.RLock()
	defer m.lock.RUnlock()
	var out []primitives.Slot
	m.tree.Ascend(func(e slotEntry[V]) bool {
		out = append(out, e.slot)
		return true
	})
	return out
}
