package engine

import "github.com/sbl8/increng/core"

// arena owns every node slot ever allocated by one Engine. Slots are
// heap-allocated individually and referenced by pointer, so the index
// slice can grow without moving a single already-allocated slot: the
// same fixed-address guarantee a bump allocator gives its regions,
// applied here to typed node records instead of raw bytes.
//
// A freed slot is pushed onto freeHead with its inner behavior and edge
// lists cleared (alloc resets every other field); alloc
// prefers a free slot over growing the index slice, and bumps the
// generation counter so a stale Token minted against the slot's previous
// occupant can never resolve to its new one.
type arena struct {
	slots          []*nodeSlot
	freeHead       *nodeSlot
	nextGeneration uint32
}

func newArena() *arena {
	return &arena{}
}

func (a *arena) alloc(inner core.AnchorInner, typeName, location string) *nodeSlot {
	var slot *nodeSlot
	if a.freeHead != nil {
		slot = a.freeHead
		a.freeHead = slot.next
	} else {
		slot = &nodeSlot{index: uint32(len(a.slots))}
		a.slots = append(a.slots, slot)
	}
	a.nextGeneration++
	*slot = nodeSlot{
		index:             slot.index,
		token:             core.NewToken(slot.index, a.nextGeneration),
		inner:             inner,
		typeName:          typeName,
		debugLocation:     location,
		recalcState:       core.RecalcNeeded,
		cleanParents:      slot.cleanParents[:0],
		necessaryChildren: slot.necessaryChildren[:0],
		lastRequested:     slot.lastRequested[:0],
	}
	return slot
}

func (a *arena) free(slot *nodeSlot) {
	slot.inner = nil
	slot.cleanParents = slot.cleanParents[:0]
	slot.necessaryChildren = slot.necessaryChildren[:0]
	slot.lastRequested = slot.lastRequested[:0]
	slot.prev = nil
	slot.next = a.freeHead
	a.freeHead = slot
}

// resolve looks a token up against the slot it names, returning ok=false
// if the slot was never allocated, sits on the free list, or has since
// been recycled for a different generation.
func (a *arena) resolve(tok core.Token) (*nodeSlot, bool) {
	idx := int(tok.Index())
	if idx < 0 || idx >= len(a.slots) {
		return nil, false
	}
	slot := a.slots[idx]
	if slot.inner == nil || slot.token != tok {
		return nil, false
	}
	return slot, true
}
