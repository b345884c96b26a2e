package engine

import (
	"fmt"
	"runtime"
	"strings"
	"sync"

	"github.com/sbl8/increng/core"
)

// DefaultMaxHeight bounds how deep a dependency chain may run before the
// engine treats it as a protocol violation rather than a legitimate,
// if unusual, graph shape. 256 comfortably covers every graph shape in
// this package's own tests; pass a larger value to NewWithMaxHeight for
// graphs that genuinely nest deeper.
const DefaultMaxHeight = 256

// Engine owns one computation graph: its node arena, its recalc queue,
// and the bookkeeping that drives stabilization. All of its methods are
// single-threaded. The one exception is the finalizer-driven refcount
// path described on Handle, which is guarded by its own mutex because a
// Go finalizer runs on a goroutine the caller does not control.
type Engine struct {
	arena *arena
	queue *recalcQueue

	generation uint64
	maxHeight  int

	dirtyMarks []core.Token

	pendingDetachMu sync.Mutex
	pendingDetach   []core.Token
}

// New returns an Engine with DefaultMaxHeight.
func New() *Engine {
	return NewWithMaxHeight(DefaultMaxHeight)
}

// NewWithMaxHeight returns an Engine whose recalc queue has one bucket
// per height from 0 to maxHeight-1.
func NewWithMaxHeight(maxHeight int) *Engine {
	return &Engine{
		arena:      newArena(),
		queue:      newRecalcQueue(maxHeight),
		generation: 1,
		maxHeight:  maxHeight,
	}
}

// CallerLocation captures the file:line of the caller skip frames above
// this call, for builtin node constructors to stamp onto the nodes they
// create. The closest Go analog of Rust's #[track_caller].
func CallerLocation(skip int) string {
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", file, line)
}

// NewAnchor allocates a node wrapping inner and returns a reference-counted
// handle to it. location should come from CallerLocation at the call site
// of the builtin factory function that wraps this call.
func NewAnchor[T any](e *Engine, inner core.AnchorInner, location string) Handle[T] {
	slot := e.arena.alloc(inner, typeNameOf(inner), location)
	return newHandle[T](e, slot)
}

func typeNameOf(inner core.AnchorInner) string {
	return fmt.Sprintf("%T", inner)
}

func (e *Engine) enqueue(n *nodeSlot) {
	e.queue.push(e, n, n.height)
}

func (e *Engine) observationState(n *nodeSlot) core.ObservationState {
	if n.observed {
		return core.Observed
	}
	if n.necessaryCount > 0 {
		return core.Necessary
	}
	return core.Unnecessary
}

// notifyParentsAndRecurse drains n's clean-parent set, telling each
// parent n's token just changed and recursing into the external-dirty
// procedure starting at that parent. Shared by both dirty-propagation
// shapes the engine uses.
func (e *Engine) notifyParentsAndRecurse(n *nodeSlot) {
	drainCleanParents(n, func(p *nodeSlot) {
		p.inner.Dirty(n.token)
		e.markNodeDirtyExternal(p)
	})
}

// markNodeDirtyExternal is the "self-not-yet-recalculated" dirty wave:
// an observed/necessary node is simply re-enqueued, while any other Ready
// node is marked Needed and its clean-parents are notified in turn.
func (e *Engine) markNodeDirtyExternal(n *nodeSlot) {
	switch e.observationState(n) {
	case core.Observed, core.Necessary:
		e.enqueue(n)
	default:
		if n.recalcState == core.RecalcReady {
			n.recalcState = core.RecalcNeeded
			e.notifyParentsAndRecurse(n)
		}
	}
}

// propagateUnnecessary walks n's own necessary-children, decrementing
// their counts and recursing into any that become unnecessary themselves,
// but only once n itself has actually become Unnecessary. Used by both
// Unrequest and MarkUnobserved.
func (e *Engine) propagateUnnecessary(n *nodeSlot) {
	if e.observationState(n) != core.Unnecessary {
		return
	}
	drainNecessaryChildren(n, func(c *nodeSlot) {
		e.propagateUnnecessary(c)
	})
}

func (e *Engine) drainDirtyMarks() {
	marks := e.dirtyMarks
	e.dirtyMarks = nil
	for _, tok := range marks {
		if slot, ok := e.arena.resolve(tok); ok {
			e.markNodeDirtyExternal(slot)
		}
	}
}

func (e *Engine) pollNode(n *nodeSlot) core.Poll {
	ctx := &updateContext{eng: e, self: n}
	result := n.inner.PollUpdated(ctx)
	if result == core.PollPending && !ctx.sawPending {
		e.violate(n, "poll_updated returned Pending without any request itself returning Pending")
	}
	if result != core.PollPending {
		n.lastRequested = ctx.requestedOK
	}
	return result
}

// stabilizeInner drains the recalc queue without bumping the generation
// counter. Used both by the tail of Stabilize and by Get when it needs
// to force a specific node ready without starting a fresh generation.
func (e *Engine) stabilizeInner() {
	for {
		n, bucketHeight, ok := e.queue.popMin()
		if !ok {
			return
		}
		if bucketHeight != n.height {
			e.queue.push(e, n, n.height)
			continue
		}
		switch e.pollNode(n) {
		case core.PollUpdated:
			n.lastUpdate = e.generation
			n.lastReady = e.generation
			e.notifyParentsAndRecurse(n)
		case core.PollUnchanged:
			n.lastReady = e.generation
		case core.PollPending:
			e.queue.push(e, n, n.height)
		}
	}
}

// Stabilize drains any pending external dirty marks, starts a new
// generation, and runs every queued node to a fixed point.
func (e *Engine) Stabilize() {
	e.drainDirtyMarks()
	e.generation++
	e.stabilizeInner()
	e.garbageCollect()
}

// getValue stabilizes, forces the target node ready if it somehow still
// isn't (e.g. it was never observed or necessary and so stabilize skipped
// it), then reads its output.
func (e *Engine) getValue(slot *nodeSlot) any {
	e.Stabilize()
	if slot.recalcState != core.RecalcReady {
		e.enqueue(slot)
		e.stabilizeInner()
	}
	return slot.inner.Output(&outputContext{eng: e, self: slot})
}

// Get returns the current, up-to-date output of h, running whatever
// stabilization is necessary first.
func Get[T any](e *Engine, h Handle[T]) T {
	return e.getValue(h.box.slot).(T)
}

// MarkObserved declares token's node observed: it will be kept
// up-to-date on every future Stabilize until MarkUnobserved is called.
func (e *Engine) MarkObserved(token core.Token) {
	slot, ok := e.arena.resolve(token)
	if !ok {
		return
	}
	slot.observed = true
	if slot.recalcState != core.RecalcReady {
		e.enqueue(slot)
	}
}

// MarkUnobserved reverses a prior MarkObserved, propagating
// un-necessitation through any children that were kept necessary only
// because of this node's observed status.
func (e *Engine) MarkUnobserved(token core.Token) {
	slot, ok := e.arena.resolve(token)
	if !ok {
		return
	}
	slot.observed = false
	e.propagateUnnecessary(slot)
}

// CheckObserved reports why (if at all) the node named by token is kept
// up to date.
func (e *Engine) CheckObserved(token core.Token) core.ObservationState {
	slot, ok := e.arena.resolve(token)
	if !ok {
		return core.Unnecessary
	}
	return e.observationState(slot)
}

// detach permanently removes slot from the graph: its necessary-child
// edges are drained (propagating un-necessitation to the other side),
// its clean-parent records are discarded, it's pulled out of the recalc
// queue if still Pending, and its slot is returned to the free list.
func (e *Engine) detach(slot *nodeSlot) {
	slot.cleanParents = slot.cleanParents[:0]
	drainNecessaryChildren(slot, func(c *nodeSlot) {
		e.propagateUnnecessary(c)
	})
	e.queue.remove(slot)
	e.arena.free(slot)
}

// garbageCollect drains the tokens queued by dropped handles (see
// handle.go) and detaches the nodes they name, mirroring the original
// design's garbage_collect() pass at the tail of every stabilize: a
// handle's refcount hitting zero only marks a node for detachment, the
// detachment itself happens here, synchronously, on the engine's own
// goroutine.
func (e *Engine) garbageCollect() {
	e.pendingDetachMu.Lock()
	pending := e.pendingDetach
	e.pendingDetach = nil
	e.pendingDetachMu.Unlock()

	for _, tok := range pending {
		slot, ok := e.arena.resolve(tok)
		if !ok {
			continue
		}
		slot.refcount--
		if slot.refcount <= 0 {
			e.detach(slot)
		}
	}
}

func (e *Engine) scheduleDetach(tok core.Token) {
	e.pendingDetachMu.Lock()
	e.pendingDetach = append(e.pendingDetach, tok)
	e.pendingDetachMu.Unlock()
}

// DebugState renders one line per live node: its construction site, its
// concrete type, why (if at all) it's kept up to date, and its current
// recalc state. Intended for test failures and interactive debugging.
func (e *Engine) DebugState() string {
	var b strings.Builder
	for _, s := range e.arena.slots {
		if s.inner == nil {
			continue
		}
		fmt.Fprintf(&b, "%-40s %-16s observed=%-11s recalc=%s\n",
			s.debugLocation, s.typeName, e.observationState(s), s.recalcState)
	}
	return b.String()
}
