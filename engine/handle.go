package engine

import (
	"runtime"

	"github.com/sbl8/increng/core"
)

// Handle[T] is a reference-counted, type-safe reference to a node whose
// output is a T. It stands in for the reference-counted Anchor<T> the
// original design keeps via Rust's Rc<RefCell<_>> and Drop: Go has
// neither, so the count is kept on the node's arena slot; a runtime
// finalizer attached to a small indirection box queues the decrement,
// which the engine applies at the end of its next Stabilize, with
// Clone minting a second box (and a second finalizer) against the same
// slot so each independent reference decrements exactly once.
//
// A Handle's zero value is not usable; always obtain one from a builtin
// constructor or from Clone.
type Handle[T any] struct {
	box *handleBox
}

type handleBox struct {
	eng  *Engine
	slot *nodeSlot
}

func newHandle[T any](e *Engine, slot *nodeSlot) Handle[T] {
	slot.refcount++
	box := &handleBox{eng: e, slot: slot}
	runtime.SetFinalizer(box, finalizeHandleBox)
	return Handle[T]{box: box}
}

func finalizeHandleBox(box *handleBox) {
	box.eng.scheduleDetach(box.slot.token)
}

// Token returns the stable identity this handle names, for use with
// Engine.MarkObserved, Engine.MarkUnobserved, and Engine.CheckObserved.
func (h Handle[T]) Token() core.Token {
	return h.box.slot.token
}

// Clone returns a second, independent reference to the same node; the
// node is only detached once every clone (the original included) has
// been collected.
func (h Handle[T]) Clone() Handle[T] {
	return newHandle[T](h.box.eng, h.box.slot)
}

// Release drops this handle's reference immediately rather than waiting
// for the garbage collector to run the box's finalizer, which in
// practice can be arbitrarily delayed. The node is detached the next
// time Stabilize runs once every outstanding reference has been
// released. Each handle returned by a constructor or by Clone is
// released once; calling Release twice on the same handle (or on a plain
// copy of it, which shares its box) drops the reference twice.
func (h Handle[T]) Release() {
	runtime.SetFinalizer(h.box, nil)
	h.box.eng.scheduleDetach(h.box.slot.token)
}
