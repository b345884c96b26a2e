// Package engine implements the scheduler: the node arena with free list,
// the height-bucketed recalc queue, graph bookkeeping (clean-parent /
// necessary-child edges, height propagation), and the Engine that drives
// stabilization. This is the "runtime" half of the library, structured
// around a typed node arena instead of a raw byte arena, since the domain
// here is a graph of values, not a graph of tensor kernels.
package engine

import "github.com/sbl8/increng/core"

// nodeSlot is the per-node record: height, observed flag, necessary
// count, last-ready/last-update generations, recalc-state tag,
// clean-parent set, necessary-child set, and the node's inner behavior.
// Slots are individually heap-allocated so their addresses never move
// even as the arena's index slice grows, and are threaded onto either
// the arena's free list or a recalc-queue bucket through the same
// prev/next fields (a slot is never in both lists at once).
type nodeSlot struct {
	index uint32
	token core.Token

	refcount int

	height         int
	visited        bool
	observed       bool
	necessaryCount int
	lastReady      uint64
	lastUpdate     uint64
	recalcState    core.RecalcState

	// clean-parent set: parents who, as of their last poll, read this
	// node's current value and haven't yet been told it changed.
	// Duplicates are permitted and order doesn't matter.
	cleanParents []*nodeSlot

	// necessary-child set: children this node currently declares
	// necessary, kept sorted and deduplicated by slot index.
	necessaryChildren []*nodeSlot

	// lastRequested holds the children this node successfully requested
	// (Updated or Unchanged) during its most recent poll, so a later
	// Output call can still read them via OutputContext.Get.
	lastRequested []*nodeSlot

	inner         core.AnchorInner
	debugLocation string
	typeName      string

	// bucketHeight is the height bucket this slot is linked into while
	// recalcState is RecalcPending; it may lag behind height if the
	// node's height rose after it was enqueued.
	bucketHeight int
	prev, next   *nodeSlot
}
