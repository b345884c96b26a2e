// Package core defines the polling protocol shared by every node kind and
// the engine that schedules them: the AnchorInner contract a node
// implements, and the two context objects (UpdateContext, OutputContext) a
// node uses to request and read its dependencies.
//
// core has no dependency on the engine or builtin packages: it is the
// leaf contract both sides implement against.
package core

// DirtyHandle lets code outside a stabilization (most commonly a Variable
// setter) schedule re-polling of the node it is bound to. Calling
// MarkDirty before the next Stabilize is how external inputs participate
// in the graph.
type DirtyHandle interface {
	MarkDirty()
}

// UpdateContext is what a node's PollUpdated method uses to declare
// interest in its children and to read their already-computed output.
type UpdateContext interface {
	// Request declares interest in child's current value. It returns
	// PollUpdated if the child's last update happened after this node
	// was last ready, PollUnchanged if not, or PollPending if the child
	// itself still needs to be (re)computed, in which case child is
	// enqueued and the caller should return PollPending itself.
	//
	// When necessary is true and the caller is itself observed or
	// necessary, child is additionally recorded as a necessary child of
	// the caller, so the engine keeps it up to date even if nothing
	// ever calls Get on it directly.
	Request(child Token, necessary bool) Poll

	// Unrequest drops the necessary-child edge from the caller to
	// child, if one is recorded, propagating further un-necessitation
	// if child's necessary count hits zero while it remains unobserved.
	Unrequest(child Token)

	// Get returns the cached output of child. Valid only after Request
	// returned PollUpdated or PollUnchanged for child during this same
	// poll; panics otherwise.
	Get(child Token) any

	// DirtyHandle returns a handle bound to the node currently being
	// polled, usable from outside a stabilization to schedule it for
	// re-polling.
	DirtyHandle() DirtyHandle
}

// OutputContext is what a node's Output method uses to read the
// already-computed output of children it requested during its most recent
// poll (used by reference-map nodes to forward a borrow).
type OutputContext interface {
	Get(child Token) any
}

// AnchorInner is the behavior every node implements. The engine drives
// nodes exclusively through this interface; it never inspects a node's
// concrete type.
type AnchorInner interface {
	// Dirty notifies the node that a child whose value it previously
	// read may have changed. A node with no inputs must never receive
	// this call. Implementations should record the notification and
	// re-request the named child the next time they are polled.
	Dirty(changedChild Token)

	// PollUpdated computes the node's next output, consulting ctx for
	// any inputs it needs. See the Poll constants for the return
	// contract. It is a protocol violation to return PollPending
	// without having received PollPending from at least one Request
	// call made during this same invocation.
	PollUpdated(ctx UpdateContext) Poll

	// Output returns the node's current output. Called only after
	// PollUpdated most recently returned PollUpdated or PollUnchanged.
	Output(ctx OutputContext) any

	// DebugLocation identifies where this node was constructed, for use
	// in panic diagnostics and debug_state() output.
	DebugLocation() string
}
