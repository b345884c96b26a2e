package builtin

import (
	"github.com/sbl8/increng/core"
	"github.com/sbl8/increng/engine"
)

// variableNode holds the shared cell a Setter writes into and the dirty
// handle it schedules through. First poll always reports Updated;
// subsequent polls report Updated iff Set was called since the last
// poll, even if the new value equals the old one (cutoffs, not
// variables, are responsible for suppressing equal-value propagation).
type variableNode[T any] struct {
	value, pending T
	dirty          bool
	polledOnce     bool
	handle         core.DirtyHandle
	location       string
}

// Setter is the write side of a Variable, usable from anywhere,
// including from outside any Stabilize call, which is the whole point of
// a variable as a graph input.
type Setter[T any] struct {
	node *variableNode[T]
}

// Set schedules v to become the variable's value as of the next
// Stabilize. Calling Set during a stabilize (e.g. from a node's own
// computation) buffers the dirty mark for the following one. The new
// value itself is stored at once, so if this variable is polled later in
// the same stabilize (for instance because it is already queued), that
// poll reports Updated with the new value.
func (s *Setter[T]) Set(v T) {
	s.node.pending = v
	s.node.dirty = true
	if s.node.handle != nil {
		s.node.handle.MarkDirty()
	}
}

// Variable returns a node wrapping initial and the Setter used to change
// it.
func Variable[T any](e *engine.Engine, initial T) (engine.Handle[T], *Setter[T]) {
	loc := engine.CallerLocation(1)
	n := &variableNode[T]{value: initial, pending: initial, location: loc}
	h := engine.NewAnchor[T](e, n, loc)
	return h, &Setter[T]{node: n}
}

func (n *variableNode[T]) Dirty(child core.Token) {
	panic("variable node has no inputs and must never receive Dirty")
}

func (n *variableNode[T]) PollUpdated(ctx core.UpdateContext) core.Poll {
	if n.handle == nil {
		n.handle = ctx.DirtyHandle()
	}
	first := !n.polledOnce
	n.polledOnce = true
	if first || n.dirty {
		n.value = n.pending
		n.dirty = false
		return core.PollUpdated
	}
	return core.PollUnchanged
}

func (n *variableNode[T]) Output(ctx core.OutputContext) any { return n.value }
func (n *variableNode[T]) DebugLocation() string             { return n.location }
