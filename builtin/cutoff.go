package builtin

import (
	"github.com/sbl8/increng/core"
	"github.com/sbl8/increng/engine"
)

// cutoffNode suppresses propagation of an input's changes until accept
// decides the new value differs enough from the last value it kept.
// Output always returns the last accepted value, not the raw input, so
// downstream nodes never see a value that was supposed to be suppressed.
type cutoffNode[T any] struct {
	child       core.Token
	accept      func(newVal, lastKept T) bool
	lastKept    T
	hasLastKept bool
	location    string
}

func (n *cutoffNode[T]) Dirty(child core.Token) {}

func (n *cutoffNode[T]) PollUpdated(ctx core.UpdateContext) core.Poll {
	switch ctx.Request(n.child, true) {
	case core.PollPending:
		return core.PollPending
	case core.PollUnchanged:
		return core.PollUnchanged
	}
	newVal := ctx.Get(n.child).(T)
	if !n.hasLastKept || n.accept(newVal, n.lastKept) {
		n.lastKept = newVal
		n.hasLastKept = true
		return core.PollUpdated
	}
	return core.PollUnchanged
}

func (n *cutoffNode[T]) Output(ctx core.OutputContext) any { return n.lastKept }
func (n *cutoffNode[T]) DebugLocation() string             { return n.location }

// Cutoff holds its output at the last accepted input value until
// accept(newVal, lastKept) returns true, at which point the new value is
// kept and propagated. The first value the input produces is always
// accepted.
func Cutoff[T any](e *engine.Engine, input engine.Handle[T], accept func(newVal, lastKept T) bool) engine.Handle[T] {
	loc := engine.CallerLocation(1)
	n := &cutoffNode[T]{child: input.Token(), accept: accept, location: loc}
	return engine.NewAnchor[T](e, n, loc)
}
