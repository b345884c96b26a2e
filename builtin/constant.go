// Package builtin provides the node kinds of the computation graph:
// external implementations of core.AnchorInner built entirely on top of
// the engine's public Request/Unrequest/Get/DirtyHandle surface, with no
// special-cased access to engine internals. Each factory captures its
// caller's source location via engine.CallerLocation so panics and
// Engine.DebugState can point at the line of user code that built the
// node, not a line inside this package. Split2 and Split3 are the
// exception: they build their nodes through RefMap, so those nodes record
// the RefMap call inside Split2/Split3.
package builtin

import (
	"github.com/sbl8/increng/core"
	"github.com/sbl8/increng/engine"
)

// constantNode never changes after its first poll: Updated once, then
// Unchanged forever.
type constantNode[T any] struct {
	value      T
	polledOnce bool
	location   string
}

// Constant wraps a fixed value as a node with no inputs.
func Constant[T any](e *engine.Engine, value T) engine.Handle[T] {
	loc := engine.CallerLocation(1)
	return engine.NewAnchor[T](e, &constantNode[T]{value: value, location: loc}, loc)
}

func (n *constantNode[T]) Dirty(child core.Token) {
	panic("constant node has no inputs and must never receive Dirty")
}

func (n *constantNode[T]) PollUpdated(ctx core.UpdateContext) core.Poll {
	if n.polledOnce {
		return core.PollUnchanged
	}
	n.polledOnce = true
	return core.PollUpdated
}

func (n *constantNode[T]) Output(ctx core.OutputContext) any { return n.value }
func (n *constantNode[T]) DebugLocation() string             { return n.location }
