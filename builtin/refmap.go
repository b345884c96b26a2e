package builtin

import (
	"github.com/sbl8/increng/core"
	"github.com/sbl8/increng/engine"
)

// refMapNode forwards its single input's state and, on Output, applies
// fn to the input's value each time rather than caching a result: a
// cheap way to reshape a value (e.g. project a field) without paying for
// a full Map node's cache slot.
type refMapNode[Out any] struct {
	child    core.Token
	fn       func(any) Out
	location string
}

func (n *refMapNode[Out]) Dirty(child core.Token) {}

func (n *refMapNode[Out]) PollUpdated(ctx core.UpdateContext) core.Poll {
	return ctx.Request(n.child, true)
}

func (n *refMapNode[Out]) Output(ctx core.OutputContext) any {
	return n.fn(ctx.Get(n.child))
}

func (n *refMapNode[Out]) DebugLocation() string { return n.location }

// RefMap projects input's value through fn without caching the result.
func RefMap[In, Out any](e *engine.Engine, input engine.Handle[In], fn func(In) Out) engine.Handle[Out] {
	loc := engine.CallerLocation(1)
	n := &refMapNode[Out]{child: input.Token(), location: loc}
	n.fn = func(v any) Out { return fn(v.(In)) }
	return engine.NewAnchor[Out](e, n, loc)
}
