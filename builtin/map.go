package builtin

import (
	"github.com/sbl8/increng/core"
	"github.com/sbl8/increng/engine"
)

// mapNode implements the n-ary Map kind for any arity: request every
// child, propagate Pending if any child is, recompute via
// compute if any child reported Updated (or there is no cached output
// yet), otherwise report Unchanged without touching compute at all.
type mapNode[Out any] struct {
	children  []core.Token
	compute   func(get func(int) any) Out
	cached    Out
	hasCached bool
	location  string
}

func (n *mapNode[Out]) Dirty(child core.Token) {}

func (n *mapNode[Out]) PollUpdated(ctx core.UpdateContext) core.Poll {
	anyUpdated := !n.hasCached
	for _, c := range n.children {
		switch ctx.Request(c, true) {
		case core.PollPending:
			return core.PollPending
		case core.PollUpdated:
			anyUpdated = true
		}
	}
	if !anyUpdated {
		return core.PollUnchanged
	}
	n.cached = n.compute(func(i int) any { return ctx.Get(n.children[i]) })
	n.hasCached = true
	return core.PollUpdated
}

func (n *mapNode[Out]) Output(ctx core.OutputContext) any { return n.cached }
func (n *mapNode[Out]) DebugLocation() string             { return n.location }

// Map1 applies fn to a's output whenever a changes.
func Map1[A, Out any](e *engine.Engine, a engine.Handle[A], fn func(A) Out) engine.Handle[Out] {
	loc := engine.CallerLocation(1)
	n := &mapNode[Out]{children: []core.Token{a.Token()}, location: loc}
	n.compute = func(get func(int) any) Out {
		return fn(get(0).(A))
	}
	return engine.NewAnchor[Out](e, n, loc)
}

// Map2 applies fn to a and b's outputs whenever either changes.
func Map2[A, B, Out any](e *engine.Engine, a engine.Handle[A], b engine.Handle[B], fn func(A, B) Out) engine.Handle[Out] {
	loc := engine.CallerLocation(1)
	n := &mapNode[Out]{children: []core.Token{a.Token(), b.Token()}, location: loc}
	n.compute = func(get func(int) any) Out {
		return fn(get(0).(A), get(1).(B))
	}
	return engine.NewAnchor[Out](e, n, loc)
}

// Map3 applies fn to a, b, and c's outputs whenever any changes.
func Map3[A, B, C, Out any](e *engine.Engine, a engine.Handle[A], b engine.Handle[B], c engine.Handle[C], fn func(A, B, C) Out) engine.Handle[Out] {
	loc := engine.CallerLocation(1)
	n := &mapNode[Out]{children: []core.Token{a.Token(), b.Token(), c.Token()}, location: loc}
	n.compute = func(get func(int) any) Out {
		return fn(get(0).(A), get(1).(B), get(2).(C))
	}
	return engine.NewAnchor[Out](e, n, loc)
}

// MapSlice applies fn to the outputs of an arbitrary number of
// same-typed inputs, for arities Map1..Map3 don't cover.
func MapSlice[In, Out any](e *engine.Engine, inputs []engine.Handle[In], fn func([]In) Out) engine.Handle[Out] {
	loc := engine.CallerLocation(1)
	tokens := make([]core.Token, len(inputs))
	for i, h := range inputs {
		tokens[i] = h.Token()
	}
	n := &mapNode[Out]{children: tokens, location: loc}
	n.compute = func(get func(int) any) Out {
		vals := make([]In, len(tokens))
		for i := range tokens {
			vals[i] = get(i).(In)
		}
		return fn(vals)
	}
	return engine.NewAnchor[Out](e, n, loc)
}
