package builtin

import (
	"github.com/sbl8/increng/core"
	"github.com/sbl8/increng/engine"
)

// mapMutNode is Map's in-place cousin: instead of returning a freshly
// computed value each time, mutate is handed a pointer to a long-lived,
// user-owned buffer and reports whether it actually changed the buffer's
// contents. Grounded on the original design's ext.rs clarification that
// map_mut exists specifically to avoid reallocating large outputs (e.g.
// growing a slice or map) on every recomputation.
type mapMutNode[Out any] struct {
	children    []core.Token
	buffer      *Out
	mutate      func(buf *Out, get func(int) any) bool
	everMutated bool
	location    string
}

func (n *mapMutNode[Out]) Dirty(child core.Token) {}

func (n *mapMutNode[Out]) PollUpdated(ctx core.UpdateContext) core.Poll {
	anyUpdated := !n.everMutated
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
	changed := n.mutate(n.buffer, func(i int) any { return ctx.Get(n.children[i]) })
	n.everMutated = true
	if changed {
		return core.PollUpdated
	}
	return core.PollUnchanged
}

func (n *mapMutNode[Out]) Output(ctx core.OutputContext) any { return *n.buffer }
func (n *mapMutNode[Out]) DebugLocation() string             { return n.location }

// MapMut1 mutates a user-owned buffer (seeded with initial) in place
// whenever a changes; fn reports whether the buffer's contents actually
// changed.
func MapMut1[A, Out any](e *engine.Engine, a engine.Handle[A], initial Out, fn func(buf *Out, a A) bool) engine.Handle[Out] {
	loc := engine.CallerLocation(1)
	buf := new(Out)
	*buf = initial
	n := &mapMutNode[Out]{children: []core.Token{a.Token()}, buffer: buf, location: loc}
	n.mutate = func(buf *Out, get func(int) any) bool {
		return fn(buf, get(0).(A))
	}
	return engine.NewAnchor[Out](e, n, loc)
}

// MapMut2 is MapMut1 for two inputs.
func MapMut2[A, B, Out any](e *engine.Engine, a engine.Handle[A], b engine.Handle[B], initial Out, fn func(buf *Out, a A, b B) bool) engine.Handle[Out] {
	loc := engine.CallerLocation(1)
	buf := new(Out)
	*buf = initial
	n := &mapMutNode[Out]{children: []core.Token{a.Token(), b.Token()}, buffer: buf, location: loc}
	n.mutate = func(buf *Out, get func(int) any) bool {
		return fn(buf, get(0).(A), get(1).(B))
	}
	return engine.NewAnchor[Out](e, n, loc)
}
