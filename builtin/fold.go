package builtin

import (
	"github.com/benbjohnson/immutable"

	"github.com/sbl8/increng/core"
	"github.com/sbl8/increng/engine"
)

// foldNode diffs successive versions of a persistent map against the
// version it last observed and folds the difference into a running
// accumulator: onSet for each key that is new or whose value changed,
// onRemove for each key present in the old version but absent from the
// new one. github.com/benbjohnson/immutable's structural sharing keeps
// each observed version cheap to hold on to; the diff itself iterates
// every entry of both versions, so its cost grows with the size of the
// map, not with the number of keys that changed.
type foldNode[K comparable, V comparable, Acc any] struct {
	input       core.Token
	onSet       func(acc Acc, key K, newVal V) Acc
	onRemove    func(acc Acc, key K, oldVal V) Acc
	accumulator Acc
	lastSeen    *immutable.Map[K, V]
	location    string
}

func (n *foldNode[K, V, Acc]) Dirty(child core.Token) {}

func (n *foldNode[K, V, Acc]) PollUpdated(ctx core.UpdateContext) core.Poll {
	switch ctx.Request(n.input, true) {
	case core.PollPending:
		return core.PollPending
	case core.PollUnchanged:
		return core.PollUnchanged
	}
	next, _ := ctx.Get(n.input).(*immutable.Map[K, V])
	changed := n.diffInto(next)
	n.lastSeen = next
	if changed {
		return core.PollUpdated
	}
	return core.PollUnchanged
}

func (n *foldNode[K, V, Acc]) diffInto(next *immutable.Map[K, V]) bool {
	changed := false
	if next != nil {
		itr := next.Iterator()
		for !itr.Done() {
			k, v, _ := itr.Next()
			if n.lastSeen != nil {
				if old, ok := n.lastSeen.Get(k); ok && old == v {
					continue
				}
			}
			n.accumulator = n.onSet(n.accumulator, k, v)
			changed = true
		}
	}
	if n.lastSeen != nil {
		itr := n.lastSeen.Iterator()
		for !itr.Done() {
			k, v, _ := itr.Next()
			present := false
			if next != nil {
				_, present = next.Get(k)
			}
			if !present {
				n.accumulator = n.onRemove(n.accumulator, k, v)
				changed = true
			}
		}
	}
	return changed
}

func (n *foldNode[K, V, Acc]) Output(ctx core.OutputContext) any { return n.accumulator }
func (n *foldNode[K, V, Acc]) DebugLocation() string             { return n.location }

// Fold maintains an accumulator over a persistent map input, calling
// onSet for keys that are new or changed since the last observed version
// and onRemove for keys that disappeared, starting the accumulator at
// initial.
func Fold[K comparable, V comparable, Acc any](
	e *engine.Engine,
	input engine.Handle[*immutable.Map[K, V]],
	initial Acc,
	onSet func(acc Acc, key K, newVal V) Acc,
	onRemove func(acc Acc, key K, oldVal V) Acc,
) engine.Handle[Acc] {
	loc := engine.CallerLocation(1)
	n := &foldNode[K, V, Acc]{
		input:       input.Token(),
		onSet:       onSet,
		onRemove:    onRemove,
		accumulator: initial,
		location:    loc,
	}
	return engine.NewAnchor[Acc](e, n, loc)
}
