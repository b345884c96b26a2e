package builtin

import (
	"github.com/sbl8/increng/core"
	"github.com/sbl8/increng/engine"
)

// thenNode selects a downstream handle dynamically from its config
// input's value, unrequesting the previously selected branch whenever
// selection switches so that branch's necessary-count drops and it can
// become unnecessary again.
type thenNode[In, Out any] struct {
	config      core.Token
	selector    func(In) engine.Handle[Out]
	selected    engine.Handle[Out]
	hasSelected bool
	location    string
}

func (n *thenNode[In, Out]) Dirty(child core.Token) {}

func (n *thenNode[In, Out]) PollUpdated(ctx core.UpdateContext) core.Poll {
	switch ctx.Request(n.config, true) {
	case core.PollPending:
		return core.PollPending
	case core.PollUpdated:
		n.reselect(ctx)
	default:
		if !n.hasSelected {
			n.reselect(ctx)
		}
	}
	return ctx.Request(n.selected.Token(), true)
}

func (n *thenNode[In, Out]) reselect(ctx core.UpdateContext) {
	cfg := ctx.Get(n.config).(In)
	next := n.selector(cfg)
	if n.hasSelected && next.Token() == n.selected.Token() {
		next.Release()
		return
	}
	if n.hasSelected {
		ctx.Unrequest(n.selected.Token())
		n.selected.Release()
	}
	n.selected = next
	n.hasSelected = true
}

func (n *thenNode[In, Out]) Output(ctx core.OutputContext) any {
	return ctx.Get(n.selected.Token())
}

func (n *thenNode[In, Out]) DebugLocation() string { return n.location }

// Then polls config and, whenever it changes, runs selector to pick the
// downstream handle whose state this node should propagate, releasing
// any previously selected branch. The Then node takes ownership of
// whatever handle selector returns; if selector hands back a handle the
// caller also holds elsewhere, it must return a Clone of it.
func Then[In, Out any](e *engine.Engine, config engine.Handle[In], selector func(In) engine.Handle[Out]) engine.Handle[Out] {
	loc := engine.CallerLocation(1)
	n := &thenNode[In, Out]{config: config.Token(), selector: selector, location: loc}
	return engine.NewAnchor[Out](e, n, loc)
}
