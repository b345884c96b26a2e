package engine

import "github.com/sbl8/increng/core"

// updateContext is the concrete core.UpdateContext a node sees during its
// PollUpdated call, bound to the engine and the node currently being
// polled. requestedOK accumulates the children that returned
// PollUpdated/PollUnchanged this poll, both for ctx.Get during the same
// call and, copied onto the node afterward, for a later Output call.
type updateContext struct {
	eng  *Engine
	self *nodeSlot

	sawPending  bool
	requestedOK []*nodeSlot
}

func (c *updateContext) selfNeedsUpkeep() bool {
	return c.eng.observationState(c.self) != core.Unnecessary
}

func (c *updateContext) Request(childToken core.Token, necessary bool) core.Poll {
	child, ok := c.eng.arena.resolve(childToken)
	if !ok {
		c.eng.violateToken(childToken, "request for a node that is not currently live")
	}
	if child.height >= c.self.height {
		ensureHeightIncreases(c.eng, child, c.self)
	}
	addCleanParent(child, c.self)
	if necessary && c.selfNeedsUpkeep() {
		addNecessaryChild(c.self, child)
	}
	if child.recalcState != core.RecalcReady {
		c.eng.enqueue(child)
		c.sawPending = true
		return core.PollPending
	}
	c.requestedOK = append(c.requestedOK, child)
	if child.lastUpdate > c.self.lastReady {
		return core.PollUpdated
	}
	return core.PollUnchanged
}

func (c *updateContext) Unrequest(childToken core.Token) {
	child, ok := c.eng.arena.resolve(childToken)
	if !ok {
		return
	}
	removeNecessaryChild(c.self, child)
	c.eng.propagateUnnecessary(child)
}

func (c *updateContext) Get(childToken core.Token) any {
	for _, n := range c.requestedOK {
		if n.token == childToken {
			return n.inner.Output(&outputContext{eng: c.eng, self: n})
		}
	}
	c.eng.violateToken(childToken, "get called for a node not successfully requested this poll")
	panic("unreachable")
}

func (c *updateContext) DirtyHandle() core.DirtyHandle {
	return &dirtyHandle{eng: c.eng, token: c.self.token}
}

// outputContext is the concrete core.OutputContext a node sees during its
// Output call, restricted to the children it successfully requested
// during its most recently completed poll.
type outputContext struct {
	eng  *Engine
	self *nodeSlot
}

func (c *outputContext) Get(childToken core.Token) any {
	for _, n := range c.self.lastRequested {
		if n.token == childToken {
			return n.inner.Output(&outputContext{eng: c.eng, self: n})
		}
	}
	c.eng.violateToken(childToken, "get called for a node not requested in the last poll")
	panic("unreachable")
}

// dirtyHandle is the core.DirtyHandle returned by UpdateContext.DirtyHandle,
// bound to one node's token so it can be used well after the poll that
// created it returns. Most commonly stashed inside a Variable so its
// setter can mark it dirty from outside any stabilization.
type dirtyHandle struct {
	eng   *Engine
	token core.Token
}

func (d *dirtyHandle) MarkDirty() {
	d.eng.dirtyMarks = append(d.eng.dirtyMarks, d.token)
}
