package core

// Poll is the protocol return of AnchorInner.PollUpdated: whether a node's
// output changed since it was last polled, is unchanged, or cannot be
// determined yet because one of its own requests is still Pending.
type Poll int

const (
	// PollPending means at least one request this poll made returned
	// Pending; the engine should re-enqueue this node and retry later.
	PollPending Poll = iota
	// PollUpdated means the node's output has changed since the last
	// stabilization generation in which it was polled.
	PollUpdated
	// PollUnchanged means the node's output is unchanged.
	PollUnchanged
)

func (p Poll) String() string {
	switch p {
	case PollPending:
		return "Pending"
	case PollUpdated:
		return "Updated"
	case PollUnchanged:
		return "Unchanged"
	default:
		return "Poll(?)"
	}
}

// RecalcState is a node's membership state with respect to the recalc
// queue: Needed (known stale, not queued), Pending (currently queued), or
// Ready (clean as of the current or a prior stabilization).
type RecalcState int

const (
	// RecalcNeeded marks a node known to be stale but not yet queued.
	RecalcNeeded RecalcState = iota
	// RecalcPending marks a node currently sitting in the recalc queue.
	RecalcPending
	// RecalcReady marks a node that finished polling clean.
	RecalcReady
)

func (s RecalcState) String() string {
	switch s {
	case RecalcNeeded:
		return "Needed"
	case RecalcPending:
		return "Pending"
	case RecalcReady:
		return "Ready"
	default:
		return "RecalcState(?)"
	}
}

// ObservationState classifies why (if at all) a node must be kept
// up-to-date: Observed (user asked for it directly), Necessary (not
// observed but reachable from an observed node via recorded
// necessary-child edges), or Unnecessary (neither).
type ObservationState int

const (
	// Unnecessary means the node is recomputed only on demand.
	Unnecessary ObservationState = iota
	// Necessary means the node is reachable from an observed node.
	Necessary
	// Observed means the node was explicitly marked for recomputation
	// on every stabilize.
	Observed
)

func (s ObservationState) String() string {
	switch s {
	case Unnecessary:
		return "Unnecessary"
	case Necessary:
		return "Necessary"
	case Observed:
		return "Observed"
	default:
		return "ObservationState(?)"
	}
}
