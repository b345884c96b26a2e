package engine

import "github.com/sbl8/increng/core"

// recalcQueue is the height-bucketed priority queue driving stabilization:
// one doubly-linked bucket per possible height, a running [minHeight,
// maxHeightSeen] window so pop-min doesn't rescan empty buckets from
// zero every time, and O(1) push, pop-min, and arbitrary remove.
//
// A node's prev/next fields are shared with the arena's free list; a
// node is in at most one of the two lists at any moment, so there is no
// conflict, only reuse.
type recalcQueue struct {
	maxHeight     int
	buckets       []*nodeSlot
	minHeight     int
	maxHeightSeen int
	size          int
}

func newRecalcQueue(maxHeight int) *recalcQueue {
	return &recalcQueue{
		maxHeight: maxHeight,
		buckets:   make([]*nodeSlot, maxHeight),
		minHeight: maxHeight,
	}
}

func (q *recalcQueue) push(eng *Engine, n *nodeSlot, height int) {
	if n.recalcState == core.RecalcPending {
		return
	}
	if height < 0 || height >= q.maxHeight {
		eng.violate(n, "height %d exceeds engine max height %d", height, q.maxHeight)
	}
	n.recalcState = core.RecalcPending
	n.bucketHeight = height
	n.prev = nil
	n.next = q.buckets[height]
	if n.next != nil {
		n.next.prev = n
	}
	q.buckets[height] = n
	q.size++
	if height < q.minHeight {
		q.minHeight = height
	}
	if height > q.maxHeightSeen {
		q.maxHeightSeen = height
	}
}

// popMin removes and returns the lowest-height queued node, along with
// the height of the bucket it was popped from (which may differ from the
// node's current height if that height rose after it was enqueued).
func (q *recalcQueue) popMin() (n *nodeSlot, bucketHeight int, ok bool) {
	for q.minHeight <= q.maxHeightSeen {
		head := q.buckets[q.minHeight]
		if head == nil {
			q.minHeight++
			continue
		}
		q.buckets[q.minHeight] = head.next
		if head.next != nil {
			head.next.prev = nil
		}
		head.next = nil
		head.prev = nil
		q.size--
		bucketHeight = q.minHeight
		head.recalcState = core.RecalcReady
		return head, bucketHeight, true
	}
	q.minHeight = q.maxHeight
	q.maxHeightSeen = 0
	return nil, 0, false
}

// remove unlinks n from its current bucket if it is queued; a no-op
// otherwise. Used when a Pending node is detached before ever being
// polled.
func (q *recalcQueue) remove(n *nodeSlot) {
	if n.recalcState != core.RecalcPending {
		return
	}
	h := n.bucketHeight
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		q.buckets[h] = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}
	n.prev = nil
	n.next = nil
	q.size--
}

func (q *recalcQueue) empty() bool { return q.size == 0 }
