// Package increng implements an incremental computation engine: a library
// that manages a directed acyclic graph of computation nodes whose outputs
// are recomputed only when their transitive inputs change.
//
// Consumers build a graph once out of a small set of node kinds, mark a
// handful of output nodes observed, then repeatedly set a small set of
// input variables and call Get on the outputs. The engine guarantees every
// Get returns an up-to-date value while performing the minimum amount of
// recomputation consistent with its staleness model.
//
// Stabilization runs synchronously and single-threaded: nodes are polled
// in non-decreasing height order, a node returning Pending is re-enqueued
// and retried, and a node returning Updated propagates a dirty wave to its
// clean parents. There is no multi-threaded execution, no distribution,
// and no persistence of graph state across process restarts.
//
// Key components:
//
//   - core: the polling protocol (AnchorInner, UpdateContext, OutputContext)
//     every node kind and the engine agree on
//   - engine: the node arena with free list, the height-bucketed recalc
//     queue, graph bookkeeping (clean-parent / necessary-child edges,
//     height propagation), and the scheduler that drives stabilization
//   - builtin: the node kinds themselves (constant, variable, map, refmap,
//     cutoff, then, map-mut, fold) as external implementations of
//     core.AnchorInner
//
// Basic usage:
//
//	eng := engine.New()
//	name, setName := builtin.Variable(eng, "Bob")
//	greeting := builtin.Map1(eng, name, func(n string) string {
//		return "Hello, " + n + "!"
//	})
//	eng.MarkObserved(greeting.Token())
//	fmt.Println(engine.Get(eng, greeting)) // "Hello, Bob!"
//	setName.Set("Robo")
//	fmt.Println(engine.Get(eng, greeting)) // "Hello, Robo!"
package increng
