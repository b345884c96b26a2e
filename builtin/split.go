package builtin

import "github.com/sbl8/increng/engine"

// Pair and Triple back Split2/Split3: pure sugar over RefMap for pulling
// a struct's fields back out into independent handles, a pattern the
// distilled built-in table omits but the original design's expert/ext.rs
// layer provides as split2/split3.
type Pair[A, B any] struct {
	First  A
	Second B
}

type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Split2 projects a Pair-valued node into its two fields.
func Split2[A, B any](e *engine.Engine, input engine.Handle[Pair[A, B]]) (engine.Handle[A], engine.Handle[B]) {
	a := RefMap(e, input, func(p Pair[A, B]) A { return p.First })
	b := RefMap(e, input, func(p Pair[A, B]) B { return p.Second })
	return a, b
}

// Split3 projects a Triple-valued node into its three fields.
func Split3[A, B, C any](e *engine.Engine, input engine.Handle[Triple[A, B, C]]) (engine.Handle[A], engine.Handle[B], engine.Handle[C]) {
	a := RefMap(e, input, func(t Triple[A, B, C]) A { return t.First })
	b := RefMap(e, input, func(t Triple[A, B, C]) B { return t.Second })
	c := RefMap(e, input, func(t Triple[A, B, C]) C { return t.Third })
	return a, b, c
}
