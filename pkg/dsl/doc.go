/*
Package dsl provides a Go DSL for building machine definitions in code.

It is the programmatic counterpart of the YAML and JSON descriptors: a fluent,
type-checked builder useful for tests, generated machines and embedding.

Example usage:

	b := dsl.New()

	b.NFAE("ends-ab").
		States("s0", "s1", "s2").
		Start("s0").
		Final("s2").
		Alphabet("a", "b").
		On("s0", "a", "s0", "s1").
		On("s0", "b", "s0").
		On("s1", "b", "s2")

	b.PDA("anbn").
		States("q0", "q1", "q2").
		Start("q0").
		Final("q2").
		Input("a", "b").
		Stack("Z", "A").
		StartStack("Z").
		On("q0", "a", "Z", "q0", "AZ").
		On("q0", "a", "A", "q0", "AA").
		On("q0", "b", "A", "q1", "").
		On("q1", "b", "A", "q1", "").
		On("q1", dsl.Epsilon, "Z", "q2", "Z")

	loader, err := b.Build()
	// ... pass loader to acceptor.New("", acceptor.WithLoader(loader))
*/
package dsl
