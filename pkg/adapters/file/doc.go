// Package file loads machine definitions from descriptor files.
//
// A descriptor file holds one or more documents, as a YAML stream or as JSON.
// Each document names a machine and carries exactly one of the keys nfae, pda
// or dtm. Documents without such a key are read as flat descriptions, the
// kind inferred from transitions, transition_relation or transition_function.
//
// In YAML a null key (~ or null) stands for ε; in JSON the empty key does.
//
//	name: anbn
//	pda:
//	  states: [q0, q1, q2]
//	  start_state: q0
//	  accepting_states: [q2]
//	  input_alphabet: [a, b]
//	  stack_alphabet: [Z, A]
//	  start_stack: Z
//	  transition_relation:
//	    q0:
//	      a: {Z: [q0, AZ], A: [q0, AA]}
//	      b: {A: [q1, ~]}
//	    q1:
//	      b: {A: [q1, ~]}
//	      ~: {Z: [q2, Z]}
package file
