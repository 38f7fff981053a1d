/*
Package domain contains the shared vocabulary of the acceptor engines.

It defines states, symbols, the configurations a search visits, the trace of a
check and the outcome vocabulary every engine reports with. This package is kept
pure and free of external dependencies like I/O or persistence.

# Key Entities

  - State / Symbol: labels drawn from a machine's declared sets. Epsilon marks a
    non-consuming move and is never a member of any alphabet.
  - Configuration: a snapshot of one search branch (state, remaining input or head,
    stack or tape).
  - Trace: the configurations visited on the reported path.
  - Outcome: Accepted, Rejected, MalformedInput or Cancelled, plus the trace.
*/
package domain
