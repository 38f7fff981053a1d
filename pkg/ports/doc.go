/*
Package ports defines the driven ports (interfaces) of the acceptor engine.

These interfaces decouple the engine from where machine descriptions come from
and where check results are kept.

# Key Interfaces

  - MachineLoader: Provides machine definitions (e.g., from a descriptor file or memory).
  - ResultStore: Persists the history of checks (e.g., in memory or Redis).
*/
package ports
