/*
Package ports defines the driven ports (interfaces) for storing automata.

These interfaces decouple the engine, CLI and servers from the storage
backend, so the same code works with memory, files, Redis or a Loam
document library.

# Key Interfaces

  - AutomatonLoader: read access to named automata.
  - AutomatonStore: read-write access, used by `dfa store` and the HTTP API.

Implementations are checked with RunAutomatonStoreContract and
RunAutomatonLoaderContract.
*/
package ports
