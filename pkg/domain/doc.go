/*
Package domain contains the core domain models of the Digits solver.

It defines the search node (State), the closed set of arithmetic operations and the
cacheable outcome of a query (Result). This package is kept pure and free of external
dependencies like I/O or persistence.

# Key Entities

  - State: an immutable snapshot of the remaining operands plus the operations applied to reach it.
  - Operation: one of Plus, Minus, Times or Divide.
  - Result: the answer to a solve or targets query, as returned by the Engine and stored in caches.
*/
package domain
