/*
Package ports defines the driven ports (interfaces) of the Digits engine.

These interfaces decouple the engine from external implementations, allowing
results to be cached in memory, in Redis, or not at all.

# Key Interfaces

  - ResultCache: stores and retrieves solve/targets results by canonical query key.
*/
package ports
