/*
Package ports defines the driven ports (interfaces) for the techseo engine.

These interfaces decouple the core transformations from storage and from the
OAuth bookkeeping needed by the Search Console integration.

# Key Interfaces

  - PostRepository: resolves posts by ID and lists them (e.g. from Loam or Memory).
  - TokenStore: persists the OAuth token and the selected Search Console property.
  - StateStore: keeps short-lived OAuth state values that may be consumed once.
  - DistributedLocker: serializes token refreshes across replicas.
*/
package ports
