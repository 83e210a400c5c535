// Package domain contains the diet prescription model for SNH.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// SQL, net/http, or the filesystem. Infra/adapters map into/from these types through Snapshot.
//
// A Diet is created active, mutated through its restriction and item API, and ended once.
// The model performs no internal locking; callers serialize access to a given Diet.
package domain
