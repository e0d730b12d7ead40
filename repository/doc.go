// Package repository implements the generic persistence component of the CRM
// store: CRUD and pagination over one entity type with per-call opt-in
// cache-aside semantics.
//
// # Overview
//
// Repository[T] is parameterized by an entity type and constructed with a
// bun database handle, a cache port, and a Handlers[T] descriptor (record
// allocator plus primary-key accessor). Entity-specific repositories (Users,
// Products, Bills, Sells) embed it and add finders that reuse the same
// cache-aside shape with custom predicates.
//
// # Caching Protocol
//
// Every operation takes an optional *cache.Spec. Passing nil makes the
// operation store-only. With a spec:
//
//  1. Reads consult the cache first; a hit deserializes and returns without
//     touching the store.
//  2. A miss falls through to the store, then repopulates the cache.
//  3. Create populates the cache after commit; Update re-reads the committed
//     row (cache bypassed) and repopulates from that fresh value; Delete
//     removes the cached entry after commit.
//
// Cache population always happens strictly after the store write or read it
// reflects. If the commit fails, no cache write is attempted.
//
// # Error Contract
//
// Nothing escapes untyped: missing rows are apperror.NotFound, cache
// transport failures are apperror.CacheUnavailable, payload drift is
// apperror.ShapeMismatch, and every other store failure wraps as
// apperror.PersistenceError after the enclosing transaction rolled back.
//
// # Concurrency
//
// Operations are self-contained request/response cycles with no state held
// across calls. Concurrent updates to the same id race at the store's native
// isolation level; the cache is last populated by whichever update's re-read
// executes last. No locking, retries, or timeouts are added at this layer.
package repository
