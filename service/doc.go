// Package service is the orchestration layer over the repositories: pure
// delegation plus structured logging and uniform error wrapping. It holds no
// state beyond the injected store and logger.
//
// Typed errors from the persistence layer (NotFound, CacheUnavailable,
// PersistenceError, ShapeMismatch) pass through unchanged; anything else is
// wrapped as an operation error. Nothing is ever swallowed: every failure is
// logged and re-raised.
//
// Per-entity services (Users, Products, Bills, Sells) embed the generic
// Service and add logged pass-throughs for the entity-specific finders.
package service
