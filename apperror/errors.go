package apperror

import (
	"errors"
	"fmt"
)

// Kind identifies which member of the closed error set an Error belongs to.
// Every error that crosses the persistence boundary carries exactly one Kind;
// nothing escapes untyped.
type Kind uint8

const (
	// KindUnknown marks errors that did not originate from this package.
	KindUnknown Kind = iota

	// KindNotFound means the requested row does not exist. Non-retryable.
	KindNotFound

	// KindCacheUnavailable means the cache transport failed. The operation
	// that observed it is aborted; callers decide whether to retry.
	KindCacheUnavailable

	// KindPersistence covers any other store-side failure (constraint
	// violation, connection failure). Always follows a rollback.
	KindPersistence

	// KindShapeMismatch means a cached payload no longer matches the target
	// record's fields, i.e. cache/store schema drift.
	KindShapeMismatch

	// KindOperation is the service-layer wrapper for failures that reach it
	// without one of the kinds above.
	KindOperation
)

// String returns the canonical name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindCacheUnavailable:
		return "cache_unavailable"
	case KindPersistence:
		return "persistence"
	case KindShapeMismatch:
		return "shape_mismatch"
	case KindOperation:
		return "operation"
	default:
		return "unknown"
	}
}

// Error is the single error type used across the store. The Kind discriminates
// the closed set; Err holds the underlying cause when there is one.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Kind.String() + ": " + e.Msg + ": " + e.Err.Error()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Unwrap exposes the underlying cause to errors.Is/errors.As chains.
func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality so errors.Is(err, &Error{Kind: KindNotFound})
// style comparisons work without inspecting messages.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// NotFound builds a KindNotFound error describing the missing row or predicate.
func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Msg: fmt.Sprintf(format, args...)}
}

// CacheUnavailable wraps a cache transport failure for the given key.
func CacheUnavailable(cause error, key string) *Error {
	return &Error{Kind: KindCacheUnavailable, Msg: "cache operation failed for key " + key, Err: cause}
}

// Persistence wraps a store-side failure. The caller must have rolled back
// any enclosing transaction before raising it.
func Persistence(cause error, msg string) *Error {
	return &Error{Kind: KindPersistence, Msg: msg, Err: cause}
}

// ShapeMismatch wraps a deserialization failure caused by a payload whose
// keys do not correspond to the target record's fields.
func ShapeMismatch(cause error, msg string) *Error {
	return &Error{Kind: KindShapeMismatch, Msg: msg, Err: cause}
}

// Operation wraps an untyped failure at the service boundary.
func Operation(cause error, msg string) *Error {
	return &Error{Kind: KindOperation, Msg: msg, Err: cause}
}

// KindOf extracts the Kind carried by err, or KindUnknown if err did not
// originate here.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsTyped reports whether err already belongs to the closed error set and
// should pass through wrapping layers unchanged.
func IsTyped(err error) bool {
	return KindOf(err) != KindUnknown
}

// IsNotFound reports whether err is a KindNotFound error.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsCacheUnavailable reports whether err is a KindCacheUnavailable error.
func IsCacheUnavailable(err error) bool {
	return KindOf(err) == KindCacheUnavailable
}

// IsShapeMismatch reports whether err is a KindShapeMismatch error.
func IsShapeMismatch(err error) bool {
	return KindOf(err) == KindShapeMismatch
}
