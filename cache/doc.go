// Package cache defines the look-aside cache port used by the persistence
// layer, plus the key builder and backend constructors.
//
// # Overview
//
// The package exports:
//
//   - Port: a minimal get/set-with-ttl/delete contract over a key-value store
//   - Spec: the optional per-call key+TTL pair that opts an operation into
//     caching
//   - Key: a deterministic key builder joining segments with "::"
//
// Two backends ship with the module: an in-process cache built on sturdyc
// (NewMemory) and a Redis adapter (NewRedis). Both surface transport
// failures as apperror.CacheUnavailable and report misses as a boolean, not
// an error.
//
// # Basic Usage
//
//	port, err := cache.NewMemory(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	spec := cache.NewSpec(5*time.Minute, "product", productID)
//	record, err := repo.FindByID(ctx, productID, spec)
//
// Passing a nil *Spec disables caching for that call; the operation goes
// straight to the backing store.
//
// # Failure Policy
//
// Cache failures propagate. A read that cannot reach the cache aborts rather
// than silently degrading to store-only reads; the error is typed so callers
// that want to degrade can detect it with apperror.IsCacheUnavailable.
package cache
