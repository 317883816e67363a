// Package ratelimiter implements token bucket rate limiting with an
// in-memory store.
//
//	store := ratelimiter.NewMemoryStore()
//	limiter, err := ratelimiter.NewTokenBucket(store, ratelimiter.Config{
//		Capacity:       10,
//		RefillRate:     1,
//		RefillInterval: time.Minute,
//	})
//	res, err := limiter.Allow(ctx, clientIP)
//	if !res.Allowed() {
//		// reject, retry after res.RetryAfter()
//	}
//
// Buckets live in process memory; call MemoryStore.Sweep periodically (or
// run MemoryStore.Run in an errgroup) to drop idle keys.
package ratelimiter
