// Package ratelimiter implements a token bucket limiter with in-memory and
// Redis backed stores, plus an HTTP middleware.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//	bucket, err := ratelimiter.NewBucket(store, cfg)
//	r.With(ratelimiter.Middleware(bucket, byIP, log)).Post("/api/subscribers", h)
//
// Requests are rejected without consuming once the bucket is empty, and
// tokens come back RefillRate at a time every RefillInterval.
package ratelimiter
