// Package cache defines the byte cache used for rendered pages and the
// sitemap, with a bounded in-memory LRU implementation. A Redis-backed
// implementation lives in pkg/redis.
//
//	pages := cache.NewMemory(512)
//	html, err := cache.Load(ctx, pages, "ssr:"+slug, 10*time.Minute, render, nil)
//
// Memory evicts the least recently used entry once capacity is reached and
// drops expired entries lazily on read.
package cache
