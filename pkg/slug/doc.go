// Package slug checks URL path segments naming blog posts, so malformed
// values are rejected before they reach a cache key or a query.
//
//	slug.Valid("zero-trust") // true
//	slug.Valid("../etc")     // false
package slug
