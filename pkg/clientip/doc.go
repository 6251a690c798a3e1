// Package clientip resolves the originating client address of a request.
//
// Without a trusted proxy only RemoteAddr is used. With Config.TrustProxy
// the configured headers are consulted first, in order:
//
//	res := clientip.New(clientip.Config{TrustProxy: true})
//	r.Use(res.Middleware)
//	...
//	ip := clientip.FromContext(ctx)
//
// The address identifies readers reacting to comments and keys the rate
// limiter.
package clientip
