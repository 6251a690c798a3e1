// Package web exposes the service over HTTP with a chi router.
//
// Routes:
//
//	GET  /unsubscribe/{token}                 confirmation page
//	POST /unsubscribe/{token}                 unsubscribe, result page
//	POST /api/unsubscribe/{token}             unsubscribe, JSON
//	POST /api/subscribers                     newsletter sign-up
//	POST /api/admin/newsletters               send an issue (basic auth)
//	GET  /api/posts/{postID}/comments         approved comment threads
//	POST /api/posts/{postID}/comments         submit a comment
//	POST /api/comments/{commentID}/reactions  like or dislike
//	GET  /ssr/blog/{slug}                     crawler page for a post
//	GET  /sitemap.xml
//	GET  /healthz, /readyz
//
// Public POST routes share a per client address rate limit when a bucket is
// configured.
package web
