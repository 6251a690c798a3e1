// Package blog reads published posts and renders crawler-friendly pages
// for them.
//
// The client-side app cannot be indexed by bots that do not run JavaScript,
// so Renderer answers crawler requests with a complete HTML document (meta
// tags, Open Graph, JSON-LD BlogPosting) and redirects everyone else to the
// app's own post URL. Rendered pages are cached under "ssr:<slug>".
package blog
