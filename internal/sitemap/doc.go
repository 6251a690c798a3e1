// Package sitemap builds sitemap.xml from a set of static pages and every
// published blog post. It serves the document over HTTP from cache and can
// publish it to file storage for static hosting.
package sitemap
