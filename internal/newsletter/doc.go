// Package newsletter fans an issue out to every active subscriber, each
// email carrying its own signed unsubscribe link in the footer and in the
// List-Unsubscribe header.
package newsletter
