// Package botdetect tells crawlers and link unfurlers apart from browsers
// by matching lowercase keywords in the User-Agent header.
//
// The blog renderer uses it to decide between serving prerendered HTML
// (bots) and redirecting to the single page app (humans):
//
//	if botdetect.IsBot(r.UserAgent()) {
//	    // render server side
//	}
//
// New accepts extra keywords for crawlers the built-in set misses.
package botdetect
