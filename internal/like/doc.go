// Package like records anonymous post likes. A reader is identified by
// their client address only, so each address holds at most one like per
// post and liking again withdraws it.
package like
