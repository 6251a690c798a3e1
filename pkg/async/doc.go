// Package async provides a bounded fan-out helper.
//
// ForEach runs a function over a slice with a fixed number of goroutines in
// flight, collecting one error per item instead of aborting on the first
// failure:
//
//	errs := async.ForEach(ctx, 4, recipients, func(ctx context.Context, r Recipient) error {
//	    return send(ctx, r)
//	})
//	sent, failed := async.Count(errs)
//
// Cancelling ctx stops new items from starting; running calls observe the
// same ctx.
package async
