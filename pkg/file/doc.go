// Package file publishes generated artifacts to a local directory or an S3
// bucket behind one Storage interface.
//
//	store, err := file.New(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	f, err := store.Put(ctx, "sitemap.xml", bytes.NewReader(xml), "application/xml")
//
// Paths are slash separated and relative to the storage root; anything that
// tries to escape it fails with ErrInvalidPath. S3 errors are classified into
// the package sentinels (ErrNotFound, ErrForbidden, ...) so callers
// can match them with errors.Is.
package file
