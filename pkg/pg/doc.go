// Package pg bootstraps PostgreSQL access with pgx/v5: a retrying pool
// constructor, goose migrations read from an fs.FS, a readiness probe, and
// helpers that classify pgx errors.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, db.Migrations, db.MigrationsDir, cfg, log); err != nil {
//	    return err
//	}
//
// The pool is created once at process start and handed to the stores that
// need it; nothing in this package keeps a global handle.
package pg
