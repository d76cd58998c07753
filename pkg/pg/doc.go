// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool with
// startup retries, goose migrations read from an embedded filesystem, a
// health probe, and helpers that classify driver errors.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, migrations.FS, cfg, log); err != nil {
//	    return err
//	}
//
// Stores translate driver errors into their own sentinels with
// IsNotFoundError and IsDuplicateKeyError so business code never imports pgx.
package pg
