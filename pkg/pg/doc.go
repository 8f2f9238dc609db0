// Package pg bootstraps the PostgreSQL layer: a pgx/v5 connection pool
// with startup retries, goose schema migrations, a health check, and
// helpers for the SQLSTATE checks stores care about.
//
//	var cfg pg.Config
//	config.MustLoad(&cfg)
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, log); err != nil {
//		return err
//	}
package pg
