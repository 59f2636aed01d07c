package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	migrate "github.com/rubenv/sql-migrate"
)

// OpenSQL opens a plain database/sql handle on the lib/pq driver for schema
// migrations. The application itself talks to postgres through gorm.
func OpenSQL(opts Options) (*sql.DB, error) {
	db, err := sql.Open("postgres", opts.DSN())
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}
	return db, nil
}

// Migrate applies every pending migration in dir, or rolls back the most
// recent one when down is set. It returns how many migrations ran.
func Migrate(db *sql.DB, dir string, down bool) (int, error) {
	migrations := &migrate.FileMigrationSource{
		Dir: dir,
	}

	if down {
		return migrate.ExecMax(db, "postgres", migrations, migrate.Down, 1)
	}
	return migrate.Exec(db, "postgres", migrations, migrate.Up)
}
