package db

import (
	"context"
	"fmt"
)

// sqliteSchema matches the table layout of existing pug_breeders.db files.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS breeders (
    id               INTEGER PRIMARY KEY AUTOINCREMENT,
    name             TEXT NOT NULL CHECK (name <> ''),
    location         TEXT,
    email            TEXT,
    phone            TEXT,
    website          TEXT,
    experience_years INTEGER,
    description      TEXT,
    created_at       DATETIME DEFAULT CURRENT_TIMESTAMP
);
`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS breeders (
    id               BIGINT GENERATED BY DEFAULT AS IDENTITY PRIMARY KEY,
    name             TEXT NOT NULL CHECK (name <> ''),
    location         TEXT,
    email            TEXT,
    phone            TEXT,
    website          TEXT,
    experience_years BIGINT,
    description      TEXT,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// migration is applied after the base schema on every start. Each one must
// be idempotent. Append new migrations at the end.
type migration struct {
	name  string
	apply func(ctx context.Context, db *DB) error
}

var migrations = []migration{
	{"add photo columns", func(ctx context.Context, db *DB) error {
		if err := addColumn(ctx, db, "breeders", "photo", map[Dialect]string{
			DialectSQLite:   "BLOB",
			DialectPostgres: "BYTEA",
		}); err != nil {
			return err
		}
		return addColumn(ctx, db, "breeders", "photo_mime", map[Dialect]string{
			DialectSQLite:   "TEXT",
			DialectPostgres: "TEXT",
		})
	}},
	{"index breeders by name", func(ctx context.Context, db *DB) error {
		_, err := db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS idx_breeders_name ON breeders(name)`)
		return err
	}},
}

// EnsureSchema creates the breeders table if it doesn't exist and runs all
// migrations.
func EnsureSchema(db *DB) error {
	ctx := context.Background()

	schema := sqliteSchema
	if db.Dialect == DialectPostgres {
		schema = postgresSchema
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}

	for i, m := range migrations {
		if err := m.apply(ctx, db); err != nil {
			return fmt.Errorf("running migration %d (%s): %w", i+1, m.name, err)
		}
	}

	return nil
}

// addColumn adds a column unless it is already there. SQLite has no
// ADD COLUMN IF NOT EXISTS, so it consults pragma_table_info instead.
func addColumn(ctx context.Context, db *DB, table, column string, types map[Dialect]string) error {
	typ := types[db.Dialect]

	if db.Dialect == DialectPostgres {
		_, err := db.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s %s`, table, column, typ))
		return err
	}

	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column,
	).Scan(&n)
	if err != nil {
		return fmt.Errorf("inspecting %s.%s: %w", table, column, err)
	}
	if n > 0 {
		return nil
	}

	_, err = db.ExecContext(ctx, fmt.Sprintf(`ALTER TABLE %s ADD COLUMN %s %s`, table, column, typ))
	return err
}
