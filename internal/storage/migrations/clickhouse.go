package migrations

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// ClickhouseDB is the subset of driver.Conn used to migrate.
type ClickhouseDB interface {
	Exec(ctx context.Context, query string, args ...any) error
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
}

const clickhouseLedgerDDL = `CREATE TABLE IF NOT EXISTS schema_migrations (
    name        String,
    applied_at  DateTime64(3)
) ENGINE = MergeTree()
ORDER BY name`

// RunClickhouseMigrations applies the embedded ClickHouse migrations that
// are not yet recorded in schema_migrations. The driver does not run
// multiple statements per Exec, so each statement is sent on its own.
func RunClickhouseMigrations(ctx context.Context, db ClickhouseDB) ([]string, error) {
	migrations, err := Load(ClickhouseFS, "clickhouse")
	if err != nil {
		return nil, err
	}
	if err := db.Exec(ctx, clickhouseLedgerDDL); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}
	return run(ctx, clickhouseLedger{db: db, now: time.Now}, migrations)
}

type clickhouseLedger struct {
	db  ClickhouseDB
	now func() time.Time
}

func (l clickhouseLedger) applied(ctx context.Context) (map[string]bool, error) {
	rows, err := l.db.Query(ctx, `SELECT name FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	done := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		done[name] = true
	}
	return done, rows.Err()
}

// apply is not atomic: ClickHouse has no DDL transactions, so a failed
// migration is retried from its first statement on the next run.
func (l clickhouseLedger) apply(ctx context.Context, m Migration) error {
	for _, stmt := range m.Statements {
		if err := l.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	if err := l.db.Exec(ctx, `INSERT INTO schema_migrations (name, applied_at) VALUES (?, ?)`, m.Name, l.now().UTC()); err != nil {
		return fmt.Errorf("record migration: %w", err)
	}
	return nil
}
