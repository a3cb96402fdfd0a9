package implementations

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/api-sage/remittance-wallet/src/internal/logger"
	"github.com/pkg/errors"
)

// migrationLockKey serialises concurrent server starts on the same database.
const migrationLockKey = 727_401

// RunMigrations applies every *.sql file of migrationsDir not yet recorded in
// schema_migrations, in lexical order, each inside its own transaction.
func RunMigrations(ctx context.Context, db *sql.DB, migrationsDir string) error {
	conn, err := db.Conn(ctx)
	if err != nil {
		return errors.Wrap(err, "acquire migration connection")
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, `SELECT pg_advisory_lock($1)`, migrationLockKey); err != nil {
		return errors.Wrap(err, "acquire migration lock")
	}
	defer func() {
		_, _ = conn.ExecContext(context.Background(), `SELECT pg_advisory_unlock($1)`, migrationLockKey)
	}()

	if err := ensureSchemaMigrationsTable(ctx, conn); err != nil {
		return err
	}

	files, err := migrationFiles(migrationsDir)
	if err != nil {
		return err
	}

	applied := 0
	for _, file := range files {
		done, err := isApplied(ctx, conn, file)
		if err != nil {
			return err
		}
		if done {
			continue
		}

		sqlBytes, err := os.ReadFile(filepath.Join(migrationsDir, file))
		if err != nil {
			return errors.Wrapf(err, "read migration %q", file)
		}

		if err := applyMigration(ctx, conn, file, string(sqlBytes)); err != nil {
			return err
		}
		applied++

		logger.Info("migration applied", logger.Fields{"version": file})
	}

	logger.Info("migrations completed", logger.Fields{
		"dir":     migrationsDir,
		"total":   len(files),
		"applied": applied,
	})
	return nil
}

func applyMigration(ctx context.Context, conn *sql.Conn, file, body string) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrapf(err, "begin tx for migration %q", file)
	}

	if _, err := tx.ExecContext(ctx, body); err != nil {
		_ = tx.Rollback()
		return errors.Wrapf(err, "execute migration %q", file)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations(version) VALUES ($1)`, file); err != nil {
		_ = tx.Rollback()
		return errors.Wrapf(err, "record migration %q", file)
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrapf(err, "commit migration %q", file)
	}
	return nil
}

func ensureSchemaMigrationsTable(ctx context.Context, conn *sql.Conn) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

	if _, err := conn.ExecContext(ctx, ddl); err != nil {
		return errors.Wrap(err, "ensure schema_migrations table")
	}

	return nil
}

func migrationFiles(migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return nil, errors.Wrapf(err, "read migrations directory %q", migrationsDir)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".sql") {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

func isApplied(ctx context.Context, conn *sql.Conn, version string) (bool, error) {
	var count int
	if err := conn.QueryRowContext(ctx, `SELECT COUNT(1) FROM schema_migrations WHERE version = $1`, version).Scan(&count); err != nil {
		return false, errors.Wrapf(err, "check migration %q status", version)
	}

	return count > 0, nil
}
