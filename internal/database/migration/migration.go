package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// Migrations are declarative and additive only: each step may create tables
// or indexes but must never drop or rewrite existing data. Steps are keyed by
// the schema version they bring the database to and are applied in order from
// the current recorded version up to SchemaVersion.
type migrationStep struct {
	Version int
	Name    string
	SQL     string
}

// SchemaVersion is the version this build of the application requires.
const SchemaVersion = 3

// advisoryLockKey serializes schema upgrades across connections. A process
// opening the database while another is mid-upgrade waits here instead of
// interleaving upgrade statements.
const advisoryLockKey = 0x41524348

var steps = []migrationStep{
	{
		Version: 1,
		Name:    "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id       UUID PRIMARY KEY,
  email    TEXT NOT NULL,
  password TEXT NOT NULL,
  name     TEXT NOT NULL,
  photo    TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users (email);`,
	},
	{
		Version: 2,
		Name:    "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id           UUID   PRIMARY KEY,
  name         TEXT   NOT NULL,
  size         BIGINT NOT NULL CHECK (size >= 0),
  content_type TEXT   NOT NULL,
  storage_path TEXT   NOT NULL UNIQUE,
  favorite     BOOLEAN NOT NULL DEFAULT FALSE,
  folder_id    UUID,
  tag          TEXT   NOT NULL DEFAULT 'general',
  date         DATE   NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_name ON documents (name);
CREATE INDEX IF NOT EXISTS idx_documents_date ON documents (date);
CREATE INDEX IF NOT EXISTS idx_documents_favorite ON documents (favorite);
CREATE INDEX IF NOT EXISTS idx_documents_folder_id ON documents (folder_id);`,
	},
	{
		Version: 3,
		Name:    "create_table_folders",
		SQL: `CREATE TABLE IF NOT EXISTS folders (
  id         UUID PRIMARY KEY,
  name       TEXT NOT NULL,
  created_at DATE NOT NULL
);`,
	},
}

// Apply brings the database schema up to SchemaVersion.
//
// The whole upgrade runs in a single transaction holding a transaction-scoped
// advisory lock, so concurrent processes either wait or see a fully migrated
// schema. Already-applied steps are skipped by version; re-running Apply
// against a current database is a no-op.
func Apply(ctx context.Context, db *sql.DB, loc *time.Location) error {
	start := time.Now()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, advisoryLockKey); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_version (version INT NOT NULL)`); err != nil {
		return fmt.Errorf("ensure schema_version table: %w", err)
	}

	current, err := currentVersion(ctx, tx)
	if err != nil {
		return err
	}

	if current >= SchemaVersion {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already at current version",
			"version":     current,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return tx.Commit()
	}

	for _, step := range steps {
		if step.Version <= current {
			continue
		}

		stepStart := time.Now()
		if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
			logJSON(loc, map[string]any{
				"component":      "database",
				"event":          "db_migration_failed",
				"status":         "error",
				"migration_step": step.Name,
				"error_message":  err.Error(),
				"duration_ms":    time.Since(start).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"version":          step.Version,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM schema_version`); err != nil {
		return fmt.Errorf("reset schema_version: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_version (version) VALUES ($1)`, SchemaVersion); err != nil {
		return fmt.Errorf("record schema_version: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration: %w", err)
	}

	logJSON(loc, map[string]any{
		"component":    "database",
		"event":        "db_migration_success",
		"status":       "success",
		"from_version": current,
		"to_version":   SchemaVersion,
		"duration_ms":  time.Since(start).Milliseconds(),
	})

	return nil
}

func currentVersion(ctx context.Context, tx *sql.Tx) (int, error) {
	var version sql.NullInt64
	err := tx.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	if !version.Valid {
		return 0, nil
	}
	return int(version.Int64), nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
