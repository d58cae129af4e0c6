package export

import (
	"database/sql"
	"fmt"

	"github.com/vanderheijden86/sunburst/pkg/debug"
)

// SchemaVersion is recorded in export_meta.
const SchemaVersion = 1

// CreateSchema creates all tables and indexes in the database.
func CreateSchema(db *sql.DB) error {
	statements := []struct {
		name string
		sql  string
	}{
		{"records", `
			CREATE TABLE IF NOT EXISTS records (
				id INTEGER PRIMARY KEY,
				project_name TEXT NOT NULL,
				phase_name TEXT NOT NULL,
				task_name TEXT NOT NULL,
				condition_name TEXT NOT NULL,
				condition_status TEXT NOT NULL,
				task_status TEXT NOT NULL,
				phase_status TEXT NOT NULL,
				project_status TEXT NOT NULL
			)`},
		{"nodes", `
			CREATE TABLE IF NOT EXISTS nodes (
				id INTEGER PRIMARY KEY,
				parent_id INTEGER REFERENCES nodes(id),
				name TEXT NOT NULL,
				depth INTEGER NOT NULL,
				level TEXT NOT NULL,
				color TEXT NOT NULL,
				value REAL NOT NULL,
				x0 REAL NOT NULL,
				x1 REAL NOT NULL,
				y0 REAL NOT NULL,
				y1 REAL NOT NULL,
				path TEXT NOT NULL
			)`},
		{"export_meta", `
			CREATE TABLE IF NOT EXISTS export_meta (
				key TEXT PRIMARY KEY,
				value TEXT
			)`},
		{"idx_records_project", `CREATE INDEX IF NOT EXISTS idx_records_project ON records(project_name, phase_name, task_name)`},
		{"idx_nodes_parent", `CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id)`},
		{"idx_nodes_depth", `CREATE INDEX IF NOT EXISTS idx_nodes_depth ON nodes(depth)`},
	}
	for _, s := range statements {
		if _, err := db.Exec(s.sql); err != nil {
			return fmt.Errorf("create %s: %w", s.name, err)
		}
	}
	return nil
}

// CreateMaterializedViews creates denormalized per-project rollups.
// This must be called after all records are inserted.
func CreateMaterializedViews(db *sql.DB) error {
	projectSQL := `
		CREATE TABLE IF NOT EXISTS project_overview_mv AS
		SELECT
			project_name,
			MAX(project_status) AS project_status,
			COUNT(DISTINCT phase_name) AS phase_count,
			COUNT(DISTINCT phase_name || char(0) || task_name) AS task_count,
			COUNT(*) AS condition_count,
			SUM(CASE WHEN condition_status = 'complete' THEN 1 ELSE 0 END) AS complete_count,
			COUNT(DISTINCT CASE WHEN task_status = 'behind' THEN phase_name || char(0) || task_name END) AS tasks_behind
		FROM records
		GROUP BY project_name
	`
	if _, err := db.Exec(projectSQL); err != nil {
		return fmt.Errorf("create project_overview_mv: %w", err)
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_mv_status ON project_overview_mv(project_status)`); err != nil {
		return fmt.Errorf("create mv index: %w", err)
	}
	return nil
}

// InsertMetaValue inserts or replaces a metadata key.
func InsertMetaValue(db *sql.DB, key, value string) error {
	_, err := db.Exec(`INSERT OR REPLACE INTO export_meta (key, value) VALUES (?, ?)`, key, value)
	return err
}

// OptimizeDatabase compacts the file for static hosting. Call this as the
// final step before closing the database.
func OptimizeDatabase(db *sql.DB, pageSize int) error {
	if pageSize <= 0 {
		pageSize = 4096
	}
	optimizations := []string{
		`PRAGMA journal_mode=DELETE`,
		fmt.Sprintf(`PRAGMA page_size=%d`, pageSize),
		`ANALYZE`,
		`PRAGMA optimize`,
	}
	for _, stmt := range optimizations {
		if _, err := db.Exec(stmt); err != nil {
			debug.Log("export: %s failed: %v", stmt, err)
		}
	}
	// VACUUM must be last and outside transaction
	if _, err := db.Exec(`VACUUM`); err != nil {
		return fmt.Errorf("vacuum: %w", err)
	}
	return nil
}
