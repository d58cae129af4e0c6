// Package export writes aggregated status data to SQLite for client-side
// querying and renders markdown status reports.
package export

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/sunburst/pkg/layout"
	"github.com/vanderheijden86/sunburst/pkg/model"
	"github.com/vanderheijden86/sunburst/pkg/status"
	"github.com/vanderheijden86/sunburst/pkg/version"

	_ "modernc.org/sqlite"
)

// SQLiteExporter writes aggregated records and their layout to a SQLite
// database.
type SQLiteExporter struct {
	Records []model.SlimRecord
	Layout  *layout.Result
	Config  SQLiteExportConfig

	now func() time.Time
}

// NewSQLiteExporter creates an exporter. The layout may be nil, in which
// case the nodes table is left empty.
func NewSQLiteExporter(records []model.SlimRecord, result *layout.Result) *SQLiteExporter {
	return &SQLiteExporter{
		Records: records,
		Layout:  result,
		Config:  DefaultSQLiteExportConfig(),
		now:     time.Now,
	}
}

// Export writes the database to dbPath, replacing any existing file.
func (e *SQLiteExporter) Export(dbPath string) error {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove existing database: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	dbClosed := false
	defer func() {
		if !dbClosed {
			db.Close()
		}
	}()

	if err := CreateSchema(db); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if err := e.insertRecords(db); err != nil {
		return fmt.Errorf("insert records: %w", err)
	}
	if err := e.insertNodes(db); err != nil {
		return fmt.Errorf("insert nodes: %w", err)
	}
	if err := CreateMaterializedViews(db); err != nil {
		return fmt.Errorf("create materialized views: %w", err)
	}

	meta := e.meta()
	if err := e.insertMeta(db, meta); err != nil {
		return fmt.Errorf("insert meta: %w", err)
	}
	if err := OptimizeDatabase(db, e.Config.PageSize); err != nil {
		return fmt.Errorf("optimize database: %w", err)
	}
	if err := db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	dbClosed = true

	if e.Config.WriteSummaryJSON {
		summary := struct {
			Meta    ExportMeta     `json:"meta"`
			Summary status.Summary `json:"summary"`
		}{meta, status.Summarize(e.Records)}
		if err := writeJSON(summaryPath(dbPath), summary); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
	}
	return nil
}

// summaryPath returns the sidecar JSON path for a database path.
func summaryPath(dbPath string) string {
	return strings.TrimSuffix(dbPath, filepath.Ext(dbPath)) + ".summary.json"
}

func (e *SQLiteExporter) insertRecords(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO records (id, project_name, phase_name, task_name, condition_name,
			condition_status, task_status, phase_status, project_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, r := range e.Records {
		_, err := stmt.Exec(i+1,
			r.ProjectName, r.PhaseName, r.TaskName, r.ConditionName,
			string(r.ConditionStatus), string(r.TaskStatus), string(r.PhaseStatus), string(r.ProjectStatus),
		)
		if err != nil {
			return fmt.Errorf("insert record %d: %w", i, err)
		}
	}
	return tx.Commit()
}

func (e *SQLiteExporter) insertNodes(db *sql.DB) error {
	nodes := Nodes(e.Layout)
	if len(nodes) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO nodes (id, parent_id, name, depth, level, color, value, x0, x1, y0, y1, path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, n := range nodes {
		_, err := stmt.Exec(n.ID, n.ParentID, n.Name, n.Depth, n.Level, n.Color, n.Value, n.X0, n.X1, n.Y0, n.Y1, n.Path)
		if err != nil {
			return fmt.Errorf("insert node %d: %w", n.ID, err)
		}
	}
	return tx.Commit()
}

// Nodes flattens a layout into export rows in paint order. IDs start at 1
// and follow the node index.
func Nodes(result *layout.Result) []ExportNode {
	if result == nil || result.Root == nil {
		return nil
	}
	s := result.Scales()
	out := make([]ExportNode, 0, len(result.Nodes))
	for _, n := range result.Nodes {
		row := ExportNode{
			ID:    n.Index + 1,
			Name:  n.Name(),
			Depth: n.Depth,
			Level: levelName(n.Depth),
			Color: n.Color(),
			Value: n.Value,
			X0:    n.X0,
			X1:    n.X1,
			Y0:    n.Y0,
			Y1:    n.Y1,
			Path:  s.Arc(n).Path(),
		}
		if n.Parent != nil {
			pid := n.Parent.Index + 1
			row.ParentID = &pid
		}
		out = append(out, row)
	}
	return out
}

func (e *SQLiteExporter) meta() ExportMeta {
	sum := status.Summarize(e.Records)
	m := ExportMeta{
		Version:        version.Version,
		GeneratedAt:    e.now().UTC(),
		RecordCount:    len(e.Records),
		ProjectsBehind: sum.ProjectsBehind,
		DataHash:       dataHash(e.Records),
		Title:          e.Config.Title,
	}
	if e.Layout != nil {
		m.NodeCount = len(e.Layout.Nodes)
	}
	return m
}

func (e *SQLiteExporter) insertMeta(db *sql.DB, m ExportMeta) error {
	values := map[string]string{
		"version":         m.Version,
		"generated_at":    m.GeneratedAt.Format(time.RFC3339),
		"record_count":    strconv.Itoa(m.RecordCount),
		"node_count":      strconv.Itoa(m.NodeCount),
		"projects_behind": strconv.Itoa(m.ProjectsBehind),
		"schema_version":  strconv.Itoa(SchemaVersion),
		"data_hash":       m.DataHash,
	}
	if m.Title != "" {
		values["title"] = m.Title
	}
	for key, value := range values {
		if err := InsertMetaValue(db, key, value); err != nil {
			return fmt.Errorf("insert meta %s: %w", key, err)
		}
	}
	return nil
}

// dataHash fingerprints the aggregated records so clients can detect stale
// caches.
func dataHash(records []model.SlimRecord) string {
	data, err := json.Marshal(records)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:8])
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
