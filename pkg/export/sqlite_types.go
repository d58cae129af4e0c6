package export

import (
	"time"

	"github.com/vanderheijden86/sunburst/pkg/model"
)

// ExportNode is one laid-out arc as stored in the nodes table.
type ExportNode struct {
	ID       int     `json:"id"`
	ParentID *int    `json:"parent_id,omitempty"`
	Name     string  `json:"name"`
	Depth    int     `json:"depth"`
	Level    string  `json:"level"`
	Color    string  `json:"color"`
	Value    float64 `json:"value"`
	X0       float64 `json:"x0"`
	X1       float64 `json:"x1"`
	Y0       float64 `json:"y0"`
	Y1       float64 `json:"y1"`
	Path     string  `json:"path"`
}

// ExportMeta contains metadata about the export.
type ExportMeta struct {
	Version        string    `json:"version"`
	GeneratedAt    time.Time `json:"generated_at"`
	RecordCount    int       `json:"record_count"`
	NodeCount      int       `json:"node_count"`
	ProjectsBehind int       `json:"projects_behind"`
	DataHash       string    `json:"data_hash,omitempty"`
	Title          string    `json:"title,omitempty"`
}

// SQLiteExportConfig configures the SQLite export process.
type SQLiteExportConfig struct {
	// Title is stored in the export metadata.
	Title string

	// PageSize is the SQLite page size set before the final VACUUM.
	PageSize int

	// WriteSummaryJSON also writes <name>.summary.json next to the database.
	WriteSummaryJSON bool
}

// DefaultSQLiteExportConfig returns sensible defaults.
func DefaultSQLiteExportConfig() SQLiteExportConfig {
	return SQLiteExportConfig{
		PageSize:         4096,
		WriteSummaryJSON: true,
	}
}

// levelName names the hierarchy level at depth.
func levelName(depth int) string {
	return model.Level(depth).String()
}
