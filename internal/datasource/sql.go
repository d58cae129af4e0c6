package datasource

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/vanderheijden86/sunburst/pkg/model"
)

// ErrInvalidTable is returned when a table name is not a plain identifier.
var ErrInvalidTable = errors.New("invalid table name")

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// QueryRecords selects every record from table. Columns the table lacks are
// left empty and NULL values read as the empty string.
func QueryRecords(ctx context.Context, db *sql.DB, table string) ([]model.Record, error) {
	if !identifier.MatchString(table) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTable, table)
	}

	present, err := tableColumns(ctx, db, table)
	if err != nil {
		return nil, err
	}

	var cols []string
	var idx []int
	for i, c := range model.RecordColumns {
		if present[c] {
			cols = append(cols, c)
			idx = append(idx, i)
		}
	}
	if !present["project_name"] {
		return nil, fmt.Errorf("table %s: %w: missing column project_name", table, model.ErrMalformedRecord)
	}

	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), table)
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	records := []model.Record{}
	values := make([]sql.NullString, len(cols))
	dest := make([]any, len(cols))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		var rec model.Record
		fields := rec.Fields()
		for i, v := range values {
			if v.Valid {
				*fields[idx[i]] = v.String
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating %s: %w", table, err)
	}
	return records, nil
}

// tableColumns returns the lowercased column names of table.
func tableColumns(ctx context.Context, db *sql.DB, table string) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s WHERE 1=0", table))
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	defer rows.Close()
	names, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("inspect %s: %w", table, err)
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[strings.ToLower(n)] = true
	}
	return out, nil
}
