// Package datasource loads flat status records from files, SQL databases and
// HTTP endpoints.
package datasource

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/vanderheijden86/sunburst/pkg/config"
)

// Kind identifies the type of data source
type Kind string

const (
	// KindJSON is a file holding a JSON array of records
	KindJSON Kind = "json"
	// KindJSONL is a file holding one JSON record per line
	KindJSONL Kind = "jsonl"
	// KindSQLite is a SQLite database file
	KindSQLite Kind = "sqlite"
	// KindPostgres is a PostgreSQL connection string
	KindPostgres Kind = "postgres"
	// KindHTTP is an HTTP(S) endpoint returning a JSON array
	KindHTTP Kind = "http"
)

// ErrUnknownKind is returned for unsupported source kinds.
var ErrUnknownKind = errors.New("unknown source kind")

// Source describes where records are loaded from.
type Source struct {
	Kind     Kind   `json:"kind"`
	Location string `json:"location"`
	// Table is the SQL table records are selected from.
	Table string `json:"table,omitempty"`
	// Name is the portfolio name sent to HTTP sources as the "name" query
	// parameter.
	Name string `json:"name,omitempty"`
	// Token is sent to HTTP sources in the x-auth-token header.
	Token string `json:"-"`
}

// String returns a human-readable description of the source
func (s Source) String() string {
	loc := s.Location
	if s.Kind == KindPostgres || s.Kind == KindHTTP {
		loc = redact(loc)
	}
	if s.Table != "" && (s.Kind == KindSQLite || s.Kind == KindPostgres) {
		return fmt.Sprintf("%s %s (table %s)", s.Kind, loc, s.Table)
	}
	return fmt.Sprintf("%s %s", s.Kind, loc)
}

// Local reports whether the source is a file on disk that can be watched.
func (s Source) Local() bool {
	switch s.Kind {
	case KindJSON, KindJSONL, KindSQLite:
		return true
	}
	return false
}

// Detect infers the source kind from a location.
func Detect(location string) Kind {
	lower := strings.ToLower(strings.TrimSpace(location))
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return KindPostgres
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		return KindHTTP
	}
	switch filepath.Ext(lower) {
	case ".db", ".sqlite", ".sqlite3":
		return KindSQLite
	case ".jsonl", ".ndjson":
		return KindJSONL
	}
	return KindJSON
}

// New returns a source for location, detecting its kind.
func New(location string) Source {
	return Source{Kind: Detect(location), Location: location, Table: config.DefaultTable}
}

// FromConfig builds a source from configuration. An explicit kind wins over
// detection.
func FromConfig(c config.Source) Source {
	s := New(c.Location)
	if c.Kind != "" {
		s.Kind = Kind(strings.ToLower(c.Kind))
	}
	if c.Table != "" {
		s.Table = c.Table
	}
	s.Name = c.Name
	s.Token = c.Token
	return s
}

func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	return u.Redacted()
}
