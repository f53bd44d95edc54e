package mcpserver

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// Store wraps the SQLite database the SQL toolset queries. Statements are
// classified the way the lab protocol expects: SELECT and PRAGMA return row
// maps, everything else returns an affected-row count.
type Store struct {
	db   *sql.DB
	path string
}

// OpenStore opens (creating if needed) the SQLite database at path
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Path returns the database file path
func (s *Store) Path() string { return s.path }

// Close closes the underlying database
func (s *Store) Close() error { return s.db.Close() }

// Query executes an arbitrary SQL statement with positional parameters.
// SELECT and PRAGMA statements return []map[string]interface{}; other
// statements return map[string]interface{}{"affected": n}.
func (s *Store) Query(ctx context.Context, query string, params []interface{}) (interface{}, error) {
	upper := strings.ToUpper(strings.TrimSpace(query))
	if strings.HasPrefix(upper, "SELECT") || strings.HasPrefix(upper, "PRAGMA") {
		return s.queryRows(ctx, query, params)
	}

	result, err := s.db.ExecContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"affected": affected}, nil
}

func (s *Store) queryRows(ctx context.Context, query string, params []interface{}) ([]map[string]interface{}, error) {
	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	results := make([]map[string]interface{}, 0)
	for rows.Next() {
		values := make([]interface{}, len(columns))
		scan := make([]interface{}, len(columns))
		for i := range values {
			scan[i] = &values[i]
		}
		if err := rows.Scan(scan...); err != nil {
			return nil, err
		}

		row := make(map[string]interface{}, len(columns))
		for i, col := range columns {
			// The sqlite driver hands TEXT columns back as []byte
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
			} else {
				row[col] = values[i]
			}
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// Tables lists the user tables in the database
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	rows, err := s.queryRows(ctx, "SELECT name FROM sqlite_master WHERE type='table' ORDER BY name", nil)
	if err != nil {
		return nil, err
	}
	tables := make([]string, 0, len(rows))
	for _, row := range rows {
		if name, ok := row["name"].(string); ok {
			tables = append(tables, name)
		}
	}
	return tables, nil
}

// Schema returns the PRAGMA table_info rows for a table
func (s *Store) Schema(ctx context.Context, table string) ([]map[string]interface{}, error) {
	if err := validateIdentifier(table); err != nil {
		return nil, err
	}
	return s.queryRows(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table), nil)
}

// ReadTable returns every row of a table
func (s *Store) ReadTable(ctx context.Context, table string) ([]map[string]interface{}, error) {
	if err := validateIdentifier(table); err != nil {
		return nil, err
	}
	return s.queryRows(ctx, fmt.Sprintf("SELECT * FROM %s", table), nil)
}

// validateIdentifier rejects table names that cannot be interpolated safely.
// PRAGMA and table targets cannot be bound as parameters in SQLite.
func validateIdentifier(name string) error {
	if name == "" {
		return fmt.Errorf("table name is required")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return fmt.Errorf("invalid table name: %s", name)
		}
	}
	return nil
}
