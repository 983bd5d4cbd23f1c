//go:build integration

package integration

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
	_ "modernc.org/sqlite"

	"github.com/rotexsoft/gdao/sqlite"
)

// SQLiteDB wraps a file-backed SQLite database.
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB creates a seeded SQLite database in a temporary directory.
func NewSQLiteDB(ctx context.Context, t *testing.T) *SQLiteDB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "gdao_test.db"))
	if err != nil {
		t.Fatalf("Failed to open SQLite: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close database: %v", err)
		}
	})

	s := &SQLiteDB{db: db}
	s.Exec(ctx, t, `CREATE TABLE users (
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		age INTEGER,
		status TEXT NOT NULL,
		deleted_at TEXT
	)`)
	s.Exec(ctx, t, seedRows)
	return s
}

// Exec executes a SQL statement.
func (s *SQLiteDB) Exec(ctx context.Context, t *testing.T, sql string, args ...any) {
	t.Helper()
	_, err := s.db.ExecContext(ctx, sql, args...)
	if err != nil {
		t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, sql)
	}
}

func TestSQLite_Filters(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteDB(ctx, t)
	c := newCompiler(t, sqlite.New())

	for _, tc := range filterCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := c.CompileClause(tc.where)
			if err != nil {
				t.Fatalf("CompileClause failed: %v", err)
			}
			sql := selectIDs(result.SQL)
			assertIDs(t, sql, queryIDs(ctx, t, s.db, sql, result.Args...), tc.ids)
		})
	}
}

func TestSQLite_Msgpack(t *testing.T) {
	ctx := context.Background()
	s := NewSQLiteDB(ctx, t)
	c := newCompiler(t, sqlite.New())

	data, err := msgpack.Marshal([]any{
		map[string]any{"col": "age", "op": ">", "val": 30},
		map[string]any{"col": "deleted_at", "op": "is-null"},
	})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	result, err := c.CompileMsgpack(data)
	if err != nil {
		t.Fatalf("CompileMsgpack failed: %v", err)
	}
	sql := selectIDs(result.SQL)
	assertIDs(t, sql, queryIDs(ctx, t, s.db, sql, result.Args...), []int64{1, 4})
}
