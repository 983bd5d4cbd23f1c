//go:build integration

package integration

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/microsoft/go-mssqldb"
	tcmssql "github.com/testcontainers/testcontainers-go/modules/mssql"

	"github.com/rotexsoft/gdao/mssql"
)

const mssqlSchema = `CREATE TABLE users (
	id BIGINT PRIMARY KEY,
	name NVARCHAR(64) NOT NULL,
	age INT NULL,
	status NVARCHAR(16) NOT NULL,
	deleted_at DATETIME2 NULL
)`

var sharedMSSQL shared[*sql.DB]

func setupMSSQL(t *testing.T) *sql.DB {
	t.Helper()
	return sharedMSSQL.get(t, startMSSQL)
}

func startMSSQL(ctx context.Context) (*sql.DB, error) {
	container, err := tcmssql.Run(ctx,
		"mcr.microsoft.com/mssql/server:2022-latest",
		tcmssql.WithAcceptEULA(),
		tcmssql.WithPassword(testPassword),
	)
	terminate(container)
	if err != nil {
		return nil, fmt.Errorf("run mssql: %w", err)
	}

	connStr, err := container.ConnectionString(ctx)
	if err != nil {
		return nil, fmt.Errorf("mssql connection string: %w", err)
	}
	db, err := openSQL(ctx, "sqlserver", connStr)
	if err != nil {
		return nil, err
	}
	if err := seed(ctx, execSQL(db), mssqlSchema); err != nil {
		return nil, err
	}
	return db, nil
}

func TestMSSQL_Filters(t *testing.T) {
	ctx := context.Background()
	db := setupMSSQL(t)
	c := newCompiler(t, mssql.New())

	for _, tc := range filterCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := c.CompileClause(tc.where)
			if err != nil {
				t.Fatalf("CompileClause failed: %v", err)
			}
			query := selectIDs(result.SQL)
			assertIDs(t, query, queryIDs(ctx, t, db, query, result.Args...), tc.ids)
		})
	}
}

func TestMSSQL_NamedArgsOutOfOrder(t *testing.T) {
	ctx := context.Background()
	db := setupMSSQL(t)
	c := newCompiler(t, mssql.New())

	result, err := c.CompileJSON([]byte(`{"0":{"col":"age","op":">=","val":17},"1":{"col":"name","op":"like","val":"jo%"}}`))
	if err != nil {
		t.Fatalf("CompileJSON failed: %v", err)
	}

	// sql.Named arguments bind by name, so their order does not matter.
	args := []any{result.Args[1], result.Args[0]}
	query := selectIDs(result.SQL)
	assertIDs(t, query, queryIDs(ctx, t, db, query, args...), []int64{1, 2})
}
