//go:build integration

package integration

import (
	"context"
	"database/sql"
	"slices"
	"testing"

	"github.com/rotexsoft/gdao"
	"github.com/zoobzio/dbml"
)

// filterCase is a description and the user ids it must select from the
// seeded table.
type filterCase struct {
	where gdao.Map
	name  string
	ids   []int64
}

var filterCases = []filterCase{
	{name: "comparison", where: gdao.Leaf("age", gdao.GT, 35), ids: []int64{3, 4}},
	{name: "less than", where: gdao.Leaf("age", gdao.LT, 18), ids: []int64{2}},
	{name: "range", where: gdao.List(gdao.Leaf("age", gdao.GE, 17), gdao.Leaf("age", gdao.LE, 34)), ids: []int64{1, 2}},
	{name: "not equals", where: gdao.Leaf("status", gdao.NE, "active"), ids: []int64{2, 4, 5}},
	{name: "in", where: gdao.Leaf("status", gdao.IN, []string{"trial", "closed"}), ids: []int64{2, 4, 5}},
	{name: "not in scalar", where: gdao.Leaf("id", gdao.NotIn, 1), ids: []int64{2, 3, 4, 5}},
	{name: "like", where: gdao.Leaf("name", gdao.LIKE, "jo%"), ids: []int64{1, 2}},
	{name: "not like", where: gdao.Leaf("name", gdao.NotLike, "%o%"), ids: []int64{3, 4}},
	{name: "is null", where: gdao.Leaf("age", gdao.IsNull), ids: []int64{5}},
	{name: "not null", where: gdao.Leaf("deleted_at", gdao.IsNotNull), ids: []int64{3}},
	{name: "or group", where: gdao.M(
		0, gdao.Leaf("age", gdao.LT, 18),
		"OR", gdao.List(gdao.Leaf("age", gdao.GE, 40), gdao.Leaf("deleted_at", gdao.IsNull)),
	), ids: []int64{2, 4}},
	{name: "nested or", where: gdao.M(
		0, gdao.Leaf("status", gdao.EQ, "active"),
		"OR#trial", gdao.M(0, gdao.Leaf("status", gdao.EQ, "trial"), 1, gdao.Leaf("age", gdao.IsNull)),
	), ids: []int64{1, 3, 5}},
}

// seedRows is shared by every database. Names are lowercase so LIKE
// behaves the same under case-insensitive collations.
const seedRows = `INSERT INTO users (id, name, age, status, deleted_at) VALUES
	(1, 'john', 34, 'active', NULL),
	(2, 'joanna', 17, 'trial', NULL),
	(3, 'mary', 52, 'active', '2024-01-01'),
	(4, 'peter', 40, 'closed', NULL),
	(5, 'zoe', NULL, 'trial', NULL)`

// newCompiler creates a schema-validating compiler for the users table.
func newCompiler(t *testing.T, dialect gdao.Dialect) *gdao.Compiler {
	t.Helper()

	project := dbml.NewProject("test")
	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("name", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("status", "varchar"))
	users.AddColumn(dbml.NewColumn("deleted_at", "timestamp"))
	project.AddTable(users)

	c, err := gdao.NewFromDBML(project, gdao.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create compiler: %v", err)
	}
	return c.WithDialect(dialect)
}

func selectIDs(where string) string {
	return "SELECT id FROM users WHERE " + where + " ORDER BY id"
}

// queryIDs runs a database/sql query returning a single bigint column.
func queryIDs(ctx context.Context, t *testing.T, db *sql.DB, query string, args ...any) []int64 {
	t.Helper()
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		t.Fatalf("Failed to execute query: %v\nSQL: %s", err, query)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			t.Fatalf("Failed to scan row: %v", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("Failed to read rows: %v\nSQL: %s", err, query)
	}
	return ids
}

func assertIDs(t *testing.T, sql string, got, want []int64) {
	t.Helper()
	if !slices.Equal(got, want) {
		t.Errorf("ids = %v, want %v\nSQL: %s", got, want, sql)
	}
}
