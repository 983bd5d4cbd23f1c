// Package testing provides test utilities for gdao.
package testing

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/rotexsoft/gdao"
	"github.com/zoobzio/dbml"
)

// TestSchema returns the DBML project used across gdao tests.
// Includes users, posts, orders and products tables.
func TestSchema() *dbml.Project {
	project := dbml.NewProject("test")

	users := dbml.NewTable("users")
	users.AddColumn(dbml.NewColumn("id", "bigint"))
	users.AddColumn(dbml.NewColumn("name", "varchar"))
	users.AddColumn(dbml.NewColumn("email", "varchar"))
	users.AddColumn(dbml.NewColumn("age", "int"))
	users.AddColumn(dbml.NewColumn("active", "boolean"))
	users.AddColumn(dbml.NewColumn("deleted_at", "timestamp"))
	project.AddTable(users)

	posts := dbml.NewTable("posts")
	posts.AddColumn(dbml.NewColumn("id", "bigint"))
	posts.AddColumn(dbml.NewColumn("user_id", "bigint"))
	posts.AddColumn(dbml.NewColumn("title", "varchar"))
	posts.AddColumn(dbml.NewColumn("views", "int"))
	project.AddTable(posts)

	orders := dbml.NewTable("orders")
	orders.AddColumn(dbml.NewColumn("id", "bigint"))
	orders.AddColumn(dbml.NewColumn("user_id", "bigint"))
	orders.AddColumn(dbml.NewColumn("total", "numeric"))
	orders.AddColumn(dbml.NewColumn("status", "varchar"))
	project.AddTable(orders)

	products := dbml.NewTable("products")
	products.AddColumn(dbml.NewColumn("id", "bigint"))
	products.AddColumn(dbml.NewColumn("name", "varchar"))
	products.AddColumn(dbml.NewColumn("price", "numeric"))
	products.AddColumn(dbml.NewColumn("category", "varchar"))
	project.AddTable(products)

	return project
}

// TestCompiler creates a schema-validating Compiler over TestSchema.
func TestCompiler(t *testing.T) *gdao.Compiler {
	t.Helper()

	c, err := gdao.NewFromDBML(TestSchema(), gdao.DefaultConfig())
	if err != nil {
		t.Fatalf("Failed to create test compiler: %v", err)
	}
	return c
}

// AssertSQL compares expected and actual SQL, reporting detailed differences.
func AssertSQL(t *testing.T, expected, actual string) {
	t.Helper()
	if expected != actual {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, actual)
	}
}

// AssertParams checks params against alternating names and values, in order.
func AssertParams(t *testing.T, actual *gdao.Params, expected ...any) {
	t.Helper()
	if len(expected)%2 != 0 {
		t.Fatalf("AssertParams needs name/value pairs, got %d arguments", len(expected))
	}
	names := actual.Names()
	if len(names) != len(expected)/2 {
		t.Errorf("Param count mismatch: expected %d, got %d\nActual: %v",
			len(expected)/2, len(names), actual.Map())
		return
	}
	for i, name := range names {
		wantName, _ := expected[2*i].(string)
		wantValue := expected[2*i+1]
		if name != wantName {
			t.Errorf("Param %d: name = %q, want %q", i, name, wantName)
			continue
		}
		got, _ := actual.Get(name)
		if !reflect.DeepEqual(got, wantValue) {
			t.Errorf("Param %s = %#v, want %#v", name, got, wantValue)
		}
	}
}

// AssertErrorKind checks that err is a validation error of the given kind.
func AssertErrorKind(t *testing.T, err error, kind gdao.ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected %v error but got nil", kind)
	}
	if !errors.Is(err, kind) {
		t.Errorf("Expected %q error, got: %v", kind.Error(), err)
	}
}

// AssertErrorPath checks the key path of a validation error.
func AssertErrorPath(t *testing.T, err error, path ...string) {
	t.Helper()
	var ve *gdao.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("Expected *gdao.ValidationError, got %T: %v", err, err)
	}
	if !reflect.DeepEqual(ve.Path, path) && (len(ve.Path) != 0 || len(path) != 0) {
		t.Errorf("Error path = %v, want %v", ve.Path, path)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertErrorContains checks that error message contains substring.
func AssertErrorContains(t *testing.T, err error, substr string) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error containing %q but got nil", substr)
	}
	if !strings.Contains(err.Error(), substr) {
		t.Errorf("Expected error containing %q, got: %v", substr, err)
	}
}

// AssertPanics verifies that a function panics.
func AssertPanics(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic but function completed normally")
		}
	}()
	fn()
}
