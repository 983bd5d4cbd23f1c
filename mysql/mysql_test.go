package mysql

import (
	"errors"
	"reflect"
	"testing"

	"github.com/rotexsoft/gdao"
	"github.com/rotexsoft/gdao/internal/render"
)

func TestPlaceholders(t *testing.T) {
	c, err := gdao.New(gdao.DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	result, err := c.WithDialect(New()).CompileClause(gdao.M(
		0, gdao.Leaf("status", gdao.NE, "closed"),
		1, gdao.Leaf("id", gdao.NotIn, []int{4, 5}),
		"OR", gdao.Leaf("name", gdao.NotLike, "test%"),
	))
	if err != nil {
		t.Fatalf("CompileClause failed: %v", err)
	}

	expected := "(status != ? AND id NOT IN (?, ?) OR name NOT LIKE ?)"
	if result.SQL != expected {
		t.Errorf("SQL mismatch:\nExpected: %s\nActual:   %s", expected, result.SQL)
	}
	if !reflect.DeepEqual(result.Args, []any{"closed", 4, 5, "test%"}) {
		t.Errorf("Args = %v", result.Args)
	}
}

func TestParamLimit(t *testing.T) {
	values := make([]int, MaxParams+1)
	for i := range values {
		values[i] = i
	}
	c, err := gdao.New(gdao.DefaultConfig())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = c.WithDialect(New()).CompileClause(gdao.Leaf("id", gdao.IN, values))
	var limitErr render.ParamLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected ParamLimitError, got %v", err)
	}
	if limitErr.Dialect != "mysql" || limitErr.Count != MaxParams+1 || limitErr.Limit != MaxParams {
		t.Errorf("unexpected error: %+v", limitErr)
	}
}
