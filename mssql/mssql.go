// Package mssql provides the SQL Server dialect for gdao.
package mssql

import (
	"database/sql"
	"strconv"

	"github.com/rotexsoft/gdao"
	"github.com/rotexsoft/gdao/internal/render"
)

// MaxParams is the SQL Server limit on parameters per request.
const MaxParams = 2100

var _ gdao.Dialect = (*Dialect)(nil)

// Dialect renders @pN placeholders and wraps arguments in sql.Named,
// the convention of github.com/microsoft/go-mssqldb.
type Dialect struct{}

// New creates a SQL Server dialect.
func New() *Dialect {
	return &Dialect{}
}

// Name returns "mssql".
func (d *Dialect) Name() string {
	return "mssql"
}

// Placeholder returns @pN.
func (d *Dialect) Placeholder(n int, _ string) string {
	return "@p" + strconv.Itoa(n)
}

// Arg wraps value as sql.Named("pN", value).
func (d *Dialect) Arg(n int, _ string, value any) any {
	return sql.Named("p"+strconv.Itoa(n), value)
}

// Capabilities reports the SQL Server parameter limit.
func (d *Dialect) Capabilities() render.Capabilities {
	return render.Capabilities{NamedParams: true, MaxParams: MaxParams}
}
