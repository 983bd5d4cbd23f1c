// Package postgres provides the PostgreSQL dialect for gdao.
package postgres

import (
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/rotexsoft/gdao"
	"github.com/rotexsoft/gdao/internal/render"
)

// MaxParams is the PostgreSQL wire protocol limit on bind parameters.
const MaxParams = 65535

var _ gdao.Dialect = (*Dialect)(nil)

// Dialect renders PostgreSQL placeholders.
type Dialect struct {
	named bool
}

// New creates a dialect rendering positional $n placeholders, for
// database/sql drivers and pgx's Query with plain arguments.
func New() *Dialect {
	return &Dialect{}
}

// NewNamed creates a dialect rendering @_n_ placeholders for use with
// NamedArgs.
func NewNamed() *Dialect {
	return &Dialect{named: true}
}

// Name returns "postgres".
func (d *Dialect) Name() string {
	return "postgres"
}

// Placeholder returns $n, or @name for the named variant.
func (d *Dialect) Placeholder(n int, name string) string {
	if d.named {
		return "@" + name
	}
	return "$" + strconv.Itoa(n)
}

// Arg returns value unchanged.
func (d *Dialect) Arg(_ int, _ string, value any) any {
	return value
}

// Capabilities reports the PostgreSQL parameter limit.
func (d *Dialect) Capabilities() render.Capabilities {
	return render.Capabilities{NamedParams: d.named, MaxParams: MaxParams}
}

// NamedArgs converts params for a clause rendered with NewNamed:
//
//	result, _ := c.WithDialect(postgres.NewNamed()).CompileClause(where)
//	rows, err := conn.Query(ctx, "SELECT * FROM users WHERE "+result.SQL, postgres.NamedArgs(result.Params))
func NamedArgs(params *gdao.Params) pgx.NamedArgs {
	args := make(pgx.NamedArgs, params.Len())
	for name, v := range params.All() {
		args[name] = v
	}
	return args
}
