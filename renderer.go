package gdao

import "github.com/rotexsoft/gdao/internal/render"

// Capabilities describes the placeholder features of a dialect.
type Capabilities = render.Capabilities

// Dialect defines how placeholders and bound arguments are written for a
// database driver. Param names are always _n_; only the SQL text and the
// argument wrapping change.
type Dialect interface {
	// Name identifies the dialect in errors and logs.
	Name() string

	// Placeholder returns the SQL marker for the n-th parameter, named name.
	Placeholder(n int, name string) string

	// Arg wraps the value bound to the n-th parameter for the driver,
	// e.g. as sql.NamedArg.
	Arg(n int, name string, value any) any

	// Capabilities reports the dialect's placeholder limits.
	Capabilities() Capabilities
}

// Named renders :_n_ placeholders, the form used by sqlx and PDO-style
// named-parameter APIs. It is the default dialect.
var Named Dialect = namedDialect{}

type namedDialect struct{}

func (namedDialect) Name() string {
	return "named"
}

func (namedDialect) Placeholder(_ int, name string) string {
	return ":" + name
}

func (namedDialect) Arg(_ int, _ string, value any) any {
	return value
}

func (namedDialect) Capabilities() Capabilities {
	return Capabilities{NamedParams: true}
}
