// Package mysql provides the MySQL and MariaDB dialect for gdao.
package mysql

import (
	"github.com/rotexsoft/gdao"
	"github.com/rotexsoft/gdao/internal/render"
)

// MaxParams is the prepared statement placeholder limit of MySQL and MariaDB.
const MaxParams = 65535

var _ gdao.Dialect = (*Dialect)(nil)

// Dialect renders ? placeholders bound by position.
type Dialect struct{}

// New creates a MySQL dialect.
func New() *Dialect {
	return &Dialect{}
}

// Name returns "mysql".
func (d *Dialect) Name() string {
	return "mysql"
}

// Placeholder returns ?.
func (d *Dialect) Placeholder(_ int, _ string) string {
	return "?"
}

// Arg returns value unchanged.
func (d *Dialect) Arg(_ int, _ string, value any) any {
	return value
}

// Capabilities reports the MySQL parameter limit.
func (d *Dialect) Capabilities() render.Capabilities {
	return render.Capabilities{MaxParams: MaxParams}
}
