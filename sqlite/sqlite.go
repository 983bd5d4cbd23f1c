// Package sqlite provides the SQLite dialect for gdao.
package sqlite

import (
	"strconv"

	"github.com/rotexsoft/gdao"
	"github.com/rotexsoft/gdao/internal/render"
)

// DefaultMaxParams is SQLITE_MAX_VARIABLE_NUMBER for SQLite 3.32 and later.
const DefaultMaxParams = 32766

var _ gdao.Dialect = (*Dialect)(nil)

// Dialect renders ?NNN placeholders bound by position.
type Dialect struct {
	maxParams int
}

// New creates a SQLite dialect with the default parameter limit.
func New() *Dialect {
	return &Dialect{maxParams: DefaultMaxParams}
}

// WithMaxParams returns a dialect for builds compiled with a different
// SQLITE_MAX_VARIABLE_NUMBER. Zero disables the check.
func (d *Dialect) WithMaxParams(n int) *Dialect {
	return &Dialect{maxParams: n}
}

// Name returns "sqlite".
func (d *Dialect) Name() string {
	return "sqlite"
}

// Placeholder returns ?n.
func (d *Dialect) Placeholder(n int, _ string) string {
	return "?" + strconv.Itoa(n)
}

// Arg returns value unchanged.
func (d *Dialect) Arg(_ int, _ string, value any) any {
	return value
}

// Capabilities reports the configured parameter limit.
func (d *Dialect) Capabilities() render.Capabilities {
	return render.Capabilities{MaxParams: d.maxParams}
}
