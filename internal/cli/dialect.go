package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/rotexsoft/gdao"
	"github.com/rotexsoft/gdao/mssql"
	"github.com/rotexsoft/gdao/mysql"
	"github.com/rotexsoft/gdao/postgres"
	"github.com/rotexsoft/gdao/sqlite"
)

var dialects = map[string]func() gdao.Dialect{
	"named":          func() gdao.Dialect { return gdao.Named },
	"postgres":       func() gdao.Dialect { return postgres.New() },
	"postgres-named": func() gdao.Dialect { return postgres.NewNamed() },
	"mysql":          func() gdao.Dialect { return mysql.New() },
	"sqlite":         func() gdao.Dialect { return sqlite.New() },
	"mssql":          func() gdao.Dialect { return mssql.New() },
}

// DialectNames returns the accepted --dialect values, sorted.
func DialectNames() []string {
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// newCompiler builds a Compiler from the global flags.
func newCompiler(opts *RootOptions, logger *slog.Logger) (*gdao.Compiler, error) {
	cfg := gdao.DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := gdao.LoadConfig(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	newDialect, ok := dialects[opts.Dialect]
	if !ok {
		return nil, fmt.Errorf("invalid dialect %q: must be one of %v", opts.Dialect, DialectNames())
	}
	if opts.MaxDepth > 0 {
		cfg.MaxDepth = opts.MaxDepth
	}

	c, err := gdao.New(cfg)
	if err != nil {
		return nil, err
	}
	return c.WithDialect(newDialect()).WithLogger(logger), nil
}
