package gdao

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zoobzio/dbml"
)

// Compiler validates and compiles descriptions with a fixed configuration,
// an optional DBML schema and a dialect. It is immutable and safe for
// concurrent use; the With methods return modified copies.
type Compiler struct {
	dialect Dialect
	logger  *slog.Logger
	// Internal index for column validation, nil without a schema
	columns map[string]map[string]struct{} // table -> column
	cfg     Config
}

// New creates a Compiler. Empty fields take their defaults.
func New(cfg Config) (*Compiler, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Compiler{
		cfg:     cfg,
		dialect: Named,
		logger:  slog.New(slog.DiscardHandler),
	}, nil
}

// NewFromDBML creates a Compiler that rejects columns missing from project.
// Columns may be bare ("email") or qualified by table ("users.email").
func NewFromDBML(project *dbml.Project, cfg Config) (*Compiler, error) {
	if project == nil {
		return nil, fmt.Errorf("project cannot be nil")
	}
	c, err := New(cfg)
	if err != nil {
		return nil, err
	}

	c.columns = make(map[string]map[string]struct{})
	for _, table := range project.Tables {
		cols := make(map[string]struct{}, len(table.Columns))
		for _, col := range table.Columns {
			cols[col.Name] = struct{}{}
		}
		c.columns[table.Name] = cols
	}
	return c, nil
}

// WithDialect returns a copy of c rendering placeholders for d.
func (c *Compiler) WithDialect(d Dialect) *Compiler {
	cp := *c
	if d == nil {
		d = Named
	}
	cp.dialect = d
	return &cp
}

// WithLogger returns a copy of c logging to l. Rejections and compiled
// clauses are logged at debug level.
func (c *Compiler) WithLogger(l *slog.Logger) *Compiler {
	cp := *c
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	cp.logger = l
	return &cp
}

// Config returns the compiler's configuration.
func (c *Compiler) Config() Config {
	return c.cfg
}

// Dialect returns the compiler's dialect.
func (c *Compiler) Dialect() Dialect {
	return c.dialect
}

// Parse validates raw and builds its predicate tree.
func (c *Compiler) Parse(raw Map) (Node, error) {
	p := parser{cfg: c.cfg}
	if c.columns != nil {
		p.checkColumn = c.validateColumn
	}
	tree, err := p.parse(raw)
	if err != nil {
		c.logRejection(err)
		return nil, err
	}
	return tree, nil
}

// Compile renders a tree. Trees that did not come from Parse are checked
// against the same invariants first.
func (c *Compiler) Compile(tree Node) (*Result, error) {
	result, err := renderTree(tree, c.dialect, c.cfg.MaxDepth)
	if err != nil {
		return nil, err
	}
	if c.logger.Enabled(context.Background(), slog.LevelDebug) {
		c.logger.Debug("compiled clause",
			slog.String("dialect", c.dialect.Name()),
			slog.String("sql", result.SQL),
			slog.Int("params", result.Params.Len()),
		)
	}
	return result, nil
}

// CompileClause parses raw and, only when it is valid, compiles it.
func (c *Compiler) CompileClause(raw Map) (*Result, error) {
	tree, err := c.Parse(raw)
	if err != nil {
		return nil, err
	}
	return c.Compile(tree)
}

// CompileJSON decodes a JSON description and compiles it.
func (c *Compiler) CompileJSON(data []byte) (*Result, error) {
	raw, err := parseJSON(data, c.cfg)
	if err != nil {
		return nil, err
	}
	return c.CompileClause(raw)
}

// CompileYAML decodes a YAML description and compiles it.
func (c *Compiler) CompileYAML(data []byte) (*Result, error) {
	raw, err := parseYAML(data, c.cfg)
	if err != nil {
		return nil, err
	}
	return c.CompileClause(raw)
}

// CompileMsgpack decodes a MessagePack description and compiles it.
func (c *Compiler) CompileMsgpack(data []byte) (*Result, error) {
	raw, err := parseMsgpack(data, c.cfg)
	if err != nil {
		return nil, err
	}
	return c.CompileClause(raw)
}

func (c *Compiler) logRejection(err error) {
	if !c.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	attrs := []any{slog.String("error", err.Error())}
	if ve, ok := err.(*ValidationError); ok {
		attrs = append(attrs,
			slog.String("kind", ve.Kind.Error()),
			slog.String("path", ve.PathString()),
		)
	}
	c.logger.Debug("rejected description", attrs...)
}

// validateColumn checks a column against the schema.
func (c *Compiler) validateColumn(col string) error {
	name := col
	if i := strings.LastIndex(col, "."); i != -1 {
		table := col[:i]
		name = col[i+1:]
		if cols, ok := c.columns[table]; ok {
			if _, ok := cols[name]; ok {
				return nil
			}
			return fmt.Errorf("column '%s' not found in table '%s'", name, table)
		}
	}

	for _, cols := range c.columns {
		if _, ok := cols[name]; ok {
			return nil
		}
	}
	return fmt.Errorf("column '%s' not found in schema", col)
}

func (c Config) withDefaults() Config {
	if c.ColumnKey == "" {
		c.ColumnKey = DefaultColumnKey
	}
	if c.OperatorKey == "" {
		c.OperatorKey = DefaultOperatorKey
	}
	if c.ValueKey == "" {
		c.ValueKey = DefaultValueKey
	}
	if c.OrMarker == "" {
		c.OrMarker = DefaultOrMarker
	}
	if c.OrSeparator == "" {
		c.OrSeparator = DefaultOrSeparator
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	return c
}
