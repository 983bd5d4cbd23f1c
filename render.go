package gdao

import (
	"fmt"
	"strings"

	"github.com/rotexsoft/gdao/internal/types"
)

// renderContext carries the per-call output of a render.
// The placeholder counter is not stored here; it is passed in and
// returned by every render step.
type renderContext struct {
	dialect Dialect
	params  *types.Params
}

// renderTree converts a tree into a clause fragment and its bindings.
func renderTree(tree types.Node, dialect Dialect, maxDepth int) (*Result, error) {
	if err := types.Validate(tree, maxDepth); err != nil {
		return nil, fmt.Errorf("invalid predicate tree: %w", err)
	}
	if dialect == nil {
		dialect = Named
	}

	var sql strings.Builder
	ctx := &renderContext{dialect: dialect, params: types.NewParams(8)}

	next, err := ctx.renderNode(tree, &sql, 1)
	if err != nil {
		return nil, err
	}
	if err := dialect.Capabilities().CheckParams(dialect.Name(), next-1); err != nil {
		return nil, err
	}

	args := make([]any, 0, ctx.params.Len())
	for name, v := range ctx.params.All() {
		args = append(args, dialect.Arg(len(args)+1, name, v))
	}

	return &Result{
		SQL:    sql.String(),
		Params: ctx.params,
		Args:   args,
	}, nil
}

// renderNode writes n and returns the next free placeholder number.
func (ctx *renderContext) renderNode(n types.Node, sql *strings.Builder, next int) (int, error) {
	switch node := n.(type) {
	case types.Leaf:
		return ctx.renderLeaf(node, sql, next)
	case *types.Leaf:
		return ctx.renderLeaf(*node, sql, next)
	case types.Group:
		return ctx.renderGroup(node, sql, next)
	case *types.Group:
		return ctx.renderGroup(*node, sql, next)
	default:
		return next, fmt.Errorf("unknown node type: %T", n)
	}
}

func (ctx *renderContext) renderGroup(g types.Group, sql *strings.Builder, next int) (int, error) {
	sql.WriteString("(")
	for _, child := range g.Children {
		switch child.Join {
		case types.Lead:
		case types.And:
			sql.WriteString(" AND ")
		case types.Or:
			sql.WriteString(" OR ")
		default:
			return next, fmt.Errorf("unknown join kind: %s", child.Join)
		}
		var err error
		if next, err = ctx.renderNode(child.Node, sql, next); err != nil {
			return next, err
		}
	}
	sql.WriteString(")")
	return next, nil
}

func (ctx *renderContext) renderLeaf(l types.Leaf, sql *strings.Builder, next int) (int, error) {
	spec, ok := l.Operator.Spec()
	if !ok {
		return next, fmt.Errorf("unknown operator: %q", l.Operator)
	}

	sql.WriteString(l.Column)
	sql.WriteString(" ")
	sql.WriteString(spec.Symbol)

	switch spec.Shape {
	case types.ShapeNone:
		return next, nil
	case types.ShapeList:
		list, ok := l.Value.(types.List)
		if !ok {
			list = types.List{l.Value}
		}
		sql.WriteString(" (")
		for i, elem := range list {
			if i > 0 {
				sql.WriteString(", ")
			}
			next = ctx.bind(elem, sql, next)
		}
		sql.WriteString(")")
		return next, nil
	case types.ShapeScalar, types.ShapeText:
		sql.WriteString(" ")
		return ctx.bind(l.Value, sql, next), nil
	default:
		return next, fmt.Errorf("operator %s has unknown value shape %d", l.Operator, spec.Shape)
	}
}

// bind writes the n-th placeholder, records its value and returns n+1.
func (ctx *renderContext) bind(v types.Value, sql *strings.Builder, n int) int {
	name := ParamName(n)
	sql.WriteString(ctx.dialect.Placeholder(n, name))
	ctx.params.Add(name, v.Raw())
	return n + 1
}
