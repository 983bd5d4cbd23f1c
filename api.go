// Package gdao validates nested filter descriptions and compiles them into
// parameterized SQL WHERE and HAVING fragments.
//
// A description is an ordered key/value structure. Leaves compare a column
// with a value; groups nest further descriptions and join them with AND,
// or with OR when the entry's key is OR or OR#<suffix>.
//
// # Basic Usage
//
//	where := gdao.M(
//		0, gdao.Leaf("age", gdao.GT, 18),
//		"OR", gdao.List(
//			gdao.Leaf("name", gdao.LIKE, "jo%"),
//			gdao.Leaf("deleted_at", gdao.IsNull),
//		),
//	)
//
//	result, err := gdao.CompileClause(where)
//	// result.SQL: (age > :_1_ OR (name LIKE :_2_ AND deleted_at IS NULL))
//	// result.Params: _1_ => 18, _2_ => "jo%"
//
// The fragment is meant to follow WHERE or HAVING in a statement built by
// the caller. Values are never interpolated; each one is bound to a
// placeholder numbered in left-to-right order.
//
// # Descriptions From Data
//
// Descriptions can be decoded from JSON, YAML or MessagePack with ParseJSON,
// ParseYAML and ParseMsgpack, which keep the document's key order. FromMap
// converts plain Go maps using a deterministic order.
//
// # Dialects
//
// The default output uses :_n_ placeholders. The postgres, mysql, sqlite and
// mssql packages provide dialects for drivers with other conventions:
//
//	c, _ := gdao.New(gdao.DefaultConfig())
//	result, err := c.WithDialect(postgres.New()).CompileClause(where)
//	rows, err := db.Query("SELECT * FROM users WHERE "+result.SQL, result.Args...)
//
// # Schema Validation
//
// A Compiler built with NewFromDBML rejects columns missing from the schema.
package gdao

import "github.com/rotexsoft/gdao/internal/types"

// Node is a validated predicate tree node.
type Node = types.Node

// LeafNode is a single column/operator/value comparison.
type LeafNode = types.Leaf

// GroupNode is an ordered list of children joined by AND/OR.
type GroupNode = types.Group

// Child is a member of a GroupNode with its join kind.
type Child = types.Child

// JoinKind represents how a child combines with the children before it.
type JoinKind = types.JoinKind

// Re-export join kinds for public API.
const (
	Lead = types.Lead
	And  = types.And
	Or   = types.Or
)

// Value is the operand of a leaf.
type Value = types.Value

// Number, Text, Bool and ValueList are the Value variants.
type (
	Number    = types.Number
	Text      = types.Text
	Bool      = types.Bool
	ValueList = types.List
)

// Params is an ordered placeholder name to value mapping.
type Params = types.Params
