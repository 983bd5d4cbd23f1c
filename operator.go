package gdao

import "github.com/rotexsoft/gdao/internal/types"

// Operator represents a comparison operator token.
type Operator = types.Operator

// Re-export operator constants for public API.
const (
	// Basic comparison operators.
	EQ = types.EQ
	NE = types.NE
	LT = types.LT
	LE = types.LE
	GT = types.GT
	GE = types.GE

	// Extended operators.
	IN        = types.IN
	NotIn     = types.NotIn
	LIKE      = types.LIKE
	NotLike   = types.NotLike
	IsNull    = types.IsNull
	IsNotNull = types.IsNotNull
)

// OperatorSpec is an Operator Table entry.
type OperatorSpec = types.OperatorSpec

// ValueShape describes which values an operator accepts.
type ValueShape = types.ValueShape

// Re-export value shapes for public API.
const (
	ShapeNone   = types.ShapeNone
	ShapeScalar = types.ShapeScalar
	ShapeText   = types.ShapeText
	ShapeList   = types.ShapeList
)

// LookupOperator resolves an operator token against the Operator Table.
func LookupOperator(token string) (OperatorSpec, bool) {
	return types.Lookup(token)
}

// Operators lists the Operator Table in a stable order.
func Operators() []OperatorSpec {
	return types.Operators()
}
