package types

// Operator represents a comparison operator token accepted in a description.
type Operator string

const (
	// Basic comparison operators.
	EQ Operator = "="
	NE Operator = "!="
	LT Operator = "<"
	LE Operator = "<="
	GT Operator = ">"
	GE Operator = ">="

	// Extended operators.
	IN        Operator = "in"
	NotIn     Operator = "not-in"
	LIKE      Operator = "like"
	NotLike   Operator = "not-like"
	IsNull    Operator = "is-null"
	IsNotNull Operator = "not-null"
)

// ValueShape describes which values an operator accepts.
type ValueShape int

const (
	ShapeNone   ValueShape = iota // no value allowed
	ShapeScalar                   // Number or Text
	ShapeText                     // Text only
	ShapeList                     // Number, Text or a non-empty List
)

func (s ValueShape) String() string {
	switch s {
	case ShapeNone:
		return "no value"
	case ShapeScalar:
		return "a number or non-empty text"
	case ShapeText:
		return "non-empty text"
	case ShapeList:
		return "a number, non-empty text or a non-empty list of those"
	default:
		return "unknown shape"
	}
}

// OperatorSpec is the SQL rendering and value constraint of an operator.
type OperatorSpec struct {
	Operator Operator
	Symbol   string
	Shape    ValueShape
}

// operatorTable is the single source of truth for parser and compiler.
var operatorTable = map[Operator]OperatorSpec{
	EQ:        {Operator: EQ, Symbol: "=", Shape: ShapeScalar},
	NE:        {Operator: NE, Symbol: "!=", Shape: ShapeScalar},
	LT:        {Operator: LT, Symbol: "<", Shape: ShapeScalar},
	LE:        {Operator: LE, Symbol: "<=", Shape: ShapeScalar},
	GT:        {Operator: GT, Symbol: ">", Shape: ShapeScalar},
	GE:        {Operator: GE, Symbol: ">=", Shape: ShapeScalar},
	IN:        {Operator: IN, Symbol: "IN", Shape: ShapeList},
	NotIn:     {Operator: NotIn, Symbol: "NOT IN", Shape: ShapeList},
	LIKE:      {Operator: LIKE, Symbol: "LIKE", Shape: ShapeText},
	NotLike:   {Operator: NotLike, Symbol: "NOT LIKE", Shape: ShapeText},
	IsNull:    {Operator: IsNull, Symbol: "IS NULL", Shape: ShapeNone},
	IsNotNull: {Operator: IsNotNull, Symbol: "IS NOT NULL", Shape: ShapeNone},
}

// operatorOrder is the display order used by Operators.
var operatorOrder = []Operator{EQ, NE, LT, LE, GT, GE, IN, NotIn, LIKE, NotLike, IsNull, IsNotNull}

// Lookup resolves an operator token.
func Lookup(token string) (OperatorSpec, bool) {
	spec, ok := operatorTable[Operator(token)]
	return spec, ok
}

// Spec returns the table entry for op.
func (op Operator) Spec() (OperatorSpec, bool) {
	return Lookup(string(op))
}

// Operators returns every supported operator in a stable order.
func Operators() []OperatorSpec {
	specs := make([]OperatorSpec, 0, len(operatorOrder))
	for _, op := range operatorOrder {
		specs = append(specs, operatorTable[op])
	}
	return specs
}
