package types

// Result contains a rendered clause fragment and its bindings.
type Result struct {
	Params *Params
	SQL    string
	Args   []any // Params values in placeholder order, wrapped by the dialect
}
