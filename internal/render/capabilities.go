package render

// Capabilities describes the placeholder features of a dialect.
type Capabilities struct {
	NamedParams bool // placeholders carry the param name (:_1_, @_1_)
	MaxParams   int  // bound parameters per statement, 0 for unlimited
}

// CheckParams returns a ParamLimitError when count exceeds MaxParams.
func (c Capabilities) CheckParams(dialect string, count int) error {
	if c.MaxParams > 0 && count > c.MaxParams {
		return ParamLimitError{Dialect: dialect, Count: count, Limit: c.MaxParams}
	}
	return nil
}
