package render

import "fmt"

// ParamLimitError reports a statement binding more parameters than the
// dialect accepts.
type ParamLimitError struct {
	Dialect string
	Count   int
	Limit   int
}

func (e ParamLimitError) Error() string {
	return fmt.Sprintf("%s: %d bound parameters exceed the limit of %d; split the IN list or filter in several statements",
		e.Dialect, e.Count, e.Limit)
}
