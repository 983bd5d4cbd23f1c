package gdao

import "strconv"

// ParamName returns the parameter name of the n-th placeholder.
func ParamName(n int) string {
	return "_" + strconv.Itoa(n) + "_"
}
