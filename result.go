package gdao

import "github.com/rotexsoft/gdao/internal/types"

// Result contains the clause fragment and its bindings.
type Result = types.Result
