package gdao

// defaultCompiler backs the package-level functions.
var defaultCompiler = func() *Compiler {
	c, err := New(DefaultConfig())
	if err != nil {
		panic(err)
	}
	return c
}()

// Parse validates a description with the default configuration and
// returns its predicate tree. The first violation in document order is
// returned as a *ValidationError.
func Parse(raw Map) (Node, error) {
	return defaultCompiler.Parse(raw)
}

// Compile renders a tree as a parenthesized fragment with :_n_
// placeholders numbered from 1 in left-to-right order.
func Compile(tree Node) (*Result, error) {
	return defaultCompiler.Compile(tree)
}

// CompileClause parses raw and, only on success, compiles it.
func CompileClause(raw Map) (*Result, error) {
	return defaultCompiler.CompileClause(raw)
}
