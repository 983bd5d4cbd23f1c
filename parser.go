package gdao

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotexsoft/gdao/internal/types"
)

// keyKind is the class of a description key. Key semantics are interpreted
// here and nowhere else.
type keyKind int

const (
	keyUnrecognized keyKind = iota
	keyNumeric
	keyOrExact
	keyOrPrefixed
	keyColumn
	keyOperator
	keyValue
)

func (k keyKind) isLeaf() bool {
	return k == keyColumn || k == keyOperator || k == keyValue
}

func (k keyKind) isOr() bool {
	return k == keyOrExact || k == keyOrPrefixed
}

// parser validates descriptions and builds predicate trees.
// It holds configuration only; every call owns its own state.
type parser struct {
	checkColumn func(string) error
	cfg         Config
}

func (p *parser) classify(key string) keyKind {
	switch {
	case key == p.cfg.ColumnKey:
		return keyColumn
	case key == p.cfg.OperatorKey:
		return keyOperator
	case key == p.cfg.ValueKey:
		return keyValue
	case key == p.cfg.OrMarker:
		return keyOrExact
	case isNumericKey(key):
		return keyNumeric
	}
	prefix := p.cfg.OrMarker + p.cfg.OrSeparator
	if strings.HasPrefix(key, prefix) && len(key) > len(prefix) {
		return keyOrPrefixed
	}
	return keyUnrecognized
}

func isNumericKey(key string) bool {
	digits := strings.TrimPrefix(key, "-")
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return false
		}
	}
	return true
}

// parse validates raw and returns its tree. The top level is an implicit
// group, so a lone leaf comes back wrapped in a one-child group.
func (p *parser) parse(raw Map) (types.Node, error) {
	node, err := p.parseDescription(raw, nil, 0)
	if err != nil {
		return nil, err
	}
	if leaf, ok := node.(types.Leaf); ok {
		return types.Group{Children: []types.Child{{Join: types.Lead, Node: leaf}}}, nil
	}
	return node, nil
}

// leafParts accumulates the keys of a leaf while its entries are walked.
type leafParts struct {
	value    any
	column   string
	spec     types.OperatorSpec
	hasCol   bool
	hasOp    bool
	hasValue bool
	seen     [3]bool
}

// parseDescription walks m one entry at a time in order. depth is the
// number of groups enclosing m.
func (p *parser) parseDescription(m Map, path []string, depth int) (types.Node, error) {
	if len(m) == 0 {
		return nil, newValidationError(ErrEmptyGroup, path, "", "")
	}

	var (
		sawLeaf, sawGroup bool
		leaf              leafParts
		group             types.Group
	)

	for i, entry := range m {
		entryPath := append(path[:len(path):len(path)], entry.Key)
		kind := p.classify(entry.Key)

		if kind == keyUnrecognized {
			return nil, newValidationError(ErrKeyOutOfRange, entryPath, strconv.Quote(entry.Key), p.keyHint())
		}
		if i == 0 && kind.isOr() {
			return nil, newValidationError(ErrLeadingOr, entryPath, strconv.Quote(entry.Key), "")
		}

		if kind.isLeaf() {
			sawLeaf = true
		} else {
			sawGroup = true
		}
		if sawLeaf && sawGroup {
			return nil, newValidationError(ErrForbiddenExtraKey, entryPath, strconv.Quote(entry.Key),
				"a leaf takes only "+p.leafKeyList())
		}

		if kind.isLeaf() {
			if err := p.leafEntry(&leaf, kind, entry, entryPath); err != nil {
				return nil, err
			}
			continue
		}

		if i == 0 && depth+1 > p.cfg.MaxDepth {
			return nil, newValidationError(ErrMaxDepthExceeded, path, "",
				fmt.Sprintf("limit is %d", p.cfg.MaxDepth))
		}
		child, err := p.groupEntry(entry, entryPath, depth+1)
		if err != nil {
			return nil, err
		}
		join := types.And
		switch {
		case i == 0:
			join = types.Lead
		case kind.isOr():
			join = types.Or
		}
		group.Children = append(group.Children, types.Child{Join: join, Node: child})
	}

	if sawLeaf {
		return p.finishLeaf(&leaf, path)
	}
	return group, nil
}

// groupEntry parses the nested description of a numeric or OR key.
func (p *parser) groupEntry(entry Entry, path []string, depth int) (types.Node, error) {
	var nested Map
	switch v := entry.Value.(type) {
	case Map:
		nested = v
	case map[string]any:
		nested = fromMap(v, p.cfg)
	default:
		return nil, newValidationError(ErrInvalidGroupEntry, path, describe(entry.Value), "")
	}
	return p.parseDescription(nested, path, depth)
}

// leafEntry checks one leaf key on its own; peers are checked by finishLeaf.
func (p *parser) leafEntry(leaf *leafParts, kind keyKind, entry Entry, path []string) error {
	slot := int(kind - keyColumn)
	if leaf.seen[slot] {
		return newValidationError(ErrForbiddenExtraKey, path, strconv.Quote(entry.Key), "duplicate key")
	}
	leaf.seen[slot] = true

	switch kind {
	case keyColumn:
		col, ok := entry.Value.(string)
		if !ok || col == "" {
			return newValidationError(ErrNonTextColumn, path, describe(entry.Value), "")
		}
		if p.checkColumn != nil {
			if err := p.checkColumn(col); err != nil {
				return newValidationError(ErrUnknownColumn, path, strconv.Quote(col), err.Error())
			}
		}
		leaf.column, leaf.hasCol = col, true
	case keyOperator:
		token, ok := entry.Value.(string)
		if !ok {
			return newValidationError(ErrUnknownOperator, path, describe(entry.Value), "")
		}
		spec, ok := types.Lookup(token)
		if !ok {
			return newValidationError(ErrUnknownOperator, path, strconv.Quote(token), "")
		}
		leaf.spec, leaf.hasOp = spec, true
	case keyValue:
		if entry.Value != nil {
			leaf.value, leaf.hasValue = entry.Value, true
		}
	}
	return nil
}

// finishLeaf cross-checks column, operator and value.
func (p *parser) finishLeaf(leaf *leafParts, path []string) (types.Node, error) {
	colPath := append(path[:len(path):len(path)], p.cfg.ColumnKey)
	opPath := append(path[:len(path):len(path)], p.cfg.OperatorKey)
	valPath := append(path[:len(path):len(path)], p.cfg.ValueKey)

	switch {
	case leaf.hasValue && (!leaf.hasCol || !leaf.hasOp):
		return nil, newValidationError(ErrValueWithoutColOrOp, valPath, describe(leaf.value),
			"a value needs both "+p.cfg.ColumnKey+" and "+p.cfg.OperatorKey)
	case leaf.hasCol && !leaf.hasOp:
		return nil, newValidationError(ErrColOrOpWithoutRequiredPeer, colPath, "", p.cfg.OperatorKey+" is required")
	case leaf.hasOp && !leaf.hasCol:
		return nil, newValidationError(ErrColOrOpWithoutRequiredPeer, opPath, "", p.cfg.ColumnKey+" is required")
	case !leaf.hasCol:
		// only a nil value was given
		return nil, newValidationError(ErrColOrOpWithoutRequiredPeer, colPath, "",
			p.cfg.ColumnKey+" and "+p.cfg.OperatorKey+" are required")
	}

	op := leaf.spec.Operator
	if leaf.spec.Shape == types.ShapeNone {
		if leaf.hasValue {
			return nil, newValidationError(ErrInvalidValueForOperator, valPath, describe(leaf.value),
				fmt.Sprintf("%s takes no value", op))
		}
		return types.Leaf{Column: leaf.column, Operator: op}, nil
	}

	if !leaf.hasValue {
		return nil, newValidationError(ErrColOrOpWithoutRequiredPeer, opPath, "",
			fmt.Sprintf("%s requires %s", op, p.cfg.ValueKey))
	}
	value, ok := types.ToValue(leaf.value)
	if !ok || !leaf.spec.Shape.Accepts(value) {
		return nil, newValidationError(ErrInvalidValueForOperator, valPath, describe(leaf.value),
			fmt.Sprintf("%s requires %s", op, leaf.spec.Shape))
	}
	return types.Leaf{Column: leaf.column, Operator: op, Value: value}, nil
}

func (p *parser) leafKeyList() string {
	return p.cfg.ColumnKey + ", " + p.cfg.OperatorKey + " and " + p.cfg.ValueKey
}

func (p *parser) keyHint() string {
	return "expected an integer, " + p.cfg.OrMarker + ", " + p.cfg.OrMarker + p.cfg.OrSeparator +
		"<suffix>, " + p.leafKeyList()
}

// describe renders a caller value for diagnostics.
func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case Map:
		return "nested description"
	case map[string]any:
		return "nested description"
	default:
		return fmt.Sprintf("%v (%T)", x, x)
	}
}
