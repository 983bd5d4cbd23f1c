package gdao

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/valyala/fastjson"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
	"gopkg.in/yaml.v3"
)

// The decoders keep document key order. Objects become Maps; arrays become
// List groups, except under the value key where they stay []any so they
// can serve as IN lists.

// ErrDocumentTooLarge is returned when a document decodes to more nodes than
// its size allows, e.g. through YAML alias expansion.
var ErrDocumentTooLarge = errors.New("document expands beyond its size limit")

// ParseJSON decodes a JSON object or array into a description.
func ParseJSON(data []byte) (Map, error) {
	return parseJSON(data, DefaultConfig())
}

// ParseYAML decodes a YAML mapping or sequence into a description.
func ParseYAML(data []byte) (Map, error) {
	return parseYAML(data, DefaultConfig())
}

// ParseMsgpack decodes a MessagePack map or array into a description.
func ParseMsgpack(data []byte) (Map, error) {
	return parseMsgpack(data, DefaultConfig())
}

// =============================================================================
// Limits
// =============================================================================

// leafLevels is the number of containers allowed below the deepest group:
// the leaf itself and its value list.
const leafLevels = 2

// decodeState bounds one decode. Containers may nest cfg.MaxDepth+leafLevels
// deep, and the number of nodes produced is capped in proportion to the
// input size, so alias expansion and forged lengths cannot outgrow the
// document.
type decodeState struct {
	cfg      Config
	format   string
	maxDepth int
	budget   int
	nodes    int
}

func newDecodeState(format string, data []byte, cfg Config) *decodeState {
	budget := 2*len(data) + 16
	return &decodeState{
		cfg:      cfg,
		format:   format,
		maxDepth: cfg.MaxDepth + leafLevels,
		budget:   budget,
		nodes:    budget,
	}
}

// enter checks a container opened at depth; the root container is depth 1.
func (s *decodeState) enter(depth int) error {
	if depth > s.maxDepth {
		return fmt.Errorf("decode %s: %w: nesting exceeds %d levels", s.format, ErrMaxDepthExceeded, s.maxDepth)
	}
	return nil
}

// spend charges n nodes against the budget.
func (s *decodeState) spend(n int) error {
	if n < 0 || n > s.nodes {
		return fmt.Errorf("decode %s: %w: more than %d nodes", s.format, ErrDocumentTooLarge, s.budget)
	}
	s.nodes -= n
	return nil
}

func (s *decodeState) wrap(err error) error {
	return fmt.Errorf("decode %s: %w", s.format, err)
}

// =============================================================================
// JSON
// =============================================================================

var jsonParsers fastjson.ParserPool

func parseJSON(data []byte, cfg Config) (Map, error) {
	p := jsonParsers.Get()
	defer jsonParsers.Put(p)

	v, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("decode json: %w", err)
	}
	s := newDecodeState("json", data, cfg)
	return s.jsonDescription(v, 1)
}

func (s *decodeState) jsonDescription(v *fastjson.Value, depth int) (Map, error) {
	if err := s.enter(depth); err != nil {
		return nil, err
	}
	switch v.Type() {
	case fastjson.TypeObject:
		obj, err := v.Object()
		if err != nil {
			return nil, s.wrap(err)
		}
		if err := s.spend(obj.Len()); err != nil {
			return nil, err
		}
		m := make(Map, 0, obj.Len())
		var visitErr error
		obj.Visit(func(key []byte, val *fastjson.Value) {
			if visitErr != nil {
				return
			}
			k := string(key)
			x, err := s.jsonValue(val, k == s.cfg.ValueKey, depth)
			if err != nil {
				visitErr = err
				return
			}
			m = append(m, Entry{Key: k, Value: x})
		})
		return m, visitErr
	case fastjson.TypeArray:
		items, err := s.jsonArray(v, false, depth)
		if err != nil {
			return nil, err
		}
		return List(items...), nil
	default:
		return nil, fmt.Errorf("decode json: description must be an object or an array, got %s", v.Type())
	}
}

func (s *decodeState) jsonArray(v *fastjson.Value, isValue bool, depth int) ([]any, error) {
	arr, err := v.Array()
	if err != nil {
		return nil, s.wrap(err)
	}
	if err := s.spend(len(arr)); err != nil {
		return nil, err
	}
	items := make([]any, 0, len(arr))
	for _, elem := range arr {
		x, err := s.jsonValue(elem, isValue, depth)
		if err != nil {
			return nil, err
		}
		items = append(items, x)
	}
	return items, nil
}

// jsonValue decodes a value found inside a container at depth.
func (s *decodeState) jsonValue(v *fastjson.Value, isValue bool, depth int) (any, error) {
	switch v.Type() {
	case fastjson.TypeObject:
		return s.jsonDescription(v, depth+1)
	case fastjson.TypeArray:
		if isValue {
			if err := s.enter(depth + 1); err != nil {
				return nil, err
			}
			return s.jsonArray(v, true, depth+1)
		}
		return s.jsonDescription(v, depth+1)
	case fastjson.TypeString:
		b, err := v.StringBytes()
		if err != nil {
			return nil, s.wrap(err)
		}
		return string(b), nil
	case fastjson.TypeNumber:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, s.wrap(err)
		}
		return f, nil
	case fastjson.TypeTrue:
		return true, nil
	case fastjson.TypeFalse:
		return false, nil
	case fastjson.TypeNull:
		return nil, nil
	default:
		return nil, fmt.Errorf("decode json: unexpected value type %s", v.Type())
	}
}

// =============================================================================
// YAML
// =============================================================================

func parseYAML(data []byte, cfg Config) (Map, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if doc.Kind == 0 {
		return Map{}, nil
	}
	root := &doc
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return Map{}, nil
		}
		root = doc.Content[0]
	}
	s := newDecodeState("yaml", data, cfg)
	return s.yamlDescription(root, 1)
}

// yamlDescription walks n without sharing expanded aliases: every visit
// is charged, so each alias costs the size of what it expands to.
func (s *decodeState) yamlDescription(n *yaml.Node, depth int) (Map, error) {
	if err := s.enter(depth); err != nil {
		return nil, err
	}
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		if err := s.spend(len(n.Content) / 2); err != nil {
			return nil, err
		}
		m := make(Map, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := resolveAlias(n.Content[i])
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("decode yaml: line %d: keys must be scalars", key.Line)
			}
			x, err := s.yamlValue(n.Content[i+1], key.Value == s.cfg.ValueKey, depth)
			if err != nil {
				return nil, err
			}
			m = append(m, Entry{Key: key.Value, Value: x})
		}
		return m, nil
	case yaml.SequenceNode:
		items, err := s.yamlSequence(n, false, depth)
		if err != nil {
			return nil, err
		}
		return List(items...), nil
	default:
		return nil, fmt.Errorf("decode yaml: line %d: description must be a mapping or a sequence", n.Line)
	}
}

func (s *decodeState) yamlSequence(n *yaml.Node, isValue bool, depth int) ([]any, error) {
	if err := s.spend(len(n.Content)); err != nil {
		return nil, err
	}
	items := make([]any, 0, len(n.Content))
	for _, elem := range n.Content {
		x, err := s.yamlValue(elem, isValue, depth)
		if err != nil {
			return nil, err
		}
		items = append(items, x)
	}
	return items, nil
}

// yamlValue decodes a value found inside a container at depth.
func (s *decodeState) yamlValue(n *yaml.Node, isValue bool, depth int) (any, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.MappingNode:
		return s.yamlDescription(n, depth+1)
	case yaml.SequenceNode:
		if isValue {
			if err := s.enter(depth + 1); err != nil {
				return nil, err
			}
			return s.yamlSequence(n, true, depth+1)
		}
		return s.yamlDescription(n, depth+1)
	case yaml.ScalarNode:
		var x any
		if err := n.Decode(&x); err != nil {
			return nil, fmt.Errorf("decode yaml: line %d: %w", n.Line, err)
		}
		return x, nil
	default:
		return nil, fmt.Errorf("decode yaml: line %d: unexpected node", n.Line)
	}
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

// =============================================================================
// MessagePack
// =============================================================================

func parseMsgpack(data []byte, cfg Config) (Map, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	c, err := dec.PeekCode()
	if err != nil {
		return nil, fmt.Errorf("decode msgpack: %w", err)
	}
	if !isMsgpackMap(c) && !isMsgpackArray(c) {
		return nil, fmt.Errorf("decode msgpack: description must be a map or an array")
	}
	s := newDecodeState("msgpack", data, cfg)
	return s.msgpackDescription(dec, 1)
}

func isMsgpackMap(c byte) bool {
	return msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32
}

func isMsgpackArray(c byte) bool {
	return msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32
}

// msgpackDescription decodes the container at the head of dec. Lengths
// are charged before anything is allocated, so a forged header fails fast.
func (s *decodeState) msgpackDescription(dec *msgpack.Decoder, depth int) (Map, error) {
	if err := s.enter(depth); err != nil {
		return nil, err
	}
	c, err := dec.PeekCode()
	if err != nil {
		return nil, s.wrap(err)
	}

	if isMsgpackArray(c) {
		items, err := s.msgpackArray(dec, false, depth)
		if err != nil {
			return nil, err
		}
		return List(items...), nil
	}

	n, err := dec.DecodeMapLen()
	if err != nil {
		return nil, s.wrap(err)
	}
	if err := s.spend(max(n, 0)); err != nil {
		return nil, err
	}
	m := make(Map, 0, max(n, 0))
	for i := 0; i < n; i++ {
		key, err := s.msgpackKey(dec)
		if err != nil {
			return nil, err
		}
		x, err := s.msgpackValue(dec, key == s.cfg.ValueKey, depth)
		if err != nil {
			return nil, err
		}
		m = append(m, Entry{Key: key, Value: x})
	}
	return m, nil
}

// msgpackKey decodes a map key, refusing containers before the library
// would decode them.
func (s *decodeState) msgpackKey(dec *msgpack.Decoder) (string, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return "", s.wrap(err)
	}
	if isMsgpackMap(c) || isMsgpackArray(c) {
		return "", fmt.Errorf("decode msgpack: key must be a string or an integer, got a container")
	}
	rawKey, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return "", s.wrap(err)
	}
	key, err := keyString(rawKey)
	if err != nil {
		return "", s.wrap(err)
	}
	return key, nil
}

func (s *decodeState) msgpackArray(dec *msgpack.Decoder, isValue bool, depth int) ([]any, error) {
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, s.wrap(err)
	}
	if err := s.spend(max(n, 0)); err != nil {
		return nil, err
	}
	items := make([]any, 0, max(n, 0))
	for i := 0; i < n; i++ {
		x, err := s.msgpackValue(dec, isValue, depth)
		if err != nil {
			return nil, err
		}
		items = append(items, x)
	}
	return items, nil
}

// msgpackValue decodes a value found inside a container at depth.
func (s *decodeState) msgpackValue(dec *msgpack.Decoder, isValue bool, depth int) (any, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return nil, s.wrap(err)
	}
	switch {
	case isMsgpackMap(c):
		return s.msgpackDescription(dec, depth+1)
	case isMsgpackArray(c) && isValue:
		if err := s.enter(depth + 1); err != nil {
			return nil, err
		}
		return s.msgpackArray(dec, true, depth+1)
	case isMsgpackArray(c):
		return s.msgpackDescription(dec, depth+1)
	}
	v, err := dec.DecodeInterfaceLoose()
	if err != nil {
		return nil, s.wrap(err)
	}
	return v, nil
}
