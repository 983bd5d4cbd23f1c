package gdao

import (
	"sort"
	"strings"
)

// Entry is one key/value pair of a description.
type Entry struct {
	Value any
	Key   string
}

// Map is an ordered key/value description of a filter.
//
// Values are scalars (string, Go numbers, bool, nil), slices used as
// IN lists, or nested Maps. Order is significant: it decides which entry
// leads a group and the order of placeholders.
type Map []Entry

// Get returns the value stored under key.
func (m Map) Get(key string) (any, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the keys in order.
func (m Map) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// FromMap converts Go maps into an ordered description.
//
// Go maps carry no order, so keys are ordered numerically first, then the
// leaf keys in column, operator, value order, then the remaining keys
// lexicographically. Nested map[string]any values become Maps, and []any
// values under non-value keys become List groups.
func FromMap(raw map[string]any) Map {
	return fromMap(raw, DefaultConfig())
}

func fromMap(raw map[string]any, cfg Config) Map {
	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	rank := func(k string) int {
		switch {
		case isNumericKey(k):
			return 0
		case k == cfg.ColumnKey:
			return 1
		case k == cfg.OperatorKey:
			return 2
		case k == cfg.ValueKey:
			return 3
		default:
			return 4
		}
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ri, rj := rank(keys[i]), rank(keys[j])
		if ri != rj {
			return ri < rj
		}
		if ri == 0 {
			if c := compareNumericKeys(keys[i], keys[j]); c != 0 {
				return c < 0
			}
		}
		return keys[i] < keys[j]
	})

	m := make(Map, 0, len(keys))
	for _, k := range keys {
		m = append(m, Entry{Key: k, Value: fromMapValue(raw[k], k == cfg.ValueKey, cfg)})
	}
	return m
}

// compareNumericKeys orders two numeric keys by value without parsing them,
// so keys of any length compare exactly.
func compareNumericKeys(a, b string) int {
	negA, negB := strings.HasPrefix(a, "-"), strings.HasPrefix(b, "-")
	a = strings.TrimLeft(strings.TrimPrefix(a, "-"), "0")
	b = strings.TrimLeft(strings.TrimPrefix(b, "-"), "0")
	if a == "" {
		negA = false
	}
	if b == "" {
		negB = false
	}

	switch {
	case negA && !negB:
		return -1
	case !negA && negB:
		return 1
	}
	c := len(a) - len(b)
	if c == 0 {
		c = strings.Compare(a, b)
	}
	if negA {
		return -c
	}
	return c
}

func fromMapValue(v any, isValue bool, cfg Config) any {
	switch x := v.(type) {
	case map[string]any:
		return fromMap(x, cfg)
	case []any:
		if isValue {
			return x
		}
		items := make([]any, len(x))
		for i, item := range x {
			items[i] = fromMapValue(item, false, cfg)
		}
		return List(items...)
	default:
		return v
	}
}
