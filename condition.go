package gdao

import (
	"fmt"
	"strconv"
)

// TryM builds a Map from alternating keys and values.
// Keys may be strings or integers.
func TryM(kv ...any) (Map, error) {
	if len(kv)%2 != 0 {
		return nil, fmt.Errorf("odd number of arguments: %d", len(kv))
	}
	m := make(Map, 0, len(kv)/2)
	for i := 0; i < len(kv); i += 2 {
		key, err := keyString(kv[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		m = append(m, Entry{Key: key, Value: kv[i+1]})
	}
	return m, nil
}

// M builds a Map from alternating keys and values.
func M(kv ...any) Map {
	m, err := TryM(kv...)
	if err != nil {
		panic(err)
	}
	return m
}

// List builds a Map keyed 0..n-1, the usual shape of a group.
func List(items ...any) Map {
	m := make(Map, len(items))
	for i, item := range items {
		m[i] = Entry{Key: strconv.Itoa(i), Value: item}
	}
	return m
}

// Leaf builds a leaf description using the default keys.
// Pass no value for is-null and not-null.
func Leaf(column string, op Operator, value ...any) Map {
	m := Map{
		{Key: DefaultColumnKey, Value: column},
		{Key: DefaultOperatorKey, Value: string(op)},
	}
	if len(value) > 0 {
		m = append(m, Entry{Key: DefaultValueKey, Value: value[0]})
	}
	return m
}

func keyString(k any) (string, error) {
	switch key := k.(type) {
	case string:
		return key, nil
	case int:
		return strconv.Itoa(key), nil
	case int64:
		return strconv.FormatInt(key, 10), nil
	case uint64:
		return strconv.FormatUint(key, 10), nil
	default:
		return "", fmt.Errorf("key must be a string or an integer, got %T", k)
	}
}
