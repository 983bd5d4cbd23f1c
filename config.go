package gdao

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rotexsoft/gdao/internal/types"
)

// Default description keys and markers.
const (
	DefaultColumnKey   = "col"
	DefaultOperatorKey = "op"
	DefaultValueKey    = "val"
	DefaultOrMarker    = "OR"
	DefaultOrSeparator = "#"
	DefaultMaxDepth    = types.DefaultMaxDepth
)

// Config controls how descriptions are read.
type Config struct {
	ColumnKey   string `yaml:"column_key"`
	OperatorKey string `yaml:"operator_key"`
	ValueKey    string `yaml:"value_key"`
	OrMarker    string `yaml:"or_marker"`    // exact key joining with OR
	OrSeparator string `yaml:"or_separator"` // OrMarker+OrSeparator+suffix also joins with OR; empty means "#"
	MaxDepth    int    `yaml:"max_depth"`    // group nesting limit, root counts as 1
}

// DefaultConfig returns the configuration used by the package-level functions.
func DefaultConfig() Config {
	return Config{
		ColumnKey:   DefaultColumnKey,
		OperatorKey: DefaultOperatorKey,
		ValueKey:    DefaultValueKey,
		OrMarker:    DefaultOrMarker,
		OrSeparator: DefaultOrSeparator,
		MaxDepth:    DefaultMaxDepth,
	}
}

// LoadConfig reads a YAML configuration file. Omitted fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML configuration. Omitted fields keep their defaults.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the keys are distinct and cannot be mistaken for
// group keys.
func (c Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.OrMarker == "" {
		return fmt.Errorf("or_marker is required")
	}
	leafKeys := map[string]string{
		"column_key":   c.ColumnKey,
		"operator_key": c.OperatorKey,
		"value_key":    c.ValueKey,
	}
	seen := make(map[string]string, len(leafKeys))
	for _, name := range []string{"column_key", "operator_key", "value_key"} {
		key := leafKeys[name]
		if key == "" {
			return fmt.Errorf("%s is required", name)
		}
		if other, ok := seen[key]; ok {
			return fmt.Errorf("%s and %s are both %q", other, name, key)
		}
		seen[key] = name
		if isNumericKey(key) || key == c.OrMarker ||
			(c.OrSeparator != "" && strings.HasPrefix(key, c.OrMarker+c.OrSeparator)) {
			return fmt.Errorf("%s %q collides with group keys", name, key)
		}
	}
	return nil
}
