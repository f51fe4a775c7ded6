package config

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

// mergeTOML merges override TOML bytes into base TOML bytes. Override values
// take precedence; nested tables are merged key by key, arrays are replaced.
func mergeTOML(base, override []byte) ([]byte, error) {
	if len(override) == 0 {
		return base, nil
	}
	if len(base) == 0 {
		return override, nil
	}

	var baseMap, overrideMap map[string]any
	if err := toml.Unmarshal(base, &baseMap); err != nil {
		return nil, fmt.Errorf("failed to parse base TOML: %w", err)
	}
	if err := toml.Unmarshal(override, &overrideMap); err != nil {
		return nil, fmt.Errorf("failed to parse override TOML: %w", err)
	}

	deepMerge(baseMap, overrideMap)

	merged, err := toml.Marshal(baseMap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal merged TOML: %w", err)
	}
	return merged, nil
}

func deepMerge(base, override map[string]any) {
	for key, overrideVal := range override {
		baseMap, baseIsMap := base[key].(map[string]any)
		overrideMap, overrideIsMap := overrideVal.(map[string]any)
		if baseIsMap && overrideIsMap {
			deepMerge(baseMap, overrideMap)
			continue
		}
		base[key] = overrideVal
	}
}
